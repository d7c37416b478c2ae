package requestrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

const (
	withdrawalColumns = `id, user_id, wallet_id, wallet_type, amount, method, address, status, admin_note,
        reserve_tx_number, processed_by, created_at, updated_at`
	depositColumns = `id, user_id, wallet_id, amount, method, reference, status, admin_note, processed_by,
        created_at, updated_at`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalRequest, error) {
	var w domain.WithdrawalRequest
	err := row.Scan(&w.ID, &w.UserID, &w.WalletID, &w.WalletType, &w.Amount, &w.Method, &w.Address, &w.Status,
		&w.AdminNote, &w.ReserveTxNumber, &w.ProcessedBy, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func scanDeposit(row pgx.Row) (*domain.DepositRequest, error) {
	var d domain.DepositRequest
	err := row.Scan(&d.ID, &d.UserID, &d.WalletID, &d.Amount, &d.Method, &d.Reference, &d.Status, &d.AdminNote,
		&d.ProcessedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// filter renders the shared WHERE/LIMIT tail of request listings.
func filter(f domain.RequestFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.UserID != nil {
		args = append(args, *f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	var sb strings.Builder
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, f.Offset)
	sb.WriteString(fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args)))
	return sb.String(), args
}

func (r *Repository) CreateWithdrawal(ctx context.Context, w *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error) {
	query := `
        INSERT INTO withdrawal_requests (user_id, wallet_id, wallet_type, amount, method, address, status, reserve_tx_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query, w.UserID, w.WalletID, w.WalletType, w.Amount, w.Method, w.Address, w.Status,
		w.ReserveTxNumber).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal request", zap.Int64("userID", w.UserID), zap.Error(err))
		return nil, err
	}
	return w, nil
}

func (r *Repository) FindWithdrawal(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1`
	w, err := scanWithdrawal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find withdrawal request", zap.Int64("requestID", id), zap.Error(err))
		return nil, err
	}
	return w, nil
}

// FinishWithdrawal moves a PENDING request to its final status. It reports
// false when the request was no longer pending.
func (r *Repository) FinishWithdrawal(ctx context.Context, id int64, status domain.RequestStatus, adminID int64, note string) (bool, error) {
	query := `
        UPDATE withdrawal_requests
        SET status = $2, processed_by = $3, admin_note = $4, updated_at = now()
        WHERE id = $1 AND status = 'PENDING'
    `
	tag, err := r.db.Exec(ctx, query, id, status, adminID, note)
	if err != nil {
		zap.L().Error("can't update withdrawal request", zap.Int64("requestID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) ListWithdrawals(ctx context.Context, f domain.RequestFilter) ([]domain.WithdrawalRequest, error) {
	tail, args := filter(f)
	rows, err := r.db.Query(ctx, `SELECT `+withdrawalColumns+` FROM withdrawal_requests`+tail, args...)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var list []domain.WithdrawalRequest
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			zap.L().Error("failed to scan withdrawal request", zap.Error(err))
			return nil, err
		}
		list = append(list, *w)
	}
	return list, rows.Err()
}

func (r *Repository) CreateDeposit(ctx context.Context, d *domain.DepositRequest) (*domain.DepositRequest, error) {
	query := `
        INSERT INTO deposit_requests (user_id, wallet_id, amount, method, reference, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query, d.UserID, d.WalletID, d.Amount, d.Method, d.Reference, d.Status).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save deposit request", zap.Int64("userID", d.UserID), zap.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *Repository) FindDeposit(ctx context.Context, id int64) (*domain.DepositRequest, error) {
	query := `SELECT ` + depositColumns + ` FROM deposit_requests WHERE id = $1`
	d, err := scanDeposit(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find deposit request", zap.Int64("requestID", id), zap.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *Repository) FinishDeposit(ctx context.Context, id int64, status domain.RequestStatus, adminID int64, note string) (bool, error) {
	query := `
        UPDATE deposit_requests
        SET status = $2, processed_by = $3, admin_note = $4, updated_at = now()
        WHERE id = $1 AND status = 'PENDING'
    `
	tag, err := r.db.Exec(ctx, query, id, status, adminID, note)
	if err != nil {
		zap.L().Error("can't update deposit request", zap.Int64("requestID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) ListDeposits(ctx context.Context, f domain.RequestFilter) ([]domain.DepositRequest, error) {
	tail, args := filter(f)
	rows, err := r.db.Query(ctx, `SELECT `+depositColumns+` FROM deposit_requests`+tail, args...)
	if err != nil {
		zap.L().Error("failed to fetch deposit requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var list []domain.DepositRequest
	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			zap.L().Error("failed to scan deposit request", zap.Error(err))
			return nil, err
		}
		list = append(list, *d)
	}
	return list, rows.Err()
}
