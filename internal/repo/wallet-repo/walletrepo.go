package walletrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

const (
	walletColumns = `id, user_id, type, balance, updated_at`
	txColumns     = `id, wallet_id, user_id, type, direction, amount, balance_after, tx_number, purpose, meta, created_at`

	externalTxConstraint = "wallet_transactions_external_tx_key"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	if err := row.Scan(&w.ID, &w.UserID, &w.Type, &w.Balance, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func scanTx(row pgx.Row) (*domain.WalletTransaction, error) {
	var t domain.WalletTransaction
	err := row.Scan(&t.ID, &t.WalletID, &t.UserID, &t.Type, &t.Direction, &t.Amount, &t.BalanceAfter,
		&t.TxNumber, &t.Purpose, &t.Meta, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateWallets opens every wallet type for a freshly registered user.
func (r *Repository) CreateWallets(ctx context.Context, userID int64) error {
	types := make([]string, len(domain.WalletTypes))
	for i, wt := range domain.WalletTypes {
		types[i] = string(wt)
	}
	query := `
        INSERT INTO wallets (user_id, type)
        SELECT $1, unnest($2::text[])
    `
	if _, err := r.db.Exec(ctx, query, userID, types); err != nil {
		zap.L().Error("failed to create wallets", zap.Int64("userID", userID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) findWallet(ctx context.Context, query string, args ...any) (*domain.Wallet, error) {
	w, err := scanWallet(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get wallet", zap.Error(err))
		return nil, err
	}
	return w, nil
}

func (r *Repository) FindByUserAndType(ctx context.Context, userID int64, walletType domain.WalletType) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 AND type = $2`
	return r.findWallet(ctx, query, userID, walletType)
}

func (r *Repository) FindByUserAndTypeForUpdate(ctx context.Context, userID int64, walletType domain.WalletType) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 AND type = $2 FOR UPDATE`
	return r.findWallet(ctx, query, userID, walletType)
}

// LockByIDs takes row locks on the given wallets in id order.
func (r *Repository) LockByIDs(ctx context.Context, ids []int64) error {
	query := `SELECT id FROM wallets WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		zap.L().Error("failed to lock wallets", zap.Error(err))
		return err
	}
	rows.Close()
	return rows.Err()
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to list wallets", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			zap.L().Error("failed to scan wallet", zap.Error(err))
			return nil, err
		}
		wallets = append(wallets, *w)
	}
	return wallets, rows.Err()
}

func (r *Repository) UpdateBalance(ctx context.Context, walletID int64, balance decimal.Decimal) error {
	query := `UPDATE wallets SET balance = $2, updated_at = now() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, walletID, balance)
	if err != nil {
		zap.L().Error("failed to update wallet balance", zap.Int64("walletID", walletID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}
	return nil
}

// InsertTransaction appends a ledger row. It reports false when the
// tx number is already taken so the caller can retry with a new one.
func (r *Repository) InsertTransaction(ctx context.Context, t *domain.WalletTransaction) (bool, error) {
	query := `
        INSERT INTO wallet_transactions (wallet_id, user_id, type, direction, amount, balance_after, tx_number, purpose, meta)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (tx_number) DO NOTHING
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, t.WalletID, t.UserID, t.Type, t.Direction, t.Amount, t.BalanceAfter,
		t.TxNumber, t.Purpose, t.Meta).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		if pg.IsUniqueViolation(err, externalTxConstraint) {
			return false, domain.ErrDuplicateDeposit
		}
		zap.L().Error("failed to insert wallet transaction", zap.String("txNumber", t.TxNumber), zap.Error(err))
		return false, err
	}
	return true, nil
}

func (r *Repository) listTx(ctx context.Context, query string, args ...any) ([]domain.WalletTransaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to list wallet transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txs []domain.WalletTransaction
	for rows.Next() {
		t, err := scanTx(rows)
		if err != nil {
			zap.L().Error("failed to scan wallet transaction", zap.Error(err))
			return nil, err
		}
		txs = append(txs, *t)
	}
	return txs, rows.Err()
}

func (r *Repository) ListTransactions(ctx context.Context, walletID int64, limit, offset int) ([]domain.WalletTransaction, error) {
	query := `
        SELECT ` + txColumns + `
        FROM wallet_transactions
        WHERE wallet_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `
	return r.listTx(ctx, query, walletID, limit, offset)
}

func (r *Repository) ListCredits(ctx context.Context, userID int64, txType domain.TxType, limit, offset int) ([]domain.WalletTransaction, error) {
	query := `
        SELECT ` + txColumns + `
        FROM wallet_transactions
        WHERE user_id = $1 AND type = $2 AND direction = 'CREDIT'
        ORDER BY created_at DESC, id DESC
        LIMIT $3 OFFSET $4
    `
	return r.listTx(ctx, query, userID, txType, limit, offset)
}

func (r *Repository) sum(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		zap.L().Error("failed to sum wallet transactions", zap.Error(err))
		return decimal.Zero, err
	}
	return total, nil
}

func (r *Repository) SumCredits(ctx context.Context, userID int64, txType domain.TxType) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM wallet_transactions
        WHERE user_id = $1 AND type = $2 AND direction = 'CREDIT'
    `
	return r.sum(ctx, query, userID, txType)
}

// SumSigned replays the ledger of one wallet.
func (r *Repository) SumSigned(ctx context.Context, walletID int64) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(CASE WHEN direction = 'CREDIT' THEN amount ELSE -amount END), 0)
        FROM wallet_transactions
        WHERE wallet_id = $1
    `
	return r.sum(ctx, query, walletID)
}

// WithdrawStats counts WITHDRAW debits of a wallet since the given instant,
// leaving out reserves that were refunded.
func (r *Repository) WithdrawStats(ctx context.Context, walletID int64, since time.Time) (int, decimal.Decimal, error) {
	query := `
        SELECT COUNT(*), COALESCE(SUM(t.amount), 0)
        FROM wallet_transactions t
        WHERE t.wallet_id = $1 AND t.type = 'WITHDRAW' AND t.direction = 'DEBIT' AND t.created_at >= $2
          AND NOT EXISTS (
              SELECT 1 FROM wallet_transactions r
              WHERE r.wallet_id = t.wallet_id AND r.direction = 'CREDIT'
                AND r.meta ->> 'reserveTxNumber' = t.tx_number
          )
    `
	var (
		count int
		total decimal.Decimal
	)
	if err := r.db.QueryRow(ctx, query, walletID, since).Scan(&count, &total); err != nil {
		zap.L().Error("failed to get withdraw stats", zap.Int64("walletID", walletID), zap.Error(err))
		return 0, decimal.Zero, err
	}
	return count, total, nil
}

// GainBreakdown totals credited income per type, deposits excluded.
func (r *Repository) GainBreakdown(ctx context.Context, userID int64, from, to *time.Time) ([]domain.GainRow, error) {
	query := `
        SELECT type, COALESCE(SUM(amount), 0), COUNT(*)
        FROM wallet_transactions
        WHERE user_id = $1 AND direction = 'CREDIT' AND type <> 'DEPOSIT'
          AND ($2::timestamptz IS NULL OR created_at >= $2)
          AND ($3::timestamptz IS NULL OR created_at < $3)
        GROUP BY type
        ORDER BY type
    `
	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		zap.L().Error("failed to build gain report", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var report []domain.GainRow
	for rows.Next() {
		var g domain.GainRow
		if err := rows.Scan(&g.Type, &g.Total, &g.Count); err != nil {
			zap.L().Error("failed to scan gain row", zap.Error(err))
			return nil, err
		}
		report = append(report, g)
	}
	return report, rows.Err()
}
