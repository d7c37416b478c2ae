package limitrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

const columns = `wallet_type, min_withdrawal, max_per_tx, max_tx_count_24h, max_amount_24h, is_active, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func scan(row pgx.Row) (*domain.WalletLimit, error) {
	var l domain.WalletLimit
	err := row.Scan(&l.WalletType, &l.MinWithdrawal, &l.MaxPerTx, &l.MaxTxCount24h, &l.MaxAmount24h, &l.IsActive, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) Find(ctx context.Context, walletType domain.WalletType) (*domain.WalletLimit, error) {
	query := `SELECT ` + columns + ` FROM wallet_limits WHERE wallet_type = $1`
	l, err := scan(r.db.QueryRow(ctx, query, walletType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get wallet limit", zap.String("walletType", string(walletType)), zap.Error(err))
		return nil, err
	}
	return l, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.WalletLimit, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM wallet_limits ORDER BY wallet_type`)
	if err != nil {
		zap.L().Error("failed to list wallet limits", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var limits []domain.WalletLimit
	for rows.Next() {
		l, err := scan(rows)
		if err != nil {
			zap.L().Error("failed to scan wallet limit", zap.Error(err))
			return nil, err
		}
		limits = append(limits, *l)
	}
	return limits, rows.Err()
}

func (r *Repository) Upsert(ctx context.Context, l *domain.WalletLimit) error {
	query := `
        INSERT INTO wallet_limits (wallet_type, min_withdrawal, max_per_tx, max_tx_count_24h, max_amount_24h, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (wallet_type) DO UPDATE
        SET min_withdrawal = EXCLUDED.min_withdrawal,
            max_per_tx = EXCLUDED.max_per_tx,
            max_tx_count_24h = EXCLUDED.max_tx_count_24h,
            max_amount_24h = EXCLUDED.max_amount_24h,
            is_active = EXCLUDED.is_active,
            updated_at = now()
    `
	_, err := r.db.Exec(ctx, query, l.WalletType, l.MinWithdrawal, l.MaxPerTx, l.MaxTxCount24h, l.MaxAmount24h, l.IsActive)
	if err != nil {
		zap.L().Error("failed to upsert wallet limit", zap.String("walletType", string(l.WalletType)), zap.Error(err))
		return err
	}
	return nil
}
