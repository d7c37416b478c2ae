package payoutrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

// Claim records the binary settlement of a user for a date. It reports
// false when the pair was already settled.
func (r *Repository) Claim(ctx context.Context, l *domain.BinaryPayoutLog) (bool, error) {
	query := `
        INSERT INTO binary_payout_logs (user_id, date, left_before, right_before, volume_paid, payout_amt)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (user_id, date) DO NOTHING
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, l.UserID, l.Date, l.LeftBefore, l.RightBefore, l.VolumePaid, l.PayoutAmt).
		Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		zap.L().Error("can't claim binary payout", zap.Int64("userID", l.UserID), zap.Error(err))
		return false, err
	}
	return true, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.BinaryPayoutLog, error) {
	query := `
        SELECT id, user_id, date, left_before, right_before, volume_paid, payout_amt, created_at
        FROM binary_payout_logs
        WHERE user_id = $1
        ORDER BY date DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch binary payouts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var logs []domain.BinaryPayoutLog
	for rows.Next() {
		var l domain.BinaryPayoutLog
		err := rows.Scan(&l.ID, &l.UserID, &l.Date, &l.LeftBefore, &l.RightBefore, &l.VolumePaid, &l.PayoutAmt, &l.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan binary payout", zap.Error(err))
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
