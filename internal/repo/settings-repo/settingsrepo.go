package settingsrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

// Repository stores admin settings and the holiday calendar.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value FROM admin_settings`)
	if err != nil {
		zap.L().Error("failed to load settings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			zap.L().Error("failed to scan setting", zap.Error(err))
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

func (r *Repository) Set(ctx context.Context, key, value string) error {
	query := `
        INSERT INTO admin_settings (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
    `
	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		zap.L().Error("failed to save setting", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindHoliday(ctx context.Context, date time.Time) (*domain.Holiday, error) {
	var h domain.Holiday
	err := r.db.QueryRow(ctx, `SELECT date, title FROM holidays WHERE date = $1`, date).Scan(&h.Date, &h.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to find holiday", zap.Time("date", date), zap.Error(err))
		return nil, err
	}
	return &h, nil
}

func (r *Repository) UpsertHoliday(ctx context.Context, h domain.Holiday) error {
	query := `
        INSERT INTO holidays (date, title)
        VALUES ($1, $2)
        ON CONFLICT (date) DO UPDATE SET title = EXCLUDED.title
    `
	if _, err := r.db.Exec(ctx, query, h.Date, h.Title); err != nil {
		zap.L().Error("failed to save holiday", zap.Time("date", h.Date), zap.Error(err))
		return err
	}
	return nil
}
