package addressrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

const (
	methodColumns  = `id, name, currency, allowed_change_count, created_at`
	addressColumns = `a.id, a.user_id, a.method_id, m.name, m.currency, a.address, a.change_count, a.created_at, a.updated_at`
	addressFrom    = ` FROM payout_addresses a JOIN payout_methods m ON m.id = a.method_id`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func scanMethod(row pgx.Row) (*domain.PayoutMethod, error) {
	var m domain.PayoutMethod
	if err := row.Scan(&m.ID, &m.Name, &m.Currency, &m.AllowedChangeCount, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanAddress(row pgx.Row) (*domain.PayoutAddress, error) {
	var a domain.PayoutAddress
	err := row.Scan(&a.ID, &a.UserID, &a.MethodID, &a.MethodName, &a.Currency, &a.Address, &a.ChangeCount,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) ListMethods(ctx context.Context) ([]domain.PayoutMethod, error) {
	rows, err := r.db.Query(ctx, `SELECT `+methodColumns+` FROM payout_methods ORDER BY name`)
	if err != nil {
		zap.L().Error("failed to list payout methods", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var methods []domain.PayoutMethod
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			zap.L().Error("failed to scan payout method", zap.Error(err))
			return nil, err
		}
		methods = append(methods, *m)
	}
	return methods, rows.Err()
}

func (r *Repository) FindMethod(ctx context.Context, id int64) (*domain.PayoutMethod, error) {
	m, err := scanMethod(r.db.QueryRow(ctx, `SELECT `+methodColumns+` FROM payout_methods WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get payout method", zap.Int64("methodID", id), zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (r *Repository) CreateMethod(ctx context.Context, m *domain.PayoutMethod) (*domain.PayoutMethod, error) {
	query := `
        INSERT INTO payout_methods (name, currency, allowed_change_count)
        VALUES ($1, $2, $3)
        RETURNING ` + methodColumns
	created, err := scanMethod(r.db.QueryRow(ctx, query, m.Name, m.Currency, m.AllowedChangeCount))
	if err != nil {
		if pg.IsUniqueViolation(err, "payout_methods_name_key") {
			return nil, domain.ErrPayoutMethodExists
		}
		zap.L().Error("can't create payout method", zap.String("name", m.Name), zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) UpdateMethod(ctx context.Context, m *domain.PayoutMethod) (*domain.PayoutMethod, error) {
	query := `
        UPDATE payout_methods SET name = $2, currency = $3, allowed_change_count = $4
        WHERE id = $1
        RETURNING ` + methodColumns
	updated, err := scanMethod(r.db.QueryRow(ctx, query, m.ID, m.Name, m.Currency, m.AllowedChangeCount))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domain.ErrPayoutMethodNotFound
		case pg.IsUniqueViolation(err, "payout_methods_name_key"):
			return nil, domain.ErrPayoutMethodExists
		}
		zap.L().Error("can't update payout method", zap.Int64("methodID", m.ID), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

// DeleteMethod removes a method; its addresses go with it.
func (r *Repository) DeleteMethod(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payout_methods WHERE id = $1`, id)
	if err != nil {
		zap.L().Error("can't delete payout method", zap.Int64("methodID", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPayoutMethodNotFound
	}
	return nil
}

func (r *Repository) ListAddresses(ctx context.Context, userID int64) ([]domain.PayoutAddress, error) {
	rows, err := r.db.Query(ctx, `SELECT `+addressColumns+addressFrom+` WHERE a.user_id = $1 ORDER BY a.id`, userID)
	if err != nil {
		zap.L().Error("failed to list payout addresses", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var list []domain.PayoutAddress
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			zap.L().Error("failed to scan payout address", zap.Error(err))
			return nil, err
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

func (r *Repository) FindAddress(ctx context.Context, id int64) (*domain.PayoutAddress, error) {
	a, err := scanAddress(r.db.QueryRow(ctx, `SELECT `+addressColumns+addressFrom+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get payout address", zap.Int64("addressID", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (r *Repository) CreateAddress(ctx context.Context, a *domain.PayoutAddress) (*domain.PayoutAddress, error) {
	query := `
        INSERT INTO payout_addresses (user_id, method_id, address)
        VALUES ($1, $2, $3)
        RETURNING id, change_count, created_at, updated_at
    `
	created := *a
	err := r.db.QueryRow(ctx, query, a.UserID, a.MethodID, a.Address).
		Scan(&created.ID, &created.ChangeCount, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		zap.L().Error("can't create payout address", zap.Int64("userID", a.UserID), zap.Error(err))
		return nil, err
	}
	return &created, nil
}

// ChangeAddress replaces the address and spends one change, but only while
// the method still allows it. It reports whether the row was updated.
func (r *Repository) ChangeAddress(ctx context.Context, id int64, address string) (bool, error) {
	query := `
        UPDATE payout_addresses a
        SET address = $2, change_count = a.change_count + 1, updated_at = now()
        FROM payout_methods m
        WHERE a.id = $1 AND m.id = a.method_id AND a.change_count < m.allowed_change_count
    `
	tag, err := r.db.Exec(ctx, query, id, address)
	if err != nil {
		zap.L().Error("can't change payout address", zap.Int64("addressID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// OverrideAddress replaces the address without spending a change.
func (r *Repository) OverrideAddress(ctx context.Context, id int64, address string) error {
	tag, err := r.db.Exec(ctx, `UPDATE payout_addresses SET address = $2, updated_at = now() WHERE id = $1`, id, address)
	if err != nil {
		zap.L().Error("can't override payout address", zap.Int64("addressID", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPayoutAddressNotFound
	}
	return nil
}

func (r *Repository) DeleteAddress(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payout_addresses WHERE id = $1`, id)
	if err != nil {
		zap.L().Error("can't delete payout address", zap.Int64("addressID", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPayoutAddressNotFound
	}
	return nil
}
