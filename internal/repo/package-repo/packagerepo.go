package packagerepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

const (
	packageColumns = `id, name, investment_min, investment_max, daily_return_pct, duration_days, capital_return,
        is_active, created_at`
	purchaseSelect = `
        SELECT pp.id, pp.user_id, pp.buyer_id, pp.package_id, pp.amount, pp.start_date, pp.end_date, pp.status,
               pp.split_config, pp.created_at, p.name, p.daily_return_pct, p.capital_return
        FROM package_purchases pp
        JOIN packages p ON p.id = pp.package_id`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func scanPackage(row pgx.Row) (*domain.Package, error) {
	var p domain.Package
	err := row.Scan(&p.ID, &p.Name, &p.InvestmentMin, &p.InvestmentMax, &p.DailyReturnPct, &p.DurationDays,
		&p.CapitalReturn, &p.IsActive, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, p *domain.Package) (*domain.Package, error) {
	query := `
        INSERT INTO packages (name, investment_min, investment_max, daily_return_pct, duration_days, capital_return, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, p.Name, p.InvestmentMin, p.InvestmentMax, p.DailyReturnPct, p.DurationDays,
		p.CapitalReturn, p.IsActive).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		zap.L().Error("can't create package", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) Update(ctx context.Context, p *domain.Package) error {
	query := `
        UPDATE packages
        SET name = $2, investment_min = $3, investment_max = $4, daily_return_pct = $5, duration_days = $6,
            capital_return = $7, is_active = $8
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, p.ID, p.Name, p.InvestmentMin, p.InvestmentMax, p.DailyReturnPct,
		p.DurationDays, p.CapitalReturn, p.IsActive)
	if err != nil {
		zap.L().Error("can't update package", zap.Int64("packageID", p.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPackageNotFound
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`
	p, err := scanPackage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find package", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) listPackages(ctx context.Context, query string) ([]domain.Package, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't list packages", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var packages []domain.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			zap.L().Error("can't scan package row", zap.Error(err))
			return nil, err
		}
		packages = append(packages, *p)
	}
	return packages, rows.Err()
}

func (r *Repository) ListActive(ctx context.Context) ([]domain.Package, error) {
	return r.listPackages(ctx, `SELECT `+packageColumns+` FROM packages WHERE is_active ORDER BY investment_min`)
}

func (r *Repository) ListAll(ctx context.Context) ([]domain.Package, error) {
	return r.listPackages(ctx, `SELECT `+packageColumns+` FROM packages ORDER BY id`)
}

func (r *Repository) CreatePurchase(ctx context.Context, p *domain.PackagePurchase) (*domain.PackagePurchase, error) {
	query := `
        INSERT INTO package_purchases (user_id, buyer_id, package_id, amount, start_date, end_date, status, split_config)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, p.UserID, p.BuyerID, p.PackageID, p.Amount, p.StartDate, p.EndDate, p.Status,
		p.SplitConfig).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		zap.L().Error("can't save purchase", zap.Int64("userID", p.UserID), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) listPurchases(ctx context.Context, op, query string, args ...any) ([]domain.PackagePurchase, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get purchases "+op, zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var purchases []domain.PackagePurchase
	for rows.Next() {
		var p domain.PackagePurchase
		err := rows.Scan(&p.ID, &p.UserID, &p.BuyerID, &p.PackageID, &p.Amount, &p.StartDate, &p.EndDate, &p.Status,
			&p.SplitConfig, &p.CreatedAt, &p.PackageName, &p.DailyReturnPct, &p.CapitalReturn)
		if err != nil {
			zap.L().Error("can't scan purchase row "+op, zap.Error(err))
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func (r *Repository) ListPurchasesByUser(ctx context.Context, userID int64) ([]domain.PackagePurchase, error) {
	query := purchaseSelect + `
        WHERE pp.user_id = $1
        ORDER BY pp.created_at DESC
    `
	return r.listPurchases(ctx, "by user", query, userID)
}

// FindAccruable lists active purchases whose earning window covers date.
func (r *Repository) FindAccruable(ctx context.Context, date time.Time) ([]domain.PackagePurchase, error) {
	query := purchaseSelect + `
        WHERE pp.status = 'ACTIVE' AND pp.start_date <= $1 AND pp.end_date > $1
        ORDER BY pp.id
    `
	return r.listPurchases(ctx, "for accrual", query, date)
}

func (r *Repository) FindMatured(ctx context.Context, date time.Time) ([]domain.PackagePurchase, error) {
	query := purchaseSelect + `
        WHERE pp.status = 'ACTIVE' AND pp.end_date <= $1
        ORDER BY pp.id
    `
	return r.listPurchases(ctx, "for maturity", query, date)
}

// ClaimIncome records the accrual of one purchase for one date. It reports
// false when that date was already credited.
func (r *Repository) ClaimIncome(ctx context.Context, l *domain.PackageIncomeLog) (bool, error) {
	query := `
        INSERT INTO package_income_logs (purchase_id, credit_date, amount)
        VALUES ($1, $2, $3)
        ON CONFLICT (purchase_id, credit_date) DO NOTHING
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, l.PurchaseID, l.CreditDate, l.Amount).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		zap.L().Error("can't claim package income", zap.Int64("purchaseID", l.PurchaseID), zap.Error(err))
		return false, err
	}
	return true, nil
}

// Complete moves an active purchase to COMPLETED; false if it was not active.
func (r *Repository) Complete(ctx context.Context, purchaseID int64) (bool, error) {
	query := `UPDATE package_purchases SET status = 'COMPLETED' WHERE id = $1 AND status = 'ACTIVE'`
	tag, err := r.db.Exec(ctx, query, purchaseID)
	if err != nil {
		zap.L().Error("can't complete purchase", zap.Int64("purchaseID", purchaseID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
