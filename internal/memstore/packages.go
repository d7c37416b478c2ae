package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type PackageRepo struct {
	s *Store
}

func (r *PackageRepo) Create(ctx context.Context, p *domain.Package) (*domain.Package, error) {
	defer r.s.lock(ctx)()
	p.ID = r.s.state.nextID()
	p.CreatedAt = r.s.Now()
	r.s.state.packages[p.ID] = *p
	return p, nil
}

func (r *PackageRepo) Update(ctx context.Context, p *domain.Package) error {
	defer r.s.lock(ctx)()
	old, ok := r.s.state.packages[p.ID]
	if !ok {
		return domain.ErrPackageNotFound
	}
	updated := *p
	updated.CreatedAt = old.CreatedAt
	r.s.state.packages[p.ID] = updated
	return nil
}

func (r *PackageRepo) FindByID(ctx context.Context, id int64) (*domain.Package, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.state.packages[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PackageRepo) ListActive(ctx context.Context) ([]domain.Package, error) {
	defer r.s.lock(ctx)()
	var list []domain.Package
	for _, id := range sortedKeys(r.s.state.packages) {
		if p := r.s.state.packages[id]; p.IsActive {
			list = append(list, p)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].InvestmentMin.LessThan(list[j].InvestmentMin) })
	return list, nil
}

func (r *PackageRepo) ListAll(ctx context.Context) ([]domain.Package, error) {
	defer r.s.lock(ctx)()
	var list []domain.Package
	for _, id := range sortedKeys(r.s.state.packages) {
		list = append(list, r.s.state.packages[id])
	}
	return list, nil
}

func (r *PackageRepo) CreatePurchase(ctx context.Context, p *domain.PackagePurchase) (*domain.PackagePurchase, error) {
	defer r.s.lock(ctx)()
	p.ID = r.s.state.nextID()
	p.CreatedAt = r.s.Now()
	r.s.state.purchases[p.ID] = *p
	return p, nil
}

// joined fills the package columns the SQL repository joins in.
func (r *PackageRepo) joined(p domain.PackagePurchase) domain.PackagePurchase {
	if pkg, ok := r.s.state.packages[p.PackageID]; ok {
		p.PackageName = pkg.Name
		p.DailyReturnPct = pkg.DailyReturnPct
		p.CapitalReturn = pkg.CapitalReturn
	}
	return p
}

func (r *PackageRepo) purchases(ctx context.Context, match func(domain.PackagePurchase) bool) []domain.PackagePurchase {
	defer r.s.lock(ctx)()
	var list []domain.PackagePurchase
	for _, id := range sortedKeys(r.s.state.purchases) {
		if p := r.s.state.purchases[id]; match(p) {
			list = append(list, r.joined(p))
		}
	}
	return list
}

func (r *PackageRepo) ListPurchasesByUser(ctx context.Context, userID int64) ([]domain.PackagePurchase, error) {
	list := r.purchases(ctx, func(p domain.PackagePurchase) bool { return p.UserID == userID })
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}

func (r *PackageRepo) FindAccruable(ctx context.Context, date time.Time) ([]domain.PackagePurchase, error) {
	d := dateKey(date)
	return r.purchases(ctx, func(p domain.PackagePurchase) bool {
		return p.Status == domain.PurchaseActive && dateKey(p.StartDate) <= d && dateKey(p.EndDate) > d
	}), nil
}

func (r *PackageRepo) FindMatured(ctx context.Context, date time.Time) ([]domain.PackagePurchase, error) {
	d := dateKey(date)
	return r.purchases(ctx, func(p domain.PackagePurchase) bool {
		return p.Status == domain.PurchaseActive && dateKey(p.EndDate) <= d
	}), nil
}

func (r *PackageRepo) ClaimIncome(ctx context.Context, l *domain.PackageIncomeLog) (bool, error) {
	defer r.s.lock(ctx)()
	key := incomeKey{purchaseID: l.PurchaseID, date: dateKey(l.CreditDate)}
	if _, taken := r.s.state.incomeLogs[key]; taken {
		return false, nil
	}
	l.ID = r.s.state.nextID()
	l.CreatedAt = r.s.Now()
	r.s.state.incomeLogs[key] = *l
	return true, nil
}

func (r *PackageRepo) Complete(ctx context.Context, purchaseID int64) (bool, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.state.purchases[purchaseID]
	if !ok || p.Status != domain.PurchaseActive {
		return false, nil
	}
	p.Status = domain.PurchaseCompleted
	r.s.state.purchases[purchaseID] = p
	return true, nil
}
