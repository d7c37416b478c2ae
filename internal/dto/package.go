package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type PackageDTO struct {
	ID             int64           `json:"id" example:"1"`
	Name           string          `json:"name" example:"Starter"`
	InvestmentMin  decimal.Decimal `json:"investmentMin" swaggertype:"string" example:"100.00"`
	InvestmentMax  decimal.Decimal `json:"investmentMax" swaggertype:"string" example:"1000.00"`
	DailyReturnPct decimal.Decimal `json:"dailyReturnPct" swaggertype:"string" example:"1.5"`
	DurationDays   int             `json:"durationDays" example:"30"`
	CapitalReturn  bool            `json:"capitalReturn"`
	IsActive       bool            `json:"isActive"`
}

func FromPackage(p *domain.Package) PackageDTO {
	return PackageDTO{
		ID:             p.ID,
		Name:           p.Name,
		InvestmentMin:  p.InvestmentMin,
		InvestmentMax:  p.InvestmentMax,
		DailyReturnPct: p.DailyReturnPct,
		DurationDays:   p.DurationDays,
		CapitalReturn:  p.CapitalReturn,
		IsActive:       p.IsActive,
	}
}

func FromPackages(ps []domain.Package) []PackageDTO {
	res := make([]PackageDTO, len(ps))
	for i := range ps {
		res[i] = FromPackage(&ps[i])
	}
	return res
}

// PackageRequestDTO is used by admins to create or replace a package.
type PackageRequestDTO struct {
	Name           string `json:"name" example:"Starter"`
	InvestmentMin  string `json:"investmentMin" example:"100"`
	InvestmentMax  string `json:"investmentMax" example:"1000"`
	DailyReturnPct string `json:"dailyReturnPct" example:"1.5"`
	DurationDays   int    `json:"durationDays" example:"30"`
	CapitalReturn  bool   `json:"capitalReturn"`
	IsActive       bool   `json:"isActive"`
}

func (r PackageRequestDTO) ToDomain() (domain.Package, error) {
	var (
		p   domain.Package
		err error
	)
	p.Name = r.Name
	p.DurationDays = r.DurationDays
	p.CapitalReturn = r.CapitalReturn
	p.IsActive = r.IsActive
	if p.InvestmentMin, err = decimal.NewFromString(r.InvestmentMin); err != nil {
		return p, domain.ErrInvalidPackage
	}
	if p.InvestmentMax, err = decimal.NewFromString(r.InvestmentMax); err != nil {
		return p, domain.ErrInvalidPackage
	}
	if p.DailyReturnPct, err = decimal.NewFromString(r.DailyReturnPct); err != nil {
		return p, domain.ErrInvalidPackage
	}
	return p, nil
}

type PurchaseRequestDTO struct {
	PackageID           int64             `json:"packageId" example:"1"`
	Amount              string            `json:"amount" example:"500"`
	BeneficiaryMemberID string            `json:"beneficiaryMemberId,omitempty" example:"4821930575"`
	Split               map[string]string `json:"split,omitempty"`
}

// SplitConfig converts the wire split into a domain split config.
func (r PurchaseRequestDTO) SplitConfig() (domain.SplitConfig, error) {
	if len(r.Split) == 0 {
		return nil, nil
	}
	split := make(domain.SplitConfig, len(r.Split))
	for k, v := range r.Split {
		wt, err := domain.ParseWalletType(k)
		if err != nil {
			return nil, domain.ErrInvalidSplit
		}
		pct, err := decimal.NewFromString(v)
		if err != nil {
			return nil, domain.ErrInvalidSplit
		}
		split[wt] = pct
	}
	return split, nil
}

type PurchaseDTO struct {
	ID          int64                 `json:"id"`
	UserID      int64                 `json:"userId"`
	BuyerID     int64                 `json:"buyerId"`
	PackageID   int64                 `json:"packageId"`
	PackageName string                `json:"packageName,omitempty"`
	Amount      decimal.Decimal       `json:"amount" swaggertype:"string" example:"500.00"`
	StartDate   string                `json:"startDate" example:"2024-05-02"`
	EndDate     string                `json:"endDate" example:"2024-06-01"`
	Status      domain.PurchaseStatus `json:"status" example:"ACTIVE"`
	SplitConfig domain.SplitConfig    `json:"splitConfig,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
}

func FromPurchase(p *domain.PackagePurchase) PurchaseDTO {
	return PurchaseDTO{
		ID:          p.ID,
		UserID:      p.UserID,
		BuyerID:     p.BuyerID,
		PackageID:   p.PackageID,
		PackageName: p.PackageName,
		Amount:      p.Amount,
		StartDate:   p.StartDate.Format(time.DateOnly),
		EndDate:     p.EndDate.Format(time.DateOnly),
		Status:      p.Status,
		SplitConfig: p.SplitConfig,
		CreatedAt:   p.CreatedAt,
	}
}

func FromPurchases(ps []domain.PackagePurchase) []PurchaseDTO {
	res := make([]PurchaseDTO, len(ps))
	for i := range ps {
		res[i] = FromPurchase(&ps[i])
	}
	return res
}
