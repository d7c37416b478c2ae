// Package seed loads the back-office catalog (settings, withdrawal limits,
// packages and holidays) from a YAML file and applies it through the admin
// services, so every change is validated and audited like a manual edit.
package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type Limit struct {
	WalletType    string `yaml:"wallet_type"`
	MinWithdrawal string `yaml:"min_withdrawal"`
	MaxPerTx      string `yaml:"max_per_tx"`
	MaxTxCount24h int    `yaml:"max_tx_count_24h"`
	MaxAmount24h  string `yaml:"max_amount_24h"`
	IsActive      *bool  `yaml:"is_active"`
}

type Package struct {
	Name           string `yaml:"name"`
	InvestmentMin  string `yaml:"investment_min"`
	InvestmentMax  string `yaml:"investment_max"`
	DailyReturnPct string `yaml:"daily_return_pct"`
	DurationDays   int    `yaml:"duration_days"`
	CapitalReturn  bool   `yaml:"capital_return"`
	IsActive       *bool  `yaml:"is_active"`
}

type Holiday struct {
	Date  string `yaml:"date"`
	Title string `yaml:"title"`
}

type Catalog struct {
	Settings map[string]string `yaml:"settings"`
	Limits   []Limit           `yaml:"limits"`
	Packages []Package         `yaml:"packages"`
	Holidays []Holiday         `yaml:"holidays"`
}

type Admin interface {
	UpdateSetting(ctx context.Context, key, value string) error
	UpsertHoliday(ctx context.Context, date time.Time, title string) error
}

type Limits interface {
	UpsertLimit(ctx context.Context, limit domain.WalletLimit) (*domain.WalletLimit, error)
}

type Packages interface {
	ListAll(ctx context.Context) ([]domain.Package, error)
	Create(ctx context.Context, p domain.Package) (*domain.Package, error)
	Update(ctx context.Context, p domain.Package) (*domain.Package, error)
}

type Summary struct {
	Settings        int
	Limits          int
	PackagesCreated int
	PackagesUpdated int
	Holidays        int
}

// Load reads a catalog file; relative paths resolve against the working directory.
func Load(file string) (*Catalog, error) {
	path := file
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, file)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", file, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("unable to parse catalog: %w", err)
	}
	for i, p := range c.Packages {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("package at index %d missing name", i)
		}
	}
	for i, l := range c.Limits {
		if l.WalletType == "" {
			return nil, fmt.Errorf("limit at index %d missing wallet_type", i)
		}
	}
	for i, h := range c.Holidays {
		if h.Date == "" {
			return nil, fmt.Errorf("holiday at index %d missing date", i)
		}
	}
	return &c, nil
}

type Seeder struct {
	admin    Admin
	limits   Limits
	packages Packages
	loc      *time.Location
}

func New(admin Admin, limits Limits, packages Packages, loc *time.Location) *Seeder {
	return &Seeder{admin: admin, limits: limits, packages: packages, loc: loc}
}

// Apply writes the catalog. Packages are matched by name, so running the
// same file twice updates rather than duplicates them.
func (s *Seeder) Apply(ctx context.Context, c *Catalog) (*Summary, error) {
	sum := &Summary{}

	for key, value := range c.Settings {
		if err := s.admin.UpdateSetting(ctx, key, value); err != nil {
			return sum, fmt.Errorf("setting %s: %w", key, err)
		}
		sum.Settings++
	}

	for _, l := range c.Limits {
		limit, err := l.toDomain()
		if err != nil {
			return sum, err
		}
		if _, err := s.limits.UpsertLimit(ctx, limit); err != nil {
			return sum, fmt.Errorf("limit %s: %w", l.WalletType, err)
		}
		sum.Limits++
	}

	existing, err := s.packages.ListAll(ctx)
	if err != nil {
		return sum, err
	}
	byName := make(map[string]domain.Package, len(existing))
	for _, p := range existing {
		byName[strings.ToLower(p.Name)] = p
	}
	for _, p := range c.Packages {
		pkg, err := p.toDomain()
		if err != nil {
			return sum, err
		}
		if old, ok := byName[strings.ToLower(pkg.Name)]; ok {
			pkg.ID = old.ID
			if _, err := s.packages.Update(ctx, pkg); err != nil {
				return sum, fmt.Errorf("package %s: %w", p.Name, err)
			}
			sum.PackagesUpdated++
			continue
		}
		if _, err := s.packages.Create(ctx, pkg); err != nil {
			return sum, fmt.Errorf("package %s: %w", p.Name, err)
		}
		sum.PackagesCreated++
	}

	for _, h := range c.Holidays {
		date, err := time.ParseInLocation(time.DateOnly, h.Date, s.loc)
		if err != nil {
			return sum, fmt.Errorf("holiday %q: %w", h.Date, err)
		}
		if err := s.admin.UpsertHoliday(ctx, date, h.Title); err != nil {
			return sum, fmt.Errorf("holiday %s: %w", h.Date, err)
		}
		sum.Holidays++
	}

	zap.L().Info("catalog applied",
		zap.Int("settings", sum.Settings), zap.Int("limits", sum.Limits),
		zap.Int("packagesCreated", sum.PackagesCreated), zap.Int("packagesUpdated", sum.PackagesUpdated),
		zap.Int("holidays", sum.Holidays))
	return sum, nil
}

func (l Limit) toDomain() (domain.WalletLimit, error) {
	var (
		out domain.WalletLimit
		err error
	)
	out.WalletType = domain.WalletType(strings.ToUpper(l.WalletType))
	out.MaxTxCount24h = l.MaxTxCount24h
	out.IsActive = l.IsActive == nil || *l.IsActive
	if out.MinWithdrawal, err = amount("min_withdrawal", l.MinWithdrawal); err != nil {
		return out, err
	}
	if out.MaxPerTx, err = amount("max_per_tx", l.MaxPerTx); err != nil {
		return out, err
	}
	if out.MaxAmount24h, err = amount("max_amount_24h", l.MaxAmount24h); err != nil {
		return out, err
	}
	return out, nil
}

func (p Package) toDomain() (domain.Package, error) {
	var (
		out domain.Package
		err error
	)
	out.Name = strings.TrimSpace(p.Name)
	out.DurationDays = p.DurationDays
	out.CapitalReturn = p.CapitalReturn
	out.IsActive = p.IsActive == nil || *p.IsActive
	if out.InvestmentMin, err = amount("investment_min", p.InvestmentMin); err != nil {
		return out, err
	}
	if out.InvestmentMax, err = amount("investment_max", p.InvestmentMax); err != nil {
		return out, err
	}
	if out.DailyReturnPct, err = amount("daily_return_pct", p.DailyReturnPct); err != nil {
		return out, err
	}
	return out, nil
}

func amount(field, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid number %q", field, v)
	}
	return d, nil
}
