package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GlebRadaev/mlmledger/internal/calendar"
	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/memstore"
	"github.com/GlebRadaev/mlmledger/internal/service/adminservice"
	"github.com/GlebRadaev/mlmledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/mlmledger/internal/service/limitservice"
	"github.com/GlebRadaev/mlmledger/internal/service/packageservice"
	"github.com/GlebRadaev/mlmledger/internal/service/settingsservice"
	"github.com/GlebRadaev/mlmledger/internal/service/treeservice"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
)

const catalog = `
settings:
  BINARY_INCOME_RATE: "10"
  BACK_OFFICE_CLOSING_TIME: "18:00"
limits:
  - wallet_type: m_wallet
    min_withdrawal: "10"
    max_per_tx: "500"
    max_tx_count_24h: 3
    max_amount_24h: "1000"
packages:
  - name: Starter
    investment_min: "100"
    investment_max: "999.99"
    daily_return_pct: "0.5"
    duration_days: 200
  - name: Premium
    investment_min: "1000"
    investment_max: "10000"
    daily_return_pct: "0.8"
    duration_days: 300
    capital_return: true
    is_active: false
holidays:
  - date: "2024-12-25"
    title: Christmas
`

func newSeeder(t *testing.T) (*Seeder, *memstore.Store, *packageservice.Service) {
	t.Helper()
	store := memstore.New()
	settings := settingsservice.New(store.Settings())
	cal := calendar.New(time.UTC, settings)
	tree := treeservice.New(store.Users(), store, 100)
	limits := limitservice.New(store.Wallets(), store.Limits(), store.Audit(), store)
	ledger := ledgerservice.New(store.Wallets(), store.Users(), store.Audit(), limits, tree, settings, store, 100)
	packages := packageservice.New(store.Packages(), store.Users(), store.Audit(), ledger, tree, settings, cal, store, 100)
	admin := adminservice.New(store.Users(), store.Settings(), settings, store.Audit(), ledger, nil, nil, cal, store, &auth.Bcrypt{Cost: bcrypt.MinCost})
	return New(admin, limits, packages, time.UTC), store, packages
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(catalog))
	require.NoError(t, err)
	assert.Equal(t, "10", c.Settings[domain.SettingBinaryRate])
	require.Len(t, c.Packages, 2)
	require.NotNil(t, c.Packages[1].IsActive)
	assert.False(t, *c.Packages[1].IsActive)
	assert.Nil(t, c.Packages[0].IsActive)

	tests := []struct {
		name string
		data string
	}{
		{name: "Unknown field", data: "packages:\n  - name: X\n    colour: red\n"},
		{name: "Package without name", data: "packages:\n  - duration_days: 3\n"},
		{name: "Limit without wallet", data: "limits:\n  - max_per_tx: \"5\"\n"},
		{name: "Holiday without date", data: "holidays:\n  - title: Someday\n"},
		{name: "Not yaml", data: "settings: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Holidays, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	seeder, store, packages := newSeeder(t)
	ctx := context.Background()
	c, err := Parse([]byte(catalog))
	require.NoError(t, err)

	sum, err := seeder.Apply(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, &Summary{Settings: 2, Limits: 1, PackagesCreated: 2, Holidays: 1}, sum)

	raw, err := store.Settings().All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "18:00", raw[domain.SettingClosingTime])

	limit, err := store.Limits().Find(ctx, domain.MWallet)
	require.NoError(t, err)
	require.NotNil(t, limit)
	assert.True(t, limit.IsActive)
	assert.Equal(t, 3, limit.MaxTxCount24h)

	active, err := packages.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Starter", active[0].Name)

	h, err := store.Settings().FindHoliday(ctx, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "Christmas", h.Title)

	c.Packages[0].DurationDays = 250
	sum, err = seeder.Apply(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.PackagesCreated)
	assert.Equal(t, 2, sum.PackagesUpdated)

	all, err := packages.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 250, all[0].DurationDays)
}

func TestApply_StopsOnInvalidEntry(t *testing.T) {
	seeder, store, _ := newSeeder(t)
	c := &Catalog{
		Packages: []Package{
			{Name: "Broken", InvestmentMin: "100", InvestmentMax: "50", DailyReturnPct: "1", DurationDays: 10},
		},
	}

	sum, err := seeder.Apply(context.Background(), c)
	assert.ErrorIs(t, err, domain.ErrInvalidPackage)
	assert.Equal(t, 0, sum.PackagesCreated)
	assert.Empty(t, store.AuditLogs())

	_, err = seeder.Apply(context.Background(), &Catalog{Packages: []Package{{Name: "X", InvestmentMin: "abc"}}})
	assert.Error(t, err)
}
