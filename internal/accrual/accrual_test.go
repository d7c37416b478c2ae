package accrual

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/mlmledger/internal/calendar"
	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/memstore"
	"github.com/GlebRadaev/mlmledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/mlmledger/internal/service/limitservice"
	"github.com/GlebRadaev/mlmledger/internal/service/settingsservice"
	"github.com/GlebRadaev/mlmledger/internal/service/treeservice"
)

// Thursday morning, so the credit date is Wednesday 2024-03-13.
var thursday = time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func NewStore(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	settings := settingsservice.New(store.Settings())
	cal := calendar.New(time.UTC, settings)
	tree := treeservice.New(store.Users(), store, 100)
	limits := limitservice.New(store.Wallets(), store.Limits(), store.Audit(), store)
	ledger := ledgerservice.New(store.Wallets(), store.Users(), store.Audit(), limits, tree, settings, store, 100)
	service := New(store.Packages(), store.Users(), ledger, settings, cal, store, 3)
	service.now = func() time.Time { return thursday }
	t.Cleanup(service.Close)
	return service, store
}

func addPackage(t *testing.T, store *memstore.Store, dailyPct string, capitalReturn bool) int64 {
	t.Helper()
	p, err := store.Packages().Create(context.Background(), &domain.Package{
		Name:           "Gold",
		InvestmentMin:  decimal.NewFromInt(1),
		InvestmentMax:  decimal.NewFromInt(100000),
		DailyReturnPct: decimal.RequireFromString(dailyPct),
		DurationDays:   30,
		CapitalReturn:  capitalReturn,
		IsActive:       true,
	})
	require.NoError(t, err)
	return p.ID
}

func addPurchase(t *testing.T, store *memstore.Store, userID, packageID int64, amount string, start, end time.Time) int64 {
	t.Helper()
	p, err := store.Packages().CreatePurchase(context.Background(), &domain.PackagePurchase{
		UserID:    userID,
		BuyerID:   userID,
		PackageID: packageID,
		Amount:    decimal.RequireFromString(amount),
		StartDate: start,
		EndDate:   end,
		Status:    domain.PurchaseActive,
	})
	require.NoError(t, err)
	return p.ID
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestRun(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	half := addPackage(t, store, "0.5", false)
	odd := addPackage(t, store, "0.333", false)
	alice := store.AddUser(domain.User{})
	bob := store.AddUser(domain.User{})
	addPurchase(t, store, alice, half, "1000", day(10), day(10).AddDate(0, 0, 30))
	addPurchase(t, store, bob, odd, "333", day(10), day(10).AddDate(0, 0, 30))
	addPurchase(t, store, bob, half, "1000", day(20), day(20).AddDate(0, 0, 30))

	report, err := service.Run(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, JobName, report.Job)
	assert.Equal(t, day(13), report.CreditDate)
	assert.False(t, report.Skipped)
	assert.Equal(t, 2, report.Eligible)
	assert.Equal(t, 2, report.Credited)
	assert.Equal(t, 0, report.Failed)
	assertAmount(t, "6.11", report.Total)

	assertAmount(t, "5", store.Balance(alice, domain.MWallet))
	assertAmount(t, "1.11", store.Balance(bob, domain.MWallet))
	require.Len(t, store.IncomeLogs(), 2)
	for _, tx := range store.Transactions() {
		assert.Equal(t, domain.TxROICredit, tx.Type)
		assert.Equal(t, domain.Credit, tx.Direction)
	}

	again, err := service.Run(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Credited)
	assert.Equal(t, 2, again.AlreadySettled)
	assertAmount(t, "0", again.Total)
	assertAmount(t, "5", store.Balance(alice, domain.MWallet))
	assert.Len(t, store.Transactions(), 2)
}

func TestRun_ExplicitDateAndWallet(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	require.NoError(t, store.Settings().Set(ctx, domain.SettingROIWallet, string(domain.IWallet)))
	pkg := addPackage(t, store, "1", false)
	user := store.AddUser(domain.User{})
	addPurchase(t, store, user, pkg, "200", day(1), day(1).AddDate(0, 0, 30))

	// at closing on Tuesday the credit date is that Tuesday
	runAt := time.Date(2024, 3, 12, 23, 59, 0, 0, time.UTC)
	report, err := service.Run(ctx, &runAt)
	require.NoError(t, err)
	assert.Equal(t, day(12), report.CreditDate)
	assert.Equal(t, 1, report.Credited)
	assertAmount(t, "2", store.Balance(user, domain.IWallet))
	assertAmount(t, "0", store.Balance(user, domain.MWallet))
}

func TestRun_Skipped(t *testing.T) {
	tests := []struct {
		name       string
		runAt      time.Time
		prepare    func(store *memstore.Store)
		wantReason string
	}{
		{
			name:       "Saturday",
			runAt:      time.Date(2024, 3, 17, 10, 0, 0, 0, time.UTC),
			wantReason: "weekend",
		},
		{
			name:  "Holiday",
			runAt: thursday,
			prepare: func(store *memstore.Store) {
				require.NoError(t, store.Settings().UpsertHoliday(context.Background(), domain.Holiday{Date: day(13), Title: "Founders day"}))
			},
			wantReason: "holiday: Founders day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := NewStore(t)
			pkg := addPackage(t, store, "1", true)
			user := store.AddUser(domain.User{})
			addPurchase(t, store, user, pkg, "100", day(1), day(1).AddDate(0, 0, 30))
			addPurchase(t, store, user, pkg, "100", day(1), day(10))
			if tt.prepare != nil {
				tt.prepare(store)
			}

			report, err := service.Run(context.Background(), &tt.runAt)
			require.NoError(t, err)
			assert.True(t, report.Skipped)
			assert.Equal(t, tt.wantReason, report.SkipReason)
			assert.Equal(t, 0, report.Eligible)
			assert.Equal(t, 0, report.Matured)
			assert.Empty(t, store.Transactions())
			assert.Empty(t, store.IncomeLogs())
		})
	}
}

func TestRun_ZeroReturn(t *testing.T) {
	service, store := NewStore(t)
	pkg := addPackage(t, store, "0.0001", false)
	user := store.AddUser(domain.User{})
	addPurchase(t, store, user, pkg, "1", day(1), day(1).AddDate(0, 0, 30))

	report, err := service.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Eligible)
	assert.Equal(t, 1, report.Zero)
	assert.Equal(t, 0, report.Credited)
	assert.Empty(t, store.Transactions())
	assert.Empty(t, store.IncomeLogs())
}

func TestRun_FailureIsIsolated(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	pkg := addPackage(t, store, "1", false)
	good := store.AddUser(domain.User{})
	bad := store.AddUser(domain.User{})
	addPurchase(t, store, good, pkg, "100", day(1), day(1).AddDate(0, 0, 30))
	badPurchase := addPurchase(t, store, bad, pkg, "100", day(1), day(1).AddDate(0, 0, 30))
	store.FailTx = func(tx *domain.WalletTransaction) error {
		if tx.UserID == bad {
			return errors.New("disk full")
		}
		return nil
	}

	report, err := service.Run(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Credited)
	assert.Equal(t, 1, report.Failed)
	assertAmount(t, "1", store.Balance(good, domain.MWallet))
	assertAmount(t, "0", store.Balance(bad, domain.MWallet))
	for _, l := range store.IncomeLogs() {
		assert.NotEqual(t, badPurchase, l.PurchaseID)
	}

	store.FailTx = nil
	report, err = service.Run(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Credited)
	assert.Equal(t, 1, report.AlreadySettled)
	assertAmount(t, "1", store.Balance(bad, domain.MWallet))
}

func TestRun_Maturity(t *testing.T) {
	service, store := NewStore(t)
	withCapital := addPackage(t, store, "1", true)
	withoutCapital := addPackage(t, store, "1", false)
	user := store.AddUser(domain.User{ActivePackageCount: 3})
	returned := addPurchase(t, store, user, withCapital, "500", day(1).AddDate(0, 0, -30), day(13))
	kept := addPurchase(t, store, user, withoutCapital, "400", day(1).AddDate(0, 0, -30), day(12))
	running := addPurchase(t, store, user, withoutCapital, "100", day(1), day(1).AddDate(0, 0, 30))

	report, err := service.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Eligible)
	assert.Equal(t, 1, report.Credited)
	assert.Equal(t, 2, report.Matured)

	assert.Equal(t, domain.PurchaseCompleted, store.Purchase(returned).Status)
	assert.Equal(t, domain.PurchaseCompleted, store.Purchase(kept).Status)
	assert.Equal(t, domain.PurchaseActive, store.Purchase(running).Status)
	assert.Equal(t, 1, store.User(user).ActivePackageCount)
	// one ROI credit plus the capital of the first purchase
	assertAmount(t, "501", store.Balance(user, domain.MWallet))

	again, err := service.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Matured)
	assertAmount(t, "501", store.Balance(user, domain.MWallet))
}

func TestRun_Guard(t *testing.T) {
	service, _ := NewStore(t)
	service.running.Store(true)

	report, err := service.Run(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrRunInProgress)
	assert.Nil(t, report)
}
