package payout

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

var (
	thursday   = time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	wednesday  = time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
	sundayNoon = time.Date(2024, 3, 17, 12, 0, 0, 0, time.UTC)
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "want %s, got %s", want, got)
}

func NewStore(t *testing.T, rate string) (*Engine, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	if rate != "" {
		require.NoError(t, store.Settings().Set(context.Background(), domain.SettingBinaryRate, rate))
	}
	settings := settingsservice.New(store.Settings())
	cal := calendar.New(time.UTC, settings)
	tree := treeservice.New(store.Users(), store, 100)
	limits := limitservice.New(store.Wallets(), store.Limits(), store.Audit(), store)
	ledger := ledgerservice.New(store.Wallets(), store.Users(), store.Audit(), limits, tree, settings, store, 100)
	engine := New(store.Users(), store.Payouts(), ledger, settings, cal, store, 4)
	engine.now = func() time.Time { return thursday }
	return engine, store
}

func withVolume(store *memstore.Store, left, right string) int64 {
	id := store.AddUser(domain.User{})
	store.SetVolumes(id, d(left), d(right))
	return id
}

func TestRun(t *testing.T) {
	engine, store := NewStore(t, "10")
	ctx := context.Background()
	heavy := withVolume(store, "1000", "400")
	even := withVolume(store, "50", "50.05")
	oneLeg := withVolume(store, "0", "100")
	dust := withVolume(store, "0.01", "0.01")

	report, err := engine.Run(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, JobName, report.Job)
	assert.Equal(t, wednesday, report.CreditDate)
	assert.Equal(t, 3, report.Eligible)
	assert.Equal(t, 2, report.Credited)
	assert.Equal(t, 1, report.Zero)
	assert.Equal(t, 0, report.Failed)
	assertAmount(t, "45", report.Total)

	assertAmount(t, "40", store.Balance(heavy, domain.MWallet))
	assertAmount(t, "5", store.Balance(even, domain.MWallet))
	assertAmount(t, "0", store.Balance(dust, domain.MWallet))

	assertAmount(t, "600", store.User(heavy).LeftBV)
	assertAmount(t, "0", store.User(heavy).RightBV)
	assertAmount(t, "0", store.User(even).LeftBV)
	assertAmount(t, "0.05", store.User(even).RightBV)
	assertAmount(t, "100", store.User(oneLeg).RightBV)
	assertAmount(t, "0.01", store.User(dust).LeftBV)

	history, err := engine.History(ctx, heavy, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, wednesday, history[0].Date)
	assertAmount(t, "1000", history[0].LeftBefore)
	assertAmount(t, "400", history[0].RightBefore)
	assertAmount(t, "400", history[0].VolumePaid)
	assertAmount(t, "40", history[0].PayoutAmt)

	for _, tx := range store.Transactions() {
		assert.Equal(t, domain.TxBinaryIncome, tx.Type)
	}
}

func TestRun_OncePerDate(t *testing.T) {
	engine, store := NewStore(t, "10")
	ctx := context.Background()
	user := withVolume(store, "300", "200")

	_, err := engine.Run(ctx, nil)
	require.NoError(t, err)
	assertAmount(t, "20", store.Balance(user, domain.MWallet))

	store.SetVolumes(user, d("100"), d("100"))
	report, err := engine.Run(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Eligible)
	assert.Equal(t, 0, report.Credited)
	assert.Equal(t, 1, report.AlreadySettled)
	assertAmount(t, "20", store.Balance(user, domain.MWallet))
	assertAmount(t, "100", store.User(user).LeftBV)
	assert.Len(t, store.PayoutLogs(), 1)

	// the next business day pays the carried volume
	friday := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	report, err = engine.Run(ctx, &friday)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Credited)
	assertAmount(t, "30", store.Balance(user, domain.MWallet))
	assert.Len(t, store.PayoutLogs(), 2)
}

func TestRun_PayoutWallet(t *testing.T) {
	engine, store := NewStore(t, "12.5")
	require.NoError(t, store.Settings().Set(context.Background(), domain.SettingBinaryPayoutWallet, string(domain.FWallet)))
	user := withVolume(store, "80", "80")

	report, err := engine.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Credited)
	assertAmount(t, "10", store.Balance(user, domain.FWallet))
	assertAmount(t, "0", store.Balance(user, domain.MWallet))
}

func TestRun_Skipped(t *testing.T) {
	engine, store := NewStore(t, "10")
	user := withVolume(store, "100", "100")

	report, err := engine.Run(context.Background(), &sundayNoon)
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Equal(t, "weekend", report.SkipReason)
	assert.Empty(t, store.Transactions())
	assertAmount(t, "100", store.User(user).LeftBV)

	require.NoError(t, store.Settings().UpsertHoliday(context.Background(), domain.Holiday{Date: wednesday}))
	report, err = engine.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Equal(t, "holiday", report.SkipReason)
	assert.Empty(t, store.PayoutLogs())
}

func TestRun_RateNotConfigured(t *testing.T) {
	engine, store := NewStore(t, "")
	user := withVolume(store, "100", "100")

	report, err := engine.Run(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrRateNotConfigured)
	assert.Nil(t, report)
	assert.Empty(t, store.Transactions())
	assertAmount(t, "100", store.User(user).RightBV)
}

func TestRun_FailureIsIsolated(t *testing.T) {
	engine, store := NewStore(t, "10")
	good := withVolume(store, "100", "100")
	bad := withVolume(store, "200", "200")
	store.FailTx = func(tx *domain.WalletTransaction) error {
		if tx.UserID == bad {
			return errors.New("connection reset")
		}
		return nil
	}

	report, err := engine.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Credited)
	assert.Equal(t, 1, report.Failed)
	assertAmount(t, "10", store.Balance(good, domain.MWallet))
	assertAmount(t, "0", store.Balance(bad, domain.MWallet))
	assertAmount(t, "200", store.User(bad).LeftBV)

	logs := store.PayoutLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, good, logs[0].UserID)
}

func TestRun_Guard(t *testing.T) {
	engine, _ := NewStore(t, "10")
	engine.running.Store(true)

	_, err := engine.Run(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrRunInProgress)
}
