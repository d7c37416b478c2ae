package ledgerservice

import (
	"context"
	"errors"
	"math/rand"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/memstore"
	"github.com/GlebRadaev/mlmledger/internal/service/limitservice"
	"github.com/GlebRadaev/mlmledger/internal/service/settingsservice"
	"github.com/GlebRadaev/mlmledger/internal/service/treeservice"
)

func NewStore(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	tree := treeservice.New(store.Users(), store, 100)
	limits := limitservice.New(store.Wallets(), store.Limits(), store.Audit(), store)
	settings := settingsservice.New(store.Settings())
	service := New(store.Wallets(), store.Users(), store.Audit(), limits, tree, settings, store, 100)
	return service, store
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(amount(want)), "want %s, got %s", want, got)
}

func assertConsistent(t *testing.T, service *Service, userID int64, wt domain.WalletType) {
	t.Helper()
	rec, err := service.Reconcile(context.Background(), userID, wt)
	require.NoError(t, err)
	assert.True(t, rec.Consistent, "balance %s ledger %s", rec.Balance, rec.LedgerSum)
}

func TestNewTxNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^TX-[0-9A-Z]+-[0-9A-F]{8}$`)
	a, b := NewTxNumber(), NewTxNumber()
	assert.Regexp(t, pattern, a)
	assert.NotEqual(t, a, b)
}

func TestCredit(t *testing.T) {
	tests := []struct {
		name        string
		params      func(userID int64) CreditParams
		prepare     func(store *memstore.Store, userID int64)
		wantErr     error
		wantBalance string
	}{
		{
			name: "Credit wallet successfully",
			params: func(userID int64) CreditParams {
				return CreditParams{UserID: userID, WalletType: domain.FWallet, Amount: "150.25", TxType: domain.TxDeposit, Purpose: "Deposit"}
			},
			wantBalance: "150.25",
		},
		{
			name: "Zero amount",
			params: func(userID int64) CreditParams {
				return CreditParams{UserID: userID, WalletType: domain.FWallet, Amount: "0", TxType: domain.TxDeposit}
			},
			wantErr:     domain.ErrInvalidAmount,
			wantBalance: "0",
		},
		{
			name: "Negative amount",
			params: func(userID int64) CreditParams {
				return CreditParams{UserID: userID, WalletType: domain.FWallet, Amount: "-5", TxType: domain.TxDeposit}
			},
			wantErr:     domain.ErrInvalidAmount,
			wantBalance: "0",
		},
		{
			name: "Unknown wallet type",
			params: func(userID int64) CreditParams {
				return CreditParams{UserID: userID, WalletType: "X_WALLET", Amount: "10", TxType: domain.TxDeposit}
			},
			wantErr:     domain.ErrInvalidWalletType,
			wantBalance: "0",
		},
		{
			name: "Unknown transaction type",
			params: func(userID int64) CreditParams {
				return CreditParams{UserID: userID, WalletType: domain.FWallet, Amount: "10", TxType: "GIFT"}
			},
			wantErr:     domain.ErrInvalidTxType,
			wantBalance: "0",
		},
		{
			name: "Missing wallet",
			params: func(userID int64) CreditParams {
				return CreditParams{UserID: userID, WalletType: domain.FWallet, Amount: "10", TxType: domain.TxDeposit}
			},
			prepare: func(store *memstore.Store, userID int64) {
				store.DropWallet(userID, domain.FWallet)
			},
			wantErr:     domain.ErrWalletNotFound,
			wantBalance: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := NewStore(t)
			userID := store.AddUser(domain.User{})
			if tt.prepare != nil {
				tt.prepare(store, userID)
			}

			res, err := service.Credit(context.Background(), tt.params(userID))
			assertAmount(t, tt.wantBalance, store.Balance(userID, domain.FWallet))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				assert.Empty(t, store.Transactions())
				return
			}
			require.NoError(t, err)
			assertAmount(t, tt.wantBalance, res.BalanceAfter)
			assert.NotEmpty(t, res.TxNumber)

			txs := store.Transactions()
			require.Len(t, txs, 1)
			assert.Equal(t, domain.Credit, txs[0].Direction)
			assert.Equal(t, res.TxNumber, txs[0].TxNumber)
			assertAmount(t, tt.wantBalance, txs[0].BalanceAfter)
			assert.Len(t, store.AuditLogs(), 1)
			assertConsistent(t, service, userID, domain.FWallet)
		})
	}
}

func TestDebit(t *testing.T) {
	limit := domain.WalletLimit{
		WalletType:    domain.MWallet,
		MinWithdrawal: amount("10"),
		MaxPerTx:      amount("100"),
		MaxTxCount24h: 2,
		MaxAmount24h:  amount("150"),
		IsActive:      true,
	}

	tests := []struct {
		name        string
		params      DebitParams
		wantErr     error
		wantBalance string
	}{
		{
			name:        "Debit within balance",
			params:      DebitParams{WalletType: domain.MWallet, Amount: "60", TxType: domain.TxPackagePurchase},
			wantBalance: "140",
		},
		{
			name:        "Exact balance",
			params:      DebitParams{WalletType: domain.MWallet, Amount: "200", TxType: domain.TxPackagePurchase},
			wantBalance: "0",
		},
		{
			name:        "Insufficient balance",
			params:      DebitParams{WalletType: domain.MWallet, Amount: "200.01", TxType: domain.TxPackagePurchase},
			wantErr:     domain.ErrInsufficientBalance,
			wantBalance: "200",
		},
		{
			name:        "Negative allowed for adjustments",
			params:      DebitParams{WalletType: domain.MWallet, Amount: "250", TxType: domain.TxAdjustment, AllowNegative: true},
			wantBalance: "-50",
		},
		{
			name:        "Withdrawal above per transaction limit",
			params:      DebitParams{WalletType: domain.MWallet, Amount: "120", TxType: domain.TxWithdraw},
			wantErr:     domain.ErrLimitExceeded,
			wantBalance: "200",
		},
		{
			name:        "Withdrawal below minimum",
			params:      DebitParams{WalletType: domain.MWallet, Amount: "5", TxType: domain.TxWithdraw},
			wantErr:     domain.ErrLimitExceeded,
			wantBalance: "200",
		},
		{
			name:        "Limits skipped for settled request",
			params:      DebitParams{WalletType: domain.MWallet, Amount: "120", TxType: domain.TxWithdraw, SkipLimits: true},
			wantBalance: "80",
		},
		{
			name:        "Limits ignored for other debit types",
			params:      DebitParams{WalletType: domain.MWallet, Amount: "120", TxType: domain.TxTransferOut},
			wantBalance: "80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := NewStore(t)
			ctx := context.Background()
			userID := store.AddUser(domain.User{})
			require.NoError(t, store.Limits().Upsert(ctx, &limit))
			_, err := service.Credit(ctx, CreditParams{UserID: userID, WalletType: domain.MWallet, Amount: "200", TxType: domain.TxDeposit})
			require.NoError(t, err)

			p := tt.params
			p.UserID = userID
			res, err := service.Debit(ctx, p)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				assert.Len(t, store.Transactions(), 1)
			} else {
				require.NoError(t, err)
				assertAmount(t, tt.wantBalance, res.BalanceAfter)
				assert.Len(t, store.Transactions(), 2)
			}
			assertAmount(t, tt.wantBalance, store.Balance(userID, domain.MWallet))
			assertConsistent(t, service, userID, domain.MWallet)
		})
	}
}

func TestDebit_DailyLimits(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	userID := store.AddUser(domain.User{})
	require.NoError(t, store.Limits().Upsert(ctx, &domain.WalletLimit{
		WalletType:    domain.IWallet,
		MinWithdrawal: amount("10"),
		MaxPerTx:      amount("100"),
		MaxTxCount24h: 2,
		MaxAmount24h:  amount("150"),
		IsActive:      true,
	}))
	_, err := service.Credit(ctx, CreditParams{UserID: userID, WalletType: domain.IWallet, Amount: "1000", TxType: domain.TxDeposit})
	require.NoError(t, err)

	withdraw := func(v string) error {
		_, err := service.Debit(ctx, DebitParams{UserID: userID, WalletType: domain.IWallet, Amount: v, TxType: domain.TxWithdraw})
		return err
	}

	require.NoError(t, withdraw("100"))
	err = withdraw("60")
	var le *domain.LimitError
	require.True(t, errors.As(err, &le))
	assert.Contains(t, le.Reason, "150")

	require.NoError(t, withdraw("50"))
	err = withdraw("10")
	require.True(t, errors.As(err, &le))
	assert.Contains(t, le.Reason, "2 tx")
	assertAmount(t, "850", store.Balance(userID, domain.IWallet))
}

func TestTxNumberCollision(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	userID := store.AddUser(domain.User{})

	numbers := []string{"TX-A", "TX-A", "TX-B"}
	service.txNumber = func() string {
		n := numbers[0]
		numbers = numbers[1:]
		return n
	}

	first, err := service.Credit(ctx, CreditParams{UserID: userID, WalletType: domain.FWallet, Amount: "10", TxType: domain.TxDeposit})
	require.NoError(t, err)
	assert.Equal(t, "TX-A", first.TxNumber)

	second, err := service.Credit(ctx, CreditParams{UserID: userID, WalletType: domain.FWallet, Amount: "5", TxType: domain.TxDeposit})
	require.NoError(t, err)
	assert.Equal(t, "TX-B", second.TxNumber)

	service.txNumber = func() string { return "TX-B" }
	_, err = service.Credit(ctx, CreditParams{UserID: userID, WalletType: domain.FWallet, Amount: "7", TxType: domain.TxDeposit})
	assert.ErrorIs(t, err, domain.ErrDuplicateTxNumber)

	assertAmount(t, "15", store.Balance(userID, domain.FWallet))
	assert.Len(t, store.Transactions(), 2)
	assertConsistent(t, service, userID, domain.FWallet)
}

func TestTransfer(t *testing.T) {
	type fixture struct {
		sender, child, stranger, suspended int64
	}
	tests := []struct {
		name       string
		settings   map[string]string
		params     func(s *memstore.Store, f fixture) TransferParams
		wantErr    error
		wantSender string
	}{
		{
			name: "Transfer to downline member",
			params: func(s *memstore.Store, f fixture) TransferParams {
				return TransferParams{FromUserID: f.sender, FromWalletType: domain.FWallet, ToMemberID: s.User(f.child).MemberID, Amount: "40"}
			},
			wantSender: "60",
		},
		{
			name: "Crossline recipient rejected in downline mode",
			params: func(s *memstore.Store, f fixture) TransferParams {
				return TransferParams{FromUserID: f.sender, FromWalletType: domain.FWallet, ToMemberID: s.User(f.stranger).MemberID, Amount: "40"}
			},
			wantErr:    domain.ErrRecipientNotInDownline,
			wantSender: "100",
		},
		{
			name:     "Crossline recipient allowed in crossline mode",
			settings: map[string]string{domain.SettingTransferMode: "CROSSLINE"},
			params: func(s *memstore.Store, f fixture) TransferParams {
				return TransferParams{FromUserID: f.sender, FromWalletType: domain.FWallet, ToMemberID: s.User(f.stranger).MemberID, Amount: "40"}
			},
			wantSender: "60",
		},
		{
			name: "Transfer to self",
			params: func(s *memstore.Store, f fixture) TransferParams {
				return TransferParams{FromUserID: f.sender, FromWalletType: domain.FWallet, ToMemberID: s.User(f.sender).MemberID, Amount: "40"}
			},
			wantErr:    domain.ErrSelfTransfer,
			wantSender: "100",
		},
		{
			name: "Unknown recipient",
			params: func(s *memstore.Store, f fixture) TransferParams {
				return TransferParams{FromUserID: f.sender, FromWalletType: domain.FWallet, ToMemberID: "0000000000", Amount: "40"}
			},
			wantErr:    domain.ErrUserNotFound,
			wantSender: "100",
		},
		{
			name: "Insufficient balance",
			params: func(s *memstore.Store, f fixture) TransferParams {
				return TransferParams{FromUserID: f.sender, FromWalletType: domain.FWallet, ToMemberID: s.User(f.child).MemberID, Amount: "100.01"}
			},
			wantErr:    domain.ErrInsufficientBalance,
			wantSender: "100",
		},
		{
			name: "Suspended sender",
			params: func(s *memstore.Store, f fixture) TransferParams {
				return TransferParams{FromUserID: f.suspended, FromWalletType: domain.FWallet, ToMemberID: s.User(f.child).MemberID, Amount: "1"}
			},
			wantErr:    domain.ErrUserSuspended,
			wantSender: "100",
		},
		{
			name: "Inactive recipient",
			params: func(s *memstore.Store, f fixture) TransferParams {
				return TransferParams{FromUserID: f.sender, FromWalletType: domain.FWallet, ToMemberID: s.User(f.suspended).MemberID, Amount: "1"}
			},
			wantErr:    domain.ErrUserInactive,
			wantSender: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := NewStore(t)
			ctx := context.Background()
			f := fixture{
				sender:    store.AddUser(domain.User{}),
				stranger:  store.AddUser(domain.User{}),
				suspended: store.AddUser(domain.User{Status: domain.UserSuspended}),
			}
			f.child = store.AddUser(domain.User{})
			store.SetParent(f.child, f.sender)
			for k, v := range tt.settings {
				require.NoError(t, store.Settings().Set(ctx, k, v))
			}
			_, err := service.Credit(ctx, CreditParams{UserID: f.sender, WalletType: domain.FWallet, Amount: "100", TxType: domain.TxDeposit})
			require.NoError(t, err)

			p := tt.params(store, f)
			res, err := service.Transfer(ctx, p)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				assert.Len(t, store.Transactions(), 1)
			} else {
				require.NoError(t, err)
				assertAmount(t, tt.wantSender, res.Debit.BalanceAfter)
				assertAmount(t, "40", res.Credit.BalanceAfter)
				assert.NotEqual(t, res.Debit.TxNumber, res.Credit.TxNumber)
				assert.Len(t, store.Transactions(), 3)
			}
			assertAmount(t, tt.wantSender, store.Balance(f.sender, domain.FWallet))
			assertConsistent(t, service, f.sender, domain.FWallet)
		})
	}
}

func TestTransfer_RollsBackBothLegs(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	sender := store.AddUser(domain.User{})
	recipient := store.AddUser(domain.User{})
	store.SetParent(recipient, sender)

	_, err := service.Credit(ctx, CreditParams{UserID: sender, WalletType: domain.FWallet, Amount: "100", TxType: domain.TxDeposit})
	require.NoError(t, err)

	store.FailTx = func(t *domain.WalletTransaction) error {
		if t.Type == domain.TxTransferIn {
			return errors.New("disk full")
		}
		return nil
	}
	_, err = service.Transfer(ctx, TransferParams{
		FromUserID:     sender,
		FromWalletType: domain.FWallet,
		ToMemberID:     store.User(recipient).MemberID,
		Amount:         "30",
	})
	require.Error(t, err)

	assertAmount(t, "100", store.Balance(sender, domain.FWallet))
	assertAmount(t, "0", store.Balance(recipient, domain.FWallet))
	assert.Len(t, store.Transactions(), 1)
	assert.Len(t, store.AuditLogs(), 1)
}

func TestTransferInternal(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		from, to domain.WalletType
		amount   string
		wantErr  error
		wantFrom string
		wantTo   string
	}{
		{name: "Move between own wallets", enabled: true, from: domain.MWallet, to: domain.FWallet, amount: "25", wantFrom: "75", wantTo: "25"},
		{name: "Disabled by settings", enabled: false, from: domain.MWallet, to: domain.FWallet, amount: "25", wantErr: domain.ErrInternalTransferDisabled, wantFrom: "100", wantTo: "0"},
		{name: "Same wallet", enabled: true, from: domain.MWallet, to: domain.MWallet, amount: "25", wantErr: domain.ErrSameWallet, wantFrom: "100", wantTo: "100"},
		{name: "Unknown destination", enabled: true, from: domain.MWallet, to: "Z_WALLET", amount: "25", wantErr: domain.ErrInvalidWalletType, wantFrom: "100", wantTo: "0"},
		{name: "Insufficient balance", enabled: true, from: domain.MWallet, to: domain.IWallet, amount: "101", wantErr: domain.ErrInsufficientBalance, wantFrom: "100", wantTo: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := NewStore(t)
			ctx := context.Background()
			userID := store.AddUser(domain.User{})
			if tt.enabled {
				require.NoError(t, store.Settings().Set(ctx, domain.SettingInternalTransferEnabled, "true"))
			}
			_, err := service.Credit(ctx, CreditParams{UserID: userID, WalletType: domain.MWallet, Amount: "100", TxType: domain.TxDeposit})
			require.NoError(t, err)

			_, err = service.TransferInternal(ctx, userID, tt.from, tt.to, tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assertAmount(t, tt.wantFrom, store.Balance(userID, tt.from))
			if tt.to.Valid() {
				assertAmount(t, tt.wantTo, store.Balance(userID, tt.to))
			}
		})
	}
}

func TestIncomeDetails(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	userID := store.AddUser(domain.User{})

	for _, v := range []string{"10", "15.5"} {
		_, err := service.Credit(ctx, CreditParams{UserID: userID, WalletType: domain.MWallet, Amount: v, TxType: domain.TxBinaryIncome})
		require.NoError(t, err)
	}
	_, err := service.Credit(ctx, CreditParams{UserID: userID, WalletType: domain.MWallet, Amount: "99", TxType: domain.TxROICredit})
	require.NoError(t, err)

	details, err := service.IncomeDetails(ctx, userID, domain.TxBinaryIncome, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.TxBinaryIncome, details.Type)
	assertAmount(t, "25.5", details.Total)
	require.Len(t, details.Transactions, 1)
	assertAmount(t, "15.5", details.Transactions[0].Amount)

	_, err = service.IncomeDetails(ctx, userID, "BOGUS", 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidTxType)
}

func TestGainReport(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	userID := store.AddUser(domain.User{})

	credits := []struct {
		tx domain.TxType
		v  string
	}{
		{domain.TxDeposit, "500"},
		{domain.TxROICredit, "5"},
		{domain.TxROICredit, "5"},
		{domain.TxReferralIncome, "12"},
	}
	for _, c := range credits {
		_, err := service.Credit(ctx, CreditParams{UserID: userID, WalletType: domain.MWallet, Amount: c.v, TxType: c.tx})
		require.NoError(t, err)
	}

	rows, err := service.GainReport(ctx, userID, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.TxReferralIncome, rows[0].Type)
	assertAmount(t, "12", rows[0].Total)
	assert.Equal(t, domain.TxROICredit, rows[1].Type)
	assert.Equal(t, 2, rows[1].Count)
	assertAmount(t, "10", rows[1].Total)

	future := time.Now().Add(time.Hour)
	rows, err = service.GainReport(ctx, userID, &future, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReconcile(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	userID := store.AddUser(domain.User{})

	_, err := service.Credit(ctx, CreditParams{UserID: userID, WalletType: domain.BonusWallet, Amount: "30", TxType: domain.TxReferralIncome})
	require.NoError(t, err)
	_, err = service.Debit(ctx, DebitParams{UserID: userID, WalletType: domain.BonusWallet, Amount: "12.5", TxType: domain.TxTransferOut})
	require.NoError(t, err)

	rec, err := service.Reconcile(ctx, userID, domain.BonusWallet)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assertAmount(t, "17.5", rec.LedgerSum)

	wallet := store.Wallet(userID, domain.BonusWallet)
	require.NoError(t, store.Wallets().UpdateBalance(ctx, wallet.ID, amount("20")))
	rec, err = service.Reconcile(ctx, userID, domain.BonusWallet)
	require.NoError(t, err)
	assert.False(t, rec.Consistent)
	assertAmount(t, "20", rec.Balance)

	store.DropWallet(userID, domain.FWallet)
	_, err = service.Reconcile(ctx, userID, domain.FWallet)
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestTransactions(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	userID := store.AddUser(domain.User{})

	for _, v := range []string{"1", "2", "3"} {
		_, err := service.Credit(ctx, CreditParams{UserID: userID, WalletType: domain.FWallet, Amount: v, TxType: domain.TxDeposit})
		require.NoError(t, err)
	}

	txs, err := service.Transactions(ctx, userID, domain.FWallet, 2, 0)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assertAmount(t, "3", txs[0].Amount)

	_, err = service.Transactions(ctx, userID, "NOPE", 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidWalletType)

	wallets, err := service.Wallets(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, wallets, len(domain.WalletTypes))
}

func TestRandomOperations_Reconcile(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	require.NoError(t, store.Settings().Set(ctx, domain.SettingTransferMode, "CROSSLINE"))
	require.NoError(t, store.Settings().Set(ctx, domain.SettingInternalTransferEnabled, "true"))

	users := []int64{store.AddUser(domain.User{}), store.AddUser(domain.User{}), store.AddUser(domain.User{})}
	type key struct {
		user int64
		wt   domain.WalletType
	}
	want := make(map[key]decimal.Decimal)
	rng := rand.New(rand.NewSource(20240501))
	pick := func() (int64, domain.WalletType) {
		return users[rng.Intn(len(users))], domain.WalletTypes[rng.Intn(len(domain.WalletTypes))]
	}

	var failed int
	for i := 0; i < 500; i++ {
		value := decimal.New(int64(rng.Intn(20000)+1), -2)
		user, wt := pick()
		switch rng.Intn(4) {
		case 0:
			_, err := service.Credit(ctx, CreditParams{UserID: user, WalletType: wt, Amount: value.String(), TxType: domain.TxDeposit})
			require.NoError(t, err)
			want[key{user, wt}] = want[key{user, wt}].Add(value)
		case 1:
			_, err := service.Debit(ctx, DebitParams{UserID: user, WalletType: wt, Amount: value.String(), TxType: domain.TxPackagePurchase})
			if errors.Is(err, domain.ErrInsufficientBalance) {
				failed++
				continue
			}
			require.NoError(t, err)
			want[key{user, wt}] = want[key{user, wt}].Sub(value)
		case 2:
			to := users[rng.Intn(len(users))]
			if to == user {
				continue
			}
			_, err := service.Transfer(ctx, TransferParams{FromUserID: user, FromWalletType: wt, ToMemberID: store.User(to).MemberID, Amount: value.String()})
			if errors.Is(err, domain.ErrInsufficientBalance) {
				failed++
				continue
			}
			require.NoError(t, err)
			want[key{user, wt}] = want[key{user, wt}].Sub(value)
			want[key{to, wt}] = want[key{to, wt}].Add(value)
		case 3:
			to := domain.WalletTypes[rng.Intn(len(domain.WalletTypes))]
			if to == wt {
				continue
			}
			_, err := service.TransferInternal(ctx, user, wt, to, value.String())
			if errors.Is(err, domain.ErrInsufficientBalance) {
				failed++
				continue
			}
			require.NoError(t, err)
			want[key{user, wt}] = want[key{user, wt}].Sub(value)
			want[key{user, to}] = want[key{user, to}].Add(value)
		}
	}
	assert.Positive(t, failed)

	for _, user := range users {
		for _, wt := range domain.WalletTypes {
			balance := store.Balance(user, wt)
			assert.True(t, balance.Equal(want[key{user, wt}]), "user %d %s: want %s, got %s", user, wt, want[key{user, wt}], balance)
			assert.False(t, balance.IsNegative())
			assertConsistent(t, service, user, wt)
		}
	}
}

func TestDebit_Parallel(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	userID := store.AddUser(domain.User{})
	_, err := service.Credit(ctx, CreditParams{UserID: userID, WalletType: domain.IWallet, Amount: "100", TxType: domain.TxDeposit})
	require.NoError(t, err)

	const workers = 20
	var (
		g         errgroup.Group
		succeeded atomic.Int32
	)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := service.Debit(ctx, DebitParams{UserID: userID, WalletType: domain.IWallet, Amount: "15", TxType: domain.TxPackagePurchase})
			if errors.Is(err, domain.ErrInsufficientBalance) {
				return nil
			}
			if err == nil {
				succeeded.Add(1)
			}
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(6), succeeded.Load())
	balance := store.Balance(userID, domain.IWallet)
	assertAmount(t, "10", balance)
	assert.False(t, balance.IsNegative())

	var debits int32
	for _, tx := range store.Transactions() {
		if tx.Direction == domain.Debit {
			debits++
		}
	}
	assert.Equal(t, succeeded.Load(), debits)
	assertConsistent(t, service, userID, domain.IWallet)
}
