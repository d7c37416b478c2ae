package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

func TestBegin(t *testing.T) {
	store := New()
	ctx := context.Background()
	id := store.AddUser(domain.User{})
	w := store.Wallet(id, domain.FWallet)
	boom := errors.New("boom")

	err := store.Begin(ctx, func(ctx context.Context) error {
		require.NoError(t, store.Wallets().UpdateBalance(ctx, w.ID, decimal.NewFromInt(50)))
		return store.Begin(ctx, func(ctx context.Context) error {
			require.NoError(t, store.Audit().Insert(ctx, &domain.AuditLog{Action: "INNER"}))
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)
	assert.True(t, store.Balance(id, domain.FWallet).IsZero())
	assert.Empty(t, store.AuditLogs())

	assert.Panics(t, func() {
		_ = store.Begin(ctx, func(ctx context.Context) error {
			require.NoError(t, store.Wallets().UpdateBalance(ctx, w.ID, decimal.NewFromInt(70)))
			panic("kaboom")
		})
	})
	assert.True(t, store.Balance(id, domain.FWallet).IsZero())

	require.NoError(t, store.Begin(ctx, func(ctx context.Context) error {
		return store.Wallets().UpdateBalance(ctx, w.ID, decimal.NewFromInt(20))
	}))
	assert.Equal(t, "20", store.Balance(id, domain.FWallet).String())
}

func TestInsertTransaction(t *testing.T) {
	store := New()
	ctx := context.Background()
	id := store.AddUser(domain.User{})
	w := store.Wallet(id, domain.FWallet)
	deposit := func(number, external string) (bool, error) {
		return store.Wallets().InsertTransaction(ctx, &domain.WalletTransaction{
			WalletID:  w.ID,
			UserID:    id,
			Type:      domain.TxDeposit,
			Direction: domain.Credit,
			Amount:    decimal.NewFromInt(5),
			TxNumber:  number,
			Meta:      domain.Meta{"externalTxId": external},
		})
	}

	ok, err := deposit("TX-1", "gw-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = deposit("TX-1", "gw-2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = deposit("TX-2", "gw-1")
	assert.ErrorIs(t, err, domain.ErrDuplicateDeposit)

	ok, err = deposit("TX-3", "gw-3")
	require.NoError(t, err)
	assert.True(t, ok)

	txs, err := store.Wallets().ListTransactions(ctx, w.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "TX-3", txs[0].TxNumber)

	sum, err := store.Wallets().SumSigned(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "10", sum.String())
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, page(items, 2, 0))
	assert.Equal(t, []int{4, 5}, page(items, 10, 3))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, page(items, 0, 0))
	assert.Nil(t, page(items, 2, 5))
}
