package limitrepo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

func TestRepository_Find(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	repo := New(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM wallet_limits WHERE wallet_type = $1`)).
		WithArgs(domain.MWallet).
		WillReturnRows(pgxmock.NewRows([]string{"wallet_type", "min_withdrawal", "max_per_tx", "max_tx_count_24h",
			"max_amount_24h", "is_active", "updated_at"}).
			AddRow(domain.MWallet, decimal.NewFromInt(10), decimal.NewFromInt(100), 3, decimal.NewFromInt(250), true, now))

	l, err := repo.Find(context.Background(), domain.MWallet)
	require.NoError(t, err)
	assert.Equal(t, 3, l.MaxTxCount24h)
	assert.True(t, l.IsActive)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM wallet_limits WHERE wallet_type = $1`)).
		WithArgs(domain.FWallet).
		WillReturnError(pgx.ErrNoRows)
	l, err = repo.Find(context.Background(), domain.FWallet)
	assert.NoError(t, err)
	assert.Nil(t, l)
}

func TestRepository_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	repo := New(mock)

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (wallet_type) DO UPDATE`)).
		WithArgs(domain.MWallet, pgxmock.AnyArg(), pgxmock.AnyArg(), 3, pgxmock.AnyArg(), true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Upsert(context.Background(), &domain.WalletLimit{
		WalletType:    domain.MWallet,
		MinWithdrawal: decimal.NewFromInt(10),
		MaxPerTx:      decimal.NewFromInt(100),
		MaxTxCount24h: 3,
		MaxAmount24h:  decimal.NewFromInt(250),
		IsActive:      true,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
