package requestrepo

import (
	"context"
	"errors"
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

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func TestFilter(t *testing.T) {
	userID := int64(4)
	tests := []struct {
		name  string
		f     domain.RequestFilter
		query string
		args  []any
	}{
		{
			name:  "No filter uses default page",
			f:     domain.RequestFilter{},
			query: " ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2",
			args:  []any{50, 0},
		},
		{
			name:  "User and status",
			f:     domain.RequestFilter{UserID: &userID, Status: domain.RequestPending, Limit: 10, Offset: 20},
			query: " WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4",
			args:  []any{int64(4), domain.RequestPending, 10, 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := filter(tt.f)
			assert.Equal(t, tt.query, query)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestRepository_CreateWithdrawal(t *testing.T) {
	repo, mock := NewMock(t)
	req := &domain.WithdrawalRequest{
		UserID:          1,
		WalletID:        3,
		WalletType:      domain.MWallet,
		Amount:          decimal.NewFromInt(50),
		Method:          "USDT",
		Address:         "T123",
		Status:          domain.RequestPending,
		ReserveTxNumber: "TX-1-AB",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO withdrawal_requests`)).
		WithArgs(int64(1), int64(3), domain.MWallet, pgxmock.AnyArg(), "USDT", "T123", domain.RequestPending, "TX-1-AB").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	created, err := repo.CreateWithdrawal(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO withdrawal_requests`)).
		WithArgs(int64(1), int64(3), domain.MWallet, pgxmock.AnyArg(), "USDT", "T123", domain.RequestPending, "TX-1-AB").
		WillReturnError(errors.New("database error"))
	_, err = repo.CreateWithdrawal(context.Background(), req)
	assert.Error(t, err)
}

func TestRepository_FinishWithdrawal(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "Pending request is finished", affected: 1, want: true},
		{name: "Already processed request is untouched", affected: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectExec(regexp.QuoteMeta(`WHERE id = $1 AND status = 'PENDING'`)).
				WithArgs(int64(7), domain.RequestApproved, int64(99), "ok").
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))
			got, err := repo.FinishWithdrawal(context.Background(), 7, domain.RequestApproved, 99, "ok")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepository_FindDeposit(t *testing.T) {
	repo, mock := NewMock(t)
	cols := []string{"id", "user_id", "wallet_id", "amount", "method", "reference", "status", "admin_note",
		"processed_by", "created_at", "updated_at"}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM deposit_requests WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(2), int64(1), int64(1), decimal.NewFromInt(500), "BANK",
			"ref-1", domain.RequestPending, "", (*int64)(nil), now, now))
	d, err := repo.FindDeposit(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, d.Status)
	assert.Nil(t, d.ProcessedBy)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM deposit_requests WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnError(pgx.ErrNoRows)
	d, err = repo.FindDeposit(context.Background(), 3)
	assert.NoError(t, err)
	assert.Nil(t, d)
}
