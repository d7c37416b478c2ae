package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/dto"
	"github.com/GlebRadaev/mlmledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
	"github.com/GlebRadaev/mlmledger/pkg/utils"
)

func NewMock(t *testing.T) (*WalletHandler, *MockService, *MockLimitService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	limits := NewMockLimitService(ctrl)
	handler := New(service, limits, time.UTC)
	return handler, service, limits
}

func newRequest(method, target, body string, userID int64, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != 0 {
		ctx = context.WithValue(ctx, auth.UserIDKey, userID)
	}
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	var resp utils.Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp.Message
}

func TestGetWalletsHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	t.Run("Unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.GetWallets(rr, newRequest("GET", "/api/user/wallets", "", 0, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Success", func(t *testing.T) {
		service.EXPECT().Wallets(gomock.Any(), int64(1)).Return([]domain.Wallet{
			{ID: 1, UserID: 1, Type: domain.FWallet, Balance: decimal.RequireFromString("250.50")},
			{ID: 2, UserID: 1, Type: domain.IWallet, Balance: decimal.Zero},
		}, nil)

		rr := httptest.NewRecorder()
		handler.GetWallets(rr, newRequest("GET", "/api/user/wallets", "", 1, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp []dto.WalletDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp, 2)
		assert.Equal(t, domain.FWallet, resp[0].Type)
		assert.True(t, resp[0].Balance.Equal(decimal.RequireFromString("250.5")))
	})

	t.Run("Internal error", func(t *testing.T) {
		service.EXPECT().Wallets(gomock.Any(), int64(1)).Return(nil, errors.New("db error"))

		rr := httptest.NewRecorder()
		handler.GetWallets(rr, newRequest("GET", "/api/user/wallets", "", 1, nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Internal server error", decodeError(t, rr))
	})
}

func TestGetTransactionsHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	tests := []struct {
		name         string
		target       string
		walletType   string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:       "Success with paging",
			target:     "/api/user/wallets/f_wallet/transactions?limit=2&offset=4",
			walletType: "f_wallet",
			prepareMock: func() {
				service.EXPECT().Transactions(gomock.Any(), int64(1), domain.FWallet, 2, 4).Return([]domain.WalletTransaction{
					{ID: 9, Type: domain.TxDeposit, Direction: domain.Credit, Amount: decimal.NewFromInt(10), TxNumber: "TX-1"},
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Unknown wallet",
			target:       "/api/user/wallets/X/transactions",
			walletType:   "X",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:       "Empty ledger",
			target:     "/api/user/wallets/I_WALLET/transactions",
			walletType: "I_WALLET",
			prepareMock: func() {
				service.EXPECT().Transactions(gomock.Any(), int64(1), domain.IWallet, defaultPageSize, 0).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			rr := httptest.NewRecorder()
			handler.GetTransactions(rr, newRequest("GET", tt.target, "", 1, map[string]string{"type": tt.walletType}))
			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestCanDebitHandler(t *testing.T) {
	handler, _, limits := NewMock(t)

	limits.EXPECT().CanDebit(gomock.Any(), int64(1), domain.IWallet, "5").
		Return(&domain.Decision{OK: false, Reason: "Minimum withdrawal is 10"}, nil)

	rr := httptest.NewRecorder()
	handler.CanDebit(rr, newRequest("GET", "/api/user/wallets/I_WALLET/can-debit?amount=5", "", 1, map[string]string{"type": "I_WALLET"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp domain.Decision
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "Minimum withdrawal is 10", resp.Reason)
}

func TestTransferHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful transfer",
			body: `{"fromWalletType":"F_WALLET","toMemberId":"1000000009","amount":"10.00"}`,
			prepareMock: func() {
				service.EXPECT().Transfer(gomock.Any(), ledgerservice.TransferParams{
					FromUserID:     1,
					FromWalletType: domain.FWallet,
					ToMemberID:     "1000000009",
					Amount:         "10.00",
				}).Return(&domain.TransferResult{}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Insufficient balance",
			body: `{"fromWalletType":"F_WALLET","toMemberId":"1000000009","amount":"1000"}`,
			prepareMock: func() {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil, domain.ErrInsufficientBalance)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: domain.ErrInsufficientBalance.Error(),
		},
		{
			name: "Recipient not in downline",
			body: `{"fromWalletType":"F_WALLET","toMemberId":"1000000009","amount":"1"}`,
			prepareMock: func() {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil, domain.ErrRecipientNotInDownline)
			},
			expectedCode:  http.StatusForbidden,
			expectedError: domain.ErrRecipientNotInDownline.Error(),
		},
		{
			name:          "Unknown wallet type",
			body:          `{"fromWalletType":"GOLD","toMemberId":"1000000009","amount":"1"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: `unknown wallet type: "GOLD"`,
		},
		{
			name:          "Invalid request body",
			body:          `{invalid`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			rr := httptest.NewRecorder()
			handler.Transfer(rr, newRequest("POST", "/api/user/transfer", tt.body, 1, nil))
			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, rr))
			}
		})
	}
}

func TestTransferInternalHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	t.Run("Disabled", func(t *testing.T) {
		service.EXPECT().TransferInternal(gomock.Any(), int64(1), domain.IWallet, domain.FWallet, "5").
			Return(nil, domain.ErrInternalTransferDisabled)

		rr := httptest.NewRecorder()
		handler.TransferInternal(rr, newRequest("POST", "/api/user/transfer/internal", `{"from":"I_WALLET","to":"F_WALLET","amount":"5"}`, 1, nil))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Success", func(t *testing.T) {
		service.EXPECT().TransferInternal(gomock.Any(), int64(1), domain.IWallet, domain.FWallet, "5").
			Return(&domain.TransferResult{Debit: domain.LedgerResult{TxNumber: "TX-A"}, Credit: domain.LedgerResult{TxNumber: "TX-B"}}, nil)

		rr := httptest.NewRecorder()
		handler.TransferInternal(rr, newRequest("POST", "/api/user/transfer/internal", `{"from":"I_WALLET","to":"F_WALLET","amount":"5"}`, 1, nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		var resp domain.TransferResult
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "TX-A", resp.Debit.TxNumber)
		assert.Equal(t, "TX-B", resp.Credit.TxNumber)
	})
}

func TestGetIncomeHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	service.EXPECT().IncomeDetails(gomock.Any(), int64(1), domain.TxBinaryIncome, defaultPageSize, 0).
		Return(&ledgerservice.IncomeDetails{
			Type:         domain.TxBinaryIncome,
			Total:        decimal.NewFromInt(30),
			Transactions: []domain.WalletTransaction{{ID: 1, Amount: decimal.NewFromInt(30)}},
		}, nil)

	rr := httptest.NewRecorder()
	handler.GetIncome(rr, newRequest("GET", "/api/user/income/BINARY_INCOME", "", 1, map[string]string{"type": "BINARY_INCOME"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp dto.IncomeDetailsDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(30)))
	assert.Len(t, resp.Transactions, 1)
}

func TestGetGainsHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	t.Run("Bad date", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.GetGains(rr, newRequest("GET", "/api/user/gains?from=yesterday", "", 1, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Bounded", func(t *testing.T) {
		from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		service.EXPECT().GainReport(gomock.Any(), int64(1), &from, &to).
			Return([]domain.GainRow{{Type: domain.TxROICredit, Total: decimal.NewFromInt(12), Count: 4}}, nil)

		rr := httptest.NewRecorder()
		handler.GetGains(rr, newRequest("GET", "/api/user/gains?from=2024-05-01&to=2024-06-01", "", 1, nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		var resp []dto.GainRowDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp, 1)
		assert.Equal(t, 4, resp[0].Count)
	})
}

func TestReconcileHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	service.EXPECT().Reconcile(gomock.Any(), int64(1), domain.MWallet).Return(nil, domain.ErrWalletNotFound)

	rr := httptest.NewRecorder()
	handler.Reconcile(rr, newRequest("GET", "/api/user/wallets/M_WALLET/reconcile", "", 1, map[string]string{"type": "M_WALLET"}))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
