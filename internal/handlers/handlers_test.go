package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
	"github.com/GlebRadaev/mlmledger/internal/repo"
	"github.com/GlebRadaev/mlmledger/internal/service"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
	"github.com/go-chi/chi/v5"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	services := service.New(repo.New(mockDB, pg.NewMockTXManager(ctrl)), service.Options{
		Location:     time.UTC,
		JWTSecret:    "secret",
		MaxTreeDepth: 100,
		Workers:      1,
	})
	defer services.Close()

	h := New(services)
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.AdminHandler)
	assert.NotNil(t, h.AddressHandler)
	assert.NotNil(t, h.Middleware)
}

func newRouter(t *testing.T, jwt *auth.JWTService) chi.Router {
	ctrl := gomock.NewController(t)

	authHandler := NewMockAuthHandler(ctrl)
	walletHandler := NewMockWalletHandler(ctrl)
	packageHandler := NewMockPackageHandler(ctrl)
	requestHandler := NewMockRequestHandler(ctrl)
	treeHandler := NewMockTreeHandler(ctrl)
	addressHandler := NewMockAddressHandler(ctrl)
	adminHandler := NewMockAdminHandler(ctrl)

	authHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	authHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	authHandler.EXPECT().Profile(gomock.Any(), gomock.Any()).AnyTimes()
	walletHandler.EXPECT().GetWallets(gomock.Any(), gomock.Any()).AnyTimes()
	walletHandler.EXPECT().GetTransactions(gomock.Any(), gomock.Any()).AnyTimes()
	walletHandler.EXPECT().Transfer(gomock.Any(), gomock.Any()).AnyTimes()
	packageHandler.EXPECT().Purchase(gomock.Any(), gomock.Any()).AnyTimes()
	requestHandler.EXPECT().CreateWithdrawal(gomock.Any(), gomock.Any()).AnyTimes()
	treeHandler.EXPECT().GetTree(gomock.Any(), gomock.Any()).AnyTimes()
	treeHandler.EXPECT().GetMemberTree(gomock.Any(), gomock.Any()).AnyTimes()
	treeHandler.EXPECT().GetRecentDownline(gomock.Any(), gomock.Any()).AnyTimes()
	addressHandler.EXPECT().GetMethods(gomock.Any(), gomock.Any()).AnyTimes()
	addressHandler.EXPECT().ChangeAddress(gomock.Any(), gomock.Any()).AnyTimes()
	addressHandler.EXPECT().DeleteMethod(gomock.Any(), gomock.Any()).AnyTimes()
	addressHandler.EXPECT().OverrideAddress(gomock.Any(), gomock.Any()).AnyTimes()
	adminHandler.EXPECT().SetPassword(gomock.Any(), gomock.Any()).AnyTimes()
	adminHandler.EXPECT().UpsertHoliday(gomock.Any(), gomock.Any()).AnyTimes()
	adminHandler.EXPECT().ApproveWithdrawal(gomock.Any(), gomock.Any()).AnyTimes()
	adminHandler.EXPECT().RunPayout(gomock.Any(), gomock.Any()).AnyTimes()
	adminHandler.EXPECT().UpdateSetting(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:    authHandler,
		WalletHandler:  walletHandler,
		PackageHandler: packageHandler,
		RequestHandler: requestHandler,
		TreeHandler:    treeHandler,
		AddressHandler: addressHandler,
		AdminHandler:   adminHandler,
		Middleware:     auth.NewMiddleware(jwt),
	}

	router := chi.NewRouter()
	h.InitRoutes(router)
	return router
}

func TestInitRoutes(t *testing.T) {
	jwt := auth.NewJWTService("secret")
	router := newRouter(t, jwt)

	userToken, err := jwt.GenerateJWT(7, "USER", time.Now().Add(time.Hour))
	require.NoError(t, err)
	adminToken, err := jwt.GenerateJWT(1, auth.RoleAdmin, time.Now().Add(time.Hour))
	require.NoError(t, err)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/api/user/register", "", http.StatusOK},
		{"POST", "/api/user/login", "", http.StatusOK},
		{"GET", "/api/user/profile", "", http.StatusUnauthorized},
		{"GET", "/api/user/wallets", "", http.StatusUnauthorized},
		{"POST", "/api/user/transfer", "", http.StatusUnauthorized},
		{"POST", "/api/user/withdrawals", "", http.StatusUnauthorized},
		{"GET", "/api/user/tree", "", http.StatusUnauthorized},
		{"GET", "/api/user/profile", userToken, http.StatusOK},
		{"GET", "/api/user/wallets", userToken, http.StatusOK},
		{"GET", "/api/user/wallets/BONUS_WALLET/transactions", userToken, http.StatusOK},
		{"POST", "/api/user/transfer", userToken, http.StatusOK},
		{"POST", "/api/user/packages/purchase", userToken, http.StatusOK},
		{"POST", "/api/user/withdrawals", userToken, http.StatusOK},
		{"GET", "/api/user/tree", userToken, http.StatusOK},
		{"GET", "/api/user/tree/recent", userToken, http.StatusOK},
		{"GET", "/api/user/payout-methods", userToken, http.StatusOK},
		{"PUT", "/api/user/payout-addresses/3", userToken, http.StatusOK},
		{"GET", "/api/user/payout-methods", "", http.StatusUnauthorized},
		{"DELETE", "/api/admin/payout-methods/2", userToken, http.StatusForbidden},
		{"DELETE", "/api/admin/payout-methods/2", adminToken, http.StatusOK},
		{"GET", "/api/admin/payout-methods", adminToken, http.StatusOK},
		{"PUT", "/api/admin/payout-addresses/3", adminToken, http.StatusOK},
		{"PUT", "/api/admin/users/7/password", adminToken, http.StatusOK},
		{"PUT", "/api/admin/holidays/2024-12-25", adminToken, http.StatusOK},
		{"POST", "/api/admin/withdrawals/5/approve", "", http.StatusUnauthorized},
		{"POST", "/api/admin/withdrawals/5/approve", userToken, http.StatusForbidden},
		{"POST", "/api/admin/jobs/payout", userToken, http.StatusForbidden},
		{"POST", "/api/admin/withdrawals/5/approve", adminToken, http.StatusOK},
		{"POST", "/api/admin/jobs/payout", adminToken, http.StatusOK},
		{"PUT", "/api/admin/settings/binary_rate", adminToken, http.StatusOK},
		{"GET", "/api/admin/users/7/tree", adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestWithActor(t *testing.T) {
	tests := []struct {
		name     string
		userID   int64
		role     string
		wantType domain.ActorType
		wantID   bool
	}{
		{name: "anonymous", wantType: domain.ActorSystem},
		{name: "member", userID: 7, role: "USER", wantType: domain.ActorUser, wantID: true},
		{name: "admin", userID: 1, role: auth.RoleAdmin, wantType: domain.ActorAdmin, wantID: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Actor
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = domain.ActorFrom(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.wantID {
				ctx := context.WithValue(req.Context(), auth.UserIDKey, tt.userID)
				ctx = context.WithValue(ctx, auth.RoleKey, tt.role)
				req = req.WithContext(ctx)
			}
			withActor(next).ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.wantType, got.Type)
			if tt.wantID {
				require.NotNil(t, got.ID)
				assert.Equal(t, tt.userID, *got.ID)
			} else {
				assert.Nil(t, got.ID)
			}
		})
	}
}
