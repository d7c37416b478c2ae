package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/mlmledger/docs"
	"github.com/GlebRadaev/mlmledger/internal/domain"
	addresshandlers "github.com/GlebRadaev/mlmledger/internal/handlers/address"
	adminhandlers "github.com/GlebRadaev/mlmledger/internal/handlers/admin"
	authhandlers "github.com/GlebRadaev/mlmledger/internal/handlers/auth"
	packagehandlers "github.com/GlebRadaev/mlmledger/internal/handlers/packages"
	requesthandlers "github.com/GlebRadaev/mlmledger/internal/handlers/requests"
	treehandlers "github.com/GlebRadaev/mlmledger/internal/handlers/tree"
	wallethandlers "github.com/GlebRadaev/mlmledger/internal/handlers/wallet"
	"github.com/GlebRadaev/mlmledger/internal/service"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers
type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Profile(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GetWallets(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	CanDebit(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
	Transfer(w http.ResponseWriter, r *http.Request)
	TransferInternal(w http.ResponseWriter, r *http.Request)
	GetIncome(w http.ResponseWriter, r *http.Request)
	GetGains(w http.ResponseWriter, r *http.Request)
}

type PackageHandler interface {
	GetPackages(w http.ResponseWriter, r *http.Request)
	Purchase(w http.ResponseWriter, r *http.Request)
	GetPurchases(w http.ResponseWriter, r *http.Request)
}

type RequestHandler interface {
	CreateWithdrawal(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
	CreateDeposit(w http.ResponseWriter, r *http.Request)
	GetDeposits(w http.ResponseWriter, r *http.Request)
}

type TreeHandler interface {
	GetTree(w http.ResponseWriter, r *http.Request)
	GetMemberTree(w http.ResponseWriter, r *http.Request)
	GetRecentDownline(w http.ResponseWriter, r *http.Request)
	GetPayouts(w http.ResponseWriter, r *http.Request)
}

type AddressHandler interface {
	GetMethods(w http.ResponseWriter, r *http.Request)
	CreateMethod(w http.ResponseWriter, r *http.Request)
	UpdateMethod(w http.ResponseWriter, r *http.Request)
	DeleteMethod(w http.ResponseWriter, r *http.Request)
	GetAddresses(w http.ResponseWriter, r *http.Request)
	AddAddress(w http.ResponseWriter, r *http.Request)
	ChangeAddress(w http.ResponseWriter, r *http.Request)
	RemoveAddress(w http.ResponseWriter, r *http.Request)
	OverrideAddress(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	CreditBonus(w http.ResponseWriter, r *http.Request)
	Adjust(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	SetWithdrawalRestricted(w http.ResponseWriter, r *http.Request)
	SetPassword(w http.ResponseWriter, r *http.Request)
	GetUserTransactions(w http.ResponseWriter, r *http.Request)
	ReconcileUser(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
	ApproveWithdrawal(w http.ResponseWriter, r *http.Request)
	RejectWithdrawal(w http.ResponseWriter, r *http.Request)
	GetDeposits(w http.ResponseWriter, r *http.Request)
	ApproveDeposit(w http.ResponseWriter, r *http.Request)
	RejectDeposit(w http.ResponseWriter, r *http.Request)
	ConfirmGatewayDeposit(w http.ResponseWriter, r *http.Request)
	GetLimits(w http.ResponseWriter, r *http.Request)
	UpsertLimit(w http.ResponseWriter, r *http.Request)
	GetPackages(w http.ResponseWriter, r *http.Request)
	CreatePackage(w http.ResponseWriter, r *http.Request)
	UpdatePackage(w http.ResponseWriter, r *http.Request)
	SetPackageActive(w http.ResponseWriter, r *http.Request)
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSetting(w http.ResponseWriter, r *http.Request)
	UpsertHoliday(w http.ResponseWriter, r *http.Request)
	RunPayout(w http.ResponseWriter, r *http.Request)
	RunAccrual(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	WalletHandler  WalletHandler
	PackageHandler PackageHandler
	RequestHandler RequestHandler
	TreeHandler    TreeHandler
	AddressHandler AddressHandler
	AdminHandler   AdminHandler
	Middleware     *auth.Middleware
}

func New(s *service.Services) *Handlers {
	loc := s.Calendar.Location()
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AccountService),
		WalletHandler:  wallethandlers.New(s.LedgerService, s.LimitService, loc),
		PackageHandler: packagehandlers.New(s.PackageService),
		RequestHandler: requesthandlers.New(s.RequestService),
		TreeHandler:    treehandlers.New(s.TreeService, s.Payout),
		AddressHandler: addresshandlers.New(s.AddressService),
		AdminHandler: adminhandlers.New(s.AdminService, s.RequestService, s.LimitService,
			s.PackageService, s.LedgerService, loc),
		Middleware: auth.NewMiddleware(s.JWTService),
	}
}

// withActor records the authenticated caller for audit entries.
func withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.UserID(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		actor := domain.Actor{ID: &id, Type: domain.ActorUser}
		if auth.IsAdmin(r.Context()) {
			actor.Type = domain.ActorAdmin
		}
		next.ServeHTTP(w, r.WithContext(domain.WithActor(r.Context(), actor)))
	})
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.Middleware.AuthMiddleware, withActor)
			r.Get("/profile", h.AuthHandler.Profile)
			r.Route("/wallets", func(r chi.Router) {
				r.Get("/", h.WalletHandler.GetWallets)
				r.Get("/{type}/transactions", h.WalletHandler.GetTransactions)
				r.Get("/{type}/can-debit", h.WalletHandler.CanDebit)
				r.Get("/{type}/reconcile", h.WalletHandler.Reconcile)
			})
			r.Route("/transfer", func(r chi.Router) {
				r.Post("/", h.WalletHandler.Transfer)
				r.Post("/internal", h.WalletHandler.TransferInternal)
			})
			r.Get("/income/{type}", h.WalletHandler.GetIncome)
			r.Get("/gains", h.WalletHandler.GetGains)
			r.Route("/packages", func(r chi.Router) {
				r.Get("/", h.PackageHandler.GetPackages)
				r.Post("/purchase", h.PackageHandler.Purchase)
				r.Get("/purchases", h.PackageHandler.GetPurchases)
			})
			r.Route("/withdrawals", func(r chi.Router) {
				r.Get("/", h.RequestHandler.GetWithdrawals)
				r.Post("/", h.RequestHandler.CreateWithdrawal)
			})
			r.Route("/deposits", func(r chi.Router) {
				r.Get("/", h.RequestHandler.GetDeposits)
				r.Post("/", h.RequestHandler.CreateDeposit)
			})
			r.Get("/payout-methods", h.AddressHandler.GetMethods)
			r.Route("/payout-addresses", func(r chi.Router) {
				r.Get("/", h.AddressHandler.GetAddresses)
				r.Post("/", h.AddressHandler.AddAddress)
				r.Put("/{id}", h.AddressHandler.ChangeAddress)
				r.Delete("/{id}", h.AddressHandler.RemoveAddress)
			})
			r.Get("/tree", h.TreeHandler.GetTree)
			r.Get("/tree/recent", h.TreeHandler.GetRecentDownline)
			r.Get("/payouts", h.TreeHandler.GetPayouts)
		})
	})
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(h.Middleware.AuthMiddleware, h.Middleware.AdminOnly, withActor)

		r.Route("/users/{id}", func(r chi.Router) {
			r.Post("/bonus", h.AdminHandler.CreditBonus)
			r.Post("/adjust", h.AdminHandler.Adjust)
			r.Put("/status", h.AdminHandler.SetStatus)
			r.Put("/withdrawal-restriction", h.AdminHandler.SetWithdrawalRestricted)
			r.Put("/password", h.AdminHandler.SetPassword)
			r.Get("/tree", h.TreeHandler.GetMemberTree)
			r.Get("/wallets/{type}/transactions", h.AdminHandler.GetUserTransactions)
			r.Get("/wallets/{type}/reconcile", h.AdminHandler.ReconcileUser)
		})
		r.Route("/withdrawals", func(r chi.Router) {
			r.Get("/", h.AdminHandler.GetWithdrawals)
			r.Post("/{id}/approve", h.AdminHandler.ApproveWithdrawal)
			r.Post("/{id}/reject", h.AdminHandler.RejectWithdrawal)
		})
		r.Route("/deposits", func(r chi.Router) {
			r.Get("/", h.AdminHandler.GetDeposits)
			r.Post("/gateway", h.AdminHandler.ConfirmGatewayDeposit)
			r.Post("/{id}/approve", h.AdminHandler.ApproveDeposit)
			r.Post("/{id}/reject", h.AdminHandler.RejectDeposit)
		})
		r.Route("/limits", func(r chi.Router) {
			r.Get("/", h.AdminHandler.GetLimits)
			r.Put("/{type}", h.AdminHandler.UpsertLimit)
		})
		r.Route("/packages", func(r chi.Router) {
			r.Get("/", h.AdminHandler.GetPackages)
			r.Post("/", h.AdminHandler.CreatePackage)
			r.Put("/{id}", h.AdminHandler.UpdatePackage)
			r.Put("/{id}/active", h.AdminHandler.SetPackageActive)
		})
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.AdminHandler.GetSettings)
			r.Put("/{key}", h.AdminHandler.UpdateSetting)
		})
		r.Route("/payout-methods", func(r chi.Router) {
			r.Get("/", h.AddressHandler.GetMethods)
			r.Post("/", h.AddressHandler.CreateMethod)
			r.Put("/{id}", h.AddressHandler.UpdateMethod)
			r.Delete("/{id}", h.AddressHandler.DeleteMethod)
		})
		r.Put("/payout-addresses/{id}", h.AddressHandler.OverrideAddress)
		r.Put("/holidays/{date}", h.AdminHandler.UpsertHoliday)
		r.Route("/jobs", func(r chi.Router) {
			r.Post("/payout", h.AdminHandler.RunPayout)
			r.Post("/accrual", h.AdminHandler.RunAccrual)
		})
	})

	return r
}
