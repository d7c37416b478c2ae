package service

import (
	"time"

	"github.com/GlebRadaev/mlmledger/internal/accrual"
	"github.com/GlebRadaev/mlmledger/internal/calendar"
	"github.com/GlebRadaev/mlmledger/internal/payout"
	"github.com/GlebRadaev/mlmledger/internal/repo"
	"github.com/GlebRadaev/mlmledger/internal/service/accountservice"
	"github.com/GlebRadaev/mlmledger/internal/service/addressservice"
	"github.com/GlebRadaev/mlmledger/internal/service/adminservice"
	"github.com/GlebRadaev/mlmledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/mlmledger/internal/service/limitservice"
	"github.com/GlebRadaev/mlmledger/internal/service/packageservice"
	"github.com/GlebRadaev/mlmledger/internal/service/requestservice"
	"github.com/GlebRadaev/mlmledger/internal/service/settingsservice"
	"github.com/GlebRadaev/mlmledger/internal/service/treeservice"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
)

type Options struct {
	Location     *time.Location
	JWTSecret    string
	MaxTreeDepth int
	Workers      int
}

type Services struct {
	Calendar        *calendar.Calendar
	SettingsService *settingsservice.Service
	TreeService     *treeservice.Service
	LimitService    *limitservice.Service
	LedgerService   *ledgerservice.Service
	AccountService  *accountservice.Service
	PackageService  *packageservice.Service
	RequestService  *requestservice.Service
	AddressService  *addressservice.Service
	AdminService    *adminservice.Service
	Payout          *payout.Engine
	Accrual         *accrual.Service
	JWTService      *auth.JWTService
}

func New(repo *repo.Repositories, opts Options) *Services {
	tx := repo.TxManager

	settingsService := settingsservice.New(repo.SettingsRepo)
	cal := calendar.New(opts.Location, settingsService)
	treeService := treeservice.New(repo.UserRepo, tx, opts.MaxTreeDepth)
	limitService := limitservice.New(repo.WalletRepo, repo.LimitRepo, repo.AuditRepo, tx)
	ledgerService := ledgerservice.New(repo.WalletRepo, repo.UserRepo, repo.AuditRepo,
		limitService, treeService, settingsService, tx, opts.MaxTreeDepth)
	jwtService := auth.NewJWTService(opts.JWTSecret)
	hasher := &auth.Bcrypt{}
	accountService := accountservice.New(repo.UserRepo, repo.WalletRepo, repo.AuditRepo,
		ledgerService, settingsService, tx, hasher, jwtService)
	packageService := packageservice.New(repo.PackageRepo, repo.UserRepo, repo.AuditRepo,
		ledgerService, treeService, settingsService, cal, tx, opts.MaxTreeDepth)
	addressService := addressservice.New(repo.AddressRepo, repo.UserRepo, repo.AuditRepo, tx)
	requestService := requestservice.New(repo.RequestRepo, repo.UserRepo, repo.WalletRepo, addressService,
		repo.AuditRepo, ledgerService, limitService, settingsService, tx)
	payoutEngine := payout.New(repo.UserRepo, repo.PayoutRepo, ledgerService, settingsService, cal, tx, opts.Workers)
	accrualService := accrual.New(repo.PackageRepo, repo.UserRepo, ledgerService, settingsService, cal, tx, opts.Workers)
	adminService := adminservice.New(repo.UserRepo, repo.SettingsRepo, settingsService, repo.AuditRepo,
		ledgerService, payoutEngine, accrualService, cal, tx, hasher)

	return &Services{
		Calendar:        cal,
		SettingsService: settingsService,
		TreeService:     treeService,
		LimitService:    limitService,
		LedgerService:   ledgerService,
		AccountService:  accountService,
		PackageService:  packageService,
		RequestService:  requestService,
		AddressService:  addressService,
		AdminService:    adminService,
		Payout:          payoutEngine,
		Accrual:         accrualService,
		JWTService:      jwtService,
	}
}

// Close stops background workers owned by the services.
func (s *Services) Close() {
	s.Accrual.Close()
}
