package repo

import (
	"github.com/GlebRadaev/mlmledger/internal/pg"
	addressrepo "github.com/GlebRadaev/mlmledger/internal/repo/address-repo"
	auditrepo "github.com/GlebRadaev/mlmledger/internal/repo/audit-repo"
	limitrepo "github.com/GlebRadaev/mlmledger/internal/repo/limit-repo"
	packagerepo "github.com/GlebRadaev/mlmledger/internal/repo/package-repo"
	payoutrepo "github.com/GlebRadaev/mlmledger/internal/repo/payout-repo"
	requestrepo "github.com/GlebRadaev/mlmledger/internal/repo/request-repo"
	settingsrepo "github.com/GlebRadaev/mlmledger/internal/repo/settings-repo"
	userrepo "github.com/GlebRadaev/mlmledger/internal/repo/user-repo"
	walletrepo "github.com/GlebRadaev/mlmledger/internal/repo/wallet-repo"
)

// Repositories holds the Postgres repositories. Each one satisfies the
// narrower interfaces declared by the services that consume it.
type Repositories struct {
	TxManager    pg.TXManager
	UserRepo     *userrepo.Repository
	WalletRepo   *walletrepo.Repository
	PackageRepo  *packagerepo.Repository
	PayoutRepo   *payoutrepo.Repository
	RequestRepo  *requestrepo.Repository
	LimitRepo    *limitrepo.Repository
	SettingsRepo *settingsrepo.Repository
	AuditRepo    *auditrepo.Repository
	AddressRepo  *addressrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		TxManager:    txManager,
		UserRepo:     userrepo.New(conn),
		WalletRepo:   walletrepo.New(conn),
		PackageRepo:  packagerepo.New(conn),
		PayoutRepo:   payoutrepo.New(conn),
		RequestRepo:  requestrepo.New(conn),
		LimitRepo:    limitrepo.New(conn),
		SettingsRepo: settingsrepo.New(conn),
		AuditRepo:    auditrepo.New(conn),
		AddressRepo:  addressrepo.New(conn),
	}
}
