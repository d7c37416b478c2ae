package packageservice

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/calendar"
	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
	"github.com/GlebRadaev/mlmledger/internal/service/ledgerservice"
)

type Repo interface {
	Create(ctx context.Context, p *domain.Package) (*domain.Package, error)
	Update(ctx context.Context, p *domain.Package) error
	FindByID(ctx context.Context, id int64) (*domain.Package, error)
	ListActive(ctx context.Context) ([]domain.Package, error)
	ListAll(ctx context.Context) ([]domain.Package, error)
	CreatePurchase(ctx context.Context, p *domain.PackagePurchase) (*domain.PackagePurchase, error)
	ListPurchasesByUser(ctx context.Context, userID int64) ([]domain.PackagePurchase, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByMemberID(ctx context.Context, memberID string) (*domain.User, error)
	AdjustActivePackages(ctx context.Context, userID int64, delta int) error
}

type AuditRepo interface {
	Insert(ctx context.Context, l *domain.AuditLog) error
}

type Ledger interface {
	Credit(ctx context.Context, p ledgerservice.CreditParams) (*domain.LedgerResult, error)
	Debit(ctx context.Context, p ledgerservice.DebitParams) (*domain.LedgerResult, error)
}

type Tree interface {
	AddBinaryVolume(ctx context.Context, originUserID int64, bv string) error
	IsInDownline(ctx context.Context, ancestorID, candidateID int64, maxDepth int) (bool, error)
}

type SettingsLoader interface {
	Load(ctx context.Context) (*domain.Settings, error)
}

type PurchaseParams struct {
	BuyerID   int64
	PackageID int64
	Amount    string
	// BeneficiaryMemberID buys on behalf of a downline member when set.
	BeneficiaryMemberID string
	Split               domain.SplitConfig
}

type Service struct {
	repo      Repo
	users     UserRepo
	audit     AuditRepo
	ledger    Ledger
	tree      Tree
	settings  SettingsLoader
	calendar  *calendar.Calendar
	txManager pg.TXManager
	maxDepth  int
	now       func() time.Time
}

func New(
	repo Repo,
	users UserRepo,
	audit AuditRepo,
	ledger Ledger,
	tree Tree,
	settings SettingsLoader,
	cal *calendar.Calendar,
	txManager pg.TXManager,
	maxDepth int,
) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		audit:     audit,
		ledger:    ledger,
		tree:      tree,
		settings:  settings,
		calendar:  cal,
		txManager: txManager,
		maxDepth:  maxDepth,
		now:       time.Now,
	}
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Package, error) {
	packages, err := s.repo.ListActive(ctx)
	if err != nil {
		zap.L().Error("failed to list packages", zap.Error(err))
		return nil, err
	}
	return packages, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Package, error) {
	packages, err := s.repo.ListAll(ctx)
	if err != nil {
		zap.L().Error("failed to list packages", zap.Error(err))
		return nil, err
	}
	return packages, nil
}

func (s *Service) Create(ctx context.Context, p domain.Package) (*domain.Package, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var created *domain.Package
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		if created, err = s.repo.Create(ctx, &p); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "PACKAGE_CREATED", "package", created.ID, nil, packageMeta(created)))
	})
	if err != nil {
		zap.L().Error("failed to create package", zap.String("name", p.Name), zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, p domain.Package) (*domain.Package, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		before, err := s.repo.FindByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if before == nil {
			return domain.ErrPackageNotFound
		}
		if err := s.repo.Update(ctx, &p); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "PACKAGE_UPDATED", "package", p.ID, packageMeta(before), packageMeta(&p)))
	})
	if err != nil {
		zap.L().Error("failed to update package", zap.Int64("packageID", p.ID), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*domain.Package, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPackageNotFound
	}
	p.IsActive = active
	return s.Update(ctx, *p)
}

func packageMeta(p *domain.Package) domain.Meta {
	return domain.Meta{
		"name":           p.Name,
		"investmentMin":  p.InvestmentMin.String(),
		"investmentMax":  p.InvestmentMax.String(),
		"dailyReturnPct": p.DailyReturnPct.String(),
		"durationDays":   p.DurationDays,
		"capitalReturn":  p.CapitalReturn,
		"isActive":       p.IsActive,
	}
}

func (s *Service) Purchases(ctx context.Context, userID int64) ([]domain.PackagePurchase, error) {
	purchases, err := s.repo.ListPurchasesByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list purchases", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	return purchases, nil
}

// Purchase charges the buyer's wallets per the split, credits the binary
// volume up the beneficiary's placement chain, records the purchase and
// pays the sponsor's referral income, all in one transaction.
func (s *Service) Purchase(ctx context.Context, p PurchaseParams) (*domain.PackagePurchase, error) {
	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return nil, err
	}
	split := p.Split
	if len(split) == 0 {
		split = domain.SplitConfig{domain.FWallet: decimal.NewFromInt(100)}
	}
	if err := split.Validate(); err != nil {
		return nil, err
	}

	pkg, err := s.repo.FindByID(ctx, p.PackageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrPackageNotFound
	}
	if !pkg.IsActive {
		return nil, domain.ErrPackageInactive
	}
	if amount.LessThan(pkg.InvestmentMin) || amount.GreaterThan(pkg.InvestmentMax) {
		return nil, domain.ErrAmountOutOfRange
	}

	buyer, err := s.users.FindByID(ctx, p.BuyerID)
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, domain.ErrUserNotFound
	}
	if buyer.Status == domain.UserSuspended {
		return nil, domain.ErrUserSuspended
	}
	beneficiary, err := s.beneficiary(ctx, buyer, p.BeneficiaryMemberID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}

	start := s.calendar.Day(s.now()).AddDate(0, 0, 1)
	purchase := &domain.PackagePurchase{
		UserID:      beneficiary.ID,
		BuyerID:     buyer.ID,
		PackageID:   pkg.ID,
		Amount:      amount,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, pkg.DurationDays),
		Status:      domain.PurchaseActive,
		SplitConfig: split,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		parts := split.Parts(amount)
		for _, wt := range domain.WalletTypes {
			part, ok := parts[wt]
			if !ok || !part.IsPositive() {
				continue
			}
			if _, err := s.ledger.Debit(ctx, ledgerservice.DebitParams{
				UserID:     buyer.ID,
				WalletType: wt,
				Amount:     part.String(),
				TxType:     domain.TxPackagePurchase,
				Purpose:    "Purchase of package " + pkg.Name,
				Meta:       domain.Meta{"packageId": pkg.ID, "beneficiaryId": beneficiary.ID},
			}); err != nil {
				return err
			}
		}

		if err := s.tree.AddBinaryVolume(ctx, beneficiary.ID, amount.String()); err != nil {
			return err
		}
		created, err := s.repo.CreatePurchase(ctx, purchase)
		if err != nil {
			return err
		}
		purchase = created
		if err := s.users.AdjustActivePackages(ctx, beneficiary.ID, 1); err != nil {
			return err
		}
		if err := s.payReferral(ctx, beneficiary, purchase, settings); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "PACKAGE_PURCHASED", "package_purchase", purchase.ID, nil,
			domain.Meta{"packageId": pkg.ID, "amount": amount.String(), "buyerId": buyer.ID, "userId": beneficiary.ID}))
	})
	if err != nil {
		zap.L().Error("failed to purchase package",
			zap.Int64("buyerID", buyer.ID), zap.Int64("packageID", pkg.ID), zap.String("amount", p.Amount), zap.Error(err))
		return nil, err
	}
	purchase.PackageName = pkg.Name
	purchase.DailyReturnPct = pkg.DailyReturnPct
	purchase.CapitalReturn = pkg.CapitalReturn
	return purchase, nil
}

func (s *Service) beneficiary(ctx context.Context, buyer *domain.User, memberID string) (*domain.User, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" || memberID == buyer.MemberID {
		return buyer, nil
	}
	user, err := s.users.FindByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	ok, err := s.tree.IsInDownline(ctx, buyer.ID, user.ID, s.maxDepth)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrRecipientNotInDownline
	}
	return user, nil
}

func (s *Service) payReferral(ctx context.Context, beneficiary *domain.User, purchase *domain.PackagePurchase, settings *domain.Settings) error {
	if beneficiary.SponsorID == nil || !settings.ReferralIncomeRatePct.IsPositive() {
		return nil
	}
	income := domain.Money(domain.Percent(purchase.Amount, settings.ReferralIncomeRatePct))
	if !income.IsPositive() {
		return nil
	}
	_, err := s.ledger.Credit(ctx, ledgerservice.CreditParams{
		UserID:     *beneficiary.SponsorID,
		WalletType: domain.BonusWallet,
		Amount:     income.String(),
		TxType:     domain.TxReferralIncome,
		Purpose:    "Referral income from " + beneficiary.MemberID,
		Meta:       domain.Meta{"purchaseId": purchase.ID, "fromUserId": beneficiary.ID},
	})
	return err
}
