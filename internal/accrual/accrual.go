// Package accrual credits the daily return of active package purchases and
// settles purchases that reached their end date.
package accrual

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/mlmledger/internal/calendar"
	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
	"github.com/GlebRadaev/mlmledger/internal/service/ledgerservice"
)

const JobName = "package_accrual"

type PackageRepo interface {
	FindAccruable(ctx context.Context, date time.Time) ([]domain.PackagePurchase, error)
	FindMatured(ctx context.Context, date time.Time) ([]domain.PackagePurchase, error)
	ClaimIncome(ctx context.Context, l *domain.PackageIncomeLog) (bool, error)
	Complete(ctx context.Context, purchaseID int64) (bool, error)
}

type UserRepo interface {
	AdjustActivePackages(ctx context.Context, userID int64, delta int) error
}

type Ledger interface {
	Credit(ctx context.Context, p ledgerservice.CreditParams) (*domain.LedgerResult, error)
}

type SettingsLoader interface {
	Load(ctx context.Context) (*domain.Settings, error)
}

// processing holds purchases currently queued so an overlapping trigger
// does not schedule them twice.
var processing sync.Map

type Service struct {
	packages   PackageRepo
	users      UserRepo
	ledger     Ledger
	settings   SettingsLoader
	calendar   *calendar.Calendar
	txManager  pg.TXManager
	workerPool WorkerPoolI
	now        func() time.Time
	running    atomic.Bool
}

func New(
	packages PackageRepo,
	users UserRepo,
	ledger Ledger,
	settings SettingsLoader,
	cal *calendar.Calendar,
	txManager pg.TXManager,
	workers int,
) *Service {
	return &Service{
		packages:   packages,
		users:      users,
		ledger:     ledger,
		settings:   settings,
		calendar:   cal,
		txManager:  txManager,
		workerPool: NewWorkerPool(workers),
		now:        time.Now,
	}
}

func (s *Service) Close() {
	s.workerPool.Close()
}

type tally struct {
	mu     sync.Mutex
	report *domain.RunReport
}

func (t *tally) add(fn func(r *domain.RunReport)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.report)
}

// Run credits one day of returns for the credit date runAt (or now)
// resolves to, then completes matured purchases. Each purchase is settled
// at most once per date.
func (s *Service) Run(ctx context.Context, runAt *time.Time) (*domain.RunReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrRunInProgress
	}
	defer s.running.Store(false)

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if runAt != nil {
		now = *runAt
	}
	date := s.calendar.CreditDate(now, settings.ClosingTime)
	t := &tally{report: &domain.RunReport{Job: JobName, CreditDate: date, Total: decimal.Zero}}

	reason, err := s.calendar.SkipReason(ctx, date)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		t.report.Skipped, t.report.SkipReason = true, reason
		zap.L().Info("package accrual skipped", zap.Time("date", date), zap.String("reason", reason))
		return t.report, nil
	}

	purchases, err := s.packages.FindAccruable(ctx, date)
	if err != nil {
		zap.L().Error("failed to fetch purchases for accrual", zap.Error(err))
		return nil, err
	}
	t.report.Eligible = len(purchases)
	s.accrueAll(ctx, purchases, date, settings.ROIWallet, t)

	if err := s.matureAll(ctx, date, settings.ROIWallet, t); err != nil {
		return t.report, err
	}

	zap.L().Info("package accrual finished",
		zap.Time("date", date), zap.Int("eligible", t.report.Eligible), zap.Int("credited", t.report.Credited),
		zap.Int("failed", t.report.Failed), zap.Int("matured", t.report.Matured), zap.String("total", t.report.Total.String()))
	return t.report, ctx.Err()
}

func (s *Service) accrueAll(ctx context.Context, purchases []domain.PackagePurchase, date time.Time, wallet domain.WalletType, t *tally) {
	var (
		g  errgroup.Group
		wg sync.WaitGroup
	)
	for _, p := range purchases {
		p := p
		key := strconv.FormatInt(p.ID, 10) + "/" + date.Format(time.DateOnly)
		if _, loaded := processing.LoadOrStore(key, struct{}{}); loaded {
			continue
		}

		wg.Add(1)
		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer wg.Done()
				defer processing.Delete(key)
				return s.accrueOne(ctx, p, date, wallet, t)
			})
			if err != nil {
				wg.Done()
				processing.Delete(key)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		zap.L().Warn("accrual scheduling stopped", zap.Error(err))
	}
	wg.Wait()
}

func (s *Service) accrueOne(ctx context.Context, p domain.PackagePurchase, date time.Time, wallet domain.WalletType, t *tally) error {
	amount := domain.Money(domain.Percent(p.Amount, p.DailyReturnPct))
	if !amount.IsPositive() {
		t.add(func(r *domain.RunReport) { r.Zero++ })
		return nil
	}

	credited := false
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		claimed, err := s.packages.ClaimIncome(ctx, &domain.PackageIncomeLog{PurchaseID: p.ID, CreditDate: date, Amount: amount})
		if err != nil || !claimed {
			return err
		}
		day := date.Format(time.DateOnly)
		_, err = s.ledger.Credit(ctx, ledgerservice.CreditParams{
			UserID:     p.UserID,
			WalletType: wallet,
			Amount:     amount.String(),
			TxType:     domain.TxROICredit,
			Purpose:    "Daily return for package " + p.PackageName,
			Meta:       domain.Meta{"purchaseId": p.ID, "date": day},
		})
		credited = err == nil
		return err
	})
	if err != nil {
		t.add(func(r *domain.RunReport) { r.Failed++ })
		zap.L().Error("package accrual failed",
			zap.Int64("purchaseID", p.ID), zap.Int64("userID", p.UserID), zap.Time("date", date), zap.Error(err))
		return nil
	}
	t.add(func(r *domain.RunReport) {
		if credited {
			r.Credited++
			r.Total = r.Total.Add(amount)
		} else {
			r.AlreadySettled++
		}
	})
	return nil
}

// matureAll completes purchases whose term ended and returns capital where
// the package promises it.
func (s *Service) matureAll(ctx context.Context, date time.Time, wallet domain.WalletType, t *tally) error {
	matured, err := s.packages.FindMatured(ctx, date)
	if err != nil {
		zap.L().Error("failed to fetch matured purchases", zap.Error(err))
		return err
	}
	for _, p := range matured {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		done := false
		err := s.txManager.Begin(ctx, func(ctx context.Context) error {
			ok, err := s.packages.Complete(ctx, p.ID)
			if err != nil || !ok {
				return err
			}
			if err := s.users.AdjustActivePackages(ctx, p.UserID, -1); err != nil {
				return err
			}
			if p.CapitalReturn {
				if _, err := s.ledger.Credit(ctx, ledgerservice.CreditParams{
					UserID:     p.UserID,
					WalletType: wallet,
					Amount:     p.Amount.String(),
					TxType:     domain.TxAdjustment,
					Purpose:    "Capital return for package " + p.PackageName,
					Meta:       domain.Meta{"purchaseId": p.ID},
				}); err != nil {
					return err
				}
			}
			done = true
			return nil
		})
		if err != nil {
			t.add(func(r *domain.RunReport) { r.Failed++ })
			zap.L().Error("failed to complete purchase", zap.Int64("purchaseID", p.ID), zap.Int64("userID", p.UserID), zap.Error(err))
			continue
		}
		if done {
			t.add(func(r *domain.RunReport) { r.Matured++ })
		}
	}
	return nil
}
