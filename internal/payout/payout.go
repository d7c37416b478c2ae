// Package payout settles the daily binary matching bonus.
package payout

import (
	"context"
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

const JobName = "binary_payout"

type UserRepo interface {
	FindWithVolume(ctx context.Context) ([]domain.User, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.User, error)
	SetVolumes(ctx context.Context, userID int64, left, right decimal.Decimal) error
}

type PayoutRepo interface {
	Claim(ctx context.Context, l *domain.BinaryPayoutLog) (bool, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.BinaryPayoutLog, error)
}

type Ledger interface {
	Credit(ctx context.Context, p ledgerservice.CreditParams) (*domain.LedgerResult, error)
}

type SettingsLoader interface {
	Load(ctx context.Context) (*domain.Settings, error)
}

type outcome int

const (
	outcomeCredited outcome = iota
	outcomeSettled
	outcomeZero
	outcomeNoVolume
)

type Engine struct {
	users     UserRepo
	payouts   PayoutRepo
	ledger    Ledger
	settings  SettingsLoader
	calendar  *calendar.Calendar
	txManager pg.TXManager
	workers   int
	now       func() time.Time
	running   atomic.Bool
}

func New(
	users UserRepo,
	payouts PayoutRepo,
	ledger Ledger,
	settings SettingsLoader,
	cal *calendar.Calendar,
	txManager pg.TXManager,
	workers int,
) *Engine {
	if workers <= 0 {
		workers = 1
	}
	return &Engine{
		users:     users,
		payouts:   payouts,
		ledger:    ledger,
		settings:  settings,
		calendar:  cal,
		txManager: txManager,
		workers:   workers,
		now:       time.Now,
	}
}

// Run pays every member with volume on both legs for the credit date that
// runAt (or now) resolves to. A member already paid for that date is left
// alone, so the run can be repeated safely.
func (e *Engine) Run(ctx context.Context, runAt *time.Time) (*domain.RunReport, error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, domain.ErrRunInProgress
	}
	defer e.running.Store(false)

	settings, err := e.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := e.now()
	if runAt != nil {
		now = *runAt
	}
	date := e.calendar.CreditDate(now, settings.ClosingTime)
	report := &domain.RunReport{Job: JobName, CreditDate: date, Total: decimal.Zero}

	reason, err := e.calendar.SkipReason(ctx, date)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		report.Skipped, report.SkipReason = true, reason
		zap.L().Info("binary payout skipped", zap.Time("date", date), zap.String("reason", reason))
		return report, nil
	}
	if !settings.BinaryRatePct.Valid {
		zap.L().Error("binary payout aborted", zap.Error(domain.ErrRateNotConfigured))
		return nil, domain.ErrRateNotConfigured
	}
	rate := settings.BinaryRatePct.Decimal

	users, err := e.users.FindWithVolume(ctx)
	if err != nil {
		zap.L().Error("failed to load users with volume", zap.Error(err))
		return nil, err
	}
	report.Eligible = len(users)

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(e.workers)
	for _, u := range users {
		if ctx.Err() != nil {
			break
		}
		userID := u.ID
		g.Go(func() error {
			res, paid, err := e.payUser(ctx, userID, date, rate, settings.BinaryPayoutWallet)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				zap.L().Error("binary payout failed for user", zap.Int64("userID", userID), zap.Time("date", date), zap.Error(err))
				return nil
			}
			switch res {
			case outcomeCredited:
				report.Credited++
				report.Total = report.Total.Add(paid)
			case outcomeSettled:
				report.AlreadySettled++
			case outcomeZero, outcomeNoVolume:
				report.Zero++
			}
			return nil
		})
	}
	_ = g.Wait()

	zap.L().Info("binary payout finished",
		zap.Time("date", date), zap.Int("eligible", report.Eligible), zap.Int("credited", report.Credited),
		zap.Int("failed", report.Failed), zap.String("total", report.Total.String()))
	return report, ctx.Err()
}

func (e *Engine) payUser(
	ctx context.Context,
	userID int64,
	date time.Time,
	rate decimal.Decimal,
	wallet domain.WalletType,
) (outcome, decimal.Decimal, error) {
	res, paid := outcomeNoVolume, decimal.Zero
	err := e.txManager.Begin(ctx, func(ctx context.Context) error {
		u, err := e.users.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUserNotFound
		}
		if !u.LeftBV.IsPositive() || !u.RightBV.IsPositive() {
			return nil
		}

		matched := decimal.Min(u.LeftBV, u.RightBV)
		amount := domain.Money(domain.Percent(matched, rate))
		if !amount.IsPositive() {
			res = outcomeZero
			return nil
		}

		claimed, err := e.payouts.Claim(ctx, &domain.BinaryPayoutLog{
			UserID:      userID,
			Date:        date,
			LeftBefore:  u.LeftBV,
			RightBefore: u.RightBV,
			VolumePaid:  matched,
			PayoutAmt:   amount,
		})
		if err != nil {
			return err
		}
		if !claimed {
			res = outcomeSettled
			return nil
		}

		day := date.Format(time.DateOnly)
		if _, err := e.ledger.Credit(ctx, ledgerservice.CreditParams{
			UserID:     userID,
			WalletType: wallet,
			Amount:     amount.String(),
			TxType:     domain.TxBinaryIncome,
			Purpose:    "Binary income for " + day,
			Meta:       domain.Meta{"date": day, "matchedVolume": matched.String(), "rate": rate.String()},
		}); err != nil {
			return err
		}
		if err := e.users.SetVolumes(ctx, userID, u.LeftBV.Sub(matched), u.RightBV.Sub(matched)); err != nil {
			return err
		}
		res, paid = outcomeCredited, amount
		return nil
	})
	if err != nil {
		return 0, decimal.Zero, err
	}
	return res, paid, nil
}

// History lists the binary payouts made to a member, newest first.
func (e *Engine) History(ctx context.Context, userID int64, limit, offset int) ([]domain.BinaryPayoutLog, error) {
	logs, err := e.payouts.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		zap.L().Error("failed to list payouts", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	return logs, nil
}
