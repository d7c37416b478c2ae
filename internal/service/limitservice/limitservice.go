package limitservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

const (
	reasonInvalidAmount  = "Amount must be greater than zero"
	reasonNoWallet       = "Wallet not found"
	reasonNoFunds        = "Insufficient wallet balance"
	reasonBelowMin       = "Minimum withdrawal is %s"
	reasonAbovePerTx     = "Maximum per transaction is %s"
	reasonCountExhausted = "Daily withdrawal limit reached (%d tx allowed)"
	reasonCapExceeded    = "Daily withdrawal cap exceeded (limit %s)"
)

type WalletRepo interface {
	FindByUserAndType(ctx context.Context, userID int64, walletType domain.WalletType) (*domain.Wallet, error)
	WithdrawStats(ctx context.Context, walletID int64, since time.Time) (int, decimal.Decimal, error)
}

type LimitRepo interface {
	Find(ctx context.Context, walletType domain.WalletType) (*domain.WalletLimit, error)
	List(ctx context.Context) ([]domain.WalletLimit, error)
	Upsert(ctx context.Context, l *domain.WalletLimit) error
}

type AuditRepo interface {
	Insert(ctx context.Context, l *domain.AuditLog) error
}

type Service struct {
	wallets   WalletRepo
	limits    LimitRepo
	audit     AuditRepo
	txManager pg.TXManager
	now       func() time.Time
}

func New(wallets WalletRepo, limits LimitRepo, audit AuditRepo, txManager pg.TXManager) *Service {
	return &Service{
		wallets:   wallets,
		limits:    limits,
		audit:     audit,
		txManager: txManager,
		now:       time.Now,
	}
}

// CanDebit reports whether amount may be withdrawn from the wallet right
// now. It never mutates anything; errors are reserved for storage failures.
func (s *Service) CanDebit(ctx context.Context, userID int64, walletType domain.WalletType, amount string) (*domain.Decision, error) {
	value, err := domain.ParseAmount(amount)
	if err != nil {
		return deny(reasonInvalidAmount), nil
	}
	wallet, err := s.wallets.FindByUserAndType(ctx, userID, walletType)
	if err != nil {
		zap.L().Error("failed to find wallet", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	if wallet == nil {
		return deny(reasonNoWallet), nil
	}
	if value.GreaterThan(wallet.Balance) {
		return deny(reasonNoFunds), nil
	}
	if err := s.CheckLimits(ctx, wallet, value); err != nil {
		var le *domain.LimitError
		if errors.As(err, &le) {
			return deny(le.Reason), nil
		}
		return nil, err
	}
	return &domain.Decision{OK: true}, nil
}

func deny(reason string) *domain.Decision {
	return &domain.Decision{OK: false, Reason: reason}
}

// CheckLimits applies the active limit of the wallet's type, if any, and
// returns a *domain.LimitError naming the first rule that fails.
func (s *Service) CheckLimits(ctx context.Context, wallet *domain.Wallet, amount decimal.Decimal) error {
	limit, err := s.limits.Find(ctx, wallet.Type)
	if err != nil {
		zap.L().Error("failed to load wallet limit", zap.String("walletType", string(wallet.Type)), zap.Error(err))
		return err
	}
	if limit == nil || !limit.IsActive {
		return nil
	}
	if amount.LessThan(limit.MinWithdrawal) {
		return &domain.LimitError{Reason: fmt.Sprintf(reasonBelowMin, limit.MinWithdrawal)}
	}
	if amount.GreaterThan(limit.MaxPerTx) {
		return &domain.LimitError{Reason: fmt.Sprintf(reasonAbovePerTx, limit.MaxPerTx)}
	}

	count, total, err := s.wallets.WithdrawStats(ctx, wallet.ID, s.now().Add(-24*time.Hour))
	if err != nil {
		zap.L().Error("failed to load withdrawal stats", zap.Int64("walletID", wallet.ID), zap.Error(err))
		return err
	}
	if count >= limit.MaxTxCount24h {
		return &domain.LimitError{Reason: fmt.Sprintf(reasonCountExhausted, limit.MaxTxCount24h)}
	}
	if total.Add(amount).GreaterThan(limit.MaxAmount24h) {
		return &domain.LimitError{Reason: fmt.Sprintf(reasonCapExceeded, limit.MaxAmount24h)}
	}
	return nil
}

func (s *Service) Limits(ctx context.Context) ([]domain.WalletLimit, error) {
	limits, err := s.limits.List(ctx)
	if err != nil {
		zap.L().Error("failed to list wallet limits", zap.Error(err))
		return nil, err
	}
	return limits, nil
}

func (s *Service) UpsertLimit(ctx context.Context, limit domain.WalletLimit) (*domain.WalletLimit, error) {
	if err := limit.Validate(); err != nil {
		return nil, err
	}
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		before, err := s.limits.Find(ctx, limit.WalletType)
		if err != nil {
			return err
		}
		if err := s.limits.Upsert(ctx, &limit); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "WALLET_LIMIT_UPSERT", "wallet_limit", 0, limitMeta(before), limitMeta(&limit)))
	})
	if err != nil {
		zap.L().Error("failed to upsert wallet limit", zap.String("walletType", string(limit.WalletType)), zap.Error(err))
		return nil, err
	}
	return &limit, nil
}

func limitMeta(l *domain.WalletLimit) domain.Meta {
	if l == nil {
		return nil
	}
	return domain.Meta{
		"walletType":    l.WalletType,
		"minWithdrawal": l.MinWithdrawal.String(),
		"maxPerTx":      l.MaxPerTx.String(),
		"maxTxCount24h": l.MaxTxCount24h,
		"maxAmount24h":  l.MaxAmount24h.String(),
		"isActive":      l.IsActive,
	}
}
