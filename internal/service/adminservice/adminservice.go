package adminservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/calendar"
	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
	"github.com/GlebRadaev/mlmledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/mlmledger/internal/service/settingsservice"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
)

type UserRepo interface {
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.User, error)
	UpdateStatus(ctx context.Context, userID int64, status domain.UserStatus) error
	SetWithdrawalRestricted(ctx context.Context, userID int64, restricted bool) error
	UpdatePassword(ctx context.Context, userID int64, hash string) error
}

type SettingsRepo interface {
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
	UpsertHoliday(ctx context.Context, h domain.Holiday) error
}

type AuditRepo interface {
	Insert(ctx context.Context, l *domain.AuditLog) error
}

type Ledger interface {
	Credit(ctx context.Context, p ledgerservice.CreditParams) (*domain.LedgerResult, error)
	Debit(ctx context.Context, p ledgerservice.DebitParams) (*domain.LedgerResult, error)
}

type Job interface {
	Run(ctx context.Context, runAt *time.Time) (*domain.RunReport, error)
}

type SettingsLoader interface {
	Load(ctx context.Context) (*domain.Settings, error)
}

type AdjustParams struct {
	UserID     int64
	WalletType domain.WalletType
	Amount     string
	Direction  domain.Direction
	Note       string
}

type Service struct {
	users     UserRepo
	settings  SettingsRepo
	loader    SettingsLoader
	audit     AuditRepo
	ledger    Ledger
	payout    Job
	accrual   Job
	calendar  *calendar.Calendar
	txManager pg.TXManager
	hasher    auth.PasswordHasher
}

func New(
	users UserRepo,
	settings SettingsRepo,
	loader SettingsLoader,
	audit AuditRepo,
	ledger Ledger,
	payout Job,
	accrual Job,
	cal *calendar.Calendar,
	txManager pg.TXManager,
	hasher auth.PasswordHasher,
) *Service {
	return &Service{
		users:     users,
		settings:  settings,
		loader:    loader,
		audit:     audit,
		ledger:    ledger,
		payout:    payout,
		accrual:   accrual,
		calendar:  cal,
		txManager: txManager,
		hasher:    hasher,
	}
}

// CreditBonus pays a reward into the member's bonus wallet. Only active
// members can receive it.
func (s *Service) CreditBonus(ctx context.Context, userID int64, amount, note string) (*domain.LedgerResult, error) {
	var res *domain.LedgerResult
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.lockUser(ctx, userID)
		if err != nil {
			return err
		}
		if user.Status != domain.UserActive {
			return domain.ErrUserInactive
		}
		purpose := "Bonus credit"
		if note = strings.TrimSpace(note); note != "" {
			purpose = note
		}
		res, err = s.ledger.Credit(ctx, ledgerservice.CreditParams{
			UserID:     userID,
			WalletType: domain.BonusWallet,
			Amount:     amount,
			TxType:     domain.TxRankReward,
			Purpose:    purpose,
			Meta:       domain.Meta{"source": "admin"},
		})
		return err
	})
	if err != nil {
		zap.L().Error("failed to credit bonus", zap.Int64("userID", userID), zap.String("amount", amount), zap.Error(err))
		return nil, err
	}
	return res, nil
}

// Adjust corrects a wallet by hand. Debits may take the balance negative.
func (s *Service) Adjust(ctx context.Context, p AdjustParams) (*domain.LedgerResult, error) {
	purpose := "Manual adjustment"
	if note := strings.TrimSpace(p.Note); note != "" {
		purpose = note
	}
	meta := domain.Meta{"source": "admin"}

	switch p.Direction {
	case domain.Credit:
		return s.ledger.Credit(ctx, ledgerservice.CreditParams{
			UserID: p.UserID, WalletType: p.WalletType, Amount: p.Amount,
			TxType: domain.TxAdjustment, Purpose: purpose, Meta: meta,
		})
	case domain.Debit:
		return s.ledger.Debit(ctx, ledgerservice.DebitParams{
			UserID: p.UserID, WalletType: p.WalletType, Amount: p.Amount,
			TxType: domain.TxAdjustment, Purpose: purpose, Meta: meta,
			AllowNegative: true,
		})
	}
	return nil, fmt.Errorf("unknown direction %q", p.Direction)
}

func (s *Service) SetStatus(ctx context.Context, userID int64, status domain.UserStatus) error {
	if status != domain.UserActive && status != domain.UserSuspended && status != domain.UserInactive {
		return fmt.Errorf("unknown user status %q", status)
	}
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.lockUser(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.users.UpdateStatus(ctx, userID, status); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "USER_STATUS_CHANGED", "user", userID,
			domain.Meta{"status": user.Status}, domain.Meta{"status": status}))
	})
	if err != nil {
		zap.L().Error("failed to change user status", zap.Int64("userID", userID), zap.String("status", string(status)), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) SetWithdrawalRestricted(ctx context.Context, userID int64, restricted bool) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.lockUser(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.users.SetWithdrawalRestricted(ctx, userID, restricted); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "USER_WITHDRAWAL_RESTRICTION", "user", userID,
			domain.Meta{"restricted": user.IsWithdrawalRestricted}, domain.Meta{"restricted": restricted}))
	})
	if err != nil {
		zap.L().Error("failed to change withdrawal restriction", zap.Int64("userID", userID), zap.Error(err))
		return err
	}
	return nil
}

// SetPassword replaces a member's password. The hash never reaches the audit log.
func (s *Service) SetPassword(ctx context.Context, userID int64, password string) error {
	hash, err := s.hasher.HashPassword(password)
	if errors.Is(err, auth.ErrEmptyPassword) || errors.Is(err, auth.ErrPasswordTooLong) {
		return domain.ErrInvalidPassword
	}
	if err != nil {
		return err
	}
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.lockUser(ctx, userID); err != nil {
			return err
		}
		if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "RESET_PASSWORD", "user", userID, nil, nil))
	})
	if err != nil {
		zap.L().Error("failed to reset password", zap.Int64("userID", userID), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) lockUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.FindByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *Service) Settings(ctx context.Context) (map[string]string, error) {
	return s.settings.All(ctx)
}

// UpdateSetting stores one admin setting after checking that the whole
// snapshot still parses with the new value.
func (s *Service) UpdateSetting(ctx context.Context, key, value string) error {
	key = strings.ToUpper(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		raw, err := s.settings.All(ctx)
		if err != nil {
			return err
		}
		before := raw[key]
		raw[key] = value
		if _, err := settingsservice.Parse(raw); err != nil {
			return err
		}
		if err := s.settings.Set(ctx, key, value); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "SETTING_UPDATED", "admin_setting", 0,
			domain.Meta{"key": key, "value": before}, domain.Meta{"key": key, "value": value}))
	})
}

// UpsertHoliday marks a business day on which neither daily job credits.
func (s *Service) UpsertHoliday(ctx context.Context, date time.Time, title string) error {
	day := s.calendar.Day(date)
	title = strings.TrimSpace(title)
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.settings.UpsertHoliday(ctx, domain.Holiday{Date: day, Title: title}); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "HOLIDAY_UPSERT", "holiday", 0, nil,
			domain.Meta{"date": day.Format(time.DateOnly), "title": title}))
	})
	if err != nil {
		zap.L().Error("failed to store holiday", zap.Time("date", day), zap.Error(err))
		return err
	}
	return nil
}

// RunPayout triggers the binary payout. A date backfills that day.
func (s *Service) RunPayout(ctx context.Context, date *time.Time) (*domain.RunReport, error) {
	return s.run(ctx, s.payout, date)
}

// RunAccrual triggers the package accrual. A date backfills that day.
func (s *Service) RunAccrual(ctx context.Context, date *time.Time) (*domain.RunReport, error) {
	return s.run(ctx, s.accrual, date)
}

func (s *Service) run(ctx context.Context, job Job, date *time.Time) (*domain.RunReport, error) {
	if date == nil {
		return job.Run(ctx, nil)
	}
	settings, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	runAt := s.calendar.AtClosing(*date, settings.ClosingTime)
	return job.Run(ctx, &runAt)
}
