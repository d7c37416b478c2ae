package settingsservice

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type Repo interface {
	All(ctx context.Context) (map[string]string, error)
	FindHoliday(ctx context.Context, date time.Time) (*domain.Holiday, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{repo: repo}
}

// Load reads a fresh settings snapshot.
func (s *Service) Load(ctx context.Context) (*domain.Settings, error) {
	raw, err := s.repo.All(ctx)
	if err != nil {
		zap.L().Error("failed to load settings", zap.Error(err))
		return nil, err
	}
	return Parse(raw)
}

func (s *Service) Holiday(ctx context.Context, date time.Time) (*domain.Holiday, error) {
	return s.repo.FindHoliday(ctx, date)
}

// Parse builds a snapshot from raw key/value pairs. Unknown keys are
// ignored, missing ones keep their defaults. A missing or non-positive
// binary rate is left unset so payout runs can refuse to start.
func Parse(raw map[string]string) (*domain.Settings, error) {
	st := domain.DefaultSettings()

	if v, ok := lookup(raw, domain.SettingBinaryRate); ok {
		rate, err := decimal.NewFromString(v)
		if err == nil && rate.IsPositive() {
			st.BinaryRatePct = decimal.NewNullDecimal(rate)
		}
	}
	if v, ok := lookup(raw, domain.SettingClosingTime); ok {
		ct, err := domain.ParseClosingTime(v)
		if err != nil {
			return nil, err
		}
		st.ClosingTime = ct
	}
	if v, ok := lookup(raw, domain.SettingReferralBonusAmount); ok {
		d, err := nonNegative(domain.SettingReferralBonusAmount, v)
		if err != nil {
			return nil, err
		}
		st.ReferralBonusAmount = d
	}
	if v, ok := lookup(raw, domain.SettingReferralIncomeRate); ok {
		d, err := nonNegative(domain.SettingReferralIncomeRate, v)
		if err != nil {
			return nil, err
		}
		st.ReferralIncomeRatePct = d
	}
	if v, ok := lookup(raw, domain.SettingTransferMode); ok {
		mode := domain.TransferMode(strings.ToUpper(v))
		if mode != domain.TransferDownlineOnly && mode != domain.TransferCrossline {
			return nil, fmt.Errorf("%w: %s=%q", domain.ErrInvalidSetting, domain.SettingTransferMode, v)
		}
		st.TransferMode = mode
	}
	if v, ok := lookup(raw, domain.SettingWithdrawalPolicy); ok {
		policy := domain.WithdrawalPolicy(strings.ToUpper(v))
		if policy != domain.WithdrawalReserve && policy != domain.WithdrawalDeferred {
			return nil, fmt.Errorf("%w: %s=%q", domain.ErrInvalidSetting, domain.SettingWithdrawalPolicy, v)
		}
		st.WithdrawalPolicy = policy
	}
	for key, dst := range map[string]*domain.WalletType{
		domain.SettingBinaryPayoutWallet: &st.BinaryPayoutWallet,
		domain.SettingROIWallet:          &st.ROIWallet,
	} {
		if v, ok := lookup(raw, key); ok {
			wt := domain.WalletType(strings.ToUpper(v))
			if !wt.Valid() {
				return nil, fmt.Errorf("%w: %s=%q", domain.ErrInvalidSetting, key, v)
			}
			*dst = wt
		}
	}
	if v, ok := lookup(raw, domain.SettingInternalTransferEnabled); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", domain.ErrInvalidSetting, domain.SettingInternalTransferEnabled, v)
		}
		st.InternalTransferEnabled = enabled
	}
	return &st, nil
}

func lookup(raw map[string]string, key string) (string, bool) {
	v, ok := raw[key]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func nonNegative(key, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s=%q", domain.ErrInvalidSetting, key, v)
	}
	return d, nil
}
