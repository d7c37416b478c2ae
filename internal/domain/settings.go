package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	SettingBinaryRate              = "BINARY_INCOME_RATE"
	SettingClosingTime             = "BACK_OFFICE_CLOSING_TIME"
	SettingReferralBonusAmount     = "REFERRAL_BONUS_AMOUNT"
	SettingReferralIncomeRate      = "REFERRAL_INCOME_RATE"
	SettingTransferMode            = "TRANSFER_MODE"
	SettingWithdrawalPolicy        = "WITHDRAWAL_POLICY"
	SettingBinaryPayoutWallet      = "BINARY_PAYOUT_WALLET"
	SettingROIWallet               = "ROI_WALLET"
	SettingInternalTransferEnabled = "INTERNAL_TRANSFER_ENABLED"
)

type ClosingTime struct {
	Hour   int
	Minute int
}

func (c ClosingTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClosingTime accepts "HH:MM" in 24h format.
func ParseClosingTime(s string) (ClosingTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return ClosingTime{}, fmt.Errorf("%w: closing time %q", ErrInvalidSetting, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return ClosingTime{}, fmt.Errorf("%w: closing time %q", ErrInvalidSetting, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return ClosingTime{}, fmt.Errorf("%w: closing time %q", ErrInvalidSetting, s)
	}
	return ClosingTime{Hour: h, Minute: m}, nil
}

// Settings is an immutable snapshot of the admin-tunable configuration.
type Settings struct {
	// BinaryRatePct is the binary income rate in percent; invalid when unset.
	BinaryRatePct           decimal.NullDecimal
	ClosingTime             ClosingTime
	ReferralBonusAmount     decimal.Decimal
	ReferralIncomeRatePct   decimal.Decimal
	TransferMode            TransferMode
	WithdrawalPolicy        WithdrawalPolicy
	BinaryPayoutWallet      WalletType
	ROIWallet               WalletType
	InternalTransferEnabled bool
}

func DefaultSettings() Settings {
	return Settings{
		ClosingTime:        ClosingTime{Hour: 23, Minute: 59},
		TransferMode:       TransferDownlineOnly,
		WithdrawalPolicy:   WithdrawalReserve,
		BinaryPayoutWallet: MWallet,
		ROIWallet:          MWallet,
	}
}
