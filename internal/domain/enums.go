package domain

import (
	"fmt"
	"strings"
)

type WalletType string

const (
	FWallet     WalletType = "F_WALLET"
	IWallet     WalletType = "I_WALLET"
	MWallet     WalletType = "M_WALLET"
	BonusWallet WalletType = "BONUS_WALLET"
)

// WalletTypes is the fixed set of wallets every user owns, in display order.
var WalletTypes = []WalletType{FWallet, IWallet, MWallet, BonusWallet}

func (t WalletType) Valid() bool {
	for _, wt := range WalletTypes {
		if wt == t {
			return true
		}
	}
	return false
}

// ParseWalletType accepts a wallet type in any case.
func ParseWalletType(s string) (WalletType, error) {
	wt := WalletType(strings.ToUpper(strings.TrimSpace(s)))
	if !wt.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidWalletType, s)
	}
	return wt, nil
}

type TxType string

const (
	TxDeposit         TxType = "DEPOSIT"
	TxWithdraw        TxType = "WITHDRAW"
	TxBinaryIncome    TxType = "BINARY_INCOME"
	TxROICredit       TxType = "ROI_CREDIT"
	TxReferralIncome  TxType = "REFERRAL_INCOME"
	TxPackagePurchase TxType = "PACKAGE_PURCHASE"
	TxTransferIn      TxType = "TRANSFER_IN"
	TxTransferOut     TxType = "TRANSFER_OUT"
	TxRankReward      TxType = "RANK_REWARD"
	TxAdjustment      TxType = "ADJUSTMENT"
)

var txTypes = map[TxType]struct{}{
	TxDeposit: {}, TxWithdraw: {}, TxBinaryIncome: {}, TxROICredit: {}, TxReferralIncome: {},
	TxPackagePurchase: {}, TxTransferIn: {}, TxTransferOut: {}, TxRankReward: {}, TxAdjustment: {},
}

func (t TxType) Valid() bool {
	_, ok := txTypes[t]
	return ok
}

type Direction string

const (
	Credit Direction = "CREDIT"
	Debit  Direction = "DEBIT"
)

type Position string

const (
	Left  Position = "LEFT"
	Right Position = "RIGHT"
)

func (p Position) Valid() bool {
	return p == Left || p == Right
}

type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserInactive  UserStatus = "INACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type PurchaseStatus string

const (
	PurchaseActive    PurchaseStatus = "ACTIVE"
	PurchaseCompleted PurchaseStatus = "COMPLETED"
	PurchaseCancelled PurchaseStatus = "CANCELLED"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

type TransferMode string

const (
	TransferDownlineOnly TransferMode = "DOWNLINE_ONLY"
	TransferCrossline    TransferMode = "CROSSLINE"
)

// WithdrawalPolicy decides when a withdrawal request touches the wallet.
type WithdrawalPolicy string

const (
	// WithdrawalReserve debits at creation and refunds on rejection.
	WithdrawalReserve WithdrawalPolicy = "RESERVE"
	// WithdrawalDeferred debits only when an admin approves.
	WithdrawalDeferred WithdrawalPolicy = "DEFERRED"
)
