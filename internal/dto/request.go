package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type WithdrawRequestDTO struct {
	WalletType      string `json:"walletType" example:"I_WALLET"`
	Amount          string `json:"amount" example:"50.00"`
	Method          string `json:"method" example:"BANK"`
	PayoutAddressID int64  `json:"payoutAddressId" example:"3"`
}

type DepositRequestDTO struct {
	Amount    string `json:"amount" example:"100.00"`
	Method    string `json:"method" example:"BANK"`
	Reference string `json:"reference" example:"INV-2024-0001"`
}

type WithdrawalDTO struct {
	ID         int64                `json:"id"`
	UserID     int64                `json:"userId"`
	WalletType domain.WalletType    `json:"walletType" example:"I_WALLET"`
	Amount     decimal.Decimal      `json:"amount" swaggertype:"string" example:"50.00"`
	Method     string               `json:"method"`
	Address    string               `json:"address"`
	Status     domain.RequestStatus `json:"status" example:"PENDING"`
	AdminNote  string               `json:"adminNote,omitempty"`
	Reserved   bool                 `json:"reserved"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

func FromWithdrawal(r *domain.WithdrawalRequest) WithdrawalDTO {
	return WithdrawalDTO{
		ID:         r.ID,
		UserID:     r.UserID,
		WalletType: r.WalletType,
		Amount:     r.Amount,
		Method:     r.Method,
		Address:    r.Address,
		Status:     r.Status,
		AdminNote:  r.AdminNote,
		Reserved:   r.Reserved(),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func FromWithdrawals(rs []domain.WithdrawalRequest) []WithdrawalDTO {
	res := make([]WithdrawalDTO, len(rs))
	for i := range rs {
		res[i] = FromWithdrawal(&rs[i])
	}
	return res
}

type DepositDTO struct {
	ID        int64                `json:"id"`
	UserID    int64                `json:"userId"`
	Amount    decimal.Decimal      `json:"amount" swaggertype:"string" example:"100.00"`
	Method    string               `json:"method"`
	Reference string               `json:"reference"`
	Status    domain.RequestStatus `json:"status" example:"PENDING"`
	AdminNote string               `json:"adminNote,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func FromDeposit(r *domain.DepositRequest) DepositDTO {
	return DepositDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		Amount:    r.Amount,
		Method:    r.Method,
		Reference: r.Reference,
		Status:    r.Status,
		AdminNote: r.AdminNote,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func FromDeposits(rs []domain.DepositRequest) []DepositDTO {
	res := make([]DepositDTO, len(rs))
	for i := range rs {
		res[i] = FromDeposit(&rs[i])
	}
	return res
}

type PayoutLogDTO struct {
	Date        string          `json:"date" example:"2024-05-01"`
	LeftBefore  decimal.Decimal `json:"leftBefore" swaggertype:"string"`
	RightBefore decimal.Decimal `json:"rightBefore" swaggertype:"string"`
	VolumePaid  decimal.Decimal `json:"volumePaid" swaggertype:"string"`
	PayoutAmt   decimal.Decimal `json:"payoutAmt" swaggertype:"string"`
}

func FromPayoutLogs(logs []domain.BinaryPayoutLog) []PayoutLogDTO {
	res := make([]PayoutLogDTO, len(logs))
	for i, l := range logs {
		res[i] = PayoutLogDTO{
			Date:        l.Date.Format(time.DateOnly),
			LeftBefore:  l.LeftBefore,
			RightBefore: l.RightBefore,
			VolumePaid:  l.VolumePaid,
			PayoutAmt:   l.PayoutAmt,
		}
	}
	return res
}
