package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type WalletDTO struct {
	ID        int64             `json:"id" example:"12"`
	Type      domain.WalletType `json:"type" example:"F_WALLET"`
	Balance   decimal.Decimal   `json:"balance" swaggertype:"string" example:"250.00"`
	UpdatedAt time.Time         `json:"updatedAt" example:"2024-05-01T10:00:00Z"`
}

func FromWallets(ws []domain.Wallet) []WalletDTO {
	res := make([]WalletDTO, len(ws))
	for i, w := range ws {
		res[i] = WalletDTO{ID: w.ID, Type: w.Type, Balance: w.Balance, UpdatedAt: w.UpdatedAt}
	}
	return res
}

type TransactionDTO struct {
	ID           int64            `json:"id"`
	WalletID     int64            `json:"walletId"`
	Type         domain.TxType    `json:"type" example:"TRANSFER_OUT"`
	Direction    domain.Direction `json:"direction" example:"DEBIT"`
	Amount       decimal.Decimal  `json:"amount" swaggertype:"string" example:"10.00"`
	BalanceAfter decimal.Decimal  `json:"balanceAfter" swaggertype:"string" example:"240.00"`
	TxNumber     string           `json:"txNumber" example:"TX-LVX3K2A1-9F2C4B1D"`
	Purpose      string           `json:"purpose,omitempty"`
	Meta         domain.Meta      `json:"meta,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

func FromTransactions(txs []domain.WalletTransaction) []TransactionDTO {
	res := make([]TransactionDTO, len(txs))
	for i, t := range txs {
		res[i] = TransactionDTO{
			ID:           t.ID,
			WalletID:     t.WalletID,
			Type:         t.Type,
			Direction:    t.Direction,
			Amount:       t.Amount,
			BalanceAfter: t.BalanceAfter,
			TxNumber:     t.TxNumber,
			Purpose:      t.Purpose,
			Meta:         t.Meta,
			CreatedAt:    t.CreatedAt,
		}
	}
	return res
}

type TransferRequestDTO struct {
	FromWalletType string `json:"fromWalletType" example:"F_WALLET"`
	ToMemberID     string `json:"toMemberId" example:"4821930575"`
	Amount         string `json:"amount" example:"10.00"`
}

type InternalTransferRequestDTO struct {
	From   string `json:"from" example:"BINARY_INCOME"`
	To     string `json:"to" example:"F_WALLET"`
	Amount string `json:"amount" example:"25.00"`
}

type IncomeDetailsDTO struct {
	Type         domain.TxType    `json:"type" example:"BINARY_INCOME"`
	Total        decimal.Decimal  `json:"total" swaggertype:"string" example:"100.00"`
	Transactions []TransactionDTO `json:"transactions"`
}

type GainRowDTO struct {
	Type  domain.TxType   `json:"type" example:"ROI_CREDIT"`
	Total decimal.Decimal `json:"total" swaggertype:"string" example:"42.50"`
	Count int             `json:"count" example:"17"`
}

func FromGainRows(rows []domain.GainRow) []GainRowDTO {
	res := make([]GainRowDTO, len(rows))
	for i, r := range rows {
		res[i] = GainRowDTO{Type: r.Type, Total: r.Total, Count: r.Count}
	}
	return res
}
