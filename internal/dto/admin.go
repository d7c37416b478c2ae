package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type BonusRequestDTO struct {
	Amount string `json:"amount" example:"25.00"`
	Note   string `json:"note" example:"Rank reward: Gold"`
}

type AdjustRequestDTO struct {
	WalletType string `json:"walletType" example:"F_WALLET"`
	Amount     string `json:"amount" example:"10.00"`
	Direction  string `json:"direction" example:"DEBIT"`
	Note       string `json:"note" example:"Chargeback"`
}

type StatusRequestDTO struct {
	Status string `json:"status" example:"SUSPENDED"`
}

type PasswordRequestDTO struct {
	Password string `json:"password" example:"n3w-pass"`
}

type HolidayRequestDTO struct {
	Title string `json:"title" example:"Founders day"`
}

type RestrictRequestDTO struct {
	Restricted bool `json:"restricted"`
}

type ActiveRequestDTO struct {
	Active bool `json:"active"`
}

// DecisionRequestDTO carries the admin note for an approve or reject call.
type DecisionRequestDTO struct {
	Note string `json:"note"`
}

type GatewayDepositRequestDTO struct {
	UserID       int64  `json:"userId" example:"42"`
	Amount       string `json:"amount" example:"100.00"`
	ExternalTxID string `json:"externalTxId" example:"pg_7f3a9c"`
}

type SettingRequestDTO struct {
	Value string `json:"value" example:"10"`
}

type LimitDTO struct {
	WalletType    domain.WalletType `json:"walletType" example:"I_WALLET"`
	MinWithdrawal decimal.Decimal   `json:"minWithdrawal" swaggertype:"string" example:"10.00"`
	MaxPerTx      decimal.Decimal   `json:"maxPerTx" swaggertype:"string" example:"1000.00"`
	MaxTxCount24h int               `json:"maxTxCount24h" example:"3"`
	MaxAmount24h  decimal.Decimal   `json:"maxAmount24h" swaggertype:"string" example:"2000.00"`
	IsActive      bool              `json:"isActive"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func FromLimit(l *domain.WalletLimit) LimitDTO {
	return LimitDTO{
		WalletType:    l.WalletType,
		MinWithdrawal: l.MinWithdrawal,
		MaxPerTx:      l.MaxPerTx,
		MaxTxCount24h: l.MaxTxCount24h,
		MaxAmount24h:  l.MaxAmount24h,
		IsActive:      l.IsActive,
		UpdatedAt:     l.UpdatedAt,
	}
}

func FromLimits(ls []domain.WalletLimit) []LimitDTO {
	res := make([]LimitDTO, len(ls))
	for i := range ls {
		res[i] = FromLimit(&ls[i])
	}
	return res
}

type LimitRequestDTO struct {
	MinWithdrawal string `json:"minWithdrawal" example:"10"`
	MaxPerTx      string `json:"maxPerTx" example:"1000"`
	MaxTxCount24h int    `json:"maxTxCount24h" example:"3"`
	MaxAmount24h  string `json:"maxAmount24h" example:"2000"`
	IsActive      bool   `json:"isActive"`
}

func (r LimitRequestDTO) ToDomain(wt domain.WalletType) (domain.WalletLimit, error) {
	l := domain.WalletLimit{WalletType: wt, MaxTxCount24h: r.MaxTxCount24h, IsActive: r.IsActive}
	var err error
	if l.MinWithdrawal, err = decimal.NewFromString(r.MinWithdrawal); err != nil {
		return l, domain.ErrInvalidLimit
	}
	if l.MaxPerTx, err = decimal.NewFromString(r.MaxPerTx); err != nil {
		return l, domain.ErrInvalidLimit
	}
	if l.MaxAmount24h, err = decimal.NewFromString(r.MaxAmount24h); err != nil {
		return l, domain.ErrInvalidLimit
	}
	return l, nil
}
