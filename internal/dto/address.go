package dto

import (
	"time"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type PayoutMethodDTO struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Currency           string    `json:"currency"`
	AllowedChangeCount int       `json:"allowedChangeCount"`
	CreatedAt          time.Time `json:"createdAt"`
}

func FromPayoutMethod(m *domain.PayoutMethod) PayoutMethodDTO {
	return PayoutMethodDTO{
		ID:                 m.ID,
		Name:               m.Name,
		Currency:           m.Currency,
		AllowedChangeCount: m.AllowedChangeCount,
		CreatedAt:          m.CreatedAt,
	}
}

func FromPayoutMethods(ms []domain.PayoutMethod) []PayoutMethodDTO {
	res := make([]PayoutMethodDTO, len(ms))
	for i := range ms {
		res[i] = FromPayoutMethod(&ms[i])
	}
	return res
}

type PayoutMethodRequestDTO struct {
	Name               string `json:"name" example:"USDT-TRC20"`
	Currency           string `json:"currency" example:"USDT"`
	AllowedChangeCount int    `json:"allowedChangeCount" example:"1"`
}

func (r PayoutMethodRequestDTO) ToDomain(id int64) domain.PayoutMethod {
	return domain.PayoutMethod{ID: id, Name: r.Name, Currency: r.Currency, AllowedChangeCount: r.AllowedChangeCount}
}

type PayoutAddressDTO struct {
	ID          int64     `json:"id"`
	MethodID    int64     `json:"methodId"`
	Method      string    `json:"method"`
	Currency    string    `json:"currency"`
	Address     string    `json:"address"`
	ChangeCount int       `json:"changeCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromPayoutAddress(a *domain.PayoutAddress) PayoutAddressDTO {
	return PayoutAddressDTO{
		ID:          a.ID,
		MethodID:    a.MethodID,
		Method:      a.MethodName,
		Currency:    a.Currency,
		Address:     a.Address,
		ChangeCount: a.ChangeCount,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func FromPayoutAddresses(as []domain.PayoutAddress) []PayoutAddressDTO {
	res := make([]PayoutAddressDTO, len(as))
	for i := range as {
		res[i] = FromPayoutAddress(&as[i])
	}
	return res
}

type PayoutAddressRequestDTO struct {
	MethodID int64  `json:"methodId" example:"1"`
	Address  string `json:"address" example:"TQ5Nx3..."`
}
