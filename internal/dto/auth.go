package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type RegisterRequestDTO struct {
	Username        string `json:"username" example:"alice"`
	Email           string `json:"email" example:"alice@example.com"`
	Password        string `json:"password" example:"s3cret-pass"`
	SponsorMemberID string `json:"sponsorMemberId,omitempty" example:"4821930575"`
	ParentMemberID  string `json:"parentMemberId,omitempty" example:"4821930575"`
	Position        string `json:"position,omitempty" example:"LEFT"`
}

type RegisterResponseDTO struct {
	Message  string `json:"message"`
	MemberID string `json:"memberId"`
}

type LoginRequestDTO struct {
	Login    string `json:"login" example:"alice"`
	Password string `json:"password" example:"s3cret-pass"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type UserDTO struct {
	ID                     int64             `json:"id"`
	MemberID               string            `json:"memberId"`
	Username               string            `json:"username"`
	Email                  string            `json:"email"`
	Role                   domain.Role       `json:"role"`
	Position               domain.Position   `json:"position"`
	ParentID               *int64            `json:"parentId,omitempty"`
	SponsorID              *int64            `json:"sponsorId,omitempty"`
	LeftBV                 decimal.Decimal   `json:"leftBv"`
	RightBV                decimal.Decimal   `json:"rightBv"`
	Status                 domain.UserStatus `json:"status"`
	IsWithdrawalRestricted bool              `json:"isWithdrawalRestricted"`
	ActivePackageCount     int               `json:"activePackageCount"`
	CreatedAt              time.Time         `json:"createdAt"`
}

func FromUser(u *domain.User) UserDTO {
	return UserDTO{
		ID:                     u.ID,
		MemberID:               u.MemberID,
		Username:               u.Username,
		Email:                  u.Email,
		Role:                   u.Role,
		Position:               u.Position,
		ParentID:               u.ParentID,
		SponsorID:              u.SponsorID,
		LeftBV:                 u.LeftBV,
		RightBV:                u.RightBV,
		Status:                 u.Status,
		IsWithdrawalRestricted: u.IsWithdrawalRestricted,
		ActivePackageCount:     u.ActivePackageCount,
		CreatedAt:              u.CreatedAt,
	}
}

type DownlineMemberDTO struct {
	ID        int64             `json:"id"`
	MemberID  string            `json:"memberId"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	ParentID  *int64            `json:"parentId,omitempty"`
	SponsorID *int64            `json:"sponsorId,omitempty"`
	Position  domain.Position   `json:"position"`
	Status    domain.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

func FromDownline(users []domain.User) []DownlineMemberDTO {
	res := make([]DownlineMemberDTO, len(users))
	for i, u := range users {
		res[i] = DownlineMemberDTO{
			ID:        u.ID,
			MemberID:  u.MemberID,
			Username:  u.Username,
			Email:     u.Email,
			ParentID:  u.ParentID,
			SponsorID: u.SponsorID,
			Position:  u.Position,
			Status:    u.Status,
			CreatedAt: u.CreatedAt,
		}
	}
	return res
}
