package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/dto"
	"github.com/GlebRadaev/mlmledger/internal/handlers/httperr"
	"github.com/GlebRadaev/mlmledger/internal/service/accountservice"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
	"github.com/GlebRadaev/mlmledger/pkg/utils"
)

//go:generate mockgen -source=auth.go -destination=mock_service.go -package=auth
type Service interface {
	Register(ctx context.Context, p accountservice.RegisterParams) (*domain.User, error)
	Authenticate(ctx context.Context, login, password string) (*domain.User, error)
	GenerateToken(user *domain.User) (string, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
//
//	@Summary		Register a new member
//	@Description	Create a member with four empty wallets, placed under the parent (or sponsor) on the chosen leg
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Register request body"
//	@Success		200		{object}	dto.RegisterResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		404		{object}	utils.Response	"Sponsor or parent not found"
//	@Failure		409		{object}	utils.Response	"User already exists or position taken"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	if !decode(w, r, &req) {
		return
	}
	user, err := h.authService.Register(r.Context(), accountservice.RegisterParams{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		SponsorMemberID: req.SponsorMemberID,
		ParentMemberID:  req.ParentMemberID,
		Position:        domain.Position(req.Position),
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	if _, ok := h.issueToken(w, user); !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.RegisterResponseDTO{
		Message:  "User successfully registered",
		MemberID: user.MemberID,
	})
}

// Login godoc
//
//	@Summary		Authenticate user
//	@Description	Log in with a username or email and get a JWT token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.LoginResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		403		{object}	utils.Response	"Account suspended"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if !decode(w, r, &req) {
		return
	}
	user, err := h.authService.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	token, ok := h.issueToken(w, user)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.LoginResponseDTO{
		Message: "User successfully authenticated",
		Token:   token,
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// issueToken signs a token for user and exposes it in the Authorization header.
func (h *AuthHandler) issueToken(w http.ResponseWriter, user *domain.User) (string, bool) {
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		zap.L().Error("failed to sign token", zap.Int64("userID", user.ID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return "", false
	}
	w.Header().Set("Authorization", "Bearer "+token)
	return token, true
}

// Profile godoc
//
//	@Summary		Current member profile
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.UserDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := h.authService.Profile(r.Context(), userID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromUser(user))
}
