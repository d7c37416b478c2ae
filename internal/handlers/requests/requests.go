package requests

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/dto"
	"github.com/GlebRadaev/mlmledger/internal/handlers/httperr"
	"github.com/GlebRadaev/mlmledger/internal/service/requestservice"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
	"github.com/GlebRadaev/mlmledger/pkg/utils"
)

const defaultPageSize = 50

//go:generate mockgen -source=requests.go -destination=mock_service.go -package=requests
type Service interface {
	CreateWithdrawRequest(ctx context.Context, p requestservice.WithdrawParams) (*domain.WithdrawalRequest, error)
	CreateDepositRequest(ctx context.Context, p requestservice.DepositParams) (*domain.DepositRequest, error)
	ListWithdrawals(ctx context.Context, f domain.RequestFilter) ([]domain.WithdrawalRequest, error)
	ListDeposits(ctx context.Context, f domain.RequestFilter) ([]domain.DepositRequest, error)
}

type RequestHandler struct {
	requestService Service
}

func New(requestService Service) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
	}
}

func (h *RequestHandler) filter(r *http.Request, userID int64) domain.RequestFilter {
	limit, offset := httperr.Page(r, defaultPageSize)
	return domain.RequestFilter{
		UserID: &userID,
		Status: domain.RequestStatus(r.URL.Query().Get("status")),
		Limit:  limit,
		Offset: offset,
	}
}

// CreateWithdrawal godoc
//
//	@Summary		Request a withdrawal
//	@Description	Opens a pending withdrawal. Depending on the withdrawal policy the amount is reserved now or charged on approval. The destination comes from one of the member's payout addresses.
//	@Tags			Requests
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal payload"
//	@Success		201		{object}	dto.WithdrawalDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount or wallet"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		403		{object}	utils.Response	"Limit exceeded or withdrawals restricted"
//	@Failure		404		{object}	utils.Response	"Payout address not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [post]
func (h *RequestHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	wt, err := domain.ParseWalletType(req.WalletType)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	created, err := h.requestService.CreateWithdrawRequest(r.Context(), requestservice.WithdrawParams{
		UserID:          userID,
		WalletType:      wt,
		Amount:          req.Amount,
		Method:          req.Method,
		PayoutAddressID: req.PayoutAddressID,
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromWithdrawal(created))
}

// GetWithdrawals godoc
//
//	@Summary		Own withdrawal requests
//	@Tags			Requests
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		string	false	"Status filter"	Enums(PENDING, APPROVED, REJECTED)
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{array}		dto.WithdrawalDTO
//	@Success		204		{object}	utils.Response	"Withdrawals not found"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *RequestHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	list, err := h.requestService.ListWithdrawals(r.Context(), h.filter(r, userID))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	if len(list) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawals not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromWithdrawals(list))
}

// CreateDeposit godoc
//
//	@Summary		Request a manual deposit
//	@Description	Opens a pending deposit into F_WALLET that an admin approves after checking the payment
//	@Tags			Requests
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DepositRequestDTO	true	"Deposit payload"
//	@Success		201		{object}	dto.DepositDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/deposits [post]
func (h *RequestHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req dto.DepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	created, err := h.requestService.CreateDepositRequest(r.Context(), requestservice.DepositParams{
		UserID:    userID,
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromDeposit(created))
}

// GetDeposits godoc
//
//	@Summary		Own deposit requests
//	@Tags			Requests
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		string	false	"Status filter"	Enums(PENDING, APPROVED, REJECTED)
//	@Success		200		{array}		dto.DepositDTO
//	@Success		204		{object}	utils.Response	"Deposits not found"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/deposits [get]
func (h *RequestHandler) GetDeposits(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	list, err := h.requestService.ListDeposits(r.Context(), h.filter(r, userID))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	if len(list) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Deposits not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromDeposits(list))
}
