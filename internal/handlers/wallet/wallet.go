package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/dto"
	"github.com/GlebRadaev/mlmledger/internal/handlers/httperr"
	"github.com/GlebRadaev/mlmledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
	"github.com/GlebRadaev/mlmledger/pkg/utils"
)

const defaultPageSize = 50

//go:generate mockgen -source=wallet.go -destination=mock_service.go -package=wallet
type Service interface {
	Wallets(ctx context.Context, userID int64) ([]domain.Wallet, error)
	Transactions(ctx context.Context, userID int64, walletType domain.WalletType, limit, offset int) ([]domain.WalletTransaction, error)
	Transfer(ctx context.Context, p ledgerservice.TransferParams) (*domain.TransferResult, error)
	TransferInternal(ctx context.Context, userID int64, from, to domain.WalletType, amount string) (*domain.TransferResult, error)
	IncomeDetails(ctx context.Context, userID int64, txType domain.TxType, limit, offset int) (*ledgerservice.IncomeDetails, error)
	GainReport(ctx context.Context, userID int64, from, to *time.Time) ([]domain.GainRow, error)
	Reconcile(ctx context.Context, userID int64, walletType domain.WalletType) (*domain.Reconciliation, error)
}

type LimitService interface {
	CanDebit(ctx context.Context, userID int64, walletType domain.WalletType, amount string) (*domain.Decision, error)
}

type WalletHandler struct {
	walletService Service
	limitService  LimitService
	loc           *time.Location
}

func New(walletService Service, limitService LimitService, loc *time.Location) *WalletHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &WalletHandler{
		walletService: walletService,
		limitService:  limitService,
		loc:           loc,
	}
}

func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return userID, ok
}

func walletType(w http.ResponseWriter, r *http.Request) (domain.WalletType, bool) {
	wt, err := domain.ParseWalletType(chi.URLParam(r, "type"))
	if err != nil {
		httperr.Respond(w, err)
		return "", false
	}
	return wt, true
}

// GetWallets godoc
//
//	@Summary		List wallets
//	@Description	Balances of the four wallets owned by the authenticated member
//	@Tags			Wallets
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WalletDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/wallets [get]
func (h *WalletHandler) GetWallets(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	wallets, err := h.walletService.Wallets(r.Context(), userID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromWallets(wallets))
}

// GetTransactions godoc
//
//	@Summary		Wallet ledger
//	@Description	Ledger rows of one wallet, newest first
//	@Tags			Wallets
//	@Security		BearerAuth
//	@Produce		json
//	@Param			type	path		string	true	"Wallet type"	Enums(F_WALLET, I_WALLET, M_WALLET, BONUS_WALLET)
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{array}		dto.TransactionDTO
//	@Success		204		{object}	utils.Response	"No transactions"
//	@Failure		400		{object}	utils.Response	"Unknown wallet type"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/wallets/{type}/transactions [get]
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	wt, ok := walletType(w, r)
	if !ok {
		return
	}
	limit, offset := httperr.Page(r, defaultPageSize)
	txs, err := h.walletService.Transactions(r.Context(), userID, wt, limit, offset)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	if len(txs) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Transactions not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromTransactions(txs))
}

// CanDebit godoc
//
//	@Summary		Pre-flight withdrawal check
//	@Description	Reports whether the amount could be withdrawn right now and, if not, why
//	@Tags			Wallets
//	@Security		BearerAuth
//	@Produce		json
//	@Param			type	path		string	true	"Wallet type"
//	@Param			amount	query		string	true	"Amount"
//	@Success		200		{object}	domain.Decision
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/wallets/{type}/can-debit [get]
func (h *WalletHandler) CanDebit(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	wt, ok := walletType(w, r)
	if !ok {
		return
	}
	decision, err := h.limitService.CanDebit(r.Context(), userID, wt, r.URL.Query().Get("amount"))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, decision)
}

// Reconcile godoc
//
//	@Summary		Reconcile a wallet
//	@Description	Compares the stored balance with the sum of the wallet's ledger
//	@Tags			Wallets
//	@Security		BearerAuth
//	@Produce		json
//	@Param			type	path		string	true	"Wallet type"
//	@Success		200		{object}	domain.Reconciliation
//	@Failure		404		{object}	utils.Response	"Wallet not found"
//	@Router			/api/user/wallets/{type}/reconcile [get]
func (h *WalletHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	wt, ok := walletType(w, r)
	if !ok {
		return
	}
	rec, err := h.walletService.Reconcile(r.Context(), userID, wt)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rec)
}

// Transfer godoc
//
//	@Summary		Transfer to another member
//	@Description	Moves funds to the same wallet type of another member. Subject to the transfer mode setting.
//	@Tags			Wallets
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.TransferRequestDTO	true	"Transfer payload"
//	@Success		200		{object}	domain.TransferResult
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		403		{object}	utils.Response	"Recipient outside downline or account inactive"
//	@Failure		404		{object}	utils.Response	"Recipient not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/transfer [post]
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.TransferRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	wt, err := domain.ParseWalletType(req.FromWalletType)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	res, err := h.walletService.Transfer(r.Context(), ledgerservice.TransferParams{
		FromUserID:     userID,
		FromWalletType: wt,
		ToMemberID:     req.ToMemberID,
		Amount:         req.Amount,
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// TransferInternal godoc
//
//	@Summary		Move funds between own wallets
//	@Tags			Wallets
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.InternalTransferRequestDTO	true	"Transfer payload"
//	@Success		200		{object}	domain.TransferResult
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		403		{object}	utils.Response	"Internal transfers disabled"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/transfer/internal [post]
func (h *WalletHandler) TransferInternal(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.InternalTransferRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	from, err := domain.ParseWalletType(req.From)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	to, err := domain.ParseWalletType(req.To)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	res, err := h.walletService.TransferInternal(r.Context(), userID, from, to, req.Amount)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// GetIncome godoc
//
//	@Summary		Income details
//	@Description	Total credited for one income type with a page of the underlying ledger rows
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Param			type	path		string	true	"Transaction type"	Enums(BINARY_INCOME, ROI_CREDIT, REFERRAL_INCOME, RANK_REWARD, DEPOSIT, TRANSFER_IN)
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{object}	dto.IncomeDetailsDTO
//	@Failure		400		{object}	utils.Response	"Unknown transaction type"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/income/{type} [get]
func (h *WalletHandler) GetIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	limit, offset := httperr.Page(r, defaultPageSize)
	details, err := h.walletService.IncomeDetails(r.Context(), userID, domain.TxType(chi.URLParam(r, "type")), limit, offset)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.IncomeDetailsDTO{
		Type:         details.Type,
		Total:        details.Total,
		Transactions: dto.FromTransactions(details.Transactions),
	})
}

// GetGains godoc
//
//	@Summary		Gain report
//	@Description	Credits grouped by income type, optionally bounded by [from, to)
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Param			from	query		string	false	"Start date (YYYY-MM-DD)"
//	@Param			to		query		string	false	"End date, exclusive (YYYY-MM-DD)"
//	@Success		200		{array}		dto.GainRowDTO
//	@Failure		400		{object}	utils.Response	"Invalid date"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/gains [get]
func (h *WalletHandler) GetGains(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	from, err := h.date(r.URL.Query().Get("from"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid from date")
		return
	}
	to, err := h.date(r.URL.Query().Get("to"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid to date")
		return
	}
	rows, err := h.walletService.GainReport(r.Context(), userID, from, to)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromGainRows(rows))
}

func (h *WalletHandler) date(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, h.loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
