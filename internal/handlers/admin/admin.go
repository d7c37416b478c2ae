package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/dto"
	"github.com/GlebRadaev/mlmledger/internal/handlers/httperr"
	"github.com/GlebRadaev/mlmledger/internal/service/adminservice"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
	"github.com/GlebRadaev/mlmledger/pkg/utils"
)

const defaultPageSize = 100

//go:generate mockgen -source=admin.go -destination=mock_service.go -package=admin
type Service interface {
	CreditBonus(ctx context.Context, userID int64, amount, note string) (*domain.LedgerResult, error)
	Adjust(ctx context.Context, p adminservice.AdjustParams) (*domain.LedgerResult, error)
	SetStatus(ctx context.Context, userID int64, status domain.UserStatus) error
	SetWithdrawalRestricted(ctx context.Context, userID int64, restricted bool) error
	SetPassword(ctx context.Context, userID int64, password string) error
	UpsertHoliday(ctx context.Context, date time.Time, title string) error
	Settings(ctx context.Context) (map[string]string, error)
	UpdateSetting(ctx context.Context, key, value string) error
	RunPayout(ctx context.Context, date *time.Time) (*domain.RunReport, error)
	RunAccrual(ctx context.Context, date *time.Time) (*domain.RunReport, error)
}

type RequestService interface {
	ApproveWithdrawal(ctx context.Context, id, adminID int64, note string) (*domain.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, id, adminID int64, note string) (*domain.WithdrawalRequest, error)
	ApproveDeposit(ctx context.Context, id, adminID int64, note string) (*domain.DepositRequest, error)
	RejectDeposit(ctx context.Context, id, adminID int64, note string) (*domain.DepositRequest, error)
	ConfirmGatewayDeposit(ctx context.Context, userID int64, amount, externalTxID string) (*domain.LedgerResult, error)
	ListWithdrawals(ctx context.Context, f domain.RequestFilter) ([]domain.WithdrawalRequest, error)
	ListDeposits(ctx context.Context, f domain.RequestFilter) ([]domain.DepositRequest, error)
}

type LimitService interface {
	Limits(ctx context.Context) ([]domain.WalletLimit, error)
	UpsertLimit(ctx context.Context, limit domain.WalletLimit) (*domain.WalletLimit, error)
}

type PackageService interface {
	ListAll(ctx context.Context) ([]domain.Package, error)
	Create(ctx context.Context, p domain.Package) (*domain.Package, error)
	Update(ctx context.Context, p domain.Package) (*domain.Package, error)
	SetActive(ctx context.Context, id int64, active bool) (*domain.Package, error)
}

type LedgerService interface {
	Transactions(ctx context.Context, userID int64, walletType domain.WalletType, limit, offset int) ([]domain.WalletTransaction, error)
	Reconcile(ctx context.Context, userID int64, walletType domain.WalletType) (*domain.Reconciliation, error)
}

type AdminHandler struct {
	adminService   Service
	requestService RequestService
	limitService   LimitService
	packageService PackageService
	ledgerService  LedgerService
	loc            *time.Location
}

func New(
	adminService Service,
	requestService RequestService,
	limitService LimitService,
	packageService PackageService,
	ledgerService LedgerService,
	loc *time.Location,
) *AdminHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AdminHandler{
		adminService:   adminService,
		requestService: requestService,
		limitService:   limitService,
		packageService: packageService,
		ledgerService:  ledgerService,
		loc:            loc,
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := httperr.ID(chi.URLParam(r, "id"))
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
	}
	return id, ok
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func filter(r *http.Request) domain.RequestFilter {
	limit, offset := httperr.Page(r, defaultPageSize)
	f := domain.RequestFilter{
		Status: domain.RequestStatus(r.URL.Query().Get("status")),
		Limit:  limit,
		Offset: offset,
	}
	if id, ok := httperr.ID(r.URL.Query().Get("userId")); ok {
		f.UserID = &id
	}
	return f
}

// CreditBonus godoc
//
//	@Summary		Credit a bonus
//	@Description	Credits BONUS_WALLET of an active member with a RANK_REWARD entry
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"User id"
//	@Param			request	body		dto.BonusRequestDTO	true	"Bonus payload"
//	@Success		200		{object}	domain.LedgerResult
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		403		{object}	utils.Response	"Member not active"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Router			/api/admin/users/{id}/bonus [post]
func (h *AdminHandler) CreditBonus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.BonusRequestDTO
	if !decode(w, r, &req) {
		return
	}
	res, err := h.adminService.CreditBonus(r.Context(), id, req.Amount, req.Note)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// Adjust godoc
//
//	@Summary		Manual balance adjustment
//	@Description	Credits or debits a wallet with an ADJUSTMENT entry. Debits may overdraw the wallet.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"User id"
//	@Param			request	body		dto.AdjustRequestDTO	true	"Adjustment payload"
//	@Success		200		{object}	domain.LedgerResult
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		404		{object}	utils.Response	"Wallet not found"
//	@Router			/api/admin/users/{id}/adjust [post]
func (h *AdminHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.AdjustRequestDTO
	if !decode(w, r, &req) {
		return
	}
	wt, err := domain.ParseWalletType(req.WalletType)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	res, err := h.adminService.Adjust(r.Context(), adminservice.AdjustParams{
		UserID:     id,
		WalletType: wt,
		Amount:     req.Amount,
		Direction:  domain.Direction(req.Direction),
		Note:       req.Note,
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// SetStatus godoc
//
//	@Summary		Change member status
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id		path	int						true	"User id"
//	@Param			request	body	dto.StatusRequestDTO	true	"New status"
//	@Success		204
//	@Failure		400	{object}	utils.Response	"Invalid status"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Router			/api/admin/users/{id}/status [put]
func (h *AdminHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.StatusRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if err := h.adminService.SetStatus(r.Context(), id, domain.UserStatus(req.Status)); err != nil {
		httperr.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetWithdrawalRestricted godoc
//
//	@Summary		Block or unblock withdrawals
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id		path	int						true	"User id"
//	@Param			request	body	dto.RestrictRequestDTO	true	"Restriction flag"
//	@Success		204
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Router			/api/admin/users/{id}/withdrawal-restriction [put]
func (h *AdminHandler) SetWithdrawalRestricted(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.RestrictRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if err := h.adminService.SetWithdrawalRestricted(r.Context(), id, req.Restricted); err != nil {
		httperr.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetPassword godoc
//
//	@Summary		Reset a member's password
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id		path	int						true	"User id"
//	@Param			request	body	dto.PasswordRequestDTO	true	"New password"
//	@Success		204
//	@Failure		400	{object}	utils.Response	"Invalid password"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Router			/api/admin/users/{id}/password [put]
func (h *AdminHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.PasswordRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if err := h.adminService.SetPassword(r.Context(), id, req.Password); err != nil {
		httperr.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUserTransactions godoc
//
//	@Summary		Ledger of any member's wallet
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id		path		int		true	"User id"
//	@Param			type	path		string	true	"Wallet type"
//	@Success		200		{array}		dto.TransactionDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		404		{object}	utils.Response	"Wallet not found"
//	@Router			/api/admin/users/{id}/wallets/{type}/transactions [get]
func (h *AdminHandler) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	wt, err := domain.ParseWalletType(chi.URLParam(r, "type"))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	limit, offset := httperr.Page(r, defaultPageSize)
	txs, err := h.ledgerService.Transactions(r.Context(), id, wt, limit, offset)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromTransactions(txs))
}

// ReconcileUser godoc
//
//	@Summary		Reconcile any member's wallet
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id		path		int		true	"User id"
//	@Param			type	path		string	true	"Wallet type"
//	@Success		200		{object}	domain.Reconciliation
//	@Failure		404		{object}	utils.Response	"Wallet not found"
//	@Router			/api/admin/users/{id}/wallets/{type}/reconcile [get]
func (h *AdminHandler) ReconcileUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	wt, err := domain.ParseWalletType(chi.URLParam(r, "type"))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	rec, err := h.ledgerService.Reconcile(r.Context(), id, wt)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rec)
}

// GetWithdrawals godoc
//
//	@Summary		Withdrawal queue
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		string	false	"Status filter"
//	@Param			userId	query		int		false	"Member filter"
//	@Success		200		{array}		dto.WithdrawalDTO
//	@Router			/api/admin/withdrawals [get]
func (h *AdminHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	list, err := h.requestService.ListWithdrawals(r.Context(), filter(r))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromWithdrawals(list))
}

// ApproveWithdrawal godoc
//
//	@Summary		Approve a withdrawal
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Request id"
//	@Param			request	body		dto.DecisionRequestDTO	false	"Admin note"
//	@Success		200		{object}	dto.WithdrawalDTO
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		404		{object}	utils.Response	"Request not found"
//	@Failure		409		{object}	utils.Response	"Request already processed"
//	@Router			/api/admin/withdrawals/{id}/approve [post]
func (h *AdminHandler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.decideWithdrawal(w, r, h.requestService.ApproveWithdrawal)
}

// RejectWithdrawal godoc
//
//	@Summary		Reject a withdrawal
//	@Description	Rejects a pending withdrawal; a reserved amount is refunded to the wallet
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Request id"
//	@Param			request	body		dto.DecisionRequestDTO	false	"Admin note"
//	@Success		200		{object}	dto.WithdrawalDTO
//	@Failure		404		{object}	utils.Response	"Request not found"
//	@Failure		409		{object}	utils.Response	"Request already processed"
//	@Router			/api/admin/withdrawals/{id}/reject [post]
func (h *AdminHandler) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.decideWithdrawal(w, r, h.requestService.RejectWithdrawal)
}

type decideFn[T any] func(ctx context.Context, id, adminID int64, note string) (*T, error)

// decision reads the request id, the acting admin and the optional note.
func decision(w http.ResponseWriter, r *http.Request) (id, adminID int64, note string, ok bool) {
	if id, ok = pathID(w, r); !ok {
		return 0, 0, "", false
	}
	adminID, _ = auth.UserID(r.Context())
	var req dto.DecisionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return 0, 0, "", false
	}
	return id, adminID, req.Note, true
}

func (h *AdminHandler) decideWithdrawal(w http.ResponseWriter, r *http.Request, fn decideFn[domain.WithdrawalRequest]) {
	id, adminID, note, ok := decision(w, r)
	if !ok {
		return
	}
	req, err := fn(r.Context(), id, adminID, note)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromWithdrawal(req))
}

// GetDeposits godoc
//
//	@Summary		Deposit queue
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		string	false	"Status filter"
//	@Param			userId	query		int		false	"Member filter"
//	@Success		200		{array}		dto.DepositDTO
//	@Router			/api/admin/deposits [get]
func (h *AdminHandler) GetDeposits(w http.ResponseWriter, r *http.Request) {
	list, err := h.requestService.ListDeposits(r.Context(), filter(r))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromDeposits(list))
}

// ApproveDeposit godoc
//
//	@Summary		Approve a deposit
//	@Description	Credits F_WALLET with the requested amount
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Request id"
//	@Param			request	body		dto.DecisionRequestDTO	false	"Admin note"
//	@Success		200		{object}	dto.DepositDTO
//	@Failure		404		{object}	utils.Response	"Request not found"
//	@Failure		409		{object}	utils.Response	"Request already processed"
//	@Router			/api/admin/deposits/{id}/approve [post]
func (h *AdminHandler) ApproveDeposit(w http.ResponseWriter, r *http.Request) {
	h.decideDeposit(w, r, h.requestService.ApproveDeposit)
}

// RejectDeposit godoc
//
//	@Summary		Reject a deposit
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Request id"
//	@Param			request	body		dto.DecisionRequestDTO	false	"Admin note"
//	@Success		200		{object}	dto.DepositDTO
//	@Failure		404		{object}	utils.Response	"Request not found"
//	@Failure		409		{object}	utils.Response	"Request already processed"
//	@Router			/api/admin/deposits/{id}/reject [post]
func (h *AdminHandler) RejectDeposit(w http.ResponseWriter, r *http.Request) {
	h.decideDeposit(w, r, h.requestService.RejectDeposit)
}

func (h *AdminHandler) decideDeposit(w http.ResponseWriter, r *http.Request, fn decideFn[domain.DepositRequest]) {
	id, adminID, note, ok := decision(w, r)
	if !ok {
		return
	}
	req, err := fn(r.Context(), id, adminID, note)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromDeposit(req))
}

// ConfirmGatewayDeposit godoc
//
//	@Summary		Confirm a gateway payment
//	@Description	Credits F_WALLET once per external transaction id
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.GatewayDepositRequestDTO	true	"Gateway confirmation"
//	@Success		200		{object}	domain.LedgerResult
//	@Failure		400		{object}	utils.Response	"Invalid amount or missing external id"
//	@Failure		409		{object}	utils.Response	"Deposit already credited"
//	@Router			/api/admin/deposits/gateway [post]
func (h *AdminHandler) ConfirmGatewayDeposit(w http.ResponseWriter, r *http.Request) {
	var req dto.GatewayDepositRequestDTO
	if !decode(w, r, &req) {
		return
	}
	res, err := h.requestService.ConfirmGatewayDeposit(r.Context(), req.UserID, req.Amount, req.ExternalTxID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// GetLimits godoc
//
//	@Summary		Wallet withdrawal limits
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	dto.LimitDTO
//	@Router			/api/admin/limits [get]
func (h *AdminHandler) GetLimits(w http.ResponseWriter, r *http.Request) {
	limits, err := h.limitService.Limits(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromLimits(limits))
}

// UpsertLimit godoc
//
//	@Summary		Set wallet withdrawal limits
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			type	path		string				true	"Wallet type"
//	@Param			request	body		dto.LimitRequestDTO	true	"Limit payload"
//	@Success		200		{object}	dto.LimitDTO
//	@Failure		400		{object}	utils.Response	"Invalid limit"
//	@Router			/api/admin/limits/{type} [put]
func (h *AdminHandler) UpsertLimit(w http.ResponseWriter, r *http.Request) {
	wt, err := domain.ParseWalletType(chi.URLParam(r, "type"))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	var req dto.LimitRequestDTO
	if !decode(w, r, &req) {
		return
	}
	limit, err := req.ToDomain(wt)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	saved, err := h.limitService.UpsertLimit(r.Context(), limit)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromLimit(saved))
}

// GetPackages godoc
//
//	@Summary		All packages, including inactive ones
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	dto.PackageDTO
//	@Router			/api/admin/packages [get]
func (h *AdminHandler) GetPackages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.packageService.ListAll(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromPackages(pkgs))
}

// CreatePackage godoc
//
//	@Summary		Create a package
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PackageRequestDTO	true	"Package payload"
//	@Success		201		{object}	dto.PackageDTO
//	@Failure		400		{object}	utils.Response	"Invalid package"
//	@Router			/api/admin/packages [post]
func (h *AdminHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req dto.PackageRequestDTO
	if !decode(w, r, &req) {
		return
	}
	p, err := req.ToDomain()
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	created, err := h.packageService.Create(r.Context(), p)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromPackage(created))
}

// UpdatePackage godoc
//
//	@Summary		Replace a package definition
//	@Description	Existing purchases keep the terms they were bought with except the daily return, which is read from the package
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Package id"
//	@Param			request	body		dto.PackageRequestDTO	true	"Package payload"
//	@Success		200		{object}	dto.PackageDTO
//	@Failure		400		{object}	utils.Response	"Invalid package"
//	@Failure		404		{object}	utils.Response	"Package not found"
//	@Router			/api/admin/packages/{id} [put]
func (h *AdminHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.PackageRequestDTO
	if !decode(w, r, &req) {
		return
	}
	p, err := req.ToDomain()
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	p.ID = id
	updated, err := h.packageService.Update(r.Context(), p)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromPackage(updated))
}

// SetPackageActive godoc
//
//	@Summary		Put a package on or off sale
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Package id"
//	@Param			request	body		dto.ActiveRequestDTO	true	"Active flag"
//	@Success		200		{object}	dto.PackageDTO
//	@Failure		404		{object}	utils.Response	"Package not found"
//	@Router			/api/admin/packages/{id}/active [put]
func (h *AdminHandler) SetPackageActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.ActiveRequestDTO
	if !decode(w, r, &req) {
		return
	}
	updated, err := h.packageService.SetActive(r.Context(), id, req.Active)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromPackage(updated))
}

// GetSettings godoc
//
//	@Summary		System settings
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/api/admin/settings [get]
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.adminService.Settings(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, settings)
}

// UpdateSetting godoc
//
//	@Summary		Change one setting
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Param			key		path	string					true	"Setting key"
//	@Param			request	body	dto.SettingRequestDTO	true	"New value"
//	@Success		204
//	@Failure		400	{object}	utils.Response	"Invalid setting value"
//	@Router			/api/admin/settings/{key} [put]
func (h *AdminHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req dto.SettingRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if err := h.adminService.UpdateSetting(r.Context(), chi.URLParam(r, "key"), req.Value); err != nil {
		httperr.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpsertHoliday godoc
//
//	@Summary		Mark a holiday
//	@Description	Neither daily job credits on a holiday
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Param			date	path	string					true	"Day (YYYY-MM-DD)"
//	@Param			request	body	dto.HolidayRequestDTO	false	"Holiday title"
//	@Success		204
//	@Failure		400	{object}	utils.Response	"Invalid date"
//	@Router			/api/admin/holidays/{date} [put]
func (h *AdminHandler) UpsertHoliday(w http.ResponseWriter, r *http.Request) {
	date, err := time.ParseInLocation(time.DateOnly, chi.URLParam(r, "date"), h.loc)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date")
		return
	}
	var req dto.HolidayRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.adminService.UpsertHoliday(r.Context(), date, req.Title); err != nil {
		httperr.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RunPayout godoc
//
//	@Summary		Run the binary payout
//	@Description	Settles binary income for the given day (defaults to today) at the configured closing time. Safe to repeat.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			date	query		string	false	"Day to settle (YYYY-MM-DD)"
//	@Success		200		{object}	domain.RunReport
//	@Failure		400		{object}	utils.Response	"Invalid date"
//	@Failure		409		{object}	utils.Response	"Run in progress or rate not configured"
//	@Router			/api/admin/jobs/payout [post]
func (h *AdminHandler) RunPayout(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, h.adminService.RunPayout)
}

// RunAccrual godoc
//
//	@Summary		Run the package accrual
//	@Description	Credits daily returns for the given day (defaults to today) and matures finished packages. Safe to repeat.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			date	query		string	false	"Day to settle (YYYY-MM-DD)"
//	@Success		200		{object}	domain.RunReport
//	@Failure		400		{object}	utils.Response	"Invalid date"
//	@Failure		409		{object}	utils.Response	"Run in progress"
//	@Router			/api/admin/jobs/accrual [post]
func (h *AdminHandler) RunAccrual(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, h.adminService.RunAccrual)
}

func (h *AdminHandler) runJob(w http.ResponseWriter, r *http.Request, run func(context.Context, *time.Time) (*domain.RunReport, error)) {
	var date *time.Time
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := time.ParseInLocation(time.DateOnly, s, h.loc)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid date")
			return
		}
		date = &d
	}
	report, err := run(r.Context(), date)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, report)
}
