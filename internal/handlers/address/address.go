package address

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/dto"
	"github.com/GlebRadaev/mlmledger/internal/handlers/httperr"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
	"github.com/GlebRadaev/mlmledger/pkg/utils"
)

//go:generate mockgen -source=address.go -destination=mock_service.go -package=address
type Service interface {
	Methods(ctx context.Context) ([]domain.PayoutMethod, error)
	CreateMethod(ctx context.Context, m domain.PayoutMethod) (*domain.PayoutMethod, error)
	UpdateMethod(ctx context.Context, m domain.PayoutMethod) (*domain.PayoutMethod, error)
	DeleteMethod(ctx context.Context, id int64) error
	Addresses(ctx context.Context, userID int64) ([]domain.PayoutAddress, error)
	AddAddress(ctx context.Context, userID, methodID int64, address string) (*domain.PayoutAddress, error)
	ChangeAddress(ctx context.Context, userID, id int64, address string) (*domain.PayoutAddress, error)
	RemoveAddress(ctx context.Context, userID, id int64) error
	OverrideAddress(ctx context.Context, id int64, address string) (*domain.PayoutAddress, error)
}

type AddressHandler struct {
	addressService Service
}

func New(addressService Service) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
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

// GetMethods godoc
//
//	@Summary		Supported payout methods
//	@Description	Wallet types members can register payout addresses for
//	@Tags			Payout addresses
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.PayoutMethodDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payout-methods [get]
//	@Router			/api/admin/payout-methods [get]
func (h *AddressHandler) GetMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.addressService.Methods(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromPayoutMethods(methods))
}

// CreateMethod godoc
//
//	@Summary		Add a payout method
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PayoutMethodRequestDTO	true	"Method payload"
//	@Success		201		{object}	dto.PayoutMethodDTO
//	@Failure		400		{object}	utils.Response	"Invalid method"
//	@Failure		409		{object}	utils.Response	"Method name taken"
//	@Router			/api/admin/payout-methods [post]
func (h *AddressHandler) CreateMethod(w http.ResponseWriter, r *http.Request) {
	var req dto.PayoutMethodRequestDTO
	if !decode(w, r, &req) {
		return
	}
	created, err := h.addressService.CreateMethod(r.Context(), req.ToDomain(0))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromPayoutMethod(created))
}

// UpdateMethod godoc
//
//	@Summary		Edit a payout method
//	@Description	Raising allowedChangeCount gives every address of the method more changes
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Method id"
//	@Param			request	body		dto.PayoutMethodRequestDTO	true	"Method payload"
//	@Success		200		{object}	dto.PayoutMethodDTO
//	@Failure		400		{object}	utils.Response	"Invalid method"
//	@Failure		404		{object}	utils.Response	"Method not found"
//	@Failure		409		{object}	utils.Response	"Method name taken"
//	@Router			/api/admin/payout-methods/{id} [put]
func (h *AddressHandler) UpdateMethod(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.PayoutMethodRequestDTO
	if !decode(w, r, &req) {
		return
	}
	updated, err := h.addressService.UpdateMethod(r.Context(), req.ToDomain(id))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromPayoutMethod(updated))
}

// DeleteMethod godoc
//
//	@Summary		Remove a payout method
//	@Description	Every address registered for the method is removed too
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Method id"
//	@Success		200	{object}	utils.Response
//	@Failure		404	{object}	utils.Response	"Method not found"
//	@Router			/api/admin/payout-methods/{id} [delete]
func (h *AddressHandler) DeleteMethod(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.addressService.DeleteMethod(r.Context(), id); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Payout method deleted"})
}

// GetAddresses godoc
//
//	@Summary		Own payout addresses
//	@Tags			Payout addresses
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.PayoutAddressDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Router			/api/user/payout-addresses [get]
func (h *AddressHandler) GetAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	list, err := h.addressService.Addresses(r.Context(), userID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromPayoutAddresses(list))
}

// AddAddress godoc
//
//	@Summary		Register a payout address
//	@Tags			Payout addresses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PayoutAddressRequestDTO	true	"Address payload"
//	@Success		201		{object}	dto.PayoutAddressDTO
//	@Failure		400		{object}	utils.Response	"Invalid address"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Method not found"
//	@Router			/api/user/payout-addresses [post]
func (h *AddressHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req dto.PayoutAddressRequestDTO
	if !decode(w, r, &req) {
		return
	}
	created, err := h.addressService.AddAddress(r.Context(), userID, req.MethodID, req.Address)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromPayoutAddress(created))
}

// ChangeAddress godoc
//
//	@Summary		Change a payout address
//	@Description	Each change spends one of the method's allowed changes
//	@Tags			Payout addresses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Address id"
//	@Param			request	body		dto.PayoutAddressRequestDTO	true	"New address (methodId is ignored)"
//	@Success		200		{object}	dto.PayoutAddressDTO
//	@Failure		400		{object}	utils.Response	"Invalid address"
//	@Failure		404		{object}	utils.Response	"Address not found"
//	@Failure		409		{object}	utils.Response	"No changes left"
//	@Router			/api/user/payout-addresses/{id} [put]
func (h *AddressHandler) ChangeAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.PayoutAddressRequestDTO
	if !decode(w, r, &req) {
		return
	}
	changed, err := h.addressService.ChangeAddress(r.Context(), userID, id, req.Address)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromPayoutAddress(changed))
}

// RemoveAddress godoc
//
//	@Summary		Remove a payout address
//	@Tags			Payout addresses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Address id"
//	@Success		200	{object}	utils.Response
//	@Failure		404	{object}	utils.Response	"Address not found"
//	@Router			/api/user/payout-addresses/{id} [delete]
func (h *AddressHandler) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.addressService.RemoveAddress(r.Context(), userID, id); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Payout address removed"})
}

// OverrideAddress godoc
//
//	@Summary		Correct a member's payout address
//	@Description	Does not spend the member's allowed changes
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Address id"
//	@Param			request	body		dto.PayoutAddressRequestDTO	true	"New address (methodId is ignored)"
//	@Success		200		{object}	dto.PayoutAddressDTO
//	@Failure		400		{object}	utils.Response	"Invalid address"
//	@Failure		404		{object}	utils.Response	"Address not found"
//	@Router			/api/admin/payout-addresses/{id} [put]
func (h *AddressHandler) OverrideAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.PayoutAddressRequestDTO
	if !decode(w, r, &req) {
		return
	}
	updated, err := h.addressService.OverrideAddress(r.Context(), id, req.Address)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromPayoutAddress(updated))
}
