package packages

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/dto"
	"github.com/GlebRadaev/mlmledger/internal/handlers/httperr"
	"github.com/GlebRadaev/mlmledger/internal/service/packageservice"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
	"github.com/GlebRadaev/mlmledger/pkg/utils"
)

//go:generate mockgen -source=packages.go -destination=mock_service.go -package=packages
type Service interface {
	ListActive(ctx context.Context) ([]domain.Package, error)
	Purchase(ctx context.Context, p packageservice.PurchaseParams) (*domain.PackagePurchase, error)
	Purchases(ctx context.Context, userID int64) ([]domain.PackagePurchase, error)
}

type PackageHandler struct {
	packageService Service
}

func New(packageService Service) *PackageHandler {
	return &PackageHandler{
		packageService: packageService,
	}
}

// GetPackages godoc
//
//	@Summary		Package catalogue
//	@Description	Investment packages currently on sale
//	@Tags			Packages
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.PackageDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/packages [get]
func (h *PackageHandler) GetPackages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.packageService.ListActive(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromPackages(pkgs))
}

// Purchase godoc
//
//	@Summary		Buy a package
//	@Description	Buys a package for yourself or a downline member, paying from one or more wallets per the split (defaults to F_WALLET 100%)
//	@Tags			Packages
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PurchaseRequestDTO	true	"Purchase payload"
//	@Success		201		{object}	dto.PurchaseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount or split"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		403		{object}	utils.Response	"Beneficiary outside downline"
//	@Failure		404		{object}	utils.Response	"Package not found"
//	@Failure		409		{object}	utils.Response	"Package inactive"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/packages/purchase [post]
func (h *PackageHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req dto.PurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	split, err := req.SplitConfig()
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	purchase, err := h.packageService.Purchase(r.Context(), packageservice.PurchaseParams{
		BuyerID:             userID,
		PackageID:           req.PackageID,
		Amount:              req.Amount,
		BeneficiaryMemberID: req.BeneficiaryMemberID,
		Split:               split,
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromPurchase(purchase))
}

// GetPurchases godoc
//
//	@Summary		Purchased packages
//	@Tags			Packages
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.PurchaseDTO
//	@Success		204	{object}	utils.Response	"No purchases"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/packages/purchases [get]
func (h *PackageHandler) GetPurchases(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	purchases, err := h.packageService.Purchases(r.Context(), userID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	if len(purchases) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Purchases not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromPurchases(purchases))
}
