package tree

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/dto"
	"github.com/GlebRadaev/mlmledger/internal/handlers/httperr"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
	"github.com/GlebRadaev/mlmledger/pkg/utils"
)

//go:generate mockgen -source=tree.go -destination=mock_service.go -package=tree
type Service interface {
	Tree(ctx context.Context, rootID int64, depth int) (*domain.TreeNode, error)
	RecentDownline(ctx context.Context, userID int64, limit int) ([]domain.User, error)
}

type PayoutService interface {
	History(ctx context.Context, userID int64, limit, offset int) ([]domain.BinaryPayoutLog, error)
}

type TreeHandler struct {
	treeService   Service
	payoutService PayoutService
}

func New(treeService Service, payoutService PayoutService) *TreeHandler {
	return &TreeHandler{
		treeService:   treeService,
		payoutService: payoutService,
	}
}

func depth(r *http.Request) int {
	d, _ := strconv.Atoi(r.URL.Query().Get("depth"))
	return d
}

// GetTree godoc
//
//	@Summary		Own placement tree
//	@Description	Binary placement subtree rooted at the authenticated member
//	@Tags			Tree
//	@Security		BearerAuth
//	@Produce		json
//	@Param			depth	query		int	false	"Levels to expand (default 3, max 8)"
//	@Success		200		{object}	domain.TreeNode
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/tree [get]
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	h.respondTree(w, r, userID)
}

// GetMemberTree godoc
//
//	@Summary		Placement tree of any member
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id		path		int	true	"User id"
//	@Param			depth	query		int	false	"Levels to expand (default 3, max 8)"
//	@Success		200		{object}	domain.TreeNode
//	@Failure		400		{object}	utils.Response	"Invalid user id"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Router			/api/admin/users/{id}/tree [get]
func (h *TreeHandler) GetMemberTree(w http.ResponseWriter, r *http.Request) {
	id, ok := httperr.ID(chi.URLParam(r, "id"))
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	h.respondTree(w, r, id)
}

func (h *TreeHandler) respondTree(w http.ResponseWriter, r *http.Request, rootID int64) {
	node, err := h.treeService.Tree(r.Context(), rootID, depth(r))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, node)
}

// GetRecentDownline godoc
//
//	@Summary		Newest downline members
//	@Description	Most recently joined members anywhere below the authenticated member, newest first
//	@Tags			Tree
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int	false	"How many to return (default 20, max 100)"
//	@Success		200		{array}		dto.DownlineMemberDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/tree/recent [get]
func (h *TreeHandler) GetRecentDownline(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	users, err := h.treeService.RecentDownline(r.Context(), userID, limit)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromDownline(users))
}

// GetPayouts godoc
//
//	@Summary		Binary payout history
//	@Description	Daily binary settlements of the authenticated member, newest first
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			offset	query		int	false	"Page offset"
//	@Success		200		{array}		dto.PayoutLogDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payouts [get]
func (h *TreeHandler) GetPayouts(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	limit, offset := httperr.Page(r, 30)
	logs, err := h.payoutService.History(r.Context(), userID, limit, offset)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromPayoutLogs(logs))
}
