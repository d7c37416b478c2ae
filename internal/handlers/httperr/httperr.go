package httperr

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/pkg/utils"
)

type rule struct {
	target error
	code   int
}

var rules = []rule{
	{domain.ErrInvalidAmount, http.StatusBadRequest},
	{domain.ErrInvalidWalletType, http.StatusBadRequest},
	{domain.ErrInvalidTxType, http.StatusBadRequest},
	{domain.ErrSelfTransfer, http.StatusBadRequest},
	{domain.ErrSameWallet, http.StatusBadRequest},
	{domain.ErrInvalidSplit, http.StatusBadRequest},
	{domain.ErrInvalidLimit, http.StatusBadRequest},
	{domain.ErrInvalidPackage, http.StatusBadRequest},
	{domain.ErrAmountOutOfRange, http.StatusBadRequest},
	{domain.ErrInvalidSetting, http.StatusBadRequest},
	{domain.ErrInvalidRegistration, http.StatusBadRequest},
	{domain.ErrInvalidPassword, http.StatusBadRequest},
	{domain.ErrMissingExternalTx, http.StatusBadRequest},
	{domain.ErrInvalidPayoutMethod, http.StatusBadRequest},
	{domain.ErrInvalidPayoutAddress, http.StatusBadRequest},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrInsufficientBalance, http.StatusPaymentRequired},
	{domain.ErrLimitExceeded, http.StatusForbidden},
	{domain.ErrRecipientNotInDownline, http.StatusForbidden},
	{domain.ErrInternalTransferDisabled, http.StatusForbidden},
	{domain.ErrWithdrawalRestricted, http.StatusForbidden},
	{domain.ErrUserSuspended, http.StatusForbidden},
	{domain.ErrUserInactive, http.StatusForbidden},
	{domain.ErrWalletNotFound, http.StatusNotFound},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrPackageNotFound, http.StatusNotFound},
	{domain.ErrRequestNotFound, http.StatusNotFound},
	{domain.ErrPayoutMethodNotFound, http.StatusNotFound},
	{domain.ErrPayoutAddressNotFound, http.StatusNotFound},
	{domain.ErrAlreadyProcessed, http.StatusConflict},
	{domain.ErrDuplicateDeposit, http.StatusConflict},
	{domain.ErrDuplicateTxNumber, http.StatusConflict},
	{domain.ErrDuplicateMemberID, http.StatusConflict},
	{domain.ErrUserExists, http.StatusConflict},
	{domain.ErrPositionTaken, http.StatusConflict},
	{domain.ErrPayoutMethodExists, http.StatusConflict},
	{domain.ErrAddressChangeLimit, http.StatusConflict},
	{domain.ErrPackageInactive, http.StatusConflict},
	{domain.ErrRunInProgress, http.StatusConflict},
	{domain.ErrRateNotConfigured, http.StatusConflict},
	{domain.ErrTreeCycle, http.StatusConflict},
	{domain.ErrTreeTooDeep, http.StatusConflict},
}

// Status maps a service error to an HTTP status code.
func Status(err error) int {
	for _, r := range rules {
		if errors.Is(err, r.target) {
			return r.code
		}
	}
	return http.StatusInternalServerError
}

// Respond writes err using the status from Status. Unknown errors are
// logged and hidden behind a generic message.
func Respond(w http.ResponseWriter, err error) {
	code := Status(err)
	if code == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
		utils.RespondWithError(w, code, "Internal server error")
		return
	}
	utils.RespondWithError(w, code, domain.Reason(err))
}

// ID parses a positive numeric path or query parameter.
func ID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Page reads limit and offset query parameters, falling back to defaults.
func Page(r *http.Request, defLimit int) (limit, offset int) {
	limit = defLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
