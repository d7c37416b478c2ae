package domain

import (
	"errors"
)

var (
	ErrInvalidAmount            = errors.New("amount must be a positive decimal")
	ErrInvalidWalletType        = errors.New("unknown wallet type")
	ErrInvalidTxType            = errors.New("unknown transaction type")
	ErrWalletNotFound           = errors.New("wallet not found")
	ErrUserNotFound             = errors.New("user not found")
	ErrPackageNotFound          = errors.New("package not found")
	ErrRequestNotFound          = errors.New("request not found")
	ErrInsufficientBalance      = errors.New("insufficient wallet balance")
	ErrLimitExceeded            = errors.New("wallet limit exceeded")
	ErrRecipientNotInDownline   = errors.New("recipient is not in sender's downline")
	ErrSelfTransfer             = errors.New("cannot transfer to yourself")
	ErrSameWallet               = errors.New("source and destination wallets must differ")
	ErrInternalTransferDisabled = errors.New("internal transfers are disabled")
	ErrWithdrawalRestricted     = errors.New("withdrawals are restricted for this account")
	ErrUserSuspended            = errors.New("account is suspended")
	ErrUserInactive             = errors.New("account is not active")
	ErrAlreadyProcessed         = errors.New("request already processed")
	ErrInvalidSplit             = errors.New("invalid split configuration")
	ErrInvalidLimit             = errors.New("invalid wallet limit")
	ErrInvalidPackage           = errors.New("invalid package")
	ErrPackageInactive          = errors.New("package is not active")
	ErrAmountOutOfRange         = errors.New("amount is outside package investment range")
	ErrRateNotConfigured        = errors.New("binary income rate is not configured")
	ErrInvalidSetting           = errors.New("invalid setting value")
	ErrDuplicateTxNumber        = errors.New("duplicate transaction number")
	ErrDuplicateMemberID        = errors.New("duplicate member id")
	ErrDuplicateDeposit         = errors.New("deposit already credited")
	ErrTreeCycle                = errors.New("placement tree contains a cycle")
	ErrTreeTooDeep              = errors.New("placement tree exceeds maximum depth")
	ErrPositionTaken            = errors.New("placement position is already taken")
	ErrUserExists               = errors.New("username or email already registered")
	ErrInvalidCredentials       = errors.New("invalid login or password")
	ErrInvalidRegistration      = errors.New("username, email and password are required")
	ErrInvalidPassword          = errors.New("password must be between 1 and 72 bytes")
)

// LimitError carries the human-readable rule that blocked a debit.
type LimitError struct {
	Reason string
}

func (e *LimitError) Error() string {
	return "cannot debit wallet: " + e.Reason
}

func (e *LimitError) Is(target error) bool {
	return target == ErrLimitExceeded
}

// Reason returns the text a caller should show for a failed debit check.
func Reason(err error) string {
	var le *LimitError
	if errors.As(err, &le) {
		return le.Reason
	}
	return err.Error()
}

var (
	ErrRunInProgress     = errors.New("job is already running")
	ErrMissingExternalTx = errors.New("external transaction id is required")
)

var (
	ErrPayoutMethodNotFound  = errors.New("payout method not found")
	ErrPayoutMethodExists    = errors.New("payout method already exists")
	ErrInvalidPayoutMethod   = errors.New("invalid payout method")
	ErrPayoutAddressNotFound = errors.New("payout address not found")
	ErrInvalidPayoutAddress  = errors.New("payout address must be 1 to 255 characters")
	ErrAddressChangeLimit    = errors.New("payout address change limit reached")
)
