package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID                     int64           `db:"id"`
	MemberID               string          `db:"member_id"`
	Username               string          `db:"username"`
	Email                  string          `db:"email"`
	PasswordHash           string          `db:"password_hash"`
	Role                   Role            `db:"role"`
	ParentID               *int64          `db:"parent_id"`
	SponsorID              *int64          `db:"sponsor_id"`
	Position               Position        `db:"position"`
	LeftBV                 decimal.Decimal `db:"left_bv"`
	RightBV                decimal.Decimal `db:"right_bv"`
	Status                 UserStatus      `db:"status"`
	IsWithdrawalRestricted bool            `db:"is_withdrawal_restricted"`
	ActivePackageCount     int             `db:"active_package_count"`
	CreatedAt              time.Time       `db:"created_at"`
}

type Wallet struct {
	ID        int64           `db:"id"`
	UserID    int64           `db:"user_id"`
	Type      WalletType      `db:"type"`
	Balance   decimal.Decimal `db:"balance"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// Meta is free-form context stored as JSONB next to ledger rows and audit entries.
type Meta map[string]any

// MetaReserveTxNumber marks a credit that refunds the named WITHDRAW debit.
const MetaReserveTxNumber = "reserveTxNumber"

type WalletTransaction struct {
	ID           int64           `db:"id"`
	WalletID     int64           `db:"wallet_id"`
	UserID       int64           `db:"user_id"`
	Type         TxType          `db:"type"`
	Direction    Direction       `db:"direction"`
	Amount       decimal.Decimal `db:"amount"`
	BalanceAfter decimal.Decimal `db:"balance_after"`
	TxNumber     string          `db:"tx_number"`
	Purpose      string          `db:"purpose"`
	Meta         Meta            `db:"meta"`
	CreatedAt    time.Time       `db:"created_at"`
}

// Signed returns the amount with the sign implied by the direction.
func (t WalletTransaction) Signed() decimal.Decimal {
	if t.Direction == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

type LedgerResult struct {
	WalletID     int64           `json:"walletId"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	TxNumber     string          `json:"txNumber"`
}

type TransferResult struct {
	Debit  LedgerResult `json:"debit"`
	Credit LedgerResult `json:"credit"`
}

type Package struct {
	ID             int64           `db:"id"`
	Name           string          `db:"name"`
	InvestmentMin  decimal.Decimal `db:"investment_min"`
	InvestmentMax  decimal.Decimal `db:"investment_max"`
	DailyReturnPct decimal.Decimal `db:"daily_return_pct"`
	DurationDays   int             `db:"duration_days"`
	CapitalReturn  bool            `db:"capital_return"`
	IsActive       bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
}

// SplitConfig maps a source wallet to the percentage of a purchase it pays.
type SplitConfig map[WalletType]decimal.Decimal

type PackagePurchase struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	BuyerID     int64           `db:"buyer_id"`
	PackageID   int64           `db:"package_id"`
	Amount      decimal.Decimal `db:"amount"`
	StartDate   time.Time       `db:"start_date"`
	EndDate     time.Time       `db:"end_date"`
	Status      PurchaseStatus  `db:"status"`
	SplitConfig SplitConfig     `db:"split_config"`
	CreatedAt   time.Time       `db:"created_at"`

	// Filled by queries that join the package row.
	PackageName    string          `db:"package_name"`
	DailyReturnPct decimal.Decimal `db:"daily_return_pct"`
	CapitalReturn  bool            `db:"capital_return"`
}

type PackageIncomeLog struct {
	ID         int64           `db:"id"`
	PurchaseID int64           `db:"purchase_id"`
	CreditDate time.Time       `db:"credit_date"`
	Amount     decimal.Decimal `db:"amount"`
	CreatedAt  time.Time       `db:"created_at"`
}

type BinaryPayoutLog struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	Date        time.Time       `db:"date"`
	LeftBefore  decimal.Decimal `db:"left_before"`
	RightBefore decimal.Decimal `db:"right_before"`
	VolumePaid  decimal.Decimal `db:"volume_paid"`
	PayoutAmt   decimal.Decimal `db:"payout_amt"`
	CreatedAt   time.Time       `db:"created_at"`
}

type WithdrawalRequest struct {
	ID         int64           `db:"id"`
	UserID     int64           `db:"user_id"`
	WalletID   int64           `db:"wallet_id"`
	WalletType WalletType      `db:"wallet_type"`
	Amount     decimal.Decimal `db:"amount"`
	Method     string          `db:"method"`
	Address    string          `db:"address"`
	Status     RequestStatus   `db:"status"`
	AdminNote  string          `db:"admin_note"`
	// ReserveTxNumber is set when funds were taken at creation.
	ReserveTxNumber string    `db:"reserve_tx_number"`
	ProcessedBy     *int64    `db:"processed_by"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r WithdrawalRequest) Reserved() bool {
	return r.ReserveTxNumber != ""
}

type DepositRequest struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	WalletID    int64           `db:"wallet_id"`
	Amount      decimal.Decimal `db:"amount"`
	Method      string          `db:"method"`
	Reference   string          `db:"reference"`
	Status      RequestStatus   `db:"status"`
	AdminNote   string          `db:"admin_note"`
	ProcessedBy *int64          `db:"processed_by"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type RequestFilter struct {
	UserID *int64
	Status RequestStatus
	Limit  int
	Offset int
}

type WalletLimit struct {
	WalletType    WalletType      `db:"wallet_type"`
	MinWithdrawal decimal.Decimal `db:"min_withdrawal"`
	MaxPerTx      decimal.Decimal `db:"max_per_tx"`
	MaxTxCount24h int             `db:"max_tx_count_24h"`
	MaxAmount24h  decimal.Decimal `db:"max_amount_24h"`
	IsActive      bool            `db:"is_active"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

type Holiday struct {
	Date  time.Time `db:"date"`
	Title string    `db:"title"`
}

type AuditLog struct {
	ID        int64     `db:"id"`
	ActorID   *int64    `db:"actor_id"`
	ActorType ActorType `db:"actor_type"`
	Action    string    `db:"action"`
	Entity    string    `db:"entity"`
	EntityID  int64     `db:"entity_id"`
	Before    Meta      `db:"before"`
	After     Meta      `db:"after"`
	CreatedAt time.Time `db:"created_at"`
}

// Decision is the outcome of a pre-flight debit check.
type Decision struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// PayoutMethod is an external channel withdrawals are paid out through.
// Members may change a registered address AllowedChangeCount times.
type PayoutMethod struct {
	ID                 int64     `db:"id"`
	Name               string    `db:"name"`
	Currency           string    `db:"currency"`
	AllowedChangeCount int       `db:"allowed_change_count"`
	CreatedAt          time.Time `db:"created_at"`
}

// PayoutAddress is a member's address for one payout method. MethodName and
// Currency are read from the method.
type PayoutAddress struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	MethodID    int64     `db:"method_id"`
	MethodName  string    `db:"name"`
	Currency    string    `db:"currency"`
	Address     string    `db:"address"`
	ChangeCount int       `db:"change_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type TreeNode struct {
	ID       int64           `json:"id"`
	MemberID string          `json:"memberId"`
	Username string          `json:"username"`
	Position Position        `json:"position"`
	Status   UserStatus      `json:"status"`
	LeftBV   decimal.Decimal `json:"leftBv"`
	RightBV  decimal.Decimal `json:"rightBv"`
	Left     *TreeNode       `json:"left,omitempty"`
	Right    *TreeNode       `json:"right,omitempty"`
}

// GainRow aggregates credited income of one type over a period.
type GainRow struct {
	Type  TxType          `db:"type"`
	Total decimal.Decimal `db:"total"`
	Count int             `db:"count"`
}

type Reconciliation struct {
	WalletID   int64           `json:"walletId"`
	WalletType WalletType      `json:"walletType"`
	Balance    decimal.Decimal `json:"balance"`
	LedgerSum  decimal.Decimal `json:"ledgerSum"`
	Consistent bool            `json:"consistent"`
}

// RunReport summarises one pass of a daily batch job.
type RunReport struct {
	Job            string          `json:"job"`
	CreditDate     time.Time       `json:"creditDate"`
	Skipped        bool            `json:"skipped"`
	SkipReason     string          `json:"skipReason,omitempty"`
	Eligible       int             `json:"eligible"`
	Credited       int             `json:"credited"`
	AlreadySettled int             `json:"alreadySettled"`
	Zero           int             `json:"zero"`
	Failed         int             `json:"failed"`
	Matured        int             `json:"matured,omitempty"`
	Total          decimal.Decimal `json:"total"`
}
