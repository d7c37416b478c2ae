package ledgerservice

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

type WalletRepo interface {
	FindByUserAndType(ctx context.Context, userID int64, walletType domain.WalletType) (*domain.Wallet, error)
	FindByUserAndTypeForUpdate(ctx context.Context, userID int64, walletType domain.WalletType) (*domain.Wallet, error)
	LockByIDs(ctx context.Context, ids []int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Wallet, error)
	UpdateBalance(ctx context.Context, walletID int64, balance decimal.Decimal) error
	InsertTransaction(ctx context.Context, t *domain.WalletTransaction) (bool, error)
	ListTransactions(ctx context.Context, walletID int64, limit, offset int) ([]domain.WalletTransaction, error)
	ListCredits(ctx context.Context, userID int64, txType domain.TxType, limit, offset int) ([]domain.WalletTransaction, error)
	SumCredits(ctx context.Context, userID int64, txType domain.TxType) (decimal.Decimal, error)
	SumSigned(ctx context.Context, walletID int64) (decimal.Decimal, error)
	GainBreakdown(ctx context.Context, userID int64, from, to *time.Time) ([]domain.GainRow, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByMemberID(ctx context.Context, memberID string) (*domain.User, error)
}

type AuditRepo interface {
	Insert(ctx context.Context, l *domain.AuditLog) error
}

type LimitChecker interface {
	CheckLimits(ctx context.Context, wallet *domain.Wallet, amount decimal.Decimal) error
}

type DownlineChecker interface {
	IsInDownline(ctx context.Context, ancestorID, candidateID int64, maxDepth int) (bool, error)
}

type SettingsLoader interface {
	Load(ctx context.Context) (*domain.Settings, error)
}

type CreditParams struct {
	UserID     int64
	WalletType domain.WalletType
	Amount     string
	TxType     domain.TxType
	Purpose    string
	Meta       domain.Meta
}

type DebitParams struct {
	UserID     int64
	WalletType domain.WalletType
	Amount     string
	TxType     domain.TxType
	Purpose    string
	Meta       domain.Meta
	// AllowNegative lets an admin adjustment overdraw the wallet.
	AllowNegative bool
	// SkipLimits is set when the withdrawal limits were already applied
	// to the request this debit settles.
	SkipLimits bool
}

type TransferParams struct {
	FromUserID     int64
	FromWalletType domain.WalletType
	ToMemberID     string
	Amount         string
}

type IncomeDetails struct {
	Type         domain.TxType              `json:"type"`
	Total        decimal.Decimal            `json:"total"`
	Transactions []domain.WalletTransaction `json:"transactions"`
}

type Service struct {
	wallets   WalletRepo
	users     UserRepo
	audit     AuditRepo
	limits    LimitChecker
	downline  DownlineChecker
	settings  SettingsLoader
	txManager pg.TXManager
	maxDepth  int
	txNumber  func() string
}

func New(
	wallets WalletRepo,
	users UserRepo,
	audit AuditRepo,
	limits LimitChecker,
	downline DownlineChecker,
	settings SettingsLoader,
	txManager pg.TXManager,
	maxDepth int,
) *Service {
	return &Service{
		wallets:   wallets,
		users:     users,
		audit:     audit,
		limits:    limits,
		downline:  downline,
		settings:  settings,
		txManager: txManager,
		maxDepth:  maxDepth,
		txNumber:  NewTxNumber,
	}
}

// NewTxNumber returns TX-<base36 unix millis>-<8 random hex chars>.
func NewTxNumber() string {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return "TX-" + strings.ToUpper(millis) + "-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s *Service) Credit(ctx context.Context, p CreditParams) (*domain.LedgerResult, error) {
	amount, err := validate(p.WalletType, p.TxType, p.Amount)
	if err != nil {
		return nil, err
	}

	var res *domain.LedgerResult
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		wallet, err := s.lockWallet(ctx, p.UserID, p.WalletType)
		if err != nil {
			return err
		}
		res, err = s.post(ctx, wallet, domain.Credit, amount, p.TxType, p.Purpose, p.Meta)
		return err
	})
	if err != nil {
		zap.L().Error("failed to credit wallet",
			zap.Int64("userID", p.UserID), zap.String("wallet", string(p.WalletType)),
			zap.String("amount", p.Amount), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (s *Service) Debit(ctx context.Context, p DebitParams) (*domain.LedgerResult, error) {
	amount, err := validate(p.WalletType, p.TxType, p.Amount)
	if err != nil {
		return nil, err
	}

	var res *domain.LedgerResult
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		wallet, err := s.lockWallet(ctx, p.UserID, p.WalletType)
		if err != nil {
			return err
		}
		if err := s.checkDebit(ctx, wallet, amount, p); err != nil {
			return err
		}
		res, err = s.post(ctx, wallet, domain.Debit, amount, p.TxType, p.Purpose, p.Meta)
		return err
	})
	if err != nil {
		zap.L().Error("failed to debit wallet",
			zap.Int64("userID", p.UserID), zap.String("wallet", string(p.WalletType)),
			zap.String("amount", p.Amount), zap.Error(err))
		return nil, err
	}
	return res, nil
}

// checkDebit runs against the locked wallet row, so the balance it sees
// cannot change before the debit is written.
func (s *Service) checkDebit(ctx context.Context, wallet *domain.Wallet, amount decimal.Decimal, p DebitParams) error {
	if !p.AllowNegative && wallet.Balance.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}
	if p.TxType == domain.TxWithdraw && !p.SkipLimits {
		return s.limits.CheckLimits(ctx, wallet, amount)
	}
	return nil
}

func validate(walletType domain.WalletType, txType domain.TxType, amount string) (decimal.Decimal, error) {
	if !walletType.Valid() {
		return decimal.Zero, domain.ErrInvalidWalletType
	}
	if !txType.Valid() {
		return decimal.Zero, domain.ErrInvalidTxType
	}
	return domain.ParseAmount(amount)
}

func (s *Service) lockWallet(ctx context.Context, userID int64, walletType domain.WalletType) (*domain.Wallet, error) {
	wallet, err := s.wallets.FindByUserAndTypeForUpdate(ctx, userID, walletType)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, domain.ErrWalletNotFound
	}
	return wallet, nil
}

// post writes one ledger row and the new balance of a locked wallet.
func (s *Service) post(
	ctx context.Context,
	wallet *domain.Wallet,
	dir domain.Direction,
	amount decimal.Decimal,
	txType domain.TxType,
	purpose string,
	meta domain.Meta,
) (*domain.LedgerResult, error) {
	before := wallet.Balance
	after := before.Add(amount)
	if dir == domain.Debit {
		after = before.Sub(amount)
	}

	t := &domain.WalletTransaction{
		WalletID:     wallet.ID,
		UserID:       wallet.UserID,
		Type:         txType,
		Direction:    dir,
		Amount:       amount,
		BalanceAfter: after,
		Purpose:      purpose,
		Meta:         meta,
	}
	if err := s.insert(ctx, t); err != nil {
		return nil, err
	}
	if err := s.wallets.UpdateBalance(ctx, wallet.ID, after); err != nil {
		return nil, err
	}
	wallet.Balance = after

	entry := domain.NewAuditLog(ctx, "WALLET_"+string(dir), "wallet", wallet.ID,
		domain.Meta{"balance": before.String()},
		domain.Meta{"balance": after.String(), "txNumber": t.TxNumber, "type": txType, "amount": amount.String()},
	)
	if err := s.audit.Insert(ctx, entry); err != nil {
		return nil, err
	}
	return &domain.LedgerResult{WalletID: wallet.ID, BalanceAfter: after, TxNumber: t.TxNumber}, nil
}

// insert draws a tx number and retries once on collision.
func (s *Service) insert(ctx context.Context, t *domain.WalletTransaction) error {
	for attempt := 0; attempt < 2; attempt++ {
		t.TxNumber = s.txNumber()
		inserted, err := s.wallets.InsertTransaction(ctx, t)
		if err != nil {
			return err
		}
		if inserted {
			return nil
		}
		zap.L().Warn("tx number collision", zap.String("txNumber", t.TxNumber), zap.Int("attempt", attempt+1))
	}
	return domain.ErrDuplicateTxNumber
}

// Transfer moves funds to another member's wallet of the same type.
func (s *Service) Transfer(ctx context.Context, p TransferParams) (*domain.TransferResult, error) {
	amount, err := validate(p.FromWalletType, domain.TxTransferOut, p.Amount)
	if err != nil {
		return nil, err
	}
	sender, err := s.activeUser(ctx, p.FromUserID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.users.FindByMemberID(ctx, p.ToMemberID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, domain.ErrUserNotFound
	}
	if recipient.ID == sender.ID {
		return nil, domain.ErrSelfTransfer
	}
	if recipient.Status != domain.UserActive {
		return nil, domain.ErrUserInactive
	}

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	if settings.TransferMode == domain.TransferDownlineOnly {
		ok, err := s.downline.IsInDownline(ctx, sender.ID, recipient.ID, s.maxDepth)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrRecipientNotInDownline
		}
	}

	res, err := s.move(ctx, amount,
		leg{userID: sender.ID, walletType: p.FromWalletType, purpose: "Transfer to " + recipient.MemberID},
		leg{userID: recipient.ID, walletType: p.FromWalletType, purpose: "Transfer from " + sender.MemberID},
		domain.Meta{"fromMemberId": sender.MemberID, "toMemberId": recipient.MemberID},
	)
	if err != nil {
		zap.L().Error("failed to transfer funds",
			zap.Int64("from", sender.ID), zap.Int64("to", recipient.ID), zap.String("amount", p.Amount), zap.Error(err))
		return nil, err
	}
	return res, nil
}

// TransferInternal moves funds between two wallets of the same member.
func (s *Service) TransferInternal(ctx context.Context, userID int64, from, to domain.WalletType, amount string) (*domain.TransferResult, error) {
	value, err := validate(from, domain.TxTransferOut, amount)
	if err != nil {
		return nil, err
	}
	if !to.Valid() {
		return nil, domain.ErrInvalidWalletType
	}
	if from == to {
		return nil, domain.ErrSameWallet
	}
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.InternalTransferEnabled {
		return nil, domain.ErrInternalTransferDisabled
	}
	if _, err := s.activeUser(ctx, userID); err != nil {
		return nil, err
	}

	res, err := s.move(ctx, value,
		leg{userID: userID, walletType: from, purpose: "Internal transfer to " + string(to)},
		leg{userID: userID, walletType: to, purpose: "Internal transfer from " + string(from)},
		domain.Meta{"internal": true, "from": from, "to": to},
	)
	if err != nil {
		zap.L().Error("failed to transfer between wallets",
			zap.Int64("userID", userID), zap.String("from", string(from)), zap.String("to", string(to)), zap.Error(err))
		return nil, err
	}
	return res, nil
}

type leg struct {
	userID     int64
	walletType domain.WalletType
	purpose    string
}

// move debits src and credits dst in one transaction. Both wallet rows are
// locked in id order so opposite transfers cannot deadlock.
func (s *Service) move(ctx context.Context, amount decimal.Decimal, src, dst leg, meta domain.Meta) (*domain.TransferResult, error) {
	var res domain.TransferResult
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		from, err := s.wallets.FindByUserAndType(ctx, src.userID, src.walletType)
		if err != nil {
			return err
		}
		to, err := s.wallets.FindByUserAndType(ctx, dst.userID, dst.walletType)
		if err != nil {
			return err
		}
		if from == nil || to == nil {
			return domain.ErrWalletNotFound
		}
		ids := []int64{from.ID, to.ID}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		if err := s.wallets.LockByIDs(ctx, ids); err != nil {
			return err
		}

		if from, err = s.lockWallet(ctx, src.userID, src.walletType); err != nil {
			return err
		}
		if to, err = s.lockWallet(ctx, dst.userID, dst.walletType); err != nil {
			return err
		}
		if from.Balance.LessThan(amount) {
			return domain.ErrInsufficientBalance
		}

		debit, err := s.post(ctx, from, domain.Debit, amount, domain.TxTransferOut, src.purpose, meta)
		if err != nil {
			return err
		}
		credit, err := s.post(ctx, to, domain.Credit, amount, domain.TxTransferIn, dst.purpose, meta)
		if err != nil {
			return err
		}
		res = domain.TransferResult{Debit: *debit, Credit: *credit}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *Service) activeUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	switch user.Status {
	case domain.UserSuspended:
		return nil, domain.ErrUserSuspended
	case domain.UserInactive:
		return nil, domain.ErrUserInactive
	}
	return user, nil
}

func (s *Service) Wallets(ctx context.Context, userID int64) ([]domain.Wallet, error) {
	wallets, err := s.wallets.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list wallets", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	return wallets, nil
}

func (s *Service) Transactions(ctx context.Context, userID int64, walletType domain.WalletType, limit, offset int) ([]domain.WalletTransaction, error) {
	if !walletType.Valid() {
		return nil, domain.ErrInvalidWalletType
	}
	wallet, err := s.wallets.FindByUserAndType(ctx, userID, walletType)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, domain.ErrWalletNotFound
	}
	txs, err := s.wallets.ListTransactions(ctx, wallet.ID, limit, offset)
	if err != nil {
		zap.L().Error("failed to list transactions", zap.Int64("walletID", wallet.ID), zap.Error(err))
		return nil, err
	}
	return txs, nil
}

// IncomeDetails returns the total credited for one income type together
// with a page of the underlying rows.
func (s *Service) IncomeDetails(ctx context.Context, userID int64, txType domain.TxType, limit, offset int) (*IncomeDetails, error) {
	if !txType.Valid() {
		return nil, domain.ErrInvalidTxType
	}
	total, err := s.wallets.SumCredits(ctx, userID, txType)
	if err != nil {
		return nil, err
	}
	rows, err := s.wallets.ListCredits(ctx, userID, txType, limit, offset)
	if err != nil {
		return nil, err
	}
	return &IncomeDetails{Type: txType, Total: total, Transactions: rows}, nil
}

// GainReport groups credits other than deposits by type within [from, to).
func (s *Service) GainReport(ctx context.Context, userID int64, from, to *time.Time) ([]domain.GainRow, error) {
	rows, err := s.wallets.GainBreakdown(ctx, userID, from, to)
	if err != nil {
		zap.L().Error("failed to build gain report", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// Reconcile compares a wallet's stored balance with the sum of its ledger.
func (s *Service) Reconcile(ctx context.Context, userID int64, walletType domain.WalletType) (*domain.Reconciliation, error) {
	wallet, err := s.wallets.FindByUserAndType(ctx, userID, walletType)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, domain.ErrWalletNotFound
	}
	sum, err := s.wallets.SumSigned(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}
	rec := &domain.Reconciliation{
		WalletID:   wallet.ID,
		WalletType: wallet.Type,
		Balance:    wallet.Balance,
		LedgerSum:  sum,
		Consistent: wallet.Balance.Equal(sum),
	}
	if !rec.Consistent {
		zap.L().Warn("wallet balance drifted from ledger",
			zap.Int64("walletID", wallet.ID), zap.String("balance", wallet.Balance.String()), zap.String("ledger", sum.String()))
	}
	return rec, nil
}
