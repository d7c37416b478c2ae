package requestservice

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
	"github.com/GlebRadaev/mlmledger/internal/service/ledgerservice"
)

type RequestRepo interface {
	CreateWithdrawal(ctx context.Context, w *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error)
	FindWithdrawal(ctx context.Context, id int64) (*domain.WithdrawalRequest, error)
	FinishWithdrawal(ctx context.Context, id int64, status domain.RequestStatus, adminID int64, note string) (bool, error)
	ListWithdrawals(ctx context.Context, f domain.RequestFilter) ([]domain.WithdrawalRequest, error)
	CreateDeposit(ctx context.Context, d *domain.DepositRequest) (*domain.DepositRequest, error)
	FindDeposit(ctx context.Context, id int64) (*domain.DepositRequest, error)
	FinishDeposit(ctx context.Context, id int64, status domain.RequestStatus, adminID int64, note string) (bool, error)
	ListDeposits(ctx context.Context, f domain.RequestFilter) ([]domain.DepositRequest, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

type WalletRepo interface {
	FindByUserAndType(ctx context.Context, userID int64, walletType domain.WalletType) (*domain.Wallet, error)
}

// AddressBook resolves a member's registered payout address.
type AddressBook interface {
	Address(ctx context.Context, userID, id int64) (*domain.PayoutAddress, error)
}

type AuditRepo interface {
	Insert(ctx context.Context, l *domain.AuditLog) error
}

type Ledger interface {
	Credit(ctx context.Context, p ledgerservice.CreditParams) (*domain.LedgerResult, error)
	Debit(ctx context.Context, p ledgerservice.DebitParams) (*domain.LedgerResult, error)
}

type DebitChecker interface {
	CanDebit(ctx context.Context, userID int64, walletType domain.WalletType, amount string) (*domain.Decision, error)
}

type SettingsLoader interface {
	Load(ctx context.Context) (*domain.Settings, error)
}

type WithdrawParams struct {
	UserID          int64
	WalletType      domain.WalletType
	Amount          string
	Method          string
	// PayoutAddressID picks the destination from the member's registered
	// addresses. Its method replaces Method.
	PayoutAddressID int64
}

type DepositParams struct {
	UserID    int64
	Amount    string
	Method    string
	Reference string
}

// DepositWallet receives every external deposit.
const DepositWallet = domain.FWallet

type Service struct {
	requests  RequestRepo
	users     UserRepo
	wallets   WalletRepo
	addresses AddressBook
	audit     AuditRepo
	ledger    Ledger
	checker   DebitChecker
	settings  SettingsLoader
	txManager pg.TXManager
}

func New(
	requests RequestRepo,
	users UserRepo,
	wallets WalletRepo,
	addresses AddressBook,
	audit AuditRepo,
	ledger Ledger,
	checker DebitChecker,
	settings SettingsLoader,
	txManager pg.TXManager,
) *Service {
	return &Service{
		requests:  requests,
		users:     users,
		wallets:   wallets,
		addresses: addresses,
		audit:     audit,
		ledger:    ledger,
		checker:   checker,
		settings:  settings,
		txManager: txManager,
	}
}

func (s *Service) member(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Status == domain.UserSuspended {
		return nil, domain.ErrUserSuspended
	}
	return user, nil
}

// CreateWithdrawRequest opens a PENDING withdrawal. Under the reserve
// policy the funds leave the wallet now; under the deferred policy only
// the debit checks run and the wallet is charged on approval.
func (s *Service) CreateWithdrawRequest(ctx context.Context, p WithdrawParams) (*domain.WithdrawalRequest, error) {
	if !p.WalletType.Valid() {
		return nil, domain.ErrInvalidWalletType
	}
	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return nil, err
	}
	user, err := s.member(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsWithdrawalRestricted {
		return nil, domain.ErrWithdrawalRestricted
	}
	method, address := strings.TrimSpace(p.Method), ""
	if p.PayoutAddressID != 0 {
		dest, err := s.addresses.Address(ctx, p.UserID, p.PayoutAddressID)
		if err != nil {
			return nil, err
		}
		method, address = dest.MethodName, dest.Address
	}
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}

	var created *domain.WithdrawalRequest
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		wallet, err := s.wallets.FindByUserAndType(ctx, p.UserID, p.WalletType)
		if err != nil {
			return err
		}
		if wallet == nil {
			return domain.ErrWalletNotFound
		}
		req := &domain.WithdrawalRequest{
			UserID:     p.UserID,
			WalletID:   wallet.ID,
			WalletType: p.WalletType,
			Amount:     amount,
			Method:     method,
			Address:    address,
			Status:     domain.RequestPending,
		}

		switch settings.WithdrawalPolicy {
		case domain.WithdrawalDeferred:
			decision, err := s.checker.CanDebit(ctx, p.UserID, p.WalletType, p.Amount)
			if err != nil {
				return err
			}
			if !decision.OK {
				return &domain.LimitError{Reason: decision.Reason}
			}
		default:
			res, err := s.ledger.Debit(ctx, ledgerservice.DebitParams{
				UserID:     p.UserID,
				WalletType: p.WalletType,
				Amount:     p.Amount,
				TxType:     domain.TxWithdraw,
				Purpose:    "Withdrawal request",
				Meta:       domain.Meta{"method": req.Method, "address": req.Address},
			})
			if err != nil {
				return err
			}
			req.ReserveTxNumber = res.TxNumber
		}

		if created, err = s.requests.CreateWithdrawal(ctx, req); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "WITHDRAWAL_REQUESTED", "withdrawal_request", created.ID, nil,
			domain.Meta{"amount": amount.String(), "walletType": p.WalletType, "policy": settings.WithdrawalPolicy}))
	})
	if err != nil {
		zap.L().Error("failed to create withdrawal request",
			zap.Int64("userID", p.UserID), zap.String("amount", p.Amount), zap.Error(err))
		return nil, err
	}
	return created, nil
}

// ApproveWithdrawal finalises a pending request. A request created without
// a reserve is charged here and fails if the balance no longer covers it.
func (s *Service) ApproveWithdrawal(ctx context.Context, id, adminID int64, note string) (*domain.WithdrawalRequest, error) {
	return s.finishWithdrawal(ctx, id, adminID, note, domain.RequestApproved, func(ctx context.Context, req *domain.WithdrawalRequest) error {
		if req.Reserved() {
			return nil
		}
		_, err := s.ledger.Debit(ctx, ledgerservice.DebitParams{
			UserID:     req.UserID,
			WalletType: req.WalletType,
			Amount:     req.Amount.String(),
			TxType:     domain.TxWithdraw,
			Purpose:    "Withdrawal approved",
			Meta:       domain.Meta{"withdrawalRequestId": req.ID},
			SkipLimits: true,
		})
		return err
	})
}

// RejectWithdrawal closes a pending request and returns reserved funds. The
// refund names the reserve debit, which then stops counting against the
// daily withdrawal limits.
func (s *Service) RejectWithdrawal(ctx context.Context, id, adminID int64, note string) (*domain.WithdrawalRequest, error) {
	return s.finishWithdrawal(ctx, id, adminID, note, domain.RequestRejected, func(ctx context.Context, req *domain.WithdrawalRequest) error {
		if !req.Reserved() {
			return nil
		}
		_, err := s.ledger.Credit(ctx, ledgerservice.CreditParams{
			UserID:     req.UserID,
			WalletType: req.WalletType,
			Amount:     req.Amount.String(),
			TxType:     domain.TxAdjustment,
			Purpose:    "Withdrawal refund",
			Meta:       domain.Meta{"withdrawalRequestId": req.ID, domain.MetaReserveTxNumber: req.ReserveTxNumber},
		})
		return err
	})
}

func (s *Service) finishWithdrawal(
	ctx context.Context,
	id, adminID int64,
	note string,
	status domain.RequestStatus,
	settle func(ctx context.Context, req *domain.WithdrawalRequest) error,
) (*domain.WithdrawalRequest, error) {
	var req *domain.WithdrawalRequest
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		if req, err = s.requests.FindWithdrawal(ctx, id); err != nil {
			return err
		}
		if req == nil {
			return domain.ErrRequestNotFound
		}
		if req.Status != domain.RequestPending {
			return domain.ErrAlreadyProcessed
		}
		ok, err := s.requests.FinishWithdrawal(ctx, id, status, adminID, note)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyProcessed
		}
		if err := settle(ctx, req); err != nil {
			return err
		}
		req.Status, req.AdminNote, req.ProcessedBy = status, note, &adminID
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "WITHDRAWAL_"+string(status), "withdrawal_request", id,
			domain.Meta{"status": domain.RequestPending}, domain.Meta{"status": status, "note": note}))
	})
	if err != nil {
		if !errors.Is(err, domain.ErrAlreadyProcessed) {
			zap.L().Error("failed to process withdrawal request",
				zap.Int64("requestID", id), zap.String("status", string(status)), zap.Error(err))
		}
		return nil, err
	}
	return req, nil
}

func (s *Service) CreateDepositRequest(ctx context.Context, p DepositParams) (*domain.DepositRequest, error) {
	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return nil, err
	}
	if _, err := s.member(ctx, p.UserID); err != nil {
		return nil, err
	}

	var created *domain.DepositRequest
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		wallet, err := s.wallets.FindByUserAndType(ctx, p.UserID, DepositWallet)
		if err != nil {
			return err
		}
		if wallet == nil {
			return domain.ErrWalletNotFound
		}
		created, err = s.requests.CreateDeposit(ctx, &domain.DepositRequest{
			UserID:    p.UserID,
			WalletID:  wallet.ID,
			Amount:    amount,
			Method:    strings.TrimSpace(p.Method),
			Reference: strings.TrimSpace(p.Reference),
			Status:    domain.RequestPending,
		})
		if err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "DEPOSIT_REQUESTED", "deposit_request", created.ID, nil,
			domain.Meta{"amount": amount.String(), "reference": created.Reference}))
	})
	if err != nil {
		zap.L().Error("failed to create deposit request", zap.Int64("userID", p.UserID), zap.Error(err))
		return nil, err
	}
	return created, nil
}

// ApproveDeposit credits the deposit wallet with the requested amount.
func (s *Service) ApproveDeposit(ctx context.Context, id, adminID int64, note string) (*domain.DepositRequest, error) {
	return s.finishDeposit(ctx, id, adminID, note, domain.RequestApproved, func(ctx context.Context, req *domain.DepositRequest) error {
		_, err := s.ledger.Credit(ctx, ledgerservice.CreditParams{
			UserID:     req.UserID,
			WalletType: DepositWallet,
			Amount:     req.Amount.String(),
			TxType:     domain.TxDeposit,
			Purpose:    "Deposit approved",
			Meta:       domain.Meta{"depositRequestId": req.ID, "reference": req.Reference},
		})
		return err
	})
}

func (s *Service) RejectDeposit(ctx context.Context, id, adminID int64, note string) (*domain.DepositRequest, error) {
	return s.finishDeposit(ctx, id, adminID, note, domain.RequestRejected, nil)
}

func (s *Service) finishDeposit(
	ctx context.Context,
	id, adminID int64,
	note string,
	status domain.RequestStatus,
	settle func(ctx context.Context, req *domain.DepositRequest) error,
) (*domain.DepositRequest, error) {
	var req *domain.DepositRequest
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		if req, err = s.requests.FindDeposit(ctx, id); err != nil {
			return err
		}
		if req == nil {
			return domain.ErrRequestNotFound
		}
		if req.Status != domain.RequestPending {
			return domain.ErrAlreadyProcessed
		}
		ok, err := s.requests.FinishDeposit(ctx, id, status, adminID, note)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyProcessed
		}
		if settle != nil {
			if err := settle(ctx, req); err != nil {
				return err
			}
		}
		req.Status, req.AdminNote, req.ProcessedBy = status, note, &adminID
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "DEPOSIT_"+string(status), "deposit_request", id,
			domain.Meta{"status": domain.RequestPending}, domain.Meta{"status": status, "note": note}))
	})
	if err != nil {
		if !errors.Is(err, domain.ErrAlreadyProcessed) {
			zap.L().Error("failed to process deposit request",
				zap.Int64("requestID", id), zap.String("status", string(status)), zap.Error(err))
		}
		return nil, err
	}
	return req, nil
}

// ConfirmGatewayDeposit credits a payment confirmed by the gateway. The
// external transaction id is unique across deposits, so a repeated
// notification fails with domain.ErrDuplicateDeposit and credits nothing.
func (s *Service) ConfirmGatewayDeposit(ctx context.Context, userID int64, amount, externalTxID string) (*domain.LedgerResult, error) {
	externalTxID = strings.TrimSpace(externalTxID)
	if externalTxID == "" {
		return nil, domain.ErrMissingExternalTx
	}
	res, err := s.ledger.Credit(ctx, ledgerservice.CreditParams{
		UserID:     userID,
		WalletType: DepositWallet,
		Amount:     amount,
		TxType:     domain.TxDeposit,
		Purpose:    "Gateway deposit",
		Meta:       domain.Meta{"externalTxId": externalTxID},
	})
	if errors.Is(err, domain.ErrDuplicateDeposit) {
		zap.L().Info("gateway deposit already credited", zap.String("externalTxID", externalTxID))
	}
	return res, err
}

func (s *Service) ListWithdrawals(ctx context.Context, f domain.RequestFilter) ([]domain.WithdrawalRequest, error) {
	list, err := s.requests.ListWithdrawals(ctx, f)
	if err != nil {
		zap.L().Error("failed to list withdrawal requests", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) ListDeposits(ctx context.Context, f domain.RequestFilter) ([]domain.DepositRequest, error) {
	list, err := s.requests.ListDeposits(ctx, f)
	if err != nil {
		zap.L().Error("failed to list deposit requests", zap.Error(err))
		return nil, err
	}
	return list, nil
}
