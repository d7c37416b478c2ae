package accountservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
	"github.com/GlebRadaev/mlmledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
	"github.com/GlebRadaev/mlmledger/pkg/validate"
)

const tokenTTL = 24 * time.Hour

type Repo interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByMemberID(ctx context.Context, memberID string) (*domain.User, error)
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
}

type WalletRepo interface {
	CreateWallets(ctx context.Context, userID int64) error
}

type AuditRepo interface {
	Insert(ctx context.Context, l *domain.AuditLog) error
}

type Ledger interface {
	Credit(ctx context.Context, p ledgerservice.CreditParams) (*domain.LedgerResult, error)
}

type SettingsLoader interface {
	Load(ctx context.Context) (*domain.Settings, error)
}

type RegisterParams struct {
	Username        string
	Email           string
	Password        string
	SponsorMemberID string
	ParentMemberID  string
	Position        domain.Position
}

type Service struct {
	userRepo    Repo
	walletRepo  WalletRepo
	audit       AuditRepo
	ledger      Ledger
	settings    SettingsLoader
	txManager   pg.TXManager
	hashService auth.PasswordHasher
	jwtService  auth.JWTServiceInterface
	memberID    func() string
}

func New(
	repo Repo,
	walletRepo WalletRepo,
	audit AuditRepo,
	ledger Ledger,
	settings SettingsLoader,
	txManager pg.TXManager,
	hashService auth.PasswordHasher,
	jwtService auth.JWTServiceInterface,
) *Service {
	return &Service{
		userRepo:    repo,
		walletRepo:  walletRepo,
		audit:       audit,
		ledger:      ledger,
		settings:    settings,
		txManager:   txManager,
		hashService: hashService,
		jwtService:  jwtService,
		memberID:    validate.NewMemberID,
	}
}

// Register creates the member, its four wallets and the sponsor's
// referral bonus in one transaction.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*domain.User, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.Username == "" || p.Email == "" || p.Password == "" {
		return nil, domain.ErrInvalidRegistration
	}
	if p.Position == "" {
		p.Position = domain.Left
	}
	if !p.Position.Valid() {
		return nil, fmt.Errorf("%w: position %q", domain.ErrInvalidRegistration, p.Position)
	}

	for _, login := range []string{p.Username, p.Email} {
		existingUser, err := s.userRepo.FindByLogin(ctx, login)
		if err != nil {
			zap.L().Error("can't find user", zap.Error(err))
			return nil, err
		}
		if existingUser != nil {
			zap.L().Info("user already exists", zap.String("login", login))
			return nil, domain.ErrUserExists
		}
	}

	sponsor, err := s.byMemberID(ctx, p.SponsorMemberID, "sponsor")
	if err != nil {
		return nil, err
	}
	parent, err := s.byMemberID(ctx, p.ParentMemberID, "parent")
	if err != nil {
		return nil, err
	}
	if parent == nil {
		parent = sponsor
	}

	hashedPassword, err := s.hashService.HashPassword(p.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, domain.ErrInvalidPassword
	}
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, err
	}
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hashedPassword,
		Role:         domain.RoleUser,
		Position:     p.Position,
		Status:       domain.UserActive,
	}
	if sponsor != nil {
		user.SponsorID = &sponsor.ID
	}
	if parent != nil {
		user.ParentID = &parent.ID
	}

	var created *domain.User
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		if created, err = s.create(ctx, user); err != nil {
			return err
		}
		if err := s.walletRepo.CreateWallets(ctx, created.ID); err != nil {
			return err
		}
		if sponsor != nil && settings.ReferralBonusAmount.IsPositive() {
			if _, err := s.ledger.Credit(ctx, ledgerservice.CreditParams{
				UserID:     sponsor.ID,
				WalletType: domain.BonusWallet,
				Amount:     settings.ReferralBonusAmount.String(),
				TxType:     domain.TxReferralIncome,
				Purpose:    "Referral bonus for " + created.MemberID,
				Meta:       domain.Meta{"referredUserId": created.ID},
			}); err != nil {
				return err
			}
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "USER_REGISTERED", "user", created.ID, nil,
			domain.Meta{"memberId": created.MemberID, "username": created.Username, "position": created.Position}))
	})
	if err != nil {
		zap.L().Error("can't register user", zap.String("username", p.Username), zap.Error(err))
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("username", p.Username), zap.String("memberID", created.MemberID))
	return created, nil
}

// create draws a member id and retries once when it is already taken.
func (s *Service) create(ctx context.Context, user *domain.User) (*domain.User, error) {
	for attempt := 0; attempt < 2; attempt++ {
		user.MemberID = s.memberID()
		created, err := s.userRepo.Create(ctx, user)
		if !errors.Is(err, domain.ErrDuplicateMemberID) {
			return created, err
		}
		zap.L().Warn("member id collision", zap.String("memberID", user.MemberID), zap.Int("attempt", attempt+1))
	}
	return nil, domain.ErrDuplicateMemberID
}

func (s *Service) byMemberID(ctx context.Context, memberID, role string) (*domain.User, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, nil
	}
	user, err := s.userRepo.FindByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrUserNotFound, role, memberID)
	}
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if user == nil || !s.hashService.ComparePassword(user.PasswordHash, password) {
		zap.L().Info("invalid credentials", zap.String("login", login))
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status == domain.UserSuspended {
		return nil, domain.ErrUserSuspended
	}
	zap.L().Info("user successfully authenticated", zap.String("login", login))
	return user, nil
}

func (s *Service) GenerateToken(user *domain.User) (string, error) {
	token, err := s.jwtService.GenerateJWT(user.ID, string(user.Role), time.Now().Add(tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
