// Package addressservice keeps the catalog of payout methods and the
// addresses members register for them. Withdrawals take their destination
// from here.
package addressservice

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

type AddressRepo interface {
	ListMethods(ctx context.Context) ([]domain.PayoutMethod, error)
	FindMethod(ctx context.Context, id int64) (*domain.PayoutMethod, error)
	CreateMethod(ctx context.Context, m *domain.PayoutMethod) (*domain.PayoutMethod, error)
	UpdateMethod(ctx context.Context, m *domain.PayoutMethod) (*domain.PayoutMethod, error)
	DeleteMethod(ctx context.Context, id int64) error
	ListAddresses(ctx context.Context, userID int64) ([]domain.PayoutAddress, error)
	FindAddress(ctx context.Context, id int64) (*domain.PayoutAddress, error)
	CreateAddress(ctx context.Context, a *domain.PayoutAddress) (*domain.PayoutAddress, error)
	ChangeAddress(ctx context.Context, id int64, address string) (bool, error)
	OverrideAddress(ctx context.Context, id int64, address string) error
	DeleteAddress(ctx context.Context, id int64) error
}

type UserRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

type AuditRepo interface {
	Insert(ctx context.Context, l *domain.AuditLog) error
}

type Service struct {
	repo      AddressRepo
	users     UserRepo
	audit     AuditRepo
	txManager pg.TXManager
}

func New(repo AddressRepo, users UserRepo, audit AuditRepo, txManager pg.TXManager) *Service {
	return &Service{repo: repo, users: users, audit: audit, txManager: txManager}
}

func (s *Service) Methods(ctx context.Context) ([]domain.PayoutMethod, error) {
	methods, err := s.repo.ListMethods(ctx)
	if err != nil {
		zap.L().Error("failed to list payout methods", zap.Error(err))
		return nil, err
	}
	return methods, nil
}

func normalizeMethod(m domain.PayoutMethod) (domain.PayoutMethod, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Currency = strings.ToUpper(strings.TrimSpace(m.Currency))
	return m, m.Validate()
}

func (s *Service) CreateMethod(ctx context.Context, m domain.PayoutMethod) (*domain.PayoutMethod, error) {
	m, err := normalizeMethod(m)
	if err != nil {
		return nil, err
	}
	var created *domain.PayoutMethod
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		if created, err = s.repo.CreateMethod(ctx, &m); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "PAYOUT_METHOD_CREATED", "payout_method", created.ID, nil, methodMeta(created)))
	})
	if err != nil {
		zap.L().Error("failed to create payout method", zap.String("name", m.Name), zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (s *Service) UpdateMethod(ctx context.Context, m domain.PayoutMethod) (*domain.PayoutMethod, error) {
	m, err := normalizeMethod(m)
	if err != nil {
		return nil, err
	}
	var updated *domain.PayoutMethod
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		before, err := s.repo.FindMethod(ctx, m.ID)
		if err != nil {
			return err
		}
		if before == nil {
			return domain.ErrPayoutMethodNotFound
		}
		if updated, err = s.repo.UpdateMethod(ctx, &m); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "PAYOUT_METHOD_UPDATED", "payout_method", m.ID, methodMeta(before), methodMeta(updated)))
	})
	if err != nil {
		zap.L().Error("failed to update payout method", zap.Int64("methodID", m.ID), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

// DeleteMethod removes a method together with every address registered for it.
func (s *Service) DeleteMethod(ctx context.Context, id int64) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		before, err := s.repo.FindMethod(ctx, id)
		if err != nil {
			return err
		}
		if before == nil {
			return domain.ErrPayoutMethodNotFound
		}
		if err := s.repo.DeleteMethod(ctx, id); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "PAYOUT_METHOD_DELETED", "payout_method", id, methodMeta(before), nil))
	})
	if err != nil {
		zap.L().Error("failed to delete payout method", zap.Int64("methodID", id), zap.Error(err))
		return err
	}
	return nil
}

func methodMeta(m *domain.PayoutMethod) domain.Meta {
	return domain.Meta{"name": m.Name, "currency": m.Currency, "allowedChangeCount": m.AllowedChangeCount}
}

func (s *Service) Addresses(ctx context.Context, userID int64) ([]domain.PayoutAddress, error) {
	list, err := s.repo.ListAddresses(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list payout addresses", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	return list, nil
}

// Address returns one of the member's addresses. Addresses of other
// members are reported as not found.
func (s *Service) Address(ctx context.Context, userID, id int64) (*domain.PayoutAddress, error) {
	a, err := s.repo.FindAddress(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || a.UserID != userID {
		return nil, domain.ErrPayoutAddressNotFound
	}
	return a, nil
}

func (s *Service) AddAddress(ctx context.Context, userID, methodID int64, address string) (*domain.PayoutAddress, error) {
	address, err := domain.ValidatePayoutAddress(address)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	var created *domain.PayoutAddress
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		method, err := s.repo.FindMethod(ctx, methodID)
		if err != nil {
			return err
		}
		if method == nil {
			return domain.ErrPayoutMethodNotFound
		}
		created, err = s.repo.CreateAddress(ctx, &domain.PayoutAddress{
			UserID:     userID,
			MethodID:   method.ID,
			MethodName: method.Name,
			Currency:   method.Currency,
			Address:    address,
		})
		if err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "PAYOUT_ADDRESS_ADDED", "payout_address", created.ID, nil,
			domain.Meta{"methodId": method.ID, "address": address}))
	})
	if err != nil {
		zap.L().Error("failed to add payout address", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	return created, nil
}

// ChangeAddress lets a member replace an address while the method's change
// allowance lasts.
func (s *Service) ChangeAddress(ctx context.Context, userID, id int64, address string) (*domain.PayoutAddress, error) {
	address, err := domain.ValidatePayoutAddress(address)
	if err != nil {
		return nil, err
	}
	var changed *domain.PayoutAddress
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		before, err := s.Address(ctx, userID, id)
		if err != nil {
			return err
		}
		ok, err := s.repo.ChangeAddress(ctx, id, address)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAddressChangeLimit
		}
		if changed, err = s.repo.FindAddress(ctx, id); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "PAYOUT_ADDRESS_CHANGED", "payout_address", id,
			domain.Meta{"address": before.Address, "changeCount": before.ChangeCount},
			domain.Meta{"address": address, "changeCount": changed.ChangeCount}))
	})
	if err != nil {
		zap.L().Warn("failed to change payout address", zap.Int64("addressID", id), zap.Error(err))
		return nil, err
	}
	return changed, nil
}

func (s *Service) RemoveAddress(ctx context.Context, userID, id int64) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		before, err := s.Address(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteAddress(ctx, id); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "PAYOUT_ADDRESS_REMOVED", "payout_address", id,
			domain.Meta{"methodId": before.MethodID, "address": before.Address}, nil))
	})
	if err != nil {
		zap.L().Error("failed to remove payout address", zap.Int64("addressID", id), zap.Error(err))
		return err
	}
	return nil
}

// OverrideAddress is the admin correction path. It ignores the change
// allowance and leaves the member's change count untouched.
func (s *Service) OverrideAddress(ctx context.Context, id int64, address string) (*domain.PayoutAddress, error) {
	address, err := domain.ValidatePayoutAddress(address)
	if err != nil {
		return nil, err
	}
	var updated *domain.PayoutAddress
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		before, err := s.repo.FindAddress(ctx, id)
		if err != nil {
			return err
		}
		if before == nil {
			return domain.ErrPayoutAddressNotFound
		}
		if err := s.repo.OverrideAddress(ctx, id, address); err != nil {
			return err
		}
		if updated, err = s.repo.FindAddress(ctx, id); err != nil {
			return err
		}
		return s.audit.Insert(ctx, domain.NewAuditLog(ctx, "PAYOUT_ADDRESS_OVERRIDDEN", "payout_address", id,
			domain.Meta{"address": before.Address}, domain.Meta{"address": address, "userId": before.UserID}))
	})
	if err != nil {
		zap.L().Error("failed to override payout address", zap.Int64("addressID", id), zap.Error(err))
		return nil, err
	}
	return updated, nil
}
