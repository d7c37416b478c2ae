package memstore

import (
	"context"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type RequestRepo struct {
	s *Store
}

func matches(f domain.RequestFilter, userID int64, status domain.RequestStatus) bool {
	if f.UserID != nil && *f.UserID != userID {
		return false
	}
	return f.Status == "" || f.Status == status
}

func (r *RequestRepo) CreateWithdrawal(ctx context.Context, w *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error) {
	defer r.s.lock(ctx)()
	w.ID = r.s.state.nextID()
	w.CreatedAt = r.s.Now()
	w.UpdatedAt = w.CreatedAt
	r.s.state.withdrawals[w.ID] = *w
	return w, nil
}

func (r *RequestRepo) FindWithdrawal(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	defer r.s.lock(ctx)()
	w, ok := r.s.state.withdrawals[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *RequestRepo) FinishWithdrawal(ctx context.Context, id int64, status domain.RequestStatus, adminID int64, note string) (bool, error) {
	defer r.s.lock(ctx)()
	w, ok := r.s.state.withdrawals[id]
	if !ok || w.Status != domain.RequestPending {
		return false, nil
	}
	w.Status, w.ProcessedBy, w.AdminNote, w.UpdatedAt = status, &adminID, note, r.s.Now()
	r.s.state.withdrawals[id] = w
	return true, nil
}

func (r *RequestRepo) ListWithdrawals(ctx context.Context, f domain.RequestFilter) ([]domain.WithdrawalRequest, error) {
	defer r.s.lock(ctx)()
	var list []domain.WithdrawalRequest
	ids := sortedKeys(r.s.state.withdrawals)
	for i := len(ids) - 1; i >= 0; i-- {
		if w := r.s.state.withdrawals[ids[i]]; matches(f, w.UserID, w.Status) {
			list = append(list, w)
		}
	}
	return page(list, f.Limit, f.Offset), nil
}

func (r *RequestRepo) CreateDeposit(ctx context.Context, d *domain.DepositRequest) (*domain.DepositRequest, error) {
	defer r.s.lock(ctx)()
	d.ID = r.s.state.nextID()
	d.CreatedAt = r.s.Now()
	d.UpdatedAt = d.CreatedAt
	r.s.state.deposits[d.ID] = *d
	return d, nil
}

func (r *RequestRepo) FindDeposit(ctx context.Context, id int64) (*domain.DepositRequest, error) {
	defer r.s.lock(ctx)()
	d, ok := r.s.state.deposits[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *RequestRepo) FinishDeposit(ctx context.Context, id int64, status domain.RequestStatus, adminID int64, note string) (bool, error) {
	defer r.s.lock(ctx)()
	d, ok := r.s.state.deposits[id]
	if !ok || d.Status != domain.RequestPending {
		return false, nil
	}
	d.Status, d.ProcessedBy, d.AdminNote, d.UpdatedAt = status, &adminID, note, r.s.Now()
	r.s.state.deposits[id] = d
	return true, nil
}

func (r *RequestRepo) ListDeposits(ctx context.Context, f domain.RequestFilter) ([]domain.DepositRequest, error) {
	defer r.s.lock(ctx)()
	var list []domain.DepositRequest
	ids := sortedKeys(r.s.state.deposits)
	for i := len(ids) - 1; i >= 0; i-- {
		if d := r.s.state.deposits[ids[i]]; matches(f, d.UserID, d.Status) {
			list = append(list, d)
		}
	}
	return page(list, f.Limit, f.Offset), nil
}
