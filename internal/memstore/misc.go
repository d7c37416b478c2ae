package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type PayoutRepo struct {
	s *Store
}

func (r *PayoutRepo) Claim(ctx context.Context, l *domain.BinaryPayoutLog) (bool, error) {
	defer r.s.lock(ctx)()
	key := payoutKey{userID: l.UserID, date: dateKey(l.Date)}
	if _, taken := r.s.state.payoutLogs[key]; taken {
		return false, nil
	}
	l.ID = r.s.state.nextID()
	l.CreatedAt = r.s.Now()
	r.s.state.payoutLogs[key] = *l
	return true, nil
}

func (r *PayoutRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.BinaryPayoutLog, error) {
	defer r.s.lock(ctx)()
	var logs []domain.BinaryPayoutLog
	for key, l := range r.s.state.payoutLogs {
		if key.userID == userID {
			logs = append(logs, l)
		}
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date.After(logs[j].Date) })
	return page(logs, limit, offset), nil
}

type LimitRepo struct {
	s *Store
}

func (r *LimitRepo) Find(ctx context.Context, walletType domain.WalletType) (*domain.WalletLimit, error) {
	defer r.s.lock(ctx)()
	l, ok := r.s.state.limits[walletType]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *LimitRepo) List(ctx context.Context) ([]domain.WalletLimit, error) {
	defer r.s.lock(ctx)()
	var limits []domain.WalletLimit
	for _, l := range r.s.state.limits {
		limits = append(limits, l)
	}
	sort.Slice(limits, func(i, j int) bool { return limits[i].WalletType < limits[j].WalletType })
	return limits, nil
}

func (r *LimitRepo) Upsert(ctx context.Context, l *domain.WalletLimit) error {
	defer r.s.lock(ctx)()
	stored := *l
	stored.UpdatedAt = r.s.Now()
	r.s.state.limits[l.WalletType] = stored
	return nil
}

type SettingsRepo struct {
	s *Store
}

func (r *SettingsRepo) All(ctx context.Context) (map[string]string, error) {
	defer r.s.lock(ctx)()
	return cloneMap(r.s.state.settings), nil
}

func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	defer r.s.lock(ctx)()
	r.s.state.settings[key] = value
	return nil
}

func (r *SettingsRepo) FindHoliday(ctx context.Context, date time.Time) (*domain.Holiday, error) {
	defer r.s.lock(ctx)()
	h, ok := r.s.state.holidays[dateKey(date)]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (r *SettingsRepo) UpsertHoliday(ctx context.Context, h domain.Holiday) error {
	defer r.s.lock(ctx)()
	r.s.state.holidays[dateKey(h.Date)] = h
	return nil
}

type AuditRepo struct {
	s *Store
}

func (r *AuditRepo) Insert(ctx context.Context, l *domain.AuditLog) error {
	defer r.s.lock(ctx)()
	entry := *l
	entry.ID = r.s.state.nextID()
	entry.CreatedAt = r.s.Now()
	r.s.state.audit = append(r.s.state.audit, entry)
	return nil
}
