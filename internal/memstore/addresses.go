package memstore

import (
	"context"
	"sort"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type AddressRepo struct {
	s *Store
}

func (r *AddressRepo) ListMethods(ctx context.Context) ([]domain.PayoutMethod, error) {
	defer r.s.lock(ctx)()
	var methods []domain.PayoutMethod
	for _, m := range r.s.state.methods {
		methods = append(methods, m)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })
	return methods, nil
}

func (r *AddressRepo) FindMethod(ctx context.Context, id int64) (*domain.PayoutMethod, error) {
	defer r.s.lock(ctx)()
	m, ok := r.s.state.methods[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *AddressRepo) nameTaken(name string, except int64) bool {
	for _, m := range r.s.state.methods {
		if m.Name == name && m.ID != except {
			return true
		}
	}
	return false
}

func (r *AddressRepo) CreateMethod(ctx context.Context, m *domain.PayoutMethod) (*domain.PayoutMethod, error) {
	defer r.s.lock(ctx)()
	if r.nameTaken(m.Name, 0) {
		return nil, domain.ErrPayoutMethodExists
	}
	created := *m
	created.ID = r.s.state.nextID()
	created.CreatedAt = r.s.Now()
	r.s.state.methods[created.ID] = created
	return &created, nil
}

func (r *AddressRepo) UpdateMethod(ctx context.Context, m *domain.PayoutMethod) (*domain.PayoutMethod, error) {
	defer r.s.lock(ctx)()
	stored, ok := r.s.state.methods[m.ID]
	if !ok {
		return nil, domain.ErrPayoutMethodNotFound
	}
	if r.nameTaken(m.Name, m.ID) {
		return nil, domain.ErrPayoutMethodExists
	}
	stored.Name, stored.Currency, stored.AllowedChangeCount = m.Name, m.Currency, m.AllowedChangeCount
	r.s.state.methods[m.ID] = stored
	return &stored, nil
}

func (r *AddressRepo) DeleteMethod(ctx context.Context, id int64) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.state.methods[id]; !ok {
		return domain.ErrPayoutMethodNotFound
	}
	delete(r.s.state.methods, id)
	for aid, a := range r.s.state.addresses {
		if a.MethodID == id {
			delete(r.s.state.addresses, aid)
		}
	}
	return nil
}

// withMethod fills the columns joined from the method row.
func (r *AddressRepo) withMethod(a domain.PayoutAddress) domain.PayoutAddress {
	m := r.s.state.methods[a.MethodID]
	a.MethodName, a.Currency = m.Name, m.Currency
	return a
}

func (r *AddressRepo) ListAddresses(ctx context.Context, userID int64) ([]domain.PayoutAddress, error) {
	defer r.s.lock(ctx)()
	var list []domain.PayoutAddress
	for _, id := range sortedKeys(r.s.state.addresses) {
		if a := r.s.state.addresses[id]; a.UserID == userID {
			list = append(list, r.withMethod(a))
		}
	}
	return list, nil
}

func (r *AddressRepo) FindAddress(ctx context.Context, id int64) (*domain.PayoutAddress, error) {
	defer r.s.lock(ctx)()
	a, ok := r.s.state.addresses[id]
	if !ok {
		return nil, nil
	}
	a = r.withMethod(a)
	return &a, nil
}

func (r *AddressRepo) CreateAddress(ctx context.Context, a *domain.PayoutAddress) (*domain.PayoutAddress, error) {
	defer r.s.lock(ctx)()
	created := *a
	created.ID = r.s.state.nextID()
	created.ChangeCount = 0
	created.CreatedAt = r.s.Now()
	created.UpdatedAt = created.CreatedAt
	r.s.state.addresses[created.ID] = created
	return &created, nil
}

func (r *AddressRepo) ChangeAddress(ctx context.Context, id int64, address string) (bool, error) {
	defer r.s.lock(ctx)()
	a, ok := r.s.state.addresses[id]
	if !ok || a.ChangeCount >= r.s.state.methods[a.MethodID].AllowedChangeCount {
		return false, nil
	}
	a.Address = address
	a.ChangeCount++
	a.UpdatedAt = r.s.Now()
	r.s.state.addresses[id] = a
	return true, nil
}

func (r *AddressRepo) OverrideAddress(ctx context.Context, id int64, address string) error {
	defer r.s.lock(ctx)()
	a, ok := r.s.state.addresses[id]
	if !ok {
		return domain.ErrPayoutAddressNotFound
	}
	a.Address = address
	a.UpdatedAt = r.s.Now()
	r.s.state.addresses[id] = a
	return nil
}

func (r *AddressRepo) DeleteAddress(ctx context.Context, id int64) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.state.addresses[id]; !ok {
		return domain.ErrPayoutAddressNotFound
	}
	delete(r.s.state.addresses, id)
	return nil
}
