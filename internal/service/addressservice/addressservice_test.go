package addressservice

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/memstore"
)

func NewStore(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return New(store.Addresses(), store.Users(), store.Audit(), store), store
}

func newMethod(t *testing.T, s *Service, name string, changes int) *domain.PayoutMethod {
	t.Helper()
	m, err := s.CreateMethod(context.Background(), domain.PayoutMethod{Name: name, Currency: "usdt", AllowedChangeCount: changes})
	require.NoError(t, err)
	return m
}

func TestMethods(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()

	trc := newMethod(t, service, " USDT-TRC20 ", 1)
	assert.Equal(t, "USDT-TRC20", trc.Name)
	assert.Equal(t, "USDT", trc.Currency)

	_, err := service.CreateMethod(ctx, domain.PayoutMethod{Name: "USDT-TRC20", Currency: "USDT"})
	assert.ErrorIs(t, err, domain.ErrPayoutMethodExists)

	tests := []struct {
		name   string
		method domain.PayoutMethod
	}{
		{name: "No name", method: domain.PayoutMethod{Currency: "USDT"}},
		{name: "No currency", method: domain.PayoutMethod{Name: "BTC"}},
		{name: "Negative changes", method: domain.PayoutMethod{Name: "BTC", Currency: "BTC", AllowedChangeCount: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateMethod(ctx, tt.method)
			assert.ErrorIs(t, err, domain.ErrInvalidPayoutMethod)
		})
	}

	updated, err := service.UpdateMethod(ctx, domain.PayoutMethod{ID: trc.ID, Name: "USDT-TRC20", Currency: "USDT", AllowedChangeCount: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.AllowedChangeCount)

	_, err = service.UpdateMethod(ctx, domain.PayoutMethod{ID: 999, Name: "X", Currency: "X"})
	assert.ErrorIs(t, err, domain.ErrPayoutMethodNotFound)

	methods, err := service.Methods(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 1)

	logs := store.AuditLogs()
	require.Len(t, logs, 2)
	assert.Equal(t, "PAYOUT_METHOD_UPDATED", logs[1].Action)
}

func TestAddresses(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	alice := store.AddUser(domain.User{})
	bob := store.AddUser(domain.User{})
	method := newMethod(t, service, "USDT-TRC20", 1)

	a, err := service.AddAddress(ctx, alice, method.ID, "  TQ5Nx3  ")
	require.NoError(t, err)
	assert.Equal(t, "TQ5Nx3", a.Address)
	assert.Equal(t, "USDT-TRC20", a.MethodName)

	tests := []struct {
		name     string
		userID   int64
		methodID int64
		address  string
		wantErr  error
	}{
		{name: "Blank address", userID: alice, methodID: method.ID, address: "  ", wantErr: domain.ErrInvalidPayoutAddress},
		{name: "Address too long", userID: alice, methodID: method.ID, address: strings.Repeat("x", 256), wantErr: domain.ErrInvalidPayoutAddress},
		{name: "Unknown method", userID: alice, methodID: 999, address: "T1", wantErr: domain.ErrPayoutMethodNotFound},
		{name: "Unknown user", userID: 999, methodID: method.ID, address: "T1", wantErr: domain.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AddAddress(ctx, tt.userID, tt.methodID, tt.address)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err = service.Address(ctx, bob, a.ID)
	assert.ErrorIs(t, err, domain.ErrPayoutAddressNotFound)
	_, err = service.ChangeAddress(ctx, bob, a.ID, "TBob")
	assert.ErrorIs(t, err, domain.ErrPayoutAddressNotFound)
	assert.ErrorIs(t, service.RemoveAddress(ctx, bob, a.ID), domain.ErrPayoutAddressNotFound)

	list, err := service.Addresses(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	list, err = service.Addresses(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestChangeAddress_Allowance(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	alice := store.AddUser(domain.User{})
	method := newMethod(t, service, "USDT-TRC20", 1)
	a, err := service.AddAddress(ctx, alice, method.ID, "T1")
	require.NoError(t, err)

	changed, err := service.ChangeAddress(ctx, alice, a.ID, "T2")
	require.NoError(t, err)
	assert.Equal(t, "T2", changed.Address)
	assert.Equal(t, 1, changed.ChangeCount)

	_, err = service.ChangeAddress(ctx, alice, a.ID, "T3")
	assert.ErrorIs(t, err, domain.ErrAddressChangeLimit)

	overridden, err := service.OverrideAddress(ctx, a.ID, "T-admin")
	require.NoError(t, err)
	assert.Equal(t, "T-admin", overridden.Address)
	assert.Equal(t, 1, overridden.ChangeCount)

	_, err = service.OverrideAddress(ctx, 999, "T")
	assert.ErrorIs(t, err, domain.ErrPayoutAddressNotFound)

	_, err = service.UpdateMethod(ctx, domain.PayoutMethod{ID: method.ID, Name: method.Name, Currency: "USDT", AllowedChangeCount: 2})
	require.NoError(t, err)
	changed, err = service.ChangeAddress(ctx, alice, a.ID, "T4")
	require.NoError(t, err)
	assert.Equal(t, 2, changed.ChangeCount)
}

func TestDeleteMethod_RemovesAddresses(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	alice := store.AddUser(domain.User{})
	trc := newMethod(t, service, "USDT-TRC20", 0)
	btc := newMethod(t, service, "BTC", 0)
	_, err := service.AddAddress(ctx, alice, trc.ID, "T1")
	require.NoError(t, err)
	kept, err := service.AddAddress(ctx, alice, btc.ID, "bc1q")
	require.NoError(t, err)

	require.NoError(t, service.DeleteMethod(ctx, trc.ID))
	assert.ErrorIs(t, service.DeleteMethod(ctx, trc.ID), domain.ErrPayoutMethodNotFound)

	list, err := service.Addresses(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, kept.ID, list[0].ID)

	require.NoError(t, service.RemoveAddress(ctx, alice, kept.ID))
	list, err = service.Addresses(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}
