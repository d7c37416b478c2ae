// Package memstore is an in-memory implementation of the repositories with
// whole-store transactions, used to exercise the engines in tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

type incomeKey struct {
	purchaseID int64
	date       string
}

type payoutKey struct {
	userID int64
	date   string
}

type state struct {
	seq         int64
	users       map[int64]domain.User
	wallets     map[int64]domain.Wallet
	txs         []domain.WalletTransaction
	txNumbers   map[string]struct{}
	externalTx  map[string]struct{}
	packages    map[int64]domain.Package
	purchases   map[int64]domain.PackagePurchase
	incomeLogs  map[incomeKey]domain.PackageIncomeLog
	payoutLogs  map[payoutKey]domain.BinaryPayoutLog
	withdrawals map[int64]domain.WithdrawalRequest
	deposits    map[int64]domain.DepositRequest
	limits      map[domain.WalletType]domain.WalletLimit
	settings    map[string]string
	holidays    map[string]domain.Holiday
	audit       []domain.AuditLog
	methods     map[int64]domain.PayoutMethod
	addresses   map[int64]domain.PayoutAddress
}

func newState() *state {
	return &state{
		users:       map[int64]domain.User{},
		wallets:     map[int64]domain.Wallet{},
		txNumbers:   map[string]struct{}{},
		externalTx:  map[string]struct{}{},
		packages:    map[int64]domain.Package{},
		purchases:   map[int64]domain.PackagePurchase{},
		incomeLogs:  map[incomeKey]domain.PackageIncomeLog{},
		payoutLogs:  map[payoutKey]domain.BinaryPayoutLog{},
		withdrawals: map[int64]domain.WithdrawalRequest{},
		deposits:    map[int64]domain.DepositRequest{},
		limits:      map[domain.WalletType]domain.WalletLimit{},
		settings:    map[string]string{},
		holidays:    map[string]domain.Holiday{},
		methods:     map[int64]domain.PayoutMethod{},
		addresses:   map[int64]domain.PayoutAddress{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone copies every table. Rows are values so a shallow copy per map is enough.
func (s *state) clone() *state {
	return &state{
		seq:         s.seq,
		users:       cloneMap(s.users),
		wallets:     cloneMap(s.wallets),
		txs:         append([]domain.WalletTransaction(nil), s.txs...),
		txNumbers:   cloneMap(s.txNumbers),
		externalTx:  cloneMap(s.externalTx),
		packages:    cloneMap(s.packages),
		purchases:   cloneMap(s.purchases),
		incomeLogs:  cloneMap(s.incomeLogs),
		payoutLogs:  cloneMap(s.payoutLogs),
		withdrawals: cloneMap(s.withdrawals),
		deposits:    cloneMap(s.deposits),
		limits:      cloneMap(s.limits),
		settings:    cloneMap(s.settings),
		holidays:    cloneMap(s.holidays),
		audit:       append([]domain.AuditLog(nil), s.audit...),
		methods:     cloneMap(s.methods),
		addresses:   cloneMap(s.addresses),
	}
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

type Store struct {
	mu    sync.Mutex
	state *state

	// Now stamps created_at columns.
	Now func() time.Time
	// FailTx, when set, is consulted before a ledger row is written.
	FailTx func(t *domain.WalletTransaction) error
}

func New() *Store {
	return &Store{state: newState(), Now: time.Now}
}

type txMarker struct{}

func inTx(ctx context.Context) bool {
	return ctx.Value(txMarker{}) != nil
}

// lock serializes access outside of a transaction. Inside Begin the store
// mutex is already held by the transaction.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Begin runs fn against the store exclusively and restores the previous
// state when fn fails or panics. Nested calls join the outer transaction.
func (s *Store) Begin(ctx context.Context, fn pg.TransactionalFn) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	defer func() {
		if p := recover(); p != nil {
			s.state = snapshot
			panic(p)
		}
		if err != nil {
			s.state = snapshot
		}
	}()
	return fn(context.WithValue(ctx, txMarker{}, struct{}{}))
}

func dateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (s *Store) Users() *UserRepo { return &UserRepo{s} }
func (s *Store) Wallets() *WalletRepo { return &WalletRepo{s} }
func (s *Store) Packages() *PackageRepo { return &PackageRepo{s} }
func (s *Store) Payouts() *PayoutRepo { return &PayoutRepo{s} }
func (s *Store) Requests() *RequestRepo { return &RequestRepo{s} }
func (s *Store) Limits() *LimitRepo { return &LimitRepo{s} }
func (s *Store) Settings() *SettingsRepo { return &SettingsRepo{s} }
func (s *Store) Audit() *AuditRepo { return &AuditRepo{s} }
func (s *Store) Addresses() *AddressRepo { return &AddressRepo{s} }
