package memstore

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

// The helpers below read or seed state directly for assertions in tests.

// AddUser inserts a user with all wallets and returns its id.
func (s *Store) AddUser(u domain.User) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	u.ID = st.nextID()
	if u.MemberID == "" {
		u.MemberID = "M" + strconv.FormatInt(u.ID, 10)
	}
	if u.Username == "" {
		u.Username = "user" + strconv.FormatInt(u.ID, 10)
		u.Email = u.Username + "@example.com"
	}
	if u.Status == "" {
		u.Status = domain.UserActive
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	if u.Position == "" {
		u.Position = domain.Left
	}
	u.CreatedAt = s.Now()
	st.users[u.ID] = u
	for _, wt := range domain.WalletTypes {
		id := st.nextID()
		st.wallets[id] = domain.Wallet{ID: id, UserID: u.ID, Type: wt, Balance: decimal.Zero, UpdatedAt: u.CreatedAt}
	}
	return u.ID
}

func (s *Store) User(id int64) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.users[id]
}

// Wallet returns the wallet of the given type; the zero value when missing.
func (s *Store) Wallet(userID int64, walletType domain.WalletType) domain.Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.state.wallets {
		if w.UserID == userID && w.Type == walletType {
			return w
		}
	}
	return domain.Wallet{}
}

func (s *Store) Balance(userID int64, walletType domain.WalletType) decimal.Decimal {
	return s.Wallet(userID, walletType).Balance
}

// DropWallet deletes a wallet row to simulate a missing wallet.
func (s *Store) DropWallet(userID int64, walletType domain.WalletType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, w := range s.state.wallets {
		if w.UserID == userID && w.Type == walletType {
			delete(s.state.wallets, id)
		}
	}
}

func (s *Store) SetVolumes(userID int64, left, right decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.state.users[userID]
	u.LeftBV, u.RightBV = left, right
	s.state.users[userID] = u
}

func (s *Store) SetParent(userID, parentID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.state.users[userID]
	u.ParentID = &parentID
	s.state.users[userID] = u
}

func (s *Store) Transactions() []domain.WalletTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.WalletTransaction(nil), s.state.txs...)
}

func (s *Store) AllWallets() []domain.Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Wallet, 0, len(s.state.wallets))
	for _, id := range sortedKeys(s.state.wallets) {
		out = append(out, s.state.wallets[id])
	}
	return out
}

func (s *Store) PayoutLogs() []domain.BinaryPayoutLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.BinaryPayoutLog, 0, len(s.state.payoutLogs))
	for _, l := range s.state.payoutLogs {
		out = append(out, l)
	}
	return out
}

func (s *Store) IncomeLogs() []domain.PackageIncomeLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PackageIncomeLog, 0, len(s.state.incomeLogs))
	for _, l := range s.state.incomeLogs {
		out = append(out, l)
	}
	return out
}

func (s *Store) Purchase(id int64) domain.PackagePurchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.purchases[id]
}

func (s *Store) AuditLogs() []domain.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditLog(nil), s.state.audit...)
}
