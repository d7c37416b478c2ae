package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type WalletRepo struct {
	s *Store
}

func (r *WalletRepo) CreateWallets(ctx context.Context, userID int64) error {
	defer r.s.lock(ctx)()
	st := r.s.state
	for _, w := range st.wallets {
		if w.UserID == userID {
			return domain.ErrUserExists
		}
	}
	for _, wt := range domain.WalletTypes {
		id := st.nextID()
		st.wallets[id] = domain.Wallet{ID: id, UserID: userID, Type: wt, Balance: decimal.Zero, UpdatedAt: r.s.Now()}
	}
	return nil
}

func (r *WalletRepo) FindByUserAndType(ctx context.Context, userID int64, walletType domain.WalletType) (*domain.Wallet, error) {
	defer r.s.lock(ctx)()
	for _, w := range r.s.state.wallets {
		if w.UserID == userID && w.Type == walletType {
			return &w, nil
		}
	}
	return nil, nil
}

func (r *WalletRepo) FindByUserAndTypeForUpdate(ctx context.Context, userID int64, walletType domain.WalletType) (*domain.Wallet, error) {
	return r.FindByUserAndType(ctx, userID, walletType)
}

func (r *WalletRepo) LockByIDs(context.Context, []int64) error {
	return nil
}

func (r *WalletRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Wallet, error) {
	defer r.s.lock(ctx)()
	var wallets []domain.Wallet
	for _, id := range sortedKeys(r.s.state.wallets) {
		if w := r.s.state.wallets[id]; w.UserID == userID {
			wallets = append(wallets, w)
		}
	}
	return wallets, nil
}

func (r *WalletRepo) UpdateBalance(ctx context.Context, walletID int64, balance decimal.Decimal) error {
	defer r.s.lock(ctx)()
	w, ok := r.s.state.wallets[walletID]
	if !ok {
		return domain.ErrWalletNotFound
	}
	w.Balance = balance
	w.UpdatedAt = r.s.Now()
	r.s.state.wallets[walletID] = w
	return nil
}

func (r *WalletRepo) InsertTransaction(ctx context.Context, t *domain.WalletTransaction) (bool, error) {
	defer r.s.lock(ctx)()
	if r.s.FailTx != nil {
		if err := r.s.FailTx(t); err != nil {
			return false, err
		}
	}
	st := r.s.state
	if _, taken := st.txNumbers[t.TxNumber]; taken {
		return false, nil
	}
	var externalID string
	if t.Type == domain.TxDeposit {
		if v, ok := t.Meta["externalTxId"].(string); ok {
			externalID = v
			if _, dup := st.externalTx[v]; dup {
				return false, domain.ErrDuplicateDeposit
			}
		}
	}
	t.ID = st.nextID()
	t.CreatedAt = r.s.Now()
	st.txs = append(st.txs, *t)
	st.txNumbers[t.TxNumber] = struct{}{}
	if externalID != "" {
		st.externalTx[externalID] = struct{}{}
	}
	return true, nil
}

func (r *WalletRepo) filterTx(match func(domain.WalletTransaction) bool) []domain.WalletTransaction {
	var out []domain.WalletTransaction
	for i := len(r.s.state.txs) - 1; i >= 0; i-- {
		if t := r.s.state.txs[i]; match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (r *WalletRepo) ListTransactions(ctx context.Context, walletID int64, limit, offset int) ([]domain.WalletTransaction, error) {
	defer r.s.lock(ctx)()
	txs := r.filterTx(func(t domain.WalletTransaction) bool { return t.WalletID == walletID })
	return page(txs, limit, offset), nil
}

func (r *WalletRepo) ListCredits(ctx context.Context, userID int64, txType domain.TxType, limit, offset int) ([]domain.WalletTransaction, error) {
	defer r.s.lock(ctx)()
	txs := r.filterTx(func(t domain.WalletTransaction) bool {
		return t.UserID == userID && t.Type == txType && t.Direction == domain.Credit
	})
	return page(txs, limit, offset), nil
}

func (r *WalletRepo) SumCredits(ctx context.Context, userID int64, txType domain.TxType) (decimal.Decimal, error) {
	defer r.s.lock(ctx)()
	total := decimal.Zero
	for _, t := range r.s.state.txs {
		if t.UserID == userID && t.Type == txType && t.Direction == domain.Credit {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (r *WalletRepo) SumSigned(ctx context.Context, walletID int64) (decimal.Decimal, error) {
	defer r.s.lock(ctx)()
	total := decimal.Zero
	for _, t := range r.s.state.txs {
		if t.WalletID == walletID {
			total = total.Add(t.Signed())
		}
	}
	return total, nil
}

func (r *WalletRepo) WithdrawStats(ctx context.Context, walletID int64, since time.Time) (int, decimal.Decimal, error) {
	defer r.s.lock(ctx)()
	refunded := map[string]bool{}
	for _, t := range r.s.state.txs {
		if t.WalletID == walletID && t.Direction == domain.Credit {
			if n, ok := t.Meta[domain.MetaReserveTxNumber].(string); ok {
				refunded[n] = true
			}
		}
	}
	count, total := 0, decimal.Zero
	for _, t := range r.s.state.txs {
		if refunded[t.TxNumber] {
			continue
		}
		if t.WalletID == walletID && t.Type == domain.TxWithdraw && t.Direction == domain.Debit && !t.CreatedAt.Before(since) {
			count++
			total = total.Add(t.Amount)
		}
	}
	return count, total, nil
}

func (r *WalletRepo) GainBreakdown(ctx context.Context, userID int64, from, to *time.Time) ([]domain.GainRow, error) {
	defer r.s.lock(ctx)()
	rows := map[domain.TxType]*domain.GainRow{}
	for _, t := range r.s.state.txs {
		if t.UserID != userID || t.Direction != domain.Credit || t.Type == domain.TxDeposit {
			continue
		}
		if (from != nil && t.CreatedAt.Before(*from)) || (to != nil && !t.CreatedAt.Before(*to)) {
			continue
		}
		row, ok := rows[t.Type]
		if !ok {
			row = &domain.GainRow{Type: t.Type}
			rows[t.Type] = row
		}
		row.Total = row.Total.Add(t.Amount)
		row.Count++
	}
	report := make([]domain.GainRow, 0, len(rows))
	for _, row := range rows {
		report = append(report, *row)
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Type < report[j].Type })
	return report, nil
}
