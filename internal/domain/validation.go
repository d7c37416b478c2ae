package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func (l WalletLimit) Validate() error {
	if !l.WalletType.Valid() {
		return ErrInvalidWalletType
	}
	if !l.MinWithdrawal.IsPositive() {
		return fmt.Errorf("%w: min withdrawal must be greater than zero", ErrInvalidLimit)
	}
	if l.MaxPerTx.LessThan(l.MinWithdrawal) {
		return fmt.Errorf("%w: max per transaction must be at least the minimum", ErrInvalidLimit)
	}
	if l.MaxAmount24h.LessThan(l.MaxPerTx) {
		return fmt.Errorf("%w: daily cap must be at least max per transaction", ErrInvalidLimit)
	}
	if l.MaxTxCount24h <= 0 {
		return fmt.Errorf("%w: daily transaction count must be positive", ErrInvalidLimit)
	}
	return nil
}

func (p Package) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidPackage)
	case !p.InvestmentMin.IsPositive():
		return fmt.Errorf("%w: minimum investment must be positive", ErrInvalidPackage)
	case p.InvestmentMax.LessThan(p.InvestmentMin):
		return fmt.Errorf("%w: maximum investment is below minimum", ErrInvalidPackage)
	case !p.DailyReturnPct.IsPositive():
		return fmt.Errorf("%w: daily return must be positive", ErrInvalidPackage)
	case p.DurationDays <= 0:
		return fmt.Errorf("%w: duration must be positive", ErrInvalidPackage)
	}
	return nil
}

// Validate requires known wallets with non-negative shares summing to 100.
func (c SplitConfig) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no wallets", ErrInvalidSplit)
	}
	total := decimal.Zero
	for wt, pct := range c {
		if !wt.Valid() {
			return fmt.Errorf("%w: unknown wallet %s", ErrInvalidSplit, wt)
		}
		if pct.IsNegative() {
			return fmt.Errorf("%w: negative share for %s", ErrInvalidSplit, wt)
		}
		total = total.Add(pct)
	}
	if !total.Equal(hundred) {
		return fmt.Errorf("%w: shares sum to %s, want 100", ErrInvalidSplit, total)
	}
	return nil
}

// Parts splits amount across the configured wallets in WalletTypes order.
// The last non-zero share absorbs rounding so parts always sum to amount.
func (c SplitConfig) Parts(amount decimal.Decimal) map[WalletType]decimal.Decimal {
	var order []WalletType
	for _, wt := range WalletTypes {
		if pct, ok := c[wt]; ok && pct.IsPositive() {
			order = append(order, wt)
		}
	}
	parts := make(map[WalletType]decimal.Decimal, len(order))
	rest := amount
	for i, wt := range order {
		if i == len(order)-1 {
			parts[wt] = rest
			break
		}
		part := Percent(amount, c[wt]).Round(8)
		parts[wt] = part
		rest = rest.Sub(part)
	}
	return parts
}

const maxPayoutAddressLen = 255

func (m PayoutMethod) Validate() error {
	switch {
	case m.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidPayoutMethod)
	case m.Currency == "":
		return fmt.Errorf("%w: currency is required", ErrInvalidPayoutMethod)
	case m.AllowedChangeCount < 0:
		return fmt.Errorf("%w: allowed change count cannot be negative", ErrInvalidPayoutMethod)
	}
	return nil
}

// ValidatePayoutAddress trims address and checks its length.
func ValidatePayoutAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" || len(address) > maxPayoutAddressLen {
		return "", ErrInvalidPayoutAddress
	}
	return address, nil
}
