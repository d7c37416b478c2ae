package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "integer", in: "100", want: "100"},
		{name: "fraction", in: " 10.55 ", want: "10.55"},
		{name: "zero", in: "0", wantErr: true},
		{name: "negative", in: "-1", wantErr: true},
		{name: "garbage", in: "ten", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "eight places", in: "0.00000001", want: "0.00000001"},
		{name: "trailing zeros past eight places", in: "1.5000000000", want: "1.5"},
		{name: "nine places", in: "0.000000005", wantErr: true},
		{name: "rounds to zero in storage", in: "0.000000004", wantErr: true},
		{name: "balance-sized with dust", in: "0.999999995", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestLimitError(t *testing.T) {
	err := fmt.Errorf("debit: %w", &LimitError{Reason: "Minimum withdrawal is 10"})
	assert.True(t, errors.Is(err, ErrLimitExceeded))
	assert.Equal(t, "Minimum withdrawal is 10", Reason(err))
	assert.Equal(t, ErrInsufficientBalance.Error(), Reason(ErrInsufficientBalance))
}

func TestWalletLimit_Validate(t *testing.T) {
	valid := WalletLimit{
		WalletType:    MWallet,
		MinWithdrawal: decimal.NewFromInt(10),
		MaxPerTx:      decimal.NewFromInt(100),
		MaxTxCount24h: 3,
		MaxAmount24h:  decimal.NewFromInt(250),
	}
	assert.NoError(t, valid.Validate())

	broken := valid
	broken.MinWithdrawal = decimal.Zero
	assert.ErrorIs(t, broken.Validate(), ErrInvalidLimit)

	broken = valid
	broken.MaxPerTx = decimal.NewFromInt(5)
	assert.ErrorIs(t, broken.Validate(), ErrInvalidLimit)

	broken = valid
	broken.MaxAmount24h = decimal.NewFromInt(50)
	assert.ErrorIs(t, broken.Validate(), ErrInvalidLimit)

	broken = valid
	broken.MaxTxCount24h = 0
	assert.ErrorIs(t, broken.Validate(), ErrInvalidLimit)

	broken = valid
	broken.WalletType = "X"
	assert.ErrorIs(t, broken.Validate(), ErrInvalidWalletType)
}

func TestSplitConfig(t *testing.T) {
	split := SplitConfig{
		FWallet: decimal.NewFromInt(50),
		MWallet: decimal.RequireFromString("33.33"),
		IWallet: decimal.RequireFromString("16.67"),
	}
	require.NoError(t, split.Validate())

	amount := decimal.RequireFromString("100.01")
	parts := split.Parts(amount)
	sum := decimal.Zero
	for _, p := range parts {
		sum = sum.Add(p)
	}
	assert.True(t, sum.Equal(amount))
	assert.Len(t, parts, 3)

	assert.ErrorIs(t, SplitConfig{FWallet: decimal.NewFromInt(90)}.Validate(), ErrInvalidSplit)
	assert.ErrorIs(t, SplitConfig{}.Validate(), ErrInvalidSplit)
	assert.ErrorIs(t, SplitConfig{"X": decimal.NewFromInt(100)}.Validate(), ErrInvalidSplit)
}

func TestParseClosingTime(t *testing.T) {
	ct, err := ParseClosingTime("18:30")
	require.NoError(t, err)
	assert.Equal(t, ClosingTime{Hour: 18, Minute: 30}, ct)
	assert.Equal(t, "18:30", ct.String())

	for _, bad := range []string{"", "24:00", "12:60", "noon", "1:2:3"} {
		_, err := ParseClosingTime(bad)
		assert.ErrorIs(t, err, ErrInvalidSetting, bad)
	}
}
