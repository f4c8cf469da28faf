package currency

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	usdc := NewToken(common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), 6, "USDC")

	tests := []struct {
		name     string
		text     string
		currency Currency
		wantRaw  string // "" means no amount
	}{
		{name: "integer", text: "100", currency: usdc, wantRaw: "100000000"},
		{name: "fractional", text: "0.5", currency: usdc, wantRaw: "500000"},
		{name: "full precision", text: "1.234567", currency: usdc, wantRaw: "1234567"},
		{name: "surrounding whitespace", text: " 42 ", currency: usdc, wantRaw: "42000000"},
		{name: "zero", text: "0", currency: usdc, wantRaw: "0"},
		{name: "empty", text: "", currency: usdc},
		{name: "garbage", text: "abc", currency: usdc},
		{name: "two dots", text: "1.2.3", currency: usdc},
		{name: "negative", text: "-1", currency: usdc},
		{name: "excess precision", text: "0.1234567", currency: usdc},
		{name: "unset currency", text: "1", currency: Currency{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.text, tt.currency)
			if tt.wantRaw == "" {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			want, ok := new(big.Int).SetString(tt.wantRaw, 10)
			require.True(t, ok)
			require.Zero(t, got.Quotient().Cmp(want))
			require.True(t, got.Currency().Equal(tt.currency))
		})
	}
}

func TestParseAmountOverflow(t *testing.T) {
	token := NewToken(common.HexToAddress("0x01"), 18, "TKN")

	// 2^256 whole tokens overflows a uint256 of raw units.
	huge := new(big.Int).Lsh(big.NewInt(1), 256).String()
	require.Nil(t, ParseAmount(huge, token))
}
