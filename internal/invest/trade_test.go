package invest

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/friggtech/investcore/internal/currency"
	"github.com/friggtech/investcore/pkg/types"
)

func TestMaximumAmountIn(t *testing.T) {
	quotes := []types.QuoteResult{validQuote(2_000_000, 2_000_000)}
	halfPercent := currency.NewFraction(big.NewInt(5), big.NewInt(1000))

	// Exact input: the input is fixed, slippage does not move it.
	exactIn := Resolve(types.ExactInput, types.MarketBuy, amountOf(usdc, 100_000_000), &att, quotes)
	require.Equal(t, types.TradeValid, exactIn.State)
	require.True(t, exactIn.Trade.MaximumAmountIn(halfPercent).Equal(exactIn.Trade.InputAmount))

	// Exact output: the computed input is scaled up by the tolerance.
	out := new(big.Int).Mul(big.NewInt(100_000_000), big.NewInt(2_000_000))
	outAmount := currency.NewAmountFromRaw(att, out)
	exactOut := Resolve(types.ExactOutput, types.MarketBuy, &outAmount, &usdc, quotes)
	require.Equal(t, types.TradeValid, exactOut.State)

	max := exactOut.Trade.MaximumAmountIn(halfPercent)
	require.True(t, max.Currency().Equal(usdc))
	// 100 USDC * 1.005 = 100.5 USDC raw.
	require.Zero(t, max.Quotient().Cmp(big.NewInt(100_500_000)))
}
