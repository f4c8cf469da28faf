// Package invest resolves priced trades from router quotes and builds
// the on-chain calls that execute them.
package invest

import (
	"math/big"

	"github.com/friggtech/investcore/internal/currency"
	"github.com/friggtech/investcore/pkg/types"
)

// Investment carries the pricing context a resolved trade was built
// from. Price is cached for display only; execution pricing is always
// recomputed from the amounts.
type Investment struct {
	Price        currency.Price
	Market       types.MarketType
	InputAmount  currency.CurrencyAmount
	OutputAmount currency.CurrencyAmount
}

// InvestmentTrade is an immutable resolved trade. Input and output
// currencies always differ.
type InvestmentTrade struct {
	Direction    types.TradeDirection
	InputAmount  currency.CurrencyAmount
	OutputAmount currency.CurrencyAmount
	Investment   Investment
}

// ExecutionPrice is the realized input→output rate, recomputed from the
// amount quotients rather than read from the cached display price.
func (t *InvestmentTrade) ExecutionPrice() currency.Price {
	return currency.NewPriceFromAmounts(t.InputAmount, t.OutputAmount)
}

// MaximumAmountIn bounds the input amount under the given slippage
// tolerance. Exact-input trades are already fixed on the input side.
func (t *InvestmentTrade) MaximumAmountIn(slippage currency.Fraction) currency.CurrencyAmount {
	if t.Direction == types.ExactInput {
		return t.InputAmount
	}
	one := currency.FractionFromInt(big.NewInt(1))
	scaled := t.InputAmount.Fraction().Mul(one.Add(slippage))
	return currency.NewAmountFromFraction(t.InputAmount.Currency(), scaled)
}

// ResolvedTrade pairs a trade state with the trade itself. Trade is
// non-nil iff State is TradeValid (or when a prior trade is carried as
// a placeholder while loading, see ResolveWithLast).
type ResolvedTrade struct {
	State types.TradeState
	Trade *InvestmentTrade
}

// Invalid is the canonical unresolvable result.
var Invalid = ResolvedTrade{State: types.TradeInvalid}
