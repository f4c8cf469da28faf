package invest

import (
	"math/big"

	"github.com/friggtech/investcore/internal/currency"
	"github.com/friggtech/investcore/internal/router"
	"github.com/friggtech/investcore/pkg/types"
)

// marketPricer turns one raw quote into an input→output price, or
// reports it unusable. One pricer exists per market variant; the switch
// in Resolve is the single point of market dispatch.
type marketPricer func(in, out currency.Currency, data *types.TokenData) (currency.Price, bool)

// Resolve combines the fixed amount, trade direction, market type and
// quote results into a priced trade or a failure state.
//
// Degenerate pairs are invalid even while quotes are loading; a
// contract-reported rate of zero means "not yet set", never a real rate
// of zero, so it can't produce a valid trade at an infinite price.
func Resolve(direction types.TradeDirection, market types.MarketType, amountSpecified *currency.CurrencyAmount, otherCurrency *currency.Currency, quotes []types.QuoteResult) ResolvedTrade {
	if amountSpecified == nil || otherCurrency == nil {
		return Invalid
	}
	specified := amountSpecified.Currency()
	var currencyIn, currencyOut currency.Currency
	if direction == types.ExactInput {
		currencyIn, currencyOut = specified, *otherCurrency
	} else {
		currencyIn, currencyOut = *otherCurrency, specified
	}

	if anyInvalid(quotes) || specified.Equal(*otherCurrency) {
		return Invalid
	}

	if anyLoading(quotes) {
		return ResolvedTrade{State: types.TradeLoading}
	}

	var pricer marketPricer
	switch market {
	case types.MarketBuy:
		pricer = buyPrice
	case types.MarketSell:
		pricer = sellPrice
	default:
		// the unified swap variant prices against routed liquidity,
		// which this core does not provide
		return Invalid
	}

	// Fold over the quotes; the last usable quote wins. Zero-valued
	// rate components are skipped as unset.
	var (
		price     currency.Price
		amountIn  currency.CurrencyAmount
		amountOut currency.CurrencyAmount
		found     bool
	)
	for _, q := range quotes {
		if q.Data == nil || isZero(q.Data.IssuancePrice) || isZero(q.Data.ExpiryPrice) {
			continue
		}
		p, ok := pricer(currencyIn, currencyOut, q.Data)
		if !ok {
			continue
		}
		if direction == types.ExactInput {
			price = p
			amountIn = *amountSpecified
			amountOut = p.Quote(*amountSpecified)
		} else {
			inverted := p.Invert()
			price = inverted
			amountIn = inverted.Quote(*amountSpecified)
			amountOut = *amountSpecified
		}
		found = true
	}

	if !found {
		return Invalid
	}

	return ResolvedTrade{
		State: types.TradeValid,
		Trade: &InvestmentTrade{
			Direction:    direction,
			InputAmount:  amountIn,
			OutputAmount: amountOut,
			Investment: Investment{
				Price:        price,
				Market:       market,
				InputAmount:  amountIn,
				OutputAmount: amountOut,
			},
		},
	}
}

// ResolveWithLast resolves the trade and, while quotes are still
// settling, carries the previous trade as a placeholder if it is not
// stale (same currency pair), so callers don't clear a displayed trade
// only to restore it a beat later.
func ResolveWithLast(last *InvestmentTrade, direction types.TradeDirection, market types.MarketType, amountSpecified *currency.CurrencyAmount, otherCurrency *currency.Currency, quotes []types.QuoteResult) ResolvedTrade {
	resolved := Resolve(direction, market, amountSpecified, otherCurrency, quotes)
	if resolved.State == types.TradeInvalid {
		return Invalid
	}
	if (resolved.State != types.TradeLoading && resolved.State != types.TradeSyncing) || resolved.Trade != nil {
		return resolved
	}
	if last != nil && !tradeIsStale(last, direction, amountSpecified, otherCurrency) {
		return ResolvedTrade{State: resolved.State, Trade: last}
	}
	return resolved
}

func tradeIsStale(last *InvestmentTrade, direction types.TradeDirection, amountSpecified *currency.CurrencyAmount, otherCurrency *currency.Currency) bool {
	if amountSpecified == nil || otherCurrency == nil {
		return true
	}
	specified := amountSpecified.Currency()
	var currencyIn, currencyOut currency.Currency
	if direction == types.ExactInput {
		currencyIn, currencyOut = specified, *otherCurrency
	} else {
		currencyIn, currencyOut = *otherCurrency, specified
	}
	return !last.InputAmount.Currency().Equal(currencyIn) ||
		!last.OutputAmount.Currency().Equal(currencyOut)
}

// buyPrice constructs the input→output price from the issuance rate.
// The contract stores the rate in base units per token, so the price is
// its inverse: 10^decimalsOut / rawRate over 10^decimalsOut.
func buyPrice(in, out currency.Currency, data *types.TokenData) (currency.Price, bool) {
	pow := pow10(out.Decimals())
	denom := new(big.Int).Div(pow, data.IssuancePrice)
	if denom.Sign() == 0 {
		return currency.Price{}, false
	}
	return currency.NewPrice(in, out, denom, pow), true
}

// sellPrice constructs the input→output price from the expiry rate.
// The stored rate runs in the opposite direction from the display
// convention, so the constructed price is inverted once more.
func sellPrice(in, out currency.Currency, data *types.TokenData) (currency.Price, bool) {
	pow := pow10(in.Decimals())
	denom := new(big.Int).Div(pow, data.ExpiryPrice)
	if denom.Sign() == 0 {
		return currency.Price{}, false
	}
	return currency.NewPrice(out, in, denom, pow).Invert(), true
}

// QuotePayloads encodes the tokenData calls needed to price a trade of
// the given market type: one call for the investment token (output leg
// when buying, input leg when selling). No contract or a non-token
// investment leg yields no payloads.
func QuotePayloads(contract *router.Contract, market types.MarketType, currencyIn, currencyOut *currency.Currency) [][]byte {
	if contract == nil {
		return nil
	}
	investment := currencyIn
	if market == types.MarketBuy {
		investment = currencyOut
	}
	if investment == nil || !investment.IsToken() {
		return nil
	}
	data, err := contract.EncodeTokenData(investment.Address())
	if err != nil {
		return nil
	}
	return [][]byte{data}
}

func anyInvalid(quotes []types.QuoteResult) bool {
	for _, q := range quotes {
		if !q.Valid {
			return true
		}
	}
	return false
}

func anyLoading(quotes []types.QuoteResult) bool {
	for _, q := range quotes {
		if q.Loading {
			return true
		}
	}
	return false
}

func isZero(n *big.Int) bool {
	return n == nil || n.Sign() == 0
}

func pow10(decimals uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}
