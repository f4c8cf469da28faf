package currency

import (
	"math/big"
)

// Price is an exchange rate between two specific currencies, stored as
// an exact fraction over raw units: one raw unit of the base currency
// buys numerator/denominator raw units of the quote currency.
type Price struct {
	base     Currency
	quoted   Currency
	fraction Fraction
}

// NewPrice builds a price of quoted currency per base currency from a
// raw-unit denominator (base side) and numerator (quote side).
func NewPrice(base, quoted Currency, denominator, numerator *big.Int) Price {
	return Price{
		base:     base,
		quoted:   quoted,
		fraction: NewFraction(numerator, denominator),
	}
}

// NewPriceFromAmounts builds the execution price realized by trading
// baseAmount for quoteAmount.
func NewPriceFromAmounts(baseAmount, quoteAmount CurrencyAmount) Price {
	return Price{
		base:     baseAmount.Currency(),
		quoted:   quoteAmount.Currency(),
		fraction: quoteAmount.Fraction().Div(baseAmount.Fraction()),
	}
}

// Base returns the price's base currency.
func (p Price) Base() Currency { return p.base }

// Quoted returns the price's quote currency.
func (p Price) Quoted() Currency { return p.quoted }

// Fraction returns the raw-unit rate.
func (p Price) Fraction() Fraction { return p.fraction }

// Invert returns the reciprocal price, quoting the base in units of the quote.
func (p Price) Invert() Price {
	return Price{base: p.quoted, quoted: p.base, fraction: p.fraction.Invert()}
}

// Quote applies the rate to an amount of the base currency and returns
// the corresponding amount of the quote currency, exactly.
func (p Price) Quote(amount CurrencyAmount) CurrencyAmount {
	mustMatch(p.base, amount.Currency())
	return NewAmountFromFraction(p.quoted, amount.Fraction().Mul(p.fraction))
}

// Equal reports whether two prices express the same rate between the
// same currency pair in the same orientation.
func (p Price) Equal(other Price) bool {
	return p.base.Equal(other.base) && p.quoted.Equal(other.quoted) && p.fraction.Equal(other.fraction)
}
