package currency

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// CurrencyAmount is an exact quantity of one currency, held as a
// rational number of raw units (the currency's smallest denomination).
type CurrencyAmount struct {
	currency Currency
	fraction Fraction
}

// NewAmountFromRaw builds an amount from raw units.
func NewAmountFromRaw(c Currency, raw *big.Int) CurrencyAmount {
	return CurrencyAmount{currency: c, fraction: FractionFromInt(raw)}
}

// NewAmountFromFraction builds an amount from an exact fraction of raw units.
func NewAmountFromFraction(c Currency, f Fraction) CurrencyAmount {
	return CurrencyAmount{currency: c, fraction: f}
}

// Currency returns the amount's currency.
func (a CurrencyAmount) Currency() Currency { return a.currency }

// Fraction returns the exact raw-unit quantity.
func (a CurrencyAmount) Fraction() Fraction { return a.fraction }

// Quotient returns the raw-unit quantity truncated to an integer, the
// form on-chain calls take.
func (a CurrencyAmount) Quotient() *big.Int { return a.fraction.Quotient() }

// Add returns a + other. Both amounts must share a currency.
func (a CurrencyAmount) Add(other CurrencyAmount) CurrencyAmount {
	mustMatch(a.currency, other.currency)
	return CurrencyAmount{currency: a.currency, fraction: a.fraction.Add(other.fraction)}
}

// Sub returns a - other. Both amounts must share a currency.
func (a CurrencyAmount) Sub(other CurrencyAmount) CurrencyAmount {
	mustMatch(a.currency, other.currency)
	return CurrencyAmount{currency: a.currency, fraction: a.fraction.Sub(other.fraction)}
}

// Cmp compares two amounts of the same currency.
func (a CurrencyAmount) Cmp(other CurrencyAmount) int {
	mustMatch(a.currency, other.currency)
	return a.fraction.Cmp(other.fraction)
}

// LessThan reports a < other.
func (a CurrencyAmount) LessThan(other CurrencyAmount) bool { return a.Cmp(other) < 0 }

// Equal reports whether both currency and quantity match.
func (a CurrencyAmount) Equal(other CurrencyAmount) bool {
	return a.currency.Equal(other.currency) && a.fraction.Equal(other.fraction)
}

// Display formats the amount in whole currency units with up to the
// currency's full precision, trailing zeros trimmed.
func (a CurrencyAmount) Display() string {
	raw := decimal.NewFromBigInt(a.Quotient(), 0)
	return raw.Shift(-int32(a.currency.Decimals())).String()
}

func mustMatch(a, b Currency) {
	if !a.Equal(b) {
		panic("currency: amount arithmetic across currencies")
	}
}
