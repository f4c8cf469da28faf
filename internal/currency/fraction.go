package currency

import (
	"math/big"
)

// Fraction is an exact rational number. All amount and price arithmetic
// goes through it so no floating-point error ever enters a quote.
type Fraction struct {
	num   *big.Int
	denom *big.Int
}

// NewFraction builds num/denom. The denominator must be non-zero.
func NewFraction(num, denom *big.Int) Fraction {
	if denom.Sign() == 0 {
		panic("currency: zero denominator")
	}
	return Fraction{num: new(big.Int).Set(num), denom: new(big.Int).Set(denom)}
}

// FractionFromInt builds n/1.
func FractionFromInt(n *big.Int) Fraction {
	return Fraction{num: new(big.Int).Set(n), denom: big.NewInt(1)}
}

// Num returns a copy of the numerator.
func (f Fraction) Num() *big.Int { return new(big.Int).Set(f.num) }

// Denom returns a copy of the denominator.
func (f Fraction) Denom() *big.Int { return new(big.Int).Set(f.denom) }

// Add returns f + other.
func (f Fraction) Add(other Fraction) Fraction {
	num := new(big.Int).Mul(f.num, other.denom)
	num.Add(num, new(big.Int).Mul(other.num, f.denom))
	return Fraction{num: num, denom: new(big.Int).Mul(f.denom, other.denom)}
}

// Sub returns f - other.
func (f Fraction) Sub(other Fraction) Fraction {
	num := new(big.Int).Mul(f.num, other.denom)
	num.Sub(num, new(big.Int).Mul(other.num, f.denom))
	return Fraction{num: num, denom: new(big.Int).Mul(f.denom, other.denom)}
}

// Mul returns f * other.
func (f Fraction) Mul(other Fraction) Fraction {
	return Fraction{
		num:   new(big.Int).Mul(f.num, other.num),
		denom: new(big.Int).Mul(f.denom, other.denom),
	}
}

// Div returns f / other. The other fraction must be non-zero.
func (f Fraction) Div(other Fraction) Fraction {
	if other.num.Sign() == 0 {
		panic("currency: division by zero fraction")
	}
	return Fraction{
		num:   new(big.Int).Mul(f.num, other.denom),
		denom: new(big.Int).Mul(f.denom, other.num),
	}
}

// Invert returns 1/f. The fraction must be non-zero.
func (f Fraction) Invert() Fraction {
	if f.num.Sign() == 0 {
		panic("currency: inverting zero fraction")
	}
	return Fraction{num: new(big.Int).Set(f.denom), denom: new(big.Int).Set(f.num)}
}

// Cmp compares f and other: -1 if f < other, 0 if equal, 1 if f > other.
// Comparison is sign-normalized so negative denominators compare correctly.
func (f Fraction) Cmp(other Fraction) int {
	a := new(big.Int).Mul(f.num, other.denom)
	b := new(big.Int).Mul(other.num, f.denom)
	sign := f.denom.Sign() * other.denom.Sign()
	if sign < 0 {
		return b.Cmp(a)
	}
	return a.Cmp(b)
}

// Equal reports whether the fractions represent the same rational value.
func (f Fraction) Equal(other Fraction) bool { return f.Cmp(other) == 0 }

// Sign returns the sign of the fraction.
func (f Fraction) Sign() int { return f.num.Sign() * f.denom.Sign() }

// Quotient returns the integer part of the fraction, truncated toward zero.
func (f Fraction) Quotient() *big.Int {
	return new(big.Int).Quo(f.num, f.denom)
}
