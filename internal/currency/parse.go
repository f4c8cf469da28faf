package currency

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// maxUint256 bounds parsed amounts to what a uint256 calldata word can carry.
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// ParseAmount parses raw user text into an exact amount of the given
// currency. Returns nil for empty, malformed, negative, or out-of-range
// input, and for more fractional digits than the currency carries.
// Malformed input is "no amount", never an error.
func ParseAmount(text string, c Currency) *CurrencyAmount {
	text = strings.TrimSpace(text)
	if text == "" || c.IsZero() {
		return nil
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil
	}
	if d.Sign() < 0 {
		return nil
	}

	raw := d.Shift(int32(c.Decimals()))
	if !raw.IsInteger() {
		// more precision than the currency has
		return nil
	}

	quotient := raw.BigInt()
	if quotient.Cmp(maxUint256) > 0 {
		return nil
	}

	amount := NewAmountFromRaw(c, quotient)
	return &amount
}
