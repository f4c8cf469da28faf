package currency

import (
	"github.com/ethereum/go-ethereum/common"
)

// Currency identifies a fungible asset: either the chain's native
// currency or an ERC20 token. Immutable once constructed.
type Currency struct {
	address  common.Address
	native   bool
	decimals uint8
	symbol   string
}

// NewToken builds a token currency.
func NewToken(address common.Address, decimals uint8, symbol string) Currency {
	return Currency{address: address, decimals: decimals, symbol: symbol}
}

// NewNative builds the native currency of the active chain.
func NewNative(decimals uint8, symbol string) Currency {
	return Currency{native: true, decimals: decimals, symbol: symbol}
}

// IsToken reports whether the currency is an ERC20 token.
func (c Currency) IsToken() bool { return !c.native }

// IsNative reports whether the currency is the chain's native currency.
func (c Currency) IsNative() bool { return c.native }

// Address returns the token contract address. Zero for native currencies.
func (c Currency) Address() common.Address { return c.address }

// Decimals returns the currency's decimal precision.
func (c Currency) Decimals() uint8 { return c.decimals }

// Symbol returns the display symbol.
func (c Currency) Symbol() string { return c.symbol }

// Equal reports whether two currencies identify the same asset.
func (c Currency) Equal(other Currency) bool {
	if c.native != other.native {
		return false
	}
	if c.native {
		return true
	}
	return c.address == other.address
}

// IsZero reports whether the currency is the zero value (unset).
func (c Currency) IsZero() bool {
	return !c.native && c.address == (common.Address{}) && c.decimals == 0 && c.symbol == ""
}
