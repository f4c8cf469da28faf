// Package router encodes and decodes calls to the investment router
// contract: the tokenData price source plus the buy and sell entry
// points used to execute trades.
package router

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// routerABI covers the subset of the router used by the widget core.
// function tokenData(address) view returns (uint256 issuancePrice, uint256 expiryPrice)
// function buy(address tokenAddress, uint256 inputTokenAmount)
// function sell(address tokenAddress, uint256 inputTokenAmount)
const routerABI = `[
  {"name":"tokenData","type":"function","stateMutability":"view",
   "inputs":[{"name":"tokenAddress","type":"address"}],
   "outputs":[{"name":"issuancePrice","type":"uint256"},{"name":"expiryPrice","type":"uint256"}]},
  {"name":"buy","type":"function","stateMutability":"payable",
   "inputs":[{"name":"tokenAddress","type":"address"},{"name":"inputTokenAmount","type":"uint256"}],
   "outputs":[]},
  {"name":"sell","type":"function","stateMutability":"payable",
   "inputs":[{"name":"tokenAddress","type":"address"},{"name":"inputTokenAmount","type":"uint256"}],
   "outputs":[]}
]`

// Contract is a handle to a deployed router: its address and parsed ABI.
type Contract struct {
	address common.Address
	abi     abi.ABI
}

// New builds a router handle for the given deployment address.
func New(address common.Address) (*Contract, error) {
	parsed, err := abi.JSON(strings.NewReader(routerABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse router ABI: %w", err)
	}
	return &Contract{address: address, abi: parsed}, nil
}

// Address returns the router's deployment address.
func (c *Contract) Address() common.Address { return c.address }

// EncodeTokenData encodes a tokenData(tokenAddress) read call.
func (c *Contract) EncodeTokenData(token common.Address) ([]byte, error) {
	data, err := c.abi.Pack("tokenData", token)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tokenData call: %w", err)
	}
	return data, nil
}

// DecodeTokenData decodes the return of a tokenData call into the raw
// issuance and expiry rates.
func (c *Contract) DecodeTokenData(ret []byte) (issuance, expiry *big.Int, err error) {
	values, err := c.abi.Unpack("tokenData", ret)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode tokenData return: %w", err)
	}
	if len(values) != 2 {
		return nil, nil, fmt.Errorf("invalid tokenData return: expected 2 values, got %d", len(values))
	}
	issuance, ok := values[0].(*big.Int)
	if !ok {
		return nil, nil, fmt.Errorf("invalid tokenData issuance price type %T", values[0])
	}
	expiry, ok = values[1].(*big.Int)
	if !ok {
		return nil, nil, fmt.Errorf("invalid tokenData expiry price type %T", values[1])
	}
	return issuance, expiry, nil
}

// EncodeBuy encodes buy(tokenAddress, inputTokenAmount). The token is
// the asset being issued, never the stablecoin leg.
func (c *Contract) EncodeBuy(token common.Address, inputAmount *big.Int) ([]byte, error) {
	data, err := c.abi.Pack("buy", token, inputAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to encode buy call: %w", err)
	}
	return data, nil
}

// EncodeSell encodes sell(tokenAddress, inputTokenAmount). The token is
// the asset being redeemed, never the stablecoin leg.
func (c *Contract) EncodeSell(token common.Address, inputAmount *big.Int) ([]byte, error) {
	data, err := c.abi.Pack("sell", token, inputAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sell call: %w", err)
	}
	return data, nil
}
