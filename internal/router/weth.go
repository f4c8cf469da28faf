package router

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Wrapped-native selectors.
// deposit() selector: 0xd0e30db0
// withdraw(uint256) selector: 0x2e1a7d4d
var (
	depositSelector  = common.Hex2Bytes("d0e30db0")
	withdrawSelector = common.Hex2Bytes("2e1a7d4d")
)

// EncodeDeposit encodes a wrapped-native deposit() call. The amount to
// wrap travels as the call's value, not in calldata.
func EncodeDeposit() []byte {
	return append([]byte(nil), depositSelector...)
}

// EncodeWithdraw encodes a wrapped-native withdraw(amount) call.
func EncodeWithdraw(amount *big.Int) []byte {
	data := make([]byte, 4+32)
	copy(data, withdrawSelector)
	amount.FillBytes(data[4:])
	return data
}
