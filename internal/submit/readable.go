package submit

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
)

// userRejectedCode is the provider-specific JSON-RPC code for a wallet
// user declining to sign (EIP-1193).
const userRejectedCode = 4001

// errorStringSelector is the 4-byte selector of Error(string), the
// standard Solidity revert payload.
var errorStringSelector = [4]byte{0x08, 0xc3, 0x79, 0xa0}

// IsRejection reports whether the error is the wallet's user-rejection
// signal rather than a node or contract failure.
func IsRejection(err error) bool {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == userRejectedCode {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "user denied") || strings.Contains(msg, "user rejected")
}

// ReadableMessage extracts a human-readable reason from a call or
// submission error: the decoded Error(string) revert payload when the
// node attached one, otherwise the error text itself.
func ReadableMessage(err error) string {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if reason, ok := decodeRevertReason(dataErr.ErrorData()); ok {
			return reason
		}
	}
	return err.Error()
}

func decodeRevertReason(data interface{}) (string, bool) {
	hexData, ok := data.(string)
	if !ok {
		return "", false
	}
	raw := common.FromHex(hexData)
	if len(raw) < 4 || [4]byte(raw[:4]) != errorStringSelector {
		return "", false
	}

	stringType, err := abi.NewType("string", "", nil)
	if err != nil {
		return "", false
	}
	values, err := abi.Arguments{{Type: stringType}}.Unpack(raw[4:])
	if err != nil || len(values) != 1 {
		return "", false
	}
	reason, ok := values[0].(string)
	return reason, ok
}
