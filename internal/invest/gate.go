package invest

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/friggtech/investcore/internal/submit"
	"github.com/friggtech/investcore/pkg/types"
)

// CallbackState gates whether a submission can proceed.
type CallbackState int

const (
	// CallbackInvalid means a dependency is missing or the recipient is
	// unresolvable; the action is disabled.
	CallbackInvalid CallbackState = iota
	// CallbackLoading means the recipient is still resolving.
	CallbackLoading
	// CallbackValid means the trade can be submitted.
	CallbackValid
)

// Callback is the submission gate for a built trade.
type Callback struct {
	State CallbackState
	Err   error
}

// EvaluateCallback classifies readiness: missing session, account,
// chain, or calls disable the action as "not ready"; an explicitly
// requested recipient that failed to resolve is a distinct error; an
// implicit (sender) recipient that is still resolving is loading.
func EvaluateCallback(hasSession bool, account common.Address, chainID *big.Int, calls []types.Call, recipient common.Address, recipientRequested bool) Callback {
	if !hasSession || account == (common.Address{}) || chainID == nil || chainID.Sign() == 0 || len(calls) == 0 {
		return Callback{State: CallbackInvalid, Err: submit.ErrMissingDependencies}
	}
	if recipient == (common.Address{}) {
		if recipientRequested {
			return Callback{State: CallbackInvalid, Err: submit.ErrInvalidRecipient}
		}
		return Callback{State: CallbackLoading}
	}
	return Callback{State: CallbackValid}
}
