// Package submit probes gas for candidate calls, picks the best viable
// one and submits the transaction through the active signing session.
package submit

import (
	"errors"
	"fmt"
)

// Error kinds for submission classification. Parsing and resolution
// never produce errors; everything here is post-resolution.
var (
	// ErrMissingDependencies means wallet, chain, or contract is
	// unavailable. Callers disable the action instead of showing it.
	ErrMissingDependencies = errors.New("missing dependencies")

	// ErrInvalidRecipient means an explicitly requested recipient could
	// not be resolved to an address.
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrRejected means the user declined the transaction in their
	// wallet. Distinct from every other failure so it can be presented
	// without alarm.
	ErrRejected = errors.New("transaction rejected")

	// ErrSubmissionFailed wraps an unexpected provider or node error
	// during sendTransaction.
	ErrSubmissionFailed = errors.New("submission failed")

	// ErrNoViableCall means every candidate failed estimation and
	// simulation without yielding a usable error.
	ErrNoViableCall = errors.New("could not estimate gas for any call")

	// errUnexpectedEstimate is attached when a call that failed gas
	// estimation unexpectedly succeeds in plain simulation.
	errUnexpectedEstimate = errors.New("unexpected issue estimating gas; please try again")
)

// EstimationError reports a gas-estimation failure with the readable
// revert reason extracted from a follow-up simulation.
type EstimationError struct {
	Reason string
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("gas estimation failed: %s", e.Reason)
}
