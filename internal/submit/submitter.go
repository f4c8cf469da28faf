package submit

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"

	"github.com/friggtech/investcore/internal/eth"
	"github.com/friggtech/investcore/pkg/types"
)

// Gas margin applied on top of a successful estimate: +20%.
var (
	gasMarginNum   = big.NewInt(120)
	gasMarginDenom = big.NewInt(100)
)

// Submitter turns a list of candidate calls into one submitted
// transaction. It has no side effects until SendTransaction is reached.
type Submitter struct {
	session eth.Session
}

// NewSubmitter creates a submitter over the given signing session.
func NewSubmitter(session eth.Session) *Submitter {
	return &Submitter{session: session}
}

// EstimateCalls probes gas for every candidate concurrently and returns
// estimates in the original call order. A call that fails estimation is
// simulated once more, purely to extract a readable revert reason; a
// simulation that unexpectedly succeeds is reported as an estimation
// issue rather than silently accepted.
func (s *Submitter) EstimateCalls(ctx context.Context, calls []types.Call) []types.CallEstimate {
	estimates := make([]types.CallEstimate, len(calls))
	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call types.Call) {
			defer wg.Done()
			estimates[i] = s.estimateOne(ctx, call)
		}(i, call)
	}
	wg.Wait()
	return estimates
}

func (s *Submitter) estimateOne(ctx context.Context, call types.Call) types.CallEstimate {
	msg := ethereum.CallMsg{
		From: s.session.From(),
		To:   &call.Address,
		Data: call.Calldata,
	}
	if call.Value != nil && call.Value.Sign() > 0 {
		msg.Value = call.Value
	}

	gas, err := s.session.EstimateGas(ctx, msg)
	if err == nil {
		return types.CallEstimate{Call: call, GasEstimate: new(big.Int).SetUint64(gas)}
	}

	log.Debug().Err(err).Str("to", call.Address.Hex()).Msg("Gas estimate failed, simulating call to extract error")

	if _, callErr := s.session.Call(ctx, msg); callErr != nil {
		return types.CallEstimate{Call: call, Err: &EstimationError{Reason: ReadableMessage(callErr)}}
	}

	log.Debug().Str("to", call.Address.Hex()).Msg("Unexpected successful call after failed gas estimate")
	return types.CallEstimate{Call: call, Err: errUnexpectedEstimate}
}

// SelectCandidate picks the call to submit. A candidate qualifies when
// its own estimate succeeded and the estimate of its immediate
// successor, if any, also succeeded; the first qualifying call wins.
// With no qualifying call the last estimation error is surfaced; with
// no errors at all the first estimate-free call is returned so the
// wallet can estimate on its own.
func SelectCandidate(estimates []types.CallEstimate) (types.CallEstimate, error) {
	for i, e := range estimates {
		if e.Estimated() && (i == len(estimates)-1 || estimates[i+1].Estimated()) {
			return e, nil
		}
	}

	var lastErr error
	for _, e := range estimates {
		if e.Err != nil {
			lastErr = e.Err
		}
	}
	if lastErr != nil {
		return types.CallEstimate{}, lastErr
	}

	for _, e := range estimates {
		if e.Err == nil {
			// submit without a gas limit and let the wallet estimate
			return types.CallEstimate{Call: e.Call}, nil
		}
	}

	return types.CallEstimate{}, ErrNoViableCall
}

// Submit estimates the candidates, picks one, and sends it through the
// signing session. User rejection maps to ErrRejected; any other send
// failure is wrapped with a readable message.
func (s *Submitter) Submit(ctx context.Context, calls []types.Call) (*ethtypes.Transaction, error) {
	estimates := s.EstimateCalls(ctx, calls)

	best, err := SelectCandidate(estimates)
	if err != nil {
		return nil, err
	}

	var gasLimit uint64
	if best.Estimated() {
		gasLimit = withMargin(best.GasEstimate)
	}

	tx, err := s.session.SendTransaction(ctx, best.Call.Address, best.Call.Calldata, best.Call.Value, gasLimit)
	if err != nil {
		if IsRejection(err) {
			return nil, ErrRejected
		}
		log.Error().
			Err(err).
			Str("to", best.Call.Address.Hex()).
			Str("value", valueString(best.Call.Value)).
			Msg("Trade submission failed")
		return nil, fmt.Errorf("%w: %s", ErrSubmissionFailed, ReadableMessage(err))
	}

	log.Info().
		Str("txHash", tx.Hash().Hex()).
		Str("to", best.Call.Address.Hex()).
		Uint64("gasLimit", gasLimit).
		Msg("Trade submitted")

	return tx, nil
}

// withMargin adds the fixed safety margin to a gas estimate.
func withMargin(estimate *big.Int) uint64 {
	margin := new(big.Int).Mul(estimate, gasMarginNum)
	return margin.Div(margin, gasMarginDenom).Uint64()
}

func valueString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
