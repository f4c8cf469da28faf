package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/friggtech/investcore/internal/eth"
)

// Confirmer waits for a submitted transaction's first confirmation.
type Confirmer interface {
	WaitConfirmed(ctx context.Context, hash common.Hash) (*ethtypes.Receipt, error)
}

// PollingConfirmer polls the node for a receipt at a fixed interval.
type PollingConfirmer struct {
	caller  eth.Caller
	poll    time.Duration
	timeout time.Duration
}

// NewPollingConfirmer creates a confirmer polling at the given interval
// and giving up after the given timeout.
func NewPollingConfirmer(caller eth.Caller, poll, timeout time.Duration) *PollingConfirmer {
	return &PollingConfirmer{caller: caller, poll: poll, timeout: timeout}
}

// WaitConfirmed blocks until the transaction has one confirmation, the
// context ends, or the timeout elapses.
func (c *PollingConfirmer) WaitConfirmed(ctx context.Context, hash common.Hash) (*ethtypes.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		receipt, err := c.caller.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("confirmation wait for %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}
