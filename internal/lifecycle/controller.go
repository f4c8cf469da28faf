package lifecycle

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"

	"github.com/friggtech/investcore/internal/submit"
	"github.com/friggtech/investcore/pkg/types"
)

// State is the lifecycle phase of a trade session.
type State int

const (
	// Idle: no review in progress.
	Idle State = iota
	// AwaitingConfirmation: review dialog open, user deciding.
	AwaitingConfirmation
	// Submitting: wallet prompt outstanding.
	Submitting
	// Pending: transaction broadcast, confirmation not yet observed.
	Pending
	// Settled: first confirmation observed.
	Settled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	case Submitting:
		return "submitting"
	case Pending:
		return "pending"
	case Settled:
		return "settled"
	}
	return "unknown"
}

// RecordSink receives a record after each successful submission. It
// owns persistence and history; this core only notifies it.
type RecordSink interface {
	Add(record types.TransactionRecord)
}

// AnimationSignal reports whether a UI animation is in flight and
// schedules work for when it completes. The core's state transitions
// never wait on it; only visual closes are deferred through it.
type AnimationSignal interface {
	IsAnimating() bool
	OnAnimationEnd(fn func())
}

// Submitter is the slice of the gas-estimating submitter the controller
// drives.
type Submitter interface {
	Submit(ctx context.Context, calls []types.Call) (*ethtypes.Transaction, error)
}

// Controller sequences UI-facing trade state: the wallet-prompt pending
// flag, the review dialog, and post-submission bookkeeping.
type Controller struct {
	store     *Store
	sink      RecordSink
	anim      AnimationSignal
	confirmer Confirmer

	// onVisualClose, when set, performs the visual dialog close. It may
	// run deferred, after in-flight animations finish; the state
	// transition it trails has already happened.
	onVisualClose func()

	mu            sync.Mutex
	state         State
	pendingWallet bool
	lastErr       error
}

// NewController creates a controller in the Idle state.
func NewController(store *Store, sink RecordSink, anim AnimationSignal, confirmer Confirmer) *Controller {
	return &Controller{
		store:     store,
		sink:      sink,
		anim:      anim,
		confirmer: confirmer,
	}
}

// SetVisualCloser installs the callback performing the visual dialog close.
func (c *Controller) SetVisualCloser(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onVisualClose = fn
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PendingWallet reports whether a wallet prompt is outstanding.
func (c *Controller) PendingWallet() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingWallet
}

// LastError returns the classified error of the most recent failed
// submission, nil after a success or before any attempt.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// OpenReview opens the review dialog. Requires a valid, non-disabled
// trade; returns whether the dialog opened.
func (c *Controller) OpenReview(tradeState types.TradeState, disabled bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if disabled || tradeState != types.TradeValid || c.state != Idle {
		return false
	}
	c.state = AwaitingConfirmation
	return true
}

// TradeChanged is called whenever the resolved trade updates. The
// wallet-prompt flag always clears, even if a submission attempt is
// still outstanding; in-flight submissions are not cancelled, only
// their UI-blocking indicator. A cleared trade also closes the review
// dialog.
func (c *Controller) TradeChanged(hasTrade bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingWallet = false
	if !hasTrade && c.state == AwaitingConfirmation {
		c.state = Idle
	}
}

// InputEdited is called when the user edits the specified amount.
func (c *Controller) InputEdited() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingWallet = false
}

// ChainChanged forces the dialog closed regardless of prior state.
func (c *Controller) ChainChanged() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle
	c.pendingWallet = false
}

// DisplayClosed is called when the user dismisses the status dialog.
func (c *Controller) DisplayClosed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.ClearDisplayTxHash()
	if c.state == Settled || c.state == Pending {
		c.state = Idle
	}
}

// Execute submits the candidate calls through the submitter and runs
// the post-submission bookkeeping: record sink notification, display
// hash, deferred visual close, and the fire-and-forget confirmation
// wait that advances the freshness watermark. The record callback
// builds the sink payload from the submitted hash.
//
// On failure the session returns to AwaitingConfirmation with the
// classified error retained; the dialog stays open and the pending flag
// clears.
func (c *Controller) Execute(ctx context.Context, submitter Submitter, calls []types.Call, record func(hash common.Hash) types.TransactionRecord) error {
	c.mu.Lock()
	if c.state != AwaitingConfirmation {
		c.mu.Unlock()
		return submit.ErrMissingDependencies
	}
	c.state = Submitting
	c.pendingWallet = true
	c.lastErr = nil
	c.mu.Unlock()

	tx, err := submitter.Submit(ctx, calls)

	c.mu.Lock()
	if err != nil {
		c.state = AwaitingConfirmation
		c.pendingWallet = false
		c.lastErr = err
		c.mu.Unlock()
		log.Warn().Err(err).Msg("Trade submission failed")
		return err
	}

	hash := tx.Hash()
	c.state = Pending
	c.store.SetDisplayTxHash(hash)
	c.mu.Unlock()

	if c.sink != nil {
		c.sink.Add(record(hash))
	}

	// The state moved to Pending above; only the visual close waits for
	// any in-flight animation, so the status dialog doesn't cover a
	// dialog that is still animating shut.
	c.scheduleVisualClose()

	go c.watchConfirmation(ctx, hash)

	return nil
}

// scheduleVisualClose runs the visual close now, or after the current
// animation if one is in flight.
func (c *Controller) scheduleVisualClose() {
	c.mu.Lock()
	fn := c.onVisualClose
	anim := c.anim
	c.mu.Unlock()
	if fn == nil {
		return
	}
	if anim != nil && anim.IsAnimating() {
		anim.OnAnimationEnd(fn)
		return
	}
	fn()
}

// watchConfirmation waits for the first confirmation and advances the
// freshness watermark to the containing block, so the completed trade's
// impact is reflected in future quotes. The submission flow never
// blocks on it.
func (c *Controller) watchConfirmation(ctx context.Context, hash common.Hash) {
	if c.confirmer == nil {
		return
	}
	receipt, err := c.confirmer.WaitConfirmed(ctx, hash)
	if err != nil {
		log.Warn().Err(err).Str("txHash", hash.Hex()).Msg("Confirmation wait ended without receipt")
		return
	}

	c.store.SetOldestValidBlock(receipt.BlockNumber.Uint64())

	c.mu.Lock()
	if c.state == Pending && c.store.DisplayTxHash() == hash {
		c.state = Settled
	}
	c.mu.Unlock()

	log.Info().
		Str("txHash", hash.Hex()).
		Uint64("block", receipt.BlockNumber.Uint64()).
		Msg("Trade confirmed")
}

