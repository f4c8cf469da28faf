// Package lifecycle sequences the UI-facing state of a trade session
// and owns the process-wide display/watermark store.
package lifecycle

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
)

// Store is the process-wide display state shared by every widget
// surface: the transaction hash currently shown in the status dialog
// and the freshness watermark for quotes. The watermark only moves
// forward; racing confirmations resolving out of order can never
// regress it.
type Store struct {
	mu               sync.Mutex
	displayTxHash    common.Hash
	oldestValidBlock uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// SetDisplayTxHash records the transaction shown in the status dialog.
func (s *Store) SetDisplayTxHash(hash common.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayTxHash = hash
}

// ClearDisplayTxHash removes the displayed transaction.
func (s *Store) ClearDisplayTxHash() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayTxHash = common.Hash{}
}

// DisplayTxHash returns the currently displayed transaction hash, zero
// when none is shown.
func (s *Store) DisplayTxHash() common.Hash {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayTxHash
}

// SetOldestValidBlock advances the freshness watermark. Updates are a
// monotonic max: a lower block number than the current watermark is
// ignored.
func (s *Store) SetOldestValidBlock(block uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if block <= s.oldestValidBlock {
		return
	}
	s.oldestValidBlock = block
	log.Debug().Uint64("block", block).Msg("Freshness watermark advanced")
}

// OldestValidBlock returns the oldest block whose chain state is still
// valid for quoting. Zero means no confirmed trade has set a bound yet.
func (s *Store) OldestValidBlock() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.oldestValidBlock
}
