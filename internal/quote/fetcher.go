// Package quote issues the read-only price-source calls behind a trade
// quote and reports each call's state independently.
package quote

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/rs/zerolog/log"

	"github.com/friggtech/investcore/internal/eth"
	"github.com/friggtech/investcore/internal/router"
	"github.com/friggtech/investcore/pkg/types"
)

// FreshnessSource exposes the oldest block whose state is still valid
// for quoting. Results computed against older state are reported as
// still loading so callers refetch instead of pricing stale data.
type FreshnessSource interface {
	OldestValidBlock() uint64
}

// Fetcher batch-issues quote calls against a router contract.
type Fetcher struct {
	caller    eth.Caller
	freshness FreshnessSource
}

// NewFetcher creates a fetcher reading through the given caller. The
// freshness source may be nil, in which case every result is fresh.
func NewFetcher(caller eth.Caller, freshness FreshnessSource) *Fetcher {
	return &Fetcher{caller: caller, freshness: freshness}
}

// Fetch issues one read call per payload and returns one QuoteResult
// per payload, in input order. A nil contract yields an empty slice:
// callers treat that as "no quotes available", not as still loading.
// Individual call failures mark only their own entry invalid.
func (f *Fetcher) Fetch(ctx context.Context, contract *router.Contract, calldatas [][]byte) []types.QuoteResult {
	if contract == nil || len(calldatas) == 0 {
		return []types.QuoteResult{}
	}

	stale := f.isStale(ctx)

	results := make([]types.QuoteResult, len(calldatas))
	var wg sync.WaitGroup
	for i, data := range calldatas {
		wg.Add(1)
		go func(i int, data []byte) {
			defer wg.Done()
			results[i] = f.fetchOne(ctx, contract, data, stale)
		}(i, data)
	}
	wg.Wait()

	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, contract *router.Contract, data []byte, stale bool) types.QuoteResult {
	to := contract.Address()
	ret, err := f.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		log.Debug().Err(err).Str("router", to.Hex()).Msg("Quote call failed")
		return types.QuoteResult{Valid: false}
	}

	issuance, expiry, err := contract.DecodeTokenData(ret)
	if err != nil {
		log.Debug().Err(err).Str("router", to.Hex()).Msg("Quote return undecodable")
		return types.QuoteResult{Valid: false}
	}

	return types.QuoteResult{
		Loading: stale,
		Valid:   true,
		Data: &types.TokenData{
			IssuancePrice: issuance,
			ExpiryPrice:   expiry,
		},
	}
}

// isStale reports whether the node's view predates the freshness
// watermark advanced by confirmed trades.
func (f *Fetcher) isStale(ctx context.Context) bool {
	if f.freshness == nil {
		return false
	}
	oldestValid := f.freshness.OldestValidBlock()
	if oldestValid == 0 {
		return false
	}

	blockNum, err := f.caller.BlockNumber(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read block number for freshness check")
		return false
	}
	return blockNum < oldestValid
}
