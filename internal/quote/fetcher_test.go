package quote

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/friggtech/investcore/internal/router"
)

// fakeCaller serves canned call returns keyed by calldata.
type fakeCaller struct {
	blockNumber uint64
	blockErr    error
	returns     map[string][]byte
	callErrs    map[string]error
}

func (f *fakeCaller) BlockNumber(context.Context) (uint64, error) {
	return f.blockNumber, f.blockErr
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if err := f.callErrs[string(msg.Data)]; err != nil {
		return nil, err
	}
	return f.returns[string(msg.Data)], nil
}

func (f *fakeCaller) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeCaller) TransactionReceipt(context.Context, common.Hash) (*ethtypes.Receipt, error) {
	return nil, errors.New("not implemented")
}

// fixedWatermark is a FreshnessSource pinned to one block.
type fixedWatermark uint64

func (w fixedWatermark) OldestValidBlock() uint64 { return uint64(w) }

func tokenDataReturn(issuance, expiry int64) []byte {
	out := make([]byte, 64)
	big.NewInt(issuance).FillBytes(out[:32])
	big.NewInt(expiry).FillBytes(out[32:])
	return out
}

func quoteContract(t *testing.T) *router.Contract {
	t.Helper()
	contract, err := router.New(common.HexToAddress("0x00000000000000000000000000000000000000f0"))
	require.NoError(t, err)
	return contract
}

func TestFetchDecodesTokenData(t *testing.T) {
	contract := quoteContract(t)
	payload, err := contract.EncodeTokenData(common.HexToAddress("0x0000000000000000000000000000000000000A11"))
	require.NoError(t, err)

	caller := &fakeCaller{
		blockNumber: 100,
		returns:     map[string][]byte{string(payload): tokenDataReturn(2_000_000, 3_000_000)},
	}
	fetcher := NewFetcher(caller, nil)

	results := fetcher.Fetch(context.Background(), contract, [][]byte{payload})
	require.Len(t, results, 1)
	require.True(t, results[0].Valid)
	require.False(t, results[0].Loading)
	require.Zero(t, results[0].Data.IssuancePrice.Cmp(big.NewInt(2_000_000)))
	require.Zero(t, results[0].Data.ExpiryPrice.Cmp(big.NewInt(3_000_000)))
}

func TestFetchNoContractOrPayloads(t *testing.T) {
	fetcher := NewFetcher(&fakeCaller{}, nil)

	require.Empty(t, fetcher.Fetch(context.Background(), nil, [][]byte{{0x01}}))
	require.Empty(t, fetcher.Fetch(context.Background(), quoteContract(t), nil))
}

func TestFetchIsolatesFailures(t *testing.T) {
	contract := quoteContract(t)
	good := []byte{0x01}
	bad := []byte{0x02}
	undecodable := []byte{0x03}

	caller := &fakeCaller{
		blockNumber: 100,
		returns: map[string][]byte{
			string(good):        tokenDataReturn(2_000_000, 3_000_000),
			string(undecodable): {0xde, 0xad},
		},
		callErrs: map[string]error{string(bad): errors.New("execution reverted")},
	}
	fetcher := NewFetcher(caller, nil)

	results := fetcher.Fetch(context.Background(), contract, [][]byte{good, bad, undecodable})
	require.Len(t, results, 3)
	require.True(t, results[0].Valid)
	require.False(t, results[1].Valid)
	require.Nil(t, results[1].Data)
	require.False(t, results[2].Valid)
}

func TestFetchStaleStateStillLoading(t *testing.T) {
	contract := quoteContract(t)
	payload := []byte{0x01}
	caller := &fakeCaller{
		blockNumber: 99,
		returns:     map[string][]byte{string(payload): tokenDataReturn(2_000_000, 3_000_000)},
	}

	// Node is behind the confirmed-trade watermark: results are usable
	// only as loading placeholders.
	fetcher := NewFetcher(caller, fixedWatermark(100))
	results := fetcher.Fetch(context.Background(), contract, [][]byte{payload})
	require.Len(t, results, 1)
	require.True(t, results[0].Valid)
	require.True(t, results[0].Loading)

	// Node caught up: same fetch is fresh.
	caller.blockNumber = 100
	results = fetcher.Fetch(context.Background(), contract, [][]byte{payload})
	require.False(t, results[0].Loading)
}

func TestFetchFreshnessCheckFailuresAreFresh(t *testing.T) {
	contract := quoteContract(t)
	payload := []byte{0x01}
	caller := &fakeCaller{
		blockErr: errors.New("connection refused"),
		returns:  map[string][]byte{string(payload): tokenDataReturn(2_000_000, 3_000_000)},
	}
	fetcher := NewFetcher(caller, fixedWatermark(100))

	results := fetcher.Fetch(context.Background(), contract, [][]byte{payload})
	require.Len(t, results, 1)
	require.True(t, results[0].Valid)
	require.False(t, results[0].Loading)
}
