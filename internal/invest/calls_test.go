package invest

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/friggtech/investcore/internal/router"
	"github.com/friggtech/investcore/internal/submit"
	"github.com/friggtech/investcore/pkg/types"
)

var (
	testRecipient = common.HexToAddress("0x0000000000000000000000000000000000001111")
	testAccount   = common.HexToAddress("0x0000000000000000000000000000000000002222")
	testWETH      = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
)

func testContract(t *testing.T) *router.Contract {
	t.Helper()
	contract, err := router.New(common.HexToAddress("0x00000000000000000000000000000000000000f0"))
	require.NoError(t, err)
	return contract
}

func buildParams(contract *router.Contract) BuildParams {
	return BuildParams{
		Contract:  contract,
		Recipient: testRecipient,
		Account:   testAccount,
		ChainID:   big.NewInt(1),
	}
}

func resolvedBuy(t *testing.T) *InvestmentTrade {
	t.Helper()
	amount := amountOf(usdc, 100_000_000)
	resolved := Resolve(types.ExactInput, types.MarketBuy, amount, &att,
		[]types.QuoteResult{validQuote(2_000_000, 2_000_000)})
	require.Equal(t, types.TradeValid, resolved.State)
	return resolved.Trade
}

func resolvedSell(t *testing.T) *InvestmentTrade {
	t.Helper()
	amount := amountOf(att, 1_000_000_000_000)
	resolved := Resolve(types.ExactInput, types.MarketSell, amount, &usdc,
		[]types.QuoteResult{validQuote(2_000_000, 2_000_000)})
	require.Equal(t, types.TradeValid, resolved.State)
	return resolved.Trade
}

func TestBuildCallsBuy(t *testing.T) {
	contract := testContract(t)
	trade := resolvedBuy(t)

	calls := BuildCalls(trade, buildParams(contract))
	require.Len(t, calls, 1)
	require.Equal(t, contract.Address(), calls[0].Address)
	require.Zero(t, calls[0].Value.Sign())

	// buy(token, amount) addresses the output token and carries the raw
	// input amount.
	want, err := contract.EncodeBuy(att.Address(), big.NewInt(100_000_000))
	require.NoError(t, err)
	require.Equal(t, want, calls[0].Calldata)
}

func TestBuildCallsSell(t *testing.T) {
	contract := testContract(t)
	trade := resolvedSell(t)

	calls := BuildCalls(trade, buildParams(contract))
	require.Len(t, calls, 1)

	// sell(token, amount) addresses the input token.
	want, err := contract.EncodeSell(att.Address(), big.NewInt(1_000_000_000_000))
	require.NoError(t, err)
	require.Equal(t, want, calls[0].Calldata)
}

func TestBuildCallsForwardsQueryFee(t *testing.T) {
	contract := testContract(t)
	params := buildParams(contract)
	params.QueryFee = big.NewInt(30_000_000_000_000)

	calls := BuildCalls(resolvedBuy(t), params)
	require.Len(t, calls, 1)
	require.Zero(t, calls[0].Value.Cmp(params.QueryFee))
}

func TestBuildCallsMissingDependencies(t *testing.T) {
	contract := testContract(t)
	trade := resolvedBuy(t)

	tests := []struct {
		name   string
		mutate func(*BuildParams)
	}{
		{"no contract", func(p *BuildParams) { p.Contract = nil }},
		{"no chain", func(p *BuildParams) { p.ChainID = nil }},
		{"zero chain", func(p *BuildParams) { p.ChainID = big.NewInt(0) }},
		{"no recipient", func(p *BuildParams) { p.Recipient = common.Address{} }},
		{"no account", func(p *BuildParams) { p.Account = common.Address{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := buildParams(contract)
			tt.mutate(&params)
			require.Nil(t, BuildCalls(trade, params))
		})
	}

	require.Nil(t, BuildCalls(nil, buildParams(contract)))
}

func TestBuildCallsRejectsNativeLegs(t *testing.T) {
	contract := testContract(t)

	// Hand-build a trade with a native input leg; the router only trades
	// token pairs, natives must be wrapped first.
	trade := &InvestmentTrade{
		Direction:    types.ExactInput,
		InputAmount:  *amountOf(native, 1_000_000_000_000_000_000),
		OutputAmount: *amountOf(att, 2_000_000),
		Investment:   Investment{Market: types.MarketBuy},
	}
	require.Nil(t, BuildCalls(trade, buildParams(contract)))
}

func TestBuildWrapCall(t *testing.T) {
	amount := big.NewInt(1_000_000_000_000_000_000)

	wrap := BuildWrapCall(types.RecordWrap, amount, testWETH)
	require.NotNil(t, wrap)
	require.Equal(t, testWETH, wrap.Address)
	require.Equal(t, router.EncodeDeposit(), wrap.Calldata)
	require.Zero(t, wrap.Value.Cmp(amount))

	unwrap := BuildWrapCall(types.RecordUnwrap, amount, testWETH)
	require.NotNil(t, unwrap)
	require.Equal(t, router.EncodeWithdraw(amount), unwrap.Calldata)
	require.Zero(t, unwrap.Value.Sign())

	require.Nil(t, BuildWrapCall(types.RecordWrap, big.NewInt(0), testWETH))
	require.Nil(t, BuildWrapCall(types.RecordWrap, amount, common.Address{}))
	require.Nil(t, BuildWrapCall(types.RecordBuy, amount, testWETH))
}

func TestEvaluateCallback(t *testing.T) {
	chainID := big.NewInt(1)
	calls := []types.Call{{Address: testWETH}}

	tests := []struct {
		name      string
		hasWallet bool
		account   common.Address
		chainID   *big.Int
		calls     []types.Call
		recipient common.Address
		requested bool
		state     CallbackState
		err       error
	}{
		{"ready", true, testAccount, chainID, calls, testRecipient, false, CallbackValid, nil},
		{"no wallet", false, testAccount, chainID, calls, testRecipient, false, CallbackInvalid, submit.ErrMissingDependencies},
		{"no account", true, common.Address{}, chainID, calls, testRecipient, false, CallbackInvalid, submit.ErrMissingDependencies},
		{"no chain", true, testAccount, nil, calls, testRecipient, false, CallbackInvalid, submit.ErrMissingDependencies},
		{"no calls", true, testAccount, chainID, nil, testRecipient, false, CallbackInvalid, submit.ErrMissingDependencies},
		{"recipient resolving", true, testAccount, chainID, calls, common.Address{}, false, CallbackLoading, nil},
		{"requested recipient unresolvable", true, testAccount, chainID, calls, common.Address{}, true, CallbackInvalid, submit.ErrInvalidRecipient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := EvaluateCallback(tt.hasWallet, tt.account, tt.chainID, tt.calls, tt.recipient, tt.requested)
			require.Equal(t, tt.state, cb.State)
			if tt.err != nil {
				require.ErrorIs(t, cb.Err, tt.err)
			} else {
				require.NoError(t, cb.Err)
			}
		})
	}
}
