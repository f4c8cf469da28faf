package invest

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	"github.com/friggtech/investcore/internal/router"
	"github.com/friggtech/investcore/pkg/types"
)

// SignatureData carries a permit-style approval signature. It is
// accepted for interface parity with the approval flow but not yet
// folded into the encoded call.
type SignatureData struct {
	V        uint8
	R, S     [32]byte
	Deadline *big.Int
}

// BuildParams gathers everything call construction depends on. Missing
// pieces mean "not ready", never an error.
type BuildParams struct {
	Contract  *router.Contract
	Recipient common.Address
	Account   common.Address
	ChainID   *big.Int
	// QueryFee, when set, is forwarded as the call's native value.
	QueryFee  *big.Int
	Signature *SignatureData
}

// BuildCalls encodes the on-chain call that executes the resolved
// trade. Returns zero or one call: zero when the trade is absent, a
// dependency is missing, or either leg is a native currency (native
// flows go through the separate wrap path).
func BuildCalls(trade *InvestmentTrade, params BuildParams) []types.Call {
	if trade == nil || params.Contract == nil || params.ChainID == nil || params.ChainID.Sign() == 0 {
		return nil
	}
	if params.Recipient == (common.Address{}) || params.Account == (common.Address{}) {
		return nil
	}
	if !trade.InputAmount.Currency().IsToken() || !trade.OutputAmount.Currency().IsToken() {
		return nil
	}

	var (
		calldata []byte
		err      error
	)
	switch trade.Investment.Market {
	case types.MarketBuy:
		calldata, err = buildBuyCalldata(trade, params.Contract)
	case types.MarketSell:
		calldata, err = buildSellCalldata(trade, params.Contract)
	default:
		return nil
	}
	if err != nil {
		log.Error().Err(err).Str("market", trade.Investment.Market.String()).Msg("Failed to encode trade call")
		return nil
	}

	value := big.NewInt(0)
	if params.QueryFee != nil && params.QueryFee.Sign() > 0 {
		value = new(big.Int).Set(params.QueryFee)
	}

	return []types.Call{{
		Address:  params.Contract.Address(),
		Calldata: calldata,
		Value:    value,
	}}
}

// buildBuyCalldata encodes buy(outputToken, rawInputAmount): the token
// leg of a buy is the output side.
func buildBuyCalldata(trade *InvestmentTrade, contract *router.Contract) ([]byte, error) {
	return contract.EncodeBuy(trade.OutputAmount.Currency().Address(), trade.InputAmount.Quotient())
}

// buildSellCalldata encodes sell(inputToken, rawInputAmount): the token
// leg of a sell is the input side.
func buildSellCalldata(trade *InvestmentTrade, contract *router.Contract) ([]byte, error) {
	return contract.EncodeSell(trade.InputAmount.Currency().Address(), trade.InputAmount.Quotient())
}

// BuildWrapCall encodes a wrapped-native deposit or withdrawal against
// the wrapped-native token at weth. Wrap amounts travel as call value,
// unwrap amounts in calldata.
func BuildWrapCall(kind types.RecordType, amount *big.Int, weth common.Address) *types.Call {
	if amount == nil || amount.Sign() <= 0 || weth == (common.Address{}) {
		return nil
	}
	switch kind {
	case types.RecordWrap:
		return &types.Call{
			Address:  weth,
			Calldata: router.EncodeDeposit(),
			Value:    new(big.Int).Set(amount),
		}
	case types.RecordUnwrap:
		return &types.Call{
			Address:  weth,
			Calldata: router.EncodeWithdraw(amount),
			Value:    big.NewInt(0),
		}
	}
	return nil
}
