package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TradeDirection indicates which side of the trade the user fixed.
type TradeDirection int

const (
	// ExactInput means the input amount is fixed and the output is computed.
	ExactInput TradeDirection = iota
	// ExactOutput means the output amount is fixed and the input is computed.
	ExactOutput
)

func (d TradeDirection) String() string {
	switch d {
	case ExactInput:
		return "exact_input"
	case ExactOutput:
		return "exact_output"
	}
	return "unknown"
}

// MarketType selects the pricing and call-encoding variant for a trade.
type MarketType int

const (
	// MarketBuy prices against the router's issuance rate.
	MarketBuy MarketType = iota
	// MarketSell prices against the router's expiry rate.
	MarketSell
	// MarketSwap bypasses router pricing and uses routed liquidity.
	// Routing itself is out of scope; the variant exists so lifecycle
	// and record types can represent it.
	MarketSwap
)

func (m MarketType) String() string {
	switch m {
	case MarketBuy:
		return "buy"
	case MarketSell:
		return "sell"
	case MarketSwap:
		return "swap"
	}
	return "unknown"
}

// TradeState is the settlement state of an asynchronously resolved trade.
type TradeState int

const (
	// TradeLoading means quotes are still pending and no trade could be determined.
	TradeLoading TradeState = iota
	// TradeInvalid means no quote, zero rate, or a degenerate currency pair.
	TradeInvalid
	// TradeValid means a priced trade is available.
	TradeValid
	// TradeSyncing means a trade is available but quotes are refreshing.
	TradeSyncing
)

func (s TradeState) String() string {
	switch s {
	case TradeLoading:
		return "loading"
	case TradeInvalid:
		return "invalid"
	case TradeValid:
		return "valid"
	case TradeSyncing:
		return "syncing"
	}
	return "unknown"
}

// TokenData is the decoded return of the router's tokenData call: the
// issuance (buy-side) and expiry (sell-side) conversion rates in raw
// contract units.
type TokenData struct {
	IssuancePrice *big.Int
	ExpiryPrice   *big.Int
}

// QuoteResult is the outcome of a single read-only quote call. Results
// for different calls resolve independently; Loading and Valid are
// per-entry flags, never aggregated.
type QuoteResult struct {
	Loading bool
	Valid   bool
	Data    *TokenData
}

// Call is a fully-formed unsent transaction payload.
type Call struct {
	Address  common.Address
	Calldata []byte
	Value    *big.Int
}

// CallEstimate is a Call tagged with either a gas estimate or the error
// that prevented one. Exactly one of GasEstimate and Err is set.
type CallEstimate struct {
	Call        Call
	GasEstimate *big.Int
	Err         error
}

// Estimated reports whether gas estimation succeeded for this call.
func (e CallEstimate) Estimated() bool {
	return e.GasEstimate != nil
}

// RecordType labels a submitted transaction for the external record sink.
type RecordType string

const (
	RecordBuy    RecordType = "buy"
	RecordSell   RecordType = "sell"
	RecordWrap   RecordType = "wrap"
	RecordUnwrap RecordType = "unwrap"
	RecordSwap   RecordType = "swap"
)

// TransactionRecord is handed to the external record sink after a
// successful submission. Persistence and history are owned elsewhere.
type TransactionRecord struct {
	Type      RecordType
	Hash      common.Hash
	Direction TradeDirection
	// Raw input/output amounts of the trade, when the record describes
	// a buy/sell/swap. Wrap records carry the wrapped value in InputRaw.
	InputRaw  *big.Int
	OutputRaw *big.Int
}
