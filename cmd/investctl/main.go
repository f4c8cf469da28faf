package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog/log"

	"github.com/friggtech/investcore/internal/config"
	"github.com/friggtech/investcore/internal/currency"
	"github.com/friggtech/investcore/internal/eth"
	"github.com/friggtech/investcore/internal/invest"
	"github.com/friggtech/investcore/internal/lifecycle"
	"github.com/friggtech/investcore/internal/output"
	"github.com/friggtech/investcore/internal/quote"
	"github.com/friggtech/investcore/internal/router"
	"github.com/friggtech/investcore/internal/submit"
	"github.com/friggtech/investcore/pkg/types"
)

// Widget is the CLI-facing assembly of the quoting and submission core.
type Widget struct {
	client     *eth.Client
	session    eth.Session
	contract   *router.Contract
	fetcher    *quote.Fetcher
	submitter  *submit.Submitter
	store      *lifecycle.Store
	controller *lifecycle.Controller
	logger     *output.Logger
	cfg        *config.Config
}

// recordSink logs submitted transactions; history persistence lives
// outside this repository.
type recordSink struct {
	logger *output.Logger
}

func (s *recordSink) Add(record types.TransactionRecord) {
	s.logger.LogSubmission(record)
}

// NewWidget wires the core from configuration.
func NewWidget(cfg *config.Config) (*Widget, error) {
	lgr := output.NewLogger(cfg.Logging)

	client, err := eth.NewClient(cfg.RPC)
	if err != nil {
		return nil, err
	}

	if cfg.Router.Address == "" {
		return nil, fmt.Errorf("router address not configured")
	}
	contract, err := router.New(common.HexToAddress(cfg.Router.Address))
	if err != nil {
		return nil, err
	}

	store := lifecycle.NewStore()
	fetcher := quote.NewFetcher(client, store)

	var session eth.Session
	if cfg.Wallet.PrivateKeyHex != "" {
		key, err := crypto.HexToECDSA(cfg.Wallet.PrivateKeyHex)
		if err != nil {
			return nil, fmt.Errorf("failed to parse wallet key: %w", err)
		}
		session = eth.NewKeyedSession(client, key)
	}

	var submitter *submit.Submitter
	if session != nil {
		submitter = submit.NewSubmitter(session)
	}

	confirmer := lifecycle.NewPollingConfirmer(client, cfg.Quoter.ConfirmPollInterval, cfg.Quoter.ConfirmTimeout)
	controller := lifecycle.NewController(store, &recordSink{logger: lgr}, nil, confirmer)

	return &Widget{
		client:     client,
		session:    session,
		contract:   contract,
		fetcher:    fetcher,
		submitter:  submitter,
		store:      store,
		controller: controller,
		logger:     lgr,
		cfg:        cfg,
	}, nil
}

// Close shuts down the widget
func (w *Widget) Close() {
	w.client.Close()
}

// tradeInputs translates the configured trade into resolver inputs.
func (w *Widget) tradeInputs() (types.TradeDirection, types.MarketType, *currency.CurrencyAmount, *currency.Currency, error) {
	tc := w.cfg.Trade

	var market types.MarketType
	switch tc.Market {
	case "buy":
		market = types.MarketBuy
	case "sell":
		market = types.MarketSell
	default:
		return 0, 0, nil, nil, fmt.Errorf("unknown market type %q", tc.Market)
	}

	direction := types.ExactInput
	if tc.Direction == "exact_output" {
		direction = types.ExactOutput
	}

	if tc.TokenAddress == "" {
		return 0, 0, nil, nil, fmt.Errorf("token address not configured")
	}
	token := currency.NewToken(common.HexToAddress(tc.TokenAddress), tc.TokenDecimals, tc.TokenSymbol)
	stable := currency.NewToken(common.HexToAddress(tc.StableAddress), tc.StableDecimals, tc.StableSymbol)

	// Buying fixes the stablecoin side by default; selling fixes the
	// token side. The other leg is computed from the quote.
	var specified, other currency.Currency
	if market == types.MarketBuy {
		specified, other = stable, token
	} else {
		specified, other = token, stable
	}
	if direction == types.ExactOutput {
		specified, other = other, specified
	}

	amount := currency.ParseAmount(tc.Amount, specified)
	if amount == nil {
		return 0, 0, nil, nil, fmt.Errorf("unparsable trade amount %q", tc.Amount)
	}

	return direction, market, amount, &other, nil
}

// Run quotes the configured trade and, when execution is enabled and a
// wallet key is present, submits it.
func (w *Widget) Run(ctx context.Context) error {
	direction, market, amount, other, err := w.tradeInputs()
	if err != nil {
		return err
	}

	var currencyIn, currencyOut currency.Currency
	if direction == types.ExactInput {
		currencyIn, currencyOut = amount.Currency(), *other
	} else {
		currencyIn, currencyOut = *other, amount.Currency()
	}

	payloads := invest.QuotePayloads(w.contract, market, &currencyIn, &currencyOut)
	quotes := w.fetcher.Fetch(ctx, w.contract, payloads)
	w.logger.LogQuotes(quotes)

	resolved := invest.Resolve(direction, market, amount, other, quotes)
	w.logger.LogResolved(resolved)

	if resolved.State != types.TradeValid {
		return fmt.Errorf("trade not resolvable: state %s", resolved.State)
	}

	if !w.cfg.Trade.Execute {
		return nil
	}
	if w.session == nil {
		return fmt.Errorf("execution requested but no wallet key configured")
	}

	account := w.session.From()
	calls := invest.BuildCalls(resolved.Trade, invest.BuildParams{
		Contract:  w.contract,
		Recipient: account,
		Account:   account,
		ChainID:   w.client.ChainID(),
		QueryFee:  big.NewInt(w.cfg.Router.QueryFeeWei),
	})

	gate := invest.EvaluateCallback(true, account, w.client.ChainID(), calls, account, false)
	if gate.State != invest.CallbackValid {
		return fmt.Errorf("trade not executable: %w", gate.Err)
	}

	if !w.controller.OpenReview(resolved.State, false) {
		return fmt.Errorf("trade review could not be opened")
	}

	trade := resolved.Trade
	err = w.controller.Execute(ctx, w.submitter, calls, func(hash common.Hash) types.TransactionRecord {
		recordType := types.RecordBuy
		if trade.Investment.Market == types.MarketSell {
			recordType = types.RecordSell
		}
		return types.TransactionRecord{
			Type:      recordType,
			Hash:      hash,
			Direction: trade.Direction,
			InputRaw:  trade.InputAmount.Quotient(),
			OutputRaw: trade.OutputAmount.Quotient(),
		}
	})
	if err != nil {
		return err
	}

	log.Info().Str("txHash", w.store.DisplayTxHash().Hex()).Msg("Waiting for confirmation")

	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Create widget
	widget, err := NewWidget(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create widget")
	}
	defer widget.Close()

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := widget.Run(ctx); err != nil && err != context.Canceled {
		widget.logger.LogStats()
		log.Fatal().Err(err).Msg("Widget error")
	}

	widget.logger.LogStats()
}
