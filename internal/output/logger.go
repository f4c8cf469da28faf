package output

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/friggtech/investcore/internal/config"
	"github.com/friggtech/investcore/internal/invest"
	"github.com/friggtech/investcore/pkg/types"
)

// Logger handles output formatting for the widget core
type Logger struct {
	stats *Stats
}

// Stats tracks quoting and submission statistics
type Stats struct {
	QuotesFetched   uint64
	TradesResolved  uint64
	TradesInvalid   uint64
	TradesSubmitted uint64
	StartTime       time.Time
}

// NewLogger creates a new logger
func NewLogger(cfg config.LoggingConfig) *Logger {
	// Configure zerolog
	switch cfg.Format {
	case "json":
		// Default JSON output
	case "console":
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		})
	}

	// Set log level
	switch cfg.Level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}

	return &Logger{
		stats: &Stats{
			StartTime: time.Now(),
		},
	}
}

// LogQuotes logs a fetched quote batch (debug level)
func (l *Logger) LogQuotes(quotes []types.QuoteResult) {
	l.stats.QuotesFetched += uint64(len(quotes))

	for i, q := range quotes {
		ev := log.Debug().
			Int("index", i).
			Bool("loading", q.Loading).
			Bool("valid", q.Valid)
		if q.Data != nil {
			ev = ev.
				Str("issuancePrice", q.Data.IssuancePrice.String()).
				Str("expiryPrice", q.Data.ExpiryPrice.String())
		}
		ev.Msg("Quote fetched")
	}
}

// LogResolved logs the outcome of a resolution pass
func (l *Logger) LogResolved(resolved invest.ResolvedTrade) {
	if resolved.Trade == nil {
		l.stats.TradesInvalid++
		log.Debug().
			Str("state", resolved.State.String()).
			Msg("No trade resolved")
		return
	}

	l.stats.TradesResolved++
	trade := resolved.Trade
	log.Info().
		Str("state", resolved.State.String()).
		Str("market", trade.Investment.Market.String()).
		Str("direction", trade.Direction.String()).
		Str("amountIn", trade.InputAmount.Display()+" "+trade.InputAmount.Currency().Symbol()).
		Str("amountOut", trade.OutputAmount.Display()+" "+trade.OutputAmount.Currency().Symbol()).
		Msg("Trade resolved")
}

// LogSubmission logs a successful submission
func (l *Logger) LogSubmission(record types.TransactionRecord) {
	l.stats.TradesSubmitted++

	log.Info().
		Str("txHash", record.Hash.Hex()).
		Str("type", string(record.Type)).
		Msg("Transaction recorded")
}

// LogStats logs current statistics
func (l *Logger) LogStats() {
	elapsed := time.Since(l.stats.StartTime)

	log.Info().
		Uint64("quotesFetched", l.stats.QuotesFetched).
		Uint64("tradesResolved", l.stats.TradesResolved).
		Uint64("tradesInvalid", l.stats.TradesInvalid).
		Uint64("tradesSubmitted", l.stats.TradesSubmitted).
		Dur("uptime", elapsed).
		Msg("Widget core stats")
}

// LogError logs an error
func (l *Logger) LogError(err error, context string) {
	log.Error().
		Err(err).
		Str("context", context).
		Msg("Error occurred")
}

// GetStats returns current statistics
func (l *Logger) GetStats() *Stats {
	return l.stats
}
