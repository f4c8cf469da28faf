package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the invest widget core
type Config struct {
	RPC     RPCConfig
	Router  RouterConfig
	Quoter  QuoterConfig
	Wallet  WalletConfig
	Trade   TradeConfig
	Logging LoggingConfig
}

// RPCConfig holds Ethereum RPC configuration
type RPCConfig struct {
	URL            string
	RetryAttempts  int
	RetryDelay     time.Duration
	RequestTimeout time.Duration
}

// RouterConfig holds investment-router deployment settings
type RouterConfig struct {
	Address string
	// QueryFeeWei is forwarded as native value on buy/sell calls when
	// the deployment charges an oracle/query fee. Zero means no fee.
	QueryFeeWei int64
	WETHAddress string
}

// QuoterConfig holds quote-refresh and confirmation-poll settings
type QuoterConfig struct {
	ConfirmPollInterval time.Duration
	ConfirmTimeout      time.Duration
}

// WalletConfig holds the local signing key used by the CLI session
type WalletConfig struct {
	PrivateKeyHex string
}

// TradeConfig describes the trade the CLI quotes and optionally executes
type TradeConfig struct {
	Market         string // "buy" or "sell"
	Direction      string // "exact_input" or "exact_output"
	Amount         string // human-readable amount of the specified side
	TokenAddress   string
	TokenDecimals  uint8
	TokenSymbol    string
	StableAddress  string
	StableDecimals uint8
	StableSymbol   string
	Execute        bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load reads configuration from environment and config file
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("rpc.url", "https://eth-mainnet.g.alchemy.com/v2/YOUR_API_KEY")
	v.SetDefault("rpc.retry_attempts", 3)
	v.SetDefault("rpc.retry_delay", "1s")
	v.SetDefault("rpc.request_timeout", "30s")

	v.SetDefault("router.address", "")
	v.SetDefault("router.query_fee_wei", 0)
	v.SetDefault("router.weth_address", "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")

	v.SetDefault("quoter.confirm_poll_interval", "4s")
	v.SetDefault("quoter.confirm_timeout", "10m")

	v.SetDefault("wallet.private_key_hex", "")

	v.SetDefault("trade.market", "buy")
	v.SetDefault("trade.direction", "exact_input")
	v.SetDefault("trade.amount", "100")
	v.SetDefault("trade.token_address", "")
	v.SetDefault("trade.token_decimals", 18)
	v.SetDefault("trade.token_symbol", "ATT")
	v.SetDefault("trade.stable_address", "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	v.SetDefault("trade.stable_decimals", 6)
	v.SetDefault("trade.stable_symbol", "USDC")
	v.SetDefault("trade.execute", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Environment variable support
	v.SetEnvPrefix("INVEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file support
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.investcore")

	// Read config file (optional)
	_ = v.ReadInConfig()

	retryDelay, _ := time.ParseDuration(v.GetString("rpc.retry_delay"))
	requestTimeout, _ := time.ParseDuration(v.GetString("rpc.request_timeout"))
	confirmPoll, _ := time.ParseDuration(v.GetString("quoter.confirm_poll_interval"))
	confirmTimeout, _ := time.ParseDuration(v.GetString("quoter.confirm_timeout"))

	cfg := &Config{
		RPC: RPCConfig{
			URL:            v.GetString("rpc.url"),
			RetryAttempts:  v.GetInt("rpc.retry_attempts"),
			RetryDelay:     retryDelay,
			RequestTimeout: requestTimeout,
		},
		Router: RouterConfig{
			Address:     v.GetString("router.address"),
			QueryFeeWei: v.GetInt64("router.query_fee_wei"),
			WETHAddress: v.GetString("router.weth_address"),
		},
		Quoter: QuoterConfig{
			ConfirmPollInterval: confirmPoll,
			ConfirmTimeout:      confirmTimeout,
		},
		Wallet: WalletConfig{
			PrivateKeyHex: v.GetString("wallet.private_key_hex"),
		},
		Trade: TradeConfig{
			Market:         v.GetString("trade.market"),
			Direction:      v.GetString("trade.direction"),
			Amount:         v.GetString("trade.amount"),
			TokenAddress:   v.GetString("trade.token_address"),
			TokenDecimals:  uint8(v.GetUint("trade.token_decimals")),
			TokenSymbol:    v.GetString("trade.token_symbol"),
			StableAddress:  v.GetString("trade.stable_address"),
			StableDecimals: uint8(v.GetUint("trade.stable_decimals")),
			StableSymbol:   v.GetString("trade.stable_symbol"),
			Execute:        v.GetBool("trade.execute"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	return cfg, nil
}
