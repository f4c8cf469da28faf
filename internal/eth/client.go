package eth

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog/log"

	"github.com/friggtech/investcore/internal/config"
)

// Caller is the read-only surface the quoter and submitter need from a
// node. Satisfied by Client and by test fakes.
type Caller interface {
	BlockNumber(ctx context.Context) (uint64, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Client wraps the Ethereum client with retry logic and convenience methods
type Client struct {
	client  *ethclient.Client
	cfg     config.RPCConfig
	chainID *big.Int
}

// NewClient creates a new Ethereum client
func NewClient(cfg config.RPCConfig) (*Client, error) {
	client, err := ethclient.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum node: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	log.Info().
		Str("url", cfg.URL).
		Str("chainID", chainID.String()).
		Msg("Connected to Ethereum node")

	return &Client{
		client:  client,
		cfg:     cfg,
		chainID: chainID,
	}, nil
}

// Close closes the client connection
func (c *Client) Close() {
	c.client.Close()
}

// ChainID returns the chain ID
func (c *Client) ChainID() *big.Int {
	return c.chainID
}

// BlockNumber returns the latest block number with retry
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var blockNum uint64
	var err error

	for i := 0; i < c.cfg.RetryAttempts; i++ {
		blockNum, err = c.client.BlockNumber(ctx)
		if err == nil {
			return blockNum, nil
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("Failed to get block number, retrying...")
		time.Sleep(c.cfg.RetryDelay)
	}

	return 0, fmt.Errorf("failed to get block number after %d attempts: %w", c.cfg.RetryAttempts, err)
}

// CallContract executes a read-only contract call with retry
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	var result []byte
	var err error

	for i := 0; i < c.cfg.RetryAttempts; i++ {
		result, err = c.client.CallContract(ctx, msg, blockNumber)
		if err == nil {
			return result, nil
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("Failed to call contract, retrying...")
		time.Sleep(c.cfg.RetryDelay)
	}

	return nil, fmt.Errorf("failed to call contract after %d attempts: %w", c.cfg.RetryAttempts, err)
}

// EstimateGas probes the gas cost of a call. No retry: a failed
// estimate usually means the call reverts, and the submitter follows up
// with a simulation to extract the reason.
func (c *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return c.client.EstimateGas(ctx, msg)
}

// TransactionReceipt returns the receipt of a transaction with retry
func (c *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt
	var err error

	for i := 0; i < c.cfg.RetryAttempts; i++ {
		receipt, err = c.client.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("Failed to get receipt, retrying...")
		time.Sleep(c.cfg.RetryDelay)
	}

	return nil, fmt.Errorf("failed to get receipt after %d attempts: %w", c.cfg.RetryAttempts, err)
}

// PendingNonceAt returns the next nonce for an account
func (c *Client) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return c.client.PendingNonceAt(ctx, account)
}

// SuggestGasPrice returns the node's suggested gas price
func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return c.client.SuggestGasPrice(ctx)
}

// SendTransaction broadcasts a signed transaction
func (c *Client) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	return c.client.SendTransaction(ctx, tx)
}
