package eth

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog/log"
)

// Session is the active signing session of the connected wallet: the
// sender's address plus the three operations the submitter drives.
// Wallet UX beyond this surface is out of scope.
type Session interface {
	// From returns the sending account.
	From() common.Address
	// EstimateGas probes the gas cost of the given call.
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	// Call simulates the given call without mutating state.
	Call(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
	// SendTransaction signs and broadcasts a transaction to the given
	// target. A zero gasLimit lets the session estimate on its own.
	SendTransaction(ctx context.Context, to common.Address, data []byte, value *big.Int, gasLimit uint64) (*types.Transaction, error)
}

// KeyedSession signs with a local private key over a Client. It stands
// in for a browser wallet in the CLI and in integration setups.
type KeyedSession struct {
	client *Client
	key    *ecdsa.PrivateKey
	from   common.Address
	signer types.Signer
}

// NewKeyedSession creates a session signing with the given key.
func NewKeyedSession(client *Client, key *ecdsa.PrivateKey) *KeyedSession {
	return &KeyedSession{
		client: client,
		key:    key,
		from:   crypto.PubkeyToAddress(key.PublicKey),
		signer: types.LatestSignerForChainID(client.ChainID()),
	}
}

// From returns the sending account.
func (s *KeyedSession) From() common.Address {
	return s.from
}

// EstimateGas probes the gas cost of the given call.
func (s *KeyedSession) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return s.client.EstimateGas(ctx, msg)
}

// Call simulates the given call without mutating state.
func (s *KeyedSession) Call(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return s.client.CallContract(ctx, msg, nil)
}

// SendTransaction signs and broadcasts a legacy transaction.
func (s *KeyedSession) SendTransaction(ctx context.Context, to common.Address, data []byte, value *big.Int, gasLimit uint64) (*types.Transaction, error) {
	nonce, err := s.client.PendingNonceAt(ctx, s.from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := s.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	if gasLimit == 0 {
		gasLimit, err = s.client.EstimateGas(ctx, ethereum.CallMsg{
			From:  s.from,
			To:    &to,
			Data:  data,
			Value: value,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to estimate gas: %w", err)
		}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, s.signer, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := s.client.SendTransaction(ctx, signed); err != nil {
		return nil, err
	}

	log.Debug().
		Str("txHash", signed.Hash().Hex()).
		Str("to", to.Hex()).
		Uint64("gasLimit", gasLimit).
		Msg("Transaction broadcast")

	return signed, nil
}
