// Package txsender signs and submits contract transactions over Ethereum
// JSON-RPC.
package txsender

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
)

// Sender submits call data to a contract.
type Sender interface {
	SendTransaction(ctx context.Context, to common.Address, data []byte, opts *TxOptions) (*types.Transaction, error)
}

// Backend is the node access a Client needs.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Client is a Sender that signs locally and submits through a Backend.
type Client struct {
	backend Backend
	signer  bind.SignerFn
	logger  zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the Client logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger.With().Str("component", "txsender").Logger()
	}
}

// NewClient creates a Client. signer is typically the Signer of a keyed
// bind.TransactOpts.
func NewClient(backend Backend, signer bind.SignerFn, opts ...ClientOption) *Client {
	c := &Client{
		backend: backend,
		signer:  signer,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial connects to rpcURL and returns a Client signing with key.
func Dial(ctx context.Context, rpcURL string, key *ecdsa.PrivateKey, chainID *big.Int, opts ...ClientOption) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum node: %w", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	return NewClient(eth, auth.Signer, opts...), nil
}

// Backend returns the node access used by the Client.
func (c *Client) Backend() Backend {
	return c.backend
}

// SendTransaction builds, signs and submits a legacy transaction calling to
// with data.
func (c *Client) SendTransaction(ctx context.Context, to common.Address, data []byte, opts *TxOptions) (*types.Transaction, error) {
	if err := ValidateTxOptions(opts); err != nil {
		return nil, err
	}
	from := opts.FromAddress()

	value := opts.Value
	if value == nil {
		value = new(big.Int)
	}

	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice := opts.GasPrice
	if gasPrice == nil {
		gasPrice, err = c.backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest gas price: %w", err)
		}
	}

	gas := opts.Gas
	if gas == 0 {
		gas, err = c.backend.EstimateGas(ctx, ethereum.CallMsg{
			From:     from,
			To:       &to,
			GasPrice: gasPrice,
			Value:    value,
			Data:     data,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to estimate gas: %w", err)
		}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := c.signer(from, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		c.logger.Error().
			Err(err).
			Str("from", from.Hex()).
			Str("to", to.Hex()).
			Msg("Failed to submit transaction")
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	c.logger.Info().
		Str("tx_hash", signed.Hash().Hex()).
		Str("from", from.Hex()).
		Str("to", to.Hex()).
		Uint64("nonce", nonce).
		Uint64("gas", gas).
		Msg("Transaction submitted")

	return signed, nil
}

// WaitMined blocks until tx is mined and fails if it reverted.
func (c *Client) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("transaction %s: %w", tx.Hash().Hex(), ErrTransactionFailed)
	}
	return receipt, nil
}
