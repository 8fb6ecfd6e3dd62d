package cli

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/theblitlabs/brandedtoken-go/internal/utils/errorutil"
	"github.com/theblitlabs/brandedtoken-go/pkg/abibin"
	"github.com/theblitlabs/brandedtoken-go/pkg/contractinteract"
	"github.com/theblitlabs/brandedtoken-go/pkg/keystore"
	"github.com/theblitlabs/brandedtoken-go/pkg/logger"
	"github.com/theblitlabs/brandedtoken-go/pkg/txsender"
)

const mineTimeout = 2 * time.Minute

// session bundles what a chain command needs: the signing key, a connected
// client and the metadata provider.
type session struct {
	key      *ecdsa.PrivateKey
	client   *txsender.Client
	provider *abibin.Provider
	registry *prometheus.Registry
	log      zerolog.Logger
}

func newSession(ctx context.Context) (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errorutil.WrapError(err, "invalid config")
	}

	ks, err := keystore.Default()
	if err != nil {
		return nil, err
	}
	key, err := ks.LoadPrivateKey()
	if err != nil {
		return nil, err
	}

	provider, err := newMetadataProvider()
	if err != nil {
		return nil, err
	}

	client, err := txsender.Dial(ctx, cfg.Ethereum.RPC, key, big.NewInt(cfg.Ethereum.ChainID),
		txsender.WithLogger(logger.Get()))
	if err != nil {
		return nil, err
	}

	return &session{
		key:      key,
		client:   client,
		provider: provider,
		registry: prometheus.NewRegistry(),
		log:      logger.WithComponent("cli"),
	}, nil
}

func (s *session) address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

func (s *session) txOptions() *txsender.TxOptions {
	return &txsender.TxOptions{
		From: s.address().Hex(),
		Gas:  cfg.Ethereum.GasLimit,
	}
}

func (s *session) brandedToken() (*contractinteract.BrandedToken, error) {
	if cfg.Ethereum.BrandedTokenAddress == "" {
		return nil, fmt.Errorf("ethereum.branded_token_address is required")
	}

	return contractinteract.NewBrandedToken(
		s.provider,
		s.client.Backend(),
		txsender.NewMetricsSender(s.client, s.registry),
		common.HexToAddress(cfg.Ethereum.BrandedTokenAddress),
		contractinteract.WithLogger(logger.Get()),
	)
}

// writeMetrics dumps the session registry to --metrics-file, if set.
func (s *session) writeMetrics() error {
	if metricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(metricsFile, s.registry); err != nil {
		return errorutil.WrapError(err, "failed to write metrics to %s", metricsFile)
	}
	return nil
}

// wait blocks until tx is mined and prints its hash to out.
func (s *session) wait(ctx context.Context, out io.Writer, tx *types.Transaction) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, mineTimeout)
	defer cancel()

	receipt, err := s.client.WaitMined(ctx, tx)
	if err != nil {
		return nil, errorutil.HandleContextError(s.log, ctx, err,
			"Timed out waiting for transaction to be mined", "Transaction failed")
	}

	s.log.Info().
		Str("tx_hash", tx.Hash().Hex()).
		Uint64("block", receipt.BlockNumber.Uint64()).
		Uint64("gas_used", receipt.GasUsed).
		Msg("Transaction mined")

	_, err = fmt.Fprintln(out, tx.Hash().Hex())
	return receipt, err
}

func parseAmount(name, value string) (*big.Int, error) {
	amount, ok := math.ParseBig256(value)
	if !ok || amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: --%s must be a positive integer, got %q", contractinteract.ErrInvalidAmount, name, value)
	}
	return amount, nil
}

func parseAddress(name, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%w: --%s %q", contractinteract.ErrInvalidAddress, name, value)
	}
	return common.HexToAddress(value), nil
}

func parseHash(value string) (common.Hash, error) {
	b, err := hexutil.Decode(value)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%w: %q", contractinteract.ErrInvalidStakeRequestHash, value)
	}
	return common.BytesToHash(b), nil
}
