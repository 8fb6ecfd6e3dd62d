// Package contractinteract builds and submits transactions for the
// BrandedToken contract suite.
package contractinteract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/theblitlabs/brandedtoken-go/pkg/txsender"
)

// BrandedTokenContractName is the metadata key of the BrandedToken contract.
const BrandedTokenContractName = "BrandedToken"

var errNoCaller = errors.New("no contract caller configured")

// ABIProvider resolves parsed contract ABIs by contract name.
type ABIProvider interface {
	ContractABI(contractName string) (abi.ABI, error)
}

// StakeRequest is a pending request as stored by the contract.
type StakeRequest struct {
	Staker common.Address
	Stake  *big.Int
	Nonce  *big.Int
}

// BrandedToken wraps a deployed BrandedToken contract.
type BrandedToken struct {
	address  common.Address
	abi      abi.ABI
	contract *bind.BoundContract
	sender   txsender.Sender
	logger   zerolog.Logger
}

// Option configures a BrandedToken.
type Option func(*BrandedToken)

// WithLogger sets the logger used for submitted transactions.
func WithLogger(logger zerolog.Logger) Option {
	return func(bt *BrandedToken) {
		bt.logger = logger
	}
}

// NewBrandedToken binds the contract at address. caller serves read-only
// calls and may be nil when only transactions are sent.
func NewBrandedToken(provider ABIProvider, caller bind.ContractCaller, sender txsender.Sender, address common.Address, opts ...Option) (*BrandedToken, error) {
	if address == (common.Address{}) {
		return nil, fmt.Errorf("%w: branded token address is missing", ErrInvalidAddress)
	}

	parsed, err := provider.ContractABI(BrandedTokenContractName)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s abi: %w", BrandedTokenContractName, err)
	}

	bt := &BrandedToken{
		address: address,
		abi:     parsed,
		sender:  sender,
		logger:  zerolog.Nop(),
	}
	if caller != nil {
		bt.contract = bind.NewBoundContract(address, parsed, caller, nil, nil)
	}
	for _, opt := range opts {
		opt(bt)
	}
	bt.logger = bt.logger.With().
		Str("component", "branded_token").
		Str("address", address.Hex()).
		Logger()
	return bt, nil
}

// Address returns the contract address.
func (bt *BrandedToken) Address() common.Address {
	return bt.address
}

// RequestStakeData packs a requestStake call staking stake value tokens for
// mint branded tokens.
func (bt *BrandedToken) RequestStakeData(stake, mint *big.Int) ([]byte, error) {
	if stake == nil || stake.Sign() <= 0 {
		return nil, fmt.Errorf("%w: stake amount %v", ErrInvalidAmount, stake)
	}
	if mint == nil || mint.Sign() < 0 {
		return nil, fmt.Errorf("%w: mint amount %v", ErrInvalidAmount, mint)
	}
	return bt.abi.Pack("requestStake", stake, mint)
}

// AcceptStakeRequestData packs an acceptStakeRequest call.
func (bt *BrandedToken) AcceptStakeRequestData(stakeRequestHash common.Hash, sig StakeRequestSignature) ([]byte, error) {
	if err := validateHash(stakeRequestHash); err != nil {
		return nil, err
	}
	return bt.abi.Pack("acceptStakeRequest", stakeRequestHash, sig.R, sig.S, sig.V)
}

// RejectStakeRequestData packs a rejectStakeRequest call.
func (bt *BrandedToken) RejectStakeRequestData(stakeRequestHash common.Hash) ([]byte, error) {
	if err := validateHash(stakeRequestHash); err != nil {
		return nil, err
	}
	return bt.abi.Pack("rejectStakeRequest", stakeRequestHash)
}

// RevokeStakeRequestData packs a revokeStakeRequest call.
func (bt *BrandedToken) RevokeStakeRequestData(stakeRequestHash common.Hash) ([]byte, error) {
	if err := validateHash(stakeRequestHash); err != nil {
		return nil, err
	}
	return bt.abi.Pack("revokeStakeRequest", stakeRequestHash)
}

// RedeemData packs a redeem call for brandedTokens.
func (bt *BrandedToken) RedeemData(brandedTokens *big.Int) ([]byte, error) {
	if brandedTokens == nil || brandedTokens.Sign() <= 0 {
		return nil, fmt.Errorf("%w: redeem amount %v", ErrInvalidAmount, brandedTokens)
	}
	return bt.abi.Pack("redeem", brandedTokens)
}

// LiftRestrictionData packs a liftRestriction call for addresses.
func (bt *BrandedToken) LiftRestrictionData(addresses []common.Address) ([]byte, error) {
	if len(addresses) == 0 {
		return nil, fmt.Errorf("%w: at least one address is required", ErrInvalidArgument)
	}
	for _, addr := range addresses {
		if addr == (common.Address{}) {
			return nil, fmt.Errorf("%w: zero address in restriction list", ErrInvalidAddress)
		}
	}
	return bt.abi.Pack("liftRestriction", addresses)
}

// RequestStake submits a requestStake transaction.
func (bt *BrandedToken) RequestStake(ctx context.Context, stake, mint *big.Int, opts *txsender.TxOptions) (*types.Transaction, error) {
	if err := txsender.ValidateTxOptions(opts); err != nil {
		return nil, err
	}
	data, err := bt.RequestStakeData(stake, mint)
	if err != nil {
		return nil, err
	}
	return bt.send(ctx, "requestStake", data, opts)
}

// AcceptStakeRequest submits an acceptStakeRequest transaction.
func (bt *BrandedToken) AcceptStakeRequest(ctx context.Context, stakeRequestHash common.Hash, sig StakeRequestSignature, opts *txsender.TxOptions) (*types.Transaction, error) {
	if err := txsender.ValidateTxOptions(opts); err != nil {
		return nil, err
	}
	data, err := bt.AcceptStakeRequestData(stakeRequestHash, sig)
	if err != nil {
		return nil, err
	}
	return bt.send(ctx, "acceptStakeRequest", data, opts)
}

// RejectStakeRequest submits a rejectStakeRequest transaction.
func (bt *BrandedToken) RejectStakeRequest(ctx context.Context, stakeRequestHash common.Hash, opts *txsender.TxOptions) (*types.Transaction, error) {
	if err := txsender.ValidateTxOptions(opts); err != nil {
		return nil, err
	}
	data, err := bt.RejectStakeRequestData(stakeRequestHash)
	if err != nil {
		return nil, err
	}
	return bt.send(ctx, "rejectStakeRequest", data, opts)
}

// RevokeStakeRequest submits a revokeStakeRequest transaction.
func (bt *BrandedToken) RevokeStakeRequest(ctx context.Context, stakeRequestHash common.Hash, opts *txsender.TxOptions) (*types.Transaction, error) {
	if err := txsender.ValidateTxOptions(opts); err != nil {
		return nil, err
	}
	data, err := bt.RevokeStakeRequestData(stakeRequestHash)
	if err != nil {
		return nil, err
	}
	return bt.send(ctx, "revokeStakeRequest", data, opts)
}

// Redeem submits a redeem transaction.
func (bt *BrandedToken) Redeem(ctx context.Context, brandedTokens *big.Int, opts *txsender.TxOptions) (*types.Transaction, error) {
	if err := txsender.ValidateTxOptions(opts); err != nil {
		return nil, err
	}
	data, err := bt.RedeemData(brandedTokens)
	if err != nil {
		return nil, err
	}
	return bt.send(ctx, "redeem", data, opts)
}

// LiftRestriction submits a liftRestriction transaction.
func (bt *BrandedToken) LiftRestriction(ctx context.Context, addresses []common.Address, opts *txsender.TxOptions) (*types.Transaction, error) {
	if err := txsender.ValidateTxOptions(opts); err != nil {
		return nil, err
	}
	data, err := bt.LiftRestrictionData(addresses)
	if err != nil {
		return nil, err
	}
	return bt.send(ctx, "liftRestriction", data, opts)
}

func (bt *BrandedToken) send(ctx context.Context, method string, data []byte, opts *txsender.TxOptions) (*types.Transaction, error) {
	if bt.sender == nil {
		return nil, fmt.Errorf("%s: no transaction sender configured", method)
	}

	tx, err := bt.sender.SendTransaction(ctx, bt.address, data, opts)
	if err != nil {
		bt.logger.Error().Err(err).Str("method", method).Str("from", opts.From).Msg("Transaction failed")
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	bt.logger.Debug().Str("method", method).Str("tx_hash", tx.Hash().Hex()).Msg("Transaction sent")
	return tx, nil
}

// ConvertToBrandedTokens returns the branded tokens minted for valueTokens.
func (bt *BrandedToken) ConvertToBrandedTokens(ctx context.Context, valueTokens *big.Int) (*big.Int, error) {
	if valueTokens == nil || valueTokens.Sign() < 0 {
		return nil, fmt.Errorf("%w: value tokens %v", ErrInvalidAmount, valueTokens)
	}
	out, err := bt.call(ctx, "convertToBrandedTokens", valueTokens)
	if err != nil {
		return nil, err
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}

// ConvertToValueTokens returns the value tokens backing brandedTokens.
func (bt *BrandedToken) ConvertToValueTokens(ctx context.Context, brandedTokens *big.Int) (*big.Int, error) {
	if brandedTokens == nil || brandedTokens.Sign() < 0 {
		return nil, fmt.Errorf("%w: branded tokens %v", ErrInvalidAmount, brandedTokens)
	}
	out, err := bt.call(ctx, "convertToValueTokens", brandedTokens)
	if err != nil {
		return nil, err
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}

// IsUnrestricted reports whether actor may transfer branded tokens freely.
func (bt *BrandedToken) IsUnrestricted(ctx context.Context, actor common.Address) (bool, error) {
	out, err := bt.call(ctx, "isUnrestricted", actor)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// StakeRequestHashes returns the open stake request hash of staker.
func (bt *BrandedToken) StakeRequestHashes(ctx context.Context, staker common.Address) (common.Hash, error) {
	out, err := bt.call(ctx, "stakeRequestHashes", staker)
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(*abi.ConvertType(out[0], new([32]byte)).(*[32]byte)), nil
}

// StakeRequest returns the stake request stored under stakeRequestHash.
func (bt *BrandedToken) StakeRequest(ctx context.Context, stakeRequestHash common.Hash) (StakeRequest, error) {
	out, err := bt.call(ctx, "stakeRequests", stakeRequestHash)
	if err != nil {
		return StakeRequest{}, err
	}
	return StakeRequest{
		Staker: *abi.ConvertType(out[0], new(common.Address)).(*common.Address),
		Stake:  abi.ConvertType(out[1], new(big.Int)).(*big.Int),
		Nonce:  abi.ConvertType(out[2], new(big.Int)).(*big.Int),
	}, nil
}

func (bt *BrandedToken) call(ctx context.Context, method string, params ...interface{}) ([]interface{}, error) {
	if bt.contract == nil {
		return nil, fmt.Errorf("%s: %w", method, errNoCaller)
	}

	var out []interface{}
	if err := bt.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return out, nil
}

func validateHash(h common.Hash) error {
	if h == (common.Hash{}) {
		return fmt.Errorf("%w: %s", ErrInvalidStakeRequestHash, h.Hex())
	}
	return nil
}
