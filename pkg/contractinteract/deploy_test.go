package contractinteract

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theblitlabs/brandedtoken-go/pkg/abibin"
)

// emitterBin deploys a contract whose runtime code emits one log.
const emitterBin = "0x6027600c60003960276000f37f0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f2060006000a100"

func newSimulatedChain(t *testing.T) (*simulated.Backend, *bind.TransactOpts) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	auth, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(1337))
	require.NoError(t, err)
	auth.GasLimit = 1_000_000

	sim := simulated.NewBackend(types.GenesisAlloc{
		auth.From: {Balance: big.NewInt(1_000_000_000_000_000_000)},
	})
	t.Cleanup(func() { _ = sim.Close() })
	return sim, auth
}

func TestDeploy(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sim, auth := newSimulatedChain(t)
	provider := abibin.NewProvider(nil)
	require.NoError(t, provider.AddABI("Emitter", `[]`))
	require.NoError(t, provider.AddBIN("Emitter", emitterBin))

	address, tx, err := Deploy(ctx, provider, sim.Client(), auth, "Emitter")
	require.NoError(t, err)
	assert.NotEqual(t, common.Address{}, address)
	require.NotNil(t, tx)

	sim.Commit()

	receipt, err := bind.WaitMined(ctx, sim.Client(), tx)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	assert.Equal(t, address, receipt.ContractAddress)

	code, err := sim.Client().CodeAt(ctx, address, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, code)
}

func TestDeployErrors(t *testing.T) {
	ctx := context.Background()
	sim, auth := newSimulatedChain(t)

	t.Run("missing bin", func(t *testing.T) {
		provider := abibin.NewProvider(nil)
		_, _, err := Deploy(ctx, provider, sim.Client(), auth, BrandedTokenContractName)
		assert.ErrorIs(t, err, abibin.ErrNotFound)
	})

	t.Run("missing abi", func(t *testing.T) {
		provider := abibin.NewProvider(nil)
		require.NoError(t, provider.AddBIN("Emitter", emitterBin))
		_, _, err := Deploy(ctx, provider, sim.Client(), auth, "Emitter")
		assert.ErrorIs(t, err, abibin.ErrNotFound)
	})

	t.Run("missing transact options", func(t *testing.T) {
		_, _, err := Deploy(ctx, abibin.NewProvider(nil), sim.Client(), nil, "Emitter")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("constructor arguments are checked", func(t *testing.T) {
		provider := abibin.NewProvider(nil)
		require.NoError(t, provider.AddBIN(BrandedTokenContractName, emitterBin))
		_, _, err := Deploy(ctx, provider, sim.Client(), auth, BrandedTokenContractName, "not an address")
		assert.Error(t, err)
	})
}

func TestDeployBrandedTokenValidation(t *testing.T) {
	ctx := context.Background()
	sim, auth := newSimulatedChain(t)
	provider := abibin.NewProvider(nil)

	valid := BrandedTokenParams{
		ValueToken:             common.HexToAddress("0x00000000000000000000000000000000000000a1"),
		Symbol:                 "BT",
		Name:                   "Branded Token",
		Decimals:               18,
		ConversionRate:         big.NewInt(35),
		ConversionRateDecimals: 1,
		Organization:           common.HexToAddress("0x00000000000000000000000000000000000000a2"),
	}

	tests := []struct {
		name    string
		mutate  func(p *BrandedTokenParams)
		wantErr error
	}{
		{"value token", func(p *BrandedTokenParams) { p.ValueToken = common.Address{} }, ErrInvalidAddress},
		{"organization", func(p *BrandedTokenParams) { p.Organization = common.Address{} }, ErrInvalidAddress},
		{"symbol", func(p *BrandedTokenParams) { p.Symbol = "" }, ErrInvalidArgument},
		{"conversion rate", func(p *BrandedTokenParams) { p.ConversionRate = big.NewInt(0) }, ErrInvalidAmount},
		{"bytecode not registered", func(p *BrandedTokenParams) {}, abibin.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.mutate(&params)
			_, _, err := DeployBrandedToken(ctx, provider, sim.Client(), auth, params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
