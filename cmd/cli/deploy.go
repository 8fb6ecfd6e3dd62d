package cli

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/spf13/cobra"

	"github.com/theblitlabs/brandedtoken-go/internal/utils/cliutil"
	"github.com/theblitlabs/brandedtoken-go/internal/utils/errorutil"
	"github.com/theblitlabs/brandedtoken-go/pkg/contractinteract"
	"github.com/theblitlabs/brandedtoken-go/pkg/logger"
)

func newDeployCommand() *cobra.Command {
	return cliutil.CreateCommand(cliutil.CommandConfig{
		Use:   "deploy",
		Short: "Deploy a BrandedToken contract",
		Long: `Deploy a BrandedToken contract backed by a value token.

The bytecode is taken from the configured artifacts directory.`,
		Example: `  brandedtoken deploy --config config.yaml --symbol BT --name "Branded Token" \
    --conversion-rate 35 --conversion-rate-decimals 1 --organization 0x...`,
		Args: cobra.NoArgs,
		Flags: map[string]cliutil.Flag{
			"value-token":              {Type: cliutil.FlagTypeString, Description: "Value token address (defaults to ethereum.value_token_address)"},
			"symbol":                   {Type: cliutil.FlagTypeString, Description: "Token symbol", Required: true},
			"name":                     {Type: cliutil.FlagTypeString, Description: "Token name", Required: true},
			"decimals":                 {Type: cliutil.FlagTypeUint64, Description: "Token decimals", DefaultUint64: 18},
			"conversion-rate":          {Type: cliutil.FlagTypeString, Description: "Branded tokens per value token, scaled by conversion-rate-decimals", Required: true},
			"conversion-rate-decimals": {Type: cliutil.FlagTypeUint64, Description: "Decimals of the conversion rate"},
			"organization":             {Type: cliutil.FlagTypeString, Description: "Organization contract address", Required: true},
		},
		RunFunc: runDeploy,
	}, logger.WithComponent("deploy"))
}

func runDeploy(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	valueToken, _ := flags.GetString("value-token")
	symbol, _ := flags.GetString("symbol")
	name, _ := flags.GetString("name")
	decimals, _ := flags.GetUint64("decimals")
	rate, _ := flags.GetString("conversion-rate")
	rateDecimals, _ := flags.GetUint64("conversion-rate-decimals")
	organization, _ := flags.GetString("organization")

	if valueToken == "" {
		valueToken = cfg.Ethereum.ValueTokenAddress
	}
	if decimals > 255 || rateDecimals > 255 {
		return fmt.Errorf("%w: decimals must fit in uint8", contractinteract.ErrInvalidArgument)
	}

	params := contractinteract.BrandedTokenParams{
		Symbol:                 symbol,
		Name:                   name,
		Decimals:               uint8(decimals),
		ConversionRateDecimals: uint8(rateDecimals),
	}
	var err error
	if params.ValueToken, err = parseAddress("value-token", valueToken); err != nil {
		return err
	}
	if params.Organization, err = parseAddress("organization", organization); err != nil {
		return err
	}
	if params.ConversionRate, err = parseAmount("conversion-rate", rate); err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := newSession(ctx)
	if err != nil {
		return err
	}

	auth, err := bind.NewKeyedTransactorWithChainID(s.key, big.NewInt(cfg.Ethereum.ChainID))
	if err != nil {
		return errorutil.WrapError(err, "failed to create transactor")
	}
	auth.GasLimit = cfg.Ethereum.GasLimit

	address, tx, err := contractinteract.DeployBrandedToken(ctx, s.provider, s.client.Backend(), auth, params)
	if err != nil {
		return err
	}

	if _, err := s.wait(ctx, cmd.ErrOrStderr(), tx); err != nil {
		return err
	}

	s.log.Info().Str("address", address.Hex()).Str("symbol", symbol).Msg("BrandedToken deployed")
	_, err = fmt.Fprintln(cmd.OutOrStdout(), address.Hex())
	return err
}
