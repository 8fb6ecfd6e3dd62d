package cli

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/theblitlabs/brandedtoken-go/internal/utils/cliutil"
	"github.com/theblitlabs/brandedtoken-go/internal/utils/errorutil"
	"github.com/theblitlabs/brandedtoken-go/pkg/keystore"
	"github.com/theblitlabs/brandedtoken-go/pkg/logger"
)

func newAuthCommand() *cobra.Command {
	return cliutil.CreateCommand(cliutil.CommandConfig{
		Use:   "auth",
		Short: "Store the private key used to sign transactions",
		Flags: map[string]cliutil.Flag{
			"private-key": {
				Type:        cliutil.FlagTypeString,
				Shorthand:   "k",
				Description: "Private key in hex format",
				Required:    true,
			},
		},
		RunFunc: func(cmd *cobra.Command, args []string) error {
			privateKey, err := cmd.Flags().GetString("private-key")
			if err != nil {
				return fmt.Errorf("failed to get private key flag: %w", err)
			}
			return executeAuth(cmd, privateKey)
		},
	}, logger.WithComponent("auth"))
}

func executeAuth(cmd *cobra.Command, privateKey string) error {
	log := logger.WithComponent("auth")

	privateKey = strings.TrimPrefix(privateKey, "0x")
	if len(privateKey) != 64 {
		return fmt.Errorf("invalid private key - must be 64 hex characters")
	}

	key, err := crypto.HexToECDSA(privateKey)
	if err != nil {
		return errorutil.WrapError(err, "invalid private key format")
	}

	ks, err := keystore.Default()
	if err != nil {
		return err
	}
	if err := ks.SavePrivateKey(privateKey); err != nil {
		return errorutil.WrapError(err, "failed to save private key")
	}

	address := crypto.PubkeyToAddress(key.PublicKey)
	log.Info().
		Str("address", address.Hex()).
		Str("keystore", ks.Path()).
		Msg("Wallet authenticated successfully")

	_, err = fmt.Fprintln(cmd.OutOrStdout(), address.Hex())
	return err
}
