package cli

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	"github.com/theblitlabs/brandedtoken-go/internal/utils/cliutil"
	"github.com/theblitlabs/brandedtoken-go/pkg/contractinteract"
	"github.com/theblitlabs/brandedtoken-go/pkg/logger"
	"github.com/theblitlabs/brandedtoken-go/pkg/txsender"
)

type txFunc func(ctx context.Context, bt *contractinteract.BrandedToken, opts *txsender.TxOptions) (*types.Transaction, error)

// runTx opens a session, sends the transaction built by send and waits for it.
func runTx(cmd *cobra.Command, send txFunc) error {
	ctx := cmd.Context()

	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	bt, err := s.brandedToken()
	if err != nil {
		return err
	}

	tx, sendErr := send(ctx, bt, s.txOptions())
	if err := s.writeMetrics(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to write metrics")
	}
	if sendErr != nil {
		return sendErr
	}

	_, err = s.wait(ctx, cmd.OutOrStdout(), tx)
	return err
}

var hashFlag = map[string]cliutil.Flag{
	"hash": {Type: cliutil.FlagTypeString, Description: "Stake request hash", Required: true},
}

func newRequestStakeCommand() *cobra.Command {
	return cliutil.CreateCommand(cliutil.CommandConfig{
		Use:   "request-stake",
		Short: "Request to stake value tokens for branded tokens",
		Args:  cobra.NoArgs,
		Flags: map[string]cliutil.Flag{
			"stake": {Type: cliutil.FlagTypeString, Description: "Value tokens to stake", Required: true},
			"mint":  {Type: cliutil.FlagTypeString, Description: "Branded tokens to mint", Required: true},
		},
		RunFunc: func(cmd *cobra.Command, args []string) error {
			stakeFlag, _ := cmd.Flags().GetString("stake")
			mintFlag, _ := cmd.Flags().GetString("mint")

			stake, err := parseAmount("stake", stakeFlag)
			if err != nil {
				return err
			}
			mint, err := parseAmount("mint", mintFlag)
			if err != nil {
				return err
			}

			return runTx(cmd, func(ctx context.Context, bt *contractinteract.BrandedToken, opts *txsender.TxOptions) (*types.Transaction, error) {
				return bt.RequestStake(ctx, stake, mint, opts)
			})
		},
	}, logger.WithComponent("stake"))
}

func newAcceptStakeRequestCommand() *cobra.Command {
	return cliutil.CreateCommand(cliutil.CommandConfig{
		Use:   "accept-stake-request",
		Short: "Accept a stake request with a worker signature",
		Args:  cobra.NoArgs,
		Flags: map[string]cliutil.Flag{
			"hash":      hashFlag["hash"],
			"signature": {Type: cliutil.FlagTypeString, Description: "65-byte worker signature in hex", Required: true},
		},
		RunFunc: func(cmd *cobra.Command, args []string) error {
			hashValue, _ := cmd.Flags().GetString("hash")
			sigValue, _ := cmd.Flags().GetString("signature")

			hash, err := parseHash(hashValue)
			if err != nil {
				return err
			}
			sig, err := contractinteract.ParseSignature(sigValue)
			if err != nil {
				return err
			}

			return runTx(cmd, func(ctx context.Context, bt *contractinteract.BrandedToken, opts *txsender.TxOptions) (*types.Transaction, error) {
				return bt.AcceptStakeRequest(ctx, hash, sig, opts)
			})
		},
	}, logger.WithComponent("stake"))
}

func newRejectStakeRequestCommand() *cobra.Command {
	return newHashCommand("reject-stake-request", "Reject a pending stake request",
		func(ctx context.Context, bt *contractinteract.BrandedToken, hash common.Hash, opts *txsender.TxOptions) (*types.Transaction, error) {
			return bt.RejectStakeRequest(ctx, hash, opts)
		})
}

func newRevokeStakeRequestCommand() *cobra.Command {
	return newHashCommand("revoke-stake-request", "Revoke your own pending stake request",
		func(ctx context.Context, bt *contractinteract.BrandedToken, hash common.Hash, opts *txsender.TxOptions) (*types.Transaction, error) {
			return bt.RevokeStakeRequest(ctx, hash, opts)
		})
}

func newHashCommand(use, short string, send func(context.Context, *contractinteract.BrandedToken, common.Hash, *txsender.TxOptions) (*types.Transaction, error)) *cobra.Command {
	return cliutil.CreateCommand(cliutil.CommandConfig{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		Flags: hashFlag,
		RunFunc: func(cmd *cobra.Command, args []string) error {
			value, _ := cmd.Flags().GetString("hash")
			hash, err := parseHash(value)
			if err != nil {
				return err
			}

			return runTx(cmd, func(ctx context.Context, bt *contractinteract.BrandedToken, opts *txsender.TxOptions) (*types.Transaction, error) {
				return send(ctx, bt, hash, opts)
			})
		},
	}, logger.WithComponent("stake"))
}

func newRedeemCommand() *cobra.Command {
	return cliutil.CreateCommand(cliutil.CommandConfig{
		Use:   "redeem",
		Short: "Redeem branded tokens for value tokens",
		Args:  cobra.NoArgs,
		Flags: map[string]cliutil.Flag{
			"amount": {Type: cliutil.FlagTypeString, Description: "Branded tokens to redeem", Required: true},
		},
		RunFunc: func(cmd *cobra.Command, args []string) error {
			value, _ := cmd.Flags().GetString("amount")
			amount, err := parseAmount("amount", value)
			if err != nil {
				return err
			}

			return runTx(cmd, func(ctx context.Context, bt *contractinteract.BrandedToken, opts *txsender.TxOptions) (*types.Transaction, error) {
				return bt.Redeem(ctx, amount, opts)
			})
		},
	}, logger.WithComponent("stake"))
}

func newLiftRestrictionCommand() *cobra.Command {
	return cliutil.CreateCommand(cliutil.CommandConfig{
		Use:     "lift-restriction",
		Short:   "Allow addresses to transfer branded tokens freely",
		Example: "  brandedtoken lift-restriction --addresses 0xabc...,0xdef...",
		Args:    cobra.NoArgs,
		Flags: map[string]cliutil.Flag{
			"addresses": {Type: cliutil.FlagTypeStringSlice, Description: "Comma separated addresses", Required: true},
		},
		RunFunc: func(cmd *cobra.Command, args []string) error {
			values, _ := cmd.Flags().GetStringSlice("addresses")

			addresses := make([]common.Address, 0, len(values))
			for _, v := range values {
				addr, err := parseAddress("addresses", v)
				if err != nil {
					return err
				}
				addresses = append(addresses, addr)
			}

			return runTx(cmd, func(ctx context.Context, bt *contractinteract.BrandedToken, opts *txsender.TxOptions) (*types.Transaction, error) {
				return bt.LiftRestriction(ctx, addresses, opts)
			})
		},
	}, logger.WithComponent("stake"))
}

func newStakeRequestCommand() *cobra.Command {
	return cliutil.CreateCommand(cliutil.CommandConfig{
		Use:   "stake-request",
		Short: "Show the pending stake request of a staker",
		Args:  cobra.NoArgs,
		Flags: map[string]cliutil.Flag{
			"staker": {Type: cliutil.FlagTypeString, Description: "Staker address (defaults to the authenticated wallet)"},
		},
		RunFunc: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := newSession(ctx)
			if err != nil {
				return err
			}
			bt, err := s.brandedToken()
			if err != nil {
				return err
			}

			staker := s.address()
			if value, _ := cmd.Flags().GetString("staker"); value != "" {
				if staker, err = parseAddress("staker", value); err != nil {
					return err
				}
			}

			hash, err := bt.StakeRequestHashes(ctx, staker)
			if err != nil {
				return err
			}
			if hash == (common.Hash{}) {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "no pending stake request for %s\n", staker.Hex())
				return err
			}

			req, err := bt.StakeRequest(ctx, hash)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "hash:   %s\nstaker: %s\nstake:  %s\nnonce:  %s\n",
				hash.Hex(), req.Staker.Hex(), req.Stake, req.Nonce)
			return err
		},
	}, logger.WithComponent("stake"))
}
