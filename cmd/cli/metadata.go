package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/theblitlabs/brandedtoken-go/internal/utils/cliutil"
	"github.com/theblitlabs/brandedtoken-go/internal/utils/errorutil"
	"github.com/theblitlabs/brandedtoken-go/pkg/abibin"
	"github.com/theblitlabs/brandedtoken-go/pkg/contracts"
	"github.com/theblitlabs/brandedtoken-go/pkg/logger"
)

// loadSources returns the artifact directory, when configured, layered over the
// builtin metadata, plus every contract name either of them knows.
func loadSources() (contracts.Source, []string, error) {
	builtin := contracts.Builtin()
	if cfg.Contracts.ArtifactsDir == "" {
		return builtin, builtin.Names(), nil
	}

	local, err := contracts.LoadArtifactDir(cfg.Contracts.ArtifactsDir)
	if err != nil {
		return nil, nil, errorutil.WrapError(err, "failed to load artifacts from %s", cfg.Contracts.ArtifactsDir)
	}

	seen := make(map[string]struct{})
	var names []string
	for _, name := range append(local.Names(), builtin.Names()...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)

	return contracts.Chain(local, builtin), names, nil
}

func newMetadataProvider() (*abibin.Provider, error) {
	source, _, err := loadSources()
	if err != nil {
		return nil, err
	}
	return abibin.NewProvider(source, abibin.WithLogger(logger.Get())), nil
}

func newABICommand() *cobra.Command {
	log := logger.WithComponent("cli")

	return cliutil.CreateCommand(cliutil.CommandConfig{
		Use:     "abi <contract>",
		Short:   "Print the ABI of a contract",
		Example: "  brandedtoken abi BrandedToken",
		Args:    cobra.ExactArgs(1),
		RunFunc: func(cmd *cobra.Command, args []string) error {
			provider, err := newMetadataProvider()
			if err != nil {
				return err
			}

			contractABI, err := provider.GetABI(args[0])
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(contractABI, "", "  ")
			if err != nil {
				return errorutil.WrapError(err, "failed to encode ABI")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}, log)
}

func newBINCommand() *cobra.Command {
	log := logger.WithComponent("cli")

	return cliutil.CreateCommand(cliutil.CommandConfig{
		Use:     "bin <contract>",
		Short:   "Print the deployment bytecode of a contract",
		Example: "  brandedtoken bin BrandedToken --config config.yaml",
		Args:    cobra.ExactArgs(1),
		RunFunc: func(cmd *cobra.Command, args []string) error {
			provider, err := newMetadataProvider()
			if err != nil {
				return err
			}

			bin, err := provider.GetBIN(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), bin)
			return err
		},
	}, log)
}

func newContractsCommand() *cobra.Command {
	log := logger.WithComponent("cli")

	return cliutil.CreateCommand(cliutil.CommandConfig{
		Use:   "contracts",
		Short: "List known contracts and whether an ABI and bytecode are available",
		Args:  cobra.NoArgs,
		RunFunc: func(cmd *cobra.Command, args []string) error {
			source, names, err := loadSources()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CONTRACT\tABI\tBIN")
			for _, name := range names {
				md, _ := source.Lookup(name)
				fmt.Fprintf(w, "%s\t%t\t%t\n", name, md.ABI != nil, md.BIN != "")
			}
			return w.Flush()
		},
	}, log)
}
