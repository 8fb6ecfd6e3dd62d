package cli

import (
	"github.com/spf13/cobra"

	"github.com/theblitlabs/brandedtoken-go/internal/config"
	"github.com/theblitlabs/brandedtoken-go/internal/utils/errorutil"
	"github.com/theblitlabs/brandedtoken-go/pkg/logger"
)

var (
	configPath  string
	logMode     string
	metricsFile string
	cfg         *config.Config
)

// NewRootCommand assembles the brandedtoken command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "brandedtoken",
		Short:         "BrandedToken staking client",
		Long:          `Look up BrandedToken contract metadata, deploy BrandedToken and manage stake requests`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return errorutil.WrapError(err, "failed to load config")
			}
			cfg = loaded

			mode := logMode
			if !cmd.Flags().Changed("log") && cfg.Log.Mode != "" {
				mode = cfg.Log.Mode
			}
			logger.Init(logger.ParseMode(mode))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML, JSON or .env config file")
	rootCmd.PersistentFlags().StringVar(&logMode, "log", "pretty", "Log mode: debug, pretty, info, prod, test")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write transaction metrics in Prometheus text format to this file")

	rootCmd.AddCommand(
		newABICommand(),
		newBINCommand(),
		newContractsCommand(),
		newAuthCommand(),
		newDeployCommand(),
		newRequestStakeCommand(),
		newAcceptStakeRequestCommand(),
		newRejectStakeRequestCommand(),
		newRevokeStakeRequestCommand(),
		newRedeemCommand(),
		newLiftRestrictionCommand(),
		newStakeRequestCommand(),
	)

	return rootCmd
}
