package cliutil

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/theblitlabs/brandedtoken-go/pkg/logger"
)

// CommandConfig describes a subcommand and its flags.
type CommandConfig struct {
	Use     string
	Short   string
	Long    string
	Example string
	Args    cobra.PositionalArgs

	RunFunc func(cmd *cobra.Command, args []string) error

	Flags map[string]Flag
}

type Flag struct {
	Type        FlagType
	Shorthand   string
	Description string
	Required    bool

	DefaultString string
	DefaultUint64 uint64
	DefaultBool   bool
}

type FlagType int

const (
	FlagTypeString FlagType = iota
	FlagTypeUint64
	FlagTypeBool
	FlagTypeStringSlice
)

// CreateCommand builds a cobra command from config.
func CreateCommand(config CommandConfig, log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:          config.Use,
		Short:        config.Short,
		Long:         config.Long,
		Example:      config.Example,
		Args:         config.Args,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.RunFunc != nil {
				return config.RunFunc(cmd, args)
			}
			return nil
		},
	}

	for name, flag := range config.Flags {
		switch flag.Type {
		case FlagTypeString:
			cmd.Flags().StringP(name, flag.Shorthand, flag.DefaultString, flag.Description)
		case FlagTypeUint64:
			cmd.Flags().Uint64P(name, flag.Shorthand, flag.DefaultUint64, flag.Description)
		case FlagTypeBool:
			cmd.Flags().BoolP(name, flag.Shorthand, flag.DefaultBool, flag.Description)
		case FlagTypeStringSlice:
			cmd.Flags().StringSliceP(name, flag.Shorthand, nil, flag.Description)
		}

		if flag.Required {
			if err := cmd.MarkFlagRequired(name); err != nil {
				log.Error().Err(err).Str("flag", name).Msg("Failed to mark flag as required")
			}
		}
	}

	return cmd
}

// ExecuteCommand runs cmd with ctx and logs the failure, if any. The logger is
// resolved after execution so that a logger configured by the command is used.
func ExecuteCommand(ctx context.Context, cmd *cobra.Command) error {
	if err := cmd.ExecuteContext(ctx); err != nil {
		log := logger.WithComponent("cli")
		log.Error().Err(err).Str("command", cmd.Name()).Msg("Command execution failed")
		return err
	}
	return nil
}
