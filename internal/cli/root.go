package cli

import (
	"github.com/brendan.keane/toastsms/internal/config"
	"github.com/brendan.keane/toastsms/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries state shared by every command once flags are parsed
type app struct {
	logger zerolog.Logger
}

// NewRootCommand assembles the toastsms command tree
func NewRootCommand() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "toastsms",
		Short: "Relay SMS message lookups to the Toast SMS API",
		Long: `toastsms relays get-message lookups to the Toast SMS API.
It runs as an HTTP server, a Lambda function, an MCP server or a one-shot CLI.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCommand(a),
		newLambdaCommand(a),
		newGetCommand(a),
		newDocsCommand(a),
		newMCPCommand(a),
	)

	return root
}

// setup loads and validates configuration, then builds the logger from it
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.logger = logger.SetupTo(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format, cfg.Log.Debug)
	cmd.SetContext(config.WithConfig(cmd.Context(), cfg))

	a.logger.Debug().
		Str("command", cmd.Name()).
		Str("base_url", cfg.Toast.BaseURL).
		Str("version", cfg.Toast.Version).
		Msg("configuration loaded")

	return nil
}

// configFrom returns the configuration stored by setup, loading it again when
// a handler runs outside the command tree
func configFrom(cmd *cobra.Command) (*config.Config, error) {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := config.FromContext(ctx); ok {
			return cfg, nil
		}
	}
	cfg, err := config.LoadFromFlags(cmd.Flags())
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}
