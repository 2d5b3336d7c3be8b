package cli

import (
	"context"

	"github.com/brendan.keane/toastsms/internal/errors"
	relayhttp "github.com/brendan.keane/toastsms/internal/http"
	"github.com/brendan.keane/toastsms/internal/mcp"
	"github.com/brendan.keane/toastsms/pkg/openapi"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// MCPHandler handles MCP server commands
type MCPHandler struct {
	logger zerolog.Logger
}

// NewMCPHandler creates a new MCP command handler
func NewMCPHandler(logger zerolog.Logger) *MCPHandler {
	return &MCPHandler{
		logger: logger.With().Str("handler", "mcp").Logger(),
	}
}

func newMCPCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the get_message tool over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewMCPHandler(a.logger).Execute(cmd, args)
		},
	}
	cmd.Flags().String("mcp-desc", "", "Server description sent to the client as instructions")
	return cmd
}

// Execute handles the MCP server command. Stdin and stdout carry the protocol;
// logs go to stderr.
func (h *MCPHandler) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := configFrom(cmd)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load configuration")
		return err
	}

	doc, err := openapi.LoadRelayDocument()
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeOpenAPI, "embedded OpenAPI document is invalid")
	}

	h.logger.Debug().
		Str("base_url", cfg.Toast.BaseURL).
		Bool("sigv4", cfg.Upstream.SigV4Enabled).
		Msg("starting MCP server")

	fetcher := relayhttp.NewClientFactory(h.logger).CreateFetcher(cfg)
	server := mcp.NewServer(h.logger, cfg, fetcher, doc)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return server.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}
