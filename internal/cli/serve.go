package cli

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/brendan.keane/toastsms/internal/errors"
	relayhttp "github.com/brendan.keane/toastsms/internal/http"
	"github.com/brendan.keane/toastsms/internal/server"
	pkghttp "github.com/brendan.keane/toastsms/pkg/http"
	"github.com/brendan.keane/toastsms/pkg/openapi"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ServeHandler runs the relay behind an HTTP listener or the Lambda runtime
type ServeHandler struct {
	logger zerolog.Logger

	// startLambda hands the event handler to the Lambda runtime
	startLambda func(handler interface{})

	// loadDocument parses the OpenAPI document served at /openapi.json
	loadDocument func() (*openapi.Parser, error)
}

// NewServeHandler creates a new serve command handler
func NewServeHandler(logger zerolog.Logger) *ServeHandler {
	return &ServeHandler{
		logger:       logger.With().Str("handler", "serve").Logger(),
		startLambda:  lambda.Start,
		loadDocument: openapi.LoadRelayDocument,
	}
}

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve GET /messages/{requestId} over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServeHandler(a.logger).Serve(cmd, args)
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().String("function-key", "", "Require this key in x-functions-key or ?code=")
	return cmd
}

func newLambdaCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Run as an AWS Lambda function behind API Gateway or a Function URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServeHandler(a.logger).Lambda(cmd, args)
		},
	}
	cmd.Flags().String("function-key", "", "Require this key in x-functions-key or ?code=")
	return cmd
}

// build wires the relay server from configuration
func (h *ServeHandler) build(cmd *cobra.Command) (*server.Server, error) {
	cfg, err := configFrom(cmd)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load configuration")
		return nil, err
	}

	doc, err := h.loadDocument()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeOpenAPI, "failed to parse the OpenAPI document")
	}
	if _, ok := doc.Operation(openapi.GetMessageOperationID); !ok {
		return nil, errors.New(errors.ErrorTypeOpenAPI, "OpenAPI document has no get-message operation").
			WithContext("operation_id", openapi.GetMessageOperationID)
	}

	fetcher := relayhttp.NewClientFactory(h.logger).CreateFetcher(cfg)
	return server.New(h.logger, cfg, fetcher, openapi.RelayDocument()), nil
}

// Serve listens until the command context is cancelled
func (h *ServeHandler) Serve(cmd *cobra.Command, args []string) error {
	srv, err := h.build(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return srv.ListenAndServe(ctx)
}

// Lambda blocks in the Lambda runtime loop
func (h *ServeHandler) Lambda(cmd *cobra.Command, args []string) error {
	srv, err := h.build(cmd)
	if err != nil {
		return err
	}

	h.logger.Debug().Msg("starting Lambda runtime")
	h.startLambda(pkghttp.NewLambdaHandler(srv.Handler()).Handle)
	return nil
}
