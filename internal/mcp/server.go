package mcp

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/brendan.keane/toastsms/internal/config"
	"github.com/brendan.keane/toastsms/internal/errors"
	relayhttp "github.com/brendan.keane/toastsms/internal/http"
	"github.com/brendan.keane/toastsms/internal/logger"
	"github.com/brendan.keane/toastsms/pkg/openapi"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

const (
	ServerName    = "toastsms"
	ServerVersion = "1.0.0"

	// GetMessageTool is the name of the only tool the server exposes
	GetMessageTool = "get_message"

	defaultDescription = "Look up a sent SMS message by request id and return the Toast JSON body."
)

// Server exposes message lookups as MCP tools
type Server struct {
	logger  zerolog.Logger
	config  *config.Config
	fetcher relayhttp.MessageFetcher
	mcp     *server.MCPServer
}

// NewServer builds the MCP server. The tool description is taken from the
// Messages.Get operation of doc when one is given.
func NewServer(base zerolog.Logger, cfg *config.Config, fetcher relayhttp.MessageFetcher, doc *openapi.Parser) *Server {
	s := &Server{
		logger:  logger.ForComponent(base, "mcp_server"),
		config:  cfg,
		fetcher: fetcher,
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if cfg.MCP.Description != "" {
		opts = append(opts, server.WithInstructions(cfg.MCP.Description))
	}

	s.mcp = server.NewMCPServer(ServerName, ServerVersion, opts...)
	s.mcp.AddTool(getMessageTool(doc), s.handleGetMessage)

	return s
}

// MCPServer returns the underlying protocol server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve speaks MCP over in and out until ctx is cancelled or in is closed
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Debug().Msg("MCP server started")

	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(s.logger, "", 0))

	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return errors.Wrap(err, errors.ErrorTypeMCP, "MCP stdio server failed")
	}

	s.logger.Debug().Msg("MCP server stopped")
	return nil
}

func getMessageTool(doc *openapi.Parser) mcpgo.Tool {
	description := defaultDescription
	if doc != nil {
		if op, ok := doc.Operation(openapi.GetMessageOperationID); ok {
			description = strings.TrimSpace(op.Summary + ". " + op.Description)
		}
	}

	return mcpgo.NewTool(GetMessageTool,
		mcpgo.WithDescription(description+" Use 'jmespath' to return only part of the body."),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithString("requestId",
			mcpgo.Required(),
			mcpgo.Description("Request id returned when the message was sent"),
			mcpgo.Pattern(relayhttp.RequestIDPattern.String()),
		),
		mcpgo.WithNumber("recipientSeq",
			mcpgo.Description("Recipient sequence number, 0 when omitted"),
		),
		mcpgo.WithString("appKey",
			mcpgo.Description("Toast application key"),
		),
		mcpgo.WithString("secretKey",
			mcpgo.Description("Toast secret key"),
		),
		mcpgo.WithString("jmespath",
			mcpgo.Description("JMESPath expression applied to the JSON body (https://jmespath.org)"),
		),
	)
}

func (s *Server) handleGetMessage(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	toolLog := logger.ForMCP(s.logger, GetMessageTool)

	requestID, err := request.RequireString("requestId")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	msgReq := relayhttp.MessageRequest{
		AppKey:       request.GetString("appKey", ""),
		SecretKey:    request.GetString("secretKey", ""),
		RequestID:    requestID,
		RecipientSeq: request.GetInt("recipientSeq", 0),
	}

	toolLog.Debug().
		Str("request_id", msgReq.RequestID).
		Int("recipient_seq", msgReq.RecipientSeq).
		Msg("executing tool call")

	msg, err := s.fetcher.GetMessage(ctx, msgReq)
	if err != nil {
		toolLog.Warn().Err(err).Str("error_type", string(errors.GetType(err))).Msg("lookup failed")
		return mcpgo.NewToolResultError(toolErrorText(err)), nil
	}

	body := string(msg.Body)

	expression := strings.TrimSpace(request.GetString("jmespath", ""))
	if expression == "" {
		return mcpgo.NewToolResultText(body), nil
	}

	filtered, err := filterJMESPath(body, expression)
	if err != nil {
		return mcpgo.NewToolResultError(fmt.Sprintf("JMESPath filter failed: %v", err)), nil
	}

	toolLog.Debug().
		Interface("filter", filtered.Meta["filter"]).
		Interface("bytes", filtered.Meta["bytes"]).
		Msg("applied jmespath filter")

	return mcpgo.NewToolResultText(filtered.Content), nil
}

// toolErrorText keeps the upstream body visible to the model, since Toast
// reports the reason for a failed lookup in its result header
func toolErrorText(err error) string {
	if errors.IsType(err, errors.ErrorTypeUpstream) {
		ctx := errors.GetContext(err)
		return fmt.Sprintf("upstream returned %v: %v", ctx["status_code"], ctx["body"])
	}
	return errors.UserMessage(err)
}
