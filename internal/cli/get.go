package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brendan.keane/toastsms/internal/config"
	"github.com/brendan.keane/toastsms/internal/errors"
	relayhttp "github.com/brendan.keane/toastsms/internal/http"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	statusOK  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98C379"))
	statusBad = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E06C75"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ABB2BF"))
)

// GetOptions holds the flags of the get command
type GetOptions struct {
	RecipientSeq string
	AppKey       string
	SecretKey    string
	Include      bool
	Timeout      time.Duration
}

// GetHandler performs one lookup from the terminal
type GetHandler struct {
	logger zerolog.Logger
	opts   GetOptions
}

// NewGetHandler creates a new get command handler
func NewGetHandler(logger zerolog.Logger, opts GetOptions) *GetHandler {
	return &GetHandler{
		logger: logger.With().Str("handler", "get").Logger(),
		opts:   opts,
	}
}

func newGetCommand(a *app) *cobra.Command {
	var opts GetOptions

	cmd := &cobra.Command{
		Use:   "get <requestId>",
		Short: "Look up one message and print the upstream body",
		Example: `  toastsms get 20230101120000abcd --app-key $APP_KEY --secret-key $SECRET_KEY
  toastsms get 20230101120000abcd --recipient-seq 2 -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewGetHandler(a.logger, opts).Execute(cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.RecipientSeq, "recipient-seq", "", "Recipient sequence number (absent or malformed means 0)")
	cmd.Flags().StringVar(&opts.AppKey, "app-key", "", "Toast application key (env: TOASTSMS_APP_KEY)")
	cmd.Flags().StringVar(&opts.SecretKey, "secret-key", "", "Toast secret key (env: TOASTSMS_SECRET_KEY)")
	cmd.Flags().BoolVarP(&opts.Include, "include", "i", false, "Print a status line to stderr")
	cmd.Flags().DurationVar(&opts.Timeout, "deadline", 30*time.Second, "Overall deadline for the lookup")

	return cmd
}

// Execute looks up args[0]. Upstream error bodies are still printed so the
// Toast result header is visible, and the error is returned for the exit code.
func (h *GetHandler) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}

	req := relayhttp.MessageRequest{
		AppKey:       firstNonEmpty(h.opts.AppKey, lookupEnv("APP_KEY")),
		SecretKey:    firstNonEmpty(h.opts.SecretKey, lookupEnv("SECRET_KEY")),
		RequestID:    args[0],
		RecipientSeq: relayhttp.ParseRecipientSeq(h.opts.RecipientSeq),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if h.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.Timeout)
		defer cancel()
	}

	fetcher := relayhttp.NewClientFactory(h.logger).CreateFetcher(cfg)

	start := time.Now()
	msg, err := fetcher.GetMessage(ctx, req)
	if err != nil {
		h.logger.Debug().Err(err).Str("error_type", string(errors.GetType(err))).Msg("lookup failed")

		if errors.IsType(err, errors.ErrorTypeUpstream) {
			errCtx := errors.GetContext(err)
			if h.opts.Include {
				h.printStatus(cmd, errCtx["status_code"], errCtx["url"], time.Since(start))
			}
			if body, ok := errCtx["body"].(string); ok {
				fmt.Fprintln(cmd.OutOrStdout(), body)
			}
		}
		return err
	}

	if h.opts.Include {
		h.printStatus(cmd, msg.StatusCode, msg.URL, msg.Duration)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(msg.Body))

	return nil
}

func (h *GetHandler) printStatus(cmd *cobra.Command, status, url interface{}, elapsed time.Duration) {
	style := statusOK
	if code, ok := status.(int); !ok || code < 200 || code > 299 {
		style = statusBad
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %v %s\n",
		style.Render(fmt.Sprintf("%v", status)),
		url,
		dimStyle.Render(elapsed.Round(time.Millisecond).String()),
	)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// lookupEnv reads TOASTSMS_<name>
func lookupEnv(name string) string {
	return os.Getenv(config.EnvPrefix + "_" + name)
}
