package cli

import (
	"fmt"
	"strings"

	"github.com/brendan.keane/toastsms/internal/errors"
	"github.com/brendan.keane/toastsms/pkg/openapi"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// DocsHandler renders an OpenAPI document in the terminal
type DocsHandler struct {
	logger   zerolog.Logger
	specFile string
	method   string
}

// NewDocsHandler creates a docs handler. An empty specFile selects the relay's own document.
func NewDocsHandler(logger zerolog.Logger, specFile, method string) *DocsHandler {
	return &DocsHandler{
		logger:   logger.With().Str("handler", "docs").Logger(),
		specFile: specFile,
		method:   method,
	}
}

func newDocsCommand(a *app) *cobra.Command {
	var specFile, method string

	cmd := &cobra.Command{
		Use:   "docs [path]",
		Short: "Show the API documentation",
		Long: `Show the relay's OpenAPI documentation, or that of --spec.
Without a path every endpoint is listed; a trailing slash lists everything below it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewDocsHandler(a.logger, specFile, method).Execute(cmd, args)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return NewDocsHandler(a.logger, specFile, method).Complete(toComplete)
		},
	}

	cmd.Flags().StringVar(&specFile, "spec", "", "Render this OpenAPI file instead of the relay's document")
	cmd.Flags().StringVarP(&method, "request", "X", "ANY", "HTTP method filter (comma separated)")
	_ = cmd.RegisterFlagCompletionFunc("request", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (h *DocsHandler) viewer() (*openapi.Viewer, error) {
	if h.specFile == "" {
		parser, err := openapi.LoadRelayDocument()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeOpenAPI, "embedded OpenAPI document is invalid")
		}
		return openapi.NewViewer(parser), nil
	}

	parser := openapi.NewParser()
	if err := parser.LoadFromFile(h.specFile); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeOpenAPI, "failed to load OpenAPI document").
			WithContext("path", h.specFile)
	}
	return openapi.NewViewer(parser), nil
}

// Execute prints the rendered documentation
func (h *DocsHandler) Execute(cmd *cobra.Command, args []string) error {
	path := "*"
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}

	viewer, err := h.viewer()
	if err != nil {
		return err
	}

	h.logger.Debug().Str("path", path).Str("method", h.method).Msg("rendering documentation")

	output, err := viewer.View(path, strings.ToUpper(h.method))
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeOpenAPI, "failed to render documentation")
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// Complete suggests documented paths for shell completion
func (h *DocsHandler) Complete(toComplete string) ([]string, cobra.ShellCompDirective) {
	viewer, err := h.viewer()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	paths, err := viewer.PathCompletions(h.method)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var out []string
	for _, p := range paths {
		if strings.HasPrefix(p, toComplete) {
			out = append(out, p)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
