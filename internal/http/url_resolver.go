package http

import (
	"context"
	stderrors "errors"
	"net/url"

	"github.com/brendan.keane/toastsms/internal/config"
	"github.com/brendan.keane/toastsms/internal/errors"
	"github.com/brendan.keane/toastsms/internal/urlformat"
)

// urlResolver implements URLResolver interface
// The template and version are captured once; nothing here depends on request state
type urlResolver struct {
	template string
	version  string
}

// NewURLResolver creates a new URL resolver with the given configuration
func NewURLResolver(cfg *config.Config) URLResolver {
	return &urlResolver{
		template: cfg.GetMessageTemplate(),
		version:  cfg.Toast.Version,
	}
}

// ResolveURL formats the get-message template with the request's fields
func (r *urlResolver) ResolveURL(ctx context.Context, req MessageRequest) (string, error) {
	formatted, err := urlformat.Format(r.template, req.Options(r.version))
	if err != nil {
		wrapped := errors.Wrap(err, errors.ErrorTypeTemplate, "cannot bind get-message template").
			WithContext("template", r.template)
		var bindErr *urlformat.BindingError
		if stderrors.As(err, &bindErr) {
			wrapped.WithContext("field", bindErr.Field)
		}
		return "", wrapped
	}

	parsed, err := url.Parse(formatted)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeTemplate, "formatted URL is invalid").
			WithContext("url", formatted)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", errors.New(errors.ErrorTypeTemplate, "formatted URL must be absolute").
			WithContext("url", formatted)
	}

	return formatted, nil
}
