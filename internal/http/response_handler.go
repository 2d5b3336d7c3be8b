package http

import (
	"io"
	"net/http"

	"github.com/brendan.keane/toastsms/internal/errors"
	"github.com/rs/zerolog"
)

// DefaultContentType is assumed when the upstream omits Content-Type
const DefaultContentType = "application/json"

// responseHandler implements ResponseHandler interface
type responseHandler struct {
	logger zerolog.Logger
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(logger zerolog.Logger) ResponseHandler {
	return &responseHandler{
		logger: logger.With().Str("component", "response_handler").Logger(),
	}
}

// HandleResponse reads the upstream body. Non-2xx statuses become upstream
// errors that still carry the status, body and content type for pass-through.
func (h *responseHandler) HandleResponse(resp *http.Response) (*Message, error) {
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = DefaultContentType
	}

	logger := h.logger.With().
		Int("status", resp.StatusCode).
		Str("content_type", contentType).
		Logger()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read response body")
		return nil, errors.Wrap(err, errors.ErrorTypeNetwork, "failed to read response body").
			WithContext("status_code", resp.StatusCode)
	}

	logger.Debug().
		Int("body_length", len(body)).
		Msg("response body read")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn().Msg("upstream returned non-success status")
		return nil, errors.New(errors.ErrorTypeUpstream, "upstream returned an error").
			WithContext("status_code", resp.StatusCode).
			WithContext("content_type", contentType).
			WithContext("body", string(body))
	}

	return &Message{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Header:      resp.Header,
		Body:        body,
	}, nil
}
