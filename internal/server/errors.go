package server

import (
	"encoding/json"
	"net/http"

	"github.com/brendan.keane/toastsms/internal/errors"
	"github.com/rs/zerolog"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Type    errors.ErrorType `json:"type"`
	Message string           `json:"message"`
	Field   string           `json:"field,omitempty"`
}

// writeError maps err to a response. Upstream errors are passed through with the
// upstream's status, content type and body; everything else gets a JSON error.
func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	status := errors.HTTPStatus(err)
	errType := errors.GetType(err)
	ctx := errors.GetContext(err)

	if errType == errors.ErrorTypeUpstream {
		if body, ok := ctx["body"].(string); ok {
			if contentType, ok := ctx["content_type"].(string); ok {
				w.Header().Set("Content-Type", contentType)
			}
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
			return
		}
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("error_type", string(errType)).Msg("request failed")
	}

	detail := errorDetail{Type: errType, Message: errors.UserMessage(err)}
	if field, ok := ctx["field"].(string); ok {
		detail.Field = field
	}
	writeJSON(w, status, errorBody{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
