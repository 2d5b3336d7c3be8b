package server

import (
	"net/http"

	relayhttp "github.com/brendan.keane/toastsms/internal/http"
	"github.com/go-chi/chi/v5"
)

const (
	appKeyHeader    = "x-app-key"
	secretKeyHeader = "x-secret-key"
)

// handleGetMessage relays GET /messages/{requestId} to the SMS API
func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	req := relayhttp.MessageRequest{
		AppKey:       r.Header.Get(appKeyHeader),
		SecretKey:    r.Header.Get(secretKeyHeader),
		RequestID:    chi.URLParam(r, "requestId"),
		RecipientSeq: relayhttp.ParseRecipientSeq(r.URL.Query().Get("recipientSeq")),
	}

	message, err := s.fetcher.GetMessage(r.Context(), req)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	w.Header().Set("Content-Type", message.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(message.Body)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.openAPIJSON)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
