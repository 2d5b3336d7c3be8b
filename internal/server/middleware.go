package server

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/brendan.keane/toastsms/internal/errors"
	relayhttp "github.com/brendan.keane/toastsms/internal/http"
	"github.com/brendan.keane/toastsms/internal/logger"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader   = "X-Request-Id"
	functionKeyHeader = "x-functions-key"
	functionKeyQuery  = "code"
)

// requestIDMiddleware reuses the caller's X-Request-Id or assigns a new one
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(relayhttp.WithRequestID(r.Context(), id)))
	})
}

// accessLogMiddleware writes one log line per request
func accessLogMiddleware(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			id, _ := relayhttp.RequestIDFromContext(r.Context())
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			level := zerolog.InfoLevel
			if status >= http.StatusInternalServerError {
				level = zerolog.ErrorLevel
			} else if status >= http.StatusBadRequest {
				level = zerolog.WarnLevel
			}

			reqLog := logger.ForRequest(base, id, r.Method, r.URL.Path)
			reqLog.WithLevel(level).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request handled")
		})
	}
}

// functionKeyMiddleware enforces the function access key when one is configured
func functionKeyMiddleware(key string, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(functionKeyHeader)
			if supplied == "" {
				supplied = r.URL.Query().Get(functionKeyQuery)
			}
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(key)) != 1 {
				writeError(w, log, errors.New(errors.ErrorTypeAuth, "missing or invalid function key").
					WithContext("header", functionKeyHeader))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
