package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelayError_Error(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	assert.Equal(t, "upstream request failed: connection refused",
		Wrap(cause, ErrorTypeNetwork, "upstream request failed").Error())
	assert.Equal(t, "bad template", New(ErrorTypeTemplate, "bad template").Error())
}

func TestRelayError_UnwrapAndIs(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := fmt.Errorf("outer: %w", Wrap(cause, ErrorTypeNetwork, "failed"))

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, stderrors.Is(err, New(ErrorTypeNetwork, "")))
	assert.False(t, stderrors.Is(err, New(ErrorTypeConfig, "")))
	assert.True(t, IsType(err, ErrorTypeNetwork))
	assert.Equal(t, ErrorTypeNetwork, GetType(err))
	assert.Equal(t, ErrorTypeInternal, GetType(cause))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"plain error", fmt.Errorf("x"), http.StatusInternalServerError},
		{"template", New(ErrorTypeTemplate, "x"), http.StatusInternalServerError},
		{"config", New(ErrorTypeConfig, "x"), http.StatusInternalServerError},
		{"validation", New(ErrorTypeValidation, "x"), http.StatusBadRequest},
		{"auth", New(ErrorTypeAuth, "x"), http.StatusUnauthorized},
		{"not found", New(ErrorTypeNotFound, "x"), http.StatusNotFound},
		{"method not allowed", New(ErrorTypeMethod, "x"), http.StatusMethodNotAllowed},
		{"network", New(ErrorTypeNetwork, "x"), http.StatusBadGateway},
		{"upstream with status", New(ErrorTypeUpstream, "x").WithContext("status_code", 404), http.StatusNotFound},
		{"upstream without status", New(ErrorTypeUpstream, "x"), http.StatusBadGateway},
		{"upstream with non-error status", New(ErrorTypeUpstream, "x").WithContext("status_code", 302), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Invalid recipientSeq: must be numeric",
		UserMessage(New(ErrorTypeValidation, "must be numeric").WithContext("field", "recipientSeq")))
	assert.Equal(t, "upstream returned an error (status 500)",
		UserMessage(New(ErrorTypeUpstream, "upstream returned an error").WithContext("status_code", 500)))
	assert.Equal(t, "cannot bind template: no value for {appKey}",
		UserMessage(New(ErrorTypeTemplate, "cannot bind template").WithContext("field", "appKey")))
	assert.Equal(t, "plain", UserMessage(fmt.Errorf("plain")))
}

func TestDebugInfo(t *testing.T) {
	info := DebugInfo(Wrap(fmt.Errorf("cause"), ErrorTypeConfig, "msg").WithContext("k", "v"))

	assert.Equal(t, "config", info["type"])
	assert.Equal(t, "msg", info["message"])
	assert.Equal(t, "cause", info["cause"])
	assert.Equal(t, map[string]interface{}{"k": "v"}, info["context"])
}
