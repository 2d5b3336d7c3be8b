package errors

import (
	"fmt"
	"testing"
)

func TestRelayError(t *testing.T) {
	err := New(ErrorTypeTemplate, "cannot bind template")
	if err.Type != ErrorTypeTemplate {
		t.Errorf("Expected type %s, got %s", ErrorTypeTemplate, err.Type)
	}
	if err.Message != "cannot bind template" {
		t.Errorf("Expected message 'cannot bind template', got '%s'", err.Message)
	}

	cause := fmt.Errorf("dial tcp: connection refused")
	wrapped := Wrap(cause, ErrorTypeNetwork, "upstream request failed")
	if wrapped.Cause != cause {
		t.Errorf("Expected cause to be preserved")
	}
	if wrapped.Type != ErrorTypeNetwork {
		t.Errorf("Expected type %s, got %s", ErrorTypeNetwork, wrapped.Type)
	}

	err.WithContext("field", "tenant")
	if err.Context["field"] != "tenant" {
		t.Errorf("Expected context to be set")
	}

	expected := "upstream request failed: dial tcp: connection refused"
	if got := wrapped.Error(); got != expected {
		t.Errorf("Expected '%s', got '%s'", expected, got)
	}
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeUpstream, "upstream returned an error")

	if !IsType(err, ErrorTypeUpstream) {
		t.Errorf("Expected IsType to return true for correct type")
	}
	if IsType(err, ErrorTypeNetwork) {
		t.Errorf("Expected IsType to return false for incorrect type")
	}

	// Wrapped by a caller that only knows the error interface
	outer := fmt.Errorf("get message: %w", err)
	if !IsType(outer, ErrorTypeUpstream) {
		t.Errorf("Expected IsType to see through fmt wrapping")
	}

	if IsType(fmt.Errorf("standard error"), ErrorTypeUpstream) {
		t.Errorf("Expected IsType to return false for standard error")
	}
}

func TestGetType(t *testing.T) {
	err := Newf(ErrorTypeConfig, "unknown scheme %q", "ftp")
	if GetType(err) != ErrorTypeConfig {
		t.Errorf("Expected type %s, got %s", ErrorTypeConfig, GetType(err))
	}
	if err.Message != `unknown scheme "ftp"` {
		t.Errorf("Unexpected message %q", err.Message)
	}

	if GetType(fmt.Errorf("standard error")) != ErrorTypeInternal {
		t.Errorf("Expected type %s for standard error", ErrorTypeInternal)
	}
}
