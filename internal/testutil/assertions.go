package testutil

import (
	"net/http"
	"testing"
)

// Request assertion helpers for fake upstream servers

// AssertHeaderSet fails the test if the request doesn't have the expected header value
func AssertHeaderSet(t *testing.T, req *http.Request, header, expectedValue string, msg string) {
	t.Helper()
	actualValue := req.Header.Get(header)
	if actualValue != expectedValue {
		t.Fatalf("%s: header %q: got %q, expected %q", msg, header, actualValue, expectedValue)
	}
}

// AssertHeaderNotSet fails the test if the request has the specified header
func AssertHeaderNotSet(t *testing.T, req *http.Request, header string, msg string) {
	t.Helper()
	if req.Header.Get(header) != "" {
		t.Fatalf("%s: expected header %q to not be set, but got %q", msg, header, req.Header.Get(header))
	}
}

// AssertPathEqual fails the test if the request path doesn't match expected
func AssertPathEqual(t *testing.T, req *http.Request, expectedPath string, msg string) {
	t.Helper()
	if req.URL.Path != expectedPath {
		t.Fatalf("%s: got path %q, expected %q", msg, req.URL.Path, expectedPath)
	}
}

// AssertQueryParam fails the test if the request doesn't have the expected query parameter
func AssertQueryParam(t *testing.T, req *http.Request, param, expectedValue string, msg string) {
	t.Helper()
	actualValue := req.URL.Query().Get(param)
	if actualValue != expectedValue {
		t.Fatalf("%s: query param %q: got %q, expected %q", msg, param, actualValue, expectedValue)
	}
}

// AssertRawQuery fails the test if the request's raw query differs from expected
func AssertRawQuery(t *testing.T, req *http.Request, expected string, msg string) {
	t.Helper()
	if req.URL.RawQuery != expected {
		t.Fatalf("%s: got query %q, expected %q", msg, req.URL.RawQuery, expected)
	}
}
