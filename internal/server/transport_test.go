package server

import (
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brendan.keane/toastsms/internal/config"
	"github.com/brendan.keane/toastsms/internal/errors"
	relayhttp "github.com/brendan.keane/toastsms/internal/http"
	"github.com/brendan.keane/toastsms/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run the real fetcher over a recording HTTP client

func newMockedRelay(cfg *config.Config, client *testutil.MockHTTPClient) http.Handler {
	fetcher := relayhttp.NewClientFactory(zerolog.Nop()).CreateFetcherWithCustomClient(cfg, client)
	return New(zerolog.Nop(), cfg, fetcher, []byte(testOpenAPI)).Handler()
}

func TestRelay_CustomEndpointTemplate(t *testing.T) {
	cfg := testutil.NewConfigBuilder().
		WithBaseURL("https://sms.example.com/").
		WithVersion("2.4").
		WithEndpoint("/v{version}/messages/{requestId}").
		WithTimeout(5 * time.Second).
		Build()
	client := testutil.NewMockHTTPClient(testutil.MessageResponse, http.StatusOK, map[string]string{"Content-Type": "application/json"}, nil)

	rec := serve(newMockedRelay(cfg, client), "GET", "/messages/"+testutil.TestRequestID+"?recipientSeq=2", map[string]string{
		"x-app-key":    testutil.TestAppKey,
		"x-secret-key": testutil.TestSecretKey,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, client.Requests, 1)

	got := client.Requests[0]
	assert.Equal(t, "sms.example.com", got.URL.Host)
	testutil.AssertPathEqual(t, got, "/v2.4/messages/"+testutil.TestRequestID, "bound path")
	// unused non-zero fields follow in declaration order
	testutil.AssertRawQuery(t, got, "appKey="+testutil.TestAppKey+"&recipientSeq=2", "unused fields")
}

func TestRelay_SigV4KeepsSecretHeader(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	cfg := testutil.NewConfigBuilder().
		WithBaseURL("https://abc123.execute-api.eu-west-1.amazonaws.com/prod").
		WithSigV4("execute-api").
		Build()
	client := testutil.NewMockHTTPClient(testutil.MessageResponse, http.StatusOK, nil, nil)

	rec := serve(newMockedRelay(cfg, client), "GET", "/messages/"+testutil.TestRequestID, map[string]string{
		"x-app-key":    testutil.TestAppKey,
		"x-secret-key": testutil.TestSecretKey,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), "default content type")
	require.Len(t, client.Requests, 1)

	got := client.Requests[0]
	testutil.AssertHeaderSet(t, got, "X-Secret-Key", testutil.TestSecretKey, "secret survives signing")
	auth := got.Header.Get("Authorization")
	assert.True(t, strings.HasPrefix(auth, "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/"), auth)
	assert.Contains(t, auth, "/eu-west-1/execute-api/aws4_request")
	assert.NotEmpty(t, got.Header.Get("X-Amz-Date"))
}

func TestRelay_MockTransportError(t *testing.T) {
	cfg := testutil.NewConfigBuilder().Build()
	client := testutil.NewMockHTTPClient("", 0, nil, assert.AnError)

	rec := serve(newMockedRelay(cfg, client), "GET", "/messages/"+testutil.TestRequestID, nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, errors.ErrorTypeNetwork, decodeError(t, rec).Type)
}
