package cli

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/brendan.keane/toastsms/internal/config"
	"github.com/brendan.keane/toastsms/internal/errors"
	"github.com/brendan.keane/toastsms/internal/testutil"
	"github.com/brendan.keane/toastsms/pkg/openapi"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--log-level", "error"))

	err := root.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestGet_Success(t *testing.T) {
	upstream := testutil.NewToastTestServer()
	defer upstream.Close()

	res := run(t, "", "get", testutil.TestRequestID,
		"--base-url", upstream.URL,
		"--app-key", testutil.TestAppKey,
		"--secret-key", testutil.TestSecretKey,
		"--recipient-seq", "4",
		"-i",
	)
	require.NoError(t, res.err)
	assert.JSONEq(t, testutil.MessageResponse, res.stdout)
	assert.Contains(t, res.stderr, "200")

	req := upstream.LastRequest()
	require.NotNil(t, req)
	testutil.AssertPathEqual(t, req, "/sms/v3.0/appKeys/"+testutil.TestAppKey+"/sender/sms/"+testutil.TestRequestID, "get path")
	testutil.AssertQueryParam(t, req, "recipientSeq", "4", "get query")
	testutil.AssertHeaderSet(t, req, "X-Secret-Key", testutil.TestSecretKey, "get secret")
}

func TestGet_KeysFromEnvironment(t *testing.T) {
	upstream := testutil.NewToastTestServer()
	defer upstream.Close()

	t.Setenv("TOASTSMS_APP_KEY", testutil.TestAppKey)
	t.Setenv("TOASTSMS_SECRET_KEY", testutil.TestSecretKey)

	res := run(t, "", "get", testutil.TestRequestID, "--base-url", upstream.URL, "--recipient-seq", "second")
	require.NoError(t, res.err)

	req := upstream.LastRequest()
	require.NotNil(t, req)
	testutil.AssertHeaderSet(t, req, "X-Secret-Key", testutil.TestSecretKey, "secret from env")
	testutil.AssertRawQuery(t, req, "", "unparsable recipient seq is 0 and omitted")
}

func TestGet_UpstreamErrorPrintsBody(t *testing.T) {
	upstream := testutil.NewToastTestServer()
	defer upstream.Close()

	res := run(t, "", "get", testutil.TestRequestID,
		"--base-url", upstream.URL,
		"--app-key", testutil.TestAppKey,
		"--secret-key", "wrong",
		"-i",
	)
	require.Error(t, res.err)
	assert.True(t, errors.IsType(res.err, errors.ErrorTypeUpstream))
	assert.JSONEq(t, testutil.AuthErrorResponse, res.stdout)
	assert.Contains(t, res.stderr, "401")
}

func TestGet_InvalidRequestID(t *testing.T) {
	upstream := testutil.NewToastTestServer()
	defer upstream.Close()

	res := run(t, "", "get", "ABC", "--base-url", upstream.URL)
	require.Error(t, res.err)
	assert.True(t, errors.IsType(res.err, errors.ErrorTypeValidation))
	assert.Empty(t, upstream.Requests())
}

func TestGet_TransportFailure(t *testing.T) {
	res := run(t, "", "get", testutil.TestRequestID, "--base-url", testutil.NewClosedServerURL())
	require.Error(t, res.err)
	assert.True(t, errors.IsType(res.err, errors.ErrorTypeNetwork))
	assert.Empty(t, res.stdout)
}

func TestInvalidConfiguration(t *testing.T) {
	res := run(t, "", "get", testutil.TestRequestID, "--base-url", "ftp://example.com")
	require.Error(t, res.err)
	assert.True(t, errors.IsType(res.err, errors.ErrorTypeConfig))

	res = run(t, "", "get", testutil.TestRequestID, "--endpoint", "/sms/{tenant}/{requestId}")
	require.Error(t, res.err)
	assert.True(t, errors.IsType(res.err, errors.ErrorTypeTemplate))
}

func TestDocs(t *testing.T) {
	res := run(t, "", "docs")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Toast SMS Relay")
	assert.Contains(t, res.stdout, "/messages/{requestId}")

	res = run(t, "", "docs", "/messages/{requestId}", "-X", "get")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "recipientSeq")
}

func TestDocs_SpecFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testutil.MinimalOpenAPIDoc), 0o600))

	res := run(t, "", "docs", "--spec", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Fixture API")

	res = run(t, "", "docs", "--spec", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, res.err)
	assert.True(t, errors.IsType(res.err, errors.ErrorTypeOpenAPI))
}

func TestDocs_Complete(t *testing.T) {
	h := NewDocsHandler(zerolog.Nop(), "", "ANY")

	paths, directive := h.Complete("/m")
	assert.Equal(t, []string{"/messages/{requestId}"}, paths)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	paths, _ = NewDocsHandler(zerolog.Nop(), "", "DELETE").Complete("")
	assert.Empty(t, paths)

	_, directive = NewDocsHandler(zerolog.Nop(), "/nonexistent.json", "ANY").Complete("")
	assert.Equal(t, cobra.ShellCompDirectiveError, directive)
}

func TestMCP_Stdio(t *testing.T) {
	stdin := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","clientInfo":{"name":"test","version":"1"},"capabilities":{}}}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n"

	res := run(t, stdin, "mcp", "--mcp-desc", "Support desk SMS lookups")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Support desk SMS lookups")
	assert.Contains(t, res.stdout, `"get_message"`)
}

func commandWithConfig(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(config.WithConfig(context.Background(), cfg))
	return cmd
}

func TestLambda_ServesRelay(t *testing.T) {
	upstream := testutil.NewToastTestServer()
	defer upstream.Close()

	var started interface{}
	h := NewServeHandler(zerolog.Nop())
	h.startLambda = func(handler interface{}) { started = handler }

	require.NoError(t, h.Lambda(commandWithConfig(testutil.UpstreamConfig(upstream.URL)), nil))

	handle, ok := started.(func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error))
	require.True(t, ok, "Lambda runtime should receive an API Gateway v2 handler")

	resp, err := handle(context.Background(), events.APIGatewayV2HTTPRequest{
		RawPath:        "/messages/" + testutil.TestRequestID,
		RawQueryString: "recipientSeq=1",
		Headers: map[string]string{
			"x-app-key":    testutil.TestAppKey,
			"x-secret-key": testutil.TestSecretKey,
		},
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RequestID: "lambda-req-1",
			HTTP:      events.APIGatewayV2HTTPRequestContextHTTPDescription{Method: http.MethodGet},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, testutil.MessageResponse, resp.Body)

	req := upstream.LastRequest()
	require.NotNil(t, req)
	testutil.AssertHeaderSet(t, req, "X-Request-Id", "lambda-req-1", "correlation id reaches upstream")
}

func TestServe_StopsWithContext(t *testing.T) {
	cfg := testutil.NewConfigBuilder().Build()
	cfg.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(config.WithConfig(context.Background(), cfg))
	cancel()

	cmd := &cobra.Command{}
	cmd.SetContext(ctx)

	assert.NoError(t, NewServeHandler(zerolog.Nop()).Serve(cmd, nil))
}

func TestServe_InvalidOpenAPIDocumentFailsStartup(t *testing.T) {
	tests := []struct {
		name string
		load func() (*openapi.Parser, error)
	}{
		{
			name: "unparsable document",
			load: func() (*openapi.Parser, error) {
				p := openapi.NewParser()
				return p, p.LoadFromBytes([]byte(`{not json`))
			},
		},
		{
			name: "missing get-message operation",
			load: func() (*openapi.Parser, error) {
				p := openapi.NewParser()
				return p, p.LoadFromBytes([]byte(`{"openapi":"3.0.3","info":{"title":"Empty","version":"1"},"paths":{}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			started := false
			h := NewServeHandler(zerolog.Nop())
			h.loadDocument = tt.load
			h.startLambda = func(interface{}) { started = true }

			err := h.Lambda(commandWithConfig(testutil.NewConfigBuilder().Build()), nil)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeOpenAPI))
			assert.False(t, started)
		})
	}
}

func TestConfigFrom_WithoutContext(t *testing.T) {
	cmd := &cobra.Command{}
	config.RegisterFlags(cmd.Flags())
	require.Nil(t, cmd.Context())

	cfg, err := configFrom(cmd)
	require.NoError(t, err)
	assert.Equal(t, "3.0", cfg.Toast.Version)
}

func TestConfigFrom_FallsBackToFlags(t *testing.T) {
	cmd := &cobra.Command{}
	config.RegisterFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{"--api-version", "2.4"}))

	cfg, err := configFrom(cmd)
	require.NoError(t, err)
	assert.Equal(t, "2.4", cfg.Toast.Version)
}
