package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// LambdaInvoker is the subset of the Lambda API used for lambda:// URLs
type LambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Client wraps the standard http.Client and adds Lambda invocation support.
// It is shared by all requests; per-request state lives on the *http.Request only.
type Client struct {
	*http.Client

	lambdaOnce   sync.Once
	lambdaClient LambdaInvoker
	lambdaErr    error
}

// NewClient creates a new HTTP client with Lambda support.
// A zero timeout keeps the transport default.
func NewClient(timeout time.Duration) *Client {
	return NewClientWithHTTPClient(&http.Client{Timeout: timeout})
}

// NewClientWithHTTPClient creates a new client with a custom HTTP client
func NewClientWithHTTPClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Client: httpClient}
}

// NewClientWithInvoker creates a client that routes lambda:// URLs to invoker
func NewClientWithInvoker(httpClient *http.Client, invoker LambdaInvoker) *Client {
	c := NewClientWithHTTPClient(httpClient)
	c.lambdaOnce.Do(func() {
		c.lambdaClient = invoker
	})
	return c
}

// Do performs the request, routing to Lambda or HTTP based on the URL scheme
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme == "lambda" {
		return c.doLambda(req)
	}
	return c.Client.Do(req)
}

// invoker loads the AWS configuration on first use, so plain HTTP upstreams never need it
func (c *Client) invoker(ctx context.Context) (LambdaInvoker, error) {
	c.lambdaOnce.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			c.lambdaErr = fmt.Errorf("loading AWS config: %w", err)
			return
		}
		c.lambdaClient = lambda.NewFromConfig(cfg)
	})
	return c.lambdaClient, c.lambdaErr
}

// doLambda handles Lambda invocations
func (c *Client) doLambda(req *http.Request) (*http.Response, error) {
	// Extract Lambda function name from hostname
	functionName := req.URL.Host
	if functionName == "" {
		return nil, fmt.Errorf("lambda URL missing function name")
	}

	ctx := req.Context()

	invoker, err := c.invoker(ctx)
	if err != nil {
		return nil, err
	}

	// Convert HTTP request to Lambda proxy event
	event, err := httpRequestToLambdaEvent(req)
	if err != nil {
		return nil, fmt.Errorf("converting request to Lambda event: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshaling Lambda event: %w", err)
	}

	output, err := invoker.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return nil, fmt.Errorf("invoking Lambda function: %w", err)
	}

	if output.FunctionError != nil {
		return nil, fmt.Errorf("Lambda function error: %s", *output.FunctionError)
	}

	resp, err := lambdaResponseToHTTP(output.Payload)
	if err != nil {
		return nil, err
	}
	resp.Request = req
	return resp, nil
}

// httpRequestToLambdaEvent converts an outbound http.Request to an API Gateway v2 HTTP proxy event
func httpRequestToLambdaEvent(req *http.Request) (*events.APIGatewayV2HTTPRequest, error) {
	var bodyString string

	if req.Body != nil {
		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		bodyString = string(bodyBytes)
	}

	headers := make(map[string]string)
	for key, values := range req.Header {
		headers[strings.ToLower(key)] = strings.Join(values, ",")
	}
	if req.Host != "" {
		headers["host"] = req.Host
	}

	queryParams := make(map[string]string)
	for key, values := range req.URL.Query() {
		queryParams[key] = strings.Join(values, ",")
	}

	// RawPath keeps percent-encoding so bound values like "my%20app" survive the hop
	path, rawPath := req.URL.Path, req.URL.EscapedPath()
	if path == "" {
		path, rawPath = "/", "/"
	}
	now := time.Now()

	event := &events.APIGatewayV2HTTPRequest{
		Version:               "2.0",
		RouteKey:              "$default",
		RawPath:               rawPath,
		RawQueryString:        req.URL.RawQuery,
		Headers:               headers,
		QueryStringParameters: queryParams,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			APIID:        "lambda-adapter",
			DomainName:   req.URL.Host,
			DomainPrefix: req.URL.Host,
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:    req.Method,
				Path:      path,
				Protocol:  "HTTP/1.1",
				SourceIP:  "127.0.0.1",
				UserAgent: req.UserAgent(),
			},
			RequestID: req.Header.Get("X-Request-Id"),
			RouteKey:  "$default",
			Stage:     "$default",
			Time:      now.Format("02/Jan/2006:15:04:05 -0700"),
			TimeEpoch: now.UnixMilli(),
		},
		Body:            bodyString,
		IsBase64Encoded: false,
	}

	return event, nil
}

// lambdaResponseToHTTP converts a Lambda response to an http.Response
func lambdaResponseToHTTP(payload []byte) (*http.Response, error) {
	var lambdaResp events.APIGatewayV2HTTPResponse

	if err := json.Unmarshal(payload, &lambdaResp); err != nil {
		return nil, fmt.Errorf("parsing Lambda response: %w", err)
	}

	statusCode := lambdaResp.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}

	resp := &http.Response{
		StatusCode: statusCode,
		Status:     fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Header:     make(http.Header),
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
	}

	for key, value := range lambdaResp.Headers {
		resp.Header.Set(key, value)
	}
	for key, values := range lambdaResp.MultiValueHeaders {
		for _, value := range values {
			resp.Header.Add(key, value)
		}
	}

	bodyBytes := []byte(lambdaResp.Body)
	if lambdaResp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(lambdaResp.Body)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 Lambda body: %w", err)
		}
		bodyBytes = decoded
	}
	resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	resp.ContentLength = int64(len(bodyBytes))

	return resp, nil
}
