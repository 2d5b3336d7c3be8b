package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/brendan.keane/toastsms/internal/config"
	"github.com/rs/zerolog"
)

func TestClientFactory_CreateFetcher(t *testing.T) {
	factory := NewClientFactory(zerolog.Nop())

	tests := []struct {
		name   string
		config *config.Config
	}{
		{
			name:   "default config",
			config: config.NewConfig(),
		},
		{
			name: "lambda upstream",
			config: func() *config.Config {
				cfg := config.NewConfig()
				cfg.Toast.BaseURL = "lambda://toast-stub"
				return cfg
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if fetcher := factory.CreateFetcher(tt.config); fetcher == nil {
				t.Error("CreateFetcher() returned nil fetcher")
			}
		})
	}
}

func TestClientFactory_CreateFetcherWithCustomClient(t *testing.T) {
	factory := NewClientFactory(zerolog.Nop())

	mockClient := &mockHTTPClient{response: &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(strings.NewReader(`{}`)),
		Header:     make(http.Header),
	}}

	fetcher := factory.CreateFetcherWithCustomClient(config.NewConfig(), mockClient)
	if fetcher == nil {
		t.Fatal("CreateFetcherWithCustomClient() returned nil fetcher")
	}

	if _, err := fetcher.GetMessage(context.Background(), MessageRequest{RequestID: "1A"}); err != nil {
		t.Fatalf("GetMessage() unexpected error: %v", err)
	}
	if len(mockClient.requests) != 1 {
		t.Fatalf("expected the custom client to be used once, got %d", len(mockClient.requests))
	}
	if got := mockClient.requests[0].URL.String(); got != "https://api-sms.cloud.toast.com/sms/v3.0/appKeys//sender/sms/1A" {
		t.Errorf("resolved URL = %s", got)
	}
}
