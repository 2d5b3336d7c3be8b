package http

import (
	"github.com/brendan.keane/toastsms/internal/config"
	relayhttp "github.com/brendan.keane/toastsms/pkg/http"
	"github.com/rs/zerolog"
)

// ClientFactory centralizes fetcher creation so every entry point shares one client
type ClientFactory struct {
	logger zerolog.Logger
}

// NewClientFactory creates a new client factory
func NewClientFactory(logger zerolog.Logger) *ClientFactory {
	return &ClientFactory{
		logger: logger,
	}
}

// CreateFetcher creates a MessageFetcher backed by a Lambda-capable HTTP client
func (f *ClientFactory) CreateFetcher(cfg *config.Config) MessageFetcher {
	return f.CreateFetcherWithCustomClient(cfg, relayhttp.NewClient(cfg.Upstream.Timeout))
}

// CreateFetcherWithCustomClient creates a MessageFetcher around httpClient
// This is useful for testing with mock HTTP clients
func (f *ClientFactory) CreateFetcherWithCustomClient(cfg *config.Config, httpClient HTTPClientProvider) MessageFetcher {
	return NewExecutor(
		f.logger.With().Str("component", "http_executor").Logger(),
		cfg,
		httpClient,
	)
}
