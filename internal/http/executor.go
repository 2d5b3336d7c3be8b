package http

import (
	"context"
	"time"

	"github.com/brendan.keane/toastsms/internal/config"
	"github.com/brendan.keane/toastsms/internal/errors"
	"github.com/rs/zerolog"
)

// executor implements MessageFetcher
// Dependencies are injected so each stage can be tested on its own
type executor struct {
	logger          zerolog.Logger
	httpClient      HTTPClientProvider
	urlResolver     URLResolver
	responseHandler ResponseHandler
	requestBuilder  *RequestBuilder
}

// NewExecutorWithDependencies creates a new fetcher with injected dependencies
func NewExecutorWithDependencies(
	logger zerolog.Logger,
	httpClient HTTPClientProvider,
	urlResolver URLResolver,
	responseHandler ResponseHandler,
	requestBuilder *RequestBuilder,
) MessageFetcher {
	return &executor{
		logger:          logger,
		httpClient:      httpClient,
		urlResolver:     urlResolver,
		responseHandler: responseHandler,
		requestBuilder:  requestBuilder,
	}
}

// NewExecutor wires the default resolver, builder and response handler around httpClient
func NewExecutor(logger zerolog.Logger, cfg *config.Config, httpClient HTTPClientProvider) MessageFetcher {
	return NewExecutorWithDependencies(
		logger,
		httpClient,
		NewURLResolver(cfg),
		NewResponseHandler(logger),
		NewRequestBuilder(logger, cfg),
	)
}

// GetMessage performs one upstream lookup
func (e *executor) GetMessage(ctx context.Context, msg MessageRequest) (*Message, error) {
	logger := e.logger.With().
		Str("request_id", msg.RequestID).
		Int("recipient_seq", msg.RecipientSeq).
		Logger()

	if !RequestIDPattern.MatchString(msg.RequestID) {
		return nil, errors.New(errors.ErrorTypeValidation, "request id must be digits followed by word characters").
			WithContext("field", "requestId").
			WithContext("value", msg.RequestID)
	}

	targetURL, err := e.urlResolver.ResolveURL(ctx, msg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve target URL")
		return nil, err
	}

	logger.Debug().Str("target_url", targetURL).Msg("URL resolved")

	req, err := e.requestBuilder.Build(ctx, targetURL, msg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build HTTP request")
		return nil, err
	}

	startTime := time.Now()
	resp, err := e.httpClient.Do(req)
	duration := time.Since(startTime)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("duration", duration).
			Msg("HTTP request failed")
		return nil, errors.Wrap(err, errors.ErrorTypeNetwork, "upstream request failed").
			WithContext("url", targetURL).
			WithContext("duration", duration)
	}
	defer resp.Body.Close()

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("HTTP request completed")

	message, err := e.responseHandler.HandleResponse(resp)
	if err != nil {
		if relayErr, ok := errors.As(err); ok {
			relayErr.WithContext("url", targetURL)
		}
		return nil, err
	}

	message.URL = targetURL
	message.Duration = duration
	return message, nil
}
