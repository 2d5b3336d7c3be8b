package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	internalconfig "github.com/brendan.keane/toastsms/internal/config"
	"github.com/brendan.keane/toastsms/internal/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserAgent is sent on every upstream request
const UserAgent = "toastsms"

// emptyPayloadHash is the SHA-256 of an empty body, used when signing GET requests
var emptyPayloadHash = func() string {
	sum := sha256.Sum256(nil)
	return hex.EncodeToString(sum[:])
}()

// AWSConfigLoader loads the AWS configuration used for SigV4 signing
type AWSConfigLoader func(ctx context.Context) (aws.Config, error)

// RequestBuilder builds a fresh upstream request per call.
// All per-call state, the secret key included, is attached to the request itself.
type RequestBuilder struct {
	logger       zerolog.Logger
	sigV4Enabled bool
	sigV4Service string
	loadAWS      AWSConfigLoader
	now          func() time.Time
}

// NewRequestBuilder creates a new request builder
func NewRequestBuilder(logger zerolog.Logger, cfg *internalconfig.Config) *RequestBuilder {
	return &RequestBuilder{
		logger:       logger.With().Str("component", "request_builder").Logger(),
		sigV4Enabled: cfg.Upstream.SigV4Enabled,
		sigV4Service: cfg.Upstream.SigV4Service,
		loadAWS: func(ctx context.Context) (aws.Config, error) {
			return awsconfig.LoadDefaultConfig(ctx)
		},
		now: time.Now,
	}
}

// WithAWSConfigLoader replaces the credential source used for SigV4 signing
func (b *RequestBuilder) WithAWSConfigLoader(loader AWSConfigLoader) *RequestBuilder {
	b.loadAWS = loader
	return b
}

// Build creates the upstream GET request for targetURL
func (b *RequestBuilder) Build(ctx context.Context, targetURL string, msg MessageRequest) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation, "failed to create HTTP request").
			WithContext("url", targetURL)
	}

	requestID, ok := RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
	}

	req.Header.Set("X-Secret-Key", msg.SecretKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("X-Request-Id", requestID)

	if err := b.applyAuthentication(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

// applyAuthentication signs the request when SigV4 is enabled
func (b *RequestBuilder) applyAuthentication(ctx context.Context, req *http.Request) error {
	logger := b.logger.With().Str("component", "auth").Logger()

	// Direct invocations are authorized by the Lambda API call itself
	if strings.EqualFold(req.URL.Scheme, "lambda") {
		logger.Debug().Msg("lambda URL detected, skipping SigV4")
		return nil
	}

	if !b.sigV4Enabled {
		return nil
	}

	logger.Debug().
		Str("service", b.sigV4Service).
		Msg("applying AWS SigV4 signature")

	if err := b.applySigV4(ctx, req); err != nil {
		return errors.Wrap(err, errors.ErrorTypeAuth, "SigV4 signing failed")
	}

	return nil
}

// applySigV4 applies AWS SigV4 signing to the request
func (b *RequestBuilder) applySigV4(ctx context.Context, req *http.Request) error {
	cfg, err := b.loadAWS(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeAuth, "failed to load AWS configuration").
			WithContext("suggestion", "ensure AWS credentials are configured")
	}

	region := cfg.Region
	if region == "" {
		return errors.New(errors.ErrorTypeAuth, "AWS region not configured").
			WithContext("suggestion", "set AWS_REGION or AWS_DEFAULT_REGION environment variable")
	}
	if cfg.Credentials == nil {
		return errors.New(errors.ErrorTypeAuth, "AWS credentials not configured")
	}

	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeAuth, "failed to retrieve AWS credentials").
			WithContext("suggestion", "check AWS credential configuration")
	}

	signer := v4.NewSigner()
	if err := signer.SignHTTP(ctx, creds, req, emptyPayloadHash, b.sigV4Service, region, b.now()); err != nil {
		return errors.Wrap(err, errors.ErrorTypeAuth, "failed to sign request with SigV4").
			WithContext("service", b.sigV4Service).
			WithContext("region", region)
	}

	b.logger.Debug().
		Str("service", b.sigV4Service).
		Str("region", region).
		Msg("SigV4 signature applied")

	return nil
}
