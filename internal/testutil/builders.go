package testutil

import (
	"time"

	"github.com/brendan.keane/toastsms/internal/config"
)

// ConfigBuilder provides a fluent interface for building test configurations
type ConfigBuilder struct {
	config *config.Config
}

// NewConfigBuilder starts from the application defaults
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: config.NewConfig()}
}

// WithBaseURL sets the upstream base URL
func (b *ConfigBuilder) WithBaseURL(baseURL string) *ConfigBuilder {
	b.config.Toast.BaseURL = baseURL
	return b
}

// WithVersion sets the API version bound to {version}
func (b *ConfigBuilder) WithVersion(version string) *ConfigBuilder {
	b.config.Toast.Version = version
	return b
}

// WithEndpoint sets the get-message endpoint template
func (b *ConfigBuilder) WithEndpoint(endpoint string) *ConfigBuilder {
	b.config.Toast.Endpoints.GetMessage = endpoint
	return b
}

// WithFunctionKey enables the function key check
func (b *ConfigBuilder) WithFunctionKey(key string) *ConfigBuilder {
	b.config.Server.FunctionKey = key
	return b
}

// WithTimeout sets the upstream timeout
func (b *ConfigBuilder) WithTimeout(timeout time.Duration) *ConfigBuilder {
	b.config.Upstream.Timeout = timeout
	return b
}

// WithSigV4 enables SigV4 signing for the given service
func (b *ConfigBuilder) WithSigV4(service string) *ConfigBuilder {
	b.config.Upstream.SigV4Enabled = true
	b.config.Upstream.SigV4Service = service
	return b
}

// WithMCPDescription sets the MCP server description
func (b *ConfigBuilder) WithMCPDescription(desc string) *ConfigBuilder {
	b.config.MCP.Description = desc
	return b
}

// Build returns the configuration
func (b *ConfigBuilder) Build() *config.Config {
	return b.config
}

// UpstreamConfig returns a default configuration pointed at baseURL
func UpstreamConfig(baseURL string) *config.Config {
	return NewConfigBuilder().WithBaseURL(baseURL).Build()
}
