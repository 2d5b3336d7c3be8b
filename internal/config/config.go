package config

import (
	"context"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/brendan.keane/toastsms/internal/errors"
	"github.com/brendan.keane/toastsms/internal/urlformat"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TOASTSMS_TOAST_BASE_URL
const EnvPrefix = "TOASTSMS"

// Config holds all application configuration.
// It is built once at process start and passed to every component; nothing mutates it afterwards.
type Config struct {
	Toast    ToastConfig    `mapstructure:"toast"`
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Log      LogConfig      `mapstructure:"log"`
	MCP      MCPConfig      `mapstructure:"mcp"`
}

// ToastConfig describes the upstream SMS API
type ToastConfig struct {
	BaseURL   string          `mapstructure:"base_url"`
	Version   string          `mapstructure:"version"`
	Endpoints EndpointsConfig `mapstructure:"endpoints"`
}

// EndpointsConfig holds endpoint path templates with {name} placeholders
type EndpointsConfig struct {
	GetMessage string `mapstructure:"get_message"`
}

// ServerConfig holds inbound HTTP settings
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	FunctionKey string `mapstructure:"function_key"` // empty disables the check
}

// UpstreamConfig holds outbound transport settings
type UpstreamConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"` // 0 keeps the transport default
	SigV4Enabled bool          `mapstructure:"sigv4"`
	SigV4Service string        `mapstructure:"sigv4_service"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Debug  bool   `mapstructure:"debug"`
}

// MCPConfig holds MCP-specific configuration
type MCPConfig struct {
	Description string `mapstructure:"description"` // Server description for LLM context
}

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"base-url":       "toast.base_url",
	"api-version":    "toast.version",
	"endpoint":       "toast.endpoints.get_message",
	"addr":           "server.addr",
	"function-key":   "server.function_key",
	"timeout":        "upstream.timeout",
	"sig-v4":         "upstream.sigv4",
	"sig-v4-service": "upstream.sigv4_service",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"debug":          "log.debug",
	"mcp-desc":       "mcp.description",
}

// contextKey is a custom type for context keys
type contextKey string

// configKey is the context key for storing config
const configKey contextKey = "config"

// WithConfig adds config to context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(configKey).(*Config)
	return cfg, ok
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("toast.base_url", "https://api-sms.cloud.toast.com")
	v.SetDefault("toast.version", "3.0")
	v.SetDefault("toast.endpoints.get_message", "/sms/v{version}/appKeys/{appKey}/sender/sms/{requestId}")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.function_key", "")
	v.SetDefault("upstream.timeout", "0s")
	v.SetDefault("upstream.sigv4", false)
	v.SetDefault("upstream.sigv4_service", "execute-api")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.debug", false)
	v.SetDefault("mcp.description", "")
}

// NewConfig creates a Config with default values
func NewConfig() *Config {
	cfg, _ := load(viper.New(), nil)
	return cfg
}

// LoadFromFlags creates a Config from defaults, an optional config file,
// TOASTSMS_* environment variables and command line flags, lowest to highest priority
func LoadFromFlags(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	configFile := os.Getenv(EnvPrefix + "_CONFIG")
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			configFile = f.Value.String()
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file").
				WithContext("config_type", "file").
				WithContext("path", configFile)
		}
	}

	return load(v, flags)
}

func load(v *viper.Viper, flags *pflag.FlagSet) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, errors.ErrorTypeConfig, "failed to bind %s flag", name)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to decode configuration")
	}

	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	return cfg, nil
}

// GetMessageTemplate joins the base URL and the get-message endpoint template
func (c *Config) GetMessageTemplate() string {
	return strings.TrimRight(c.Toast.BaseURL, "/") + "/" + strings.TrimLeft(c.Toast.Endpoints.GetMessage, "/")
}

// Validate ensures the configuration is valid
func (c *Config) Validate() error {
	if c.Toast.BaseURL == "" {
		return errors.New(errors.ErrorTypeConfig, "base URL is required").
			WithContext("config_type", "toast").
			WithContext("suggestion", "set TOASTSMS_TOAST_BASE_URL or use --base-url")
	}

	base, err := url.Parse(c.Toast.BaseURL)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "invalid base URL").
			WithContext("config_type", "toast").
			WithContext("base_url", c.Toast.BaseURL)
	}

	switch base.Scheme {
	case "http", "https", "lambda":
	default:
		return errors.New(errors.ErrorTypeConfig, "base URL must be absolute (http, https or lambda scheme)").
			WithContext("config_type", "toast").
			WithContext("base_url", c.Toast.BaseURL)
	}
	if base.Host == "" {
		return errors.New(errors.ErrorTypeConfig, "base URL has no host").
			WithContext("config_type", "toast").
			WithContext("base_url", c.Toast.BaseURL)
	}

	if strings.TrimSpace(c.Toast.Endpoints.GetMessage) == "" {
		return errors.New(errors.ErrorTypeConfig, "get-message endpoint template is required").
			WithContext("config_type", "toast").
			WithContext("suggestion", "set TOASTSMS_TOAST_ENDPOINTS_GET_MESSAGE or use --endpoint")
	}

	// Catch template/options mismatches at startup instead of on the first request
	if _, err := urlformat.Format(c.GetMessageTemplate(), urlformat.GetMessageOptions{}); err != nil {
		wrapped := errors.Wrap(err, errors.ErrorTypeTemplate, "get-message endpoint template cannot be bound").
			WithContext("template", c.Toast.Endpoints.GetMessage)
		if bindErr, ok := err.(*urlformat.BindingError); ok {
			wrapped.WithContext("field", bindErr.Field)
		}
		return wrapped
	}

	switch c.Log.Format {
	case "json", "pretty":
	default:
		return errors.New(errors.ErrorTypeValidation, "invalid log format").
			WithContext("field", "log format").
			WithContext("format", c.Log.Format).
			WithContext("valid_formats", []string{"json", "pretty"})
	}

	if c.Upstream.Timeout < 0 {
		return errors.New(errors.ErrorTypeValidation, "upstream timeout cannot be negative").
			WithContext("field", "upstream timeout")
	}

	return nil
}

// RegisterFlags adds the configuration flags shared by every command
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to a YAML or JSON config file (env: TOASTSMS_CONFIG)")
	flags.String("base-url", "https://api-sms.cloud.toast.com", "Toast SMS API base URL")
	flags.String("api-version", "3.0", "Toast SMS API version")
	flags.String("endpoint", "/sms/v{version}/appKeys/{appKey}/sender/sms/{requestId}", "Get-message endpoint template")
	flags.Duration("timeout", 0, "Upstream request timeout (0 keeps the transport default)")
	flags.Bool("sig-v4", false, "Sign upstream requests with AWS SigV4")
	flags.String("sig-v4-service", "execute-api", "AWS service name for SigV4 signing")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", "json", "Log format (json or pretty)")
	flags.Bool("debug", false, "Debug logging with caller information")
}
