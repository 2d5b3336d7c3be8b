package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration
type Config struct {
	Level      string
	Format     string // "pretty" or "json"
	WithCaller bool
	Output     io.Writer
	TimeFormat string
}

// DefaultConfig returns sensible defaults for logging.
// Function hosts collect stdout/stderr as structured lines, so JSON is the default.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "json",
		WithCaller: false,
		Output:     os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

// InitLogger creates and configures a new zerolog logger
func InitLogger(config *Config) zerolog.Logger {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Output == nil {
		config.Output = os.Stderr
	}

	// Set global log level
	level := parseLevel(config.Level)
	zerolog.SetGlobalLevel(level)
	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	// Configure output
	var output io.Writer = config.Output
	if config.Format == "pretty" {
		output = &zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: "15:04:05",
			NoColor:    false,
		}
	}

	// Create logger with timestamp
	logger := zerolog.New(output).With().
		Timestamp().
		Str("app", "toastsms").
		Logger()

	// Add caller info if requested
	if config.WithCaller {
		logger = logger.With().Caller().Logger()
	}

	// The package-level logger backs errors.PresentError
	log.Logger = logger

	return logger
}

// parseLevel converts string level to zerolog.Level
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// Setup configures a logger from the level and format settings.
// debug forces debug level with caller info.
func Setup(level, format string, debug bool) zerolog.Logger {
	return SetupTo(os.Stderr, level, format, debug)
}

// SetupTo is Setup writing to w. MCP mode needs stdout free for the protocol,
// so command output and logs never share a stream.
func SetupTo(w io.Writer, level, format string, debug bool) zerolog.Logger {
	config := DefaultConfig()
	config.Output = w
	if level != "" {
		config.Level = level
	}
	if format != "" {
		config.Format = format
	}
	if debug {
		config.Level = "debug"
		config.WithCaller = true
	}

	return InitLogger(config)
}

// ForComponent creates a logger with component context
func ForComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// ForRequest creates a logger with request context
func ForRequest(logger zerolog.Logger, requestID, method, path string) zerolog.Logger {
	return logger.With().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Logger()
}

// ForMCP creates a logger with MCP context
func ForMCP(logger zerolog.Logger, tool string) zerolog.Logger {
	return logger.With().
		Str("mcp_tool", tool).
		Str("component", "mcp").
		Logger()
}
