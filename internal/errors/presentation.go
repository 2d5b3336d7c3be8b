package errors

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// UserMessage returns a user-friendly error message
func UserMessage(err error) string {
	if rErr, ok := As(err); ok {
		return formatUserError(rErr)
	}
	return err.Error()
}

// formatUserError creates user-friendly error messages based on error type
func formatUserError(rErr *RelayError) string {
	switch rErr.Type {
	case ErrorTypeValidation:
		return formatValidationError(rErr)
	case ErrorTypeNetwork:
		return formatNetworkError(rErr)
	case ErrorTypeUpstream:
		return formatUpstreamError(rErr)
	case ErrorTypeConfig:
		return formatConfigError(rErr)
	case ErrorTypeTemplate:
		return formatTemplateError(rErr)
	default:
		return rErr.Message
	}
}

func formatValidationError(rErr *RelayError) string {
	msg := rErr.Message
	if field, ok := rErr.Context["field"]; ok {
		msg = fmt.Sprintf("Invalid %s: %s", field, msg)
	}
	return msg
}

func formatNetworkError(rErr *RelayError) string {
	msg := rErr.Message
	if url, ok := rErr.Context["url"]; ok {
		msg = fmt.Sprintf("Network error accessing %s: %s", url, msg)
	}
	return msg
}

func formatUpstreamError(rErr *RelayError) string {
	if status, ok := rErr.Context["status_code"]; ok {
		return fmt.Sprintf("%s (status %v)", rErr.Message, status)
	}
	return rErr.Message
}

func formatConfigError(rErr *RelayError) string {
	msg := rErr.Message
	if configType, ok := rErr.Context["config_type"]; ok {
		msg = fmt.Sprintf("Configuration error (%s): %s", configType, msg)
	}
	return msg
}

func formatTemplateError(rErr *RelayError) string {
	if field, ok := rErr.Context["field"]; ok {
		return fmt.Sprintf("%s: no value for {%v}", rErr.Message, field)
	}
	return rErr.Message
}

// HTTPStatus maps an error to the status code the relay answers with
func HTTPStatus(err error) int {
	rErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch rErr.Type {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeAuth:
		return http.StatusUnauthorized
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeMethod:
		return http.StatusMethodNotAllowed
	case ErrorTypeNetwork:
		return http.StatusBadGateway
	case ErrorTypeUpstream:
		if status, ok := rErr.Context["status_code"].(int); ok && status >= 400 && status <= 599 {
			return status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PresentError displays an error to the user through centralized zerolog system
func PresentError(err error) {
	if err == nil {
		return
	}

	if rErr, ok := As(err); ok {
		event := log.Error().Str("error_type", string(rErr.Type))

		for key, value := range rErr.Context {
			event = event.Interface(key, value)
		}
		if rErr.Cause != nil {
			event = event.Err(rErr.Cause)
		}

		event.Msg(rErr.Message)
	} else {
		log.Error().Err(err).Msg("")
	}
}

// DebugInfo returns detailed error information for debugging
func DebugInfo(err error) map[string]interface{} {
	info := map[string]interface{}{
		"error":   err.Error(),
		"type":    "unknown",
		"context": map[string]interface{}{},
	}

	if rErr, ok := As(err); ok {
		info["type"] = string(rErr.Type)
		info["message"] = rErr.Message
		info["context"] = rErr.Context

		if rErr.Cause != nil {
			info["cause"] = rErr.Cause.Error()
		}
	}

	return info
}
