package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// FilterResult is a filtered response body plus figures about the reduction
type FilterResult struct {
	Content string                 `json:"content"`
	Meta    map[string]interface{} `json:"_meta"`
}

// estimateTokens approximates token count using chars/4 heuristic
func estimateTokens(data string) int {
	return len(data) / 4
}

// filterJMESPath filters a JSON body using a JMESPath expression
func filterJMESPath(body string, expression string) (*FilterResult, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	result, err := jmespath.Search(expression, data)
	if err != nil {
		return nil, fmt.Errorf("invalid jmespath expression: %w", err)
	}

	filtered, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filtered result: %w", err)
	}

	resultCount := 0
	if arr, ok := result.([]interface{}); ok {
		resultCount = len(arr)
	} else if result != nil {
		resultCount = 1
	}

	content := string(filtered)

	return &FilterResult{
		Content: content,
		Meta: map[string]interface{}{
			"filter": map[string]interface{}{
				"type":         "jmespath",
				"expression":   expression,
				"result_count": resultCount,
			},
			"tokens": map[string]interface{}{
				"returned": estimateTokens(content),
				"source":   estimateTokens(body),
			},
			"bytes": map[string]interface{}{
				"returned": len(filtered),
				"source":   len(body),
			},
		},
	}, nil
}
