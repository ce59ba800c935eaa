package tools

import (
	"encoding/json"
	"strings"
)

// field returns input[key] when input is a JSON object holding that string
// field, and the trimmed input itself otherwise.
func field(input, key string) string {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "{") {
		var obj map[string]any
		if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
			if v, ok := obj[key].(string); ok {
				return strings.TrimSpace(v)
			}
		}
	}
	return trimmed
}
