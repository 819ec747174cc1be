package llm

import (
	"fmt"
	"strings"
)

// ExtractJSONArray recovers the JSON candidate array from chatty model
// output: markdown code fences are stripped and any prose before or after
// the array is discarded. Models instructed to return bare JSON still
// wrap it often enough that callers must not depend on a clean response.
func ExtractJSONArray(content string) (string, error) {
	s := strings.TrimSpace(content)

	// Strip a markdown code fence, with or without a language tag.
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "[")
	if start < 0 {
		return "", fmt.Errorf("no JSON array found in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '[':
			depth++
		case ch == ']':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("unterminated JSON array in response")
}
