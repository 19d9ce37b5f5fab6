// pkg/llm/sanitize.go
package llm

import "strings"

// StripCodeFence removes ```json ... ``` or ``` ... ``` wrappers that
// chat models like to put around structured answers.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	return s
}

// ExtractJSONArray returns the first [...] substring of s, or s itself
// when no array is present. Used as a last resort when a model wraps
// its JSON answer in prose.
func ExtractJSONArray(s string) string {
	start := strings.Index(s, "[")
	if start < 0 {
		return s
	}
	end := strings.LastIndex(s, "]")
	if end < start {
		return s
	}
	return s[start : end+1]
}
