package logging

import "regexp"

// redactPatterns matches provider API keys and bearer tokens so that
// accidental logging of a request header never writes a secret to disk.
var redactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`sk-ant-[A-Za-z0-9_\-]{10,}`),
	regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`),
	regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._\-]{10,}`),
	regexp.MustCompile(`AIza[A-Za-z0-9_\-]{20,}`),
}

// Redact replaces any substring matching a known secret shape with a
// fixed placeholder. Call before logging anything derived from request
// headers, config values, or AI prompts that might echo a key back.
func Redact(s string) string {
	for _, p := range redactPatterns {
		s = p.ReplaceAllString(s, "[REDACTED]")
	}
	return s
}
