// Package security scrubs obvious credentials from text before it is
// sent to the LLM endpoint or written to logs.
package security

import "regexp"

// Redactor implements ports.Redactor with built-in patterns.
type Redactor struct {
	patterns []*regexp.Regexp
}

// NewRedactor creates a redactor covering common credential shapes that
// show up in staged diffs.
func NewRedactor() *Redactor {
	patterns := []*regexp.Regexp{
		// OpenAI-style API keys
		regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`),
		// AWS access key ids
		regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		// Bearer credentials in headers or config
		regexp.MustCompile(`(?i)(?:authorization|auth|token):\s*Bearer\s+[a-zA-Z0-9._\-]+`),
		// Key/password assignments in JSON or env-style files
		regexp.MustCompile(`(?i)"(?:api_key|apiKey|token|password)":\s*"[^"]+"`),
		// Google API keys
		regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`),
		// GitHub tokens
		regexp.MustCompile(`gh[pus]_[a-zA-Z0-9]{36}`),
		// PEM private key headers
		regexp.MustCompile(`-----BEGIN (?:RSA |DSA |EC )?PRIVATE KEY-----`),
	}
	return &Redactor{patterns: patterns}
}

// Redact removes sensitive patterns from text.
func (r *Redactor) Redact(text string) string {
	result := text
	for _, pattern := range r.patterns {
		result = pattern.ReplaceAllString(result, "[REDACTED]")
	}
	return result
}

var (
	ipPattern    = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)
)

// RedactLog is more aggressive, also removing IP addresses and emails.
func (r *Redactor) RedactLog(text string) string {
	result := r.Redact(text)
	result = ipPattern.ReplaceAllString(result, "[IP]")
	return emailPattern.ReplaceAllString(result, "[EMAIL]")
}
