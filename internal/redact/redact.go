// Package redact removes sensitive fragments from error text before it is
// logged. Database errors are the main source: they can carry connection
// strings, SQLite file paths, SQL text and host names.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules run in order; earlier rules consume text later ones would match.
var rules = []rule{
	// userinfo in postgres:// URLs
	{regexp.MustCompile(`(?i)(postgres(?:ql)?|sqlite)://[^@\s/]+@`), RedactedCredentialPlaceholder},
	// key=value DSN passwords
	{regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+`), RedactedCredentialPlaceholder},
	// SQLite DSNs and file paths
	{regexp.MustCompile(`(?i)(sqlite://|file:)\S+`), RedactedPathPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	// SQL statements
	{regexp.MustCompile(
		`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\S]*?\b(FROM|INTO|SET|WHERE)\b[^;:]*`,
	), RedactedSQLPlaceholder},
	// host:port pairs
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9-]+\.)*[a-zA-Z0-9-]+:\d{2,5}\b`), RedactedHostPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
