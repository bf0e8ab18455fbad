package logging

import (
	"log/slog"
	"sort"
	"strings"
)

// RedactedValue is the canonical placeholder used for sensitive fields in
// logs, chiefly capital-provider identifiers.
const RedactedValue = "[REDACTED]"

var redactionAllowlist = map[string]struct{}{
	"component":   {},
	"env":         {},
	"message":     {},
	"severity":    {},
	"timestamp":   {},
	"error":       {},
	"reason":      {},
	"pool":        {},
	"risk_module": {},
	"policy_id":   {},
	"amount":      {},
	"mcr":         {},
	"seconds":     {},
	"now":         {},
}

// IsAllowlisted reports whether key may be emitted without redaction.
// Anything naming a capital provider is deliberately excluded: provider is
// an opaque identifier tying a log line to a specific depositor, and the
// spec treats it as caller-supplied, potentially-sensitive data.
func IsAllowlisted(key string) bool {
	_, ok := redactionAllowlist[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// RedactionAllowlist returns a sorted copy of the log keys exempt from
// automatic redaction.
func RedactionAllowlist() []string {
	keys := make([]string, 0, len(redactionAllowlist))
	for key := range redactionAllowlist {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MaskValue returns the canonical redacted placeholder for non-empty
// values. Empty values pass through unchanged to avoid log noise.
func MaskValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return value
	}
	return RedactedValue
}

// MaskField returns a slog.Attr redacting value unless key is allowlisted,
// e.g. for logging a provider identifier: MaskField("provider", string(p)).
func MaskField(key, value string) slog.Attr {
	if strings.TrimSpace(value) == "" || IsAllowlisted(key) {
		return slog.String(key, value)
	}
	return slog.String(key, RedactedValue)
}
