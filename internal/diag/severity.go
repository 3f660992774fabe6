package diag

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics; Bag.HasErrors compares with >=.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Tag is the lowercase name used by the short format.
func (s Severity) Tag() string {
	return strings.ToLower(s.String())
}

// ParseSeverity accepts the names printed by String in any case, plus
// "warn".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SevInfo, nil
	case "warning", "warn":
		return SevWarning, nil
	case "error":
		return SevError, nil
	default:
		return SevInfo, fmt.Errorf("unknown severity %q (expected: info|warning|error)", s)
	}
}
