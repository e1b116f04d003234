package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatStylish Format = "stylish"
	FormatCompact Format = "compact"
	FormatJSON    Format = "json"
	FormatDiff    Format = "diff"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	format := Format(formatStr)
	if formatStr == "" {
		format = FormatStylish
	}
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: stylish, compact, json, diff", formatStr)
	}
	return format, nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatStylish, FormatCompact, FormatJSON, FormatDiff:
		return true
	default:
		return false
	}
}
