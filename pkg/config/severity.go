package config

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/spf13/cast"
)

// Severity is the level of a rule: 0 off, 1 warning, 2 error.
type Severity int

const (
	SeverityOff   Severity = 0
	SeverityWarn  Severity = 1
	SeverityError Severity = 2
)

// ErrInvalidSeverity is returned when a severity value cannot be parsed.
var ErrInvalidSeverity = errors.New("invalid severity")

// Valid reports whether s is 0, 1 or 2.
func (s Severity) Valid() bool {
	return s >= SeverityOff && s <= SeverityError
}

// String returns the config-file name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity accepts "off", "warn", "error" (case-insensitive) or the
// numbers 0, 1 and 2 in any numeric or string form.
func ParseSeverity(value any) (Severity, error) {
	if s, ok := value.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "off":
			return SeverityOff, nil
		case "warn", "warning":
			return SeverityWarn, nil
		case "error":
			return SeverityError, nil
		}
	}

	switch value.(type) {
	case nil, bool:
		return 0, fmt.Errorf("%w: %v", ErrInvalidSeverity, value)
	}

	n, err := cast.ToIntE(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSeverity, value)
	}
	sev := Severity(n)
	if !sev.Valid() {
		return 0, fmt.Errorf("%w: %v (expected 0-2)", ErrInvalidSeverity, value)
	}
	return sev, nil
}

// RuleSetting is a resolved rule entry: a severity plus the positional
// options passed to the rule.
type RuleSetting struct {
	Severity Severity
	Options  []any
}

// ParseRuleSetting accepts a bare severity or a list whose first element is
// the severity and whose remaining elements are rule options.
func ParseRuleSetting(value any) (RuleSetting, error) {
	list, isList := value.([]any)
	if !isList {
		if strs, ok := value.([]string); ok {
			list = make([]any, len(strs))
			for i, s := range strs {
				list[i] = s
			}
			isList = true
		}
	}

	if !isList {
		sev, err := ParseSeverity(value)
		if err != nil {
			return RuleSetting{}, err
		}
		return RuleSetting{Severity: sev}, nil
	}

	if len(list) == 0 {
		return RuleSetting{}, fmt.Errorf("%w: empty rule configuration", ErrInvalidSeverity)
	}
	sev, err := ParseSeverity(list[0])
	if err != nil {
		return RuleSetting{}, err
	}
	var options []any
	if len(list) > 1 {
		options = append([]any(nil), list[1:]...)
	}
	return RuleSetting{Severity: sev, Options: options}, nil
}

// RuleTable maps rule ids to their settings.
type RuleTable map[string]RuleSetting

// ParseRuleTable parses the raw "rules" object of a configuration file.
// Every failing entry is reported in the joined error.
func ParseRuleTable(raw map[string]any) (RuleTable, error) {
	table := make(RuleTable, len(raw))
	var errs []error
	for id, value := range raw {
		setting, err := ParseRuleSetting(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %q: %w", id, err))
			continue
		}
		table[id] = setting
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return table, nil
}

// Merge returns a new table with other layered over t. An entry in other
// that sets only a severity keeps the options already present in t.
func (t RuleTable) Merge(other RuleTable) RuleTable {
	out := make(RuleTable, len(t)+len(other))
	maps.Copy(out, t)
	for id, setting := range other {
		if prev, ok := out[id]; ok && len(setting.Options) == 0 {
			setting.Options = prev.Options
		}
		out[id] = setting
	}
	return out
}

// Enabled returns the ids of rules whose severity is not off.
func (t RuleTable) Enabled() []string {
	var ids []string
	for id, setting := range t {
		if setting.Severity != SeverityOff {
			ids = append(ids, id)
		}
	}
	return ids
}
