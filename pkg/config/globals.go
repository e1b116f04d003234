package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// GlobalAccess is the declared access of a global variable.
type GlobalAccess string

const (
	GlobalReadonly GlobalAccess = "readonly"
	GlobalWritable GlobalAccess = "writable"
	GlobalOff      GlobalAccess = "off"
)

// ParseGlobalAccess accepts booleans (true is writable) and the strings
// "readonly", "readable", "writable", "writeable" and "off".
func ParseGlobalAccess(value any) (GlobalAccess, error) {
	if s, ok := value.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "readonly", "readable":
			return GlobalReadonly, nil
		case "writable", "writeable":
			return GlobalWritable, nil
		case "off":
			return GlobalOff, nil
		}
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return "", fmt.Errorf("invalid global value %v: %w", value, err)
	}
	if b {
		return GlobalWritable, nil
	}
	return GlobalReadonly, nil
}

// Globals maps global variable names to their access.
type Globals map[string]GlobalAccess

// ParseGlobals parses the raw "globals" object of a configuration file.
func ParseGlobals(raw map[string]any) (Globals, error) {
	out := make(Globals, len(raw))
	for name, value := range raw {
		access, err := ParseGlobalAccess(value)
		if err != nil {
			return nil, fmt.Errorf("global %q: %w", name, err)
		}
		out[name] = access
	}
	return out, nil
}

// FromEnvironment converts an environment's writable flags into Globals.
func FromEnvironment(env Environment) Globals {
	out := make(Globals, len(env.Globals))
	for name, canWrite := range env.Globals {
		if canWrite {
			out[name] = GlobalWritable
		} else {
			out[name] = GlobalReadonly
		}
	}
	return out
}

// Names returns the names of globals that are not turned off, mapped to
// whether they are writable.
func (g Globals) Names() map[string]bool {
	out := make(map[string]bool, len(g))
	for name, access := range g {
		if access == GlobalOff {
			continue
		}
		out[name] = access == GlobalWritable
	}
	return out
}
