// Package config defines the configuration file schema for gojslint.
// These types are pure data structures; discovery, extension chains and
// per-file resolution live in internal/configloader.
package config

// Base holds the keys shared by the top-level configuration and overrides.
type Base struct {
	// Env enables named environments such as "browser" or "node".
	Env map[string]bool `json:"env,omitempty" yaml:"env,omitempty" validate:"dive,keys,env_name,endkeys"`

	// Globals declares additional global variables. Values are booleans or
	// one of "readonly", "writable" or "off".
	Globals map[string]any `json:"globals,omitempty" yaml:"globals,omitempty"`

	// Parser selects the parser by name. A null value resets to the default.
	Parser *string `json:"parser,omitempty" yaml:"parser,omitempty" validate:"omitempty,oneof=js tree-sitter"`

	ParserOptions *ParserOptions `json:"parserOptions,omitempty" yaml:"parserOptions,omitempty"`

	// Plugins is accepted for compatibility. Only built-in rules exist.
	Plugins []string `json:"plugins,omitempty" yaml:"plugins,omitempty"`

	// Rules maps rule ids to a severity or a [severity, options...] list.
	Rules map[string]any `json:"rules,omitempty" yaml:"rules,omitempty"`

	// Settings is shared, free-form data exposed to every rule.
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// Config is the root of a configuration file.
type Config struct {
	Base `yaml:",inline"`

	// Extends names configurations this one builds on, either built-in
	// ("gojslint:recommended", "gojslint:all") or paths relative to the file.
	Extends StringList `json:"extends,omitempty" yaml:"extends,omitempty"`

	// Root stops upward discovery of further configuration files.
	Root bool `json:"root,omitempty" yaml:"root,omitempty"`

	Overrides []Override `json:"overrides,omitempty" yaml:"overrides,omitempty" validate:"dive"`
}

// Override applies Base keys to files matching its glob patterns.
type Override struct {
	Base `yaml:",inline"`

	Files         StringList `json:"files" yaml:"files" validate:"required,min=1,dive,required"`
	ExcludedFiles StringList `json:"excludedFiles,omitempty" yaml:"excludedFiles,omitempty" validate:"dive,required"`
}

// ParserOptions mirrors the options handed to the parser adapter.
type ParserOptions struct {
	EcmaVersion  int             `json:"ecmaVersion,omitempty" yaml:"ecmaVersion,omitempty" validate:"omitempty,ecma_version"`
	SourceType   string          `json:"sourceType,omitempty" yaml:"sourceType,omitempty" validate:"omitempty,oneof=script module"`
	EcmaFeatures map[string]bool `json:"ecmaFeatures,omitempty" yaml:"ecmaFeatures,omitempty"`
}

// Merge returns a copy of p with the non-zero fields of other applied.
// EcmaFeatures are merged key by key.
func (p ParserOptions) Merge(other ParserOptions) ParserOptions {
	out := p
	if other.EcmaVersion != 0 {
		out.EcmaVersion = other.EcmaVersion
	}
	if other.SourceType != "" {
		out.SourceType = other.SourceType
	}
	if len(other.EcmaFeatures) > 0 {
		features := make(map[string]bool, len(p.EcmaFeatures)+len(other.EcmaFeatures))
		for key, value := range p.EcmaFeatures {
			features[key] = value
		}
		for key, value := range other.EcmaFeatures {
			features[key] = value
		}
		out.EcmaFeatures = features
	}
	return out
}

// NormalizeEcmaVersion converts year-style versions (2015 and later) to
// edition numbers, so 2015 becomes 6.
func NormalizeEcmaVersion(version int) int {
	const firstYear, firstEdition = 2015, 6
	if version >= firstYear {
		return version - firstYear + firstEdition
	}
	return version
}

// BuiltinExtends are the extends names resolved without reading a file.
const (
	ExtendsRecommended = "gojslint:recommended"
	ExtendsAll         = "gojslint:all"
)
