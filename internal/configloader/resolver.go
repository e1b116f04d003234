package configloader

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar"

	"github.com/yaklabco/gojslint/pkg/config"
)

// Resolved is the effective configuration for one file.
type Resolved struct {
	Rules         config.RuleTable
	Globals       config.Globals
	Settings      map[string]any
	Parser        string
	ParserOptions config.ParserOptions
}

// Resolver computes per-file configuration from a loaded Config by applying
// matching overrides in order. Results are cached by the set of matching
// overrides, so files sharing overrides share a Resolved value. It is safe
// for concurrent use.
type Resolver struct {
	cfg     *config.Config
	baseDir string

	mu    sync.Mutex
	cache map[string]*Resolved
}

// NewResolver returns a resolver for cfg whose override globs are relative
// to baseDir.
func NewResolver(cfg *config.Config, baseDir string) *Resolver {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Resolver{cfg: cfg, baseDir: baseDir, cache: map[string]*Resolved{}}
}

// ForFile returns the effective configuration for filePath.
func (r *Resolver) ForFile(filePath string) (*Resolved, error) {
	rel := r.relative(filePath)

	var matched []int
	var key strings.Builder
	for idx, override := range r.cfg.Overrides {
		ok, err := matchOverride(override, rel)
		if err != nil {
			return nil, fmt.Errorf("overrides[%d]: %w", idx, err)
		}
		if ok {
			matched = append(matched, idx)
			fmt.Fprintf(&key, "%d,", idx)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[key.String()]; ok {
		return cached, nil
	}

	base := r.cfg.Base
	for _, idx := range matched {
		base = mergeBase(base, r.cfg.Overrides[idx].Base)
	}

	resolved, err := resolveBase(base)
	if err != nil {
		return nil, err
	}
	r.cache[key.String()] = resolved
	return resolved, nil
}

func (r *Resolver) relative(filePath string) string {
	if r.baseDir != "" && filepath.IsAbs(filePath) {
		if rel, err := filepath.Rel(r.baseDir, filePath); err == nil {
			filePath = rel
		}
	}
	return filepath.ToSlash(filePath)
}

// matchOverride reports whether rel matches one of the override's files
// patterns and none of its excludedFiles patterns.
func matchOverride(override config.Override, rel string) (bool, error) {
	included, err := matchAny(override.Files, rel)
	if err != nil || !included {
		return false, err
	}
	excluded, err := matchAny(override.ExcludedFiles, rel)
	if err != nil {
		return false, err
	}
	return !excluded, nil
}

// matchAny matches rel against glob patterns. Patterns without a slash match
// the base name, so "*.test.js" applies in every directory.
func matchAny(patterns []string, rel string) (bool, error) {
	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		target := rel
		if !strings.Contains(pattern, "/") {
			target = path.Base(rel)
		}
		ok, err := doublestar.Match(pattern, target)
		if err != nil {
			return false, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// resolveBase expands environments and parses rules and globals.
func resolveBase(base config.Base) (*Resolved, error) {
	resolved := &Resolved{
		Globals:  config.Globals{},
		Settings: base.Settings,
		Parser:   "js",
	}
	if base.Parser != nil && *base.Parser != "" {
		resolved.Parser = *base.Parser
	}

	var opts config.ParserOptions
	for _, name := range config.EnvironmentNames() {
		if !base.Env[name] {
			continue
		}
		env, _ := config.LookupEnvironment(name)
		for global, access := range config.FromEnvironment(env) {
			resolved.Globals[global] = access
		}
		opts = opts.Merge(env.ParserOptions)
	}
	for name := range base.Env {
		if _, ok := config.LookupEnvironment(name); !ok {
			return nil, fmt.Errorf("unknown environment %q", name)
		}
	}
	if base.ParserOptions != nil {
		opts = opts.Merge(*base.ParserOptions)
	}
	opts.EcmaVersion = config.NormalizeEcmaVersion(opts.EcmaVersion)
	resolved.ParserOptions = opts

	globals, err := config.ParseGlobals(base.Globals)
	if err != nil {
		return nil, err
	}
	for name, access := range globals {
		resolved.Globals[name] = access
	}

	table, err := config.ParseRuleTable(base.Rules)
	if err != nil {
		return nil, err
	}
	resolved.Rules = table

	return resolved, nil
}
