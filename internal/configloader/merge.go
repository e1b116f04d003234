package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/gojslint/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Maps (env, globals, settings): deep merge, override's keys win
//   - Rules: an override entry that sets only a severity keeps base's options
//   - Parser: a non-nil override pointer wins
//   - Plugins: union, base order first
//   - Overrides: base's list followed by override's
//   - Extends is cleared; callers merge only resolved configurations
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := &config.Config{
		Base: mergeBase(base.Base, override.Base),
		Root: base.Root || override.Root,
	}
	result.Overrides = append(slices.Clone(base.Overrides), override.Overrides...)
	return result
}

func mergeBase(base, override config.Base) config.Base {
	out := config.Base{
		Env:      mergeMap(base.Env, override.Env),
		Globals:  mergeMap(base.Globals, override.Globals),
		Settings: mergeMap(base.Settings, override.Settings),
		Rules:    mergeRules(base.Rules, override.Rules),
		Parser:   base.Parser,
		Plugins:  slices.Clone(base.Plugins),
	}

	if override.Parser != nil {
		out.Parser = override.Parser
	}

	switch {
	case base.ParserOptions != nil && override.ParserOptions != nil:
		merged := base.ParserOptions.Merge(*override.ParserOptions)
		out.ParserOptions = &merged
	case override.ParserOptions != nil:
		clone := *override.ParserOptions
		out.ParserOptions = &clone
	case base.ParserOptions != nil:
		clone := *base.ParserOptions
		out.ParserOptions = &clone
	}

	for _, plugin := range override.Plugins {
		if !slices.Contains(out.Plugins, plugin) {
			out.Plugins = append(out.Plugins, plugin)
		}
	}

	return out
}

func mergeMap[V any](base, override map[string]V) map[string]V {
	if base == nil && override == nil {
		return nil
	}
	out := make(map[string]V, len(base)+len(override))
	maps.Copy(out, base)
	maps.Copy(out, override)
	return out
}

// mergeRules layers raw rule values. A bare severity in override keeps the
// options from a list-form value in base.
func mergeRules(base, override map[string]any) map[string]any {
	out := mergeMap(base, override)
	for id, value := range override {
		prev, ok := base[id].([]any)
		if !ok || len(prev) < 2 {
			continue
		}
		switch v := value.(type) {
		case []any:
			if len(v) == 1 {
				out[id] = append([]any{v[0]}, prev[1:]...)
			}
		default:
			out[id] = append([]any{v}, prev[1:]...)
		}
	}
	return out
}
