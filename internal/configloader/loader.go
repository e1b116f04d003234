package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint/rules"
)

// Catalog is the view of the rule registry the loader needs for validation
// and the built-in extends names.
type Catalog interface {
	RuleCatalog
	IDs() []string
	Recommended() []string
}

// LoadOptions controls how configuration is loaded.
type LoadOptions struct {
	// WorkingDir is the starting directory for project config discovery.
	// Defaults to the current working directory.
	WorkingDir string

	// ExplicitPath is a config file specified via --config flag. When set,
	// discovery is skipped.
	ExplicitPath string

	// IgnoreSystemConfig skips loading the system-wide config.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading the user-level config.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading the project config.
	IgnoreProjectConfig bool

	// IgnoreEnv skips reading GOJSLINT_CONFIG.
	IgnoreEnv bool

	// CLIConfig holds values from command-line flags (highest precedence).
	CLIConfig *config.Config

	// Catalog validates rule ids. Defaults to the built-in rule registry.
	Catalog Catalog
}

// LoadResult contains the loaded configuration and metadata.
type LoadResult struct {
	// Config is the merged configuration with every extends chain resolved.
	Config *config.Config

	// BaseDir is the directory override globs are matched against.
	BaseDir string

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the config files that were actually loaded, in order.
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load discovers, loads, validates and merges configuration from all sources.
// The precedence order (lowest to highest) is:
//  1. System config
//  2. User config
//  3. Project config (a project config with root: true drops 1 and 2)
//  4. Explicit config (--config flag or GOJSLINT_CONFIG), replacing 1-3
//  5. CLI flags
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = rules.Default()
	}
	ld := &loader{catalog: catalog}
	result := &LoadResult{BaseDir: workDir}

	explicit := opts.ExplicitPath
	if explicit == "" && !opts.IgnoreEnv {
		explicit = ExplicitPathFromEnv()
	}

	var cfg *config.Config
	if explicit != "" {
		explicitCfg, err := ld.loadFile(explicit, nil)
		if err != nil {
			return nil, fmt.Errorf("load explicit config: %w", err)
		}
		cfg = explicitCfg
		result.BaseDir = filepath.Dir(explicit)
	} else {
		paths, err := DiscoverPaths(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("discover config paths: %w", err)
		}
		result.Paths = paths

		cfg, err = ld.loadLayers(paths, opts, result)
		if err != nil {
			return nil, err
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	result.LoadedFrom = append(result.LoadedFrom, ld.loaded...)
	result.Warnings = append(result.Warnings, ld.warnings...)
	result.Config = cfg

	logger.Debug("configuration loaded",
		logging.FieldPath, strings.Join(result.LoadedFrom, ","),
		logging.FieldCount, len(result.LoadedFrom))

	return result, nil
}

func (ld *loader) loadLayers(paths *ConfigPaths, opts LoadOptions, result *LoadResult) (*config.Config, error) {
	var project *config.Config
	if !opts.IgnoreProjectConfig && paths.Project != "" {
		var err error
		project, err = ld.loadFile(paths.Project, nil)
		if err != nil {
			return nil, fmt.Errorf("load project config: %w", err)
		}
		result.BaseDir = filepath.Dir(paths.Project)
	}

	if project != nil && project.Root {
		return project, nil
	}

	var cfg *config.Config
	if !opts.IgnoreSystemConfig && paths.System != "" {
		systemCfg, err := ld.loadFile(paths.System, nil)
		if err != nil {
			return nil, fmt.Errorf("load system config: %w", err)
		}
		cfg = merge(cfg, systemCfg)
	}

	if !opts.IgnoreUserConfig && paths.User != "" {
		userCfg, err := ld.loadFile(paths.User, nil)
		if err != nil {
			return nil, fmt.Errorf("load user config: %w", err)
		}
		cfg = merge(cfg, userCfg)
	}

	return merge(cfg, project), nil
}

type loader struct {
	catalog  Catalog
	loaded   []string
	warnings []string
}

// loadFile reads, validates and resolves the extends chain of one file.
// chain holds the absolute paths currently being resolved, for cycle
// detection.
func (ld *loader) loadFile(path string, chain []string) (*config.Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	if slices.Contains(chain, absPath) {
		return nil, fmt.Errorf("circular extends: %s", strings.Join(append(chain, absPath), " -> "))
	}
	chain = append(chain, absPath)

	cfg, err := ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	validation := ValidateWithFile(cfg, ld.catalog, path)
	if err := validation.Err(); err != nil {
		return nil, err
	}
	for _, w := range validation.Warnings {
		ld.warnings = append(ld.warnings, w.Error())
	}
	ld.loaded = append(ld.loaded, path)

	var resolved *config.Config
	for _, name := range cfg.Extends {
		var parent *config.Config
		if strings.HasPrefix(name, "gojslint:") {
			parent, err = ld.builtin(name)
		} else {
			target := name
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(absPath), target)
			}
			parent, err = ld.loadFile(target, chain)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: extends %q: %w", path, name, err)
		}
		resolved = merge(resolved, parent)
	}

	own := *cfg
	own.Extends = nil
	return merge(resolved, &own), nil
}

// builtin returns the configuration behind a "gojslint:" extends name.
func (ld *loader) builtin(name string) (*config.Config, error) {
	var ids []string
	switch name {
	case config.ExtendsRecommended:
		ids = ld.catalog.Recommended()
	case config.ExtendsAll:
		ids = ld.catalog.IDs()
	default:
		return nil, fmt.Errorf("unknown built-in configuration %q", name)
	}

	ruleValues := make(map[string]any, len(ids))
	for _, id := range ids {
		ruleValues[id] = config.SeverityError.String()
	}
	return &config.Config{Base: config.Base{Rules: ruleValues}}, nil
}

// ReadFile parses a YAML or JSON configuration file by extension.
func ReadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg *config.Config
	if IsJSONConfig(path) {
		cfg, err = config.FromJSON(content)
	} else {
		cfg, err = config.FromYAML(content)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
