package configloader

import (
	"path/filepath"
	"testing"

	"github.com/yaklabco/gojslint/pkg/config"
)

func TestResolver_ForFile(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(`
env:
  browser: true
globals:
  myLib: writable
parserOptions:
  ecmaVersion: 2018
rules:
  no-iterator: error
  func-names: [warn, always]
overrides:
  - files: "*.test.js"
    excludedFiles: "fixtures/**"
    env:
      mocha: true
    rules:
      func-names: "off"
  - files: "src/legacy/**/*.js"
    parserOptions:
      sourceType: script
    rules:
      no-iterator: warn
`))
	if err != nil {
		t.Fatal(err)
	}

	baseDir := t.TempDir()
	resolver := NewResolver(cfg, baseDir)

	plain, err := resolver.ForFile(filepath.Join(baseDir, "src", "app.js"))
	if err != nil {
		t.Fatal(err)
	}
	if plain.Rules["func-names"].Severity != config.SeverityWarn {
		t.Errorf("expected func-names warn, got %v", plain.Rules["func-names"])
	}
	if plain.Globals["window"] != config.GlobalReadonly {
		t.Errorf("expected browser globals, got %v", plain.Globals["window"])
	}
	if plain.Globals["myLib"] != config.GlobalWritable {
		t.Errorf("expected myLib writable")
	}
	if plain.ParserOptions.EcmaVersion != 9 {
		t.Errorf("expected ecmaVersion normalized to 9, got %d", plain.ParserOptions.EcmaVersion)
	}
	if plain.Parser != "js" {
		t.Errorf("expected default parser js, got %q", plain.Parser)
	}

	test, err := resolver.ForFile(filepath.Join(baseDir, "src", "app.test.js"))
	if err != nil {
		t.Fatal(err)
	}
	if test.Rules["func-names"].Severity != config.SeverityOff {
		t.Errorf("expected func-names off in tests")
	}
	if len(test.Rules["func-names"].Options) != 1 {
		t.Errorf("expected options kept when only severity is overridden")
	}
	if _, ok := test.Globals["describe"]; !ok {
		t.Errorf("expected mocha globals in test files")
	}

	fixture, err := resolver.ForFile(filepath.Join(baseDir, "fixtures", "x.test.js"))
	if err != nil {
		t.Fatal(err)
	}
	if fixture.Rules["func-names"].Severity != config.SeverityWarn {
		t.Errorf("excludedFiles should prevent the override")
	}

	legacy, err := resolver.ForFile("src/legacy/old/a.js")
	if err != nil {
		t.Fatal(err)
	}
	if legacy.Rules["no-iterator"].Severity != config.SeverityWarn || legacy.ParserOptions.SourceType != "script" {
		t.Errorf("legacy override not applied: %+v", legacy)
	}

	again, err := resolver.ForFile(filepath.Join(baseDir, "lib", "other.js"))
	if err != nil {
		t.Fatal(err)
	}
	if again != plain {
		t.Errorf("expected files with the same overrides to share a cached result")
	}
}

func TestResolver_NilConfig(t *testing.T) {
	t.Parallel()

	resolved, err := NewResolver(nil, "").ForFile("a.js")
	if err != nil {
		t.Fatal(err)
	}
	if len(resolved.Rules) != 0 || resolved.Parser != "js" {
		t.Errorf("unexpected resolution %+v", resolved)
	}
}
