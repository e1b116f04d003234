package lint_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gojslint/pkg/lint"
)

type bracketOptions struct {
	Multiline bool `mapstructure:"multiline"`
	MinItems  *int `mapstructure:"minItems" validate:"omitnil,gte=0"`
}

func TestSchema(t *testing.T) {
	t.Parallel()

	schema := lint.Positional(
		lint.OneOf(lint.EnumItem("always", "never"), lint.ObjectItem[bracketOptions]()),
	)

	tests := []struct {
		name    string
		options []any
		wantErr bool
	}{
		{name: "empty", options: nil},
		{name: "enum", options: []any{"always"}},
		{name: "object", options: []any{map[string]any{"multiline": true, "minItems": 2}}},
		{name: "bad enum", options: []any{"sometimes"}, wantErr: true},
		{name: "unknown key", options: []any{map[string]any{"multi": true}}, wantErr: true},
		{name: "negative", options: []any{map[string]any{"minItems": -1}}, wantErr: true},
		{name: "wrong type", options: []any{3}, wantErr: true},
		{name: "too many", options: []any{"always", "never"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := schema(tt.options)
			if (err != nil) != tt.wantErr {
				t.Errorf("schema(%v) error = %v, wantErr %v", tt.options, err, tt.wantErr)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	var opts bracketOptions
	if err := lint.Decode(map[string]any{"multiline": true, "minItems": 4}, &opts); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !opts.Multiline || opts.MinItems == nil || *opts.MinItems != 4 {
		t.Errorf("Decode() = %+v", opts)
	}
}

func TestCheckOptions_SingleLine(t *testing.T) {
	t.Parallel()

	meta := &lint.Meta{Schema: lint.Positional(
		lint.OneOf(lint.EnumItem("always", "never"), lint.ObjectItem[bracketOptions]()),
	)}

	tests := []struct {
		name    string
		options []any
		want    string
	}{
		{
			name:    "no alternative matches",
			options: []any{3},
			want: "option 0: should match exactly one schema: " +
				"should be equal to one of the allowed values: always, never; should be object, got int",
		},
		{name: "unknown key", options: []any{map[string]any{"multi": true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := lint.CheckOptions(meta, tt.options)
			if err == nil {
				t.Fatal("expected an error")
			}
			if strings.Contains(err.Error(), "\n") {
				t.Errorf("error spans several lines: %q", err.Error())
			}
			if tt.want != "" && err.Error() != tt.want {
				t.Errorf("CheckOptions() = %q, want %q", err.Error(), tt.want)
			}
		})
	}

	if err := lint.CheckOptions(nil, []any{"anything"}); err != nil {
		t.Errorf("nil meta should accept any options: %v", err)
	}
}
