package configloader

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yaklabco/gojslint/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.func-names").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationErrors aggregates every error found in one configuration.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i := range errs {
		msgs[i] = errs[i].Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the individual errors to errors.As.
func (errs ValidationErrors) Unwrap() []error {
	out := make([]error, len(errs))
	for i := range errs {
		out[i] = &errs[i]
	}
	return out
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err returns the errors as a ValidationErrors value, or nil.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return ValidationErrors(r.Errors)
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// RuleCatalog answers which rule ids exist and which options they accept.
type RuleCatalog interface {
	Has(id string) bool
	ValidateOptions(id string, options []any) error
}

// newValidator builds the struct validator with the config-specific tags.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("env_name", func(fl validator.FieldLevel) bool {
		_, ok := config.LookupEnvironment(fl.Field().String())
		return ok
	})

	_ = v.RegisterValidation("ecma_version", func(fl validator.FieldLevel) bool {
		version := config.NormalizeEcmaVersion(int(fl.Field().Int()))
		return version == 3 || (version >= 5 && version <= 13)
	})

	return v
}

// Validate checks a single configuration file's content. Rule entries are
// parsed for valid severities. When a catalog is given, unknown rule ids are
// warnings and the options of enabled rules must pass the rule's schema.
func Validate(cfg *config.Config, catalog RuleCatalog) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if err := newValidator().Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			result.Errors = append(result.Errors, ValidationError{Message: err.Error()})
		}
		for _, fe := range fieldErrs {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fieldPath(fe.Namespace()),
				Value:   fe.Value(),
				Message: describeTag(fe),
			})
		}
	}

	validateBase("", cfg.Base, catalog, result)
	for idx, override := range cfg.Overrides {
		validateBase(fmt.Sprintf("overrides[%d].", idx), override.Base, catalog, result)
	}

	return result
}

// ValidateWithFile validates and stamps every finding with filePath.
func ValidateWithFile(cfg *config.Config, catalog RuleCatalog, filePath string) *ValidationResult {
	result := Validate(cfg, catalog)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

func validateBase(prefix string, base config.Base, catalog RuleCatalog, result *ValidationResult) {
	ids := make([]string, 0, len(base.Rules))
	for id := range base.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		value := base.Rules[id]
		setting, err := config.ParseRuleSetting(value)
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   prefix + "rules." + id,
				Value:   value,
				Message: err.Error(),
			})
			continue
		}
		if catalog == nil {
			continue
		}
		if !catalog.Has(id) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   prefix + "rules." + id,
				Value:   id,
				Message: fmt.Sprintf("unknown rule %q", id),
			})
			continue
		}
		if setting.Severity == config.SeverityOff {
			continue
		}
		if err := catalog.ValidateOptions(id, setting.Options); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   prefix + "rules." + id,
				Value:   setting.Options,
				Message: "invalid options: " + err.Error(),
			})
		}
	}

	if _, err := config.ParseGlobals(base.Globals); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   prefix + "globals",
			Message: err.Error(),
		})
	}
}

// fieldPath turns a validator namespace such as "Config.Base.env[foo]" into
// "env[foo]".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	out := parts[:0]
	for idx, part := range parts {
		if idx == 0 || part == "Base" {
			continue
		}
		out = append(out, part)
	}
	return strings.Join(out, ".")
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "env_name":
		return fmt.Sprintf("unknown environment %q", fe.Value())
	case "ecma_version":
		return fmt.Sprintf("unsupported ecmaVersion %v", fe.Value())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
