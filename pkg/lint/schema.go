package lint

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// Schema validates the options list of a rule (the configuration entries
// after the severity).
type Schema func(options []any) error

// Item validates one positional option.
type Item func(value any) error

//nolint:gochecknoglobals // validator caches struct metadata; one instance is intended.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Positional validates options position by position. More options than
// items is an error; missing trailing options are allowed.
func Positional(items ...Item) Schema {
	return func(options []any) error {
		if len(options) > len(items) {
			return fmt.Errorf("should NOT have more than %d items", len(items))
		}
		for idx, opt := range options {
			if err := items[idx](opt); err != nil {
				return fmt.Errorf("option %d: %w", idx, err)
			}
		}
		return nil
	}
}

// EnumItem accepts one of the given strings.
func EnumItem(values ...string) Item {
	return func(value any) error {
		s, ok := value.(string)
		if !ok || !slices.Contains(values, s) {
			return fmt.Errorf("should be equal to one of the allowed values: %s", strings.Join(values, ", "))
		}
		return nil
	}
}

// OneOf accepts a value any of the items accept.
func OneOf(items ...Item) Item {
	return func(value any) error {
		var errs []error
		for _, item := range items {
			err := item(value)
			if err == nil {
				return nil
			}
			errs = append(errs, err)
		}
		return &joinedError{prefix: "should match exactly one schema", errs: errs}
	}
}

// joinedError lists several failures on one line.
type joinedError struct {
	prefix string
	errs   []error
}

func (e *joinedError) Error() string {
	msgs := make([]string, len(e.errs))
	for idx, err := range e.errs {
		msgs[idx] = err.Error()
	}
	return e.prefix + ": " + strings.Join(msgs, "; ")
}

func (e *joinedError) Unwrap() []error {
	return e.errs
}

// CheckOptions validates options against the schema in meta. The error
// message is a single line.
func CheckOptions(meta *Meta, options []any) error {
	if meta == nil || meta.Schema == nil {
		return nil
	}
	if err := meta.Schema(options); err != nil {
		return &singleLineError{err: err}
	}
	return nil
}

// singleLineError folds a multi-line message, such as a decoder report,
// into one line.
type singleLineError struct {
	err error
}

func (e *singleLineError) Error() string {
	var parts []string
	for _, line := range strings.Split(e.err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "; ")
}

func (e *singleLineError) Unwrap() error {
	return e.err
}

// ObjectItem accepts an object that decodes into T without unknown keys and
// passes T's validate tags.
func ObjectItem[T any]() Item {
	return func(value any) error {
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("should be object, got %T", value)
		}
		var out T
		return Decode(value, &out)
	}
}

// Decode decodes a loosely typed option value into out and validates it.
// Struct fields are matched through their mapstructure tags.
func Decode[T any](value any, out *T) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return fmt.Errorf("creating option decoder: %w", err)
	}
	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("decoding options: %w", err)
	}
	if err := validate.Struct(out); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil
		}
		return fmt.Errorf("validating options: %w", err)
	}
	return nil
}
