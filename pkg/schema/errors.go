package schema

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownFieldType is reported when a field record uses a type outside
	// the supported set.
	ErrUnknownFieldType = errors.New("schema: unknown field type")
	// ErrMalformedRule is reported when a rule string cannot be parsed, e.g.
	// an unterminated parameter bracket or an empty rule name.
	ErrMalformedRule = errors.New("schema: malformed rule")
	// ErrUndeclaredField is reported when a validation entry names a field
	// that no render record declares.
	ErrUndeclaredField = errors.New("schema: validation references undeclared field")
	// ErrMalformedAttributes is reported when an attribute string cannot be
	// tokenised.
	ErrMalformedAttributes = errors.New("schema: malformed attributes")
	// ErrMissingName is reported for field or validation records without a
	// name.
	ErrMissingName = errors.New("schema: missing name")
	// ErrReservedCharacter is reported when a positional value contains the
	// delimiter of its encoding (a comma in a render record, a pipe in a
	// message label).
	ErrReservedCharacter = errors.New("schema: reserved delimiter in value")
	// ErrDuplicateValidation is reported when two validation entries target
	// the same field.
	ErrDuplicateValidation = errors.New("schema: duplicate validation entry")
)

// ConfigError locates a configuration problem inside a form definition. It
// unwraps to one of the sentinel errors above so callers can use errors.Is.
type ConfigError struct {
	Source string
	Form   string
	Field  string
	Detail string
	Err    error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString("schema: configuration error")
	}
	if e.Form != "" {
		b.WriteString(" (form ")
		b.WriteString(quote(e.Form))
		if e.Field != "" {
			b.WriteString(", field ")
			b.WriteString(quote(e.Field))
		}
		b.WriteString(")")
	} else if e.Field != "" {
		b.WriteString(" (field ")
		b.WriteString(quote(e.Field))
		b.WriteString(")")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Source != "" {
		return e.Source + ": " + b.String()
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Problems flattens an error produced by Form.Check (or anything built with
// errors.Join) into its individual ConfigError values. Errors that are not
// ConfigErrors are returned wrapped in one with no location.
func Problems(err error) []*ConfigError {
	if err == nil {
		return nil
	}
	var out []*ConfigError
	var walk func(error)
	walk = func(current error) {
		if current == nil {
			return
		}
		switch typed := current.(type) {
		case *ConfigError:
			out = append(out, typed)
		case interface{ Unwrap() []error }:
			for _, inner := range typed.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(typed.Unwrap())
		default:
			out = append(out, &ConfigError{Err: current})
		}
	}
	walk(err)
	return out
}

func quote(value string) string {
	return `"` + value + `"`
}
