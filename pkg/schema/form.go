package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Form bundles the two descriptors of a named FastForm form.
type Form struct {
	Name        string      `json:"name" yaml:"name"`
	Fields      Fields      `json:"fields" yaml:"fields"`
	Validations Validations `json:"validate,omitempty" yaml:"validate,omitempty"`
}

// Describe returns a fresh copy of the descriptor for the requested mode.
func (f Form) Describe(mode Mode) Descriptor {
	if mode == ModeValidate {
		return f.Validations.Clone()
	}
	return f.Fields.Clone()
}

// Clone returns a deep copy of the form.
func (f Form) Clone() Form {
	return Form{
		Name:        f.Name,
		Fields:      f.Fields.Clone(),
		Validations: f.Validations.Clone(),
	}
}

// Check reports every configuration problem in the form, joined with
// errors.Join. Each problem is a *ConfigError carrying the form and field
// name; use errors.Is against the package sentinels to classify them.
func (f Form) Check() error {
	var problems []error
	report := func(field string, err error, detail string) {
		problems = append(problems, &ConfigError{Form: f.Name, Field: field, Err: err, Detail: detail})
	}

	declared := make(map[string]struct{}, len(f.Fields))
	for idx, field := range f.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			report("", ErrMissingName, fmt.Sprintf("field record %d (%s)", idx+1, field.Type))
		} else {
			declared[name] = struct{}{}
		}
		if !field.Type.Valid() {
			report(name, ErrUnknownFieldType, fmt.Sprintf("%q", field.Type))
		}
		for _, slot := range []struct{ name, value string }{
			{"name", field.Name}, {"label", field.Label}, {"value", field.Value}, {"id", field.ID},
		} {
			if strings.Contains(slot.value, ",") {
				report(name, ErrReservedCharacter, fmt.Sprintf("%s %q contains ','", slot.name, slot.value))
			}
		}
		if field.Attributes != "" {
			if _, err := ParseAttributes(field.Attributes); err != nil {
				report(name, ErrMalformedAttributes, detailOf(err))
			}
		}
	}

	seen := make(map[string]struct{}, len(f.Validations))
	for idx, v := range f.Validations {
		name := strings.TrimSpace(v.Field)
		if name == "" {
			report("", ErrMissingName, fmt.Sprintf("validation entry %d", idx+1))
			continue
		}
		if _, dup := seen[name]; dup {
			report(name, ErrDuplicateValidation, "")
		}
		seen[name] = struct{}{}
		if _, ok := declared[name]; !ok {
			report(name, ErrUndeclaredField, "")
		}
		if strings.Contains(v.Message.Label, RuleSeparator) {
			report(name, ErrReservedCharacter, fmt.Sprintf("message label %q contains '|'", v.Message.Label))
		}
		// Without a label the first '|' of the text would be read as the label separator.
		if v.Message.Label == "" && strings.Contains(v.Message.Text, RuleSeparator) {
			report(name, ErrReservedCharacter, fmt.Sprintf("unlabelled message %q contains '|'", v.Message.Text))
		}
		for _, rule := range v.Rules {
			// Rules built in code bypass ParseRules; round-trip them.
			if _, err := ParseRules(rule.String()); err != nil || rule.Name == "" {
				report(name, ErrMalformedRule, fmt.Sprintf("%q", rule.String()))
			}
		}
	}

	return errors.Join(problems...)
}

func detailOf(err error) string {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Detail != "" {
		return cfgErr.Detail
	}
	return err.Error()
}
