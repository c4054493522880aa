package author

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-fastform/pkg/schema"
)

// Wizard builds a form definition by prompting for its fields and rules.
type Wizard struct {
	driver   PromptDriver
	idSuffix string
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithIDSuffix changes the suffix of suggested element ids. Defaults to "ID".
func WithIDSuffix(suffix string) Option {
	return func(w *Wizard) {
		w.idSuffix = suffix
	}
}

// NewWizard constructs a wizard on top of driver.
func NewWizard(driver PromptDriver, options ...Option) *Wizard {
	w := &Wizard{driver: driver, idSuffix: "ID"}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Run prompts for a complete form. The returned form has passed Form.Check.
func (w *Wizard) Run(ctx context.Context) (schema.Form, error) {
	if w == nil || w.driver == nil {
		return schema.Form{}, errors.New("author: prompt driver is required")
	}

	name, err := w.driver.Input(ctx, InputConfig{
		Message:   "Form name",
		Help:      "Used as the provider name, e.g. login",
		Validator: requireValue,
	})
	if err != nil {
		return schema.Form{}, err
	}
	form := schema.Form{Name: strings.TrimSpace(name)}

	for {
		field, err := w.promptField(ctx, form.Fields)
		if err != nil {
			return schema.Form{}, err
		}
		form.Fields = append(form.Fields, field)

		more, err := w.driver.Confirm(ctx, ConfirmConfig{Message: "Add another field?", Default: true})
		if err != nil {
			return schema.Form{}, err
		}
		if !more {
			break
		}
	}

	for _, field := range form.Fields {
		if field.Type.IsButton() {
			continue
		}
		validation, ok, err := w.promptValidation(ctx, field)
		if err != nil {
			return schema.Form{}, err
		}
		if ok {
			form.Validations = append(form.Validations, validation)
		}
	}

	if err := form.Check(); err != nil {
		return schema.Form{}, fmt.Errorf("author: form is invalid: %w", err)
	}
	return form, nil
}

func (w *Wizard) promptField(ctx context.Context, existing schema.Fields) (schema.Field, error) {
	types := schema.FieldTypes()
	options := make([]string, len(types))
	defaultIdx := 0
	for i, t := range types {
		options[i] = string(t)
		if t == schema.FieldTypeText {
			defaultIdx = i
		}
	}
	idx, err := w.driver.Select(ctx, SelectConfig{
		Message:      "Field type",
		Options:      options,
		DefaultIndex: defaultIdx,
		PageSize:     len(options),
	})
	if err != nil {
		return schema.Field{}, err
	}
	if idx < 0 || idx >= len(types) {
		return schema.Field{}, fmt.Errorf("author: field type selection %d out of range", idx)
	}
	field := schema.Field{Type: types[idx]}

	nameDefault := ""
	if field.Type.IsButton() {
		nameDefault = string(field.Type)
	}
	field.Name, err = w.input(ctx, InputConfig{
		Message: "Field name",
		Default: nameDefault,
		Validator: func(value string) error {
			if err := positional(value); err != nil {
				return err
			}
			if strings.TrimSpace(value) == "" {
				return errors.New("a name is required")
			}
			if _, dup := existing.Lookup(strings.TrimSpace(value)); dup {
				return fmt.Errorf("field %q already exists", strings.TrimSpace(value))
			}
			return nil
		},
	})
	if err != nil {
		return schema.Field{}, err
	}

	if field.Type.IsButton() {
		field.Value, err = w.input(ctx, InputConfig{Message: "Button text", Validator: positional})
		return field, err
	}

	if field.Label, err = w.input(ctx, InputConfig{Message: "Label", Validator: positional}); err != nil {
		return schema.Field{}, err
	}
	if field.Value, err = w.input(ctx, InputConfig{Message: "Default value", Validator: positional}); err != nil {
		return schema.Field{}, err
	}
	if field.ID, err = w.input(ctx, InputConfig{
		Message:   "Element id",
		Default:   field.Name + w.idSuffix,
		Validator: positional,
	}); err != nil {
		return schema.Field{}, err
	}
	field.Attributes, err = w.input(ctx, InputConfig{
		Message: "Attributes",
		Help:    `Space separated, e.g. placeholder="Enter your username"`,
		Validator: func(value string) error {
			_, err := schema.ParseAttributes(value)
			return err
		},
	})
	return field, err
}

func (w *Wizard) promptValidation(ctx context.Context, field schema.Field) (schema.Validation, bool, error) {
	validate, err := w.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Validate %s?", field.Name),
		Default: true,
	})
	if err != nil || !validate {
		return schema.Validation{}, false, err
	}

	label := field.Label
	if label == "" {
		label = field.Name
	}
	message, err := w.input(ctx, InputConfig{
		Message: "Error message",
		Default: label + schema.RuleSeparator + "Please enter your " + strings.ToLower(label),
		Help:    "Label|Error text",
	})
	if err != nil {
		return schema.Validation{}, false, err
	}

	rules, err := w.promptRules(ctx, field)
	if err != nil || len(rules) == 0 {
		return schema.Validation{}, false, err
	}

	return schema.Validation{
		Field:   field.Name,
		Message: schema.ParseMessage(message),
		Rules:   rules,
	}, true, nil
}

// promptRules offers the rules that fit the field type, asks for the length
// of min/max, then accepts any further rules in the pipe syntax.
func (w *Wizard) promptRules(ctx context.Context, field schema.Field) (schema.Rules, error) {
	choices := ruleChoices(field.Type)
	picked, err := w.driver.MultiSelect(ctx, SelectConfig{
		Message:  fmt.Sprintf("Rules for %s", field.Name),
		Options:  choices,
		Defaults: []int{0},
		PageSize: len(choices),
	})
	if err != nil {
		return nil, err
	}

	var rules schema.Rules
	for _, idx := range picked {
		if idx < 0 || idx >= len(choices) {
			return nil, fmt.Errorf("author: rule selection %d out of range", idx)
		}
		rule := schema.Rule{Name: choices[idx]}
		if rule.Name == schema.RuleMin || rule.Name == schema.RuleMax {
			if rule.Param, err = w.input(ctx, InputConfig{
				Message:   fmt.Sprintf("%s length", rule.Name),
				Validator: length,
			}); err != nil {
				return nil, err
			}
		}
		rules = append(rules, rule)
	}

	rawExtra, err := w.input(ctx, InputConfig{
		Message: "Extra rules",
		Help:    "Pipe separated, e.g. alpha|trim",
		Validator: func(value string) error {
			_, err := schema.ParseRules(value)
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	extra, err := schema.ParseRules(rawExtra)
	if err != nil {
		return nil, err
	}
	for _, rule := range extra {
		if !rules.Has(rule.Name) {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

// ruleChoices lists the rules offered for a field type; required comes first
// and is pre-selected.
func ruleChoices(t schema.FieldType) []string {
	choices := []string{schema.RuleRequired, schema.RuleMin, schema.RuleMax}
	switch t {
	case schema.FieldTypePassword:
		choices = append(choices, schema.RuleHash)
	case schema.FieldTypeEmail:
		choices = append(choices, schema.RuleEmail)
	}
	return choices
}

// input asks and trims; validators run on the raw answer inside the driver.
func (w *Wizard) input(ctx context.Context, cfg InputConfig) (string, error) {
	value, err := w.driver.Input(ctx, cfg)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func requireValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}

func length(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return errors.New("a positive whole number is required")
	}
	return nil
}

func positional(value string) error {
	if strings.Contains(value, ",") {
		return errors.New("commas are not allowed in positional values")
	}
	return nil
}
