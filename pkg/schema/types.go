package schema

import (
	"sort"
	"strings"
)

// FieldType names the kind of form control a render record describes. It is
// also the key of the record inside a FieldDescriptor.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypePassword FieldType = "password"
	FieldTypeEmail    FieldType = "email"
	FieldTypeHidden   FieldType = "hidden"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTel      FieldType = "tel"
	FieldTypeURL      FieldType = "url"
	FieldTypeDate     FieldType = "date"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeSelect   FieldType = "select"
	FieldTypeFile     FieldType = "file"
	FieldTypeSubmit   FieldType = "submit"
	FieldTypeReset    FieldType = "reset"
	FieldTypeButton   FieldType = "button"
)

var knownFieldTypes = map[FieldType]struct{}{
	FieldTypeText:     {},
	FieldTypePassword: {},
	FieldTypeEmail:    {},
	FieldTypeHidden:   {},
	FieldTypeTextarea: {},
	FieldTypeNumber:   {},
	FieldTypeTel:      {},
	FieldTypeURL:      {},
	FieldTypeDate:     {},
	FieldTypeCheckbox: {},
	FieldTypeRadio:    {},
	FieldTypeSelect:   {},
	FieldTypeFile:     {},
	FieldTypeSubmit:   {},
	FieldTypeReset:    {},
	FieldTypeButton:   {},
}

// Valid reports whether the type belongs to the supported set.
func (t FieldType) Valid() bool {
	_, ok := knownFieldTypes[t]
	return ok
}

// IsButton reports whether the type is an action control rather than an
// input. Buttons carry no validation.
func (t FieldType) IsButton() bool {
	switch t {
	case FieldTypeSubmit, FieldTypeReset, FieldTypeButton:
		return true
	default:
		return false
	}
}

// NormalizeFieldType trims and lower-cases a raw type name.
func NormalizeFieldType(raw string) FieldType {
	return FieldType(strings.ToLower(strings.TrimSpace(raw)))
}

// FieldTypes lists the supported field types in lexical order.
func FieldTypes() []FieldType {
	out := make([]FieldType, 0, len(knownFieldTypes))
	for t := range knownFieldTypes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Mode selects which descriptor a provider returns.
type Mode int

const (
	// ModeRender selects the FieldDescriptor.
	ModeRender Mode = iota
	// ModeValidate selects the ValidationDescriptor.
	ModeValidate
)

// ModeFor maps the boolean validate flag used by FastForm providers to a Mode.
func ModeFor(validate bool) Mode {
	if validate {
		return ModeValidate
	}
	return ModeRender
}

func (m Mode) String() string {
	switch m {
	case ModeRender:
		return "render"
	case ModeValidate:
		return "validate"
	default:
		return "unknown"
	}
}

// Entry is one key/value pair of a descriptor in its positional FastForm
// shape. For render entries Key is the field type and Values the positional
// record; for validate entries Key is the field name and Values holds the
// message and the rule string.
type Entry struct {
	Key    string   `json:"key" yaml:"key"`
	Values []string `json:"values" yaml:"values"`
}

// Descriptor is the value a provider returns: either Fields (render mode) or
// Validations (validate mode). The interface is sealed to those two types.
type Descriptor interface {
	Mode() Mode
	Entries() []Entry
	Len() int
	descriptor()
}
