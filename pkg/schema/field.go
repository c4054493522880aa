package schema

import (
	"fmt"
	"strings"
)

// FieldArity is the number of positional values in an encoded render record:
// name, label, value, id, attributes.
const FieldArity = 5

// Field is a single render record. Type keys the record inside a
// FieldDescriptor; the remaining members map one-to-one onto the positional
// FastForm encoding.
type Field struct {
	Type       FieldType `json:"type" yaml:"type"`
	Name       string    `json:"name" yaml:"name"`
	Label      string    `json:"label,omitempty" yaml:"label,omitempty"`
	Value      string    `json:"value,omitempty" yaml:"value,omitempty"`
	ID         string    `json:"id,omitempty" yaml:"id,omitempty"`
	Attributes string    `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// ParseField decodes a positional FastForm record. Fewer than FieldArity
// values leave the trailing members empty; the attribute slot absorbs any
// further commas so attribute values may contain them.
func ParseField(fieldType, encoded string) (Field, error) {
	t := NormalizeFieldType(fieldType)
	if !t.Valid() {
		return Field{}, &ConfigError{Err: ErrUnknownFieldType, Detail: fmt.Sprintf("%q", fieldType)}
	}
	parts := strings.SplitN(encoded, ",", FieldArity)
	values := make([]string, FieldArity)
	copy(values, parts)

	field := Field{
		Type:       t,
		Name:       strings.TrimSpace(values[0]),
		Label:      values[1],
		Value:      values[2],
		ID:         strings.TrimSpace(values[3]),
		Attributes: strings.TrimSpace(values[4]),
	}
	if field.Name == "" {
		return Field{}, &ConfigError{Err: ErrMissingName, Detail: fmt.Sprintf("%s record %q", t, encoded)}
	}
	return field, nil
}

// Values returns the positional record with trailing empty values dropped,
// matching the way FastForm records are written by hand (`submit,,Login`).
func (f Field) Values() []string {
	values := []string{f.Name, f.Label, f.Value, f.ID, f.Attributes}
	end := len(values)
	for end > 1 && values[end-1] == "" {
		end--
	}
	return values[:end]
}

// Encode renders the positional FastForm record string.
func (f Field) Encode() string {
	return strings.Join(f.Values(), ",")
}

// Fields is the FieldDescriptor: an ordered list of render records. Order is
// rendering order; types may repeat.
type Fields []Field

var _ Descriptor = Fields(nil)

func (Fields) descriptor() {}

// Mode implements Descriptor.
func (Fields) Mode() Mode { return ModeRender }

// Len implements Descriptor.
func (fs Fields) Len() int { return len(fs) }

// Entries implements Descriptor.
func (fs Fields) Entries() []Entry {
	out := make([]Entry, 0, len(fs))
	for _, field := range fs {
		out = append(out, Entry{Key: string(field.Type), Values: field.Values()})
	}
	return out
}

// Names returns the declared field names in order.
func (fs Fields) Names() []string {
	out := make([]string, 0, len(fs))
	for _, field := range fs {
		out = append(out, field.Name)
	}
	return out
}

// Lookup returns the first record declaring the given field name.
func (fs Fields) Lookup(name string) (Field, bool) {
	for _, field := range fs {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Clone returns a copy that shares no backing array with fs.
func (fs Fields) Clone() Fields {
	if fs == nil {
		return nil
	}
	return append(Fields(nil), fs...)
}
