package schema

// Validation is one ValidationDescriptor entry: the field it applies to, the
// message shown on failure and the ordered rules.
type Validation struct {
	Field   string  `json:"field" yaml:"field"`
	Message Message `json:"message" yaml:"message"`
	Rules   Rules   `json:"rules" yaml:"rules"`
}

// Values returns the FastForm pair: message string, rule string.
func (v Validation) Values() []string {
	return []string{v.Message.String(), v.Rules.String()}
}

// Validations is the ValidationDescriptor, ordered by declaration.
type Validations []Validation

var _ Descriptor = Validations(nil)

func (Validations) descriptor() {}

// Mode implements Descriptor.
func (Validations) Mode() Mode { return ModeValidate }

// Len implements Descriptor.
func (vs Validations) Len() int { return len(vs) }

// Entries implements Descriptor.
func (vs Validations) Entries() []Entry {
	out := make([]Entry, 0, len(vs))
	for _, v := range vs {
		out = append(out, Entry{Key: v.Field, Values: v.Values()})
	}
	return out
}

// Fields returns the field names the entries apply to, in order.
func (vs Validations) Fields() []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Field)
	}
	return out
}

// Lookup returns the entry for a field name.
func (vs Validations) Lookup(field string) (Validation, bool) {
	for _, v := range vs {
		if v.Field == field {
			return v, true
		}
	}
	return Validation{}, false
}

// Clone returns a deep copy of the entries.
func (vs Validations) Clone() Validations {
	if vs == nil {
		return nil
	}
	out := make(Validations, len(vs))
	for i, v := range vs {
		out[i] = v
		out[i].Rules = append(Rules(nil), v.Rules...)
	}
	return out
}
