package catalog

import (
	"sort"

	"github.com/goliatone/go-fastform/pkg/forms"
	"github.com/goliatone/go-fastform/pkg/schema"
)

// Catalog keeps the forms parsed from catalog documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Catalog struct {
	forms   map[string]schema.Form
	sources map[string]string
}

// Document is the on-disk shape of a catalog file.
type Document struct {
	Forms map[string]FormFile `json:"forms" yaml:"forms"`
}

// FormFile describes one form inside a catalog document.
type FormFile struct {
	Fields   []FieldFile      `json:"fields" yaml:"fields"`
	Validate []ValidationFile `json:"validate,omitempty" yaml:"validate,omitempty"`
}

// FieldFile is either a structured record or an encoded FastForm record.
type FieldFile struct {
	Type       string       `json:"type,omitempty" yaml:"type,omitempty"`
	Name       string       `json:"name,omitempty" yaml:"name,omitempty"`
	Label      string       `json:"label,omitempty" yaml:"label,omitempty"`
	Value      string       `json:"value,omitempty" yaml:"value,omitempty"`
	ID         string       `json:"id,omitempty" yaml:"id,omitempty"`
	Attributes string       `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Encoded    *EncodedFile `json:"encoded,omitempty" yaml:"encoded,omitempty"`
}

// EncodedFile carries a positional record such as `submit,,Login`.
type EncodedFile struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// ValidationFile describes one validation entry.
type ValidationFile struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
	Rules   string `json:"rules" yaml:"rules"`
}

// Form returns the named form.
func (c *Catalog) Form(name string) (schema.Form, bool) {
	if c == nil {
		return schema.Form{}, false
	}
	form, ok := c.forms[name]
	if !ok {
		return schema.Form{}, false
	}
	return form.Clone(), true
}

// Source returns the file a form was loaded from.
func (c *Catalog) Source(name string) string {
	if c == nil {
		return ""
	}
	return c.sources[name]
}

// Names lists the loaded forms in lexical order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.forms))
	for name := range c.forms {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether the catalog holds any forms.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.forms) == 0
}

// Register adds every catalog form to reg.
func (c *Catalog) Register(reg *forms.Registry) error {
	for _, name := range c.Names() {
		if err := reg.RegisterForm(c.forms[name]); err != nil {
			return err
		}
	}
	return nil
}

// DocumentFor converts forms into their catalog document shape using
// structured field records.
func DocumentFor(list ...schema.Form) Document {
	doc := Document{Forms: make(map[string]FormFile, len(list))}
	for _, form := range list {
		file := FormFile{Fields: make([]FieldFile, 0, len(form.Fields))}
		for _, field := range form.Fields {
			file.Fields = append(file.Fields, FieldFile{
				Type:       string(field.Type),
				Name:       field.Name,
				Label:      field.Label,
				Value:      field.Value,
				ID:         field.ID,
				Attributes: field.Attributes,
			})
		}
		for _, v := range form.Validations {
			file.Validate = append(file.Validate, ValidationFile{
				Field:   v.Field,
				Message: v.Message.String(),
				Rules:   v.Rules.String(),
			})
		}
		doc.Forms[form.Name] = file
	}
	return doc
}
