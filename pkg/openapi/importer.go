package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-fastform/pkg/schema"
)

const (
	// ExtensionType overrides the derived field type of a property.
	ExtensionType = "x-fastform-type"
	// ExtensionRules appends extra rules (`alpha|trim`) to a property.
	ExtensionRules = "x-fastform-rules"
	// ExtensionSubmit overrides the submit control label of an operation.
	ExtensionSubmit = "x-fastform-submit"

	defaultSubmitLabel = "Submit"
)

var (
	// ErrOperationNotFound is returned when the document has no operation
	// with the requested id.
	ErrOperationNotFound = errors.New("openapi importer: operation not found")
	// ErrNoRequestBody is returned when the operation has no object request
	// body to derive fields from.
	ErrNoRequestBody = errors.New("openapi importer: operation has no object request body")
)

// Option configures Import.
type Option func(*config)

type config struct {
	formName    string
	submitLabel string
	idSuffix    string
	logger      *zap.Logger
}

// WithLogger reports values the importer had to leave out at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithFormName names the imported form; the operation id is used otherwise.
func WithFormName(name string) Option {
	return func(cfg *config) {
		cfg.formName = strings.TrimSpace(name)
	}
}

// WithSubmitLabel sets the submit control label, overriding the operation
// summary and the x-fastform-submit extension.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		cfg.submitLabel = strings.TrimSpace(label)
	}
}

// WithIDSuffix changes the suffix appended to field names to build element
// ids. The default is "ID" (`username` becomes `usernameID`).
func WithIDSuffix(suffix string) Option {
	return func(cfg *config) {
		cfg.idSuffix = suffix
	}
}

// Import loads an OpenAPI 3 document and derives a FastForm form from the
// request body of the operation identified by operationID. Operations without
// an id can be addressed as `method:path` (e.g. `post:/login`).
func Import(ctx context.Context, raw []byte, operationID string, options ...Option) (schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return schema.Form{}, err
	}
	cfg := &config{idSuffix: "ID", logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if len(raw) == 0 {
		return schema.Form{}, errors.New("openapi importer: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return schema.Form{}, fmt.Errorf("openapi importer: load document: %w", err)
	}

	op, err := findOperation(doc, strings.TrimSpace(operationID))
	if err != nil {
		return schema.Form{}, err
	}

	body := requestSchema(op.RequestBody)
	if body == nil || len(body.Properties) == 0 {
		return schema.Form{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	name := cfg.formName
	if name == "" {
		name = strings.TrimSpace(operationID)
	}
	form := schema.Form{Name: name}

	required := make(map[string]struct{}, len(body.Required))
	for _, prop := range body.Required {
		required[prop] = struct{}{}
	}

	for _, prop := range orderedProperties(body) {
		ref := body.Properties[prop]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, isRequired := required[prop]
		field, validation := convertProperty(prop, ref.Value, isRequired, cfg)
		form.Fields = append(form.Fields, field)
		if len(validation.Rules) > 0 {
			form.Validations = append(form.Validations, validation)
		}
	}

	form.Fields = append(form.Fields, schema.Field{
		Type:  schema.FieldTypeSubmit,
		Name:  "submit",
		Value: submitLabel(cfg, op),
	})

	if err := form.Check(); err != nil {
		return schema.Form{}, fmt.Errorf("openapi importer: derived form is invalid: %w", err)
	}
	return form, nil
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if doc.Paths == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			if op.OperationID == operationID {
				return op, nil
			}
			if op.OperationID == "" && strings.EqualFold(strings.ToLower(method)+":"+path, operationID) {
				return op, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// orderedProperties lists required properties in declared order, followed
// by the remaining properties sorted by name.
func orderedProperties(s *openapi3.Schema) []string {
	seen := make(map[string]struct{}, len(s.Properties))
	out := make([]string, 0, len(s.Properties))
	for _, name := range s.Required {
		if _, ok := s.Properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	rest := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func convertProperty(name string, prop *openapi3.Schema, required bool, cfg *config) (schema.Field, schema.Validation) {
	fieldType := fieldTypeFor(prop)
	label := strings.TrimSpace(strings.NewReplacer(",", "", "|", "").Replace(prop.Title))
	if label == "" {
		label = humanize(name)
	}

	field := schema.Field{
		Type:  fieldType,
		Name:  name,
		Label: label,
		ID:    name + cfg.idSuffix,
	}
	if prop.Default != nil && !fieldType.IsButton() {
		value := fmt.Sprint(prop.Default)
		if strings.Contains(value, ",") {
			// The value slot is positional; a comma would shift the id and attributes.
			cfg.logger.Debug("default value dropped", zap.String("property", name), zap.String("default", value))
		} else {
			field.Value = value
		}
	}
	if desc := strings.TrimSpace(prop.Description); desc != "" {
		field.Attributes = schema.Attributes{{Name: "placeholder", Value: strings.ReplaceAll(desc, `"`, "'"), HasValue: true}}.String()
	}

	var rules schema.Rules
	if required {
		rules = append(rules, schema.Rule{Name: schema.RuleRequired})
	}
	if prop.MinLength > 0 {
		rules = append(rules, schema.Rule{Name: schema.RuleMin, Param: strconv.FormatUint(prop.MinLength, 10)})
	}
	if prop.MaxLength != nil {
		rules = append(rules, schema.Rule{Name: schema.RuleMax, Param: strconv.FormatUint(*prop.MaxLength, 10)})
	}
	switch fieldType {
	case schema.FieldTypeEmail:
		rules = append(rules, schema.Rule{Name: schema.RuleEmail})
	case schema.FieldTypePassword:
		rules = append(rules, schema.Rule{Name: schema.RuleHash})
	}
	if extra, ok := prop.Extensions[ExtensionRules].(string); ok {
		if parsed, err := schema.ParseRules(extra); err == nil {
			for _, rule := range parsed {
				if !rules.Has(rule.Name) {
					rules = append(rules, rule)
				}
			}
		} else {
			// Keep the raw rule so Form.Check reports it.
			rules = append(rules, schema.Rule{Name: extra})
		}
	}

	return field, schema.Validation{
		Field:   name,
		Message: schema.Message{Label: label, Text: "Please enter your " + strings.ToLower(label)},
		Rules:   rules,
	}
}

func fieldTypeFor(prop *openapi3.Schema) schema.FieldType {
	if override, ok := prop.Extensions[ExtensionType].(string); ok {
		return schema.NormalizeFieldType(override)
	}
	if len(prop.Enum) > 0 {
		return schema.FieldTypeSelect
	}
	switch strings.ToLower(prop.Format) {
	case "password":
		return schema.FieldTypePassword
	case "email":
		return schema.FieldTypeEmail
	case "uri", "url":
		return schema.FieldTypeURL
	case "date":
		return schema.FieldTypeDate
	case "binary":
		return schema.FieldTypeFile
	}
	switch {
	case prop.Type == nil:
		return schema.FieldTypeText
	case prop.Type.Is(openapi3.TypeInteger), prop.Type.Is(openapi3.TypeNumber):
		return schema.FieldTypeNumber
	case prop.Type.Is(openapi3.TypeBoolean):
		return schema.FieldTypeCheckbox
	default:
		return schema.FieldTypeText
	}
}

func submitLabel(cfg *config, op *openapi3.Operation) string {
	if cfg.submitLabel != "" {
		return cfg.submitLabel
	}
	if label, ok := op.Extensions[ExtensionSubmit].(string); ok && usableLabel(label) {
		return strings.TrimSpace(label)
	}
	if usableLabel(op.Summary) {
		return strings.TrimSpace(op.Summary)
	}
	return defaultSubmitLabel
}

func usableLabel(label string) bool {
	label = strings.TrimSpace(label)
	return label != "" && !strings.Contains(label, ",")
}

// humanize turns `first_name` or `firstName` into `First name`.
func humanize(name string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0:
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	if len(words) == 0 {
		return name
	}
	out := []rune(strings.Join(words, " "))
	out[0] = unicode.ToUpper(out[0])
	return string(out)
}
