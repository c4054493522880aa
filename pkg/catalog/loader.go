package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fastform/pkg/schema"
)

// ErrDuplicateForm is reported when two catalog files define the same form.
var ErrDuplicateForm = errors.New("catalog: duplicate form")

// Option configures LoadFS.
type Option func(*config)

type config struct {
	logger    *zap.Logger
	normalize bool
}

// WithLogger reports loaded files and forms at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithAttributeNormalization rewrites attribute strings into their canonical
// form (sanitised values, double quotes) while loading.
func WithAttributeNormalization() Option {
	return func(cfg *config) {
		cfg.normalize = true
	}
}

// LoadFS walks the provided filesystem and parses JSON/YAML catalog files.
// Every form is checked while loading; all configuration problems across all
// files are reported together. When fsys is nil the returned catalog is empty.
func LoadFS(fsys fs.FS, options ...Option) (*Catalog, error) {
	cfg := &config{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	cat := &Catalog{
		forms:   make(map[string]schema.Form),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return cat, nil
	}

	var problems []error
	defined := make(map[string]string)
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}

		doc, err := ParseDocument(data, path)
		if err != nil {
			return err
		}
		cfg.logger.Debug("catalog file parsed", zap.String("path", path), zap.Int("forms", len(doc.Forms)))

		for rawName, file := range doc.Forms {
			name := strings.TrimSpace(rawName)
			if name == "" {
				problems = append(problems, &schema.ConfigError{Source: path, Err: schema.ErrMissingName, Detail: "empty form name"})
				continue
			}
			if prev, exists := defined[name]; exists {
				problems = append(problems, &schema.ConfigError{
					Source: path,
					Form:   name,
					Err:    ErrDuplicateForm,
					Detail: "already defined in " + prev,
				})
				continue
			}
			defined[name] = path

			form, errs := buildForm(name, file, cfg)
			if checkErr := form.Check(); checkErr != nil {
				errs = append(errs, checkErr)
			}
			if len(errs) > 0 {
				for _, problem := range schema.Problems(errors.Join(errs...)) {
					problem.Source = path
					problems = append(problems, problem)
				}
				continue
			}

			cat.forms[name] = form
			cat.sources[name] = path
			cfg.logger.Debug("catalog form loaded",
				zap.String("form", name),
				zap.String("path", path),
				zap.Int("fields", len(form.Fields)),
				zap.Int("validations", len(form.Validations)),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return cat, nil
}

// ParseDocument decodes a catalog file, trying JSON first and then YAML.
func ParseDocument(data []byte, source string) (Document, error) {
	var doc Document
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("catalog: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = Document{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// JSON is a subset of YAML, so the YAML error also locates JSON mistakes.
		return Document{}, fmt.Errorf("catalog: parse %s: %w", source, err)
	}
	return doc, nil
}

func buildForm(name string, file FormFile, cfg *config) (schema.Form, []error) {
	form := schema.Form{Name: name}
	var errs []error

	for idx, raw := range file.Fields {
		field, err := buildField(raw)
		if err != nil {
			errs = append(errs, locate(err, name, raw.Name, fmt.Sprintf("field record %d", idx+1)))
			continue
		}
		if cfg.normalize && field.Attributes != "" {
			if normalized, err := schema.NormalizeAttributes(field.Attributes); err == nil {
				field.Attributes = normalized
			}
		}
		form.Fields = append(form.Fields, field)
	}

	for _, raw := range file.Validate {
		rules, err := schema.ParseRules(raw.Rules)
		if err != nil {
			errs = append(errs, locate(err, name, raw.Field, ""))
			continue
		}
		form.Validations = append(form.Validations, schema.Validation{
			Field:   strings.TrimSpace(raw.Field),
			Message: schema.ParseMessage(raw.Message),
			Rules:   rules,
		})
	}

	return form, errs
}

func buildField(raw FieldFile) (schema.Field, error) {
	if raw.Encoded != nil {
		return schema.ParseField(raw.Encoded.Type, raw.Encoded.Value)
	}
	return schema.Field{
		Type:       schema.NormalizeFieldType(raw.Type),
		Name:       strings.TrimSpace(raw.Name),
		Label:      raw.Label,
		Value:      raw.Value,
		ID:         strings.TrimSpace(raw.ID),
		Attributes: strings.TrimSpace(raw.Attributes),
	}, nil
}

// locate fills in the form and field of a ConfigError produced by the schema
// parsers, which do not know where they were called from.
func locate(err error, form, field, fallback string) error {
	var cfgErr *schema.ConfigError
	if errors.As(err, &cfgErr) {
		located := *cfgErr
		located.Form = form
		if located.Field == "" {
			located.Field = strings.TrimSpace(field)
		}
		if located.Field == "" && fallback != "" {
			located.Detail = strings.TrimSpace(fallback + ": " + located.Detail)
		}
		return &located
	}
	return &schema.ConfigError{Form: form, Field: field, Detail: err.Error()}
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
