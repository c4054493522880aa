package export

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"unicode"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-fastform/pkg/schema"
)

//go:embed templates/*
var embeddedTemplates embed.FS

const phpTemplate = "myforms.php.tpl"

var (
	phpSetOnce sync.Once
	phpSet     *pongo2.TemplateSet
)

// PHPOption configures PHP.
type PHPOption func(*phpConfig)

type phpConfig struct {
	class        string
	parent       string
	methodPrefix string
}

// WithClassName sets the generated class name. Defaults to MyForms.
func WithClassName(name string) PHPOption {
	return func(cfg *phpConfig) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.class = trimmed
		}
	}
}

// WithParentClass sets the class the generated class extends. Defaults to
// Forms.
func WithParentClass(name string) PHPOption {
	return func(cfg *phpConfig) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.parent = trimmed
		}
	}
}

// WithMethodPrefix sets the prefix of the generated static methods. Defaults
// to "my_", so the login form becomes my_login.
func WithMethodPrefix(prefix string) PHPOption {
	return func(cfg *phpConfig) {
		cfg.methodPrefix = prefix
	}
}

type phpEntry struct {
	Key   string
	Value string
}

type phpValidation struct {
	Key     string
	Message string
	Rules   string
}

type phpForm struct {
	Method      string
	Fields      []phpEntry
	Validations []phpValidation
}

// PHP writes a FastForm forms class with one static provider method per form.
// Each method returns the render records when called without arguments and
// the validation rules when called with a truthy argument.
func PHP(w io.Writer, list []schema.Form, options ...PHPOption) error {
	cfg := &phpConfig{class: "MyForms", parent: "Forms", methodPrefix: "my_"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if !isPHPIdentifier(cfg.class) || !isPHPIdentifier(cfg.parent) {
		return fmt.Errorf("export: invalid PHP class name %q extends %q", cfg.class, cfg.parent)
	}
	if len(list) == 0 {
		return errors.New("export: no forms to export")
	}

	data := make([]phpForm, 0, len(list))
	methods := make(map[string]string, len(list))
	for _, form := range list {
		method := cfg.methodPrefix + phpIdentifier(form.Name)
		if !isPHPIdentifier(method) {
			return fmt.Errorf("export: form %q does not map to a PHP method name", form.Name)
		}
		if prev, dup := methods[method]; dup {
			return fmt.Errorf("export: forms %q and %q both map to method %s", prev, form.Name, method)
		}
		methods[method] = form.Name

		out := phpForm{Method: method}
		for _, entry := range form.Fields.Entries() {
			out.Fields = append(out.Fields, phpEntry{
				Key:   phpString(entry.Key),
				Value: phpString(strings.Join(entry.Values, ",")),
			})
		}
		for _, v := range form.Validations {
			out.Validations = append(out.Validations, phpValidation{
				Key:     phpString(v.Field),
				Message: phpString(v.Message.String()),
				Rules:   phpString(v.Rules.String()),
			})
		}
		data = append(data, out)
	}

	tpl, err := templateSet().FromFile(phpTemplate)
	if err != nil {
		return fmt.Errorf("export: load PHP template: %w", err)
	}
	if err := tpl.ExecuteWriter(pongo2.Context{
		"class":  cfg.class,
		"parent": cfg.parent,
		"forms":  data,
	}, w); err != nil {
		return fmt.Errorf("export: render PHP template: %w", err)
	}
	return nil
}

func templateSet() *pongo2.TemplateSet {
	phpSetOnce.Do(func() {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			// The embed directive guarantees the subpath exists.
			panic(err)
		}
		phpSet = pongo2.NewSet("fastform-export", pongo2.NewFSLoader(sub))
	})
	return phpSet
}

// phpString renders value as a single-quoted PHP string literal.
func phpString(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(value)
	return "'" + escaped + "'"
}

func phpIdentifier(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	return b.String()
}

func isPHPIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r < unicode.MaxASCII && unicode.IsLetter(r):
		case i > 0 && r < unicode.MaxASCII && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
