package catalog_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/goliatone/go-fastform/pkg/catalog"
	"github.com/goliatone/go-fastform/pkg/forms"
	"github.com/goliatone/go-fastform/pkg/schema"
	"github.com/goliatone/go-fastform/pkg/testsupport"
)

func TestLoadFS_Valid(t *testing.T) {
	cat, err := catalog.LoadFS(subDirFS(t, "valid"), catalog.WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if diff := cmp.Diff([]string{"contact", "login"}, cat.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	login, ok := cat.Form("login")
	if !ok {
		t.Fatalf("login form missing")
	}
	if diff := cmp.Diff(forms.LoginForm(), login); diff != "" {
		t.Fatalf("catalog login differs from built-in (-want +got):\n%s", diff)
	}
	testsupport.AssertEntries(t, testsupport.LoginRenderEntries(), login.Describe(schema.ModeRender))
	testsupport.AssertEntries(t, testsupport.LoginValidateEntries(), login.Describe(schema.ModeValidate))
	if got := cat.Source("login"); got != "login.yaml" {
		t.Fatalf("unexpected source %q", got)
	}

	contact, ok := cat.Form("contact")
	if !ok {
		t.Fatalf("contact form missing")
	}
	if got := contact.Fields[0].Attributes; got != "placeholder='you@example.com'" {
		t.Fatalf("attributes should load verbatim, got %q", got)
	}
	v, ok := contact.Validations.Lookup("message")
	if !ok || v.Rules.String() != "required|max[500]" {
		t.Fatalf("message validation not parsed: %#v", v)
	}
}

func TestLoadFS_AttributeNormalization(t *testing.T) {
	cat, err := catalog.LoadFS(subDirFS(t, "valid"), catalog.WithAttributeNormalization())
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	contact, _ := cat.Form("contact")
	if got := contact.Fields[0].Attributes; got != `placeholder="you@example.com"` {
		t.Fatalf("attributes not normalised: %q", got)
	}
}

func TestLoadFS_ReportsEveryProblem(t *testing.T) {
	_, err := catalog.LoadFS(subDirFS(t, "invalid"))
	if err == nil {
		t.Fatalf("expected load error")
	}
	for _, sentinel := range []error{
		schema.ErrUnknownFieldType,
		schema.ErrMalformedAttributes,
		schema.ErrMalformedRule,
		schema.ErrUndeclaredField,
	} {
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected %v in %v", sentinel, err)
		}
	}

	problems := schema.Problems(err)
	if len(problems) != 4 {
		t.Fatalf("expected 4 problems, got %d: %v", len(problems), err)
	}
	for _, problem := range problems {
		if problem.Source != "broken.yaml" || problem.Form != "broken" {
			t.Fatalf("problem not located: %#v", problem)
		}
	}
	if !strings.Contains(err.Error(), `broken.yaml: schema: malformed rule (form "broken", field "nickname")`) {
		t.Fatalf("rule problem should name file, form and field:\n%v", err)
	}
}

func TestLoadFS_DuplicateFormAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("forms:\n  login:\n    fields:\n      - type: text\n        name: username\n  broken:\n    fields:\n      - type: slider\n        name: volume\n")},
		"b.yml":  {Data: []byte("forms:\n  login:\n    fields:\n      - type: text\n        name: username\n")},
	}
	_, err := catalog.LoadFS(fsys)
	if !errors.Is(err, catalog.ErrDuplicateForm) {
		t.Fatalf("expected duplicate form error, got %v", err)
	}
	if !errors.Is(err, schema.ErrUnknownFieldType) {
		t.Fatalf("problems found before the duplicate were dropped: %v", err)
	}

	problems := schema.Problems(err)
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %d: %v", len(problems), err)
	}
	for _, problem := range problems {
		if errors.Is(problem, catalog.ErrDuplicateForm) {
			if problem.Source != "b.yml" || problem.Form != "login" || !strings.Contains(problem.Detail, "a.yaml") {
				t.Fatalf("duplicate not located: %#v", problem)
			}
		}
	}
}

func TestLoadFS_EmptyAndUnparsable(t *testing.T) {
	if _, err := catalog.LoadFS(fstest.MapFS{"empty.yaml": {Data: []byte("  \n")}}); err == nil {
		t.Fatalf("expected empty file error")
	}
	_, err := catalog.LoadFS(fstest.MapFS{"bad.json": {Data: []byte("forms: [")}})
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "bad.json") || !strings.Contains(err.Error(), "line") {
		t.Fatalf("parse error should name the file and line: %v", err)
	}
}

func TestLoadFS_IgnoresOtherFiles(t *testing.T) {
	cat, err := catalog.LoadFS(fstest.MapFS{"README.md": {Data: []byte("# forms")}})
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if !cat.Empty() {
		t.Fatalf("expected empty catalog")
	}

	nilCat, err := catalog.LoadFS(nil)
	if err != nil || !nilCat.Empty() {
		t.Fatalf("nil fs should yield an empty catalog, got %v", err)
	}
}

func TestCatalog_Register(t *testing.T) {
	cat, err := catalog.LoadFS(subDirFS(t, "valid"))
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	reg := forms.NewEmptyRegistry()
	if err := cat.Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	desc, err := reg.Describe("contact", true)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if desc.Len() != 2 {
		t.Fatalf("expected 2 validations, got %d", desc.Len())
	}

	if err := cat.Register(forms.NewRegistry()); !errors.Is(err, forms.ErrDuplicate) {
		t.Fatalf("expected duplicate login registration, got %v", err)
	}
}

func subDirFS(t *testing.T, name string) fs.FS {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve caller path")
	}
	dir := filepath.Join(filepath.Dir(file), "testdata", name)
	return os.DirFS(dir)
}
