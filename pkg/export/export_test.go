package export_test

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fastform/pkg/catalog"
	"github.com/goliatone/go-fastform/pkg/export"
	"github.com/goliatone/go-fastform/pkg/forms"
	"github.com/goliatone/go-fastform/pkg/schema"
	"github.com/goliatone/go-fastform/pkg/testsupport"
)

func TestJSON_LoginDescriptors(t *testing.T) {
	cases := []struct {
		validate bool
		want     string
	}{
		{
			validate: false,
			want:     `{"text":["username","Username","","usernameID","placeholder=\"Enter your username\""],"password":["password","Password","","passwordID","placeholder=\"Enter your password\""],"submit":["submit","","Login"]}` + "\n",
		},
		{
			validate: true,
			want:     `{"username":["Username|Please enter your username","required|min[3]"],"password":["Password|Please enter your password","required|hash"]}` + "\n",
		},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		if err := export.JSON(&buf, forms.Login(tc.validate), ""); err != nil {
			t.Fatalf("JSON: %v", err)
		}
		if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
			t.Fatalf("validate=%v output mismatch (-want +got):\n%s", tc.validate, diff)
		}
	}
}

func TestJSON_Indent(t *testing.T) {
	var buf bytes.Buffer
	if err := export.JSON(&buf, forms.Login(true), "  "); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "{\n  \"username\": [\n") {
		t.Fatalf("unexpected indented output:\n%s", buf.String())
	}
}

func TestYAML_RoundTripsThroughCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := export.YAML(&buf, forms.LoginForm()); err != nil {
		t.Fatalf("YAML: %v", err)
	}

	cat, err := catalog.LoadFS(fstest.MapFS{"forms.yaml": {Data: buf.Bytes()}})
	if err != nil {
		t.Fatalf("LoadFS: %v\n%s", err, buf.String())
	}
	got, ok := cat.Form("login")
	if !ok {
		t.Fatalf("login missing from exported catalog:\n%s", buf.String())
	}
	if diff := cmp.Diff(forms.LoginForm(), got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestYAML_RequiresForms(t *testing.T) {
	if err := export.YAML(&bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for empty export")
	}
}

func TestPHP_LoginClass(t *testing.T) {
	out := testsupport.Capture(t, func(w io.Writer) error {
		return export.PHP(w, []schema.Form{forms.LoginForm()})
	})
	testsupport.AssertLines(t, out,
		"<?php",
		"class MyForms extends Forms",
		"    public static function my_login($validate = '')",
		`                'text' => 'username,Username,,usernameID,placeholder="Enter your username"',`,
		`                'password' => 'password,Password,,passwordID,placeholder="Enter your password"',`,
		`                'submit' => 'submit,,Login'`,
		`            'username' => ['Username|Please enter your username', 'required|min[3]'],`,
		`            'password' => ['Password|Please enter your password', 'required|hash']`,
	)
	if strings.Contains(out, "&quot;") || strings.Contains(out, "&#") {
		t.Fatalf("output was HTML-escaped:\n%s", out)
	}
}

func TestPHP_EscapingAndOptions(t *testing.T) {
	form := schema.Form{
		Name: "sign-up",
		Fields: schema.Fields{
			{Type: schema.FieldTypeText, Name: "surname", Label: `O'Brien\Smith`},
		},
	}
	var buf bytes.Buffer
	err := export.PHP(&buf, []schema.Form{form},
		export.WithClassName("SiteForms"),
		export.WithParentClass("Formr"),
		export.WithMethodPrefix("form_"),
	)
	if err != nil {
		t.Fatalf("PHP: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "class SiteForms extends Formr") {
		t.Fatalf("class options not applied:\n%s", out)
	}
	if !strings.Contains(out, "function form_sign_up(") {
		t.Fatalf("method name not derived:\n%s", out)
	}
	if !strings.Contains(out, `'surname,O\'Brien\\Smith'`) {
		t.Fatalf("PHP string not escaped:\n%s", out)
	}
}

func TestPHP_Errors(t *testing.T) {
	if err := export.PHP(&bytes.Buffer{}, nil); err == nil {
		t.Fatalf("expected error for empty export")
	}
	if err := export.PHP(&bytes.Buffer{}, []schema.Form{forms.LoginForm()}, export.WithClassName("My Forms")); err == nil {
		t.Fatalf("expected error for invalid class name")
	}
	dup := []schema.Form{{Name: "a-b"}, {Name: "a_b"}}
	if err := export.PHP(&bytes.Buffer{}, dup); err == nil {
		t.Fatalf("expected error for colliding method names")
	}
}
