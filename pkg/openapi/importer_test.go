package openapi_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/goliatone/go-fastform/pkg/forms"
	"github.com/goliatone/go-fastform/pkg/openapi"
	"github.com/goliatone/go-fastform/pkg/schema"
	"github.com/goliatone/go-fastform/pkg/testsupport"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	return testsupport.MustReadFixture(t, filepath.Join("testdata", "auth.yaml"))
}

func TestImport_LoginMatchesBuiltin(t *testing.T) {
	form, err := openapi.Import(context.Background(), loadFixture(t), "login")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if diff := cmp.Diff(forms.LoginForm(), form); diff != "" {
		t.Fatalf("imported login differs from built-in (-want +got):\n%s", diff)
	}
}

func TestImport_MethodPathAndMappings(t *testing.T) {
	form, err := openapi.Import(context.Background(), loadFixture(t), "put:/profile", openapi.WithFormName("profile"))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if form.Name != "profile" {
		t.Fatalf("unexpected form name %q", form.Name)
	}

	wantFields := []schema.Entry{
		{Key: "email", Values: []string{"email", "Email address", "", "emailID"}},
		{Key: "number", Values: []string{"age", "Age", "", "ageID"}},
		{Key: "text", Values: []string{"firstName", "First name", "", "firstNameID"}},
		{Key: "checkbox", Values: []string{"newsletter", "Newsletter", "true", "newsletterID"}},
		{Key: "select", Values: []string{"plan", "Plan", "", "planID"}},
		{Key: "submit", Values: []string{"submit", "", "Save profile"}},
	}
	if diff := cmp.Diff(wantFields, form.Fields.Entries()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	wantValidations := []schema.Entry{
		{Key: "email", Values: []string{"Email address|Please enter your email address", "required|valid_email"}},
		{Key: "firstName", Values: []string{"First name|Please enter your first name", "max[40]|alpha|trim"}},
	}
	if diff := cmp.Diff(wantValidations, form.Validations.Entries()); diff != "" {
		t.Fatalf("validations mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_Options(t *testing.T) {
	form, err := openapi.Import(context.Background(), loadFixture(t), "login",
		openapi.WithSubmitLabel("Sign in"),
		openapi.WithIDSuffix("-input"),
	)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if form.Fields[0].ID != "username-input" {
		t.Fatalf("id suffix not applied: %q", form.Fields[0].ID)
	}
	if got := form.Fields[len(form.Fields)-1].Value; got != "Sign in" {
		t.Fatalf("submit label not applied: %q", got)
	}
}

func TestImport_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := openapi.Import(ctx, loadFixture(t), "missing"); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := openapi.Import(ctx, loadFixture(t), "getProfile"); !errors.Is(err, openapi.ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
	if _, err := openapi.Import(ctx, nil, "login"); err == nil {
		t.Fatalf("expected error for empty payload")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := openapi.Import(cancelled, loadFixture(t), "login"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestImport_DropsCommaBearingValues(t *testing.T) {
	raw := []byte(`openapi: 3.0.3
info: {title: Places, version: 1.0.0}
paths:
  /city:
    put:
      operationId: setCity
      summary: Update city
      x-fastform-submit: Save, then exit
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [city]
              properties:
                city:
                  type: string
                  default: Paris, France
                country:
                  type: string
                  default: France
      responses:
        "204": {description: saved}
`)
	form, err := openapi.Import(context.Background(), raw, "setCity", openapi.WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	testsupport.AssertEntries(t, []schema.Entry{
		{Key: "text", Values: []string{"city", "City", "", "cityID"}},
		{Key: "text", Values: []string{"country", "Country", "France", "countryID"}},
		{Key: "submit", Values: []string{"submit", "", "Update city"}},
	}, form.Fields)
}
