package schema_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fastform/pkg/schema"
)

func sampleForm() schema.Form {
	return schema.Form{
		Name: "signup",
		Fields: schema.Fields{
			{Type: schema.FieldTypeEmail, Name: "email", Label: "Email", ID: "emailID"},
			{Type: schema.FieldTypePassword, Name: "password", Label: "Password", ID: "passwordID"},
			{Type: schema.FieldTypeSubmit, Name: "submit", Value: "Sign up"},
		},
		Validations: schema.Validations{
			{Field: "email", Message: schema.Message{Label: "Email", Text: "Please enter your email"}, Rules: schema.Rules{{Name: "required"}, {Name: "valid_email"}}},
			{Field: "password", Message: schema.Message{Label: "Password", Text: "Please enter a password"}, Rules: schema.Rules{{Name: "required"}, {Name: "min", Param: "8"}}},
		},
	}
}

func TestFormCheck_Valid(t *testing.T) {
	if err := sampleForm().Check(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFormCheck_ReportsEachProblem(t *testing.T) {
	form := sampleForm()
	form.Fields = append(form.Fields, schema.Field{Type: "slider", Name: "volume"})
	form.Fields[0].Attributes = `placeholder="oops`
	form.Validations = append(form.Validations,
		schema.Validation{Field: "nickname", Message: schema.Message{Text: "Must be 18|21"}, Rules: schema.Rules{{Name: "required"}}},
		schema.Validation{Field: "email", Rules: schema.Rules{{Name: "min", Param: "a]b"}}},
	)

	err := form.Check()
	if err == nil {
		t.Fatalf("expected problems")
	}
	for _, sentinel := range []error{
		schema.ErrUnknownFieldType,
		schema.ErrMalformedAttributes,
		schema.ErrUndeclaredField,
		schema.ErrDuplicateValidation,
		schema.ErrMalformedRule,
		schema.ErrReservedCharacter,
	} {
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected %v in %v", sentinel, err)
		}
	}

	problems := schema.Problems(err)
	if len(problems) != 6 {
		t.Fatalf("expected 6 problems, got %d: %v", len(problems), err)
	}
	for _, problem := range problems {
		if problem.Form != "signup" {
			t.Fatalf("problem missing form name: %#v", problem)
		}
	}
	if !strings.Contains(err.Error(), `field "nickname"`) {
		t.Fatalf("error should name the undeclared field: %v", err)
	}
}

func TestFormDescribe_ReturnsCopies(t *testing.T) {
	form := sampleForm()
	render := form.Describe(schema.ModeRender)
	fields, ok := render.(schema.Fields)
	if !ok {
		t.Fatalf("render descriptor has type %T", render)
	}
	fields[0].Name = "mutated"
	if form.Fields[0].Name != "email" {
		t.Fatalf("Describe leaked the form's backing array")
	}

	validate := form.Describe(schema.ModeValidate)
	if validate.Mode() != schema.ModeValidate || validate.Len() != 2 {
		t.Fatalf("unexpected validate descriptor: %#v", validate)
	}
	want := []schema.Entry{
		{Key: "email", Values: []string{"Email|Please enter your email", "required|valid_email"}},
		{Key: "password", Values: []string{"Password|Please enter a password", "required|min[8]"}},
	}
	if diff := cmp.Diff(want, validate.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestProblems_WrappedError(t *testing.T) {
	inner := schema.Form{Name: "x", Validations: schema.Validations{{Field: "ghost"}}}.Check()
	problems := schema.Problems(errors.Join(inner, errors.New("io failure")))
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %d", len(problems))
	}
	if !errors.Is(problems[0], schema.ErrUndeclaredField) {
		t.Fatalf("first problem should be undeclared field, got %v", problems[0])
	}
	if problems[1].Error() != "io failure" {
		t.Fatalf("unexpected leaf problem %q", problems[1].Error())
	}
}

func TestFormCheck_UnlabelledMessageWithSeparator(t *testing.T) {
	form := sampleForm()
	form.Validations[0].Message = schema.Message{Text: "Must be 18|21"}

	err := form.Check()
	if !errors.Is(err, schema.ErrReservedCharacter) {
		t.Fatalf("expected ErrReservedCharacter, got %v", err)
	}
	// The encoded message would not read back as the same value.
	encoded := form.Validations[0].Values()[0]
	if got := schema.ParseMessage(encoded); got == form.Validations[0].Message {
		t.Fatalf("expected %q to be read back with a label, got %#v", encoded, got)
	}

	form.Validations[0].Message = schema.Message{Label: "Age", Text: "Must be 18|21"}
	if err := form.Check(); err != nil {
		t.Fatalf("labelled message may carry '|' in its text: %v", err)
	}
}
