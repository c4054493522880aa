package testsupport

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fastform/pkg/schema"
)

// MustReadFixture returns the contents of a testdata file.
func MustReadFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// Capture runs an exporter against a buffer and returns what it wrote.
func Capture(t *testing.T, render func(io.Writer) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

// AssertLines fails unless every line appears in out as a complete line.
func AssertLines(t *testing.T, out string, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if !strings.Contains("\n"+out, "\n"+line+"\n") {
			t.Fatalf("missing line %q in output:\n%s", line, out)
		}
	}
}

// AssertEntries compares a descriptor's entries against want.
func AssertEntries(t *testing.T, want []schema.Entry, got schema.Descriptor) {
	t.Helper()
	if got == nil {
		t.Fatalf("descriptor is nil")
	}
	if diff := cmp.Diff(want, got.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

// LoginRenderEntries are the login form's render records as positional values.
func LoginRenderEntries() []schema.Entry {
	return []schema.Entry{
		{Key: "text", Values: []string{"username", "Username", "", "usernameID", `placeholder="Enter your username"`}},
		{Key: "password", Values: []string{"password", "Password", "", "passwordID", `placeholder="Enter your password"`}},
		{Key: "submit", Values: []string{"submit", "", "Login"}},
	}
}

// LoginValidateEntries are the login form's validation entries.
func LoginValidateEntries() []schema.Entry {
	return []schema.Entry{
		{Key: "username", Values: []string{"Username|Please enter your username", "required|min[3]"}},
		{Key: "password", Values: []string{"Password|Please enter your password", "required|hash"}},
	}
}
