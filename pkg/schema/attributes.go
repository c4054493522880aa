package schema

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	attrPolicyOnce sync.Once
	attrPolicy     *bluemonday.Policy

	attrNamePattern = regexp.MustCompile(`^[A-Za-z_:@][-A-Za-z0-9_:.@]*$`)
)

// Attribute is one token of a field's free-form attribute string.
type Attribute struct {
	Name     string
	Value    string
	HasValue bool
}

// Attributes is an ordered attribute list.
type Attributes []Attribute

// Get returns the value of the first attribute with the given name.
func (as Attributes) Get(name string) (string, bool) {
	for _, attr := range as {
		if strings.EqualFold(attr.Name, name) {
			return attr.Value, true
		}
	}
	return "", false
}

// String renders the canonical attribute string: values double-quoted,
// tokens separated by a single space.
func (as Attributes) String() string {
	parts := make([]string, 0, len(as))
	for _, attr := range as {
		if !attr.HasValue {
			parts = append(parts, attr.Name)
			continue
		}
		parts = append(parts, attr.Name+`="`+attr.Value+`"`)
	}
	return strings.Join(parts, " ")
}

// ParseAttributes tokenises an attribute string such as
// `placeholder="Enter your username" autofocus maxlength=20`. Values are
// stripped of markup and HTML-escaped. Failures wrap ErrMalformedAttributes.
func ParseAttributes(raw string) (Attributes, error) {
	var out Attributes
	input := strings.TrimSpace(raw)
	pos := 0
	for pos < len(input) {
		for pos < len(input) && isSpace(input[pos]) {
			pos++
		}
		if pos >= len(input) {
			break
		}

		start := pos
		for pos < len(input) && !isSpace(input[pos]) && input[pos] != '=' {
			pos++
		}
		name := input[start:pos]
		if !attrNamePattern.MatchString(name) {
			return nil, malformedAttributes(raw, "invalid attribute name %q", name)
		}

		if pos >= len(input) || input[pos] != '=' {
			out = append(out, Attribute{Name: name})
			continue
		}
		pos++
		if pos >= len(input) || isSpace(input[pos]) {
			return nil, malformedAttributes(raw, "missing value for %q", name)
		}

		var value string
		switch quote := input[pos]; quote {
		case '"', '\'':
			end := strings.IndexByte(input[pos+1:], quote)
			if end < 0 {
				return nil, malformedAttributes(raw, "unterminated quote for %q", name)
			}
			value = input[pos+1 : pos+1+end]
			pos = pos + 1 + end + 1
			if pos < len(input) && !isSpace(input[pos]) {
				return nil, malformedAttributes(raw, "unexpected %q after value of %q", input[pos], name)
			}
		default:
			vstart := pos
			for pos < len(input) && !isSpace(input[pos]) {
				pos++
			}
			value = input[vstart:pos]
			if strings.ContainsAny(value, `"'=<>`) {
				return nil, malformedAttributes(raw, "unquoted value for %q contains reserved characters", name)
			}
		}

		out = append(out, Attribute{Name: name, Value: sanitizeAttributeValue(value), HasValue: true})
	}
	return out, nil
}

// NormalizeAttributes parses and re-renders an attribute string in its
// canonical form. An empty input yields an empty string.
func NormalizeAttributes(raw string) (string, error) {
	attrs, err := ParseAttributes(raw)
	if err != nil {
		return "", err
	}
	return attrs.String(), nil
}

func sanitizeAttributeValue(value string) string {
	return attributeSanitizer().Sanitize(html.UnescapeString(value))
}

func attributeSanitizer() *bluemonday.Policy {
	attrPolicyOnce.Do(func() {
		attrPolicy = bluemonday.StrictPolicy()
	})
	return attrPolicy
}

func malformedAttributes(raw, format string, args ...any) error {
	return &ConfigError{Err: ErrMalformedAttributes, Detail: fmt.Sprintf("%q: ", raw) + fmt.Sprintf(format, args...)}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
