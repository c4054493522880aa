package schema

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// RuleSeparator separates rules in a rule string and the label from the
	// text in a message string.
	RuleSeparator = "|"

	RuleRequired = "required"
	RuleMin      = "min"
	RuleMax      = "max"
	RuleHash     = "hash"
	RuleEmail    = "valid_email"
)

var ruleNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Rule is a single named validation check, optionally parameterised with the
// bracket syntax `min[3]`.
type Rule struct {
	Name  string `json:"name" yaml:"name"`
	Param string `json:"param,omitempty" yaml:"param,omitempty"`
}

func (r Rule) String() string {
	if r.Param == "" {
		return r.Name
	}
	return r.Name + "[" + r.Param + "]"
}

// Rules is an ordered rule sequence.
type Rules []Rule

func (rs Rules) String() string {
	parts := make([]string, 0, len(rs))
	for _, rule := range rs {
		parts = append(parts, rule.String())
	}
	return strings.Join(parts, RuleSeparator)
}

// Has reports whether a rule with the given name is present.
func (rs Rules) Has(name string) bool {
	for _, rule := range rs {
		if rule.Name == name {
			return true
		}
	}
	return false
}

// ParseRules decodes a pipe-delimited rule string. Every failure wraps
// ErrMalformedRule.
func ParseRules(raw string) (Rules, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	parts := strings.Split(trimmed, RuleSeparator)
	out := make(Rules, 0, len(parts))
	for idx, part := range parts {
		rule, err := parseRule(strings.TrimSpace(part))
		if err != nil {
			return nil, &ConfigError{Err: ErrMalformedRule, Detail: fmt.Sprintf("rule %d of %q: %s", idx+1, raw, err)}
		}
		out = append(out, rule)
	}
	return out, nil
}

func parseRule(token string) (Rule, error) {
	if token == "" {
		return Rule{}, fmt.Errorf("empty rule")
	}
	open := strings.IndexByte(token, '[')
	if open < 0 {
		if strings.ContainsRune(token, ']') {
			return Rule{}, fmt.Errorf("unexpected ']' in %q", token)
		}
		if !ruleNamePattern.MatchString(token) {
			return Rule{}, fmt.Errorf("invalid rule name %q", token)
		}
		return Rule{Name: token}, nil
	}

	name := token[:open]
	if !ruleNamePattern.MatchString(name) {
		return Rule{}, fmt.Errorf("invalid rule name %q", name)
	}
	if !strings.HasSuffix(token, "]") {
		return Rule{}, fmt.Errorf("unterminated parameter in %q", token)
	}
	param := token[open+1 : len(token)-1]
	if strings.TrimSpace(param) == "" {
		return Rule{}, fmt.Errorf("empty parameter in %q", token)
	}
	if strings.ContainsAny(param, "[]") {
		return Rule{}, fmt.Errorf("nested brackets in %q", token)
	}
	return Rule{Name: name, Param: param}, nil
}

// Message is a validation error message, optionally prefixed by the field
// label it refers to (`Username|Please enter your username`).
type Message struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Text  string `json:"text" yaml:"text"`
}

// ParseMessage splits a message string on the first separator. A string
// without a separator is text only.
func ParseMessage(raw string) Message {
	label, text, found := strings.Cut(raw, RuleSeparator)
	if !found {
		return Message{Text: strings.TrimSpace(raw)}
	}
	return Message{Label: strings.TrimSpace(label), Text: strings.TrimSpace(text)}
}

func (m Message) String() string {
	if m.Label == "" {
		return m.Text
	}
	return m.Label + RuleSeparator + m.Text
}
