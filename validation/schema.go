// Package validation checks raw JSON payloads against field schemas before
// they reach the service layer.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Rule names reported in violations.
const (
	RuleObject   = "object"
	RuleRequired = "required"
	RuleString   = "string"
	RuleEmpty    = "empty"
	RuleInteger  = "integer"
	RuleOneOf    = "oneOf"
)

// Kind is the JSON type a field must hold.
type Kind int

const (
	KindString Kind = iota
	KindInteger
)

// Violation is a single broken field rule.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error lists every violation found in a payload.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns the violation messages in field order.
func (e *Error) Messages() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Message)
	}
	return out
}

// Has reports whether field broke rule.
func (e *Error) Has(field, rule string) bool {
	for _, v := range e.Violations {
		if v.Field == field && v.Rule == rule {
			return true
		}
	}
	return false
}

// Field describes the constraints on one payload key.
type Field struct {
	Name       string
	Required   bool
	Kind       Kind
	AllowEmpty bool
	OneOf      []any
}

// Schema is an ordered set of field rules.
type Schema []Field

// Decode reads a JSON object. Numbers are kept as json.Number so integers
// can be told apart from fractions.
func Decode(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, single("body", RuleObject, `"body" must be a JSON object`)
		}
		return nil, single("body", RuleObject, fmt.Sprintf(`"body" is not valid JSON: %v`, err))
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		return nil, single("body", RuleObject, `"body" must be a JSON object`)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, single("body", RuleObject, `"body" must contain a single JSON object`)
	}
	return payload, nil
}

// Validate checks payload against every field and returns all violations.
// Keys not named by the schema are ignored.
func (s Schema) Validate(payload map[string]any) error {
	var violations []Violation
	for _, f := range s {
		if v, ok := f.check(payload); !ok {
			violations = append(violations, v)
		}
	}
	if len(violations) > 0 {
		return &Error{Violations: violations}
	}
	return nil
}

func (f Field) check(payload map[string]any) (Violation, bool) {
	value, present := payload[f.Name]
	if !present {
		if f.Required {
			return f.violation(RuleRequired, "is required"), false
		}
		return Violation{}, true
	}
	if value == nil {
		if f.Required {
			return f.violation(RuleRequired, "is required"), false
		}
		return f.kindViolation(), false
	}

	switch f.Kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return f.kindViolation(), false
		}
		if s == "" && !f.AllowEmpty {
			return f.violation(RuleEmpty, "is not allowed to be empty"), false
		}
		if len(f.OneOf) > 0 && !contains(f.OneOf, s) {
			return f.oneOfViolation(), false
		}
	case KindInteger:
		n, ok := asInt(value)
		if !ok {
			return f.kindViolation(), false
		}
		if len(f.OneOf) > 0 && !contains(f.OneOf, n) {
			return f.oneOfViolation(), false
		}
	}
	return Violation{}, true
}

func (f Field) violation(rule, text string) Violation {
	return Violation{
		Field:   f.Name,
		Rule:    rule,
		Message: fmt.Sprintf("%q %s", f.Name, text),
	}
}

func (f Field) kindViolation() Violation {
	if f.Kind == KindInteger {
		return f.violation(RuleInteger, "must be an integer")
	}
	return f.violation(RuleString, "must be a string")
}

func (f Field) oneOfViolation() Violation {
	allowed := make([]string, 0, len(f.OneOf))
	for _, v := range f.OneOf {
		allowed = append(allowed, fmt.Sprintf("%v", v))
	}
	return f.violation(RuleOneOf, "must be one of ["+strings.Join(allowed, ", ")+"]")
}

func single(field, rule, message string) *Error {
	return &Error{Violations: []Violation{{Field: field, Rule: rule, Message: message}}}
}

func contains(set []any, v any) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// asInt accepts json.Number and the numeric types a caller may hand in
// directly, rejecting fractions.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil || f != float64(int64(f)) {
				return 0, false
			}
			i = int64(f)
		}
		return int(i), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
