// Package validation checks field values and collects violations as
// field -> code pairs, the shape returned to API clients.
package validation

import (
	"encoding/json"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records code for field unless the field already failed a rule.
func (v Violations) Add(field, code string) {
	if _, ok := v[field]; !ok {
		v[field] = code
	}
}

// Rule checks one field value and records what it finds in v.
type Rule func(field string, value any, v Violations)

// Violation codes.
const (
	CodeRequired      = "required"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeInvalidFormat = "invalid_format"
	CodeOutOfRange    = "out_of_range"
	CodeInvalidChoice = "invalid_choice"
)

// Basic validators
func Required(field string, value any, v Violations) {
	if IsEmpty(value) {
		v.Add(field, CodeRequired)
	}
}

// Length bounds the rune count of a string value. Absent values pass.
func Length(minLen, maxLen int) Rule {
	return func(field string, value any, v Violations) {
		s, ok := stringOf(value)
		if !ok || s == "" {
			return
		}
		n := utf8.RuneCountInString(s)
		if minLen > 0 && n < minLen {
			v.Add(field, CodeTooShort)
		} else if maxLen > 0 && n > maxLen {
			v.Add(field, CodeTooLong)
		}
	}
}

// MaxLength is Length with no lower bound.
func MaxLength(maxLen int) Rule { return Length(0, maxLen) }

// Pattern requires a string value to match expr. Absent values pass.
func Pattern(expr string) Rule {
	re := regexp.MustCompile(expr)
	return func(field string, value any, v Violations) {
		s, ok := stringOf(value)
		if !ok || s == "" {
			return
		}
		if !re.MatchString(s) {
			v.Add(field, CodeInvalidFormat)
		}
	}
}

// Min requires a numeric value >= minVal. Absent values pass.
func Min(minVal float64) Rule {
	return func(field string, value any, v Violations) {
		if IsEmpty(value) {
			return
		}
		f, ok := Number(value)
		if !ok {
			v.Add(field, CodeInvalidFormat)
			return
		}
		if f < minVal {
			v.Add(field, CodeOutOfRange)
		}
	}
}

// OneOf requires a string value to be one of choices. Absent values pass.
func OneOf(choices ...string) Rule {
	return func(field string, value any, v Violations) {
		s, ok := stringOf(value)
		if !ok || s == "" {
			return
		}
		if !slices.Contains(choices, s) {
			v.Add(field, CodeInvalidChoice)
		}
	}
}

// Func adapts a parse-style check: an error from check marks the field with
// CodeInvalidFormat. Absent values pass.
func Func(check func(string) error) Rule {
	return func(field string, value any, v Violations) {
		s, ok := stringOf(value)
		if !ok || s == "" {
			return
		}
		if err := check(s); err != nil {
			v.Add(field, CodeInvalidFormat)
		}
	}
}

// IsEmpty reports nil, nil pointers and blank strings.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := stringOf(value); ok {
		return strings.TrimSpace(s) == ""
	}
	// References travel as {"id": N}; ids start at 1.
	if m, ok := value.(map[string]any); ok {
		id, has := m["id"]
		if !has || IsEmpty(id) {
			return true
		}
		n, ok := Number(id)
		return ok && n <= 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Number converts the numeric shapes produced by JSON decoding.
func Number(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case *float64:
		if n == nil {
			return 0, false
		}
		return *n, true
	}
	return 0, false
}

func stringOf(value any) (string, bool) {
	switch s := value.(type) {
	case string:
		return s, true
	case *string:
		if s == nil {
			return "", false
		}
		return *s, true
	case json.Number:
		return s.String(), true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}
