package validation

import (
	"encoding/json"
	"testing"
)

const (
	emailPattern = `^[^@\s]+@[^@\s]+\.[^@\s]+$`
	phonePattern = `^(\+\d{1,3})?\s*(\(\d{1,3}\)|\d{1,3})\s*(\d{3})\s*(\d{2})\s*(\d{2})$`
)

func check(rule Rule, value any) string {
	v := Violations{}
	rule("f", value, v)
	return v["f"]
}

func TestRequired(t *testing.T) {
	var nilString *string
	blank := "  "
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, CodeRequired},
		{"nil pointer", nilString, CodeRequired},
		{"blank", blank, CodeRequired},
		{"blank pointer", &blank, CodeRequired},
		{"reference without id", map[string]any{"id": nil}, CodeRequired},
		{"reference with zero id", map[string]any{"id": json.Number("0")}, CodeRequired},
		{"reference with negative id", map[string]any{"id": -3}, CodeRequired},
		{"text", "x", ""},
		{"zero number", json.Number("0"), ""},
		{"reference", map[string]any{"id": json.Number("82318")}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := check(Required, tt.value); got != tt.want {
				t.Errorf("Required(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestLength(t *testing.T) {
	rule := Length(2, 50)
	tests := []struct {
		value any
		want  string
	}{
		{"", ""},
		{nil, ""},
		{"E", CodeTooShort},
		{"Es", ""},
		{"Éa", ""},
		{string(make([]byte, 51)), CodeTooLong},
	}
	for _, tt := range tests {
		if got := check(rule, tt.value); got != tt.want {
			t.Errorf("Length(2,50)(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
	if got := check(MaxLength(3), "abcd"); got != CodeTooLong {
		t.Errorf("MaxLength(3) = %q", got)
	}
}

func TestPattern_Email(t *testing.T) {
	rule := Pattern(emailPattern)
	for _, ok := range []string{"J@m'MUur.6", "<d.-+6@P.R52J", "a@b.c"} {
		if got := check(rule, ok); got != "" {
			t.Errorf("%q rejected: %s", ok, got)
		}
	}
	for _, bad := range []string{"ab.c", "a b@c.d", "a@b@c.d", "a@bc"} {
		if got := check(rule, bad); got != CodeInvalidFormat {
			t.Errorf("%q accepted", bad)
		}
	}
}

func TestPattern_Phone(t *testing.T) {
	rule := Pattern(phonePattern)
	for _, ok := range []string{"+205   (12)  598    7207", " 732 290     79  17", "+9(6)   590   2127", "06 123 45 67"} {
		if got := check(rule, ok); got != "" {
			t.Errorf("%q rejected: %s", ok, got)
		}
	}
	for _, bad := range []string{"12345", "+1234 (1) 123 45 67", "abc 123 45 67"} {
		if got := check(rule, bad); got != CodeInvalidFormat {
			t.Errorf("%q accepted", bad)
		}
	}
}

func TestMin(t *testing.T) {
	rule := Min(0)
	tests := []struct {
		value any
		want  string
	}{
		{nil, ""},
		{json.Number("53967"), ""},
		{0.0, ""},
		{-1.5, CodeOutOfRange},
		{json.Number("-2"), CodeOutOfRange},
		{"abc", CodeInvalidFormat},
	}
	for _, tt := range tests {
		if got := check(rule, tt.value); got != tt.want {
			t.Errorf("Min(0)(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestOneOf(t *testing.T) {
	rule := OneOf("EN_COURS", "PRETE", "LIVREE")
	if got := check(rule, "PRETE"); got != "" {
		t.Errorf("PRETE rejected: %s", got)
	}
	if got := check(rule, "PERDUE"); got != CodeInvalidChoice {
		t.Errorf("PERDUE = %q", got)
	}
}

func TestViolations_FirstCodeWins(t *testing.T) {
	v := Violations{}
	Required("name", "", v)
	Length(2, 5)("name", "", v)
	v.Add("name", CodeTooLong)
	if v["name"] != CodeRequired {
		t.Errorf("name = %q, want %q", v["name"], CodeRequired)
	}
	if v.Empty() {
		t.Error("Empty() should be false")
	}
}
