// Package schema describes the editable fields of each coopcycle entity:
// their wire name, kind, validation rules and whether they can be edited.
// Forms and API handlers share these descriptors.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/diewo77/go-coopcycle/validation"
)

// Kind is the shape of a field value.
type Kind int

const (
	KindID Kind = iota
	KindString
	KindNumber
	KindEnum
	KindDateTime
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindEnum:
		return "enum"
	case KindDateTime:
		return "datetime"
	case KindRef:
		return "ref"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field describes one property of an entity.
type Field struct {
	Name     string // JSON name
	Column   string // database column, used for sorting and filtering
	Kind     Kind
	ReadOnly bool
	Choices  []string // KindEnum
	Target   string   // KindRef: resource name of the referenced entity
	Rules    []validation.Rule
}

// Schema is the ordered field list of one entity.
type Schema struct {
	Entity   string // singular name, used in alerts: "commande"
	Resource string // plural name, used in paths: "commandes"
	Fields   []Field
}

// Field returns the descriptor named name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names lists field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Validate runs the rules of every editable field against values.
// Read-only fields are skipped: the identifier is never user input.
func (s *Schema) Validate(values map[string]any) validation.Violations {
	v := validation.Violations{}
	for _, f := range s.Fields {
		if f.ReadOnly {
			continue
		}
		val := values[f.Name]
		for _, rule := range f.Rules {
			rule(f.Name, val, v)
		}
	}
	return v
}

// ValidateEntity validates the JSON projection of entity.
func (s *Schema) ValidateEntity(entity any) (validation.Violations, error) {
	values, err := Values(entity)
	if err != nil {
		return nil, err
	}
	return s.Validate(values), nil
}

// Values projects entity onto a field map the way it travels on the wire.
// Numbers stay json.Number so identifiers keep full precision.
func Values(entity any) (map[string]any, error) {
	b, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("encode entity: %w", err)
	}
	values := map[string]any{}
	if bytes.Equal(b, []byte("null")) {
		return values, nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("decode entity fields: %w", err)
	}
	return values, nil
}

// Decode turns a field map back into an entity.
func Decode(values map[string]any, out any) error {
	b, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode entity: %w", err)
	}
	return nil
}
