// Package form binds entities to editable field groups and back.
package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/diewo77/go-coopcycle/internal/models"
	"github.com/diewo77/go-coopcycle/internal/schema"
	"github.com/diewo77/go-coopcycle/validation"
)

var (
	ErrReadOnly     = errors.New("form: field is read-only")
	ErrUnknownField = errors.New("form: unknown field")
)

type control struct {
	value    any
	disabled bool
}

// Group holds one control per schema field.
type Group struct {
	schema   *schema.Schema
	controls map[string]*control
}

func newGroup(s *schema.Schema) *Group {
	g := &Group{schema: s, controls: make(map[string]*control, len(s.Fields))}
	for _, f := range s.Fields {
		g.controls[f.Name] = &control{disabled: f.ReadOnly}
	}
	return g
}

func (g *Group) Schema() *schema.Schema { return g.schema }

// Get returns the current value of a field.
func (g *Group) Get(name string) (any, bool) {
	c, ok := g.controls[name]
	if !ok {
		return nil, false
	}
	return c.value, true
}

// Disabled reports whether the field rejects user input.
func (g *Group) Disabled(name string) bool {
	c, ok := g.controls[name]
	return ok && c.disabled
}

// Set changes an enabled field.
func (g *Group) Set(name string, value any) error {
	c, ok := g.controls[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if c.disabled {
		return fmt.Errorf("%w: %s", ErrReadOnly, name)
	}
	c.value = value
	return nil
}

// Value returns the enabled fields only.
func (g *Group) Value() map[string]any {
	out := make(map[string]any, len(g.controls))
	for _, f := range g.schema.Fields {
		if c := g.controls[f.Name]; !c.disabled {
			out[f.Name] = normalize(f, c.value)
		}
	}
	return out
}

// RawValue returns every field, disabled ones included.
func (g *Group) RawValue() map[string]any {
	out := make(map[string]any, len(g.controls))
	for _, f := range g.schema.Fields {
		out[f.Name] = normalize(f, g.controls[f.Name].value)
	}
	return out
}

// Errors validates the enabled fields.
func (g *Group) Errors() validation.Violations { return g.schema.Validate(g.Value()) }

func (g *Group) Valid() bool { return g.Errors().Empty() }

func (g *Group) reset(values map[string]any) {
	for _, f := range g.schema.Fields {
		c := g.controls[f.Name]
		c.value = values[f.Name]
		c.disabled = f.ReadOnly
	}
}

// normalize converts control input to the wire shape of its field. Blank
// input becomes absent.
func normalize(f schema.Field, value any) any {
	if validation.IsEmpty(value) {
		return nil
	}
	switch f.Kind {
	case schema.KindID:
		return idValue(value)
	case schema.KindRef:
		if id := idValue(value); id != nil {
			return map[string]any{"id": id}
		}
		return nil
	case schema.KindNumber:
		if s, ok := value.(string); ok {
			s = strings.TrimSpace(s)
			if _, err := strconv.ParseFloat(s, 64); err == nil {
				return json.Number(s)
			}
		}
	case schema.KindDateTime:
		switch v := value.(type) {
		case models.DateTime:
			return v.String()
		case *models.DateTime:
			return v.String()
		}
	}
	return value
}

type identified interface{ Identity() models.ID }

func idValue(value any) any {
	switch v := value.(type) {
	case models.ID:
		if v.IsNew() {
			return nil
		}
		return json.Number(v.String())
	case identified:
		return idValue(v.Identity())
	case map[string]any:
		return idValue(v["id"])
	case int:
		return idValue(models.ID(v))
	case int64:
		return idValue(models.ID(v))
	case float64:
		return idValue(models.ID(v))
	case json.Number:
		return v
	case string:
		if id, err := models.ParseID(strings.TrimSpace(v)); err == nil {
			return json.Number(id.String())
		}
	}
	return nil
}

// Binder turns entities of type E into Groups and back.
type Binder[E models.Entity] struct {
	Schema *schema.Schema
	// Defaults returns the initial field values of a new record.
	Defaults func() map[string]any
}

func NewBinder[E models.Entity](s *schema.Schema, defaults func() map[string]any) *Binder[E] {
	return &Binder[E]{Schema: s, Defaults: defaults}
}

// Create builds a group from input. New records (absent input or no id)
// start from the defaults; a stored entity shows exactly its own fields.
func (b *Binder[E]) Create(input E) (*Group, error) {
	g := newGroup(b.Schema)
	if err := b.Reset(g, input); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset puts every control back to the initial values of input, as Create.
func (b *Binder[E]) Reset(g *Group, input E) error {
	values, err := b.initial(input)
	if err != nil {
		return err
	}
	g.reset(values)
	return nil
}

func (b *Binder[E]) initial(input E) (map[string]any, error) {
	values := map[string]any{"id": nil}
	var none E
	isNew := input == none || input.Identity().IsNew()
	if isNew && b.Defaults != nil {
		maps.Copy(values, b.Defaults())
	}
	if input == none {
		return values, nil
	}
	fields, err := schema.Values(input)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		if v != nil {
			values[k] = v
		}
	}
	return values, nil
}

// Entity decodes the raw value of g, disabled fields included.
func (b *Binder[E]) Entity(g *Group) (E, error) {
	var e E
	if err := schema.Decode(g.RawValue(), &e); err != nil {
		var none E
		return none, err
	}
	return e, nil
}
