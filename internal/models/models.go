// Package models holds the coopcycle entities and the value types they share:
// identifiers, typed references and minute-precision date-times.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/diewo77/go-coopcycle/internal/identity"
)

// ID identifies a persisted entity. The zero value means "not created yet"
// and is encoded as JSON null.
type ID int64

// IsNew reports whether no identifier has been assigned.
func (id ID) IsNew() bool { return id == 0 }

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id ID) MarshalJSON() ([]byte, error) {
	if id == 0 {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(id), 10), nil
}

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = 0
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", b, err)
	}
	*id = ID(n)
	return nil
}

// ParseID parses a path segment such as "82318".
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return ID(n), nil
}

// Entity is implemented by pointers to every coopcycle entity and by *Ref.
type Entity = identity.Entity[ID]

// Stub returns an entity value of type E carrying only id, or the absent
// value when id is zero. It lets a reference sit in a collection of loaded
// entities.
func Stub[E Entity](id ID) E {
	var e E
	if id.IsNew() {
		return e
	}
	if err := json.Unmarshal(fmt.Appendf(nil, `{"id":%d}`, id), &e); err != nil {
		var none E
		return none
	}
	return e
}

// Ref is a foreign key to a T. Only the identifier travels on the wire
// ({"id": N}) and only the identifier is stored (a <name>_id column).
type Ref[T any] struct {
	ID ID `json:"id"`
}

// RefTo returns a reference to id, or nil for a zero id.
func RefTo[T any](id ID) *Ref[T] {
	if id.IsNew() {
		return nil
	}
	return &Ref[T]{ID: id}
}

func (r *Ref[T]) Identity() ID { return r.ID }

// IDOf returns the referenced identifier, zero for a nil reference.
func (r *Ref[T]) IDOf() ID {
	if r == nil {
		return 0
	}
	return r.ID
}

func (r Ref[T]) Value() (driver.Value, error) {
	if r.ID.IsNew() {
		return nil, nil
	}
	return int64(r.ID), nil
}

func (r *Ref[T]) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		r.ID = 0
	case int64:
		r.ID = ID(v)
	case int32:
		r.ID = ID(v)
	case []byte:
		return r.Scan(string(v))
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("scan reference: %w", err)
		}
		r.ID = ID(n)
	default:
		return fmt.Errorf("scan reference: unsupported type %T", src)
	}
	return nil
}

func (Ref[T]) GormDataType() string { return "bigint" }

// DateTimeLayout is the wire and form format of a DateTime: date and time
// without seconds.
const DateTimeLayout = "2006-01-02T15:04"

// DateTime is a calendar date-time with minute precision, always in UTC.
type DateTime time.Time

// NewDateTime truncates t to the minute.
func NewDateTime(t time.Time) DateTime {
	return DateTime(t.UTC().Truncate(time.Minute))
}

// ParseDateTime accepts DateTimeLayout and RFC 3339.
func ParseDateTime(s string) (DateTime, error) {
	if t, err := time.ParseInLocation(DateTimeLayout, s, time.UTC); err == nil {
		return NewDateTime(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid date-time %q, want %s", s, DateTimeLayout)
	}
	return NewDateTime(t), nil
}

func (d DateTime) Time() time.Time { return time.Time(d) }

func (d DateTime) String() string { return time.Time(d).UTC().Format(DateTimeLayout) }

func (d DateTime) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *DateTime) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = DateTime{}
		return nil
	}
	v, err := ParseDateTime(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *DateTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

func (d DateTime) Value() (driver.Value, error) { return time.Time(d).UTC(), nil }

func (d *DateTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDateTime(v)
	case []byte:
		return d.Scan(string(v))
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05", DateTimeLayout} {
			if t, err := time.Parse(layout, v); err == nil {
				*d = NewDateTime(t)
				return nil
			}
		}
		return fmt.Errorf("scan date-time: unparseable %q", v)
	case nil:
		*d = DateTime{}
	default:
		return fmt.Errorf("scan date-time: unsupported type %T", src)
	}
	return nil
}

func (DateTime) GormDataType() string { return "time" }
