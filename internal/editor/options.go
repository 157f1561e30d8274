package editor

import (
	"context"
	"sync"

	"github.com/diewo77/go-coopcycle/internal/client"
	"github.com/diewo77/go-coopcycle/internal/identity"
	"github.com/diewo77/go-coopcycle/internal/models"
)

// Lister lists entities of type R. *client.Client implements it.
type Lister[R models.Entity] interface {
	Query(ctx context.Context, req client.Request) (*client.Page[R], error)
}

// Options is the shared collection of R entities an E can reference through
// one relationship.
type Options[E, R models.Entity] struct {
	name   string
	source Lister[R]
	ref    func(E) models.ID

	mu    sync.RWMutex
	items []R
}

// NewOptions builds the options of the relationship name; ref reads the
// referenced id from a non-nil E.
func NewOptions[E, R models.Entity](name string, source Lister[R], ref func(E) models.ID) *Options[E, R] {
	return &Options[E, R]{name: name, source: source, ref: ref}
}

func (o *Options[E, R]) Name() string { return o.name }

func (o *Options[E, R]) Reset(e E) {
	selected := o.selected(e)
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items = identity.AddIfMissing[models.ID](o.items, selected)
}

func (o *Options[E, R]) Load(ctx context.Context, e E) error {
	page, err := o.source.Query(ctx, client.Request{})
	if err != nil {
		return err
	}
	items := identity.AddIfMissing[models.ID](page.Items, o.selected(e))
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items = items
	return nil
}

// Items returns the current options.
func (o *Options[E, R]) Items() []R {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.items
}

// selected is a stub of the entity e references, or the absent value.
func (o *Options[E, R]) selected(e E) R {
	var none E
	if e == none {
		var absent R
		return absent
	}
	return models.Stub[R](o.ref(e))
}
