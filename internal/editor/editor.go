// Package editor drives the create/edit/delete flow of one entity: load it,
// bind it to a form, offer the related entities as options and save it back.
// It holds no UI; a Navigator receives the page transitions.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/diewo77/go-coopcycle/internal/client"
	"github.com/diewo77/go-coopcycle/internal/form"
	"github.com/diewo77/go-coopcycle/internal/models"
	"github.com/diewo77/go-coopcycle/validation"
)

var ErrSaveInProgress = errors.New("editor: a save is already in progress")

// ValidationError blocks a save before any request is sent.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("editor: %d invalid field(s)", len(e.Violations))
}

// Navigator receives the page transitions of an editor.
type Navigator interface {
	// Back returns to the previous page, after a save or a delete.
	Back()
	// NotFound shows the not-found page.
	NotFound()
}

// Store is the remote side of an editor. *client.Client implements it.
type Store[E models.Entity] interface {
	Find(ctx context.Context, id models.ID) (E, error)
	Create(ctx context.Context, e E) (E, error)
	Update(ctx context.Context, e E) (E, error)
	Delete(ctx context.Context, id models.ID) error
}

// Relation keeps the selectable options of one relationship of E.
type Relation[E models.Entity] interface {
	Name() string
	// Reset makes the entity referenced by e selectable.
	Reset(e E)
	// Load fetches the options and merges the entity referenced by e.
	Load(ctx context.Context, e E) error
}

type Option[E models.Entity] func(*Editor[E])

func WithLogger[E models.Entity](log logrus.FieldLogger) Option[E] {
	return func(ed *Editor[E]) { ed.log = log }
}

func WithRelations[E models.Entity](relations ...Relation[E]) Option[E] {
	return func(ed *Editor[E]) { ed.relations = append(ed.relations, relations...) }
}

// Editor is the update page controller of one entity type.
type Editor[E models.Entity] struct {
	store     Store[E]
	binder    *form.Binder[E]
	nav       Navigator
	relations []Relation[E]
	log       logrus.FieldLogger

	saving atomic.Bool

	mu     sync.Mutex
	entity E
	form   *form.Group
}

func New[E models.Entity](store Store[E], binder *form.Binder[E], nav Navigator, opts ...Option[E]) (*Editor[E], error) {
	var none E
	g, err := binder.Create(none)
	if err != nil {
		return nil, fmt.Errorf("build %s form: %w", binder.Schema.Entity, err)
	}
	ed := &Editor[E]{
		store:  store,
		binder: binder,
		nav:    nav,
		log:    logrus.StandardLogger(),
		form:   g,
	}
	for _, opt := range opts {
		opt(ed)
	}
	return ed, nil
}

// Open loads the entity id into the form, or starts a new record when id is
// zero, then loads the relationship options. A missing entity goes to the
// not-found page and leaves the editor empty.
func (ed *Editor[E]) Open(ctx context.Context, id models.ID) error {
	if !id.IsNew() {
		e, err := ed.store.Find(ctx, id)
		if errors.Is(err, client.ErrNotFound) {
			ed.nav.NotFound()
			return err
		}
		if err != nil {
			return err
		}
		if err := ed.UpdateForm(e); err != nil {
			return err
		}
	}
	return ed.LoadRelationshipOptions(ctx)
}

// UpdateForm makes e the edited entity and seeds every relationship with the
// entity e references.
func (ed *Editor[E]) UpdateForm(e E) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	if err := ed.binder.Reset(ed.form, e); err != nil {
		return err
	}
	ed.entity = e
	for _, r := range ed.relations {
		r.Reset(e)
	}
	return nil
}

// LoadRelationshipOptions queries every relationship concurrently. Each
// relation only writes its own options, and a failed load does not cancel
// the others. The first error is returned once all loads are done.
func (ed *Editor[E]) LoadRelationshipOptions(ctx context.Context) error {
	e := ed.Entity()
	var g errgroup.Group
	for _, r := range ed.relations {
		g.Go(func() error {
			if err := r.Load(ctx, e); err != nil {
				return fmt.Errorf("load %s options: %w", r.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Save creates or updates the form's entity, depending on whether it has an
// id, and goes back on success. The saving flag is set for the duration of
// the call.
func (ed *Editor[E]) Save(ctx context.Context) (E, error) {
	var none E
	if !ed.saving.CompareAndSwap(false, true) {
		return none, ErrSaveInProgress
	}
	defer ed.saving.Store(false)

	ed.mu.Lock()
	if v := ed.form.Errors(); !v.Empty() {
		ed.mu.Unlock()
		return none, &ValidationError{Violations: v}
	}
	e, err := ed.binder.Entity(ed.form)
	ed.mu.Unlock()
	if err != nil {
		return none, err
	}

	var saved E
	if e.Identity().IsNew() {
		saved, err = ed.store.Create(ctx, e)
	} else {
		saved, err = ed.store.Update(ctx, e)
	}
	if err != nil {
		ed.log.WithError(err).WithField("entity", ed.binder.Schema.Entity).Warn("save failed")
		return none, err
	}

	ed.mu.Lock()
	ed.entity = saved
	ed.mu.Unlock()
	ed.nav.Back()
	return saved, nil
}

// Delete removes the entity id and goes back.
func (ed *Editor[E]) Delete(ctx context.Context, id models.ID) error {
	if err := ed.store.Delete(ctx, id); err != nil {
		ed.log.WithError(err).WithField("entity", ed.binder.Schema.Entity).Warn("delete failed")
		return err
	}
	ed.nav.Back()
	return nil
}

func (ed *Editor[E]) IsSaving() bool { return ed.saving.Load() }

// Form returns the bound form. Callers must not use it concurrently with
// Save or UpdateForm.
func (ed *Editor[E]) Form() *form.Group {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.form
}

// Entity returns the entity being edited, or the absent value for a new one.
func (ed *Editor[E]) Entity() E {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.entity
}
