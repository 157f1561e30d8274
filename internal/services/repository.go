// Package services persists coopcycle entities through gorm.
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diewo77/go-coopcycle/internal/models"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidReference = errors.New("reference to a missing record")
)

// Order sorts a list on one column.
type Order struct {
	Column string
	Desc   bool
}

// ListParams selects one page of records. Columns must already be checked
// against the entity's known fields.
type ListParams struct {
	Page    int
	Size    int
	Sort    []Order
	Filters map[string]any
}

// Repository stores entities of struct type T.
type Repository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

func (r *Repository[T]) Create(ctx context.Context, e *T) error {
	return translate(r.db.WithContext(ctx).Create(e).Error)
}

// Save writes every column of e, absent values included.
func (r *Repository[T]) Save(ctx context.Context, e *T) error {
	return translate(r.db.WithContext(ctx).Save(e).Error)
}

func (r *Repository[T]) Find(ctx context.Context, id models.ID) (*T, error) {
	var e T
	if err := r.db.WithContext(ctx).First(&e, "id = ?", int64(id)).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *Repository[T]) Exists(ctx context.Context, id models.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", int64(id)).Limit(1).Count(&count).Error
	return count > 0, err
}

func (r *Repository[T]) Count(ctx context.Context, filters map[string]any) (int64, error) {
	var total int64
	err := r.filtered(ctx, filters).Count(&total).Error
	return total, err
}

// List returns one page and the number of records matching the filters.
func (r *Repository[T]) List(ctx context.Context, p ListParams) ([]T, int64, error) {
	total, err := r.Count(ctx, p.Filters)
	if err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	q := r.filtered(ctx, p.Filters)
	for _, o := range p.Sort {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	// Stable pages.
	q = q.Order("id")
	if p.Size > 0 {
		q = q.Limit(p.Size).Offset(p.Page * p.Size)
	}
	items := []T{}
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id models.ID) error {
	res := r.db.WithContext(ctx).Delete(new(T), "id = ?", int64(id))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository[T]) filtered(ctx context.Context, filters map[string]any) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T))
	for column, value := range filters {
		q = q.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	}
	return q
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	return err
}
