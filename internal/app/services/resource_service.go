package services

import (
	"context"

	"github.com/tmorrow/schoolmock/internal/app/models"
	"github.com/tmorrow/schoolmock/internal/pkg/helpers"
)

// ResourceStore is the storage contract one entity kind is served from.
// The PostgreSQL repository and the in-memory backend both satisfy it.
type ResourceStore[T any, PT models.RecordOf[T]] interface {
	List(ctx context.Context, p helpers.ListParams) ([]PT, int64, error)
	GetByID(ctx context.Context, id int64) (PT, error)
	Create(ctx context.Context, rec PT) error
	Update(ctx context.Context, rec PT) error
	Delete(ctx context.Context, id int64) (PT, error)
}

// ResourceService applies the business rules shared by every entity kind on
// top of its store: cross-field validation on writes and full-record
// replacement on update.
type ResourceService[T any, PT models.RecordOf[T]] struct {
	store ResourceStore[T, PT]
	desc  models.Descriptor
}

// NewResourceService creates a service for the entity described by desc.
func NewResourceService[T any, PT models.RecordOf[T]](store ResourceStore[T, PT], desc models.Descriptor) *ResourceService[T, PT] {
	return &ResourceService[T, PT]{
		store: store,
		desc:  desc,
	}
}

// Descriptor exposes the entity metadata to the controller layer.
func (s *ResourceService[T, PT]) Descriptor() models.Descriptor {
	return s.desc
}

// List returns one page plus the filtered total.
func (s *ResourceService[T, PT]) List(ctx context.Context, p helpers.ListParams) ([]PT, int64, error) {
	return s.store.List(ctx, p)
}

// GetByID retrieves one record.
func (s *ResourceService[T, PT]) GetByID(ctx context.Context, id int64) (PT, error) {
	return s.store.GetByID(ctx, id)
}

// Create validates and persists a new record, filling in the
// server-assigned fields.
func (s *ResourceService[T, PT]) Create(ctx context.Context, rec PT) error {
	if err := validate(rec); err != nil {
		return err
	}
	return s.store.Create(ctx, rec)
}

// Update replaces the business fields of the record with the given id.
func (s *ResourceService[T, PT]) Update(ctx context.Context, id int64, rec PT) error {
	rec.Meta().ID = id
	if err := validate(rec); err != nil {
		return err
	}
	return s.store.Update(ctx, rec)
}

// Delete removes a record and returns it.
func (s *ResourceService[T, PT]) Delete(ctx context.Context, id int64) (PT, error) {
	return s.store.Delete(ctx, id)
}

// validate runs the record's cross-field rules when it declares any.
func validate(rec any) error {
	if v, ok := rec.(models.Validator); ok {
		return v.Validate()
	}
	return nil
}
