package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service implements slug/id-addressed CRUD for one resource type. All
// authorization-gated handlers share this one implementation instead of
// repeating the check/insert/update sequence per type.
//
// The slug uniqueness pre-check and the following insert are two separate
// round trips; concurrent creates with the same slug race past the check and
// are caught by the unique index, which surfaces here as the same conflict.
type Service[T any] struct {
	db   *gorm.DB
	desc Descriptor[T]
}

// NewService constructs a Service over an initialized store handle.
func NewService[T any](db *gorm.DB, desc Descriptor[T]) *Service[T] {
	return &Service[T]{db: db, desc: desc}
}

// Descriptor exposes the resource descriptor for handler wiring.
func (s *Service[T]) Descriptor() Descriptor[T] {
	return s.desc
}

// List returns all records ordered by creation time ascending so listings are
// stable without pagination.
func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	var records []T
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&records).Error; err != nil {
		return nil, Internal(err)
	}
	return records, nil
}

// GetBySlug loads a single record by its public slug.
func (s *Service[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	var rec T
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound(s.desc.Name)
		}
		return nil, Internal(err)
	}
	return &rec, nil
}

// GetByID loads a single record by its opaque id.
func (s *Service[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var rec T
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound(s.desc.Name)
		}
		return nil, Internal(err)
	}
	return &rec, nil
}

// Create validates required fields, enforces slug uniqueness, and persists
// the record with a fresh id.
func (s *Service[T]) Create(ctx context.Context, rec *T) error {
	if field := s.desc.firstMissing(rec); field != "" {
		return MissingField(field)
	}

	if s.desc.SlugAddressed() {
		taken, err := s.slugTaken(ctx, s.desc.Slug(rec), uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return SlugConflict(s.desc.Name)
		}
	}

	if s.desc.Normalize != nil {
		s.desc.Normalize(rec)
	}

	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return SlugConflict(s.desc.Name)
		}
		return Internal(err)
	}
	return nil
}

// UpdateBySlug merges the provided non-zero fields into the record addressed
// by slug. A slug change re-checks uniqueness against all other records.
func (s *Service[T]) UpdateBySlug(ctx context.Context, slug string, patch *T) (*T, error) {
	var existing T
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound(s.desc.Name)
		}
		return nil, Internal(err)
	}
	return s.applyUpdate(ctx, &existing, patch)
}

// UpdateByID is the id-addressed variant used by types without slugs.
func (s *Service[T]) UpdateByID(ctx context.Context, id uuid.UUID, patch *T) (*T, error) {
	var existing T
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound(s.desc.Name)
		}
		return nil, Internal(err)
	}
	return s.applyUpdate(ctx, &existing, patch)
}

func (s *Service[T]) applyUpdate(ctx context.Context, existing, patch *T) (*T, error) {
	id := recordID(existing)

	if s.desc.SlugAddressed() {
		newSlug := s.desc.Slug(patch)
		if newSlug != "" && newSlug != s.desc.Slug(existing) {
			taken, err := s.slugTaken(ctx, newSlug, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, SlugConflict(s.desc.Name)
			}
		}
	}

	if s.desc.Normalize != nil {
		s.desc.Normalize(patch)
	}

	if err := s.db.WithContext(ctx).Model(existing).Omit("id", "created_at").Updates(patch).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, SlugConflict(s.desc.Name)
		}
		return nil, Internal(err)
	}

	var updated T
	if err := s.db.WithContext(ctx).First(&updated, "id = ?", id).Error; err != nil {
		return nil, Internal(err)
	}
	return &updated, nil
}

// DeleteBySlug permanently removes the record addressed by slug.
func (s *Service[T]) DeleteBySlug(ctx context.Context, slug string) error {
	rec, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(new(T), "id = ?", recordID(rec)).Error; err != nil {
		return Internal(err)
	}
	return nil
}

// DeleteByID permanently removes the record addressed by id.
func (s *Service[T]) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(new(T), "id = ?", id).Error; err != nil {
		return Internal(err)
	}
	return nil
}

// ToggleFlag flips a whitelisted boolean column to the negation of the value
// the caller last observed, in a single update.
func (s *Service[T]) ToggleFlag(ctx context.Context, id uuid.UUID, field string, current bool) (*T, error) {
	if !s.desc.allowsFlag(field) {
		return nil, Invalid("field cannot be toggled: " + field)
	}

	res := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Update(field, !current)
	if res.Error != nil {
		return nil, Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, NotFound(s.desc.Name)
	}

	return s.GetByID(ctx, id)
}

func (s *Service[T]) slugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	query := s.db.WithContext(ctx).Model(new(T)).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, Internal(err)
	}
	return count > 0, nil
}

func recordID[T any](rec *T) uuid.UUID {
	if r, ok := any(rec).(interface{ RecordID() uuid.UUID }); ok {
		return r.RecordID()
	}
	return uuid.Nil
}
