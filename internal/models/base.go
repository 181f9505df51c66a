package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel provides the opaque id and timestamps shared by all tables. The
// id is assigned server-side and never changes once persisted.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordID returns the primary key, letting generic code read ids without
// knowing the concrete type.
func (b *BaseModel) RecordID() uuid.UUID {
	return b.ID
}

// BeforeCreate assigns a UUID to new records that don't carry one.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
