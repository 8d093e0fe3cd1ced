// Package domain holds the shared kernel: base types for entities,
// aggregates and domain events used by every bounded context.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity is anything with a stable identity and audit timestamps. Two
// entities are the same when their ids match, whatever their field values.
type Entity interface {
	ID() uuid.UUID
	CreatedAt() time.Time
	UpdatedAt() time.Time
	Equals(other Entity) bool
}

// BaseEntity carries the identity and timestamps every entity embeds.
type BaseEntity struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

// NewBaseEntity assigns a fresh id; both timestamps start at now (UTC).
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		id:        uuid.New(),
		createdAt: now,
		updatedAt: now,
	}
}

// NewBaseEntityWithID keeps a caller-chosen id, for natural or imported ids.
func NewBaseEntityWithID(id uuid.UUID) BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		id:        id,
		createdAt: now,
		updatedAt: now,
	}
}

// RehydrateBaseEntity rebuilds the embedded state from a persisted row,
// without touching timestamps.
func RehydrateBaseEntity(id uuid.UUID, createdAt, updatedAt time.Time) BaseEntity {
	return BaseEntity{
		id:        id,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (e BaseEntity) ID() uuid.UUID        { return e.id }
func (e BaseEntity) CreatedAt() time.Time { return e.createdAt }
func (e BaseEntity) UpdatedAt() time.Time { return e.updatedAt }

// Touch marks the entity as modified now.
func (e *BaseEntity) Touch() {
	e.updatedAt = time.Now().UTC()
}

// Equals compares by identity only.
func (e BaseEntity) Equals(other Entity) bool {
	if other == nil {
		return false
	}
	return e.id == other.ID()
}
