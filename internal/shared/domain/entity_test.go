package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEntity(t *testing.T) {
	e := NewBaseEntity()

	assert.NotEqual(t, uuid.Nil, e.ID())
	assert.False(t, e.CreatedAt().IsZero())
	assert.Equal(t, e.CreatedAt(), e.UpdatedAt())
}

func TestBaseEntity_Touch(t *testing.T) {
	e := NewBaseEntity()
	created := e.CreatedAt()

	time.Sleep(time.Millisecond)
	e.Touch()

	assert.Equal(t, created, e.CreatedAt())
	assert.True(t, e.UpdatedAt().After(created))
}

func TestBaseEntity_Equals(t *testing.T) {
	id := uuid.New()
	a := NewBaseEntityWithID(id)
	b := NewBaseEntityWithID(id)
	c := NewBaseEntity()

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}

func TestRehydrateBaseEntity(t *testing.T) {
	id := uuid.New()
	created := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2025, time.February, 1, 10, 0, 0, 0, time.UTC)

	e := RehydrateBaseEntity(id, created, updated)

	assert.Equal(t, id, e.ID())
	assert.Equal(t, created, e.CreatedAt())
	assert.Equal(t, updated, e.UpdatedAt())
}

type testEvent struct {
	BaseEvent
}

func TestBaseAggregateRoot_Events(t *testing.T) {
	a := NewBaseAggregateRoot()
	require.Empty(t, a.DomainEvents())

	a.AddDomainEvent(&testEvent{BaseEvent: NewBaseEvent(a.ID(), "Test", "test.created")})
	a.AddDomainEvent(&testEvent{BaseEvent: NewBaseEvent(a.ID(), "Test", "test.updated")})
	require.Len(t, a.DomainEvents(), 2)

	a.ClearDomainEvents()
	assert.Empty(t, a.DomainEvents())
}

func TestBaseEvent_Metadata(t *testing.T) {
	e := NewBaseEvent(uuid.New(), "Test", "test.created")
	assert.Equal(t, "Test", e.AggregateType())
	assert.Equal(t, "test.created", e.RoutingKey())
	assert.NotEqual(t, uuid.Nil, e.EventID())

	meta := EventMetadata{CorrelationID: uuid.New(), UserID: uuid.New()}
	e.SetMetadata(meta)
	assert.Equal(t, meta, e.Metadata())
}
