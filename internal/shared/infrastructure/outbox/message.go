// Package outbox implements the transactional outbox: domain events are
// stored in the same transaction as the aggregate change and published
// asynchronously by the processor.
package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/shared/domain"
)

// Message represents an outbox message ready for publishing.
type Message struct {
	ID            int64
	EventID       uuid.UUID
	AggregateType string
	AggregateID   uuid.UUID
	EventType     string
	RoutingKey    string
	Payload       json.RawMessage
	Metadata      json.RawMessage
	CreatedAt     time.Time
	PublishedAt   *time.Time
	RetryCount    int
	LastError     *string
}

// NewMessage creates an outbox message from a domain event.
func NewMessage(event domain.DomainEvent) (*Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	metadata, err := json.Marshal(event.Metadata())
	if err != nil {
		return nil, err
	}

	return &Message{
		EventID:       event.EventID(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		EventType:     event.RoutingKey(),
		RoutingKey:    event.RoutingKey(),
		Payload:       payload,
		Metadata:      metadata,
		CreatedAt:     event.OccurredAt(),
	}, nil
}

// IsPublished returns true if the message has been published.
func (m *Message) IsPublished() bool {
	return m.PublishedAt != nil
}

// CanRetry returns true if the message can be retried.
func (m *Message) CanRetry(maxRetries int) bool {
	return m.RetryCount < maxRetries
}

// StageEvents converts an aggregate's uncommitted events to outbox messages
// and saves them through the repository, clearing the aggregate afterwards.
func StageEvents(ctx context.Context, repo Repository, aggregate domain.AggregateRoot, metadata domain.EventMetadata) error {
	events := aggregate.DomainEvents()
	if len(events) == 0 {
		return nil
	}

	msgs := make([]*Message, 0, len(events))
	for _, event := range events {
		if setter, ok := event.(interface {
			SetMetadata(domain.EventMetadata)
		}); ok {
			setter.SetMetadata(metadata)
		}
		msg, err := NewMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := repo.SaveBatch(ctx, msgs); err != nil {
		return err
	}

	aggregate.ClearDomainEvents()
	return nil
}
