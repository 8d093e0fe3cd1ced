package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reluam/pokrok.app-sub004/internal/shared/domain"
)

type memRepo struct {
	mu   sync.Mutex
	msgs []*Message
}

func (r *memRepo) Save(ctx context.Context, msg *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg.ID = int64(len(r.msgs) + 1)
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *memRepo) SaveBatch(ctx context.Context, msgs []*Message) error {
	for _, m := range msgs {
		if err := r.Save(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *memRepo) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Message
	for _, m := range r.msgs {
		if !m.IsPublished() && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memRepo) MarkPublished(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m.ID == id {
			now := m.CreatedAt
			m.PublishedAt = &now
		}
	}
	return nil
}

func (r *memRepo) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m.ID == id {
			m.RetryCount++
			m.LastError = &errMsg
		}
	}
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []string
	fail      bool
}

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.published = append(p.published, routingKey)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type stubEvent struct {
	domain.BaseEvent
	Name string `json:"name"`
}

func newStubMessage(t *testing.T, routingKey string) *Message {
	t.Helper()
	event := &stubEvent{
		BaseEvent: domain.NewBaseEvent(uuid.New(), "Stub", routingKey),
		Name:      "stub",
	}
	msg, err := NewMessage(event)
	require.NoError(t, err)
	return msg
}

func TestProcessor_PublishesAndMarks(t *testing.T) {
	repo := &memRepo{}
	pub := &fakePublisher{}
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newStubMessage(t, "habits.habit.created")))
	require.NoError(t, repo.Save(ctx, newStubMessage(t, "planning.plan.changed")))

	p := NewProcessor(repo, pub, DefaultProcessorConfig(), nil)
	require.NoError(t, p.ProcessBatch(ctx))

	assert.Equal(t, []string{"habits.habit.created", "planning.plan.changed"}, pub.published)

	remaining, err := repo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestProcessor_RecordsFailures(t *testing.T) {
	repo := &memRepo{}
	pub := &fakePublisher{fail: true}
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newStubMessage(t, "habits.habit.created")))

	p := NewProcessor(repo, pub, DefaultProcessorConfig(), nil)
	require.NoError(t, p.ProcessBatch(ctx))

	remaining, err := repo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, 1, remaining[0].RetryCount)
	require.NotNil(t, remaining[0].LastError)
	assert.Equal(t, "broker down", *remaining[0].LastError)
}

func TestProcessor_SkipsExhaustedMessages(t *testing.T) {
	repo := &memRepo{}
	pub := &fakePublisher{}
	ctx := context.Background()

	msg := newStubMessage(t, "habits.habit.created")
	require.NoError(t, repo.Save(ctx, msg))
	msg.RetryCount = 5

	cfg := DefaultProcessorConfig()
	p := NewProcessor(repo, pub, cfg, nil)
	require.NoError(t, p.ProcessBatch(ctx))

	assert.Empty(t, pub.published)
}

func TestStageEvents_SavesAndClears(t *testing.T) {
	repo := &memRepo{}

	type stubAggregate struct {
		domain.BaseAggregateRoot
	}
	agg := &stubAggregate{BaseAggregateRoot: domain.NewBaseAggregateRoot()}
	agg.AddDomainEvent(&stubEvent{BaseEvent: domain.NewBaseEvent(agg.ID(), "Stub", "stub.created")})

	meta := domain.EventMetadata{CorrelationID: uuid.New(), UserID: uuid.New()}
	require.NoError(t, StageEvents(context.Background(), repo, agg, meta))

	assert.Empty(t, agg.DomainEvents())
	require.Len(t, repo.msgs, 1)
	assert.Equal(t, "stub.created", repo.msgs[0].RoutingKey)
}
