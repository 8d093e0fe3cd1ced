package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInProcessEventBus_DispatchesToMatchingHandlers(t *testing.T) {
	bus := NewInProcessEventBus(nil)

	var habitEvents, allEvents []string
	bus.Subscribe("habits.", func(ctx context.Context, key string, payload []byte) error {
		habitEvents = append(habitEvents, key)
		return nil
	})
	bus.Subscribe("", func(ctx context.Context, key string, payload []byte) error {
		allEvents = append(allEvents, key)
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), "habits.habit.created", []byte(`{}`)))
	require.NoError(t, bus.Publish(context.Background(), "planning.plan.changed", []byte(`{}`)))

	assert.Equal(t, []string{"habits.habit.created"}, habitEvents)
	assert.Equal(t, []string{"habits.habit.created", "planning.plan.changed"}, allEvents)
}

func TestInProcessEventBus_HandlerErrorDoesNotFailPublish(t *testing.T) {
	bus := NewInProcessEventBus(nil)

	bus.Subscribe("", func(ctx context.Context, key string, payload []byte) error {
		return errors.New("consumer broke")
	})

	assert.NoError(t, bus.Publish(context.Background(), "habits.habit.created", []byte(`{}`)))
}

func TestInProcessEventBus_NoHandlers(t *testing.T) {
	bus := NewInProcessEventBus(nil)
	assert.NoError(t, bus.Publish(context.Background(), "anything", nil))
	assert.NoError(t, bus.Close())
}
