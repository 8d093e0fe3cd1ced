package eventbus

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// HandlerFunc consumes a published event payload.
type HandlerFunc func(ctx context.Context, routingKey string, payload []byte) error

// InProcessEventBus is an in-memory event bus for local mode (no RabbitMQ).
// Events are delivered synchronously to subscribed handlers.
type InProcessEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
	logger   *slog.Logger
}

// NewInProcessEventBus creates a new in-process event bus.
func NewInProcessEventBus(logger *slog.Logger) *InProcessEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessEventBus{
		handlers: make(map[string][]HandlerFunc),
		logger:   logger,
	}
}

// Subscribe registers a handler for a routing-key prefix. A pattern of
// "habits." matches every habit event; "" matches everything.
func (b *InProcessEventBus) Subscribe(pattern string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[pattern] = append(b.handlers[pattern], handler)
}

// Publish dispatches an event synchronously to all matching handlers.
// Handler errors are logged, not propagated; local mode must not lose the
// publish because one consumer misbehaved.
func (b *InProcessEventBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	b.mu.RLock()
	var matched []HandlerFunc
	for pattern, handlers := range b.handlers {
		if strings.HasPrefix(routingKey, pattern) {
			matched = append(matched, handlers...)
		}
	}
	b.mu.RUnlock()

	for _, handler := range matched {
		if err := handler(ctx, routingKey, payload); err != nil {
			b.logger.Error("event handler failed",
				"routing_key", routingKey,
				"error", err,
			)
		}
	}

	b.logger.Debug("event dispatched",
		"routing_key", routingKey,
		"handlers", len(matched),
	)

	return nil
}

// Close implements Publisher; nothing to release for the in-process bus.
func (b *InProcessEventBus) Close() error { return nil }
