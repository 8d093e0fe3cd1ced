package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/reluam/pokrok.app-sub004/internal/insights/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// DefaultTTL bounds staleness; balances change with every completion, so
// entries are short-lived anyway.
const DefaultTTL = 5 * time.Minute

// RedisBalanceCache caches computed aspiration balances in Redis. All calls
// run through a circuit breaker so a Redis outage degrades to cache misses
// instead of stalling every insights query.
type RedisBalanceCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	ttl     time.Duration
	logger  *slog.Logger
}

// NewRedisBalanceCache creates a cache around an existing Redis client.
func NewRedisBalanceCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisBalanceCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "insights-balance-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("cache breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	return &RedisBalanceCache{
		client:  client,
		breaker: breaker,
		ttl:     ttl,
		logger:  logger,
	}
}

// Get returns the cached balance set, or no hit on miss, error, or open
// breaker.
func (c *RedisBalanceCache) Get(ctx context.Context, userID uuid.UUID, day dates.Day) ([]domain.AspirationBalance, bool) {
	payload, err := c.breaker.Execute(func() ([]byte, error) {
		return c.client.Get(ctx, c.key(userID, day)).Bytes()
	})
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Debug("balance cache get failed", slog.String("error", err.Error()))
		return nil, false
	}

	var balances []domain.AspirationBalance
	if err := json.Unmarshal(payload, &balances); err != nil {
		c.logger.Warn("balance cache entry corrupt", slog.String("error", err.Error()))
		return nil, false
	}
	return balances, true
}

// Put stores the balance set with the cache TTL. Failures are logged, never
// surfaced; the cache is an optimization.
func (c *RedisBalanceCache) Put(ctx context.Context, userID uuid.UUID, day dates.Day, balances []domain.AspirationBalance) {
	payload, err := json.Marshal(balances)
	if err != nil {
		c.logger.Warn("balance cache marshal failed", slog.String("error", err.Error()))
		return
	}

	_, err = c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, c.key(userID, day), payload, c.ttl).Err()
	})
	if err != nil {
		c.logger.Debug("balance cache put failed", slog.String("error", err.Error()))
	}
}

// Invalidate drops the cached set for a user and day.
func (c *RedisBalanceCache) Invalidate(ctx context.Context, userID uuid.UUID, day dates.Day) {
	_, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Del(ctx, c.key(userID, day)).Err()
	})
	if err != nil {
		c.logger.Debug("balance cache invalidate failed", slog.String("error", err.Error()))
	}
}

func (c *RedisBalanceCache) key(userID uuid.UUID, day dates.Day) string {
	return fmt.Sprintf("pokrok:balance:%s:%s", userID, day)
}
