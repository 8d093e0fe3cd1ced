package queries

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/insights/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/config"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// Activity is everything linked to one aspiration, mapped into the balance
// snapshot types by whoever owns the source aggregates.
type Activity struct {
	Habits []domain.HabitActivity
	Steps  []domain.StepActivity
}

// ActivitySource gathers per-aspiration activity for a user as of a day.
type ActivitySource interface {
	ActivityByAspiration(ctx context.Context, userID uuid.UUID, day dates.Day, windowDays int) (map[uuid.UUID]Activity, error)
}

// BalanceCache is a read-through cache for computed balances. Lookups that
// miss or fail report no hit; the query then computes directly.
type BalanceCache interface {
	Get(ctx context.Context, userID uuid.UUID, day dates.Day) ([]domain.AspirationBalance, bool)
	Put(ctx context.Context, userID uuid.UUID, day dates.Day, balances []domain.AspirationBalance)
}

// AspirationBalanceQuery computes balances for every aspiration the user's
// goals and habits link to, or a single one when AspirationID is set.
type AspirationBalanceQuery struct {
	UserID       uuid.UUID
	AspirationID uuid.UUID
	Day          dates.Day
}

// AspirationBalanceHandler handles the AspirationBalanceQuery.
type AspirationBalanceHandler struct {
	source     ActivitySource
	cache      BalanceCache
	thresholds config.InsightThresholds
}

// NewAspirationBalanceHandler creates a new AspirationBalanceHandler.
// A nil cache disables caching.
func NewAspirationBalanceHandler(source ActivitySource, cache BalanceCache, thresholds config.InsightThresholds) *AspirationBalanceHandler {
	return &AspirationBalanceHandler{
		source:     source,
		cache:      cache,
		thresholds: thresholds,
	}
}

// Handle executes the AspirationBalanceQuery.
func (h *AspirationBalanceHandler) Handle(ctx context.Context, query AspirationBalanceQuery) ([]domain.AspirationBalance, error) {
	day := query.Day
	if day.IsZero() {
		day = dates.Today()
	}

	balances, ok := h.cached(ctx, query.UserID, day)
	if !ok {
		activity, err := h.source.ActivityByAspiration(ctx, query.UserID, day, h.thresholds.WindowDays)
		if err != nil {
			return nil, err
		}

		balances = make([]domain.AspirationBalance, 0, len(activity))
		for aspirationID, a := range activity {
			balances = append(balances,
				domain.ComputeBalance(aspirationID, a.Habits, a.Steps, day, h.thresholds))
		}
		sort.Slice(balances, func(i, j int) bool {
			return balances[i].AspirationID.String() < balances[j].AspirationID.String()
		})

		if h.cache != nil {
			h.cache.Put(ctx, query.UserID, day, balances)
		}
	}

	if query.AspirationID == uuid.Nil {
		return balances, nil
	}
	for _, b := range balances {
		if b.AspirationID == query.AspirationID {
			return []domain.AspirationBalance{b}, nil
		}
	}
	// An aspiration with nothing linked yet is empty, not missing.
	return []domain.AspirationBalance{{AspirationID: query.AspirationID, Empty: true, Trend: domain.TrendNeutral}}, nil
}

func (h *AspirationBalanceHandler) cached(ctx context.Context, userID uuid.UUID, day dates.Day) ([]domain.AspirationBalance, bool) {
	if h.cache == nil {
		return nil, false
	}
	return h.cache.Get(ctx, userID, day)
}

// Grouped buckets balances into easy and hard sets for display.
type Grouped struct {
	Easy []domain.AspirationBalance
	Hard []domain.AspirationBalance
}

// Group applies the threshold filters to a balance set.
func (h *AspirationBalanceHandler) Group(balances []domain.AspirationBalance) Grouped {
	return Grouped{
		Easy: domain.GroupEasy(balances, h.thresholds),
		Hard: domain.GroupHard(balances, h.thresholds),
	}
}
