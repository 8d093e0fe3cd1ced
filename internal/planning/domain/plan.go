package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/reluam/pokrok.app-sub004/internal/shared/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

var (
	ErrPlanReadOnly    = errors.New("plans for past days are read-only")
	ErrPlanUnknownItem = errors.New("item is not part of the plan")
	ErrPlanBadReorder  = errors.New("reorder must list every planned item exactly once")
	ErrPlanMissingDay  = errors.New("plan day is required")
)

// DailyPlan is the ordered set of item ids a user committed to for one
// calendar day. Items are habit or step ids; the plan does not know which.
// Completing an item does not remove it, so finished work stays visible.
type DailyPlan struct {
	sharedDomain.BaseAggregateRoot
	userID uuid.UUID
	day    dates.Day
	items  []uuid.UUID
}

// NewDailyPlan creates an empty plan for a user and day.
func NewDailyPlan(userID uuid.UUID, day dates.Day) (*DailyPlan, error) {
	if day.IsZero() {
		return nil, ErrPlanMissingDay
	}
	plan := &DailyPlan{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		day:               day,
	}
	plan.AddDomainEvent(NewPlanCreated(plan))
	return plan, nil
}

// Getters
func (p *DailyPlan) UserID() uuid.UUID { return p.userID }
func (p *DailyPlan) Day() dates.Day    { return p.day }

// Items returns the planned item ids in order.
func (p *DailyPlan) Items() []uuid.UUID {
	items := make([]uuid.UUID, len(p.items))
	copy(items, p.items)
	return items
}

// Contains reports whether an item is planned.
func (p *DailyPlan) Contains(itemID uuid.UUID) bool {
	for _, id := range p.items {
		if id == itemID {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the plan has no items. Empty plans persist; an
// emptied plan is not deleted.
func (p *DailyPlan) IsEmpty() bool { return len(p.items) == 0 }

// IsReadOnlyOn reports whether the plan is frozen as of the given day.
// Plans for days before today cannot be changed.
func (p *DailyPlan) IsReadOnlyOn(today dates.Day) bool {
	return p.day.Before(today)
}

// Add appends an item to the plan. Adding an item that is already planned
// is a no-op, not an error.
func (p *DailyPlan) Add(itemID uuid.UUID, today dates.Day) error {
	if p.IsReadOnlyOn(today) {
		return ErrPlanReadOnly
	}
	if p.Contains(itemID) {
		return nil
	}
	p.items = append(p.items, itemID)
	p.Touch()
	p.AddDomainEvent(NewPlanItemAdded(p, itemID))
	return nil
}

// Remove takes an item out of the plan. Removing an absent item is a
// no-op, not an error.
func (p *DailyPlan) Remove(itemID uuid.UUID, today dates.Day) error {
	if p.IsReadOnlyOn(today) {
		return ErrPlanReadOnly
	}
	for i, id := range p.items {
		if id == itemID {
			p.items = append(p.items[:i], p.items[i+1:]...)
			p.Touch()
			p.AddDomainEvent(NewPlanItemRemoved(p, itemID))
			return nil
		}
	}
	return nil
}

// Reorder replaces the item order. The new order must contain exactly the
// currently planned ids.
func (p *DailyPlan) Reorder(order []uuid.UUID, today dates.Day) error {
	if p.IsReadOnlyOn(today) {
		return ErrPlanReadOnly
	}
	if len(order) != len(p.items) {
		return ErrPlanBadReorder
	}

	seen := make(map[uuid.UUID]bool, len(order))
	for _, id := range order {
		if seen[id] {
			return ErrPlanBadReorder
		}
		if !p.Contains(id) {
			return ErrPlanUnknownItem
		}
		seen[id] = true
	}

	p.items = make([]uuid.UUID, len(order))
	copy(p.items, order)
	p.Touch()
	p.AddDomainEvent(NewPlanReordered(p))
	return nil
}

// MoveToPosition moves an item to a zero-based position, shifting the rest.
func (p *DailyPlan) MoveToPosition(itemID uuid.UUID, position int, today dates.Day) error {
	if p.IsReadOnlyOn(today) {
		return ErrPlanReadOnly
	}
	if !p.Contains(itemID) {
		return ErrPlanUnknownItem
	}
	if position < 0 {
		position = 0
	}
	if position >= len(p.items) {
		position = len(p.items) - 1
	}

	items := make([]uuid.UUID, 0, len(p.items))
	for _, id := range p.items {
		if id != itemID {
			items = append(items, id)
		}
	}
	items = append(items[:position], append([]uuid.UUID{itemID}, items[position:]...)...)

	p.items = items
	p.Touch()
	p.AddDomainEvent(NewPlanReordered(p))
	return nil
}

// RehydrateDailyPlan recreates a plan from persisted state without events.
func RehydrateDailyPlan(
	id uuid.UUID,
	userID uuid.UUID,
	day dates.Day,
	items []uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) *DailyPlan {
	return &DailyPlan{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID: userID,
		day:    day,
		items:  items,
	}
}
