package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/recurrence"
	sharedDomain "github.com/reluam/pokrok.app-sub004/internal/shared/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

var (
	ErrAutomationEmptyName = errors.New("automation name cannot be empty")
	ErrAutomationBadRule   = errors.New("automation rule must be daily, weekly, monthly, or none")
	ErrAutomationInactive  = errors.New("automation is inactive")
	ErrAutomationZeroStep  = errors.New("automation update value cannot be zero")
)

// schedule drives due-day checks. Custom and always kinds are not part of
// the automation contract; validation keeps them out.
var schedule = recurrence.NewEvaluator(nil)

// allowedRuleKind restricts automations to the schedulable subset.
func allowedRuleKind(kind recurrence.Kind) bool {
	switch kind {
	case recurrence.KindDaily, recurrence.KindWeekly, recurrence.KindMonthly, recurrence.KindNone:
		return true
	}
	return false
}

// Automation is a periodic numeric accrual: each due day it adds its update
// value to a running current/target pair, e.g. a recurring savings
// contribution. The current value only ever moves through ApplyAccrual.
type Automation struct {
	sharedDomain.BaseAggregateRoot
	userID         uuid.UUID
	name           string
	targetValue    float64
	currentValue   float64
	updateValue    float64
	rule           recurrence.Rule
	active         bool
	lastAppliedDay dates.Day // zero until the first accrual
}

// NewAutomation creates an active automation.
func NewAutomation(userID uuid.UUID, name string, target, update float64, rule recurrence.Rule) (*Automation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrAutomationEmptyName
	}
	if update == 0 {
		return nil, ErrAutomationZeroStep
	}
	if !allowedRuleKind(rule.Kind()) {
		return nil, ErrAutomationBadRule
	}

	automation := &Automation{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		name:              name,
		targetValue:       target,
		updateValue:       update,
		rule:              rule,
		active:            true,
	}

	automation.AddDomainEvent(NewAutomationCreated(automation))

	return automation, nil
}

// Getters
func (a *Automation) UserID() uuid.UUID         { return a.userID }
func (a *Automation) Name() string              { return a.name }
func (a *Automation) TargetValue() float64      { return a.targetValue }
func (a *Automation) CurrentValue() float64     { return a.currentValue }
func (a *Automation) UpdateValue() float64      { return a.updateValue }
func (a *Automation) Rule() recurrence.Rule     { return a.rule }
func (a *Automation) IsActive() bool            { return a.active }
func (a *Automation) LastAppliedDay() dates.Day { return a.lastAppliedDay }

// HasSchedule reports whether the automation has a recurrence at all.
func (a *Automation) HasSchedule() bool { return a.rule.Kind() != recurrence.KindNone }

// IsFilled reports whether the current value has reached the target. A
// non-positive target never fills.
func (a *Automation) IsFilled() bool {
	return a.targetValue > 0 && a.currentValue >= a.targetValue
}

// ProgressRatio is current/target clamped to [0,1]; a non-positive target
// counts as zero.
func (a *Automation) ProgressRatio() float64 {
	if a.targetValue <= 0 {
		return 0
	}
	r := a.currentValue / a.targetValue
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// IsAccrualDue reports whether an accrual should run on the given day.
// Inactive automations are never due; a day that already received its
// accrual is not due again. A filled automation stops accruing, so the
// current value never exceeds the target by more than one update.
func (a *Automation) IsAccrualDue(day dates.Day) bool {
	if !a.active {
		return false
	}
	if a.rule.Kind() == recurrence.KindNone {
		return false
	}
	if a.IsFilled() {
		return false
	}
	if !a.lastAppliedDay.IsZero() && !a.lastAppliedDay.Before(day) {
		return false
	}
	return schedule.IsDue(a.ID(), a.rule, false, day)
}

// ApplyAccrual adds the update value to the current value and returns how
// far the result overshoots the target. Overshoot is reported, never
// truncated away.
func (a *Automation) ApplyAccrual(day dates.Day) (overshoot float64, err error) {
	if !a.active {
		return 0, ErrAutomationInactive
	}

	a.currentValue += a.updateValue
	a.lastAppliedDay = day
	a.Touch()

	if a.currentValue > a.targetValue {
		overshoot = a.currentValue - a.targetValue
	}

	a.AddDomainEvent(NewAccrualApplied(a, day, overshoot))

	return overshoot, nil
}

// SetCurrentValue overrides the running value, e.g. after an external
// correction.
func (a *Automation) SetCurrentValue(value float64) {
	a.currentValue = value
	a.Touch()
}

// SetRule replaces the schedule.
func (a *Automation) SetRule(rule recurrence.Rule) error {
	if !allowedRuleKind(rule.Kind()) {
		return ErrAutomationBadRule
	}
	a.rule = rule
	a.Touch()
	return nil
}

// Activate resumes accruals.
func (a *Automation) Activate() {
	if !a.active {
		a.active = true
		a.Touch()
	}
}

// Deactivate pauses accruals. The current value is untouched.
func (a *Automation) Deactivate() {
	if a.active {
		a.active = false
		a.Touch()
	}
}

// RehydrateAutomation recreates an automation from persisted state without
// generating events.
func RehydrateAutomation(
	id uuid.UUID,
	userID uuid.UUID,
	name string,
	target, current, update float64,
	rule recurrence.Rule,
	active bool,
	lastAppliedDay dates.Day,
	createdAt time.Time,
	updatedAt time.Time,
) *Automation {
	return &Automation{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:         userID,
		name:           name,
		targetValue:    target,
		currentValue:   current,
		updateValue:    update,
		rule:           rule,
		active:         active,
		lastAppliedDay: lastAppliedDay,
	}
}
