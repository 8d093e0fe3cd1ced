package domain

import (
	"github.com/google/uuid"

	sharedDomain "github.com/reluam/pokrok.app-sub004/internal/shared/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

const aggregateType = "Automation"

// AutomationCreated is emitted when an automation is created.
type AutomationCreated struct {
	sharedDomain.BaseEvent
	AutomationID uuid.UUID `json:"automation_id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	RuleKind     string    `json:"rule_kind"`
	TargetValue  float64   `json:"target_value"`
	UpdateValue  float64   `json:"update_value"`
}

// NewAutomationCreated creates an AutomationCreated event.
func NewAutomationCreated(a *Automation) *AutomationCreated {
	return &AutomationCreated{
		BaseEvent:    sharedDomain.NewBaseEvent(a.ID(), aggregateType, "automations.automation.created"),
		AutomationID: a.ID(),
		UserID:       a.UserID(),
		Name:         a.Name(),
		RuleKind:     string(a.Rule().Kind()),
		TargetValue:  a.TargetValue(),
		UpdateValue:  a.UpdateValue(),
	}
}

// AccrualApplied is emitted when an accrual lands on the running value.
type AccrualApplied struct {
	sharedDomain.BaseEvent
	AutomationID uuid.UUID `json:"automation_id"`
	UserID       uuid.UUID `json:"user_id"`
	Day          string    `json:"day"`
	CurrentValue float64   `json:"current_value"`
	Overshoot    float64   `json:"overshoot"`
}

// NewAccrualApplied creates an AccrualApplied event.
func NewAccrualApplied(a *Automation, day dates.Day, overshoot float64) *AccrualApplied {
	return &AccrualApplied{
		BaseEvent:    sharedDomain.NewBaseEvent(a.ID(), aggregateType, "automations.automation.accrual_applied"),
		AutomationID: a.ID(),
		UserID:       a.UserID(),
		Day:          day.String(),
		CurrentValue: a.CurrentValue(),
		Overshoot:    overshoot,
	}
}
