package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/automations/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// AutomationDTO is the read model for an automation.
type AutomationDTO struct {
	ID             uuid.UUID
	Name           string
	TargetValue    float64
	CurrentValue   float64
	UpdateValue    float64
	RuleKind       string
	Active         bool
	Due            bool
	ProgressRatio  float64
	LastAppliedDay string
}

// ListAutomationsQuery fetches automations for a user.
type ListAutomationsQuery struct {
	UserID     uuid.UUID
	Day        dates.Day // due flags are computed for this day
	OnlyDue    bool
	ActiveOnly bool
}

// ListAutomationsHandler handles the ListAutomationsQuery.
type ListAutomationsHandler struct {
	automationRepo domain.Repository
}

// NewListAutomationsHandler creates a new ListAutomationsHandler.
func NewListAutomationsHandler(automationRepo domain.Repository) *ListAutomationsHandler {
	return &ListAutomationsHandler{automationRepo: automationRepo}
}

// Handle executes the ListAutomationsQuery.
func (h *ListAutomationsHandler) Handle(ctx context.Context, query ListAutomationsQuery) ([]AutomationDTO, error) {
	day := query.Day
	if day.IsZero() {
		day = dates.Today()
	}

	automations, err := h.automationRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	dtos := make([]AutomationDTO, 0, len(automations))
	for _, a := range automations {
		if query.ActiveOnly && !a.IsActive() {
			continue
		}
		due := a.IsAccrualDue(day)
		if query.OnlyDue && !due {
			continue
		}

		var lastApplied string
		if !a.LastAppliedDay().IsZero() {
			lastApplied = a.LastAppliedDay().String()
		}

		dtos = append(dtos, AutomationDTO{
			ID:             a.ID(),
			Name:           a.Name(),
			TargetValue:    a.TargetValue(),
			CurrentValue:   a.CurrentValue(),
			UpdateValue:    a.UpdateValue(),
			RuleKind:       string(a.Rule().Kind()),
			Active:         a.IsActive(),
			Due:            due,
			ProgressRatio:  a.ProgressRatio(),
			LastAppliedDay: lastApplied,
		})
	}
	return dtos, nil
}
