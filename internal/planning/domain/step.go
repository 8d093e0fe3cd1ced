package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/reluam/pokrok.app-sub004/internal/shared/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

var (
	ErrStepEmptyTitle    = errors.New("step title cannot be empty")
	ErrStepAlreadyDone   = errors.New("step is already completed")
	ErrStepNotDone       = errors.New("step is not completed")
	ErrStepDoneImmutable = errors.New("completed step cannot be rescheduled")
)

// DefaultStepXP is awarded when no explicit value is configured.
const DefaultStepXP = 10

// DailyStep is a one-off piece of work scheduled for a calendar day.
// Steps optionally contribute to a goal's progress.
type DailyStep struct {
	sharedDomain.BaseAggregateRoot
	userID      uuid.UUID
	goalID      uuid.UUID // uuid.Nil for standalone steps
	title       string
	day         dates.Day
	completed   bool
	completedAt *time.Time
	important   bool
	urgent      bool
	xp          int
}

// NewDailyStep creates a step scheduled for the given day.
func NewDailyStep(userID uuid.UUID, title string, day dates.Day, goalID uuid.UUID) (*DailyStep, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrStepEmptyTitle
	}
	if day.IsZero() {
		return nil, dates.ErrInvalidDate
	}

	step := &DailyStep{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		goalID:            goalID,
		title:             title,
		day:               day,
		xp:                DefaultStepXP,
	}

	step.AddDomainEvent(NewStepCreated(step))

	return step, nil
}

// Getters
func (s *DailyStep) UserID() uuid.UUID       { return s.userID }
func (s *DailyStep) GoalID() uuid.UUID       { return s.goalID }
func (s *DailyStep) Title() string           { return s.title }
func (s *DailyStep) Day() dates.Day          { return s.day }
func (s *DailyStep) IsCompleted() bool       { return s.completed }
func (s *DailyStep) CompletedAt() *time.Time { return s.completedAt }
func (s *DailyStep) IsImportant() bool       { return s.important }
func (s *DailyStep) IsUrgent() bool          { return s.urgent }
func (s *DailyStep) XP() int                 { return s.xp }

// Priority scores the Eisenhower flags: importance weighs double.
func (s *DailyStep) Priority() int {
	p := 0
	if s.important {
		p += 2
	}
	if s.urgent {
		p++
	}
	return p
}

// IsOverdueOn reports whether the step is unfinished and scheduled before
// the given day.
func (s *DailyStep) IsOverdueOn(today dates.Day) bool {
	return !s.completed && s.day.Before(today)
}

// OverdueDays returns how many days the step is past its scheduled day.
// Zero for completed or not-yet-due steps.
func (s *DailyStep) OverdueDays(today dates.Day) int {
	if !s.IsOverdueOn(today) {
		return 0
	}
	return dates.DaysBetween(s.day, today)
}

// SetTitle updates the step title.
func (s *DailyStep) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrStepEmptyTitle
	}
	s.title = title
	s.Touch()
	return nil
}

// SetFlags updates the Eisenhower flags.
func (s *DailyStep) SetFlags(important, urgent bool) {
	s.important = important
	s.urgent = urgent
	s.Touch()
}

// SetXP updates the xp awarded on completion.
func (s *DailyStep) SetXP(xp int) {
	if xp > 0 {
		s.xp = xp
		s.Touch()
	}
}

// Complete marks the step done at the given time.
func (s *DailyStep) Complete(at time.Time) error {
	if s.completed {
		return ErrStepAlreadyDone
	}
	s.completed = true
	s.completedAt = &at
	s.Touch()
	s.AddDomainEvent(NewStepCompleted(s))
	return nil
}

// Uncomplete reverts a completion.
func (s *DailyStep) Uncomplete() error {
	if !s.completed {
		return ErrStepNotDone
	}
	s.completed = false
	s.completedAt = nil
	s.Touch()
	s.AddDomainEvent(NewStepCompletionRevoked(s))
	return nil
}

// Reschedule moves an unfinished step to another day.
func (s *DailyStep) Reschedule(newDay dates.Day) error {
	if s.completed {
		return ErrStepDoneImmutable
	}
	if newDay.IsZero() {
		return dates.ErrInvalidDate
	}
	if s.day.Equal(newDay) {
		return nil
	}
	from := s.day
	s.day = newDay
	s.Touch()
	s.AddDomainEvent(NewStepRescheduled(s, from))
	return nil
}

// RehydrateDailyStep recreates a step from persisted state without events.
func RehydrateDailyStep(
	id uuid.UUID,
	userID uuid.UUID,
	goalID uuid.UUID,
	title string,
	day dates.Day,
	completed bool,
	completedAt *time.Time,
	important bool,
	urgent bool,
	xp int,
	createdAt time.Time,
	updatedAt time.Time,
) *DailyStep {
	return &DailyStep{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:      userID,
		goalID:      goalID,
		title:       title,
		day:         day,
		completed:   completed,
		completedAt: completedAt,
		important:   important,
		urgent:      urgent,
		xp:          xp,
	}
}
