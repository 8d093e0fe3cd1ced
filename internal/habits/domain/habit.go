package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/recurrence"
	sharedDomain "github.com/reluam/pokrok.app-sub004/internal/shared/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

var (
	ErrHabitEmptyName   = errors.New("habit name cannot be empty")
	ErrHabitArchived    = errors.New("habit is archived")
	ErrHabitAlreadyDone = errors.New("habit already completed for this day")
	ErrHabitNotDone     = errors.New("habit has no completion for this day")
	ErrHabitInvalidXP   = errors.New("xp per completion must be positive")
)

// DefaultXPPerCompletion is awarded when no explicit value is configured.
const DefaultXPPerCompletion = 10

// schedule drives due-day checks and streak walking inside the aggregate.
var schedule = recurrence.NewEvaluator(nil)

// Habit is a recurring activity the user wants to build. Completions are
// tracked per calendar day; a day can hold at most one completion.
type Habit struct {
	sharedDomain.BaseAggregateRoot
	userID          uuid.UUID
	aspirationID    uuid.UUID // uuid.Nil when the habit stands alone
	name            string
	description     string
	rule            recurrence.Rule
	alwaysShow      bool
	xpPerCompletion int
	streak          int
	bestStreak      int
	totalDone       int
	archived        bool
	completions     map[string]dates.Day // keyed by YYYY-MM-DD
}

// NewHabit creates a habit scheduled by the given recurrence rule.
func NewHabit(userID uuid.UUID, name string, rule recurrence.Rule, xpPerCompletion int) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrHabitEmptyName
	}
	if xpPerCompletion == 0 {
		xpPerCompletion = DefaultXPPerCompletion
	}
	if xpPerCompletion < 0 {
		return nil, ErrHabitInvalidXP
	}

	habit := &Habit{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		name:              name,
		rule:              rule,
		xpPerCompletion:   xpPerCompletion,
		completions:       make(map[string]dates.Day),
	}

	habit.AddDomainEvent(NewHabitCreated(habit))

	return habit, nil
}

// Getters
func (h *Habit) UserID() uuid.UUID       { return h.userID }
func (h *Habit) AspirationID() uuid.UUID { return h.aspirationID }
func (h *Habit) Name() string            { return h.name }
func (h *Habit) Description() string     { return h.description }
func (h *Habit) Rule() recurrence.Rule   { return h.rule }
func (h *Habit) AlwaysShow() bool        { return h.alwaysShow }
func (h *Habit) XPPerCompletion() int    { return h.xpPerCompletion }
func (h *Habit) Streak() int             { return h.streak }
func (h *Habit) BestStreak() int         { return h.bestStreak }
func (h *Habit) TotalDone() int          { return h.totalDone }
func (h *Habit) IsArchived() bool        { return h.archived }

// TotalXP is the xp earned over the habit's lifetime.
func (h *Habit) TotalXP() int { return h.totalDone * h.xpPerCompletion }

// CompletedDays returns every completion day in ascending order.
func (h *Habit) CompletedDays() []dates.Day {
	days := make([]dates.Day, 0, len(h.completions))
	for _, d := range h.completions {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// SetName updates the habit name.
func (h *Habit) SetName(name string) error {
	if h.archived {
		return ErrHabitArchived
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrHabitEmptyName
	}
	h.name = name
	h.Touch()
	return nil
}

// SetDescription updates the description.
func (h *Habit) SetDescription(desc string) error {
	if h.archived {
		return ErrHabitArchived
	}
	h.description = strings.TrimSpace(desc)
	h.Touch()
	return nil
}

// SetAlwaysShow toggles unconditional surfacing in daily candidates.
func (h *Habit) SetAlwaysShow(on bool) {
	h.alwaysShow = on
	h.Touch()
}

// SetXPPerCompletion updates the xp award for future completions.
func (h *Habit) SetXPPerCompletion(xp int) error {
	if xp <= 0 {
		return ErrHabitInvalidXP
	}
	h.xpPerCompletion = xp
	h.Touch()
	return nil
}

// AttachAspiration links the habit to an aspiration.
func (h *Habit) AttachAspiration(aspirationID uuid.UUID) {
	h.aspirationID = aspirationID
	h.Touch()
}

// DetachAspiration removes the aspiration link.
func (h *Habit) DetachAspiration() {
	h.aspirationID = uuid.Nil
	h.Touch()
}

// SetRule replaces the recurrence rule. Past completions keep their days.
func (h *Habit) SetRule(rule recurrence.Rule) error {
	if h.archived {
		return ErrHabitArchived
	}
	previous := h.rule
	h.rule = rule
	h.Touch()
	if previous.Kind() != rule.Kind() ||
		previous.Weekdays().String() != rule.Weekdays().String() ||
		previous.DayOfMonth() != rule.DayOfMonth() {
		h.AddDomainEvent(NewHabitRuleChanged(h))
	}
	return nil
}

// IsDueOn reports whether the habit is scheduled for a given day.
// Archived habits are never due.
func (h *Habit) IsDueOn(day dates.Day) bool {
	if h.archived {
		return false
	}
	return schedule.IsDue(h.ID(), h.rule, h.alwaysShow, day)
}

// IsCompletedOn reports whether the habit was completed on a given day.
func (h *Habit) IsCompletedOn(day dates.Day) bool {
	_, ok := h.completions[day.String()]
	return ok
}

// CompleteOn records a completion for a day. A day holds at most one
// completion; a second call for the same day fails.
func (h *Habit) CompleteOn(day dates.Day) error {
	if h.archived {
		return ErrHabitArchived
	}
	if h.IsCompletedOn(day) {
		return ErrHabitAlreadyDone
	}

	h.completions[day.String()] = day
	h.totalDone++
	h.recalcStreak(day)
	h.Touch()

	h.AddDomainEvent(NewHabitCompleted(h, day))

	return nil
}

// UncompleteOn removes a previously recorded completion.
func (h *Habit) UncompleteOn(day dates.Day) error {
	if h.archived {
		return ErrHabitArchived
	}
	if !h.IsCompletedOn(day) {
		return ErrHabitNotDone
	}

	delete(h.completions, day.String())
	h.totalDone--
	if latest, ok := h.latestCompletion(); ok {
		h.recalcStreak(latest)
	} else {
		h.streak = 0
	}
	h.Touch()

	h.AddDomainEvent(NewHabitCompletionRevoked(h, day))

	return nil
}

// Archive marks the habit as archived. Archived habits are never due and
// reject further mutation.
func (h *Habit) Archive() {
	if !h.archived {
		h.archived = true
		h.Touch()
		h.AddDomainEvent(NewHabitArchived(h))
	}
}

// Unarchive restores an archived habit.
func (h *Habit) Unarchive() {
	if h.archived {
		h.archived = false
		h.Touch()
	}
}

// CompletionRate returns the percentage of due days completed in the window
// of windowDays ending at upTo inclusive. Windows with no due days yield 0.
func (h *Habit) CompletionRate(upTo dates.Day, windowDays int) float64 {
	if windowDays <= 0 {
		return 0
	}

	dueCount := 0
	doneCount := 0
	day := upTo.AddDays(-windowDays + 1)
	for i := 0; i < windowDays; i++ {
		if schedule.IsDue(h.ID(), h.rule, h.alwaysShow, day) {
			dueCount++
			if h.IsCompletedOn(day) {
				doneCount++
			}
		}
		day = day.AddDays(1)
	}

	if dueCount == 0 {
		return 0
	}
	return float64(doneCount) / float64(dueCount) * 100
}

func (h *Habit) latestCompletion() (dates.Day, bool) {
	var latest dates.Day
	found := false
	for _, d := range h.completions {
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	return latest, found
}

// recalcStreak counts consecutive completed due days backwards from latest.
// Days the rule does not schedule are skipped rather than breaking the run.
func (h *Habit) recalcStreak(latest dates.Day) {
	streak := 0
	day := latest
	skipped := 0

	for h.IsCompletedOn(day) && streak < 365 {
		streak++
		day = day.AddDays(-1)
		for !schedule.IsDue(h.ID(), h.rule, h.alwaysShow, day) && !h.IsCompletedOn(day) && skipped < 365 {
			day = day.AddDays(-1)
			skipped++
		}
	}

	h.streak = streak
	if h.streak > h.bestStreak {
		h.bestStreak = h.streak
	}
}

// RehydrateHabit recreates a habit from persisted state without generating events.
func RehydrateHabit(
	id uuid.UUID,
	userID uuid.UUID,
	aspirationID uuid.UUID,
	name string,
	description string,
	rule recurrence.Rule,
	alwaysShow bool,
	xpPerCompletion int,
	streak int,
	bestStreak int,
	totalDone int,
	archived bool,
	createdAt time.Time,
	updatedAt time.Time,
	completions []dates.Day,
) *Habit {
	byDay := make(map[string]dates.Day, len(completions))
	for _, d := range completions {
		byDay[d.String()] = d
	}

	return &Habit{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:          userID,
		aspirationID:    aspirationID,
		name:            name,
		description:     description,
		rule:            rule,
		alwaysShow:      alwaysShow,
		xpPerCompletion: xpPerCompletion,
		streak:          streak,
		bestStreak:      bestStreak,
		totalDone:       totalDone,
		archived:        archived,
		completions:     byDay,
	}
}
