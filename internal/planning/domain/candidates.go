package domain

import (
	"sort"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// CandidateKind distinguishes what a candidate id refers to.
type CandidateKind string

const (
	CandidateHabit CandidateKind = "habit"
	CandidateStep  CandidateKind = "step"
)

// Candidate is an item suggested for a day's plan. Candidates are
// suggestions only; nothing enters the plan until the user adds it.
type Candidate struct {
	ID          uuid.UUID
	Kind        CandidateKind
	Title       string
	Day         dates.Day
	OverdueDays int
	Priority    int
	Completed   bool
	Planned     bool
}

// HabitCandidate carries the habit fields the builder needs. The planning
// context does not depend on the habits aggregate; callers map it down.
type HabitCandidate struct {
	ID        uuid.UUID
	Title     string
	Completed bool // completed on the candidate day
}

// BuildCandidates assembles the suggestion list for a day: habits due that
// day, unfinished steps from earlier days, and steps scheduled for the day.
// The result is ranked most-overdue first, then by Eisenhower priority
// (importance weighs double), then by scheduled day ascending.
func BuildCandidates(today dates.Day, dueHabits []HabitCandidate, steps []*DailyStep, plan *DailyPlan) []Candidate {
	inPlan := func(id uuid.UUID) bool {
		return plan != nil && plan.Contains(id)
	}

	candidates := make([]Candidate, 0, len(dueHabits)+len(steps))

	for _, h := range dueHabits {
		candidates = append(candidates, Candidate{
			ID:        h.ID,
			Kind:      CandidateHabit,
			Title:     h.Title,
			Day:       today,
			Completed: h.Completed,
			Planned:   inPlan(h.ID),
		})
	}

	for _, s := range steps {
		if !s.Day().Equal(today) && !s.IsOverdueOn(today) {
			continue
		}
		candidates = append(candidates, Candidate{
			ID:          s.ID(),
			Kind:        CandidateStep,
			Title:       s.Title(),
			Day:         s.Day(),
			OverdueDays: s.OverdueDays(today),
			Priority:    s.Priority(),
			Completed:   s.IsCompleted(),
			Planned:     inPlan(s.ID()),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.OverdueDays != b.OverdueDays {
			return a.OverdueDays > b.OverdueDays
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.Day.Before(b.Day)
	})

	return candidates
}
