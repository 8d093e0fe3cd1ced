package domain

import (
	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/pkg/config"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// Trend classifies the recent XP rate against the lifetime rate.
type Trend string

const (
	TrendPositive Trend = "positive"
	TrendNeutral  Trend = "neutral"
	TrendNegative Trend = "negative"
)

// HabitActivity is the slice of a habit's history the balance needs.
// The owning context maps its aggregate into this snapshot.
type HabitActivity struct {
	HabitID         uuid.UUID
	XPPerCompletion int
	TotalDone       int
	Completions     []dates.Day
	// RecentDue is the number of days inside the recent window on which the
	// habit's rule made it due.
	RecentDue int
}

// StepActivity is the slice of a step's state the balance needs.
type StepActivity struct {
	StepID    uuid.UUID
	Day       dates.Day
	Completed bool
	XP        int
}

// AspirationBalance is the derived read model over everything linked to one
// aspiration. It is computed, never stored.
type AspirationBalance struct {
	AspirationID uuid.UUID
	// Empty means nothing at all is linked: no data, as opposed to linked
	// items with zero performance.
	Empty bool

	TotalXP  int
	RecentXP int

	TotalPlannedSteps    int
	TotalCompletedSteps  int
	TotalPlannedHabits   int
	RecentPlannedSteps   int
	RecentCompletedSteps int
	RecentDueHabitDays   int
	RecentDoneHabitDays  int

	// CompletionRateRecent is nil when nothing was planned in the recent
	// window: no signal, not a zero rate.
	CompletionRateRecent *float64

	Trend Trend
}

// HasSignal reports whether the recent completion rate carries information.
func (b AspirationBalance) HasSignal() bool { return b.CompletionRateRecent != nil }

// ComputeBalance aggregates habit and step activity linked to one aspiration
// over the recent window ending at today. Pure; all inputs are snapshots.
func ComputeBalance(
	aspirationID uuid.UUID,
	habits []HabitActivity,
	steps []StepActivity,
	today dates.Day,
	thresholds config.InsightThresholds,
) AspirationBalance {
	balance := AspirationBalance{AspirationID: aspirationID, Trend: TrendNeutral}

	if len(habits) == 0 && len(steps) == 0 {
		balance.Empty = true
		return balance
	}

	windowStart := today.AddDays(-thresholds.WindowDays)
	inWindow := func(d dates.Day) bool {
		return !d.Before(windowStart) && !d.After(today)
	}

	firstActivity := today
	sawActivity := false
	note := func(d dates.Day) {
		if !sawActivity || d.Before(firstActivity) {
			firstActivity = d
			sawActivity = true
		}
	}

	for _, h := range habits {
		balance.TotalPlannedHabits++
		balance.TotalXP += h.TotalDone * h.XPPerCompletion
		balance.RecentDueHabitDays += h.RecentDue
		for _, d := range h.Completions {
			note(d)
			if inWindow(d) {
				balance.RecentDoneHabitDays++
				balance.RecentXP += h.XPPerCompletion
			}
		}
	}

	for _, s := range steps {
		balance.TotalPlannedSteps++
		note(s.Day)
		if inWindow(s.Day) {
			balance.RecentPlannedSteps++
		}
		if s.Completed {
			balance.TotalCompletedSteps++
			balance.TotalXP += s.XP
			if inWindow(s.Day) {
				balance.RecentCompletedSteps++
				balance.RecentXP += s.XP
			}
		}
	}

	recentPlanned := balance.RecentPlannedSteps + balance.RecentDueHabitDays
	if recentPlanned > 0 {
		rate := float64(balance.RecentCompletedSteps+balance.RecentDoneHabitDays) /
			float64(recentPlanned) * 100
		balance.CompletionRateRecent = &rate
	}

	balance.Trend = classifyTrend(balance.TotalXP, balance.RecentXP,
		firstActivity, today, thresholds)

	return balance
}

// classifyTrend compares XP per day in the recent window against the
// lifetime average, with a relative margin either side counting as neutral.
func classifyTrend(totalXP, recentXP int, firstActivity, today dates.Day, thresholds config.InsightThresholds) Trend {
	if totalXP == 0 {
		return TrendNeutral
	}

	lifetimeDays := dates.DaysBetween(firstActivity, today) + 1
	if lifetimeDays < 1 {
		lifetimeDays = 1
	}
	windowDays := thresholds.WindowDays
	if lifetimeDays < windowDays {
		// Too young for the window to differ from lifetime.
		windowDays = lifetimeDays
	}

	lifetimeRate := float64(totalXP) / float64(lifetimeDays)
	recentRate := float64(recentXP) / float64(windowDays)

	switch {
	case recentRate > lifetimeRate*(1+thresholds.TrendMargin):
		return TrendPositive
	case recentRate < lifetimeRate*(1-thresholds.TrendMargin):
		return TrendNegative
	}
	return TrendNeutral
}

// GroupEasy filters balances whose recent completion rate clears the easy
// threshold. Balances without signal never qualify.
func GroupEasy(balances []AspirationBalance, thresholds config.InsightThresholds) []AspirationBalance {
	var out []AspirationBalance
	for _, b := range balances {
		if b.HasSignal() && *b.CompletionRateRecent >= thresholds.EasyCompletionRate {
			out = append(out, b)
		}
	}
	return out
}

// GroupHard filters balances whose recent completion rate falls below the
// hard threshold. Balances without signal never qualify.
func GroupHard(balances []AspirationBalance, thresholds config.InsightThresholds) []AspirationBalance {
	var out []AspirationBalance
	for _, b := range balances {
		if b.HasSignal() && *b.CompletionRateRecent < thresholds.HardCompletionRate {
			out = append(out, b)
		}
	}
	return out
}
