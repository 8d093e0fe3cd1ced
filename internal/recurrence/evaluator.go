package recurrence

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// Evaluator resolves whether a rule is due on a given day. It is stateless
// apart from the logger used to flag data-quality issues in stored rules.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator creates an evaluator.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{logger: logger}
}

// IsDue decides whether an item with the given rule is due on day.
// The owner id is only used for logging unknown kinds.
func (e *Evaluator) IsDue(owner uuid.UUID, rule Rule, alwaysShow bool, day dates.Day) bool {
	// The explicit always-show flag wins over every rule kind.
	if alwaysShow {
		return true
	}

	switch rule.Kind() {
	case KindDaily:
		return true
	case KindWeekly, KindCustom:
		// An empty set is never due. Construction rejects it for new
		// rules; rehydrated history may still carry one.
		return rule.Weekdays().Contains(day.Weekday())
	case KindMonthly:
		return monthlyDue(rule, day)
	case KindAlways:
		return true
	case KindNone:
		return false
	default:
		// Fail open to daily for unknown kinds, but surface the bad row:
		// silently accepting it forever would hide a data-quality bug.
		e.logger.Warn("unknown recurrence kind, defaulting to daily",
			"owner_id", owner,
			"kind", string(rule.Kind()),
		)
		return true
	}
}

// monthlyDue handles the month-overflow policy: a rule anchored past the
// end of the reference month fires on the month's last day, so a rule for
// the 31st is due on Feb 28 (or 29 in a leap year) and on Apr 30.
func monthlyDue(rule Rule, day dates.Day) bool {
	target := rule.monthlyTarget()
	if target > dates.DaysInMonth(day.Year(), day.Month()) {
		return day.LastDayOfMonth()
	}
	return day.DayOfMonth() == target
}
