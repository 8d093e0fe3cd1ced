// Package recurrence defines recurrence rules for habits and automations
// and the evaluator that decides whether an item is due on a given day.
package recurrence

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// ErrInvalidRule indicates a rule that cannot be constructed.
var ErrInvalidRule = errors.New("invalid recurrence rule")

// Kind is the recurrence variant of a rule.
type Kind string

const (
	// KindDaily is due every day.
	KindDaily Kind = "daily"
	// KindWeekly is due on the selected weekdays.
	KindWeekly Kind = "weekly"
	// KindMonthly is due on a fixed day of month.
	KindMonthly Kind = "monthly"
	// KindCustom is due on a user-picked weekday set.
	KindCustom Kind = "custom"
	// KindAlways is due every day regardless of other fields.
	KindAlways Kind = "always"
	// KindNone is never due; used by automations without a schedule.
	KindNone Kind = "none"
)

// IsValid checks if the kind is a known variant.
func (k Kind) IsValid() bool {
	switch k {
	case KindDaily, KindWeekly, KindMonthly, KindCustom, KindAlways, KindNone:
		return true
	default:
		return false
	}
}

// Weekdays is a set of selected weekdays, kept sorted and unique.
type Weekdays []time.Weekday

// NewWeekdays builds a normalized weekday set.
func NewWeekdays(days ...time.Weekday) Weekdays {
	seen := make(map[time.Weekday]bool, len(days))
	var out Weekdays
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Contains reports whether the set includes the given weekday.
func (w Weekdays) Contains(day time.Weekday) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

// String serializes the set as a comma-separated list ("mon,wed,fri").
func (w Weekdays) String() string {
	parts := make([]string, len(w))
	for i, d := range w {
		parts[i] = strings.ToLower(d.String()[:3])
	}
	return strings.Join(parts, ",")
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWeekdays parses a comma-separated weekday list.
func ParseWeekdays(s string) (Weekdays, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if len(name) > 3 {
			name = name[:3]
		}
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidRule, part)
		}
		days = append(days, day)
	}
	return NewWeekdays(days...), nil
}

// Rule describes when a recurring item is active. Rules are immutable
// value objects; validation happens at construction, never at evaluation.
type Rule struct {
	kind       Kind
	weekdays   Weekdays
	dayOfMonth int
	anchor     dates.Day
}

// NewRule creates a validated rule for new user input.
//
// The anchor is the owning item's creation date; monthly rules without an
// explicit day of month fall back to the anchor's day.
func NewRule(kind Kind, weekdays Weekdays, dayOfMonth int, anchor dates.Day) (Rule, error) {
	if !kind.IsValid() {
		return Rule{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidRule, kind)
	}
	if anchor.IsZero() {
		return Rule{}, fmt.Errorf("%w: anchor date is required", ErrInvalidRule)
	}

	switch kind {
	case KindWeekly, KindCustom:
		if len(weekdays) == 0 {
			return Rule{}, fmt.Errorf("%w: %s rule needs at least one weekday", ErrInvalidRule, kind)
		}
	case KindMonthly:
		if dayOfMonth == 0 {
			dayOfMonth = anchor.DayOfMonth()
		}
		if dayOfMonth < 1 || dayOfMonth > 31 {
			return Rule{}, fmt.Errorf("%w: day of month %d outside 1..31", ErrInvalidRule, dayOfMonth)
		}
	}

	return Rule{
		kind:       kind,
		weekdays:   NewWeekdays(weekdays...),
		dayOfMonth: dayOfMonth,
		anchor:     anchor,
	}, nil
}

// RehydrateRule recreates a rule from persisted state without validation.
// Historical rows may carry unknown kinds or empty weekday sets; the
// evaluator handles both instead of refusing to load the item.
func RehydrateRule(kind Kind, weekdays Weekdays, dayOfMonth int, anchor dates.Day) Rule {
	return Rule{
		kind:       kind,
		weekdays:   NewWeekdays(weekdays...),
		dayOfMonth: dayOfMonth,
		anchor:     anchor,
	}
}

// Kind returns the recurrence variant.
func (r Rule) Kind() Kind { return r.kind }

// Weekdays returns the selected weekday set.
func (r Rule) Weekdays() Weekdays { return r.weekdays }

// DayOfMonth returns the monthly target day, or 0 when unset.
func (r Rule) DayOfMonth() int { return r.dayOfMonth }

// Anchor returns the rule's reference date.
func (r Rule) Anchor() dates.Day { return r.anchor }

// monthlyTarget resolves the effective day of month, falling back to the
// anchor when the rule predates explicit day-of-month storage.
func (r Rule) monthlyTarget() int {
	if r.dayOfMonth >= 1 && r.dayOfMonth <= 31 {
		return r.dayOfMonth
	}
	return r.anchor.DayOfMonth()
}
