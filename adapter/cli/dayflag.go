package cli

import (
	"fmt"

	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// DayFlag parses a --date style flag value. Empty means today.
func DayFlag(value string) (dates.Day, error) {
	if value == "" {
		return dates.Today(), nil
	}
	day, err := dates.ParseDay(value)
	if err != nil {
		return dates.Day{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return day, nil
}
