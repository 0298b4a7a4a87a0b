package roster

import (
	"time"

	rostererrors "staffops/internal/roster/errors"
)

const timeLayout = "15:04"

// shiftAnchor pins time-of-day arithmetic to a fixed date so a shift's
// duration never depends on the roster date (DST, day rollover).
var shiftAnchor = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func parseShiftTime(v string) (time.Time, error) {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}, rostererrors.ErrInvalidTimeFormat
	}
	return time.Date(
		shiftAnchor.Year(), shiftAnchor.Month(), shiftAnchor.Day(),
		t.Hour(), t.Minute(), 0, 0, time.UTC,
	), nil
}

// shiftHours returns end − start in hours, clamped to zero. A negative span
// (end before start) is not reinterpreted as an overnight shift; it clamps.
func shiftHours(startTime, endTime string) (float64, error) {
	start, err := parseShiftTime(startTime)
	if err != nil {
		return 0, err
	}
	end, err := parseShiftTime(endTime)
	if err != nil {
		return 0, err
	}

	hours := end.Sub(start).Hours()
	if hours < 0 {
		return 0, nil
	}
	return hours, nil
}

// expandDates returns every calendar day in [start, end], inclusive.
func expandDates(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
