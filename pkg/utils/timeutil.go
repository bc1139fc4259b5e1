package util

import (
	"time"

	"golang.org/x/xerrors"

	"attendance-tracker/models"
)

// Today returns the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(models.DateLayout)
}

// ParseDay parses a YYYY-MM-DD query value, falling back to today when the
// value is empty. It returns the canonical date string.
func ParseDay(value string, now time.Time, loc *time.Location) (string, error) {
	if value == "" {
		return Today(now, loc), nil
	}
	d, err := time.ParseInLocation(models.DateLayout, value, loc)
	if err != nil {
		return "", xerrors.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return d.Format(models.DateLayout), nil
}

// DayRange returns the inclusive [00:00:00.000, 23:59:59.999] bounds of day
// in loc.
func DayRange(day string, loc *time.Location) (start, end time.Time, err error) {
	start, err = time.ParseInLocation(models.DateLayout, day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, xerrors.Errorf("parse day %q: %w", day, err)
	}
	end = start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end, nil
}
