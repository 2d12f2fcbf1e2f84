package cli

import (
	"fmt"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseWhen reads a time flag. Bare clock times ("09:30") are taken on the
// day of now; other layouts without a zone are read in now's location.
func parseWhen(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "now" {
		return now, nil
	}
	if c, err := time.Parse("15:04", s); err == nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, now.Location()), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use RFC3339, YYYY-MM-DD HH:MM or HH:MM)", s)
}

// interval resolves --start/--end/--minutes into a start and end. With only
// a duration the interval ends now.
func interval(start, end string, minutes int, now time.Time) (time.Time, time.Time, error) {
	if end == "" && minutes <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("either --end or --minutes is required")
	}

	var s, e time.Time
	var err error
	switch {
	case start != "":
		if s, err = parseWhen(start, now); err != nil {
			return s, e, err
		}
	case end != "":
		return s, e, fmt.Errorf("--end needs --start")
	default:
		s = now.Add(-time.Duration(minutes) * time.Minute)
	}

	if end != "" {
		if e, err = parseWhen(end, now); err != nil {
			return s, e, err
		}
	} else {
		e = s.Add(time.Duration(minutes) * time.Minute)
	}
	return s, e, nil
}
