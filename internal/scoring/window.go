package scoring

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidWindow is returned for windows that end before they start.
var ErrInvalidWindow = errors.New("invalid scoring window")

// Window is an inclusive [Start, End] interval. Location decides which
// calendar day an instant belongs to.
type Window struct {
	Start    time.Time
	End      time.Time
	Location *time.Location
}

// NewWindow builds the window that ends at end and spans days*24h.
func NewWindow(end time.Time, days int, loc *time.Location) (Window, error) {
	if days <= 0 {
		return Window{}, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidWindow, days)
	}
	return Between(end.Add(-time.Duration(days)*24*time.Hour), end, loc)
}

// Between builds a window from explicit bounds.
func Between(start, end time.Time, loc *time.Location) (Window, error) {
	if end.Before(start) {
		return Window{}, fmt.Errorf("%w: end %s precedes start %s",
			ErrInvalidWindow, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	if loc == nil {
		loc = time.UTC
	}
	return Window{Start: start, End: end, Location: loc}, nil
}

// Contains reports whether t lies inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days is the window length in fractional days.
func (w Window) Days() float64 {
	return w.End.Sub(w.Start).Hours() / 24
}

func (w Window) dateKey(t time.Time) string {
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02")
}
