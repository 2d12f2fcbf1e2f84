package domain

import "time"

// WorkdayPolicy decides which instants count as after hours. Working hours
// are [StartMinute, EndMinute) local time on working days.
type WorkdayPolicy struct {
	Location           *time.Location
	StartMinute        int
	EndMinute          int
	WeekendsAfterHours bool
}

// DefaultWorkdayPolicy is 09:00-18:00 UTC with weekends off.
func DefaultWorkdayPolicy() WorkdayPolicy {
	return WorkdayPolicy{
		Location:           time.UTC,
		StartMinute:        9 * 60,
		EndMinute:          18 * 60,
		WeekendsAfterHours: true,
	}
}

func (p WorkdayPolicy) loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// Local converts t into the policy's time zone.
func (p WorkdayPolicy) Local(t time.Time) time.Time {
	return t.In(p.loc())
}

// DateKey returns the local calendar date of t as YYYY-MM-DD.
func (p WorkdayPolicy) DateKey(t time.Time) string {
	return p.Local(t).Format("2006-01-02")
}

// IsAfterHours reports whether t falls outside working hours.
func (p WorkdayPolicy) IsAfterHours(t time.Time) bool {
	local := p.Local(t)
	if p.WeekendsAfterHours {
		if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return true
		}
	}
	minute := local.Hour()*60 + local.Minute()
	return minute < p.StartMinute || minute >= p.EndMinute
}

// MeetingAfterHours reports whether a meeting starts outside working hours
// or runs past their end.
func (p WorkdayPolicy) MeetingAfterHours(start, end time.Time) bool {
	if p.IsAfterHours(start) {
		return true
	}
	last := end.Add(-time.Minute)
	if last.Before(start) {
		return false
	}
	return p.IsAfterHours(last)
}
