package models

import "time"

// AvailabilityWindow is a recurring open interval a mentor declares for one
// weekday. Start and end are minutes from midnight and are validated at the
// HTTP boundary to be hour-aligned and non-overlapping per weekday.
type AvailabilityWindow struct {
	ID          int64        `json:"id"`
	MentorID    int64        `json:"mentor_id"`
	Weekday     time.Weekday `json:"weekday"`
	StartMinute int          `json:"start_minute"`
	EndMinute   int          `json:"end_minute"`
}

// Covers reports whether the [startMinute, endMinute) interval lies inside
// the window.
func (w AvailabilityWindow) Covers(startMinute, endMinute int) bool {
	return startMinute >= w.StartMinute && endMinute <= w.EndMinute
}

// TimeSpan is a half-open occupied interval [Start, End).
type TimeSpan struct {
	Start           time.Time
	DurationMinutes int
}

func (s TimeSpan) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

func (s TimeSpan) Overlaps(other TimeSpan) bool {
	return s.Start.Before(other.End()) && other.Start.Before(s.End())
}
