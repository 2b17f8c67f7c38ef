package cancellation

import (
	"time"
)

const DefaultMinLeadDays = 2

// Policy decides whether a booked date is still far enough away to cancel.
type Policy struct {
	MinLeadDays int
	Location    *time.Location
}

func DefaultPolicy() Policy {
	return Policy{MinLeadDays: DefaultMinLeadDays, Location: time.UTC}
}

func NewPolicy(minLeadDays int, loc *time.Location) Policy {
	if loc == nil {
		loc = time.UTC
	}
	return Policy{MinLeadDays: minLeadDays, Location: loc}
}

// CanCancel reports whether bookedDate is at least MinLeadDays calendar days
// after the current day in the policy's zone. bookedDate is read as a
// calendar date in its own location; time of day is ignored on both sides.
func (p Policy) CanCancel(bookedDate, now time.Time) bool {
	return p.DaysUntil(bookedDate, now) >= p.MinLeadDays
}

// DaysUntil returns the number of calendar days from today to bookedDate.
// Negative for past dates.
func (p Policy) DaysUntil(bookedDate, now time.Time) int {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	booked := calendarDay(bookedDate)
	today := calendarDay(now.In(loc))
	return int(booked.Sub(today).Hours() / 24)
}

// calendarDay pins the date to UTC midnight so day arithmetic is free of DST shifts
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
