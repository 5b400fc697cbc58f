package domain

import (
	"time"
)

// Appointment represents a confirmed reservation of a time slot.
// Service data is denormalized at booking time: later catalog edits
// must not rewrite history.
type Appointment struct {
	ID         string // UUID
	OwnerID    int64
	CustomerID int64
	ServiceID  int64

	// Snapshot of the catalog service at booking time
	ServiceName            string
	ServicePriceMinorUnits int64 // цена в минорных единицах валюты (копейки/центы)
	ServiceDurationMinutes int

	StartAt time.Time
	EndAt   time.Time

	CustomerName  string
	CustomerPhone string
	CustomerEmail *string

	CreatedAt time.Time
}

// Interval returns the occupied span of the appointment
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartAt, End: a.EndAt}
}

// IsPast reports whether the appointment has already finished
func (a *Appointment) IsPast(now time.Time) bool {
	return !a.EndAt.After(now)
}

// OwnerScheduleFilter bounds the owner calendar query by a date range.
// Nil bounds mean an open end.
type OwnerScheduleFilter struct {
	OwnerID int64
	From    *time.Time
	To      *time.Time
}

// BookedInterval marks a span of an owner's calendar as taken.
// It carries no customer data and is created and deleted strictly
// together with its appointment, in one transaction.
type BookedInterval struct {
	ID            int64
	OwnerID       int64
	AppointmentID string
	StartAt       time.Time
	EndAt         time.Time
}

// Interval returns the occupied span
func (b *BookedInterval) Interval() Interval {
	return Interval{Start: b.StartAt, End: b.EndAt}
}
