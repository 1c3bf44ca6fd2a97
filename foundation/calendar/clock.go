// File: clock.go
// Title: Clock Boundary
// Description: The only source of "now" used by the package. Callers that
//              need deterministic results inject a FixedClock.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package calendar

import (
	"math/big"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same time.
type FixedClock time.Time

// Now implements Clock.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return SystemClock{}
	}
	return c
}

// Today returns the current local date of clock, read under sg.
func Today(clock Clock, sg Reform) Date {
	t := clockOrSystem(clock).Now()
	return JD(CivilToJD(t.Year(), int(t.Month()), t.Day(), Gregorian), sg)
}

// Now returns the current date-time of clock, in the clock's offset and
// read under sg. A leap second is folded into second 59.
func Now(clock Clock, sg Reform) Date {
	return FromTime(clockOrSystem(clock).Now(), sg)
}

// FromTime returns the date-time of t in t's offset, read under sg.
func FromTime(t time.Time, sg Reform) Date {
	jd := CivilToJD(t.Year(), int(t.Month()), t.Day(), Gregorian)
	fr := TimeToDayFraction(t.Hour(), t.Minute(), min(t.Second(), 59))
	fr.Add(fr, big.NewRat(int64(t.Nanosecond()), 86400*1e9))
	_, off := t.Zone()
	of := big.NewRat(int64(off), 86400)
	return newDate(JDToADC(jd, fr, of), of, sg, true)
}
