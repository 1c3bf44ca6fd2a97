// Package calendar implements exact calendar-date arithmetic.
//
// Package: calendar
// Title: Calendar Date Arithmetic
// Description: Conversions between Julian Day Numbers and civil, ordinal,
//              commercial (ISO week) and week-number dates under a configurable
//              Julian to Gregorian reform point, exact time-of-day fractions and
//              fixed UTC offsets, and the immutable Date value built on them.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation
//
// Three day counts appear throughout the package:
//
//   - the astronomical day count (ADC, "ajd"), a *big.Rat counted from noon
//     UTC of the Julian epoch whose fractional part is the UTC time of day;
//   - the Julian Day Number (JDN, "jd"), an int counted from local midnight;
//   - the UTC offset, a *big.Rat fraction of a day.
//
// They are related by jd = floor(ajd + offset + 1/2). Every field a Date
// exposes is derived from (ajd, offset, reform) on demand.
//
// All arithmetic is exact: integer conversions use floored division so that
// proleptic dates before year 1 behave, and time of day uses rationals.
//
// Usage:
//
//	d, err := calendar.Civil(2000, 2, 29, calendar.Italy)
//	if err != nil {
//		return err // mdwerror.CodeInvalidDate
//	}
//	d.JD()            // 2451604
//	d.AddMonths(12)   // 2001-02-28
//	d.Weekday()       // 2 (Tuesday)
package calendar
