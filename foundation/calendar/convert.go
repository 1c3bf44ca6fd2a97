// File: convert.go
// Title: Julian Day Number Converters
// Description: Pure conversions between Julian Day Numbers and civil,
//              ordinal, commercial and week-number dates. None of these
//              functions validate their input; see validate.go.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package calendar

// floorDiv returns floor(a/b) for b > 0.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}

// floorMod returns a - b*floor(a/b), always in [0, b) for b > 0.
func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func divMod(a, b int) (int, int) {
	return floorDiv(a, b), floorMod(a, b)
}

// CivilToJD returns the JDN of year-month-day under sg. Days outside the
// month are not rejected: day 0 is the last day of the previous month.
func CivilToJD(y, m, d int, sg Reform) int {
	if m <= 2 {
		y--
		m += 12
	}
	a := floorDiv(y, 100)
	b := 2 - a + floorDiv(a, 4)
	// floor(365.25*(y+4716)) + floor(30.6001*(m+1)) + d + b - 1524
	jd := floorDiv(1461*(y+4716), 4) + floorDiv(306001*(m+1), 10000) + d + b - 1524
	if sg.IsJulian(jd) {
		jd -= b
	}
	return jd
}

// JDToCivil returns the year, month and day of jd under sg.
func JDToCivil(jd int, sg Reform) (y, m, d int) {
	a := jd
	if !sg.IsJulian(jd) {
		// x = floor((jd - 1867216.25) / 36524.25)
		x := floorDiv(4*jd-7468865, 146097)
		a = jd + 1 + x - floorDiv(x, 4)
	}
	b := a + 1524
	c := floorDiv(20*b-2442, 7305) // floor((b - 122.1) / 365.25)
	dd := floorDiv(1461*c, 4)
	e := floorDiv(10000*(b-dd), 306001)
	d = b - dd - floorDiv(306001*e, 10000)
	if e <= 13 {
		m = e - 1
		y = c - 4716
	} else {
		m = e - 13
		y = c - 4715
	}
	return y, m, d
}

// OrdinalToJD returns the JDN of day yd of year y under sg.
func OrdinalToJD(y, yd int, sg Reform) int {
	return CivilToJD(y, 1, yd, sg)
}

// JDToOrdinal returns the year and day of year of jd under sg. The day of
// year counts from December 31 of the previous year in the calendar in
// force on jd, so the days after a reform gap keep their Gregorian numbers.
func JDToOrdinal(jd int, sg Reform) (y, yd int) {
	y, _, _ = JDToCivil(jd, sg)
	return y, jd - CivilToJD(y-1, 12, 31, sg.FixedStyle(jd))
}

// CommercialToJD returns the JDN of ISO week date y-Ww-d under sg.
// Week 1 is the week holding January 4.
func CommercialToJD(y, w, d int, sg Reform) int {
	jd := CivilToJD(y, 1, 4, sg)
	// (jd mod 7) is the number of days since Monday.
	return (jd - floorMod(jd, 7)) + 7*(w-1) + (d - 1)
}

// JDToCommercial returns the ISO week year, week and weekday (1 = Monday)
// of jd under sg.
func JDToCommercial(jd int, sg Reform) (y, w, d int) {
	ns := sg.FixedStyle(jd)
	a, _, _ := JDToCivil(jd-3, ns)
	y = a
	if jd >= CommercialToJD(a+1, 1, 1, ns) {
		y = a + 1
	}
	w = 1 + floorDiv(jd-CommercialToJD(y, 1, 1, ns), 7)
	d = floorMod(jd+1, 7)
	if d == 0 {
		d = 7
	}
	return y, w, d
}

// weekStart returns the JDN of the first day (weekday f) of week 0 of
// year y: the week holding January 1.
func weekStart(y, f int, sg Reform) int {
	a := CivilToJD(y, 1, 1, sg) + 6
	return a - floorMod(a-f+1, 7) - 7
}

// WeeknumToJD returns the JDN of the day d days into week w of year y,
// where weeks start on Sunday for f = 0 and on Monday for f = 1. Days of the
// year before the first full week fall into week 0.
func WeeknumToJD(y, w, d, f int, sg Reform) int {
	return weekStart(y, f, sg) + 7*w + d
}

// JDToWeeknum returns the year, week and weekday of jd for week start f.
// The weekday counts from the start of the week: for f = 1, Monday is 0.
func JDToWeeknum(jd, f int, sg Reform) (y, w, d int) {
	ns := sg.FixedStyle(jd)
	y, _, _ = JDToCivil(jd, ns)
	w, d = divMod(jd-weekStart(y, f, ns), 7)
	return y, w, d
}

// JDToWeekday returns the day of week of jd, 0 = Sunday.
func JDToWeekday(jd int) int {
	return floorMod(jd+1, 7)
}

// JulianLeap reports whether y is a leap year of the Julian calendar.
func JulianLeap(y int) bool {
	return floorMod(y, 4) == 0
}

// GregorianLeap reports whether y is a leap year of the Gregorian calendar.
func GregorianLeap(y int) bool {
	return floorMod(y, 4) == 0 && floorMod(y, 100) != 0 || floorMod(y, 400) == 0
}
