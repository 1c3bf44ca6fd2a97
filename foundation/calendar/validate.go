// File: validate.go
// Title: Field Validators
// Description: Decide whether a field tuple names a real calendar day and
//              return its JDN. Negative fields count back from the end of the
//              enclosing year, month or week; they are rewritten into their
//              forward form and validated again. A tuple is accepted only if
//              converting its JDN back yields the same tuple, which rejects
//              the days skipped by a calendar reform.
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
)

// ValidJD accepts every JDN within MaxJD.
func ValidJD(jd int, sg Reform) (int, bool) {
	return jd, jdInRange(jd)
}

// ValidOrdinal returns the JDN of day yd of year y. yd = -1 is the last
// day of the year.
func ValidOrdinal(y, yd int, sg Reform) (int, bool) {
	if !yearInRange(y) || !fieldsInRange(yd) {
		return 0, false
	}
	if yd < 0 {
		last := OrdinalToJD(y+1, 1, sg) - 1
		ny, nyd := JDToOrdinal(last+yd+1, sg)
		if ny != y || nyd < 1 {
			return 0, false
		}
		yd = nyd
	}

	jd := OrdinalToJD(y, yd, sg)
	if ry, ryd := JDToOrdinal(jd, sg); ry != y || ryd != yd {
		return 0, false
	}
	return jd, true
}

// ValidCivil returns the JDN of y-m-d. m = -1 is December and d = -1 the
// last day of the month.
func ValidCivil(y, m, d int, sg Reform) (int, bool) {
	if !yearInRange(y) || !fieldsInRange(m, d) {
		return 0, false
	}
	if m < 0 {
		m += 13
	}
	if m < 1 || m > 12 {
		return 0, false
	}
	if d < 0 {
		ny, nm := divMod(y*12+m, 12)
		last := CivilToJD(ny, nm+1, 1, sg) - 1
		ry, rm, rd := JDToCivil(last+d+1, sg)
		if ry != y || rm != m {
			return 0, false
		}
		d = rd
	}

	jd := CivilToJD(y, m, d, sg)
	if ry, rm, rd := JDToCivil(jd, sg); ry != y || rm != m || rd != d {
		return 0, false
	}
	return jd, true
}

// ValidCommercial returns the JDN of ISO week date y-Ww-d. d = -1 is
// Sunday and w = -1 the last week of the week year. Week dates are only
// defined where Gregorian rules apply under sg.
func ValidCommercial(y, w, d int, sg Reform) (int, bool) {
	if !yearInRange(y) || !fieldsInRange(w, d) {
		return 0, false
	}
	if d < 0 {
		d += 8
	}
	if w < 0 {
		ny, nw, _ := JDToCommercial(CommercialToJD(y+1, 1, 1, Gregorian)+w*7, Gregorian)
		if ny != y {
			return 0, false
		}
		w = nw
	}

	jd := CommercialToJD(y, w, d, Gregorian)
	if !sg.IsGregorian(jd) {
		return 0, false
	}
	if ry, rw, rd := JDToCommercial(jd, Gregorian); ry != y || rw != w || rd != d {
		return 0, false
	}
	return jd, true
}

// ValidWeeknum returns the JDN of day d of week w of year y for week start
// f. d = -1 is the last day of the week and w = -1 the last week of the year.
func ValidWeeknum(y, w, d, f int, sg Reform) (int, bool) {
	if f != 0 && f != 1 {
		return 0, false
	}
	if !yearInRange(y) || !fieldsInRange(w, d) {
		return 0, false
	}
	if d < 0 {
		d += 7
	}
	if w < 0 {
		ny, nw, _ := JDToWeeknum(WeeknumToJD(y+1, 1, f, f, Gregorian)+w*7, f, Gregorian)
		if ny != y {
			return 0, false
		}
		w = nw
	}

	jd := WeeknumToJD(y, w, d, f, Gregorian)
	if !sg.IsGregorian(jd) {
		return 0, false
	}
	if ry, rw, rd := JDToWeeknum(jd, f, Gregorian); ry != y || rw != w || rd != d {
		return 0, false
	}
	return jd, true
}

// ValidTime returns the day fraction of h:min:s. Negative fields count back
// from the end of the day, hour or minute. 24:00:00 is accepted as the end
// of the day.
func ValidTime(h, min, s int) (*big.Rat, bool) {
	if h < 0 {
		h += 24
	}
	if min < 0 {
		min += 60
	}
	if s < 0 {
		s += 60
	}
	inRange := h >= 0 && h <= 23 && min >= 0 && min <= 59 && s >= 0 && s <= 59
	if !inRange && !(h == 24 && min == 0 && s == 0) {
		return nil, false
	}
	return TimeToDayFraction(h, min, s), true
}
