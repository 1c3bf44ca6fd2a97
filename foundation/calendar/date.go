// File: date.go
// Title: Immutable Date Value
// Description: Date is an instant held as an astronomical day count together
//              with the UTC offset and reform point used to read calendar
//              fields from it. Constructors validate their fields; accessors
//              derive fields lazily and cache them per value.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package calendar

import (
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"
)

// Date is an immutable calendar value. Values built by the date
// constructors (JD, Civil, ...) carry no time of day; values built by the
// *Time constructors, FromADC, Now and FromTime are date-times and report
// HasTime. The zero Date is JDN 0 under Italy.
//
// Dates are safe for concurrent use. Copies share the lazily built field
// cache, which depends only on the immutable state.
type Date struct {
	ajd      *big.Rat
	of       *big.Rat
	sg       Reform
	withTime bool
	memo     *memo
}

// TimeOfDay carries the time fields of a date-time constructor.
type TimeOfDay struct {
	Hour, Minute, Second int
	// Fraction is the part of a second in [0, 1). Nil means zero.
	Fraction *big.Rat
	// Offset is local time minus UTC as a fraction of a day. Nil means UTC.
	Offset *big.Rat
}

type memo struct {
	once   sync.Once
	fields derived
}

type derived struct {
	jd     int
	fr     *big.Rat
	year   int
	month  int
	day    int
	yday   int
	cwyear int
	cweek  int
	cwday  int
	wnum0  int
	wnum1  int
	hour   int
	minute int
	second int
	secFr  *big.Rat
}

func newDate(ajd, of *big.Rat, sg Reform, withTime bool) Date {
	return Date{ajd: ajd, of: ratCopy(of), sg: sg.norm(), withTime: withTime, memo: &memo{}}
}

func (d Date) view() *derived {
	if d.memo == nil {
		f := derive(d)
		return &f
	}
	d.memo.once.Do(func() { d.memo.fields = derive(d) })
	return &d.memo.fields
}

func derive(d Date) derived {
	var f derived
	// Constructors keep the local JDN within MaxJD.
	f.jd, f.fr, _ = ADCToJD(d.ajd, d.of)
	f.year, f.month, f.day = JDToCivil(f.jd, d.sg)
	_, f.yday = JDToOrdinal(f.jd, d.sg)
	f.cwyear, f.cweek, f.cwday = JDToCommercial(f.jd, d.sg)
	_, f.wnum0, _ = JDToWeeknum(f.jd, 0, d.sg)
	_, f.wnum1, _ = JDToWeeknum(f.jd, 1, d.sg)
	f.hour, f.minute, f.second, f.secFr = DayFractionToTime(f.fr)
	return f
}

// JD returns the Date of the given Julian Day Number. Every JDN is valid.
func JD(jd int, sg Reform) Date {
	return newDate(JDToADC(jd, nil, nil), nil, sg, false)
}

// Civil returns the Date of y-m-d. Negative m and d count from the end of
// the year and month.
func Civil(y, m, d int, sg Reform) (Date, error) {
	jd, ok := ValidCivil(y, m, d, sg)
	if !ok {
		return Date{}, invalidDate("Civil", map[string]interface{}{"year": y, "month": m, "day": d})
	}
	return JD(jd, sg), nil
}

// Ordinal returns the Date of day yd of year y.
func Ordinal(y, yd int, sg Reform) (Date, error) {
	jd, ok := ValidOrdinal(y, yd, sg)
	if !ok {
		return Date{}, invalidDate("Ordinal", map[string]interface{}{"year": y, "yday": yd})
	}
	return JD(jd, sg), nil
}

// Commercial returns the Date of ISO week date y-Ww-d, d = 1 being Monday.
func Commercial(y, w, d int, sg Reform) (Date, error) {
	jd, ok := ValidCommercial(y, w, d, sg)
	if !ok {
		return Date{}, invalidDate("Commercial", map[string]interface{}{"cwyear": y, "cweek": w, "cwday": d})
	}
	return JD(jd, sg), nil
}

// Weeknum returns the Date of day d of week w of year y for week start f.
func Weeknum(y, w, d, f int, sg Reform) (Date, error) {
	jd, ok := ValidWeeknum(y, w, d, f, sg)
	if !ok {
		return Date{}, invalidDate("Weeknum", map[string]interface{}{"year": y, "week": w, "day": d, "start": f})
	}
	return JD(jd, sg), nil
}

func buildDateTime(operation string, jd int, t TimeOfDay, sg Reform, details map[string]interface{}) (Date, error) {
	fr, ok := ValidTime(t.Hour, t.Minute, t.Second)
	sf := ratOrZero(t.Fraction)
	if !ok || sf.Sign() < 0 || sf.Cmp(big.NewRat(1, 1)) >= 0 {
		details["hour"], details["minute"], details["second"] = t.Hour, t.Minute, t.Second
		return Date{}, invalidDate(operation, details)
	}
	fr.Add(fr, SecondsToDayFraction(sf))
	return newDate(JDToADC(jd, fr, t.Offset), t.Offset, sg, true), nil
}

// JDTime returns the date-time at t on local day jd.
func JDTime(jd int, t TimeOfDay, sg Reform) (Date, error) {
	return buildDateTime("JDTime", jd, t, sg, map[string]interface{}{"jd": jd})
}

// CivilTime returns the date-time at t on local day y-m-d.
func CivilTime(y, m, d int, t TimeOfDay, sg Reform) (Date, error) {
	details := map[string]interface{}{"year": y, "month": m, "day": d}
	jd, ok := ValidCivil(y, m, d, sg)
	if !ok {
		return Date{}, invalidDate("CivilTime", details)
	}
	return buildDateTime("CivilTime", jd, t, sg, details)
}

// OrdinalTime returns the date-time at t on local day yd of year y.
func OrdinalTime(y, yd int, t TimeOfDay, sg Reform) (Date, error) {
	details := map[string]interface{}{"year": y, "yday": yd}
	jd, ok := ValidOrdinal(y, yd, sg)
	if !ok {
		return Date{}, invalidDate("OrdinalTime", details)
	}
	return buildDateTime("OrdinalTime", jd, t, sg, details)
}

// CommercialTime returns the date-time at t on ISO week date y-Ww-d.
func CommercialTime(y, w, d int, t TimeOfDay, sg Reform) (Date, error) {
	details := map[string]interface{}{"cwyear": y, "cweek": w, "cwday": d}
	jd, ok := ValidCommercial(y, w, d, sg)
	if !ok {
		return Date{}, invalidDate("CommercialTime", details)
	}
	return buildDateTime("CommercialTime", jd, t, sg, details)
}

// WeeknumTime returns the date-time at t on day d of week w of year y.
func WeeknumTime(y, w, d, f int, t TimeOfDay, sg Reform) (Date, error) {
	details := map[string]interface{}{"year": y, "week": w, "day": d, "start": f}
	jd, ok := ValidWeeknum(y, w, d, f, sg)
	if !ok {
		return Date{}, invalidDate("WeeknumTime", details)
	}
	return buildDateTime("WeeknumTime", jd, t, sg, details)
}

// FromADC returns the date-time at astronomical day count ajd read with
// offset of. Every day count whose local JDN is within MaxJD is valid.
func FromADC(ajd, of *big.Rat, sg Reform) (Date, error) {
	if _, _, ok := ADCToJD(ajd, of); !ok {
		return Date{}, invalidDate("FromADC", map[string]interface{}{"ajd": ratOrZero(ajd).RatString()})
	}
	return newDate(ratCopy(ajd), of, sg, true), nil
}

// AJD returns the astronomical day count.
func (d Date) AJD() *big.Rat { return ratCopy(d.ajd) }

// AMJD returns the astronomical modified Julian day.
func (d Date) AMJD() *big.Rat { return ADCToAMJD(d.ajd) }

// JD returns the Julian Day Number of the local day.
func (d Date) JD() int { return d.view().jd }

// DayFraction returns the elapsed fraction of the local day.
func (d Date) DayFraction() *big.Rat { return ratCopy(d.view().fr) }

// MJD returns the Modified Julian Day of the local day.
func (d Date) MJD() int { return JDToMJD(d.JD()) }

// LD returns the Lilian Day of the local day.
func (d Date) LD() int { return JDToLD(d.JD()) }

// Year returns the civil year.
func (d Date) Year() int { return d.view().year }

// Month returns the civil month, 1 to 12.
func (d Date) Month() int { return d.view().month }

// Day returns the day of the month.
func (d Date) Day() int { return d.view().day }

// Date returns the civil year, month and day.
func (d Date) Date() (y, m, day int) {
	f := d.view()
	return f.year, f.month, f.day
}

// YDay returns the day of the year.
func (d Date) YDay() int { return d.view().yday }

// CWYear returns the ISO week-numbering year.
func (d Date) CWYear() int { return d.view().cwyear }

// CWeek returns the ISO week, 1 to 53.
func (d Date) CWeek() int { return d.view().cweek }

// CWDay returns the ISO weekday, 1 = Monday to 7 = Sunday.
func (d Date) CWDay() int { return d.view().cwday }

// ISOWeek returns the ISO week-numbering year and week.
func (d Date) ISOWeek() (y, w int) {
	f := d.view()
	return f.cwyear, f.cweek
}

// WNum0 returns the week of the year with weeks starting on Sunday.
func (d Date) WNum0() int { return d.view().wnum0 }

// WNum1 returns the week of the year with weeks starting on Monday.
func (d Date) WNum1() int { return d.view().wnum1 }

// Weekday returns the day of the week, 0 = Sunday.
func (d Date) Weekday() int { return JDToWeekday(d.JD()) }

// Hour returns the local hour.
func (d Date) Hour() int { return d.view().hour }

// Minute returns the local minute.
func (d Date) Minute() int { return d.view().minute }

// Second returns the local second.
func (d Date) Second() int { return d.view().second }

// Clock returns the local hour, minute and second.
func (d Date) Clock() (h, m, s int) {
	f := d.view()
	return f.hour, f.minute, f.second
}

// SecFraction returns the fraction of the current second.
func (d Date) SecFraction() *big.Rat { return ratCopy(d.view().secFr) }

// Offset returns local time minus UTC as a fraction of a day.
func (d Date) Offset() *big.Rat { return ratCopy(d.of) }

// OffsetSeconds returns the offset in whole seconds, rounded down.
func (d Date) OffsetSeconds() int {
	q, _ := ratFloor(DayFractionToSeconds(d.of))
	return int(q.Int64())
}

// Zone returns the offset formatted as +hh:mm.
func (d Date) Zone() string {
	secs := d.OffsetSeconds()
	sign := '+'
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("%c%02d:%02d", sign, secs/3600, secs/60%60)
}

// Start returns the reform point.
func (d Date) Start() Reform { return d.sg.norm() }

// HasTime reports whether d is a date-time value.
func (d Date) HasTime() bool { return d.withTime }

// IsJulian reports whether Julian rules apply to the local day.
func (d Date) IsJulian() bool { return d.sg.IsJulian(d.JD()) }

// IsGregorian reports whether Gregorian rules apply to the local day.
func (d Date) IsGregorian() bool { return !d.IsJulian() }

// IsLeap reports whether the civil year of d is a leap year in the
// calendar in force on d.
func (d Date) IsLeap() bool {
	ns := d.sg.FixedStyle(d.JD())
	_, _, last := JDToCivil(CivilToJD(d.Year(), 3, 1, ns)-1, ns)
	return last == 29
}

// Time returns d as a time.Time in a fixed zone of d's offset.
func (d Date) Time() time.Time {
	secs := DayFractionToSeconds(new(big.Rat).Sub(ratOrZero(d.ajd), unixEpochADC))
	whole, frac := ratFloor(secs)
	nsec, _ := ratFloor(frac.Mul(frac, big.NewRat(1e9, 1)))
	loc := time.UTC
	if off := d.OffsetSeconds(); off != 0 {
		loc = time.FixedZone(d.Zone(), off)
	}
	return time.Unix(whole.Int64(), nsec.Int64()).In(loc)
}

var unixEpochADC = big.NewRat(2*UnixEpochJD-1, 2)

// String formats d as 2001-02-03, or 2001-02-03T04:05:06+07:00 for a
// date-time.
func (d Date) String() string {
	var b strings.Builder
	f := d.view()
	if f.year < 0 {
		fmt.Fprintf(&b, "-%04d", -f.year)
	} else {
		fmt.Fprintf(&b, "%04d", f.year)
	}
	fmt.Fprintf(&b, "-%02d-%02d", f.month, f.day)
	if d.withTime {
		fmt.Fprintf(&b, "T%02d:%02d:%02d%s", f.hour, f.minute, f.second, d.Zone())
	}
	return b.String()
}
