// File: complete.go
// Title: Field Completion
// Description: Fills in the fields a partial input leaves out, so that
//              "March 3rd" or "Friday" can still name a single day. The
//              group of fields the input specifies best wins; missing leading
//              fields of that group come from today.
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

type groupKind int

const (
	groupNone groupKind = iota
	groupTime
	groupOrdinal
	groupCivil
	groupCommercial
	groupWDay
	groupWNum0
	groupWNum1
)

type fieldGroup struct {
	kind   groupKind
	fields []Field
}

// completionGroups is ordered by priority: on equal field counts the
// earlier group wins. Unnamed groups can win the count but are never
// completed.
var completionGroups = []fieldGroup{
	{groupTime, []Field{FieldHour, FieldMin, FieldSec}},
	{groupNone, []Field{FieldJD}},
	{groupOrdinal, []Field{FieldYear, FieldYDay, FieldHour, FieldMin, FieldSec}},
	{groupCivil, []Field{FieldYear, FieldMon, FieldMDay, FieldHour, FieldMin, FieldSec}},
	{groupCommercial, []Field{FieldCWYear, FieldCWeek, FieldCWDay, FieldHour, FieldMin, FieldSec}},
	{groupWDay, []Field{FieldWDay, FieldHour, FieldMin, FieldSec}},
	{groupWNum0, []Field{FieldYear, FieldWNum0, FieldWDay, FieldHour, FieldMin, FieldSec}},
	{groupWNum1, []Field{FieldYear, FieldWNum1, FieldWDay, FieldHour, FieldMin, FieldSec}},
	{groupNone, []Field{FieldCWYear, FieldCWeek, FieldWDay, FieldHour, FieldMin, FieldSec}},
	{groupNone, []Field{FieldYear, FieldWNum0, FieldCWDay, FieldHour, FieldMin, FieldSec}},
	{groupNone, []Field{FieldYear, FieldWNum1, FieldCWDay, FieldHour, FieldMin, FieldSec}},
}

// bestGroup returns the group with the most present fields, or nil when
// no group has any.
func bestGroup(fs Fields) (*fieldGroup, int) {
	var best *fieldGroup
	bestCount := 0
	for i := range completionGroups {
		g := &completionGroups[i]
		n := 0
		for _, f := range g.fields {
			if fs.Has(f) {
				n++
			}
		}
		if n > bestCount {
			best, bestCount = g, n
		}
	}
	return best, bestCount
}

func todayField(today Date, f Field) int {
	switch f {
	case FieldJD:
		return today.JD()
	case FieldYear:
		return today.Year()
	case FieldYDay:
		return today.YDay()
	case FieldMon:
		return today.Month()
	case FieldMDay:
		return today.Day()
	case FieldCWYear:
		return today.CWYear()
	case FieldCWeek:
		return today.CWeek()
	case FieldCWDay:
		return today.CWDay()
	case FieldWNum0:
		return today.WNum0()
	case FieldWNum1:
		return today.WNum1()
	case FieldWDay:
		return today.Weekday()
	case FieldHour:
		return today.Hour()
	case FieldMin:
		return today.Minute()
	case FieldSec:
		return today.Second()
	default:
		return 0
	}
}

// fillLeading copies from today every field of g that precedes the first
// present one.
func fillLeading(fs Fields, g *fieldGroup, today Date) {
	for _, f := range g.fields {
		if fs.Has(f) {
			return
		}
		fs.SetInt(f, todayField(today, f))
	}
}

func setDefault(fs Fields, f Field, v int) {
	if !fs.Has(f) {
		fs.SetInt(f, v)
	}
}

// CompleteFields returns a copy of fs with the missing fields of its best
// specified group filled in:
//
//   - ordinal: year from today, yday 1;
//   - civil, commercial and week-number groups: leading fields from today
//     up to the first given one, then month/day/week 1 and week-number
//     weekday 0;
//   - weekday only: the day of that weekday in today's week (Sunday first);
//   - time only: today's jd when withTime is set.
//
// hour, min and sec default to 0 and a leap second 60 becomes 59.
func CompleteFields(fs Fields, today Date, withTime bool) Fields {
	out := fs.Clone()
	g, present := bestGroup(out)

	if g != nil && g.kind != groupNone && present != len(g.fields) {
		switch g.kind {
		case groupOrdinal:
			setDefault(out, FieldYear, today.Year())
			setDefault(out, FieldYDay, 1)
		case groupCivil:
			fillLeading(out, g, today)
			setDefault(out, FieldMon, 1)
			setDefault(out, FieldMDay, 1)
		case groupCommercial:
			fillLeading(out, g, today)
			setDefault(out, FieldCWeek, 1)
			setDefault(out, FieldCWDay, 1)
		case groupWDay:
			if !out.Has(FieldJD) {
				if wday, ok := out.Int(FieldWDay); ok {
					out.SetInt(FieldJD, today.JD()-today.Weekday()+wday)
				}
			}
		case groupWNum0:
			fillLeading(out, g, today)
			setDefault(out, FieldWNum0, 0)
			setDefault(out, FieldWDay, 0)
		case groupWNum1:
			fillLeading(out, g, today)
			setDefault(out, FieldWNum1, 0)
			setDefault(out, FieldWDay, 0)
		}
	}

	if g != nil && g.kind == groupTime && withTime {
		setDefault(out, FieldJD, today.JD())
	}

	setDefault(out, FieldHour, 0)
	setDefault(out, FieldMin, 0)
	setDefault(out, FieldSec, 0)
	if sec := out[FieldSec]; sec.Cmp(big.NewRat(59, 1)) > 0 {
		out.SetInt(FieldSec, 59)
	}
	return out
}

// FromFields builds a Date from a partial field map: epoch seconds are
// rewritten first, missing fields are completed against clock's today, and
// the result is validated. With withTime unset the time fields are ignored
// and a date value is returned; otherwise sec_fraction and the offset (in
// seconds) are applied as well.
func FromFields(fs Fields, sg Reform, clock Clock, withTime bool) (Date, error) {
	fs = CompleteFields(RewriteFields(fs), Today(clock, sg), withTime)

	jd, ok := ValidDateFields(fs, sg)
	if !ok {
		return Date{}, invalidDate("FromFields", map[string]interface{}{"fields": fs.String()})
	}
	if !withTime {
		return JD(jd, sg), nil
	}

	fr, ok := ValidTimeFields(fs)
	if !ok {
		return Date{}, invalidDate("FromFields", map[string]interface{}{"fields": fs.String()})
	}
	fr.Add(fr, SecondsToDayFraction(fs[FieldSecFraction]))
	of := SecondsToDayFraction(fs[FieldOffset])
	ajd := JDToADC(jd, fr, of)
	if _, _, ok := ADCToJD(ajd, of); !ok {
		return Date{}, invalidDate("FromFields", map[string]interface{}{"fields": fs.String()})
	}
	return newDate(ajd, of, sg, true), nil
}
