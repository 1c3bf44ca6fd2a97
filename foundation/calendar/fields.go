// File: fields.go
// Title: Field Maps
// Description: Decomposed date fields as handed over by a parser, and the
//              checks that turn them into a JDN and a day fraction.
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
	"sort"
	"strings"
)

// Field names a date or time component.
type Field string

// Recognized fields.
const (
	FieldJD          Field = "jd"
	FieldYear        Field = "year"
	FieldYDay        Field = "yday"
	FieldMon         Field = "mon"
	FieldMDay        Field = "mday"
	FieldCWYear      Field = "cwyear"
	FieldCWeek       Field = "cweek"
	FieldCWDay       Field = "cwday"
	FieldWNum0       Field = "wnum0"
	FieldWNum1       Field = "wnum1"
	FieldWDay        Field = "wday"
	FieldHour        Field = "hour"
	FieldMin         Field = "min"
	FieldSec         Field = "sec"
	FieldSecFraction Field = "sec_fraction"
	FieldSeconds     Field = "seconds" // since the Unix epoch
	FieldOffset      Field = "offset"  // seconds east of UTC
)

// AllFields lists the recognized fields.
var AllFields = []Field{
	FieldJD, FieldYear, FieldYDay, FieldMon, FieldMDay,
	FieldCWYear, FieldCWeek, FieldCWDay, FieldWNum0, FieldWNum1, FieldWDay,
	FieldHour, FieldMin, FieldSec, FieldSecFraction, FieldSeconds, FieldOffset,
}

// ParseField returns the Field named s.
func ParseField(s string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllFields {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// Fields maps fields to exact values. A missing key means the field is
// unknown; nil values are treated as missing.
type Fields map[Field]*big.Rat

// Has reports whether f is present.
func (fs Fields) Has(f Field) bool {
	return fs[f] != nil
}

// Get returns a copy of the value of f, or nil.
func (fs Fields) Get(f Field) *big.Rat {
	if v := fs[f]; v != nil {
		return new(big.Rat).Set(v)
	}
	return nil
}

// Int returns the value of f if it is present and integral.
func (fs Fields) Int(f Field) (int, bool) {
	v := fs[f]
	if v == nil || !v.IsInt() || !v.Num().IsInt64() {
		return 0, false
	}
	return int(v.Num().Int64()), true
}

// Set stores a copy of v; nil removes f.
func (fs Fields) Set(f Field, v *big.Rat) {
	if v == nil {
		delete(fs, f)
		return
	}
	fs[f] = new(big.Rat).Set(v)
}

// SetInt stores the integer v.
func (fs Fields) SetInt(f Field, v int) {
	fs[f] = ratInt(v)
}

// Clone returns a copy sharing no values with fs.
func (fs Fields) Clone() Fields {
	out := make(Fields, len(fs))
	for k, v := range fs {
		if v != nil {
			out[k] = new(big.Rat).Set(v)
		}
	}
	return out
}

// String renders the present fields sorted by name, e.g. "mday=1 mon=2".
func (fs Fields) String() string {
	parts := make([]string, 0, len(fs))
	for k, v := range fs {
		if v != nil {
			parts = append(parts, string(k)+"="+v.RatString())
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

// RewriteFields returns fs with seconds since the Unix epoch replaced by jd,
// hour, min, sec and sec_fraction. The epoch count is UTC, so any offset is
// dropped with it. Without seconds, fs is returned unchanged. The day count
// is kept exact, so a count beyond the engine's range fails validation
// instead of wrapping.
func RewriteFields(fs Fields) Fields {
	seconds := fs[FieldSeconds]
	if seconds == nil {
		return fs
	}

	out := fs.Clone()
	days, rest := ratDivMod(seconds, big.NewRat(86400, 1))
	h, rest := ratDivMod(rest, big.NewRat(3600, 1))
	m, rest := ratDivMod(rest, big.NewRat(60, 1))
	s, rest := ratDivMod(rest, big.NewRat(1, 1))

	jd := new(big.Rat).SetInt(days)
	out[FieldJD] = jd.Add(jd, ratInt(UnixEpochJD))
	out[FieldHour] = new(big.Rat).SetInt(h)
	out[FieldMin] = new(big.Rat).SetInt(m)
	out[FieldSec] = new(big.Rat).SetInt(s)
	out[FieldSecFraction] = rest
	delete(out, FieldSeconds)
	delete(out, FieldOffset)
	return out
}

// ValidDateFields returns the JDN named by fs, trying in turn jd, ordinal,
// civil, commercial and the two week-number forms. A form whose fields are
// present but do not name a day does not stop the search, except jd: a jd
// that is not a representable whole number names no day.
func ValidDateFields(fs Fields, sg Reform) (int, bool) {
	if fs.Has(FieldJD) {
		jd, ok := fs.Int(FieldJD)
		if !ok {
			return 0, false
		}
		return ValidJD(jd, sg)
	}

	if y, ok := fs.Int(FieldYear); ok {
		if yd, ok := fs.Int(FieldYDay); ok {
			if jd, ok := ValidOrdinal(y, yd, sg); ok {
				return jd, true
			}
		}
		if m, ok := fs.Int(FieldMon); ok {
			if d, ok := fs.Int(FieldMDay); ok {
				if jd, ok := ValidCivil(y, m, d, sg); ok {
					return jd, true
				}
			}
		}
	}

	wday, hasWDay := fs.Int(FieldWDay)
	cwday, hasCWDay := fs.Int(FieldCWDay)

	if cy, ok := fs.Int(FieldCWYear); ok {
		if cw, ok := fs.Int(FieldCWeek); ok {
			d, hasDay := cwday, hasCWDay
			if !hasDay && hasWDay {
				d, hasDay = wday, true
				if d == 0 {
					d = 7
				}
			}
			if hasDay {
				if jd, ok := ValidCommercial(cy, cw, d, sg); ok {
					return jd, true
				}
			}
		}
	}

	y, hasYear := fs.Int(FieldYear)
	if !hasYear {
		return 0, false
	}

	if w, ok := fs.Int(FieldWNum0); ok {
		d, hasDay := wday, hasWDay
		if !hasDay && hasCWDay {
			d, hasDay = floorMod(cwday, 7), true
		}
		if hasDay {
			if jd, ok := ValidWeeknum(y, w, d, 0, sg); ok {
				return jd, true
			}
		}
	}

	if w, ok := fs.Int(FieldWNum1); ok {
		d, hasDay := 0, false
		switch {
		case hasWDay:
			d, hasDay = floorMod(wday-1, 7), true
		case hasCWDay:
			d, hasDay = floorMod(cwday-1, 7), true
		}
		if hasDay {
			if jd, ok := ValidWeeknum(y, w, d, 1, sg); ok {
				return jd, true
			}
		}
	}

	return 0, false
}

// ValidTimeFields returns the day fraction of the hour, min and sec fields.
func ValidTimeFields(fs Fields) (*big.Rat, bool) {
	h, okH := fs.Int(FieldHour)
	m, okM := fs.Int(FieldMin)
	s, okS := fs.Int(FieldSec)
	if !okH || !okM || !okS {
		return nil, false
	}
	return ValidTime(h, m, s)
}
