// File: arith.go
// Title: Date Arithmetic and Comparison
// Description: Day and month arithmetic, ordering, and derivation of values
//              with a different offset or reform point. Every operation
//              returns a new Date.
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

func (d Date) derive(ajd *big.Rat) Date {
	return newDate(ajd, d.of, d.sg, d.withTime)
}

// Add returns d moved by n days. n may be fractional. The result must stay
// within MaxJD; Plus and Minus check that.
func (d Date) Add(n *big.Rat) Date {
	return d.derive(new(big.Rat).Add(ratOrZero(d.ajd), ratOrZero(n)))
}

// AddDays returns d moved by n whole days.
func (d Date) AddDays(n int) Date {
	return d.Add(ratInt(n))
}

// Sub returns d moved back by n days.
func (d Date) Sub(n *big.Rat) Date {
	return d.derive(new(big.Rat).Sub(ratOrZero(d.ajd), ratOrZero(n)))
}

// SubDays returns d moved back by n whole days.
func (d Date) SubDays(n int) Date {
	return d.Add(ratInt(-n))
}

// Diff returns d - o in days.
func (d Date) Diff(o Date) *big.Rat {
	return new(big.Rat).Sub(ratOrZero(d.ajd), ratOrZero(o.ajd))
}

// Next returns the following day.
func (d Date) Next() Date { return d.AddDays(1) }

// Prev returns the preceding day.
func (d Date) Prev() Date { return d.AddDays(-1) }

func dayCount(operand interface{}) (*big.Rat, bool) {
	switch v := operand.(type) {
	case int:
		return ratInt(v), true
	case int32:
		return big.NewRat(int64(v), 1), true
	case int64:
		return big.NewRat(v, 1), true
	case *big.Int:
		if v == nil {
			return nil, false
		}
		return new(big.Rat).SetInt(v), true
	case *big.Rat:
		if v == nil {
			return nil, false
		}
		return v, true
	default:
		return nil, false
	}
}

// Plus adds a day count of dynamic type: int, int32, int64, *big.Int or
// *big.Rat. Any other operand, including a Date, is an invalid argument
// type. A result beyond MaxJD is an invalid date.
func (d Date) Plus(operand interface{}) (Date, error) {
	n, ok := dayCount(operand)
	if !ok {
		return Date{}, invalidArgumentType("Plus", operand)
	}
	return d.checked("Plus", d.Add(n))
}

func (d Date) checked(operation string, r Date) (Date, error) {
	if _, _, ok := ADCToJD(r.ajd, r.of); !ok {
		return Date{}, invalidDate(operation, map[string]interface{}{"ajd": ratOrZero(r.ajd).RatString()})
	}
	return r, nil
}

// Minus subtracts a day count, returning a Date, or another Date,
// returning the difference in days as *big.Rat.
func (d Date) Minus(operand interface{}) (interface{}, error) {
	if o, ok := operand.(Date); ok {
		return d.Diff(o), nil
	}
	n, ok := dayCount(operand)
	if !ok {
		return nil, invalidArgumentType("Minus", operand)
	}
	r, err := d.checked("Minus", d.Sub(n))
	if err != nil {
		return nil, err
	}
	return r, nil
}

// AddMonths returns d moved by n months, keeping the time of day. If the
// day of month does not exist in the target month, the last day that does
// is used: January 31 plus one month is February 28 or 29.
func (d Date) AddMonths(n int) Date {
	y, m := divMod(d.Year()*12+(d.Month()-1)+n, 12)
	m++

	day := d.Day()
	jd, ok := lastValidDay(y, m, day, d.sg)
	if !ok {
		// Only a reform gap swallowing the first days of the month gets
		// here; count in the calendar d itself is in.
		jd, _ = lastValidDay(y, m, day, d.sg.FixedStyle(d.JD()))
	}
	return d.AddDays(jd - d.JD())
}

// PlusMonths is AddMonths for untrusted n: a target month beyond MaxYear
// is an invalid date.
func (d Date) PlusMonths(n int) (Date, error) {
	if n > 24*MaxYear || n < -24*MaxYear {
		return Date{}, invalidDate("PlusMonths", map[string]interface{}{"months": n})
	}
	if y, _ := divMod(d.Year()*12+(d.Month()-1)+n, 12); !yearInRange(y) {
		return Date{}, invalidDate("PlusMonths", map[string]interface{}{"months": n})
	}
	return d.checked("PlusMonths", d.AddMonths(n))
}

func lastValidDay(y, m, day int, sg Reform) (int, bool) {
	for ; day >= 1; day-- {
		if jd, ok := ValidCivil(y, m, day, sg); ok {
			return jd, true
		}
	}
	return 0, false
}

// SubMonths returns d moved back by n months.
func (d Date) SubMonths(n int) Date { return d.AddMonths(-n) }

// AddYears returns d moved by n years; February 29 becomes February 28 in
// common years.
func (d Date) AddYears(n int) Date { return d.AddMonths(12 * n) }

// Cmp compares the instants of d and o and returns -1, 0 or +1.
func (d Date) Cmp(o Date) int {
	return ratOrZero(d.ajd).Cmp(ratOrZero(o.ajd))
}

// Equal reports whether d and o are the same instant, whatever their
// offsets and reform points.
func (d Date) Equal(o Date) bool { return d.Cmp(o) == 0 }

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool { return d.Cmp(o) < 0 }

// After reports whether d is later than o.
func (d Date) After(o Date) bool { return d.Cmp(o) > 0 }

// SameDay reports whether d and o fall on the same Julian Day Number, each
// read in its own offset.
func (d Date) SameDay(o Date) bool { return d.JD() == o.JD() }

// WithStart returns the same instant read under reform point sg.
func (d Date) WithStart(sg Reform) Date {
	return newDate(d.ajd, d.of, sg, d.withTime)
}

// Italy returns d read under the Italian reform.
func (d Date) Italy() Date { return d.WithStart(Italy) }

// England returns d read under the English reform.
func (d Date) England() Date { return d.WithStart(England) }

// Julian returns d read in the proleptic Julian calendar.
func (d Date) Julian() Date { return d.WithStart(Julian) }

// Gregorian returns d read in the proleptic Gregorian calendar.
func (d Date) Gregorian() Date { return d.WithStart(Gregorian) }

// WithOffset returns the same instant read at offset of, a fraction of a
// day. The result is a date-time.
func (d Date) WithOffset(of *big.Rat) Date {
	return newDate(d.ajd, of, d.sg, true)
}
