// File: fraction.go
// Title: Day Fractions and Offsets
// Description: Exact conversions between astronomical day counts, Julian Day
//              Numbers with a day fraction, and hour/minute/second splits of a
//              day fraction. Also the fixed affine day counts (MJD, AMJD, LD).
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

// Epoch constants of the affine day counts.
const (
	// MJDEpochJD is the JDN of Modified Julian Day 0 (1858-11-17).
	MJDEpochJD = 2400001
	// LDEpochJD is the JDN of Lilian Day 0, the day before the Italian reform.
	LDEpochJD = 2299160
	// UnixEpochJD is the JDN of 1970-01-01.
	UnixEpochJD = 2440588
)

// Range of the engine. Values whose local JDN or year falls outside are
// rejected as invalid dates.
const (
	// MaxJD bounds the absolute value of a JDN.
	MaxJD = 1 << 40
	// MaxYear bounds the absolute value of a year field.
	MaxYear = 1 << 31
)

func jdInRange(jd int) bool { return jd >= -MaxJD && jd <= MaxJD }

func yearInRange(y int) bool { return y >= -MaxYear && y <= MaxYear }

// fieldsInRange reports whether every day, week and year-day field is
// small enough that converting it cannot overflow.
func fieldsInRange(vs ...int) bool {
	for _, v := range vs {
		if !jdInRange(v) {
			return false
		}
	}
	return true
}

var (
	ratHalf      = big.NewRat(1, 2)
	ratHour      = big.NewRat(1, 24)
	ratMinute    = big.NewRat(1, 1440)
	ratSecond    = big.NewRat(1, 86400)
	amjdEpochADC = big.NewRat(4800001, 2) // ADC of MJD 0 at midnight
)

// ratFloor returns floor(r) and r - floor(r).
func ratFloor(r *big.Rat) (*big.Int, *big.Rat) {
	// Rat denominators are positive, so Euclidean division is floored.
	q := new(big.Int).Div(r.Num(), r.Denom())
	rem := new(big.Rat).Sub(r, new(big.Rat).SetInt(q))
	return q, rem
}

// ratDivMod returns floor(r/unit) and r - unit*floor(r/unit).
func ratDivMod(r, unit *big.Rat) (*big.Int, *big.Rat) {
	q, _ := ratFloor(new(big.Rat).Quo(r, unit))
	rem := new(big.Rat).Sub(r, new(big.Rat).Mul(unit, new(big.Rat).SetInt(q)))
	return q, rem
}

func ratInt(n int) *big.Rat {
	return new(big.Rat).SetInt64(int64(n))
}

func ratOrZero(r *big.Rat) *big.Rat {
	if r == nil {
		return new(big.Rat)
	}
	return r
}

func ratCopy(r *big.Rat) *big.Rat {
	return new(big.Rat).Set(ratOrZero(r))
}

// ADCToJD splits an astronomical day count into the civil JDN and the
// fraction of the local day, given the UTC offset. fr is in [0, 1). ok is
// false when the JDN lies beyond MaxJD.
func ADCToJD(ajd, of *big.Rat) (jd int, fr *big.Rat, ok bool) {
	local := new(big.Rat).Add(ratOrZero(ajd), ratOrZero(of))
	local.Add(local, ratHalf)
	q, fr := ratFloor(local)
	if !q.IsInt64() || !jdInRange(int(q.Int64())) {
		return 0, fr, false
	}
	return int(q.Int64()), fr, true
}

// JDToADC is the inverse of ADCToJD.
func JDToADC(jd int, fr, of *big.Rat) *big.Rat {
	ajd := ratInt(jd)
	ajd.Add(ajd, ratOrZero(fr))
	ajd.Sub(ajd, ratOrZero(of))
	return ajd.Sub(ajd, ratHalf)
}

// DayFractionToTime splits a day fraction into hour, minute, second and the
// remaining fraction of a second.
func DayFractionToTime(fr *big.Rat) (h, min, s int, sf *big.Rat) {
	hq, rest := ratDivMod(ratOrZero(fr), ratHour)
	mq, rest := ratDivMod(rest, ratMinute)
	sq, rest := ratDivMod(rest, ratSecond)
	h, min, s = int(hq.Int64()), int(mq.Int64()), int(sq.Int64())
	sf = rest.Mul(rest, big.NewRat(86400, 1))
	return h, min, s, sf
}

// TimeToDayFraction returns h/24 + min/1440 + s/86400.
func TimeToDayFraction(h, min, s int) *big.Rat {
	fr := new(big.Rat).Mul(ratInt(h), ratHour)
	fr.Add(fr, new(big.Rat).Mul(ratInt(min), ratMinute))
	return fr.Add(fr, new(big.Rat).Mul(ratInt(s), ratSecond))
}

// SecondsToDayFraction returns s/86400.
func SecondsToDayFraction(s *big.Rat) *big.Rat {
	return new(big.Rat).Mul(ratOrZero(s), ratSecond)
}

// DayFractionToSeconds returns fr*86400.
func DayFractionToSeconds(fr *big.Rat) *big.Rat {
	return new(big.Rat).Mul(ratOrZero(fr), big.NewRat(86400, 1))
}

// ADCToAMJD returns the astronomical modified Julian day of ajd.
func ADCToAMJD(ajd *big.Rat) *big.Rat {
	return new(big.Rat).Sub(ratOrZero(ajd), amjdEpochADC)
}

// AMJDToADC is the inverse of ADCToAMJD.
func AMJDToADC(amjd *big.Rat) *big.Rat {
	return new(big.Rat).Add(ratOrZero(amjd), amjdEpochADC)
}

// JDToMJD returns the Modified Julian Day of jd.
func JDToMJD(jd int) int { return jd - MJDEpochJD }

// MJDToJD is the inverse of JDToMJD.
func MJDToJD(mjd int) int { return mjd + MJDEpochJD }

// JDToLD returns the Lilian Day of jd.
func JDToLD(jd int) int { return jd - LDEpochJD }

// LDToJD is the inverse of JDToLD.
func LDToJD(ld int) int { return ld + LDEpochJD }
