// File: convert_test.go
// Title: Converter Tests
// Description: Known JDNs, round trips and weekday consistency of the
//              Julian Day Number converters.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package calendar

import (
	"testing"
)

var allReforms = []Reform{Italy, England, Julian, Gregorian}

func TestFloorDivMod(t *testing.T) {
	tests := []struct {
		a, b, q, m int
	}{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{-8, 2, -4, 0},
		{0, 7, 0, 0},
		{-1, 7, -1, 6},
		{-4713, 100, -48, 87},
	}

	for _, tt := range tests {
		q, m := divMod(tt.a, tt.b)
		if q != tt.q || m != tt.m {
			t.Errorf("divMod(%d, %d) = (%d, %d), want (%d, %d)", tt.a, tt.b, q, m, tt.q, tt.m)
		}
	}
}

func TestCivilToJD(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		sg      Reform
		want    int
	}{
		{"julian epoch", -4712, 1, 1, Julian, 0},
		{"day before epoch", -4713, 12, 31, Julian, -1},
		{"unix epoch", 1970, 1, 1, Italy, UnixEpochJD},
		{"y2k", 2000, 1, 1, Italy, 2451545},
		{"leap day 2000", 2000, 2, 29, Italy, 2451604},
		{"last julian day in italy", 1582, 10, 4, Italy, 2299160},
		{"first gregorian day in italy", 1582, 10, 15, Italy, ItalyJD},
		{"last julian day in england", 1752, 9, 2, England, 2361221},
		{"first gregorian day in england", 1752, 9, 14, England, EnglandJD},
		{"english julian date in italy's gregorian era", 1752, 9, 2, Julian, 2361221},
		{"ordinal day 0 is december 31", 2001, 1, 0, Gregorian, 2451910},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CivilToJD(tt.y, tt.m, tt.d, tt.sg); got != tt.want {
				t.Errorf("CivilToJD(%d, %d, %d, %v) = %d, want %d", tt.y, tt.m, tt.d, tt.sg, got, tt.want)
			}
		})
	}
}

func TestJDToCivil(t *testing.T) {
	tests := []struct {
		jd      int
		sg      Reform
		y, m, d int
	}{
		{0, Julian, -4712, 1, 1},
		{0, Italy, -4712, 1, 1},
		{0, Gregorian, -4713, 11, 24},
		{2451604, Italy, 2000, 2, 29},
		{2299160, Italy, 1582, 10, 4},
		{2299161, Italy, 1582, 10, 15},
		{2299161, Julian, 1582, 10, 5},
		{2361221, Italy, 1752, 9, 13},
		{2361221, England, 1752, 9, 2},
	}

	for _, tt := range tests {
		y, m, d := JDToCivil(tt.jd, tt.sg)
		if y != tt.y || m != tt.m || d != tt.d {
			t.Errorf("JDToCivil(%d, %v) = %d-%d-%d, want %d-%d-%d", tt.jd, tt.sg, y, m, d, tt.y, tt.m, tt.d)
		}
	}
}

// sampleJDs covers BCE dates, both reforms and the present.
func sampleJDs() []int {
	var jds []int
	for _, base := range []int{-800000, -2000, 0, 1721424, ItalyJD, EnglandJD, 2451545} {
		for jd := base - 400; jd <= base+400; jd++ {
			jds = append(jds, jd)
		}
	}
	return jds
}

func TestCivilRoundTrip(t *testing.T) {
	for _, sg := range allReforms {
		for _, jd := range sampleJDs() {
			y, m, d := JDToCivil(jd, sg)
			if got := CivilToJD(y, m, d, sg); got != jd {
				t.Fatalf("%v: CivilToJD(JDToCivil(%d)) = %d (via %d-%d-%d)", sg, jd, got, y, m, d)
			}
		}
	}
}

func TestOrdinalRoundTrip(t *testing.T) {
	for _, sg := range allReforms {
		for _, jd := range sampleJDs() {
			y, yd := JDToOrdinal(jd, sg)
			if got := OrdinalToJD(y, yd, sg); got != jd {
				t.Fatalf("%v: OrdinalToJD(JDToOrdinal(%d)) = %d (via %d-%d)", sg, jd, got, y, yd)
			}
		}
	}
}

func TestCommercialRoundTrip(t *testing.T) {
	for _, sg := range []Reform{Julian, Gregorian} {
		for _, jd := range sampleJDs() {
			y, w, d := JDToCommercial(jd, sg)
			if w < 1 || w > 53 || d < 1 || d > 7 {
				t.Fatalf("%v: JDToCommercial(%d) = %d-W%d-%d out of range", sg, jd, y, w, d)
			}
			if got := CommercialToJD(y, w, d, sg); got != jd {
				t.Fatalf("%v: CommercialToJD(JDToCommercial(%d)) = %d (via %d-W%d-%d)", sg, jd, got, y, w, d)
			}
		}
	}
}

func TestWeeknumRoundTrip(t *testing.T) {
	for _, sg := range []Reform{Julian, Gregorian} {
		for _, f := range []int{0, 1} {
			for _, jd := range sampleJDs() {
				y, w, d := JDToWeeknum(jd, f, sg)
				if w < 0 || w > 53 || d < 0 || d > 6 {
					t.Fatalf("%v/%d: JDToWeeknum(%d) = %d-%d-%d out of range", sg, f, jd, y, w, d)
				}
				if got := WeeknumToJD(y, w, d, f, sg); got != jd {
					t.Fatalf("%v/%d: WeeknumToJD(JDToWeeknum(%d)) = %d", sg, f, jd, got)
				}
			}
		}
	}
}

func TestCommercialKnownDates(t *testing.T) {
	tests := []struct {
		jd      int
		y, w, d int
	}{
		{2453003, 2004, 1, 1},  // 2003-12-29
		{2453372, 2004, 53, 6}, // 2005-01-01
		{2453374, 2005, 1, 1},  // 2005-01-03
		{2451545, 1999, 52, 6}, // 2000-01-01
	}

	for _, tt := range tests {
		y, w, d := JDToCommercial(tt.jd, Gregorian)
		if y != tt.y || w != tt.w || d != tt.d {
			t.Errorf("JDToCommercial(%d) = %d-W%d-%d, want %d-W%d-%d", tt.jd, y, w, d, tt.y, tt.w, tt.d)
		}
	}
}

func TestWeeknumKnownDates(t *testing.T) {
	tests := []struct {
		jd, f   int
		y, w, d int
	}{
		{2451545, 0, 2000, 0, 6}, // Saturday 2000-01-01
		{2451546, 0, 2000, 1, 0}, // Sunday 2000-01-02
		{2451545, 1, 2000, 0, 5},
		{2451547, 1, 2000, 1, 0}, // Monday 2000-01-03
	}

	for _, tt := range tests {
		y, w, d := JDToWeeknum(tt.jd, tt.f, Gregorian)
		if y != tt.y || w != tt.w || d != tt.d {
			t.Errorf("JDToWeeknum(%d, %d) = (%d, %d, %d), want (%d, %d, %d)", tt.jd, tt.f, y, w, d, tt.y, tt.w, tt.d)
		}
	}
}

func TestWeekdayConsistency(t *testing.T) {
	if got := JDToWeekday(2451545); got != 6 {
		t.Errorf("JDToWeekday(2000-01-01) = %d, want 6 (Saturday)", got)
	}

	for _, sg := range allReforms {
		for _, jd := range sampleJDs() {
			wday := JDToWeekday(jd)
			_, _, cwday := JDToCommercial(jd, sg)
			if cwday%7 != wday {
				t.Fatalf("%v: jd %d weekday %d, commercial weekday %d", sg, jd, wday, cwday)
			}
			_, _, d0 := JDToWeeknum(jd, 0, sg)
			if d0 != wday {
				t.Fatalf("%v: jd %d weekday %d, sunday-based weeknum day %d", sg, jd, wday, d0)
			}
			_, _, d1 := JDToWeeknum(jd, 1, sg)
			if (d1+1)%7 != wday {
				t.Fatalf("%v: jd %d weekday %d, monday-based weeknum day %d", sg, jd, wday, d1)
			}
		}
	}
}

func TestLeapYears(t *testing.T) {
	tests := []struct {
		y         int
		julian    bool
		gregorian bool
	}{
		{1900, true, false},
		{2000, true, true},
		{2001, false, false},
		{2004, true, true},
		{2100, true, false},
		{-4, true, true},
		{-100, true, false},
		{0, true, true},
	}

	for _, tt := range tests {
		if got := JulianLeap(tt.y); got != tt.julian {
			t.Errorf("JulianLeap(%d) = %v, want %v", tt.y, got, tt.julian)
		}
		if got := GregorianLeap(tt.y); got != tt.gregorian {
			t.Errorf("GregorianLeap(%d) = %v, want %v", tt.y, got, tt.gregorian)
		}
	}

	for y := -500; y <= 2500; y++ {
		want := (y%4 == 0 && y%100 != 0) || y%400 == 0
		if GregorianLeap(y) != want {
			t.Fatalf("GregorianLeap(%d) = %v, want %v", y, !want, want)
		}
	}
}
