package service

import (
	"github.com/msto63/scaliger/foundation/calendar"
)

// Result is a resolved date with every representation derived from it
type Result struct {
	Date calendar.Date
}

// NewResult wraps d
func NewResult(d calendar.Date) *Result {
	return &Result{Date: d}
}

// Map returns the representations keyed by field name. Rationals are
// rendered as exact strings ("2451545/2") and integers as float64 so the
// map can be handed to structpb.NewStruct unchanged.
func (r *Result) Map() map[string]interface{} {
	d := r.Date
	m := map[string]interface{}{
		"date":      d.String(),
		"reform":    d.Start().String(),
		"ajd":       d.AJD().RatString(),
		"amjd":      d.AMJD().RatString(),
		"jd":        float64(d.JD()),
		"mjd":       float64(d.MJD()),
		"ld":        float64(d.LD()),
		"year":      float64(d.Year()),
		"mon":       float64(d.Month()),
		"mday":      float64(d.Day()),
		"yday":      float64(d.YDay()),
		"cwyear":    float64(d.CWYear()),
		"cweek":     float64(d.CWeek()),
		"cwday":     float64(d.CWDay()),
		"wnum0":     float64(d.WNum0()),
		"wnum1":     float64(d.WNum1()),
		"wday":      float64(d.Weekday()),
		"julian":    d.IsJulian(),
		"leap":      d.IsLeap(),
		"with_time": d.HasTime(),
	}
	if d.HasTime() {
		m["hour"] = float64(d.Hour())
		m["min"] = float64(d.Minute())
		m["sec"] = float64(d.Second())
		m["sec_fraction"] = d.SecFraction().RatString()
		m["day_fraction"] = d.DayFraction().RatString()
		m["offset"] = float64(d.OffsetSeconds())
		m["zone"] = d.Zone()
	}
	return m
}
