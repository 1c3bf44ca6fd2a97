package service

import (
	"context"

	mdwerror "github.com/msto63/scaliger/foundation/core/error"
	"github.com/msto63/scaliger/foundation/calendar"
)

// Cell is one day of a month grid; Day is 0 for padding
type Cell struct {
	Day   int
	JD    int
	Today bool
}

// Week is one row of a month grid
type Week struct {
	Number int // ISO week when weeks start on Monday, else wnum0
	Days   [7]Cell
}

// MonthLayout is a month laid out in weeks
type MonthLayout struct {
	Year             int
	Month            int
	Reform           calendar.Reform
	WeekStartsMonday bool
	Weeks            []Week
	Days             int // days that exist, fewer than usual across a reform gap
}

// Month lays out a month under the named reform. Days lost to a reform
// gap are left out of the grid.
func (s *Service) Month(ctx context.Context, year, month int, reform string) (*MonthLayout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sg, err := s.reform(reform)
	if err != nil {
		return nil, err
	}

	last, ok := calendar.ValidCivil(year, month, -1, sg)
	if !ok || month == 0 || month > 12 || month < -12 {
		return nil, mdwerror.New("invalid month").
			WithCode(mdwerror.CodeInvalidDate).
			WithOperation("service.Month").
			WithDetail("year", year).
			WithDetail("month", month)
	}
	year, month, _ = calendar.JDToCivil(last, sg)

	first := last
	for {
		y, m, _ := calendar.JDToCivil(first-1, sg)
		if y != year || m != month {
			break
		}
		first--
	}

	layout := &MonthLayout{
		Year:             year,
		Month:            month,
		Reform:           sg,
		WeekStartsMonday: s.config.WeekStartsMonday,
		Days:             last - first + 1,
	}

	startDay := 0
	if layout.WeekStartsMonday {
		startDay = 1
	}
	today := calendar.Today(s.config.Clock, sg).JD()

	var week *Week
	for jd := first; jd <= last; jd++ {
		col := (calendar.JDToWeekday(jd) - startDay + 7) % 7
		if week == nil || col == 0 {
			layout.Weeks = append(layout.Weeks, Week{Number: weekNumber(jd, startDay, sg)})
			week = &layout.Weeks[len(layout.Weeks)-1]
		}
		_, _, day := calendar.JDToCivil(jd, sg)
		week.Days[col] = Cell{Day: day, JD: jd, Today: jd == today}
	}

	return layout, nil
}

func weekNumber(jd, startDay int, sg calendar.Reform) int {
	if startDay == 1 {
		_, w, _ := calendar.JDToCommercial(jd, sg)
		return w
	}
	_, w, _ := calendar.JDToWeeknum(jd, 0, sg)
	return w
}
