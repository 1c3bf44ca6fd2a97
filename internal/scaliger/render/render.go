// ============================================================================
// Scaliger - Calendar Arithmetic Service
// ============================================================================
//
// Package:     render
// Description: Month grids rendered with lipgloss
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/scaliger/foundation/calendar"
	"github.com/msto63/scaliger/internal/scaliger/service"
)

// Color Palette
var (
	ColorPrimary = lipgloss.Color("#8B5CF6") // Violet
	ColorAccent  = lipgloss.Color("#F59E0B") // Amber
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorJulian  = lipgloss.Color("#06B6D4") // Cyan
)

// MonthNames are the English month names, January first
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var weekdayNames = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Options controls what a grid shows
type Options struct {
	WeekNumbers bool
}

// Renderer renders month layouts
type Renderer struct {
	title   lipgloss.Style
	header  lipgloss.Style
	day     lipgloss.Style
	julian  lipgloss.Style
	today   lipgloss.Style
	weekNum lipgloss.Style
	opts    Options
}

// New creates a renderer on r; nil uses the default renderer
func New(r *lipgloss.Renderer, opts Options) *Renderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Renderer{
		title:   r.NewStyle().Bold(true).Foreground(ColorPrimary).Align(lipgloss.Center),
		header:  r.NewStyle().Foreground(ColorMuted),
		day:     r.NewStyle(),
		julian:  r.NewStyle().Foreground(ColorJulian),
		today:   r.NewStyle().Reverse(true).Foreground(ColorAccent),
		weekNum: r.NewStyle().Foreground(ColorMuted),
		opts:    opts,
	}
}

// Month renders one month as a grid of weeks
func (r *Renderer) Month(layout *service.MonthLayout) string {
	first := 0
	if layout.WeekStartsMonday {
		first = 1
	}

	names := make([]string, 7)
	for i := range names {
		names[i] = weekdayNames[(first+i)%7]
	}
	header := strings.Join(names, " ")
	if r.opts.WeekNumbers {
		header = "   " + header
	}
	width := lipgloss.Width(header)

	lines := []string{
		r.title.Width(width).Render(fmt.Sprintf("%s %d", MonthNames[layout.Month-1], layout.Year)),
		r.header.Render(header),
	}

	for _, week := range layout.Weeks {
		cells := make([]string, 7)
		for i, c := range week.Days {
			cells[i] = r.cell(c, layout.Reform)
		}
		line := strings.Join(cells, " ")
		if r.opts.WeekNumbers {
			line = r.weekNum.Render(fmt.Sprintf("%2d", week.Number)) + " " + line
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r *Renderer) cell(c service.Cell, sg calendar.Reform) string {
	if c.Day == 0 {
		return "  "
	}
	text := fmt.Sprintf("%2d", c.Day)
	switch {
	case c.Today:
		return r.today.Render(text)
	case sg.IsJulian(c.JD):
		return r.julian.Render(text)
	default:
		return r.day.Render(text)
	}
}

// Months renders several months side by side, perRow to a row
func (r *Renderer) Months(layouts []*service.MonthLayout, perRow int) string {
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(layouts); start += perRow {
		end := min(start+perRow, len(layouts))
		blocks := make([]string, 0, 2*(end-start))
		for i, l := range layouts[start:end] {
			if i > 0 {
				blocks = append(blocks, "  ")
			}
			blocks = append(blocks, r.Month(l))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	}
	return strings.Join(rows, "\n\n")
}
