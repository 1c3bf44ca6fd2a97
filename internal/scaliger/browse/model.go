// ============================================================================
// Scaliger - Calendar Arithmetic Service
// ============================================================================
//
// Package:     browse
// Description: Interactive month browser built on Bubbletea
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/scaliger/internal/scaliger/render"
	"github.com/msto63/scaliger/internal/scaliger/service"
)

// Reforms is the cycle of reform points the browser switches through
var Reforms = []string{"italy", "england", "julian", "gregorian"}

var (
	statusStyle = lipgloss.NewStyle().Foreground(render.ColorMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Model is the Bubbletea model of the month browser
type Model struct {
	service  *service.Service
	renderer *render.Renderer
	keys     keyMap
	help     help.Model

	year        int
	month       int
	reform      int // index into Reforms
	weekNumbers bool

	layout *service.MonthLayout
	err    error
	width  int
}

// New creates a browser showing the month of today
func New(svc *service.Service) Model {
	m := Model{
		service: svc,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	name := svc.DefaultReform().String()
	for i, r := range Reforms {
		if r == name {
			m.reform = i
		}
	}
	m.goToday()
	return m
}

// Year returns the year shown
func (m Model) Year() int { return m.year }

// Month returns the month shown
func (m Model) Month() int { return m.month }

// Reform returns the name of the reform point in use
func (m Model) Reform() string { return Reforms[m.reform] }

// Layout returns the layout shown, nil after an error
func (m Model) Layout() *service.MonthLayout { return m.layout }

func (m *Model) goToday() {
	today, err := m.service.Today(Reforms[m.reform])
	if err != nil {
		m.err = err
		return
	}
	m.year, m.month = today.Year(), today.Month()
	m.load()
}

// shift moves by n months
func (m *Model) shift(n int) {
	idx := m.year*12 + (m.month - 1) + n
	m.year = idx / 12
	m.month = idx%12 + 1
	if idx < 0 && idx%12 != 0 {
		m.year--
		m.month += 12
	}
	m.load()
}

func (m *Model) load() {
	m.renderer = render.New(nil, render.Options{WeekNumbers: m.weekNumbers})
	m.layout, m.err = m.service.Month(context.Background(), m.year, m.month, Reforms[m.reform])
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevMonth):
			m.shift(-1)
		case key.Matches(msg, m.keys.NextMonth):
			m.shift(1)
		case key.Matches(msg, m.keys.PrevYear):
			m.shift(-12)
		case key.Matches(msg, m.keys.NextYear):
			m.shift(12)
		case key.Matches(msg, m.keys.Today):
			m.goToday()
		case key.Matches(msg, m.keys.Reform):
			m.reform = (m.reform + 1) % len(Reforms)
			m.load()
		case key.Matches(msg, m.keys.WeekNums):
			m.weekNumbers = !m.weekNumbers
			m.load()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else if m.layout != nil {
		b.WriteString(m.renderer.Month(m.layout))
		b.WriteString("\n\n")
		status := fmt.Sprintf("reform: %s  days: %d", Reforms[m.reform], m.layout.Days)
		b.WriteString(statusStyle.Render(status))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run starts the browser on the terminal
func Run(svc *service.Service) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
