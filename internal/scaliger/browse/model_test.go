package browse

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/msto63/scaliger/foundation/calendar"
	"github.com/msto63/scaliger/internal/scaliger/service"
)

func newModel(t *testing.T, clock time.Time) Model {
	t.Helper()
	svc, err := service.NewService(service.Config{
		Reform:       calendar.Italy,
		MaxStepItems: 10,
		Clock:        calendar.FixedClock(clock),
	})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return New(svc)
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewShowsToday(t *testing.T) {
	m := newModel(t, time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC))
	if m.Year() != 2026 || m.Month() != 10 {
		t.Errorf("New() shows %d-%02d, want 2026-10", m.Year(), m.Month())
	}
	if m.Reform() != "italy" {
		t.Errorf("Reform() = %s, want italy", m.Reform())
	}
	if m.Layout() == nil || m.Layout().Days != 31 {
		t.Errorf("Layout() = %v, want 31 days", m.Layout())
	}
	if !strings.Contains(m.View(), "October 2026") {
		t.Errorf("View() does not show October 2026:\n%s", m.View())
	}
}

func TestNavigation(t *testing.T) {
	start := newModel(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name      string
		keys      []tea.KeyMsg
		wantYear  int
		wantMonth int
	}{
		{"prev month wraps the year", []tea.KeyMsg{{Type: tea.KeyLeft}}, 2025, 12},
		{"next month", []tea.KeyMsg{runes("l")}, 2026, 2},
		{"next year", []tea.KeyMsg{{Type: tea.KeyDown}}, 2027, 1},
		{"prev year", []tea.KeyMsg{runes("k")}, 2025, 1},
		{"back to today", []tea.KeyMsg{runes("k"), runes("h"), runes("t")}, 2026, 1},
		{"twelve months", []tea.KeyMsg{
			runes("l"), runes("l"), runes("l"), runes("l"), runes("l"), runes("l"),
			runes("l"), runes("l"), runes("l"), runes("l"), runes("l"), runes("l"),
		}, 2027, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(start, tt.keys...)
			if m.Year() != tt.wantYear || m.Month() != tt.wantMonth {
				t.Errorf("after %s: %d-%02d, want %d-%02d", tt.name, m.Year(), m.Month(), tt.wantYear, tt.wantMonth)
			}
		})
	}
}

func TestNavigationBeforeYearZero(t *testing.T) {
	m := newModel(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	m.year, m.month = 0, 1
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Year() != -1 || m.Month() != 12 {
		t.Errorf("0000-01 minus a month = %d-%02d, want -1-12", m.Year(), m.Month())
	}
}

func TestReformCycle(t *testing.T) {
	m := newModel(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
	m.year, m.month = 1582, 10
	m.load()
	if m.Layout().Days != 21 {
		t.Errorf("italy 1582-10 days = %d, want 21", m.Layout().Days)
	}

	m = press(m, runes("r"))
	if m.Reform() != "england" || m.Layout().Days != 31 {
		t.Errorf("england 1582-10 = %s/%d days, want england/31", m.Reform(), m.Layout().Days)
	}

	m = press(m, runes("r"), runes("r"), runes("r"))
	if m.Reform() != "italy" {
		t.Errorf("Reform() after a full cycle = %s, want italy", m.Reform())
	}
}

func TestQuitAndHelp(t *testing.T) {
	m := newModel(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))

	next, _ := m.Update(runes("?"))
	if !next.(Model).help.ShowAll {
		t.Error("? should expand the help")
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestWeekNumbersToggle(t *testing.T) {
	m := newModel(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
	before := m.View()
	m = press(m, runes("w"))
	if !m.weekNumbers {
		t.Fatal("w should enable week numbers")
	}
	if m.View() == before {
		t.Error("View() should change with week numbers")
	}
}
