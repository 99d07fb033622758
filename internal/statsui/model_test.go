package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/store"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if cerr := st.Close(); cerr != nil {
			t.Fatalf("close store: %v", cerr)
		}
	})
	base := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	modes := []model.Mode{model.ModeTime, model.ModeWords, model.ModeTime}
	for i, mode := range modes {
		r := model.Result{
			Mode:        mode,
			TextType:    model.TextWords,
			Difficulty:  model.DifficultyEasy,
			StartedAt:   base.Add(time.Duration(i) * time.Hour),
			EndedAt:     base.Add(time.Duration(i)*time.Hour + 30*time.Second),
			WPM:         40 + i*10,
			RawWPM:      45 + i*10,
			Accuracy:    95,
			Consistency: 80,
		}
		if _, err := st.InsertResult(context.Background(), r); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return st
}

func TestOverviewShowsSummary(t *testing.T) {
	m := NewModel(seededStore(t), model.ResultFilter{}, 2)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.View()
	for _, want := range []string{"Overview", "Avg WPM", "Best WPM", "60", "Trends", "Legend:", "Consistency (dotted)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestResultsTabListsRows(t *testing.T) {
	m := NewModel(seededStore(t), model.ResultFilter{}, 1)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabResults {
		t.Fatalf("expected results tab")
	}
	if got := len(m.results.Rows()); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	if first := m.results.Rows()[0]; first[4] != "60" {
		t.Fatalf("expected newest result first, got %v", first)
	}
}

func TestFilterFormAppliesMode(t *testing.T) {
	m := NewModel(seededStore(t), model.ResultFilter{}, 1)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if !m.filtering {
		t.Fatalf("expected filter mode")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("words")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filtering {
		t.Fatalf("filter mode should close on apply: %s", m.form.err)
	}
	if m.filter.Mode != model.ModeWords || len(m.report.Results) != 1 {
		t.Fatalf("expected one words result, got mode %q and %d results", m.filter.Mode, len(m.report.Results))
	}
}

func TestWindowKeys(t *testing.T) {
	m := NewModel(seededStore(t), model.ResultFilter{}, 1)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("=")})
	if m.window != 5 {
		t.Fatalf("expected window 5, got %d", m.window)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	if m.window != 1 {
		t.Fatalf("expected window 1, got %d", m.window)
	}
}

func TestParseFilter(t *testing.T) {
	filter, window, err := ParseFilter(" Time ", "2024-02-01", "5", "3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if filter.Mode != model.ModeTime || filter.Last != 5 || window != 3 || filter.Since == nil {
		t.Fatalf("unexpected filter %+v window %d", filter, window)
	}
	if _, window, err := ParseFilter("", "", "", ""); err != nil || window != 1 {
		t.Fatalf("expected empty filter with window 1, got %d %v", window, err)
	}
	bad := [][4]string{
		{"sprint", "", "", ""},
		{"", "02/01/2024", "", ""},
		{"", "", "-1", ""},
		{"", "", "", "0"},
	}
	for _, in := range bad {
		if _, _, err := ParseFilter(in[0], in[1], in[2], in[3]); err == nil {
			t.Fatalf("expected error for %v", in)
		}
	}
}
