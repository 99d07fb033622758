package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typetest/internal/config"
	"github.com/verte-zerg/typetest/internal/engine"
	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/store"
)

func newTestModel(t *testing.T, cfg model.Config, st *store.Store) *Model {
	t.Helper()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m, err := NewModel(Params{
		Config:        cfg,
		Store:         st,
		EngineOptions: []engine.Option{engine.WithSeed(7)},
		Now:           func() time.Time { return fixed },
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func keyFor(r rune) tea.KeyMsg {
	if r == ' ' {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func pendingID(t *testing.T, m *Model) int {
	t.Helper()
	if len(m.sched.pending) != 1 {
		t.Fatalf("expected one pending timer, got %d", len(m.sched.pending))
	}
	for id := range m.sched.pending {
		return id
	}
	return 0
}

func TestFirstKeySchedulesTick(t *testing.T) {
	cfg := config.Default()
	cfg.Duration = 15
	m := newTestModel(t, cfg, nil)
	first := m.ctrl.Snapshot().Lines[0][0].Char
	_, cmd := m.Update(keyFor(first))
	if cmd == nil {
		t.Fatalf("expected tick command after first key")
	}
	pendingID(t, m)
	if m.ctrl.Snapshot().Status != model.StatusRunning {
		t.Fatalf("expected running session")
	}
}

func TestTimeModeFinishesAfterTicks(t *testing.T) {
	cfg := config.Default()
	cfg.Duration = 15
	m := newTestModel(t, cfg, nil)
	m.Update(keyFor(m.ctrl.Snapshot().Lines[0][0].Char))
	for i := 0; i < 15; i++ {
		m.Update(timerFiredMsg{id: pendingID(t, m)})
	}
	if m.result == nil {
		t.Fatalf("expected result after countdown")
	}
	if len(m.sched.pending) != 0 {
		t.Fatalf("expected no pending timers after finish")
	}
	if view := m.View(); !strings.Contains(view, "WPM") {
		t.Fatalf("expected result card, got %q", view)
	}
}

func TestRestartIgnoresStaleTick(t *testing.T) {
	m := newTestModel(t, config.Default(), nil)
	m.Update(keyFor(m.ctrl.Snapshot().Lines[0][0].Char))
	stale := pendingID(t, m)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if len(m.sched.pending) != 0 {
		t.Fatalf("restart must cancel the pending tick")
	}
	m.Update(timerFiredMsg{id: stale})
	snap := m.ctrl.Snapshot()
	if snap.Status != model.StatusIdle || snap.Seconds != config.Default().Duration {
		t.Fatalf("stale tick changed the new session: %+v", snap)
	}
}

func TestSettingKeysResetSession(t *testing.T) {
	m := newTestModel(t, config.Default(), nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	cfg := m.ctrl.Config()
	if cfg.Mode != model.ModeWords {
		t.Fatalf("expected words mode, got %s", cfg.Mode)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if got := m.ctrl.Config().WordCount; got != 50 {
		t.Fatalf("expected next word count 50, got %d", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	if got := m.ctrl.Config().TextType; got != model.TextPunctuation {
		t.Fatalf("expected punctuation text, got %s", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	if got := m.ctrl.Config().Difficulty; got != model.DifficultyMedium {
		t.Fatalf("expected medium difficulty, got %s", got)
	}
}

func TestWordModeResultIsStored(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			t.Fatalf("close store: %v", cerr)
		}
	}()
	cfg := config.Default()
	cfg.Mode = model.ModeWords
	cfg.WordCount = 10
	m := newTestModel(t, cfg, st)
	for _, cell := range m.ctrl.Snapshot().Lines[0] {
		m.Update(keyFor(cell.Char))
	}
	if m.result == nil || m.result.Accuracy != 100 {
		t.Fatalf("expected perfect result, got %+v", m.result)
	}
	results, err := st.ListResults(context.Background(), model.ResultFilter{})
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 1 || results[0].Mode != model.ModeWords {
		t.Fatalf("expected one stored words result, got %+v", results)
	}
	if !m.hasLast || m.lastWPM != m.result.WPM {
		t.Fatalf("footer not updated with the new result")
	}
}

func TestFooterLoadsStoredSummary(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			t.Fatalf("close store: %v", cerr)
		}
	}()
	base := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	for i, wpm := range []int{40, 60} {
		start := base.Add(time.Duration(i) * time.Minute)
		r := model.Result{
			Mode:       model.ModeTime,
			TextType:   model.TextWords,
			Difficulty: model.DifficultyEasy,
			StartedAt:  start,
			EndedAt:    start.Add(30 * time.Second),
			WPM:        wpm,
			Accuracy:   90 + i,
		}
		if _, err := st.InsertResult(context.Background(), r); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	m := newTestModel(t, config.Default(), st)
	if !m.hasLast || m.lastWPM != 60 || m.lastAcc != 91 || m.count != 2 || m.allWPM != 50 {
		t.Fatalf("unexpected footer state: last %d/%d avg %.1f over %d", m.lastWPM, m.lastAcc, m.allWPM, m.count)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, config.Default(), nil)
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		if _, cmd := m.Update(msg); cmd == nil {
			t.Fatalf("expected quit command for %s", msg.String())
		}
	}
}
