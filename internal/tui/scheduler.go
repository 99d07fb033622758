package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typetest/internal/clock"
)

// timerFiredMsg is delivered by tea.Tick when a scheduled callback is due.
type timerFiredMsg struct {
	id int
}

// teaScheduler runs clock callbacks on the Bubble Tea update loop. Each
// AfterFunc queues a tea.Tick command; the callback runs when the matching
// timerFiredMsg arrives and only if the timer was not stopped meanwhile.
type teaScheduler struct {
	now     func() time.Time
	nextID  int
	pending map[int]*teaTimer
	queued  []tea.Cmd
}

type teaTimer struct {
	sched *teaScheduler
	id    int
	fn    func()
}

func newTeaScheduler(now func() time.Time) *teaScheduler {
	return &teaScheduler{now: now, pending: map[int]*teaTimer{}}
}

func (s *teaScheduler) Now() time.Time {
	return s.now()
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) clock.Timer {
	s.nextID++
	id := s.nextID
	t := &teaTimer{sched: s, id: id, fn: fn}
	s.pending[id] = t
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return t
}

func (t *teaTimer) Stop() bool {
	if _, ok := t.sched.pending[t.id]; !ok {
		return false
	}
	delete(t.sched.pending, t.id)
	return true
}

// fire runs the callback for id. Stale ids are ignored.
func (s *teaScheduler) fire(id int) {
	t, ok := s.pending[id]
	if !ok {
		return
	}
	delete(s.pending, id)
	t.fn()
}

// drain returns the tick commands queued since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
