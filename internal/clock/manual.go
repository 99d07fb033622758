package clock

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by explicit Advance calls. Callbacks run
// synchronously inside Advance in due-time order.
type Manual struct {
	now     time.Time
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	owner *Manual
	at    time.Time
	seq   int
	fn    func()
}

// NewManual returns a Manual scheduler starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// AfterFunc schedules fn at Now()+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.seq++
	t := &manualTimer{owner: m, at: m.now.Add(d), seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Stop removes the timer from the pending set.
func (t *manualTimer) Stop() bool {
	return t.owner.remove(t)
}

// Advance moves virtual time forward by d, firing due callbacks in order.
// Callbacks scheduled while advancing fire too if they fall due in range.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.remove(next)
		m.now = next.at
		next.fn()
	}
	m.now = target
}

// Pending returns the number of scheduled callbacks.
func (m *Manual) Pending() int {
	return len(m.pending)
}

func (m *Manual) nextDue(target time.Time) *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at.Equal(m.pending[j].at) {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].at.Before(m.pending[j].at)
	})
	if first := m.pending[0]; !first.at.After(target) {
		return first
	}
	return nil
}

func (m *Manual) remove(t *manualTimer) bool {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return true
		}
	}
	return false
}
