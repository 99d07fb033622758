// Package matcher scores key events against composed text.
package matcher

import (
	"unicode"

	"github.com/verte-zerg/typetest/internal/model"
)

// Step describes the effect of one applied key event.
type Step struct {
	// Started is set when the event moved the matcher from idle to running.
	Started bool
	// Index is the cell that changed and State its new state.
	Index int
	State model.CellState
	// Exhausted is set when the caret reached the end of the loaded cells.
	Exhausted bool
}

// Matcher is the idle → running → finished state machine that owns the caret
// and the correct/incorrect counters.
type Matcher struct {
	policy model.BackspacePolicy

	status    model.Status
	cells     []model.CharCell
	caret     int
	correct   int
	incorrect int

	// wordsBefore counts words completed on previously loaded lines.
	wordsBefore int
}

// New returns an idle matcher using the given backspace policy.
func New(policy model.BackspacePolicy) *Matcher {
	return &Matcher{policy: policy}
}

// Load replaces the cells being typed and moves the caret to 0. Counters and
// status carry over.
func (m *Matcher) Load(cells []model.CharCell) {
	m.wordsBefore += m.lineWords()
	m.cells = cells
	m.caret = 0
}

// Apply processes one key event. It reports false when the event had no
// effect: keys while finished, non-printable keys, typing past the end, and
// backspace at caret 0 or while idle.
func (m *Matcher) Apply(key model.Key) (Step, bool) {
	if m.status == model.StatusFinished {
		return Step{}, false
	}
	switch key.Kind {
	case model.KeyRune:
		if !unicode.IsPrint(key.Rune) {
			return Step{}, false
		}
		return m.typeRune(key.Rune)
	case model.KeyBackspace:
		if m.status != model.StatusRunning {
			return Step{}, false
		}
		return m.backspace()
	default:
		return Step{}, false
	}
}

func (m *Matcher) typeRune(r rune) (Step, bool) {
	if m.caret >= len(m.cells) {
		return Step{}, false
	}
	var step Step
	if m.status == model.StatusIdle {
		m.status = model.StatusRunning
		step.Started = true
	}
	cell := &m.cells[m.caret]
	if cell.Char == r {
		cell.State = model.CellCorrect
		m.correct++
	} else {
		cell.State = model.CellIncorrect
		m.incorrect++
	}
	step.Index = m.caret
	step.State = cell.State
	m.caret++
	step.Exhausted = m.caret == len(m.cells)
	return step, true
}

func (m *Matcher) backspace() (Step, bool) {
	if m.caret == 0 {
		return Step{}, false
	}
	m.caret--
	cell := &m.cells[m.caret]
	if m.policy != model.BackspaceVisual {
		switch cell.State {
		case model.CellCorrect:
			m.correct--
		case model.CellIncorrect:
			m.incorrect--
		}
	}
	cell.State = model.CellPending
	return Step{Index: m.caret, State: model.CellPending}, true
}

// Finish moves a running matcher to finished. It reports whether the
// transition happened.
func (m *Matcher) Finish() bool {
	if m.status != model.StatusRunning {
		return false
	}
	m.status = model.StatusFinished
	return true
}

// Status returns the lifecycle state.
func (m *Matcher) Status() model.Status {
	return m.status
}

// Caret returns the index of the next cell awaiting input.
func (m *Matcher) Caret() int {
	return m.caret
}

// Current returns the index of the cell carrying the current marker, or -1
// when no cell does.
func (m *Matcher) Current() int {
	if m.status != model.StatusRunning || m.caret >= len(m.cells) {
		return -1
	}
	return m.caret
}

// Counts returns the correct and incorrect counters.
func (m *Matcher) Counts() (correct, incorrect int) {
	return m.correct, m.incorrect
}

// CompletedWords returns the number of word boundaries typed since reset.
func (m *Matcher) CompletedWords() int {
	return m.wordsBefore + m.lineWords()
}

func (m *Matcher) lineWords() int {
	words := 0
	for _, c := range m.cells[:m.caret] {
		if c.Char == ' ' {
			words++
		}
	}
	if m.caret > 0 && m.caret == len(m.cells) && m.cells[m.caret-1].Char != ' ' {
		words++
	}
	return words
}
