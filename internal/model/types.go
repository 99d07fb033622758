// Package model defines shared data structures.
package model

import "time"

// Mode selects how a session terminates.
type Mode string

// Session modes.
const (
	ModeTime  Mode = "time"
	ModeWords Mode = "words"
)

// TextType selects which symbols may replace words in generated text.
type TextType string

// Text types.
const (
	TextWords       TextType = "words"
	TextPunctuation TextType = "punctuation"
	TextNumbers     TextType = "numbers"
	TextMixed       TextType = "mixed"
)

// Difficulty biases word tiers and symbol frequency.
type Difficulty string

// Difficulty levels.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// BackspacePolicy controls whether backspace undoes counter changes.
type BackspacePolicy string

// Backspace policies. BackspaceUndo reverts the classification of the erased
// cell; BackspaceVisual only clears the cell.
const (
	BackspaceUndo   BackspacePolicy = "undo"
	BackspaceVisual BackspacePolicy = "visual"
)

// DefaultLineTokens is the number of tokens per time-mode line.
const DefaultLineTokens = 8

// Config defines session settings. It is immutable for one session.
type Config struct {
	Mode       Mode
	TextType   TextType
	Difficulty Difficulty
	Duration   int
	WordCount  int
	Backspace  BackspacePolicy
	LineTokens int
}

// CellState is the classification of a single character cell.
type CellState int

// Cell states.
const (
	CellPending CellState = iota
	CellCorrect
	CellIncorrect
)

func (s CellState) String() string {
	switch s {
	case CellCorrect:
		return "correct"
	case CellIncorrect:
		return "incorrect"
	default:
		return "pending"
	}
}

// CharCell is one typable character and its state.
type CharCell struct {
	Char  rune
	State CellState
}

// Status is the lifecycle state of a session.
type Status int

// Session statuses.
const (
	StatusIdle Status = iota
	StatusRunning
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	default:
		return "idle"
	}
}

// KeyKind classifies an incoming key event.
type KeyKind int

// Key kinds. KeyOther covers modifiers, arrows and function keys.
const (
	KeyOther KeyKind = iota
	KeyRune
	KeyBackspace
)

// Key is a host-agnostic key event.
type Key struct {
	Kind KeyKind
	Rune rune
}

// RuneKey returns a printable key event.
func RuneKey(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}

// BackspaceKey returns a backspace key event.
func BackspaceKey() Key {
	return Key{Kind: KeyBackspace}
}

// Result is the immutable summary of a finished session.
type Result struct {
	Mode           Mode
	TextType       TextType
	Difficulty     Difficulty
	StartedAt      time.Time
	EndedAt        time.Time
	WPM            int
	RawWPM         int
	Accuracy       int
	Consistency    int
	CorrectCount   int
	IncorrectCount int
	ElapsedSeconds float64
	WPMSamples     []float64
}

// ResultFilter narrows a result history query.
type ResultFilter struct {
	Mode  Mode
	Since *time.Time
	Last  int
}

// StoredResult is a persisted result with its row id.
type StoredResult struct {
	ID int64
	Result
}
