package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typetest/internal/model"
)

func cells(s string, states ...model.CellState) []model.CharCell {
	out := make([]model.CharCell, 0, len(s))
	for i, r := range []rune(s) {
		cell := model.CharCell{Char: r}
		if i < len(states) {
			cell.State = states[i]
		}
		out = append(out, cell)
	}
	return out
}

func TestBuildStyledRunesCurrentMarker(t *testing.T) {
	runes := buildStyledRunes(cells("ab", model.CellCorrect), 1, 1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined current rune")
	}
}

func TestBuildStyledRunesNoMarkerWhenComplete(t *testing.T) {
	runes := buildStyledRunes(cells("a", model.CellCorrect), 1, -1)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	runes := buildStyledRunes(cells("ab", model.CellCorrect, model.CellIncorrect), 2, -1)
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style showing the expected rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	runes := buildStyledRunes(cells("one two", model.CellCorrect), 1, 1)
	if runes[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesLookaheadLine(t *testing.T) {
	runes := buildStyledRunes(cells("ab cd"), -1, -1)
	for i, r := range runes {
		want := pendingStyle.Render(string("ab cd"[i]))
		if r.s != want {
			t.Fatalf("expected pending style at %d", i)
		}
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	runes := buildStyledRunes(cells("a b", model.CellCorrect, model.CellIncorrect), 2, 2)
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
	if !runes[1].isSpace {
		t.Fatalf("wrong space must still wrap as a space")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	out := wrapStyledRunes(buildStyledRunes(cells("aa bb cc"), -1, -1), 5)
	if got := strings.Count(out, "\n"); got != 1 {
		t.Fatalf("expected 1 line break, got %d in %q", got, out)
	}
}

func TestWordAt(t *testing.T) {
	line := cells("ab cd ")
	tests := []struct {
		caret      int
		start, end int
	}{
		{caret: 0, start: 0, end: 2},
		{caret: 2, start: 3, end: 5},
		{caret: 4, start: 3, end: 5},
		{caret: 5, start: 3, end: 5},
		{caret: 6, start: 3, end: 5},
	}
	for _, tt := range tests {
		start, end, ok := wordAt(line, tt.caret)
		if !ok || start != tt.start || end != tt.end {
			t.Fatalf("caret %d: expected [%d,%d), got [%d,%d) ok=%v", tt.caret, tt.start, tt.end, start, end, ok)
		}
	}
	if _, _, ok := wordAt(cells("  "), 0); ok {
		t.Fatalf("expected no word in blank line")
	}
}

func TestWrapStyledRunesHardBreak(t *testing.T) {
	out := wrapStyledRunes(buildStyledRunes(cells("abcdef"), -1, -1), 4)
	if got := strings.Count(out, "\n"); got != 1 {
		t.Fatalf("expected a hard break, got %q", out)
	}
}
