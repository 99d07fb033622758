package composer

import (
	"errors"
	"testing"

	"github.com/verte-zerg/typetest/internal/model"
)

type seqSource struct {
	tokens []string
	pos    int
	err    error
}

func (s *seqSource) Next(model.Config) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	tok := s.tokens[s.pos%len(s.tokens)]
	s.pos++
	return tok, nil
}

func text(cells []model.CharCell) string {
	runes := make([]rune, len(cells))
	for i, c := range cells {
		runes[i] = c.Char
	}
	return string(runes)
}

func TestComposeWordSegment(t *testing.T) {
	c := New(&seqSource{tokens: []string{"the", "fox", "!"}}, model.Config{})
	cells, err := c.ComposeWordSegment(4)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if got := text(cells); got != "the fox ! the" {
		t.Fatalf("unexpected segment %q", got)
	}
	for i, cell := range cells {
		if cell.State != model.CellPending {
			t.Fatalf("cell %d not pending", i)
		}
	}
}

func TestComposeLineHasTrailingSpace(t *testing.T) {
	c := New(&seqSource{tokens: []string{"go", "is", "fun"}}, model.Config{})
	cells, err := c.ComposeLine(3)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if got := text(cells); got != "go is fun " {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestComposePropagatesGenerationError(t *testing.T) {
	boom := errors.New("boom")
	c := New(&seqSource{err: boom}, model.Config{})
	if _, err := c.ComposeWordSegment(2); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestComposeRejectsEmptyToken(t *testing.T) {
	c := New(&seqSource{tokens: []string{""}}, model.Config{})
	if _, err := c.ComposeLine(1); err == nil {
		t.Fatalf("expected error for empty token")
	}
}

func TestWindowSlide(t *testing.T) {
	src := &seqSource{tokens: []string{"a", "b", "c", "d", "e", "f", "g", "h"}}
	w, err := New(src, model.Config{}).NewWindow(2)
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	if len(w.Lines()) != WindowLines {
		t.Fatalf("expected %d lines, got %d", WindowLines, len(w.Lines()))
	}
	second := text(w.Lines()[1])
	third := text(w.Lines()[2])

	if err := w.Slide(); err != nil {
		t.Fatalf("slide: %v", err)
	}
	lines := w.Lines()
	if len(lines) != WindowLines {
		t.Fatalf("expected %d lines after slide, got %d", WindowLines, len(lines))
	}
	if text(lines[0]) != second || text(lines[1]) != third {
		t.Fatalf("lines did not shift: %q %q", text(lines[0]), text(lines[1]))
	}
	if got := text(lines[2]); got != "g h " {
		t.Fatalf("unexpected appended line %q", got)
	}
	if text(w.Active()) != second {
		t.Fatalf("active line should be former second line")
	}
}

func TestWindowSlideFailureKeepsLines(t *testing.T) {
	src := &seqSource{tokens: []string{"x", "y"}}
	w, err := New(src, model.Config{}).NewWindow(1)
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	before := text(w.Active())
	src.err = errors.New("exhausted")
	if err := w.Slide(); err == nil {
		t.Fatalf("expected slide error")
	}
	if text(w.Active()) != before || len(w.Lines()) != WindowLines {
		t.Fatalf("window changed after failed slide")
	}
}
