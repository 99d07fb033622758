// Package composer assembles generated tokens into typable character cells.
package composer

import (
	"fmt"

	"github.com/verte-zerg/typetest/internal/model"
)

// WindowLines is the number of lines kept in a time-mode window.
const WindowLines = 3

// TokenSource yields one token per call.
type TokenSource interface {
	Next(cfg model.Config) (string, error)
}

// Composer turns tokens into cells for one session configuration.
type Composer struct {
	src TokenSource
	cfg model.Config
}

// New returns a Composer drawing tokens from src.
func New(src TokenSource, cfg model.Config) *Composer {
	return &Composer{src: src, cfg: cfg}
}

// ComposeWordSegment returns wordCount tokens joined by single spaces, with
// no trailing space.
func (c *Composer) ComposeWordSegment(wordCount int) ([]model.CharCell, error) {
	tokens, err := c.tokens(wordCount)
	if err != nil {
		return nil, err
	}
	return explode(tokens, false), nil
}

// ComposeLine returns tokensPerLine tokens joined by single spaces. The line
// ends with a space cell that joins it to the following line.
func (c *Composer) ComposeLine(tokensPerLine int) ([]model.CharCell, error) {
	tokens, err := c.tokens(tokensPerLine)
	if err != nil {
		return nil, err
	}
	return explode(tokens, true), nil
}

func (c *Composer) tokens(count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("token count must be > 0, got %d", count)
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		tok, err := c.src.Next(c.cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to generate token: %w", err)
		}
		if tok == "" {
			return nil, fmt.Errorf("failed to generate token: empty token")
		}
		out = append(out, tok)
	}
	return out, nil
}

func explode(tokens []string, trailingSpace bool) []model.CharCell {
	cells := make([]model.CharCell, 0, len(tokens)*6)
	for i, tok := range tokens {
		if i > 0 {
			cells = append(cells, model.CharCell{Char: ' '})
		}
		for _, r := range tok {
			cells = append(cells, model.CharCell{Char: r})
		}
	}
	if trailingSpace {
		cells = append(cells, model.CharCell{Char: ' '})
	}
	return cells
}

// Window is the rolling buffer of time-mode lines. Line 0 is active; the
// others are lookahead.
type Window struct {
	composer   *Composer
	lineTokens int
	lines      [][]model.CharCell
}

// NewWindow composes a full window of lines.
func (c *Composer) NewWindow(lineTokens int) (*Window, error) {
	w := &Window{composer: c, lineTokens: lineTokens, lines: make([][]model.CharCell, 0, WindowLines)}
	for i := 0; i < WindowLines; i++ {
		line, err := c.ComposeLine(lineTokens)
		if err != nil {
			return nil, err
		}
		w.lines = append(w.lines, line)
	}
	return w, nil
}

// Active returns the line currently being typed. The slice is shared with the
// window so cell mutations are visible to Lines.
func (w *Window) Active() []model.CharCell {
	return w.lines[0]
}

// Lines returns the window lines, active first.
func (w *Window) Lines() [][]model.CharCell {
	return w.lines
}

// Slide drops the active line and appends a fresh one. On error the window is
// left unchanged.
func (w *Window) Slide() error {
	next, err := w.composer.ComposeLine(w.lineTokens)
	if err != nil {
		return err
	}
	copy(w.lines, w.lines[1:])
	w.lines[len(w.lines)-1] = next
	return nil
}
