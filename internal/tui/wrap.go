package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typetest/internal/model"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes styles one line of cells. caret selects the highlighted
// word and is -1 for lookahead lines; current is the underlined cell or -1.
func buildStyledRunes(cells []model.CharCell, caret, current int) []styledRune {
	wordStart, wordEnd := -1, -1
	if caret >= 0 {
		if s, e, ok := wordAt(cells, caret); ok {
			wordStart, wordEnd = s, e
		}
	}

	out := make([]styledRune, 0, len(cells))
	for i, cell := range cells {
		displayed := cell.Char
		style := pendingStyle
		switch cell.State {
		case model.CellCorrect:
			style = correctStyle
		case model.CellIncorrect:
			style = incorrectStyle
			if cell.Char == ' ' {
				displayed = '•'
			}
		default:
			if i >= wordStart && i < wordEnd {
				style = currentWordStyle
			}
		}
		if i == current {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: cell.Char == ' ',
		})
	}
	return out
}

// wordAt returns the bounds of the word holding index i. On a space it picks
// the following word, and past the last word it picks the last one.
func wordAt(cells []model.CharCell, i int) (start, end int, ok bool) {
	if i >= len(cells) {
		i = len(cells) - 1
	}
	for i >= 0 && i < len(cells) && cells[i].Char == ' ' {
		i++
	}
	if i < 0 || i >= len(cells) {
		i = len(cells) - 1
		for i >= 0 && cells[i].Char == ' ' {
			i--
		}
		if i < 0 {
			return 0, 0, false
		}
	}
	start, end = i, i
	for start > 0 && cells[start-1].Char != ' ' {
		start--
	}
	for end < len(cells) && cells[end].Char != ' ' {
		end++
	}
	return start, end, true
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks runes into lines no wider than width, preferring the
// last space on the line as the break point. The breaking space is dropped.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var lines []string
	start, lineWidth, lastSpace := 0, 0, -1
	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && i > start {
			if lastSpace >= start {
				lines = append(lines, renderStyledRunes(runes[start:lastSpace]))
				start = lastSpace + 1
			} else {
				lines = append(lines, renderStyledRunes(runes[start:i]))
				start = i
			}
			lineWidth = 0
			for _, r := range runes[start:i] {
				lineWidth += r.width
			}
			lastSpace = -1
			continue
		}
		lineWidth += item.width
		if item.isSpace {
			lastSpace = i
		}
		i++
	}
	lines = append(lines, renderStyledRunes(runes[start:]))
	return strings.Join(lines, "\n")
}
