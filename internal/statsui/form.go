package statsui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typetest/internal/model"
)

const sinceLayout = "2006-01-02"

const (
	fieldMode = iota
	fieldSince
	fieldLast
	fieldWindow
)

// filterForm edits the history filter one text field at a time.
type filterForm struct {
	inputs []textinput.Model
	focus  int
	err    string
}

func newFilterForm() filterForm {
	prompts := []string{"Mode (time/words): ", "Since (YYYY-MM-DD): ", "Last: ", "Window: "}
	f := filterForm{inputs: make([]textinput.Model, len(prompts))}
	for i, prompt := range prompts {
		input := textinput.New()
		input.Prompt = prompt
		input.Cursor.SetMode(cursor.CursorBlink)
		f.inputs[i] = input
	}
	return f
}

// open fills the fields from the active filter and focuses the first one.
func (f *filterForm) open(filter model.ResultFilter, window int) tea.Cmd {
	f.err = ""
	f.inputs[fieldMode].SetValue(string(filter.Mode))
	f.inputs[fieldSince].SetValue("")
	if filter.Since != nil {
		f.inputs[fieldSince].SetValue(filter.Since.Format(sinceLayout))
	}
	f.inputs[fieldLast].SetValue("")
	if filter.Last > 0 {
		f.inputs[fieldLast].SetValue(strconv.Itoa(filter.Last))
	}
	f.inputs[fieldWindow].SetValue(strconv.Itoa(window))
	return f.focusField(0)
}

func (f *filterForm) focusField(idx int) tea.Cmd {
	count := len(f.inputs)
	f.focus = (idx%count + count) % count
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focus {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f *filterForm) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab:
		return f.focusField(f.focus + 1)
	case tea.KeyShiftTab:
		return f.focusField(f.focus - 1)
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *filterForm) parse() (model.ResultFilter, int, error) {
	filter, window, err := ParseFilter(
		f.inputs[fieldMode].Value(),
		f.inputs[fieldSince].Value(),
		f.inputs[fieldLast].Value(),
		f.inputs[fieldWindow].Value(),
	)
	if err != nil {
		f.err = err.Error()
	}
	return filter, window, err
}

func (f *filterForm) setWidth(width int) {
	for i := range f.inputs {
		f.inputs[i].Width = maxInt(10, width-lipgloss.Width(f.inputs[i].Prompt)-2)
	}
}

func (f *filterForm) view() string {
	lines := []string{"Filter (enter to apply, esc to cancel)"}
	for _, input := range f.inputs {
		lines = append(lines, input.View())
	}
	if f.err != "" {
		lines = append(lines, errorStyle.Render(f.err))
	}
	return strings.Join(lines, "\n")
}

// ParseFilter validates textual filter values. Empty values mean no
// restriction; an empty window yields 1.
func ParseFilter(mode, since, last, window string) (model.ResultFilter, int, error) {
	var filter model.ResultFilter
	switch m := model.Mode(strings.ToLower(strings.TrimSpace(mode))); m {
	case "":
	case model.ModeTime, model.ModeWords:
		filter.Mode = m
	default:
		return model.ResultFilter{}, 0, fmt.Errorf("invalid mode %q (use time or words)", mode)
	}

	if since = strings.TrimSpace(since); since != "" {
		parsed, err := time.ParseInLocation(sinceLayout, since, time.Local)
		if err != nil {
			return model.ResultFilter{}, 0, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		filter.Since = &parsed
	}

	if last = strings.TrimSpace(last); last != "" {
		parsed, err := strconv.Atoi(last)
		if err != nil || parsed < 0 {
			return model.ResultFilter{}, 0, fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		filter.Last = parsed
	}

	w := 1
	if window = strings.TrimSpace(window); window != "" {
		parsed, err := strconv.Atoi(window)
		if err != nil || parsed < 1 {
			return model.ResultFilter{}, 0, fmt.Errorf("invalid window (use integer >= 1)")
		}
		w = parsed
	}
	return filter, w, nil
}
