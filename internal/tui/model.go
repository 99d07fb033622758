// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/typetest/internal/config"
	"github.com/verte-zerg/typetest/internal/engine"
	"github.com/verte-zerg/typetest/internal/model"
	statsPkg "github.com/verte-zerg/typetest/internal/stats"
	"github.com/verte-zerg/typetest/internal/store"
)

const contentWidthRatio = 0.70

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle        = lipgloss.NewStyle().
				Padding(1, 3).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Params configures a typing Model.
type Params struct {
	Config model.Config
	// Store persists finished results. Nil disables history.
	Store  *store.Store
	Logger *zap.Logger
	// EngineOptions are passed to the session controller. The scheduler and
	// logger are set by the model.
	EngineOptions []engine.Option
	// Now overrides the wall clock.
	Now func() time.Time
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	ctrl  *engine.Controller
	sched *teaScheduler
	store *store.Store
	log   *zap.Logger
	keys  keyMap
	help  help.Model

	width  int
	height int

	result *model.Result
	errMsg string

	lastWPM int
	lastAcc int
	hasLast bool
	allWPM  float64
	count   int
}

// NewModel constructs a typing TUI model with an idle session.
func NewModel(p Params) (*Model, error) {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	m := &Model{
		sched: newTeaScheduler(now),
		store: p.Store,
		log:   log,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
	opts := append([]engine.Option{}, p.EngineOptions...)
	opts = append(opts,
		engine.WithScheduler(m.sched),
		engine.WithLogger(log),
		engine.WithHooks(engine.Hooks{OnFinish: m.onFinish}),
	)
	ctrl, err := engine.New(p.Config, opts...)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	m.loadFooterStats()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case timerFiredMsg:
		m.sched.fire(msg.id)
		return m, m.sched.drain()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cfg := m.ctrl.Config()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.reset(cfg)
		return m, nil
	case key.Matches(msg, m.keys.ToggleMode):
		if cfg.Mode == model.ModeTime {
			cfg.Mode = model.ModeWords
		} else {
			cfg.Mode = model.ModeTime
		}
		m.reset(cfg)
		return m, nil
	case key.Matches(msg, m.keys.NextLength):
		if cfg.Mode == model.ModeTime {
			cfg.Duration = config.NextOption(config.DurationOptions, cfg.Duration)
		} else {
			cfg.WordCount = config.NextOption(config.WordCountOptions, cfg.WordCount)
		}
		m.reset(cfg)
		return m, nil
	case key.Matches(msg, m.keys.CycleText):
		cfg.TextType = config.NextOption(config.TextTypeOptions, cfg.TextType)
		m.reset(cfg)
		return m, nil
	case key.Matches(msg, m.keys.CycleLevel):
		cfg.Difficulty = config.NextOption(config.DifficultyOptions, cfg.Difficulty)
		m.reset(cfg)
		return m, nil
	}
	for _, k := range toEngineKeys(msg) {
		if _, done := m.ctrl.HandleKey(k); done {
			break
		}
	}
	return m, m.sched.drain()
}

func (m *Model) reset(cfg model.Config) {
	if err := m.ctrl.Reset(cfg); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.result = nil
}

func (m *Model) onFinish(r model.Result) {
	m.result = &r
	m.recordFooterResult(r)
	if m.store == nil {
		return
	}
	if _, err := m.store.InsertResult(context.Background(), r); err != nil {
		m.log.Error("failed to save result", zap.Error(err))
		m.errMsg = fmt.Sprintf("failed to save result: %v", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.result != nil {
		body = renderResultCard(*m.result, m.cardWidth())
	} else {
		body = m.renderSession()
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	footerHeight := lipgloss.Height(footer)
	bodyHeight := m.height - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	placed := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	return placed + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	w := int(float64(m.width) * contentWidthRatio)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) cardWidth() int {
	w := m.contentWidth()
	if w == 0 || w > 60 {
		return 60
	}
	return w
}

func (m *Model) renderSession() string {
	snap := m.ctrl.Snapshot()
	width := m.contentWidth()
	rendered := make([]string, 0, len(snap.Lines))
	for i, line := range snap.Lines {
		caret, current := -1, -1
		if i == 0 {
			caret, current = snap.Caret, snap.Current
		}
		styled := buildStyledRunes(line, caret, current)
		if width > 0 {
			rendered = append(rendered, wrapStyledRunes(styled, width))
		} else {
			rendered = append(rendered, renderStyledRunes(styled))
		}
	}
	text := strings.Join(rendered, "\n")
	if width > 0 {
		text = lipgloss.NewStyle().Width(width).Render(text)
	}
	return statusStyle.Render(renderStatus(snap)) + "\n\n" + text
}

func renderStatus(snap engine.Snapshot) string {
	cfg := snap.Config
	var progress string
	if cfg.Mode == model.ModeTime {
		progress = fmt.Sprintf("%ds", snap.Seconds)
	} else {
		progress = fmt.Sprintf("%d/%d", snap.CompletedWords, cfg.WordCount)
	}
	return fmt.Sprintf("%s  %s · %s · %s", progress, cfg.Mode, cfg.TextType, cfg.Difficulty)
}

func renderResultCard(r model.Result, width int) string {
	spark := statsPkg.Sparkline(statsPkg.Resample(r.WPMSamples, width-8))
	lines := []string{
		cardValueStyle.Render(fmt.Sprintf("%d WPM", r.WPM)) + "  " + statsPkg.Badge(r.WPM),
		"",
		fmt.Sprintf("raw %d  ·  accuracy %d%%  ·  consistency %d%%", r.RawWPM, r.Accuracy, r.Consistency),
		fmt.Sprintf("chars %d/%d  ·  time %.0fs", r.CorrectCount, r.IncorrectCount, r.ElapsedSeconds),
	}
	if spark != "" {
		lines = append(lines, "", spark)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	sum, err := m.store.Summary(context.Background())
	if err != nil {
		m.log.Error("failed to load result history", zap.Error(err))
		return
	}
	m.count = sum.Count
	m.allWPM = sum.AvgWPM
	m.hasLast = sum.Count > 0
	m.lastWPM = sum.LastWPM
	m.lastAcc = sum.LastAccuracy
}

func (m *Model) recordFooterResult(r model.Result) {
	m.lastWPM = r.WPM
	m.lastAcc = r.Accuracy
	m.hasLast = true
	m.allWPM = (m.allWPM*float64(m.count) + float64(r.WPM)) / float64(m.count+1)
	m.count++
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %d WPM · %d%%", m.lastWPM, m.lastAcc))
		segments = append(segments, fmt.Sprintf("Avg %.1f WPM over %d", m.allWPM, m.count))
	}
	lines := []string{}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	if len(segments) > 0 {
		lines = append(lines, footerStyle.Render(strings.Join(segments, "  ")))
	}
	lines = append(lines, m.help.ShortHelpView(m.keys.ShortHelp()))
	return strings.Join(lines, "\n")
}
