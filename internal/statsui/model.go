// Package statsui provides the Bubble Tea result history browser.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/stats"
	"github.com/verte-zerg/typetest/internal/store"
)

const (
	tabOverview = iota
	tabResults
)

var (
	navStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true)
	activeNavStyle = navStyle.Copy().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = navStyle.Copy().
				Foreground(lipgloss.Color("#B0B0B0")).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle  = navStyle.Copy().
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea history UI.
type Model struct {
	store  *store.Store
	filter model.ResultFilter
	window int

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	results   table.Model

	width  int
	height int

	filtering bool
	form      filterForm
}

// NewModel constructs a history UI model and loads the first report.
func NewModel(st *store.Store, filter model.ResultFilter, window int) *Model {
	m := &Model{
		store:    st,
		filter:   filter,
		window:   maxInt(1, window),
		tabs:     []string{"Overview", "Results"},
		overview: viewport.New(0, 0),
		results:  newResultsTable(),
		form:     newFilterForm(),
	}
	m.refreshReport()
	return m
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
		m.resize()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filtering {
			return m, m.updateFilter(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "left", "h":
		m.switchTab(-1)
		return tea.ClearScreen
	case "right", "l":
		m.switchTab(1)
		return tea.ClearScreen
	case "=":
		m.window = nextWindow(m.window)
		m.refreshReport()
		return nil
	case "-":
		m.window = prevWindow(m.window)
		m.refreshReport()
		return nil
	case "/":
		m.filtering = true
		return m.form.open(m.filter, m.window)
	case "g", "home":
		if m.activeTab == tabResults {
			m.results.GotoTop()
		} else {
			m.overview.GotoTop()
		}
		return nil
	case "G", "end":
		if m.activeTab == tabResults {
			m.results.GotoBottom()
		} else {
			m.overview.GotoBottom()
		}
		return nil
	}
	var cmd tea.Cmd
	if m.activeTab == tabResults {
		m.results, cmd = m.results.Update(msg)
	} else {
		m.overview, cmd = m.overview.Update(msg)
	}
	return cmd
}

func (m *Model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		return nil
	case tea.KeyEnter:
		filter, window, err := m.form.parse()
		if err != nil {
			return nil
		}
		m.filter = filter
		m.window = window
		m.filtering = false
		m.refreshReport()
		m.resize()
		return nil
	}
	return m.form.update(msg)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	return strings.Join([]string{
		fit(m.renderHeader(), m.width, headerHeight),
		fit(m.renderBody(), m.width, bodyHeight),
		fit(m.renderFooter(), m.width, footerHeight),
	}, "\n")
}

func (m *Model) layoutHeights() (header, body, footer int) {
	header = lipgloss.Height(activeNavStyle.Render("X")) + 1
	footer = 1
	if !m.filtering && m.errMsg != "" {
		footer++
	}
	body = maxInt(1, m.height-header-footer)
	return header, body, footer
}

func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.results.SetWidth(m.width)
	m.results.SetHeight(maxInt(1, bodyHeight-1))
	m.form.setWidth(m.width)
}

func (m *Model) switchTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabResults {
		m.results.Focus()
	} else {
		m.results.Blur()
	}
}

func (m *Model) renderHeader() string {
	tabs := make([]string, len(m.tabs))
	for i, name := range m.tabs {
		if i == m.activeTab {
			tabs[i] = activeNavStyle.Render(name)
		} else {
			tabs[i] = inactiveNavStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n" + mutedStyle.Render(m.filterSummary())
}

func (m *Model) filterSummary() string {
	mode, since, last := "any", "any", "all"
	if m.filter.Mode != "" {
		mode = string(m.filter.Mode)
	}
	if m.filter.Since != nil {
		since = m.filter.Since.Format(sinceLayout)
	}
	if m.filter.Last > 0 {
		last = strconv.Itoa(m.filter.Last)
	}
	summary := fmt.Sprintf("Filter: mode=%s  since=%s  last=%s  window=%d", mode, since, last, m.window)
	if m.width > 0 {
		summary = runewidth.Truncate(summary, m.width, "...")
	}
	return summary
}

func (m *Model) renderFooter() string {
	if m.filtering {
		return mutedStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := mutedStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Filter: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	switch {
	case m.filtering:
		return m.form.view()
	case m.activeTab == tabResults && len(m.report.Results) == 0:
		return "No results found."
	case m.activeTab == tabResults:
		return tableTextStyle.Render(m.results.View())
	default:
		return m.overview.View()
	}
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.filter, m.window)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load history.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.results.SetRows(resultRows(report.Results))
	m.renderOverview()
}

func (m *Model) renderOverview() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, width))
}

func renderOverview(report stats.Report, width int) string {
	if len(report.Results) == 0 {
		return "No results found."
	}
	var buf bytes.Buffer
	if err := stats.RenderTrends(&buf, report, width, true); err != nil {
		return fmt.Sprintf("Failed to render trends: %v", err)
	}
	return strings.TrimRight(summaryCards(report.Results, width)+"\n\n"+buf.String(), "\n")
}

func summaryCards(results []model.StoredResult, width int) string {
	var totalWPM, totalAcc, totalCons float64
	best := 0
	for _, r := range results {
		totalWPM += float64(r.WPM)
		totalAcc += float64(r.Accuracy)
		totalCons += float64(r.Consistency)
		best = maxInt(best, r.WPM)
	}
	n := float64(len(results))
	cards := []string{
		card("Results", strconv.Itoa(len(results))),
		card("Avg WPM", fmt.Sprintf("%.1f", totalWPM/n)),
		card("Best WPM", strconv.Itoa(best)),
		card("Avg Acc", fmt.Sprintf("%.1f%%", totalAcc/n)),
		card("Avg Cons", fmt.Sprintf("%.1f%%", totalCons/n)),
	}
	if width < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cards[:3]...),
		lipgloss.JoinHorizontal(lipgloss.Top, cards[3:]...),
	)
}

func card(label, value string) string {
	return cardStyle.Render(cardLabelStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

func newResultsTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 16},
			{Title: "Mode", Width: 5},
			{Title: "Text", Width: 11},
			{Title: "Level", Width: 6},
			{Title: "WPM", Width: 4},
			{Title: "Raw", Width: 4},
			{Title: "Acc", Width: 4},
			{Title: "Cons", Width: 4},
			{Title: "Time", Width: 5},
		}),
		table.WithHeight(1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1, 0, 0)
	styles.Cell = styles.Cell.Padding(0, 1, 0, 0)
	styles.Selected = styles.Cell.Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	t.SetStyles(styles)
	return t
}

// resultRows lists results newest first.
func resultRows(results []model.StoredResult) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		rows = append(rows, table.Row{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			string(r.Mode),
			string(r.TextType),
			string(r.Difficulty),
			strconv.Itoa(r.WPM),
			strconv.Itoa(r.RawWPM),
			fmt.Sprintf("%d%%", r.Accuracy),
			fmt.Sprintf("%d%%", r.Consistency),
			fmt.Sprintf("%.0fs", r.ElapsedSeconds),
		})
	}
	return rows
}

// fit pads or crops s to exactly width by height cells.
func fit(s string, width, height int) string {
	placed := lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, s)
	return lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(placed)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// nextWindow and prevWindow step the moving-average window in fives.
func nextWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return n / 5 * 5
}
