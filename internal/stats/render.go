package stats

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/typetest/internal/model"
)

const (
	terminalWidthBackup = 80
	historyDateLayout   = "2006-01-02 15:04"
)

var headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)

// RenderReport prints the summary, results table and trends of a report.
func RenderReport(w io.Writer, report Report) error {
	color := shouldUseColor(w)
	if err := RenderSummary(w, report.Results, color); err != nil {
		return err
	}
	if len(report.Results) == 0 {
		return nil
	}
	if err := RenderResultsTable(w, report.Results, color); err != nil {
		return err
	}
	return RenderTrends(w, report, terminalWidth(w), color)
}

// RenderSummary prints averages and bests over results.
func RenderSummary(w io.Writer, results []model.StoredResult, color bool) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	var totalWPM, totalRaw, totalAcc, totalCons float64
	best := 0
	for _, r := range results {
		totalWPM += float64(r.WPM)
		totalRaw += float64(r.RawWPM)
		totalAcc += float64(r.Accuracy)
		totalCons += float64(r.Consistency)
		if r.WPM > best {
			best = r.WPM
		}
	}
	count := float64(len(results))
	lines := []string{
		heading("Summary", color),
		fmt.Sprintf("Results: %d", len(results)),
		fmt.Sprintf("Avg WPM: %.1f", totalWPM/count),
		fmt.Sprintf("Best WPM: %d", best),
		fmt.Sprintf("Avg Raw WPM: %.1f", totalRaw/count),
		fmt.Sprintf("Avg Accuracy: %.1f%%", totalAcc/count),
		fmt.Sprintf("Avg Consistency: %.1f%%", totalCons/count),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderResultsTable prints one row per result.
func RenderResultsTable(w io.Writer, results []model.StoredResult, color bool) error {
	if _, err := fmt.Fprintln(w, heading("Results", color)); err != nil {
		return err
	}
	headers := []string{"Date", "Mode", "Text", "Level", "WPM", "Raw", "Acc", "Cons", "Time"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.EndedAt.Local().Format(historyDateLayout),
			string(r.Mode),
			string(r.TextType),
			string(r.Difficulty),
			fmt.Sprintf("%d", r.WPM),
			fmt.Sprintf("%d", r.RawWPM),
			fmt.Sprintf("%d%%", r.Accuracy),
			fmt.Sprintf("%d%%", r.Consistency),
			fmt.Sprintf("%.0fs", r.ElapsedSeconds),
		})
	}
	rightAlign := map[int]bool{4: true, 5: true, 6: true, 7: true, 8: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrends plots the moving averages of a report within width columns.
func RenderTrends(w io.Writer, report Report, width int, color bool) error {
	series := []Series{
		{Name: "WPM", Values: report.WPMTrend},
		{Name: "Accuracy", Values: report.AccuracyTrend},
		{Name: "Consistency", Values: report.ConsistencyTrend},
	}
	return PlotSeries(w, heading("Trends", color), series, plotWidthFor(width), defaultPlotHeight, color)
}

func heading(s string, color bool) string {
	if !color {
		return s
	}
	return headingStyle.Render(s)
}

func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
