package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Series is a named sequence of values drawn by PlotSeries.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	plotAxis          = " │ "
	plotScaleNote     = "Each series is scaled to its own min/max."
	brailleBase       = 0x2800
)

// plotStroke dashes a series so overlapping lines stay apart without color.
type plotStroke struct {
	name   string
	period int
	on     int
}

func (s plotStroke) draws(x int) bool {
	if s.period <= 1 {
		return true
	}
	return x%s.period < s.on
}

var plotStrokes = []plotStroke{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
	{name: "dashdot", period: 8, on: 3},
}

var plotColors = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#AF87D7")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#87AF5F")),
}

// Dot bits of a braille cell indexed by [row][column].
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleCanvas is a grid of braille cells addressed in dots, two dots wide
// and four dots tall per cell.
type brailleCanvas struct {
	width  int
	height int
	cells  []uint8
}

func newBrailleCanvas(width, height int) *brailleCanvas {
	return &brailleCanvas{width: width, height: height, cells: make([]uint8, width*height)}
}

func (c *brailleCanvas) set(x, y int) {
	col, row := x/2, y/4
	if x < 0 || y < 0 || col >= c.width || row >= c.height {
		return
	}
	c.cells[row*c.width+col] |= brailleBits[y%4][x%2]
}

func (c *brailleCanvas) mask(col, row int) uint8 {
	return c.cells[row*c.width+col]
}

// PlotSeries writes a braille line chart of series, width cells wide and height
// rows tall. Empty series are skipped; nothing is written when all are empty.
func PlotSeries(w io.Writer, title string, series []Series, width, height int, color bool) error {
	plotted := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			plotted = append(plotted, s)
		}
	}
	if len(plotted) == 0 {
		return nil
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}
	if height <= 0 {
		height = defaultPlotHeight
	}

	canvases := make([]*brailleCanvas, len(plotted))
	lines := []string{}
	if title != "" {
		lines = append(lines, title)
	}
	lines = append(lines, plotScaleNote)
	for i, s := range plotted {
		values := resampleTo(s.Values, width)
		lo, hi := valueRange(values)
		if hi-lo < 1e-9 {
			lo, hi = lo-1, hi+1
		}
		canvases[i] = traceSeries(values, lo, hi, height, plotStrokes[i%len(plotStrokes)])
		lines = append(lines, fmt.Sprintf("%s: min=%.1f max=%.1f", s.Name, lo, hi))
	}

	for row := 0; row < height; row++ {
		var b strings.Builder
		b.WriteString(axisLabel(row, height))
		b.WriteString(plotAxis)
		for col := 0; col < width; col++ {
			var mask uint8
			owner := -1
			for i, c := range canvases {
				if m := c.mask(col, row); m != 0 {
					mask |= m
					if owner < 0 {
						owner = i
					}
				}
			}
			cell := string(rune(brailleBase + int(mask)))
			if color && owner >= 0 {
				cell = plotColors[owner%len(plotColors)].Render(cell)
			}
			b.WriteString(cell)
		}
		lines = append(lines, b.String())
	}
	lines = append(lines, plotLegend(plotted, color), "")

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// plotWidthFor returns the number of plot cells that fit in totalWidth
// columns next to the axis.
func plotWidthFor(totalWidth int) int {
	width := totalWidth - runewidth.StringWidth(axisLabel(0, 1)+plotAxis)
	if width < minPlotWidth {
		return minPlotWidth
	}
	return width
}

func axisLabel(row, height int) string {
	switch {
	case row == 0:
		return "max"
	case row == height-1:
		return "min"
	default:
		return "   "
	}
}

// traceSeries draws values, one per cell column, as a connected line.
func traceSeries(values []float64, lo, hi float64, height int, stroke plotStroke) *brailleCanvas {
	canvas := newBrailleCanvas(len(values), height)
	dotRows := height * 4
	plot := func(x, y int) {
		if stroke.draws(x) {
			canvas.set(x, y)
		}
	}
	prevX, prevY := -1, -1
	for i, v := range values {
		x := i * 2
		y := int(math.Round((hi - v) / (hi - lo) * float64(dotRows-1)))
		y = max(0, min(dotRows-1, y))
		if prevX < 0 {
			plot(x, y)
		} else {
			drawSegment(prevX, prevY, x, y, plot)
		}
		prevX, prevY = x, y
	}
	return canvas
}

// drawSegment walks the dots from (x0, y0) to (x1, y1) with Bresenham's
// algorithm.
func drawSegment(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, sx := direction(x1 - x0)
	dy, sy := direction(y1 - y0)
	dy = -dy
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func direction(d int) (abs, sign int) {
	switch {
	case d < 0:
		return -d, -1
	case d > 0:
		return d, 1
	default:
		return 0, 0
	}
}

func plotLegend(series []Series, color bool) string {
	marker := string(rune(brailleBase + int(brailleBits[0][0])))
	parts := make([]string, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%s %s (%s)", marker, s.Name, plotStrokes[i%len(plotStrokes)].name)
		if color {
			label = plotColors[i%len(plotColors)].Render(label)
		}
		parts[i] = label
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// resampleTo fits values to exactly width points. Longer series are averaged
// in buckets; shorter ones are linearly interpolated.
func resampleTo(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case len(values) > width:
		for i := range out {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		last := len(values) - 1
		for i := range out {
			pos := float64(i) * float64(last) / float64(width-1)
			idx := int(pos)
			if idx >= last {
				out[i] = values[last]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx] + (values[idx+1]-values[idx])*frac
		}
	}
	return out
}

func valueRange(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
