// Package stats contains speed, accuracy and consistency calculations and
// result reporting.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/typetest/internal/model"
)

const (
	sparkChars = " .:-=+*#%@"
	// charsPerWord is the standard word length used by WPM.
	charsPerWord = 5.0
	// minElapsedSeconds keeps near-instant finishes from dividing by zero.
	minElapsedSeconds = 1.0
)

func minutes(elapsedSeconds float64) float64 {
	if elapsedSeconds < minElapsedSeconds {
		elapsedSeconds = minElapsedSeconds
	}
	return elapsedSeconds / 60.0
}

// NetWPM returns correct characters per five, per elapsed minute, rounded.
func NetWPM(correct int, elapsedSeconds float64) int {
	return int(math.Round(float64(correct) / charsPerWord / minutes(elapsedSeconds)))
}

// RawWPM returns all typed characters per five, per elapsed minute, rounded.
func RawWPM(correct, incorrect int, elapsedSeconds float64) int {
	return int(math.Round(float64(correct+incorrect) / charsPerWord / minutes(elapsedSeconds)))
}

// Accuracy returns the rounded percentage of typed characters that were
// correct. No typed characters yields 0.
func Accuracy(correct, incorrect int) int {
	den := correct + incorrect
	if den < 1 {
		den = 1
	}
	return int(math.Round(float64(correct) / float64(den) * 100))
}

// Consistency scores speed stability as 100 minus the standard deviation of
// the samples, clamped to [0, 100]. Fewer than two samples score 100.
func Consistency(samples []float64) int {
	if len(samples) < 2 {
		return 100
	}
	score := math.Round(100 - math.Sqrt(variance(samples)))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}

func variance(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}

// Tracker accumulates the raw WPM time series of one session.
type Tracker struct {
	samples []float64
}

// Sample appends the raw WPM at the given elapsed time and returns it.
func (t *Tracker) Sample(correct, incorrect int, elapsedSeconds float64) float64 {
	v := float64(RawWPM(correct, incorrect, elapsedSeconds))
	t.samples = append(t.samples, v)
	return v
}

// Samples returns a copy of the series.
func (t *Tracker) Samples() []float64 {
	out := make([]float64, len(t.samples))
	copy(out, t.samples)
	return out
}

// Compute derives the metric fields of a Result from frozen counters.
func Compute(correct, incorrect int, elapsedSeconds float64, samples []float64) model.Result {
	return model.Result{
		WPM:            NetWPM(correct, elapsedSeconds),
		RawWPM:         RawWPM(correct, incorrect, elapsedSeconds),
		Accuracy:       Accuracy(correct, incorrect),
		Consistency:    Consistency(samples),
		CorrectCount:   correct,
		IncorrectCount: incorrect,
		ElapsedSeconds: elapsedSeconds,
		WPMSamples:     samples,
	}
}

// Badge returns a short verdict for a net WPM.
func Badge(wpm int) string {
	switch {
	case wpm >= 80:
		return "Pro level typing!"
	case wpm >= 50:
		return "Great speed!"
	case wpm >= 30:
		return "Good progress!"
	default:
		return "Keep practicing!"
	}
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := valueRange(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Resample reduces values to at most width points by averaging buckets.
// Shorter series are returned as a copy.
func Resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	return resampleTo(values, width)
}
