package stats

import (
	"strings"
	"testing"
)

func TestNetWPM(t *testing.T) {
	if got := NetWPM(25, 30); got != 10 {
		t.Fatalf("expected 10 WPM, got %d", got)
	}
	if got := NetWPM(0, 60); got != 0 {
		t.Fatalf("expected 0 WPM, got %d", got)
	}
}

func TestRawWPMCountsAllTyped(t *testing.T) {
	if got := RawWPM(20, 5, 30); got != 10 {
		t.Fatalf("expected 10 raw WPM, got %d", got)
	}
}

func TestWPMFloorsElapsedTime(t *testing.T) {
	if got := NetWPM(5, 0); got != 60 {
		t.Fatalf("expected near-instant finish to use a one second floor, got %d", got)
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		correct, incorrect, want int
	}{
		{18, 2, 90},
		{0, 0, 0},
		{1, 2, 33},
		{2, 1, 67},
	}
	for _, tt := range tests {
		if got := Accuracy(tt.correct, tt.incorrect); got != tt.want {
			t.Fatalf("Accuracy(%d, %d) = %d, want %d", tt.correct, tt.incorrect, got, tt.want)
		}
	}
}

func TestConsistency(t *testing.T) {
	if got := Consistency([]float64{40, 40, 40}); got != 100 {
		t.Fatalf("expected 100 for constant samples, got %d", got)
	}
	if got := Consistency(nil); got != 100 {
		t.Fatalf("expected 100 for empty series, got %d", got)
	}
	if got := Consistency([]float64{75}); got != 100 {
		t.Fatalf("expected 100 for single sample, got %d", got)
	}
	// Population std dev of {30, 50} is 10.
	if got := Consistency([]float64{30, 50}); got != 90 {
		t.Fatalf("expected 90, got %d", got)
	}
	wild := Consistency([]float64{0, 400, 0, 400})
	if wild != 0 {
		t.Fatalf("expected clamped 0 for wild samples, got %d", wild)
	}
	steady := Consistency([]float64{38, 42, 40, 41})
	if steady <= wild || steady > 100 {
		t.Fatalf("expected steady series to score higher, got %d", steady)
	}
}

func TestTrackerSamplesRawWPM(t *testing.T) {
	var tr Tracker
	if got := tr.Sample(10, 0, 6); got != 20 {
		t.Fatalf("expected 20, got %v", got)
	}
	tr.Sample(20, 5, 15)
	samples := tr.Samples()
	if len(samples) != 2 || samples[1] != 20 {
		t.Fatalf("unexpected samples %v", samples)
	}
	samples[0] = -1
	if tr.Samples()[0] != 20 {
		t.Fatalf("samples must be returned as a copy")
	}
}

func TestCompute(t *testing.T) {
	r := Compute(25, 5, 30, []float64{60, 60})
	if r.WPM != 10 || r.RawWPM != 12 || r.Accuracy != 83 || r.Consistency != 100 {
		t.Fatalf("unexpected result %+v", r)
	}
	if r.CorrectCount != 25 || r.IncorrectCount != 5 || r.ElapsedSeconds != 30 {
		t.Fatalf("counters not carried: %+v", r)
	}
}

func TestBadge(t *testing.T) {
	tests := map[int]string{
		95: "Pro level typing!",
		80: "Pro level typing!",
		50: "Great speed!",
		31: "Good progress!",
		12: "Keep practicing!",
	}
	for wpm, want := range tests {
		if got := Badge(wpm); got != want {
			t.Fatalf("Badge(%d) = %q, want %q", wpm, got, want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{5, 5, 5}); got != strings.Repeat("+", 3) {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestResample(t *testing.T) {
	got := Resample([]float64{1, 3, 5, 7}, 2)
	if len(got) != 2 || got[0] != 2 || got[1] != 6 {
		t.Fatalf("unexpected resample %v", got)
	}
	if got := Resample([]float64{1, 2}, 5); len(got) != 2 {
		t.Fatalf("short series should be kept, got %v", got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
