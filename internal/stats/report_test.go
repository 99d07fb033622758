package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		result := model.Result{
			Mode:           model.ModeTime,
			TextType:       model.TextWords,
			Difficulty:     model.DifficultyMedium,
			StartedAt:      start,
			EndedAt:        start.Add(30 * time.Second),
			WPM:            40 + 10*i,
			RawWPM:         45 + 10*i,
			Accuracy:       90,
			Consistency:    80,
			CorrectCount:   100,
			IncorrectCount: 10,
			ElapsedSeconds: 30,
			WPMSamples:     []float64{40, 45},
		}
		if _, err := st.InsertResult(ctx, result); err != nil {
			t.Fatalf("insert result: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.ResultFilter{Last: 2}, 2)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Results[0].WPM != 50 || report.Results[1].WPM != 60 {
		t.Fatalf("unexpected results: %+v", report.Results)
	}
	if len(report.WPMTrend) != 2 || report.WPMTrend[1] != 55 {
		t.Fatalf("unexpected WPM trend: %v", report.WPMTrend)
	}

	var buf bytes.Buffer
	if err := RenderReport(&buf, report); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Summary", "Results: 2", "Best WPM: 60", "Avg Accuracy: 90.0%", "Trends", plotScaleNote, "WPM (solid)", "Consistency (dotted)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderReport(&buf, Report{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No results found." {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
