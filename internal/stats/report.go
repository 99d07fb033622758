package stats

import (
	"context"

	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Results          []model.StoredResult
	WPMTrend         []float64
	AccuracyTrend    []float64
	ConsistencyTrend []float64
}

// BuildReport loads results and prepares moving-average trends.
func BuildReport(ctx context.Context, st *store.Store, filter model.ResultFilter, window int) (Report, error) {
	results, err := st.ListResults(ctx, filter)
	if err != nil {
		return Report{}, err
	}

	wpms := make([]float64, len(results))
	accs := make([]float64, len(results))
	cons := make([]float64, len(results))
	for i, r := range results {
		wpms[i] = float64(r.WPM)
		accs[i] = float64(r.Accuracy)
		cons[i] = float64(r.Consistency)
	}
	return Report{
		Results:          results,
		WPMTrend:         MovingAverage(wpms, window),
		AccuracyTrend:    MovingAverage(accs, window),
		ConsistencyTrend: MovingAverage(cons, window),
	}, nil
}
