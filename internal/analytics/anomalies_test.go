package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func series(revenues ...float64) []DailyRevenue {
	out := make([]DailyRevenue, len(revenues))
	for i, r := range revenues {
		out[i] = DailyRevenue{Day: day(i), Revenue: decimal.NewFromFloat(r)}
	}
	return out
}

func TestDetectAnomaliesEmptySeries(t *testing.T) {
	report := DetectAnomalies(nil, DefaultAnomalyThreshold)

	assert.Empty(t, report.Anomalies)
	assert.Zero(t, report.MeanRevenue)
	assert.Zero(t, report.StdDev)
}

func TestDetectAnomaliesFlatSeries(t *testing.T) {
	report := DetectAnomalies(series(100, 100, 100, 100), DefaultAnomalyThreshold)

	assert.Empty(t, report.Anomalies)
	assert.Equal(t, 100.0, report.MeanRevenue)
	assert.Zero(t, report.StdDev)
}

func TestDetectAnomaliesSpikeFlagged(t *testing.T) {
	// Nine quiet days and one spike; the spike is far past two sigma.
	s := series(100, 100, 100, 100, 100, 100, 100, 100, 100, 1000)
	report := DetectAnomalies(s, DefaultAnomalyThreshold)

	require.Len(t, report.Anomalies, 1)
	assert.Equal(t, day(9), report.Anomalies[0].Day)
	assert.Equal(t, 1000.0, report.Anomalies[0].Revenue)
	assert.Greater(t, report.Anomalies[0].ZScore, 2.0)
	assert.InDelta(t, 190.0, report.MeanRevenue, 1e-9)
}

func TestDetectAnomaliesNegativeDeviation(t *testing.T) {
	s := series(500, 500, 500, 500, 500, 500, 500, 500, 500, 0)
	report := DetectAnomalies(s, DefaultAnomalyThreshold)

	require.Len(t, report.Anomalies, 1)
	assert.Less(t, report.Anomalies[0].ZScore, -2.0)
}

func TestDetectAnomaliesThresholdRaised(t *testing.T) {
	s := series(100, 100, 100, 100, 100, 100, 100, 100, 100, 1000)

	assert.Len(t, DetectAnomalies(s, 2.0).Anomalies, 1)
	assert.Empty(t, DetectAnomalies(s, 10.0).Anomalies)
}
