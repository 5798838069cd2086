package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/safar/ecom-analytics/internal/store"
	"github.com/shopspring/decimal"
)

// DefaultAnomalyThreshold is the z-score above which a day is flagged.
const DefaultAnomalyThreshold = 2.0

type DailyRevenue struct {
	Day     time.Time       `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DailyRevenueSeries returns completed revenue per day, oldest first.
func (s *Service) DailyRevenueSeries(ctx context.Context, q store.DBTX) ([]DailyRevenue, error) {
	query := fmt.Sprintf(`
		SELECT date_trunc('day', o.order_date)::date AS day,
		       SUM(oi.quantity * oi.unit_price) AS revenue
		FROM %[1]s.orders o
		JOIN %[1]s.order_items oi ON oi.order_id = o.order_id
		WHERE o.status = 'completed'
		GROUP BY 1
		ORDER BY 1`, s.schema)

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("daily revenue: %w", err)
	}
	defer rows.Close()

	var series []DailyRevenue
	for rows.Next() {
		var day DailyRevenue
		var revenue decimal.NullDecimal
		if err := rows.Scan(&day.Day, &revenue); err != nil {
			return nil, fmt.Errorf("scan daily revenue: %w", err)
		}
		day.Revenue = revenue.Decimal
		series = append(series, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return series, nil
}

type Anomaly struct {
	Day     time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	ZScore  float64   `json:"z_score"`
}

type AnomalyReport struct {
	MeanRevenue float64   `json:"mean_revenue"`
	StdDev      float64   `json:"std_dev"`
	Threshold   float64   `json:"threshold"`
	Anomalies   []Anomaly `json:"anomalies"`
}

// DetectAnomalies flags days whose revenue deviates from the series mean by
// at least threshold standard deviations. Population variance, matching the
// original scoring.
func DetectAnomalies(series []DailyRevenue, threshold float64) *AnomalyReport {
	report := &AnomalyReport{Threshold: threshold}
	if len(series) == 0 {
		return report
	}

	revenues := make([]float64, len(series))
	sum := 0.0
	for i, day := range series {
		revenues[i] = day.Revenue.InexactFloat64()
		sum += revenues[i]
	}
	mean := sum / float64(len(revenues))

	variance := 0.0
	for _, revenue := range revenues {
		variance += (revenue - mean) * (revenue - mean)
	}
	variance /= float64(len(revenues))
	std := math.Sqrt(variance)

	report.MeanRevenue = mean
	report.StdDev = std
	if std == 0 {
		return report
	}

	for i, day := range series {
		z := (revenues[i] - mean) / std
		if math.Abs(z) >= threshold {
			report.Anomalies = append(report.Anomalies, Anomaly{
				Day:     day.Day,
				Revenue: revenues[i],
				ZScore:  z,
			})
		}
	}

	return report
}

// RevenueAnomalies runs the full pipeline: fetch the series, score it.
func (s *Service) RevenueAnomalies(ctx context.Context, q store.DBTX, threshold float64) (*AnomalyReport, error) {
	series, err := s.DailyRevenueSeries(ctx, q)
	if err != nil {
		return nil, err
	}
	return DetectAnomalies(series, threshold), nil
}
