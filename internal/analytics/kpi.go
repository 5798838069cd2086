// Package analytics answers the KPI questions the reporting layer asks of
// the ecom schema: revenue totals and trends, top products, co-purchase
// recommendations, and revenue anomaly detection. Only orders with status
// "completed" count toward revenue.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/safar/ecom-analytics/internal/store"
	"github.com/shopspring/decimal"
)

type Service struct {
	schema string
}

func New(schema string) *Service {
	return &Service{schema: schema}
}

type Overview struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	Revenue30d     decimal.Decimal `json:"revenue_30d"`
	ActiveUsers30d int64           `json:"mau_30d"`
}

func (s *Service) Overview(ctx context.Context, q store.DBTX) (*Overview, error) {
	query := fmt.Sprintf(`
		WITH total_rev AS (
			SELECT SUM(oi.quantity * oi.unit_price) AS total_revenue
			FROM %[1]s.orders o
			JOIN %[1]s.order_items oi ON oi.order_id = o.order_id
			WHERE o.status = 'completed'
		),
		rev_30d AS (
			SELECT SUM(oi.quantity * oi.unit_price) AS revenue_30d
			FROM %[1]s.orders o
			JOIN %[1]s.order_items oi ON oi.order_id = o.order_id
			WHERE o.status = 'completed'
			  AND o.order_date >= now()::date - INTERVAL '29 days'
		),
		mau_30d AS (
			SELECT COUNT(DISTINCT user_id) AS mau_30d
			FROM %[1]s.orders
			WHERE status = 'completed'
			  AND order_date >= now()::date - INTERVAL '29 days'
		)
		SELECT tr.total_revenue, r30.revenue_30d, m.mau_30d
		FROM total_rev tr
		CROSS JOIN rev_30d r30
		CROSS JOIN mau_30d m`, s.schema)

	var totalRevenue, revenue30d decimal.NullDecimal
	overview := &Overview{}

	err := q.QueryRowContext(ctx, query).Scan(&totalRevenue, &revenue30d, &overview.ActiveUsers30d)
	if err != nil {
		return nil, fmt.Errorf("kpi overview: %w", err)
	}

	// Empty tables sum to NULL; report zero like the original API.
	overview.TotalRevenue = totalRevenue.Decimal
	overview.Revenue30d = revenue30d.Decimal

	return overview, nil
}

type RevenuePoint struct {
	Period  time.Time       `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueTrend buckets completed revenue by calendar month for the
// trailing window of months, current month included.
func (s *Service) RevenueTrend(ctx context.Context, q store.DBTX, months int) ([]RevenuePoint, error) {
	query := fmt.Sprintf(`
		SELECT date_trunc('month', o.order_date)::date AS period,
		       SUM(oi.quantity * oi.unit_price) AS revenue
		FROM %[1]s.orders o
		JOIN %[1]s.order_items oi ON oi.order_id = o.order_id
		WHERE o.status = 'completed'
		  AND o.order_date >= date_trunc('month', now()) - ($1 - 1) * INTERVAL '1 month'
		GROUP BY 1
		ORDER BY 1`, s.schema)

	rows, err := q.QueryContext(ctx, query, months)
	if err != nil {
		return nil, fmt.Errorf("revenue trend: %w", err)
	}
	defer rows.Close()

	var trend []RevenuePoint
	for rows.Next() {
		var point RevenuePoint
		var revenue decimal.NullDecimal
		if err := rows.Scan(&point.Period, &revenue); err != nil {
			return nil, fmt.Errorf("scan revenue point: %w", err)
		}
		point.Revenue = revenue.Decimal
		trend = append(trend, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return trend, nil
}

type ProductRevenue struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitsSold int64           `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

func (s *Service) TopProducts(ctx context.Context, q store.DBTX, limit int) ([]ProductRevenue, error) {
	query := fmt.Sprintf(`
		SELECT p.product_id, p.name,
		       SUM(oi.quantity) AS units_sold,
		       SUM(oi.quantity * oi.unit_price) AS revenue
		FROM %[1]s.order_items oi
		JOIN %[1]s.orders o ON o.order_id = oi.order_id AND o.status = 'completed'
		JOIN %[1]s.products p ON p.product_id = oi.product_id
		GROUP BY p.product_id, p.name
		ORDER BY revenue DESC
		LIMIT $1`, s.schema)

	rows, err := q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var products []ProductRevenue
	for rows.Next() {
		var product ProductRevenue
		if err := rows.Scan(&product.ProductID, &product.Name, &product.UnitsSold, &product.Revenue); err != nil {
			return nil, fmt.Errorf("scan product revenue: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

func (s *Service) Categories(ctx context.Context, q store.DBTX) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT COALESCE(category, 'Uncategorized')
		FROM %s.products
		ORDER BY 1`, s.schema)

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return categories, nil
}

type Recommendation struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	CoCount   int64  `json:"co_count"`
}

// Recommendations ranks products that share orders with the given product.
func (s *Service) Recommendations(ctx context.Context, q store.DBTX, productID int64, limit int) ([]Recommendation, error) {
	query := fmt.Sprintf(`
		SELECT oi2.product_id, p.name, COUNT(*) AS co_count
		FROM %[1]s.order_items oi1
		JOIN %[1]s.order_items oi2 ON oi1.order_id = oi2.order_id
		JOIN %[1]s.products p ON p.product_id = oi2.product_id
		WHERE oi1.product_id = $1
		  AND oi2.product_id != $1
		GROUP BY oi2.product_id, p.name
		ORDER BY co_count DESC
		LIMIT $2`, s.schema)

	rows, err := q.QueryContext(ctx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	defer rows.Close()

	var recommendations []Recommendation
	for rows.Next() {
		var rec Recommendation
		if err := rows.Scan(&rec.ProductID, &rec.Name, &rec.CoCount); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		recommendations = append(recommendations, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return recommendations, nil
}
