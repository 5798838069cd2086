package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/safar/ecom-analytics/internal/analytics"
	"github.com/safar/ecom-analytics/internal/config"
	"github.com/safar/ecom-analytics/internal/database"
)

func main() {
	months := flag.Int("months", 12, "revenue trend window in months")
	top := flag.Int("top", 10, "number of top products to show")
	threshold := flag.Float64("threshold", analytics.DefaultAnomalyThreshold, "anomaly z-score threshold")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	svc := analytics.New(cfg.Ecom.Schema)

	overview, err := svc.Overview(ctx, db)
	if err != nil {
		log.Fatalf("Overview: %v", err)
	}

	fmt.Println("== Overview ==")
	fmt.Printf("Total revenue:       %s\n", overview.TotalRevenue.StringFixed(2))
	fmt.Printf("Revenue (30d):       %s\n", overview.Revenue30d.StringFixed(2))
	fmt.Printf("Active users (30d):  %d\n", overview.ActiveUsers30d)

	trend, err := svc.RevenueTrend(ctx, db, *months)
	if err != nil {
		log.Fatalf("Revenue trend: %v", err)
	}

	fmt.Printf("\n== Revenue trend (%d months) ==\n", *months)
	for _, point := range trend {
		fmt.Printf("%s  %s\n", point.Period.Format("2006-01"), point.Revenue.StringFixed(2))
	}

	products, err := svc.TopProducts(ctx, db, *top)
	if err != nil {
		log.Fatalf("Top products: %v", err)
	}

	fmt.Printf("\n== Top %d products ==\n", *top)
	for _, product := range products {
		fmt.Printf("%6d  %-30s  units=%-6d revenue=%s\n",
			product.ProductID, product.Name, product.UnitsSold, product.Revenue.StringFixed(2))
	}

	report, err := svc.RevenueAnomalies(ctx, db, *threshold)
	if err != nil {
		log.Fatalf("Revenue anomalies: %v", err)
	}

	fmt.Printf("\n== Revenue anomalies (|z| >= %.1f) ==\n", report.Threshold)
	fmt.Printf("mean=%.2f std=%.2f\n", report.MeanRevenue, report.StdDev)
	if len(report.Anomalies) == 0 {
		fmt.Println("none")
		return
	}
	for _, anomaly := range report.Anomalies {
		fmt.Printf("%s  revenue=%.2f z=%.2f\n",
			anomaly.Day.Format("2006-01-02"), anomaly.Revenue, anomaly.ZScore)
	}
}
