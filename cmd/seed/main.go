package main

import (
	"flag"
	"log"
	"time"

	"github.com/safar/ecom-analytics/internal/config"
	"github.com/safar/ecom-analytics/internal/seed"
)

func main() {
	profilePath := flag.String("profile", "", "YAML seed profile (default: built-in profile)")
	outDir := flag.String("out", "", "output directory for CSVs (default: ECOM_DATA_DIR)")
	rngSeed := flag.Int64("seed", 0, "override the profile's RNG seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	if *outDir == "" {
		*outDir = cfg.Ecom.DataDir
	}

	profile := seed.DefaultProfile()
	if *profilePath != "" {
		profile, err = seed.LoadProfile(*profilePath)
		if err != nil {
			log.Fatalf("Load profile: %v", err)
		}
	}
	if *rngSeed != 0 {
		profile.Seed = *rngSeed
	}

	log.Printf("Generating fixtures into %s (seed=%d, %d users, %d products, %d orders, %d reviews)",
		*outDir, profile.Seed, profile.Users, profile.Products, profile.Orders, profile.Reviews)

	counts, err := seed.NewGenerator(profile, time.Now()).Generate(*outDir)
	if err != nil {
		log.Fatalf("Generate fixtures: %v", err)
	}

	for file, rows := range counts {
		log.Printf("  %s: %d rows", file, rows)
	}
	log.Printf("CSV generation complete")
}
