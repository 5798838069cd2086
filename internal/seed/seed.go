// Package seed writes deterministic CSV fixtures for the ecom schema:
// users.csv, products.csv, orders.csv, order_items.csv and reviews.csv.
// The same profile, seed and reference time produce identical files.
package seed

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/safar/ecom-analytics/internal/models"
)

var countries = []string{
	"United States", "United Kingdom", "Germany", "France", "Canada",
	"Australia", "Japan", "Brazil", "India", "Netherlands", "Spain",
	"Italy", "Sweden", "Mexico", "South Korea",
}

var productWords = []string{
	"Atlas", "Bolt", "Cedar", "Delta", "Ember", "Falcon", "Granite",
	"Harbor", "Indigo", "Juniper", "Kite", "Lumen", "Meridian", "Nimbus",
	"Onyx", "Pioneer", "Quartz", "Ridge", "Summit", "Terra", "Umber",
	"Vertex", "Willow", "Zephyr",
}

var productSuffixes = []string{"Pro", "X", "Plus", "Lite", "Max"}

var reviewFragments = []string{
	"arrived quickly", "exactly as described", "great value for the price",
	"build quality is solid", "would buy again", "packaging was damaged",
	"works as expected", "exceeded my expectations", "not worth the money",
	"customer service was helpful", "stopped working after a week",
	"perfect fit", "color differs from the photos", "easy to set up",
}

// itemCountWeights and quantityWeights match the original generator's
// distributions: most orders have one item, most items quantity one.
var (
	itemCounts       = []int{1, 2, 3, 4}
	itemCountWeights = []float64{0.60, 0.25, 0.10, 0.05}
	quantities       = []int{1, 2, 3}
	quantityWeights  = []float64{0.80, 0.15, 0.05}
)

type Generator struct {
	profile Profile
	rng     *rand.Rand
	now     time.Time
}

// NewGenerator builds a generator whose output is a pure function of
// profile, profile.Seed and now.
func NewGenerator(profile Profile, now time.Time) *Generator {
	return &Generator{
		profile: profile,
		rng:     rand.New(rand.NewSource(profile.Seed)),
		now:     now,
	}
}

// Generate writes all five CSV files into dir, creating it if needed.
// Returns the number of rows written per file name.
func (g *Generator) Generate(dir string) (map[string]int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	counts := make(map[string]int)

	n, err := g.writeUsers(filepath.Join(dir, "users.csv"))
	if err != nil {
		return nil, err
	}
	counts["users.csv"] = n

	n, err = g.writeProducts(filepath.Join(dir, "products.csv"))
	if err != nil {
		return nil, err
	}
	counts["products.csv"] = n

	orderRows, itemRows, err := g.writeOrders(
		filepath.Join(dir, "orders.csv"),
		filepath.Join(dir, "order_items.csv"))
	if err != nil {
		return nil, err
	}
	counts["orders.csv"] = orderRows
	counts["order_items.csv"] = itemRows

	n, err = g.writeReviews(filepath.Join(dir, "reviews.csv"))
	if err != nil {
		return nil, err
	}
	counts["reviews.csv"] = n

	return counts, nil
}

func (g *Generator) writeUsers(path string) (int, error) {
	return writeCSV(path, []string{"user_id", "email", "signup_date", "country", "user_type"},
		g.profile.Users, func(i int) []string {
			id := i + 1
			signup := g.pastDate(3 * 365)
			userType := models.UserTypeRegular
			if g.rng.Float64() < 0.5 {
				userType = models.UserTypeVIP
			}
			return []string{
				strconv.Itoa(id),
				fmt.Sprintf("user%d@example.com", id),
				signup.Format("2006-01-02"),
				countries[g.rng.Intn(len(countries))],
				userType,
			}
		})
}

func (g *Generator) writeProducts(path string) (int, error) {
	return writeCSV(path, []string{"product_id", "sku", "name", "description", "category", "price"},
		g.profile.Products, func(i int) []string {
			id := i + 1
			name := productWords[g.rng.Intn(len(productWords))] + " " +
				productSuffixes[g.rng.Intn(len(productSuffixes))]
			desc := fmt.Sprintf("%s, %s and %s.",
				reviewFragments[g.rng.Intn(len(reviewFragments))],
				reviewFragments[g.rng.Intn(len(reviewFragments))],
				reviewFragments[g.rng.Intn(len(reviewFragments))])
			price := g.price()
			return []string{
				strconv.Itoa(id),
				fmt.Sprintf("SKU-%05d", id),
				name,
				desc,
				g.profile.Categories[g.rng.Intn(len(g.profile.Categories))],
				price,
			}
		})
}

func (g *Generator) writeOrders(ordersPath, itemsPath string) (int, int, error) {
	ordersFile, err := os.Create(ordersPath)
	if err != nil {
		return 0, 0, fmt.Errorf("create %s: %w", ordersPath, err)
	}
	defer ordersFile.Close()

	itemsFile, err := os.Create(itemsPath)
	if err != nil {
		return 0, 0, fmt.Errorf("create %s: %w", itemsPath, err)
	}
	defer itemsFile.Close()

	ordersWriter := csv.NewWriter(ordersFile)
	itemsWriter := csv.NewWriter(itemsFile)

	if err := ordersWriter.Write([]string{"order_id", "user_id", "order_date", "status", "total_amount"}); err != nil {
		return 0, 0, fmt.Errorf("write orders header: %w", err)
	}
	if err := itemsWriter.Write([]string{"order_item_id", "order_id", "product_id", "quantity", "unit_price"}); err != nil {
		return 0, 0, fmt.Errorf("write order_items header: %w", err)
	}

	itemID := 1
	for orderID := 1; orderID <= g.profile.Orders; orderID++ {
		userID := g.rng.Intn(g.profile.Users) + 1
		orderDate := g.pastTimestamp(2 * 365)
		status := g.status()

		numItems := weightedInt(g.rng, itemCounts, itemCountWeights)
		totalCents := int64(0)

		for i := 0; i < numItems; i++ {
			productID := g.rng.Intn(g.profile.Products) + 1
			quantity := weightedInt(g.rng, quantities, quantityWeights)
			priceCents := g.priceCents()
			totalCents += priceCents * int64(quantity)

			record := []string{
				strconv.Itoa(itemID),
				strconv.Itoa(orderID),
				strconv.Itoa(productID),
				strconv.Itoa(quantity),
				formatCents(priceCents),
			}
			if err := itemsWriter.Write(record); err != nil {
				return 0, 0, fmt.Errorf("write order item: %w", err)
			}
			itemID++
		}

		record := []string{
			strconv.Itoa(orderID),
			strconv.Itoa(userID),
			orderDate.Format("2006-01-02T15:04:05"),
			status,
			formatCents(totalCents),
		}
		if err := ordersWriter.Write(record); err != nil {
			return 0, 0, fmt.Errorf("write order: %w", err)
		}
	}

	ordersWriter.Flush()
	if err := ordersWriter.Error(); err != nil {
		return 0, 0, fmt.Errorf("flush orders: %w", err)
	}
	itemsWriter.Flush()
	if err := itemsWriter.Error(); err != nil {
		return 0, 0, fmt.Errorf("flush order items: %w", err)
	}

	return g.profile.Orders, itemID - 1, nil
}

func (g *Generator) writeReviews(path string) (int, error) {
	return writeCSV(path, []string{"review_id", "product_id", "user_id", "rating", "review_text", "review_date"},
		g.profile.Reviews, func(i int) []string {
			text := fmt.Sprintf("%s; %s.",
				reviewFragments[g.rng.Intn(len(reviewFragments))],
				reviewFragments[g.rng.Intn(len(reviewFragments))])
			return []string{
				strconv.Itoa(i + 1),
				strconv.Itoa(g.rng.Intn(g.profile.Products) + 1),
				strconv.Itoa(g.rng.Intn(g.profile.Users) + 1),
				strconv.Itoa(g.rng.Intn(5) + 1),
				text,
				g.pastTimestamp(2 * 365).Format("2006-01-02T15:04:05"),
			}
		})
}

func (g *Generator) status() string {
	total := 0.0
	for _, sw := range g.profile.Statuses {
		total += sw.Weight
	}
	r := g.rng.Float64() * total
	for _, sw := range g.profile.Statuses {
		r -= sw.Weight
		if r < 0 {
			return sw.Status
		}
	}
	return g.profile.Statuses[len(g.profile.Statuses)-1].Status
}

// priceCents draws from the original's 5.00..500.00 range.
func (g *Generator) priceCents() int64 {
	return int64(g.rng.Intn(49501)) + 500
}

func (g *Generator) price() string {
	return formatCents(g.priceCents())
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func (g *Generator) pastDate(maxDays int) time.Time {
	d := g.rng.Intn(maxDays)
	return g.now.AddDate(0, 0, -d).Truncate(24 * time.Hour)
}

func (g *Generator) pastTimestamp(maxDays int) time.Time {
	seconds := int64(maxDays) * 24 * 60 * 60
	offset := g.rng.Int63n(seconds)
	return g.now.Add(-time.Duration(offset) * time.Second).Truncate(time.Second)
}

func weightedInt(rng *rand.Rand, values []int, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return values[i]
		}
	}
	return values[len(values)-1]
}

func writeCSV(path string, header []string, rows int, record func(i int) []string) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < rows; i++ {
		if err := writer.Write(record(i)); err != nil {
			return 0, fmt.Errorf("write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("flush %s: %w", path, err)
	}

	return rows, nil
}
