package seed

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/safar/ecom-analytics/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallProfile() Profile {
	p := DefaultProfile()
	p.Users = 20
	p.Products = 10
	p.Orders = 30
	p.Reviews = 15
	return p
}

func TestGenerateDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	dirA := t.TempDir()
	dirB := t.TempDir()

	_, err := NewGenerator(smallProfile(), now).Generate(dirA)
	require.NoError(t, err)
	_, err = NewGenerator(smallProfile(), now).Generate(dirB)
	require.NoError(t, err)

	for _, name := range []string{"users.csv", "products.csv", "orders.csv", "order_items.csv", "reviews.csv"} {
		a, err := os.ReadFile(filepath.Join(dirA, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dirB, name))
		require.NoError(t, err)
		assert.Equal(t, a, b, "%s differs between identical runs", name)
	}
}

func TestGenerateRowCounts(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dir := t.TempDir()

	counts, err := NewGenerator(smallProfile(), now).Generate(dir)
	require.NoError(t, err)

	assert.Equal(t, 20, counts["users.csv"])
	assert.Equal(t, 10, counts["products.csv"])
	assert.Equal(t, 30, counts["orders.csv"])
	assert.Equal(t, 15, counts["reviews.csv"])
	assert.GreaterOrEqual(t, counts["order_items.csv"], 30, "every order has at least one item")
}

func TestOrderTotalsMatchItems(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dir := t.TempDir()

	_, err := NewGenerator(smallProfile(), now).Generate(dir)
	require.NoError(t, err)

	items := readAll(t, filepath.Join(dir, "order_items.csv"))
	totals := make(map[string]int64)
	for _, record := range items[1:] {
		quantity, err := strconv.ParseInt(record[3], 10, 64)
		require.NoError(t, err)
		totals[record[1]] += parseCents(t, record[4]) * quantity
	}

	orders := readAll(t, filepath.Join(dir, "orders.csv"))
	for _, record := range orders[1:] {
		assert.Equal(t, totals[record[0]], parseCents(t, record[4]),
			"order %s total does not match its items", record[0])
	}
}

func TestStatusWeightsRespected(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	profile := smallProfile()
	profile.Orders = 2000
	profile.Statuses = []StatusWeight{{Status: "completed", Weight: 1.0}}
	dir := t.TempDir()

	_, err := NewGenerator(profile, now).Generate(dir)
	require.NoError(t, err)

	orders := readAll(t, filepath.Join(dir, "orders.csv"))
	for _, record := range orders[1:] {
		assert.Equal(t, "completed", record[3])
	}
}

func TestGeneratedUserTypes(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dir := t.TempDir()

	_, err := NewGenerator(smallProfile(), now).Generate(dir)
	require.NoError(t, err)

	users := readAll(t, filepath.Join(dir, "users.csv"))
	for _, record := range users[1:] {
		userType := record[4]
		assert.Contains(t, []string{models.UserTypeRegular, models.UserTypeVIP}, userType,
			"user %s has unknown type %q", record[0], userType)
	}
}

func TestLoadProfileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := strings.Join([]string{
		"users: 100",
		"orders: 250",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	profile, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, 100, profile.Users)
	assert.Equal(t, 250, profile.Orders)
	assert.Equal(t, DefaultProfile().Products, profile.Products)
	assert.Equal(t, DefaultProfile().Seed, profile.Seed)
	assert.Equal(t, DefaultProfile().Categories, profile.Categories)
	assert.Len(t, profile.Statuses, 3)
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func parseCents(t *testing.T, amount string) int64 {
	t.Helper()
	parts := strings.SplitN(amount, ".", 2)
	require.Len(t, parts, 2)
	whole, err := strconv.ParseInt(parts[0], 10, 64)
	require.NoError(t, err)
	frac, err := strconv.ParseInt(parts[1], 10, 64)
	require.NoError(t, err)
	return whole*100 + frac
}
