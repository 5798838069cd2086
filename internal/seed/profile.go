package seed

import (
	"fmt"
	"os"

	"github.com/safar/ecom-analytics/internal/models"
	"gopkg.in/yaml.v3"
)

// Profile controls fixture generation. The zero-value fields of a partial
// YAML file fall back to the defaults.
type Profile struct {
	Seed     int64          `yaml:"seed"`
	Users    int            `yaml:"users"`
	Products int            `yaml:"products"`
	Orders   int            `yaml:"orders"`
	Reviews  int            `yaml:"reviews"`

	Categories []string       `yaml:"categories"`
	Statuses   []StatusWeight `yaml:"statuses"`
}

type StatusWeight struct {
	Status string  `yaml:"status"`
	Weight float64 `yaml:"weight"`
}

// DefaultProfile reproduces the original dataset shape: 5000 users, 500
// products, 20000 orders, 5000 reviews, seeded with 42.
func DefaultProfile() Profile {
	return Profile{
		Seed:     42,
		Users:    5000,
		Products: 500,
		Orders:   20000,
		Reviews:  5000,
		Categories: []string{
			"Shoes", "Apparel", "Electronics", "Home", "Beauty", "Sports",
		},
		Statuses: []StatusWeight{
			{Status: models.OrderStatusCompleted, Weight: 0.90},
			{Status: models.OrderStatusCancelled, Weight: 0.07},
			{Status: models.OrderStatusReturned, Weight: 0.03},
		},
	}
}

// LoadProfile reads a YAML profile, filling unset fields from the default.
func LoadProfile(path string) (Profile, error) {
	profile := Profile{}

	file, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("read profile: %w", err)
	}

	if err := yaml.Unmarshal(file, &profile); err != nil {
		return profile, fmt.Errorf("parse profile: %w", err)
	}

	defaults := DefaultProfile()
	if profile.Users == 0 {
		profile.Users = defaults.Users
	}
	if profile.Products == 0 {
		profile.Products = defaults.Products
	}
	if profile.Orders == 0 {
		profile.Orders = defaults.Orders
	}
	if profile.Reviews == 0 {
		profile.Reviews = defaults.Reviews
	}
	if profile.Seed == 0 {
		profile.Seed = defaults.Seed
	}
	if len(profile.Categories) == 0 {
		profile.Categories = defaults.Categories
	}
	if len(profile.Statuses) == 0 {
		profile.Statuses = defaults.Statuses
	}

	return profile, nil
}
