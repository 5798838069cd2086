package etl

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type tableSpec struct {
	columns []string
	parse   func(record []string) ([]any, error)
}

var tableSpecs = map[string]tableSpec{
	"users": {
		columns: []string{"user_id", "email", "signup_date", "country", "user_type"},
		parse:   parseUser,
	},
	"products": {
		// created_at is omitted so the column default stamps load time.
		columns: []string{"product_id", "sku", "name", "description", "category", "price"},
		parse:   parseProduct,
	},
	"orders": {
		columns: []string{"order_id", "user_id", "order_date", "status", "total_amount"},
		parse:   parseOrder,
	},
	"order_items": {
		columns: []string{"order_item_id", "order_id", "product_id", "quantity", "unit_price"},
		parse:   parseOrderItem,
	},
	"product_reviews": {
		columns: []string{"review_id", "product_id", "user_id", "rating", "review_text", "review_date"},
		parse:   parseReview,
	},
}

func parseUser(record []string) ([]any, error) {
	if len(record) != 5 {
		return nil, fmt.Errorf("users: expected 5 fields, got %d", len(record))
	}

	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("user_id %q: %w", record[0], err)
	}
	signup, err := parseDate(record[2])
	if err != nil {
		return nil, fmt.Errorf("signup_date %q: %w", record[2], err)
	}

	return []any{id, record[1], signup, record[3], record[4]}, nil
}

func parseProduct(record []string) ([]any, error) {
	if len(record) != 6 {
		return nil, fmt.Errorf("products: expected 6 fields, got %d", len(record))
	}

	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("product_id %q: %w", record[0], err)
	}
	price, err := decimal.NewFromString(record[5])
	if err != nil {
		return nil, fmt.Errorf("price %q: %w", record[5], err)
	}

	return []any{id, record[1], record[2], record[3], record[4], price}, nil
}

func parseOrder(record []string) ([]any, error) {
	if len(record) != 5 {
		return nil, fmt.Errorf("orders: expected 5 fields, got %d", len(record))
	}

	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("order_id %q: %w", record[0], err)
	}
	userID, err := strconv.ParseInt(record[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("user_id %q: %w", record[1], err)
	}
	orderDate, err := parseTimestamp(record[2])
	if err != nil {
		return nil, fmt.Errorf("order_date %q: %w", record[2], err)
	}
	total, err := decimal.NewFromString(record[4])
	if err != nil {
		return nil, fmt.Errorf("total_amount %q: %w", record[4], err)
	}

	return []any{id, userID, orderDate, record[3], total}, nil
}

func parseOrderItem(record []string) ([]any, error) {
	if len(record) != 5 {
		return nil, fmt.Errorf("order_items: expected 5 fields, got %d", len(record))
	}

	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("order_item_id %q: %w", record[0], err)
	}
	orderID, err := strconv.ParseInt(record[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("order_id %q: %w", record[1], err)
	}
	productID, err := strconv.ParseInt(record[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("product_id %q: %w", record[2], err)
	}
	quantity, err := strconv.Atoi(record[3])
	if err != nil {
		return nil, fmt.Errorf("quantity %q: %w", record[3], err)
	}
	unitPrice, err := decimal.NewFromString(record[4])
	if err != nil {
		return nil, fmt.Errorf("unit_price %q: %w", record[4], err)
	}

	return []any{id, orderID, productID, quantity, unitPrice}, nil
}

func parseReview(record []string) ([]any, error) {
	if len(record) != 6 {
		return nil, fmt.Errorf("reviews: expected 6 fields, got %d", len(record))
	}

	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("review_id %q: %w", record[0], err)
	}

	// product_id and user_id are nullable links.
	productID, err := nullableInt(record[1])
	if err != nil {
		return nil, fmt.Errorf("product_id %q: %w", record[1], err)
	}
	userID, err := nullableInt(record[2])
	if err != nil {
		return nil, fmt.Errorf("user_id %q: %w", record[2], err)
	}

	rating, err := strconv.Atoi(record[3])
	if err != nil {
		return nil, fmt.Errorf("rating %q: %w", record[3], err)
	}
	reviewDate, err := parseTimestamp(record[5])
	if err != nil {
		return nil, fmt.Errorf("review_date %q: %w", record[5], err)
	}

	return []any{id, productID, userID, rating, record[4], reviewDate}, nil
}

func nullableInt(field string) (any, error) {
	if field == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return nil, err
	}
	return id, nil
}

func parseDate(field string) (time.Time, error) {
	return time.Parse("2006-01-02", field)
}

// parseTimestamp accepts the ISO layouts the generator and the original
// exports use.
func parseTimestamp(field string) (time.Time, error) {
	layouts := []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02",
	}

	var lastErr error
	for _, layout := range layouts {
		ts, err := time.Parse(layout, field)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
