// Package schema creates and inspects the ecom relational schema: five
// tables (users, products, orders, order_items, product_reviews) and four
// secondary indexes. Every statement is guarded with IF NOT EXISTS, so
// applying the schema is safe to repeat.
package schema

import (
	"context"
	"database/sql"
	"fmt"
)

const DefaultName = "ecom"

// Tables lists the table names in creation order. Referenced tables come
// before the tables that reference them: orders needs users, order_items
// needs orders and products, product_reviews needs products and users.
var Tables = []string{"users", "products", "orders", "order_items", "product_reviews"}

// Indexes lists the secondary index names created alongside the tables.
var Indexes = []string{
	"idx_orders_order_date",
	"idx_orders_user_id",
	"idx_order_items_product_id",
	"idx_products_category",
}

func usersTable(schema string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.users (
			user_id INT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			signup_date DATE,
			country VARCHAR(100),
			user_type VARCHAR(20)
		);
	`, schema)
}

func productsTable(schema string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.products (
			product_id INT PRIMARY KEY,
			sku VARCHAR(50) NOT NULL UNIQUE,
			name VARCHAR(255),
			description TEXT,
			category VARCHAR(100),
			price NUMERIC(10,2),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`, schema)
}

func ordersTable(schema string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.orders (
			order_id INT PRIMARY KEY,
			user_id INT NOT NULL REFERENCES %s.users(user_id),
			order_date TIMESTAMP NOT NULL,
			status VARCHAR(20),
			total_amount NUMERIC(12,2)
		);
	`, schema, schema)
}

func orderItemsTable(schema string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.order_items (
			order_item_id INT PRIMARY KEY,
			order_id INT NOT NULL REFERENCES %s.orders(order_id),
			product_id INT NOT NULL REFERENCES %s.products(product_id),
			quantity INT,
			unit_price NUMERIC(10,2)
		);
	`, schema, schema, schema)
}

func productReviewsTable(schema string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.product_reviews (
			review_id INT PRIMARY KEY,
			product_id INT REFERENCES %s.products(product_id),
			user_id INT REFERENCES %s.users(user_id),
			rating SMALLINT,
			review_text TEXT,
			review_date TIMESTAMP
		);
	`, schema, schema, schema)
}

// Statements returns the full DDL for the named schema, in the order the
// statements must execute.
func Statements(schema string) []string {
	return []string{
		fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s;", schema),
		usersTable(schema),
		productsTable(schema),
		ordersTable(schema),
		orderItemsTable(schema),
		productReviewsTable(schema),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_orders_order_date ON %s.orders(order_date);", schema),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_orders_user_id ON %s.orders(user_id);", schema),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_order_items_product_id ON %s.order_items(product_id);", schema),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_products_category ON %s.products(category);", schema),
	}
}

// Apply creates the schema, tables and indexes. Safe to call repeatedly.
func Apply(ctx context.Context, db *sql.DB, schema string) error {
	for _, stmt := range Statements(schema) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema %s: %w", schema, err)
		}
	}
	return nil
}

// Drop removes the schema and everything in it. Used by the down direction
// of the schema admin script.
func Drop(ctx context.Context, db *sql.DB, schema string) error {
	stmt := fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE;", schema)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("drop schema %s: %w", schema, err)
	}
	return nil
}
