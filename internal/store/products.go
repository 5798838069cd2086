package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/ecom-analytics/internal/database"
	"github.com/safar/ecom-analytics/internal/models"
)

// InsertProduct never supplies created_at; the column's default stamps the
// insertion time, and the returned product carries it.
func (s *Store) InsertProduct(ctx context.Context, q DBTX, product models.Product) (*models.Product, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s.products (product_id, sku, name, description, category, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING product_id, sku, name, description, category, price, created_at`, s.schema)

	inserted := &models.Product{}
	err := q.QueryRowContext(ctx, query,
		product.ID, product.SKU, product.Name, product.Description,
		product.Category, product.Price).Scan(
		&inserted.ID,
		&inserted.SKU,
		&inserted.Name,
		&inserted.Description,
		&inserted.Category,
		&inserted.Price,
		&inserted.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert product %d: %w", product.ID, err)
	}

	return inserted, nil
}

func (s *Store) GetProduct(ctx context.Context, q DBTX, id int64) (*models.Product, error) {
	product := &models.Product{}

	query := fmt.Sprintf(`
		SELECT product_id, sku, name, description, category, price, created_at
		FROM %s.products
		WHERE product_id = $1`, s.schema)

	err := q.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.SKU,
		&product.Name,
		&product.Description,
		&product.Category,
		&product.Price,
		&product.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func (s *Store) ListProducts(ctx context.Context, q DBTX, page, pageSize int) (*OffsetPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s.products`, s.schema)
	err := q.QueryRowContext(ctx, countQuery).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`
		SELECT product_id, sku, name, description, category, price, created_at
		FROM %s.products
		ORDER BY created_at DESC, product_id DESC
		LIMIT $1 OFFSET $2`, s.schema)

	rows, err := q.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID,
			&product.SKU,
			&product.Name,
			&product.Description,
			&product.Category,
			&product.Price,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &OffsetPage{
		Items:      products,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListProductsByCategory walks idx_products_category.
func (s *Store) ListProductsByCategory(ctx context.Context, q DBTX, category string, limit int) ([]models.Product, error) {
	query := fmt.Sprintf(`
		SELECT product_id, sku, name, description, category, price, created_at
		FROM %s.products
		WHERE category = $1
		ORDER BY product_id
		LIMIT $2`, s.schema)

	rows, err := q.QueryContext(ctx, query, category, limit)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID,
			&product.SKU,
			&product.Name,
			&product.Description,
			&product.Category,
			&product.Price,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}
