package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/ecom-analytics/internal/database"
	"github.com/safar/ecom-analytics/internal/models"
)

func (s *Store) InsertOrder(ctx context.Context, q DBTX, order models.Order) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.orders (order_id, user_id, order_date, status, total_amount)
		VALUES ($1, $2, $3, $4, $5)`, s.schema)

	_, err := q.ExecContext(ctx, query,
		order.ID, order.UserID, order.OrderDate, order.Status, order.TotalAmount)
	if err != nil {
		return fmt.Errorf("insert order %d: %w", order.ID, err)
	}

	return nil
}

func (s *Store) InsertOrderItem(ctx context.Context, q DBTX, item models.OrderItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.order_items (order_item_id, order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`, s.schema)

	_, err := q.ExecContext(ctx, query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
	if err != nil {
		return fmt.Errorf("insert order item %d: %w", item.ID, err)
	}

	return nil
}

func (s *Store) GetOrder(ctx context.Context, q DBTX, id int64) (*models.Order, error) {
	order := &models.Order{}

	query := fmt.Sprintf(`
		SELECT order_id, user_id, order_date, status, total_amount
		FROM %s.orders
		WHERE order_id = $1`, s.schema)

	err := q.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.OrderDate,
		&order.Status,
		&order.TotalAmount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	itemsQuery := fmt.Sprintf(`
		SELECT order_item_id, order_id, product_id, quantity, unit_price
		FROM %s.order_items
		WHERE order_id = $1
		ORDER BY order_item_id`, s.schema)

	rows, err := q.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	order.Items = items

	return order, nil
}

// ListOrdersCursor pages through a user's orders newest first, keyed on
// (order_date, order_id) so the idx_orders_user_id scan stays bounded.
func (s *Store) ListOrdersCursor(ctx context.Context, q DBTX, userID int64, cursor string, limit int) (*CursorPage, error) {
	cursorData, err := DecodeCursor(cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT order_id, user_id, order_date, status, total_amount
		FROM %s.orders
		WHERE user_id = $1
		  AND (order_date, order_id) < ($2, $3)
		ORDER BY order_date DESC, order_id DESC
		LIMIT $4`, s.schema)

	rows, err := q.QueryContext(ctx, query, userID, cursorData.OrderDate, cursorData.ID, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.OrderDate,
			&order.Status,
			&order.TotalAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	hasMore := len(orders) > limit
	if hasMore {
		orders = orders[:limit]
	}

	var nextCursor string
	if hasMore && len(orders) > 0 {
		lastOrder := orders[len(orders)-1]
		nextCursor = EncodeCursor(OrderCursor{
			OrderDate: lastOrder.OrderDate,
			ID:        lastOrder.ID,
		})
	}

	return &CursorPage{
		Items:      orders,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}
