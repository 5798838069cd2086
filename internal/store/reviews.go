package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/ecom-analytics/internal/database"
	"github.com/safar/ecom-analytics/internal/models"
)

func (s *Store) InsertReview(ctx context.Context, q DBTX, review models.ProductReview) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.product_reviews (review_id, product_id, user_id, rating, review_text, review_date)
		VALUES ($1, $2, $3, $4, $5, $6)`, s.schema)

	_, err := q.ExecContext(ctx, query,
		review.ID, review.ProductID, review.UserID,
		review.Rating, review.ReviewText, review.ReviewDate)
	if err != nil {
		return fmt.Errorf("insert review %d: %w", review.ID, err)
	}

	return nil
}

func (s *Store) GetReview(ctx context.Context, q DBTX, id int64) (*models.ProductReview, error) {
	review := &models.ProductReview{}

	query := fmt.Sprintf(`
		SELECT review_id, product_id, user_id, rating, review_text, review_date
		FROM %s.product_reviews
		WHERE review_id = $1`, s.schema)

	err := q.QueryRowContext(ctx, query, id).Scan(
		&review.ID,
		&review.ProductID,
		&review.UserID,
		&review.Rating,
		&review.ReviewText,
		&review.ReviewDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	return review, nil
}

func (s *Store) ListProductReviews(ctx context.Context, q DBTX, productID int64, limit int) ([]models.ProductReview, error) {
	query := fmt.Sprintf(`
		SELECT review_id, product_id, user_id, rating, review_text, review_date
		FROM %s.product_reviews
		WHERE product_id = $1
		ORDER BY review_date DESC, review_id DESC
		LIMIT $2`, s.schema)

	rows, err := q.QueryContext(ctx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.ProductReview
	for rows.Next() {
		var review models.ProductReview
		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.UserID,
			&review.Rating,
			&review.ReviewText,
			&review.ReviewDate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reviews, nil
}

type ReviewSummary struct {
	ProductID     int64   `json:"product_id"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

func (s *Store) GetReviewSummary(ctx context.Context, q DBTX, productID int64) (*ReviewSummary, error) {
	summary := &ReviewSummary{ProductID: productID}

	query := fmt.Sprintf(`
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM %s.product_reviews
		WHERE product_id = $1`, s.schema)

	err := q.QueryRowContext(ctx, query, productID).Scan(
		&summary.AverageRating,
		&summary.TotalReviews,
	)
	if err != nil {
		return nil, fmt.Errorf("review summary: %w", err)
	}

	return summary, nil
}
