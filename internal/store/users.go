package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/ecom-analytics/internal/database"
	"github.com/safar/ecom-analytics/internal/models"
)

func (s *Store) InsertUser(ctx context.Context, q DBTX, user models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.users (user_id, email, signup_date, country, user_type)
		VALUES ($1, $2, $3, $4, $5)`, s.schema)

	_, err := q.ExecContext(ctx, query,
		user.ID, user.Email, user.SignupDate, user.Country, user.UserType)
	if err != nil {
		return fmt.Errorf("insert user %d: %w", user.ID, err)
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, q DBTX, id int64) (*models.User, error) {
	user := &models.User{}

	query := fmt.Sprintf(`
		SELECT user_id, email, signup_date, country, user_type
		FROM %s.users
		WHERE user_id = $1`, s.schema)

	err := q.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.SignupDate,
		&user.Country,
		&user.UserType,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

func (s *Store) DeleteUser(ctx context.Context, q DBTX, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s.users WHERE user_id = $1`, s.schema)

	result, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrUserNotFound
	}

	return nil
}

func (s *Store) ListUsers(ctx context.Context, q DBTX, page, pageSize int) (*OffsetPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s.users`, s.schema)
	err := q.QueryRowContext(ctx, countQuery).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`
		SELECT user_id, email, signup_date, country, user_type
		FROM %s.users
		ORDER BY signup_date DESC, user_id DESC
		LIMIT $1 OFFSET $2`, s.schema)

	rows, err := q.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.SignupDate,
			&user.Country,
			&user.UserType,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &OffsetPage{
		Items:      users,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
