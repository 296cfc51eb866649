package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/households/internal/models"
	"github.com/mmynk/households/internal/storage"
)

// UpsertUser inserts a user profile or refreshes an existing one.
func (s *Store) UpsertUser(ctx context.Context, user *models.User) error {
	if user.UpdatedAt == 0 {
		user.UpdatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, s.q(s.dialect.upsertUser()),
		user.ID,
		user.Email,
		user.DisplayName,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

// GetUser retrieves a user profile by ID.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, email, display_name, updated_at
		FROM users
		WHERE id = ?
	`

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, s.q(query), userID).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}
