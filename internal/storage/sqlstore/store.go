// Package sqlstore provides a database/sql implementation of storage.Store
// for SQLite, PostgreSQL and MySQL.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL / MariaDB driver
	"github.com/google/uuid"
	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/households/internal/models"
	"github.com/mmynk/households/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store on top of database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLite opens (creating if needed) a SQLite database file and migrates it.
func NewSQLite(dbPath string) (*Store, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys and busy timeout are per connection, so they go in the DSN.
	// Immediate transactions take the write lock up front, which serializes
	// expense creation against concurrent joins.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate", dbPath)
	return Open(context.Background(), SQLite, dsn)
}

// Open connects to the database described by dsn and runs migrations.
func Open(ctx context.Context, dialect Dialect, dsn string) (*Store, error) {
	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(ctx, db, dialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db, dialect: dialect}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// q adapts a query written with ? placeholders to the store's dialect.
func (s *Store) q(query string) string {
	return s.dialect.rebind(query)
}

// CreateHousehold persists a new household and enrolls its owner.
func (s *Store) CreateHousehold(ctx context.Context, household *models.Household) error {
	// Generate ID if not set
	if household.ID == "" {
		household.ID = uuid.New().String()
	}
	if household.CreatedAt == 0 {
		household.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		s.q("INSERT INTO households (id, name, owner_user_id, created_at) VALUES (?, ?, ?, ?)"),
		household.ID, household.Name, household.OwnerUserID, household.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert household: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		s.q(s.dialect.insertIgnore("household_members", "household_id", "user_id", "joined_at")),
		household.ID, household.OwnerUserID, household.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enroll owner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetHousehold retrieves a household by ID.
func (s *Store) GetHousehold(ctx context.Context, householdID string) (*models.Household, error) {
	h := &models.Household{}
	err := s.db.QueryRowContext(ctx,
		s.q("SELECT id, name, owner_user_id, created_at FROM households WHERE id = ?"),
		householdID,
	).Scan(&h.ID, &h.Name, &h.OwnerUserID, &h.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("household %s: %w", householdID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household: %w", err)
	}
	return h, nil
}

// ListHouseholds returns all households in creation order.
func (s *Store) ListHouseholds(ctx context.Context) ([]*models.Household, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, owner_user_id, created_at FROM households ORDER BY created_at, name, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list households: %w", err)
	}
	defer rows.Close()

	var households []*models.Household
	for rows.Next() {
		h := &models.Household{}
		if err := rows.Scan(&h.ID, &h.Name, &h.OwnerUserID, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan household: %w", err)
		}
		households = append(households, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate households: %w", err)
	}

	return households, nil
}

// AddMember enrolls a user in a household; enrolling twice is a no-op.
func (s *Store) AddMember(ctx context.Context, householdID, userID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, s.q("SELECT id FROM households WHERE id = ?"), householdID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("household %s: %w", householdID, storage.ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check household existence: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		s.q(s.dialect.insertIgnore("household_members", "household_id", "user_id", "joined_at")),
		householdID, userID, time.Now().Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert member: %w", err)
	}
	added, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return added > 0, nil
}

// IsMember reports whether the user is enrolled in the household.
func (s *Store) IsMember(ctx context.Context, householdID, userID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		s.q("SELECT 1 FROM household_members WHERE household_id = ? AND user_id = ?"),
		householdID, userID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return true, nil
}

// ListMembers returns the household's members in enrollment order.
func (s *Store) ListMembers(ctx context.Context, householdID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q("SELECT household_id, user_id, joined_at FROM household_members WHERE household_id = ? ORDER BY id"),
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.HouseholdID, &m.UserID, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// ListHouseholdIDsForUser returns the IDs of the households the user belongs to.
func (s *Store) ListHouseholdIDsForUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q("SELECT household_id FROM household_members WHERE user_id = ? ORDER BY id"),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}

	return ids, nil
}
