package sqlstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pressly/goose/v3"
)

// Dialect identifies a supported SQL backend.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
)

// ParseDialect maps a configuration value to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(name)); d {
	case SQLite, Postgres, MySQL:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q: must be one of sqlite, postgres, mysql", name)
	}
}

// driverName is the database/sql driver registered for the dialect.
func (d Dialect) driverName() string {
	return string(d)
}

func (d Dialect) gooseDialect() goose.Dialect {
	switch d {
	case Postgres:
		return goose.DialectPostgres
	case MySQL:
		return goose.DialectMySQL
	default:
		return goose.DialectSQLite3
	}
}

// rebind rewrites ? placeholders into the dialect's bind syntax.
func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// insertIgnore builds an INSERT that silently skips rows violating a unique key.
func (d Dialect) insertIgnore(table string, columns ...string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	cols := strings.Join(columns, ", ")
	if d == MySQL {
		return fmt.Sprintf("INSERT IGNORE INTO %s (%s) VALUES (%s)", table, cols, placeholders)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING", table, cols, placeholders)
}

// upsertUser builds the insert-or-refresh statement for the users table.
func (d Dialect) upsertUser() string {
	const insert = "INSERT INTO users (id, email, display_name, updated_at) VALUES (?, ?, ?, ?)"
	if d == MySQL {
		return insert + " ON DUPLICATE KEY UPDATE email = VALUES(email), display_name = VALUES(display_name), updated_at = VALUES(updated_at)"
	}
	return insert + " ON CONFLICT (id) DO UPDATE SET email = excluded.email, display_name = excluded.display_name, updated_at = excluded.updated_at"
}

// lockHousehold selects a household row and, where supported, holds a row lock
// on it until the transaction ends. Member inserts reference the row through a
// foreign key, so they wait for the lock.
func (d Dialect) lockHousehold() string {
	const q = "SELECT id FROM households WHERE id = ?"
	if d == SQLite {
		// SQLite transactions are opened with _txlock=immediate and already
		// hold the database write lock.
		return q
	}
	return q + " FOR UPDATE"
}
