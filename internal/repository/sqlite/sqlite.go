package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spiritually/spiritually/internal/domain"
	"github.com/spiritually/spiritually/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection and hands out repositories bound to it.
type DB struct {
	sqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// SQLite allows a single writer; keep the pool at one connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{sqlDB: db}, nil
}

// Migrate applies all pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.sqlDB)
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.sqlDB.Close()
}

// Users returns the user repository.
func (d *DB) Users() *UserRepository {
	return &UserRepository{db: d.sqlDB}
}

// Traditions returns the repository for the given tradition kind.
func (d *DB) Traditions(kind domain.Kind) *TraditionRepository {
	table := tableFor(kind)
	return &TraditionRepository{
		db:    d.sqlDB,
		kind:  kind,
		table: table,
		fts:   table + "_fts",
	}
}

func tableFor(kind domain.Kind) string {
	switch kind {
	case domain.KindPhilosophy:
		return "philosophies"
	case domain.KindReligion:
		return "religions"
	case domain.KindAstrology:
		return "astrological_systems"
	}
	panic(fmt.Sprintf("unknown tradition kind %q", kind))
}
