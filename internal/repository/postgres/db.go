package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres error codes used to recognize lost races on create statements.
const (
	codeUniqueViolation   = "23505"
	codeDuplicateDatabase = "42P04"
)

// Open opens a connection pool for the given DSN. The pool is lazy: no
// connection is established here, because the target database may not exist
// until installation has run.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(60 * time.Minute)

	return db, nil
}

// DatabaseEnsurer creates the target database through the server's
// administrative database when it does not exist yet.
type DatabaseEnsurer struct {
	adminDSN string
	name     string
}

func NewDatabaseEnsurer(adminDSN, name string) *DatabaseEnsurer {
	return &DatabaseEnsurer{adminDSN: adminDSN, name: name}
}

// EnsureDatabase connects to the administrative database, checks the server
// catalog for the target database and creates it only if absent. A database
// created concurrently by another caller counts as success.
func (e *DatabaseEnsurer) EnsureDatabase(ctx context.Context) error {
	db, err := sql.Open("pgx", e.adminDSN)
	if err != nil {
		return fmt.Errorf("open admin db: %w", err)
	}
	defer db.Close()

	return ensureDatabase(ctx, db, e.name)
}

func ensureDatabase(ctx context.Context, db *sql.DB, name string) error {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM pg_database WHERE datname = $1`, name).Scan(&one)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check database exists: %w", err)
	}

	// CREATE DATABASE does not support parameters or IF NOT EXISTS, so the
	// name is sanitized as an identifier and a duplicate error from a
	// concurrent creation is treated as success.
	if _, err := db.ExecContext(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		if isDuplicate(err) {
			return nil
		}
		return fmt.Errorf("create database %s: %w", name, err)
	}
	return nil
}

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation || pgErr.Code == codeDuplicateDatabase
	}
	return false
}
