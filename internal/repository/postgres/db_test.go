package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	checkDatabaseQuery = `SELECT 1 FROM pg_database WHERE datname = $1`
	createDatabaseStmt = `CREATE DATABASE "app_db"`
)

func TestEnsureDatabase_AlreadyExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(checkDatabaseQuery)).
		WithArgs("app_db").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	require.NoError(t, ensureDatabase(context.Background(), db, "app_db"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureDatabase_CreatesWhenAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(checkDatabaseQuery)).
		WithArgs("app_db").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(createDatabaseStmt)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, ensureDatabase(context.Background(), db, "app_db"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureDatabase_LostCreationRaceIsSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(checkDatabaseQuery)).
		WithArgs("app_db").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(createDatabaseStmt)).
		WillReturnError(&pgconn.PgError{Code: codeDuplicateDatabase})

	require.NoError(t, ensureDatabase(context.Background(), db, "app_db"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureDatabase_CheckFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(checkDatabaseQuery)).
		WithArgs("app_db").
		WillReturnError(errors.New("connection refused"))

	err = ensureDatabase(context.Background(), db, "app_db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check database exists")
}
