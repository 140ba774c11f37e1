package dberr_test

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/mickamy/ownq/internal/dberr"
)

func TestClassifyDriverErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want dberr.Violation
	}{
		{"nil", nil, dberr.None},
		{"plain", errors.New("boom"), dberr.None},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, dberr.Unique},
		{"mysql fk", &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}, dberr.ForeignKey},
		{"mysql other", &mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}, dberr.None},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, dberr.Unique},
		{"pgx fk", &pgconn.PgError{Code: "23503"}, dberr.ForeignKey},
		{"pgx not null", &pgconn.PgError{Code: "23502"}, dberr.NotNull},
		{"pgx syntax", &pgconn.PgError{Code: "42601"}, dberr.None},
		{"pq unique", &pq.Error{Code: "23505"}, dberr.Unique},
		{"pq fk", &pq.Error{Code: "23503"}, dberr.ForeignKey},
		{"wrapped", fmt.Errorf("insert item: %w", &pgconn.PgError{Code: "23505"}), dberr.Unique},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, dberr.Classify(tt.err))
			require.Equal(t, tt.want != dberr.None, dberr.IsConstraintViolation(tt.err))
		})
	}
}

func TestClassifySQLiteErrors(t *testing.T) {
	t.Parallel()

	dsn := "file:" + filepath.Join(t.TempDir(), "dberr.db") + "?_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE parents (id INTEGER PRIMARY KEY, name TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE children (id INTEGER PRIMARY KEY, parent_id INTEGER REFERENCES parents (id))`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO parents (name) VALUES ('a')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO parents (name) VALUES ('a')`)
	require.Error(t, err)
	require.Equal(t, dberr.Unique, dberr.Classify(err))

	_, err = db.Exec(`INSERT INTO children (parent_id) VALUES (42)`)
	require.Error(t, err)
	require.Equal(t, dberr.ForeignKey, dberr.Classify(err))

	_, err = db.Exec(`INSERT INTO parents (name) VALUES (NULL)`)
	require.Error(t, err)
	require.Equal(t, dberr.NotNull, dberr.Classify(err))

	_, err = db.Exec(`SELECT * FROM missing`)
	require.Error(t, err)
	require.Equal(t, dberr.None, dberr.Classify(err))
}

func TestViolationString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "unique", dberr.Unique.String())
	require.Equal(t, "foreign key", dberr.ForeignKey.String())
	require.Equal(t, "not null", dberr.NotNull.String())
	require.Equal(t, "none", dberr.None.String())
}
