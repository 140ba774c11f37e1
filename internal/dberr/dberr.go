// Package dberr classifies driver errors from every supported store into
// the constraint violations ownq distinguishes.
package dberr

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Violation is the kind of constraint a write broke.
type Violation int

const (
	None Violation = iota
	Unique
	ForeignKey
	NotNull
)

func (v Violation) String() string {
	switch v {
	case Unique:
		return "unique"
	case ForeignKey:
		return "foreign key"
	case NotNull:
		return "not null"
	default:
		return "none"
	}
}

// MySQL server error numbers.
const (
	mysqlDupEntry        = 1062
	mysqlNoReferencedRow = 1452
	mysqlRowIsReferenced = 1451
	mysqlBadNull         = 1048
)

// PostgreSQL SQLSTATE codes (class 23, integrity constraint violation).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// Classify reports which constraint err violated, or None when err is not a
// constraint violation (including nil).
func Classify(err error) Violation {
	if err == nil {
		return None
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDupEntry:
			return Unique
		case mysqlNoReferencedRow, mysqlRowIsReferenced:
			return ForeignKey
		case mysqlBadNull:
			return NotNull
		}
		return None
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifySQLState(pgErr.Code)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifySQLState(string(pqErr.Code))
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return Unique
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ForeignKey
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return NotNull
		}
		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			// Primary code only; fall back to the message.
			return classifyMessage(liteErr.Error())
		}
		return None
	}

	return None
}

// IsConstraintViolation reports whether err is any recognised constraint violation.
func IsConstraintViolation(err error) bool {
	return Classify(err) != None
}

func classifyMessage(msg string) Violation {
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return Unique
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ForeignKey
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return NotNull
	default:
		return None
	}
}

func classifySQLState(code string) Violation {
	switch code {
	case pgUniqueViolation:
		return Unique
	case pgForeignKeyViolation:
		return ForeignKey
	case pgNotNullViolation:
		return NotNull
	default:
		return None
	}
}
