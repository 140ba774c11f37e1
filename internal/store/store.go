// Package store opens the relational store described by a DatabaseConfig.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/mickamy/ownq/internal/config"
	"github.com/mickamy/ownq/orm"
)

// Open opens the store, applies per-dialect connection settings, and
// verifies it is reachable. Every failure is an *orm.StorageError.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*orm.DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = config.DefaultDriver(cfg.Dialect)
	}
	dsn := cfg.DSN
	if cfg.Dialect.Name() == "sqlite" {
		dsn = sqliteDSN(dsn)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, &orm.StorageError{Op: "open", Err: err}
	}

	switch cfg.Dialect.Name() {
	case "sqlite":
		// SQLite allows one writer; a single connection also keeps
		// per-connection pragmas and in-memory databases consistent.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	default:
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	db := orm.New(sqlDB, cfg.Dialect)
	if err := db.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// sqliteDSN enables foreign key enforcement, which SQLite leaves off by default.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=foreign_keys(1)", dsn, sep)
}
