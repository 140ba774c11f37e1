// Package schema creates the storage structures for collections and items.
package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mickamy/ownq/model"
	"github.com/mickamy/ownq/orm"
	"github.com/mickamy/ownq/query"
)

// Initialize creates the collections and items tables and their indexes if
// they do not exist yet. Running it against an initialized store is a no-op.
// Any failure is returned as *orm.StorageError.
func Initialize(ctx context.Context, db orm.Querier) error {
	if !orm.Valid(db) {
		return &orm.StorageError{Op: "initialize", Err: errors.New("schema: nil or uninitialized store handle")}
	}
	stmts, err := Statements(orm.DialectOf(db))
	if err != nil {
		return &orm.StorageError{Op: "initialize", Err: err}
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return &orm.StorageError{Op: "initialize", Err: err}
		}
	}
	return nil
}

// Statements returns the DDL Initialize executes for dialect d, in order.
// Every statement is safe to run repeatedly.
func Statements(d orm.Dialect) ([]string, error) {
	if d == nil {
		return nil, fmt.Errorf("schema: nil dialect")
	}
	qi := d.QuoteIdent
	collections, items := query.CollectionsTable(), query.ItemsTable()

	switch d.Name() {
	case "sqlite":
		return append([]string{
			fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n"+
				"\t%s INTEGER PRIMARY KEY AUTOINCREMENT,\n"+
				"\t%s TEXT NOT NULL\n)",
				qi(collections), qi("id"), qi("owner")),
			fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n"+
				"\t%s INTEGER PRIMARY KEY AUTOINCREMENT,\n"+
				"\t%s TEXT NOT NULL UNIQUE,\n"+
				"%s\n)",
				qi(items), qi("id"), qi("name"), slotColumns(d, "INTEGER", collections)),
		}, indexStatements(d, collections, items)...), nil
	case "postgres":
		return append([]string{
			fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n"+
				"\t%s BIGSERIAL PRIMARY KEY,\n"+
				"\t%s TEXT NOT NULL\n)",
				qi(collections), qi("id"), qi("owner")),
			fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n"+
				"\t%s BIGSERIAL PRIMARY KEY,\n"+
				"\t%s TEXT NOT NULL UNIQUE,\n"+
				"%s\n)",
				qi(items), qi("id"), qi("name"), slotColumns(d, "BIGINT", collections)),
		}, indexStatements(d, collections, items)...), nil
	case "mysql":
		// MySQL has no CREATE INDEX IF NOT EXISTS, so indexes are declared
		// inline. utf8mb4_bin keeps owner and name comparisons exact.
		return []string{
			fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n"+
				"\t%s BIGINT AUTO_INCREMENT PRIMARY KEY,\n"+
				"\t%s VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,\n"+
				"\tINDEX %s (%s)\n"+
				") ENGINE=InnoDB",
				qi(collections), qi("id"), qi("owner"),
				qi(indexName(collections, "owner")), qi("owner")),
			fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n"+
				"\t%s BIGINT AUTO_INCREMENT PRIMARY KEY,\n"+
				"\t%s VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL UNIQUE,\n"+
				"%s\n"+
				") ENGINE=InnoDB",
				qi(items), qi("id"), qi("name"), slotColumns(d, "BIGINT", collections)),
		}, nil
	default:
		return nil, fmt.Errorf("schema: unsupported dialect %q", d.Name())
	}
}

// slotColumns renders the three nullable foreign key columns of items.
func slotColumns(d orm.Dialect, intType, collections string) string {
	qi := d.QuoteIdent
	mysql := d.Name() == "mysql"
	lines := make([]string, 0, 2*len(model.Slots))
	for _, slot := range model.Slots {
		col := qi(slot.Column())
		if mysql {
			lines = append(lines, fmt.Sprintf("\t%s %s NULL", col, intType))
		} else {
			lines = append(lines, fmt.Sprintf("\t%s %s REFERENCES %s (%s)", col, intType, qi(collections), qi("id")))
		}
	}
	if mysql {
		// InnoDB ignores inline REFERENCES; the constraints must be table-level.
		// Each FOREIGN KEY also gets an implicit index.
		for _, slot := range model.Slots {
			lines = append(lines, fmt.Sprintf("\tFOREIGN KEY (%s) REFERENCES %s (%s)",
				qi(slot.Column()), qi(collections), qi("id")))
		}
	}
	return strings.Join(lines, ",\n")
}

func indexStatements(d orm.Dialect, collections, items string) []string {
	qi := d.QuoteIdent
	stmts := []string{
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			qi(indexName(collections, "owner")), qi(collections), qi("owner")),
	}
	for _, slot := range model.Slots {
		col := slot.Column()
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			qi(indexName(items, col)), qi(items), qi(col)))
	}
	return stmts
}

func indexName(table, column string) string {
	return "idx_" + table + "_" + column
}
