package orm_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/mickamy/ownq/orm"
	"github.com/mickamy/ownq/scope"
)

type testBox struct {
	ID    int64
	Label string
}

var testBoxColumns = []string{"id", "label"}

func scanTestBox(_ *sql.Rows) (testBox, error) {
	return testBox{}, nil
}

func testBoxColValPairs(b *testBox, includesPK bool) ([]string, []any) {
	if includesPK {
		return []string{"id", "label"}, []any{b.ID, b.Label}
	}
	return []string{"label"}, []any{b.Label}
}

func setTestBoxPK(b *testBox, id int64) {
	b.ID = id
}

func newTestQuery(tq *orm.TestQuerier) *orm.Query[testBox] {
	q := orm.NewQuery[testBox](tq, "boxes", testBoxColumns, "id", scanTestBox, testBoxColValPairs, setTestBoxPK)
	q.RegisterJoin("Shelf", orm.JoinConfig{
		TargetTable: "shelves", TargetColumn: "id",
		SourceTable: "boxes", SourceColumn: "shelf_id",
	})
	q.RegisterJoin("Top", orm.JoinConfig{
		TargetTable: "shelves", TargetColumn: "id",
		SourceTable: "boxes", SourceColumn: "top_id",
		Alias: "top", SelectColumns: []string{"id", "room"},
	})
	q.RegisterJoin("Bottom", orm.JoinConfig{
		TargetTable: "shelves", TargetColumn: "id",
		SourceTable: "boxes", SourceColumn: "bottom_id",
		Alias: "bottom", SelectColumns: []string{"room"},
	})
	return q
}

// --- SELECT ---

func TestBuildSelectAll(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.MySQL)
	q := newTestQuery(tq)

	_, _ = q.All(t.Context())

	got := tq.LastQuery()
	want := "SELECT `id`, `label` FROM `boxes`"
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}

func TestBuildSelectWhere(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.SQLite)
	q := newTestQuery(tq)

	_, _ = q.Where("label = ?", "red").Where("id > ?", 10).All(t.Context())

	got := tq.LastQuery()
	want := `SELECT "id", "label" FROM "boxes" WHERE label = ? AND id > ?`
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
	if len(got.Args) != 2 || got.Args[0] != "red" || got.Args[1] != 10 {
		t.Errorf("Args = %v", got.Args)
	}
}

func TestBuildSelectFull(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.MySQL)
	q := newTestQuery(tq)

	_, _ = q.
		Where("label = ?", "red").
		OrderBy("id DESC").
		Limit(5).
		Offset(10).
		All(t.Context())

	got := tq.LastQuery()
	want := "SELECT `id`, `label` FROM `boxes` WHERE label = ? ORDER BY id DESC LIMIT 5 OFFSET 10"
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}

// --- Scopes ---

func TestBuildSelectWithScopes(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.MySQL)
	q := newTestQuery(tq)

	_, _ = q.Scopes(
		scope.Where("label = ?", "red"),
		scope.OrderBy("id DESC"),
		scope.Limit(5),
		scope.Offset(10),
	).All(t.Context())

	got := tq.LastQuery()
	want := "SELECT `id`, `label` FROM `boxes` WHERE label = ? ORDER BY id DESC LIMIT 5 OFFSET 10"
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}

// --- JOIN ---

func TestBuildJoinWithoutAlias(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.PostgreSQL)
	q := newTestQuery(tq)

	_, _ = q.Join("Shelf").Where("shelves.room = ?", "attic").All(t.Context())

	got := tq.LastQuery()
	want := `SELECT "boxes"."id", "boxes"."label" FROM "boxes" ` +
		`INNER JOIN "shelves" ON "shelves"."id" = "boxes"."shelf_id" WHERE shelves.room = $1`
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}

func TestBuildJoinSameTableTwiceUsesDistinctAliases(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.SQLite)
	q := newTestQuery(tq)

	_, _ = q.Join("Top").LeftJoin("Bottom").
		Where("top.room = ?", "attic").
		Where("bottom.room = ?", "attic").
		All(t.Context())

	got := tq.LastQuery()
	want := `SELECT "boxes"."id", "boxes"."label", ` +
		`"top"."id" AS "top__id", "top"."room" AS "top__room", "bottom"."room" AS "bottom__room" ` +
		`FROM "boxes" ` +
		`INNER JOIN "shelves" AS "top" ON "top"."id" = "boxes"."top_id" ` +
		`LEFT JOIN "shelves" AS "bottom" ON "bottom"."id" = "boxes"."bottom_id" ` +
		`WHERE top.room = ? AND bottom.room = ?`
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
	if len(got.Args) != 2 {
		t.Errorf("Args = %v, want 2 args", got.Args)
	}
}

func TestJoinUnknownNameIsIgnored(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.MySQL)
	q := newTestQuery(tq)

	_, _ = q.Join("Nope").All(t.Context())

	got := tq.LastQuery()
	want := "SELECT `id`, `label` FROM `boxes`"
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}

// --- Immutability ---

func TestQueryImmutability(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.MySQL)
	base := newTestQuery(tq)

	_ = base.Where("label = ?", "red")
	_ = base.OrderBy("id")
	_ = base.Limit(10)
	_ = base.Offset(5)
	_ = base.Join("Top")

	_, _ = base.All(t.Context())

	got := tq.LastQuery()
	want := "SELECT `id`, `label` FROM `boxes`"
	if got.SQL != want {
		t.Errorf("base query was mutated: SQL = %q", got.SQL)
	}
}

// --- COUNT ---

func TestBuildCountWithJoin(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.PostgreSQL)
	q := newTestQuery(tq)

	_, _ = q.Join("Top").Where("top.room = ?", "attic").Count(t.Context())

	got := tq.LastQuery()
	want := `SELECT COUNT(*) FROM "boxes" INNER JOIN "shelves" AS "top" ON "top"."id" = "boxes"."top_id" WHERE top.room = $1`
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}

// --- INSERT ---

func TestBuildInsertMySQL(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.MySQL)
	q := newTestQuery(tq)

	b := testBox{Label: "red"}
	if err := q.Create(t.Context(), &b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got := tq.LastQuery()
	want := "INSERT INTO `boxes` (`label`) VALUES (?)"
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
	if len(got.Args) != 1 || got.Args[0] != "red" {
		t.Errorf("Args = %v", got.Args)
	}
	if b.ID != 7 {
		t.Errorf("ID = %d, want LastInsertId 7", b.ID)
	}
}

func TestBuildInsertPostgreSQL(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.PostgreSQL)
	q := newTestQuery(tq)

	b := testBox{Label: "red"}
	_ = q.Create(t.Context(), &b)

	got := tq.LastQuery()
	want := `INSERT INTO "boxes" ("label") VALUES ($1) RETURNING "id"`
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}

func TestBuildInsertSQLite(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.SQLite)
	q := newTestQuery(tq)

	b := testBox{Label: "red"}
	_ = q.Create(t.Context(), &b)

	got := tq.LastQuery()
	want := `INSERT INTO "boxes" ("label") VALUES (?) RETURNING "id"`
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}

func TestBuildSelectOffsetWithoutLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dialect orm.Dialect
		want    string
	}{
		{orm.MySQL, "SELECT `id`, `label` FROM `boxes` LIMIT 18446744073709551615 OFFSET 3"},
		{orm.PostgreSQL, `SELECT "id", "label" FROM "boxes" OFFSET 3`},
		{orm.SQLite, `SELECT "id", "label" FROM "boxes" LIMIT -1 OFFSET 3`},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.Name(), func(t *testing.T) {
			t.Parallel()

			tq := orm.NewTestQuerier(tt.dialect)
			_, _ = newTestQuery(tq).Offset(3).All(t.Context())

			if got := tq.LastQuery().SQL; got != tt.want {
				t.Errorf("SQL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateExecErrorLeavesPKUnset(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.MySQL)
	tq.ExecErr = errors.New("exec failed")

	b := testBox{Label: "red"}
	if err := newTestQuery(tq).Create(t.Context(), &b); !errors.Is(err, tq.ExecErr) {
		t.Fatalf("err = %v, want %v", err, tq.ExecErr)
	}
	if b.ID != 0 {
		t.Errorf("ID = %d, want 0", b.ID)
	}
}

// --- First ---

func TestFirstAddsLimit(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.MySQL)
	q := newTestQuery(tq)

	_, _ = q.First(t.Context())

	got := tq.LastQuery()
	want := "SELECT `id`, `label` FROM `boxes` LIMIT 1"
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}

func TestTableName(t *testing.T) {
	t.Parallel()

	q := newTestQuery(orm.NewTestQuerier(orm.MySQL))
	if q.Table() != "boxes" {
		t.Errorf("Table() = %q, want %q", q.Table(), "boxes")
	}
}
