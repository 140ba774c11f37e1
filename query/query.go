// Package query provides typed query factories for the ownq entities.
package query

import (
	"database/sql"

	"github.com/mickamy/ownq/internal/naming"
	"github.com/mickamy/ownq/model"
	"github.com/mickamy/ownq/orm"
)

// CollectionsTable returns the resolved table name for model.Collection.
func CollectionsTable() string {
	return orm.ResolveTableName[model.Collection](naming.TableName("Collection"))
}

// ItemsTable returns the resolved table name for model.Item.
func ItemsTable() string {
	return orm.ResolveTableName[model.Item](naming.TableName("Item"))
}

// Collections returns a new Query for the collections table.
func Collections(db orm.Querier) *orm.Query[model.Collection] {
	return orm.NewQuery[model.Collection](
		db, CollectionsTable(), collectionsColumns, "id",
		scanCollection, collectionColumnValuePairs, setCollectionPK,
	)
}

var collectionsColumns = []string{"id", "owner"}

func scanCollection(rows *sql.Rows) (model.Collection, error) {
	cols, err := rows.Columns()
	if err != nil {
		return model.Collection{}, err //nolint:wrapcheck // pass through
	}
	var v model.Collection
	dest := make([]any, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			dest[i] = &v.ID
		case "owner":
			dest[i] = &v.Owner
		default:
			dest[i] = new(any)
		}
	}
	err = rows.Scan(dest...)
	return v, err //nolint:wrapcheck // pass through
}

func collectionColumnValuePairs(v *model.Collection, includesPK bool) ([]string, []any) {
	if includesPK {
		return []string{"id", "owner"}, []any{v.ID, v.Owner}
	}
	return []string{"owner"}, []any{v.Owner}
}

func setCollectionPK(v *model.Collection, id int64) {
	v.ID = id
}

// Items returns a new Query for the items table. Each slot is registered as
// a join under its own alias of the collections table, so Join("CollectionA"),
// Join("CollectionB") and Join("CollectionC") can be combined in one statement.
func Items(db orm.Querier) *orm.Query[model.Item] {
	q := orm.NewQuery[model.Item](
		db, ItemsTable(), itemsColumns, "id",
		scanItem, itemColumnValuePairs, setItemPK,
	)
	for _, s := range model.Slots {
		q.RegisterJoin(s.Relation(), orm.JoinConfig{
			TargetTable: CollectionsTable(), TargetColumn: "id",
			SourceTable: ItemsTable(), SourceColumn: s.Column(),
			Alias:         s.Field(),
			SelectColumns: collectionsColumns,
		})
	}
	return q
}

var itemsColumns = []string{"id", "name", "collection_a_id", "collection_b_id", "collection_c_id"}

type joinedCollection struct {
	id    sql.NullInt64
	owner sql.NullString
}

func scanItem(rows *sql.Rows) (model.Item, error) {
	cols, err := rows.Columns()
	if err != nil {
		return model.Item{}, err //nolint:wrapcheck // pass through
	}
	var v model.Item
	var fks [3]sql.NullInt64
	var joined [3]joinedCollection
	dest := make([]any, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			dest[i] = &v.ID
		case "name":
			dest[i] = &v.Name
		case "collection_a_id":
			dest[i] = &fks[model.SlotA]
		case "collection_b_id":
			dest[i] = &fks[model.SlotB]
		case "collection_c_id":
			dest[i] = &fks[model.SlotC]
		case "collection_a__id":
			dest[i] = &joined[model.SlotA].id
		case "collection_a__owner":
			dest[i] = &joined[model.SlotA].owner
		case "collection_b__id":
			dest[i] = &joined[model.SlotB].id
		case "collection_b__owner":
			dest[i] = &joined[model.SlotB].owner
		case "collection_c__id":
			dest[i] = &joined[model.SlotC].id
		case "collection_c__owner":
			dest[i] = &joined[model.SlotC].owner
		default:
			dest[i] = new(any)
		}
	}
	if err := rows.Scan(dest...); err != nil {
		return v, err //nolint:wrapcheck // pass through
	}
	v.CollectionAID = nullableID(fks[model.SlotA])
	v.CollectionBID = nullableID(fks[model.SlotB])
	v.CollectionCID = nullableID(fks[model.SlotC])
	v.CollectionA = joined[model.SlotA].collection()
	v.CollectionB = joined[model.SlotB].collection()
	v.CollectionC = joined[model.SlotC].collection()
	return v, nil
}

func (j joinedCollection) collection() *model.Collection {
	if !j.id.Valid {
		return nil
	}
	return &model.Collection{ID: j.id.Int64, Owner: j.owner.String}
}

func nullableID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}

func itemColumnValuePairs(v *model.Item, includesPK bool) ([]string, []any) {
	if includesPK {
		return []string{"id", "name", "collection_a_id", "collection_b_id", "collection_c_id"},
			[]any{v.ID, v.Name, v.CollectionAID, v.CollectionBID, v.CollectionCID}
	}
	return []string{"name", "collection_a_id", "collection_b_id", "collection_c_id"},
		[]any{v.Name, v.CollectionAID, v.CollectionBID, v.CollectionCID}
}

func setItemPK(v *model.Item, id int64) {
	v.ID = id
}
