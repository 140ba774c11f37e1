// Package ownership seeds items with their three collections and finds the
// items whose collections all belong to one owner.
package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/mickamy/ownq/model"
	"github.com/mickamy/ownq/orm"
	"github.com/mickamy/ownq/query"
	"github.com/mickamy/ownq/scope"
)

var (
	// ErrEmptyOwner is wrapped in a *orm.QueryError when the owner argument is empty.
	ErrEmptyOwner = errors.New("ownership: owner must not be empty")
	// ErrNilQuerier is wrapped when no store handle is given.
	ErrNilQuerier = errors.New("ownership: nil or uninitialized store handle")
)

// FindItemsOwnedBy returns every item whose collections in slots A, B and C
// are all owned by owner. Owners are compared exactly. Items with a null or
// dangling slot never match. Results are ordered by item id and carry their
// resolved collections; no match yields an empty slice.
//
// The lookup is a single statement joining the collections table three
// times, once per slot under its own alias. Extra scopes (pagination, name
// filters, ordering) are applied after the ownership predicate; an OrderBy
// scope takes precedence over the id order.
func FindItemsOwnedBy(ctx context.Context, db orm.Querier, owner string, scopes ...scope.Scope) ([]model.Item, error) {
	const op = "find items owned by"
	q, err := ownedBy(db, owner)
	if err != nil {
		return nil, &orm.QueryError{Op: op, Err: err}
	}
	items, err := q.Scopes(scopes...).OrderBy(query.ItemsTable() + ".id").All(ctx)
	if err != nil {
		return nil, &orm.QueryError{Op: op, Err: err}
	}
	return items, nil
}

// CountItemsOwnedBy returns how many items FindItemsOwnedBy would return for
// owner without pagination. Where scopes narrow the count the same way.
func CountItemsOwnedBy(ctx context.Context, db orm.Querier, owner string, scopes ...scope.Scope) (int64, error) {
	const op = "count items owned by"
	q, err := ownedBy(db, owner)
	if err != nil {
		return 0, &orm.QueryError{Op: op, Err: err}
	}
	n, err := q.Scopes(scopes...).Count(ctx)
	if err != nil {
		return 0, &orm.QueryError{Op: op, Err: err}
	}
	return n, nil
}

func ownedBy(db orm.Querier, owner string) (*orm.Query[model.Item], error) {
	if !orm.Valid(db) {
		return nil, ErrNilQuerier
	}
	if owner == "" {
		return nil, ErrEmptyOwner
	}
	q := query.Items(db)
	for _, s := range model.Slots {
		q = q.Join(s.Relation()).Where(s.Field()+".owner = ?", owner)
	}
	return q, nil
}

// ItemByName returns the item called name with its slots resolved. Slots
// that are null stay unresolved. A missing item is a *orm.QueryError
// wrapping orm.ErrNotFound.
func ItemByName(ctx context.Context, db orm.Querier, name string) (model.Item, error) {
	const op = "item by name"
	if !orm.Valid(db) {
		return model.Item{}, &orm.QueryError{Op: op, Err: ErrNilQuerier}
	}

	q := query.Items(db)
	for _, s := range model.Slots {
		q = q.LeftJoin(s.Relation())
	}
	item, err := q.Where(query.ItemsTable()+".name = ?", name).First(ctx)
	if err != nil {
		return model.Item{}, &orm.QueryError{Op: op, Err: fmt.Errorf("%q: %w", name, err)}
	}
	return item, nil
}
