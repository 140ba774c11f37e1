package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/mickamy/ownq/internal/dberr"
	"github.com/mickamy/ownq/model"
	"github.com/mickamy/ownq/orm"
	"github.com/mickamy/ownq/query"
)

// SeedItem describes one item to create together with its three collections.
type SeedItem struct {
	Name   string
	OwnerA string
	OwnerB string
	OwnerC string
}

// Owner returns the owner requested for slot s.
func (s SeedItem) Owner(slot model.Slot) string {
	switch slot {
	case model.SlotA:
		return s.OwnerA
	case model.SlotB:
		return s.OwnerB
	case model.SlotC:
		return s.OwnerC
	default:
		return ""
	}
}

var (
	// ErrEmptyName is wrapped in a *orm.IntegrityError for a SeedItem without a name.
	ErrEmptyName = errors.New("ownership: item name must not be empty")
	// ErrDuplicateName is wrapped when a batch names the same item twice.
	ErrDuplicateName = errors.New("ownership: duplicate item name in batch")
)

// Seed creates, for every spec in order, three fresh collections and an
// item referencing them, all inside one transaction. Either the whole batch
// is persisted or none of it is.
//
// Invalid input and constraint violations (such as a name that already
// exists in the store) are reported as *orm.IntegrityError; any other store
// failure as *orm.StorageError. The returned items carry their assigned ids
// and resolved collections.
func Seed(ctx context.Context, db *orm.DB, specs []SeedItem) ([]model.Item, error) {
	const op = "seed"
	if !orm.Valid(db) {
		return nil, &orm.StorageError{Op: op, Err: ErrNilQuerier}
	}
	if err := validate(specs); err != nil {
		return nil, &orm.IntegrityError{Op: op, Err: err}
	}
	if len(specs) == 0 {
		return []model.Item{}, nil
	}

	created := make([]model.Item, 0, len(specs))
	err := db.Transaction(ctx, func(tx *orm.Tx) error {
		for _, spec := range specs {
			item, err := seedOne(ctx, tx, spec)
			if err != nil {
				return err
			}
			created = append(created, item)
		}
		return nil
	})
	if err != nil {
		if dberr.IsConstraintViolation(err) {
			return nil, &orm.IntegrityError{Op: op, Err: err}
		}
		return nil, &orm.StorageError{Op: op, Err: err}
	}
	return created, nil
}

func seedOne(ctx context.Context, tx *orm.Tx, spec SeedItem) (model.Item, error) {
	item := model.Item{Name: spec.Name}
	var collections [len(model.Slots)]*model.Collection
	for i, slot := range model.Slots {
		c := &model.Collection{Owner: spec.Owner(slot)}
		if err := query.Collections(tx).Create(ctx, c); err != nil {
			return model.Item{}, fmt.Errorf("create collection %s for %q: %w", slot, spec.Name, err)
		}
		collections[i] = c
	}

	item.CollectionA, item.CollectionB, item.CollectionC = collections[0], collections[1], collections[2]
	item.CollectionAID = &collections[0].ID
	item.CollectionBID = &collections[1].ID
	item.CollectionCID = &collections[2].ID

	if err := query.Items(tx).Create(ctx, &item); err != nil {
		return model.Item{}, fmt.Errorf("create item %q: %w", spec.Name, err)
	}
	return item, nil
}

func validate(specs []SeedItem) error {
	seen := make(map[string]struct{}, len(specs))
	for i, spec := range specs {
		if spec.Name == "" {
			return fmt.Errorf("spec %d: %w", i, ErrEmptyName)
		}
		if _, dup := seen[spec.Name]; dup {
			return fmt.Errorf("spec %d (%q): %w", i, spec.Name, ErrDuplicateName)
		}
		seen[spec.Name] = struct{}{}
		for _, slot := range model.Slots {
			if spec.Owner(slot) == "" {
				return fmt.Errorf("spec %d (%q) slot %s: %w", i, spec.Name, slot, ErrEmptyOwner)
			}
		}
	}
	return nil
}
