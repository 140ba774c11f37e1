// Package model defines the entities stored by ownq.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Collection is a grouping resource that belongs to exactly one owner.
type Collection struct {
	ID    int64
	Owner string
}

// String lists the fields by name, e.g. Collection(id=1, owner="user1").
func (c Collection) String() string {
	return fmt.Sprintf("Collection(id=%d, owner=%q)", c.ID, c.Owner)
}

// Item references three collections through slots A, B and C. The
// reference columns are nullable at the storage level; a nil ID means the
// slot is unset. The Collection pointers are populated only when a query
// joins the slots.
type Item struct {
	ID            int64
	Name          string
	CollectionAID *int64
	CollectionBID *int64
	CollectionCID *int64
	CollectionA   *Collection
	CollectionB   *Collection
	CollectionC   *Collection
}

// String lists the fields by name in column order, with each resolved
// collection rendered after its reference column.
func (i Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Item(id=%d, name=%q", i.ID, i.Name)
	for _, s := range Slots {
		id, c := i.Slot(s)
		fmt.Fprintf(&b, ", %s_id=%s, %s=%s", s.Field(), formatID(id), s.Field(), formatCollection(c))
	}
	b.WriteByte(')')
	return b.String()
}

// Slot returns the reference ID and resolved collection held in slot s.
func (i Item) Slot(s Slot) (*int64, *Collection) {
	switch s {
	case SlotA:
		return i.CollectionAID, i.CollectionA
	case SlotB:
		return i.CollectionBID, i.CollectionB
	case SlotC:
		return i.CollectionCID, i.CollectionC
	default:
		return nil, nil
	}
}

// Owners returns the owners of the resolved collections in slot order.
// Unresolved slots yield an empty string.
func (i Item) Owners() [3]string {
	var owners [3]string
	for n, s := range Slots {
		if _, c := i.Slot(s); c != nil {
			owners[n] = c.Owner
		}
	}
	return owners
}

func formatID(id *int64) string {
	if id == nil {
		return "nil"
	}
	return strconv.FormatInt(*id, 10)
}

func formatCollection(c *Collection) string {
	if c == nil {
		return "nil"
	}
	return c.String()
}
