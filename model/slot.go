package model

import "github.com/mickamy/ownq/internal/naming"

// Slot is one of the three fixed reference positions on an Item.
type Slot int

const (
	SlotA Slot = iota
	SlotB
	SlotC
)

// Slots lists every slot in column order.
var Slots = [...]Slot{SlotA, SlotB, SlotC}

// Field returns the snake_case relation name of the slot ("collection_a", …),
// used as its join alias.
func (s Slot) Field() string {
	return naming.Alias(s.Relation())
}

// Column returns the foreign key column of the slot ("collection_a_id", …).
func (s Slot) Column() string {
	return naming.ForeignKey(s.Relation())
}

// Relation returns the Go field name of the resolved collection ("CollectionA", …).
func (s Slot) Relation() string {
	switch s {
	case SlotA:
		return "CollectionA"
	case SlotB:
		return "CollectionB"
	case SlotC:
		return "CollectionC"
	default:
		return ""
	}
}

func (s Slot) String() string {
	switch s {
	case SlotA:
		return "A"
	case SlotB:
		return "B"
	case SlotC:
		return "C"
	default:
		return "?"
	}
}
