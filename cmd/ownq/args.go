package main

import (
	"fmt"
	"strings"

	"github.com/mickamy/ownq/ownership"
)

// parseSeedItem parses NAME:OWNER_A,OWNER_B,OWNER_C.
func parseSeedItem(arg string) (ownership.SeedItem, error) {
	name, owners, ok := strings.Cut(arg, ":")
	if !ok || name == "" {
		return ownership.SeedItem{}, fmt.Errorf("invalid item %q: want NAME:OWNER_A,OWNER_B,OWNER_C", arg)
	}
	parts := strings.Split(owners, ",")
	if len(parts) != 3 {
		return ownership.SeedItem{}, fmt.Errorf("invalid item %q: want exactly three owners, got %d", arg, len(parts))
	}
	for _, p := range parts {
		if p == "" {
			return ownership.SeedItem{}, fmt.Errorf("invalid item %q: empty owner", arg)
		}
	}
	return ownership.SeedItem{Name: name, OwnerA: parts[0], OwnerB: parts[1], OwnerC: parts[2]}, nil
}
