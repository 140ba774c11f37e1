// Package naming derives SQL identifiers from Go type and field names.
package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// CamelToSnake converts a CamelCase string to snake_case.
// Consecutive uppercase letters (acronyms) are kept together:
// "ID" → "id", "CollectionAID" → "collection_aid", "CreatedAt" → "created_at".
func CamelToSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				next := rune(0)
				if i+1 < len(runes) {
					next = runes[i+1]
				}
				if unicode.IsLower(prev) || (unicode.IsUpper(prev) && unicode.IsLower(next)) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TableName converts a type name to its default snake_case plural table name.
// e.g. "Item" → "items", "Collection" → "collections", "DataCollection" → "data_collections".
func TableName(typeName string) string {
	return inflection.Plural(CamelToSnake(typeName))
}

// Alias returns the join alias for a relation field, e.g. "CollectionA" → "collection_a".
func Alias(fieldName string) string {
	return CamelToSnake(fieldName)
}

// ForeignKey returns the foreign key column for a relation field,
// e.g. "CollectionA" → "collection_a_id".
func ForeignKey(fieldName string) string {
	return CamelToSnake(fieldName) + "_id"
}
