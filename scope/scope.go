// Package scope holds reusable query fragments that narrow, order or page an
// ownership lookup without widening its signature. Any builder implementing
// Applier accepts them.
package scope

import "strings"

// Applier is implemented by query builders to receive scope fragments.
// It lives here so that orm can import scope without an import cycle.
type Applier interface {
	ApplyWhere(clause string, args []any)
	ApplyOrderBy(clause string)
	ApplyLimit(n int)
	ApplyOffset(n int)
}

// Scope is one fragment. It carries no state beyond its arguments, so the
// same Scope can be applied to any number of queries.
type Scope struct {
	apply func(Applier)
}

// Apply hands the fragment to a. The zero Scope does nothing.
func (s Scope) Apply(a Applier) {
	if s.apply != nil {
		s.apply(a)
	}
}

// Where adds a WHERE fragment. Fragments are joined with AND.
//
//	scope.Where("items.name LIKE ?", "data%")
func Where(clause string, args ...any) Scope {
	return Scope{apply: func(a Applier) { a.ApplyWhere(clause, args) }}
}

// OrderBy appends an ORDER BY term ahead of the query's own ordering.
//
//	scope.OrderBy("items.id DESC")
func OrderBy(clause string) Scope {
	return Scope{apply: func(a Applier) { a.ApplyOrderBy(clause) }}
}

func Limit(n int) Scope {
	return Scope{apply: func(a Applier) { a.ApplyLimit(n) }}
}

func Offset(n int) Scope {
	return Scope{apply: func(a Applier) { a.ApplyOffset(n) }}
}

// In matches column against values, one placeholder per value. No values
// match nothing.
//
//	scope.In("items.name", []string{"data1", "data3"})  // items.name IN (?, ?)
func In[T any](column string, values []T) Scope {
	if len(values) == 0 {
		return Where("1 = 0")
	}
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	return Where(column+" IN ("+placeholders+")", args...)
}

// Paginate returns LIMIT/OFFSET scopes. A non-positive limit leaves the
// result unbounded and a non-positive offset is omitted.
func Paginate(limit, offset int) Scopes {
	var ss Scopes
	if limit > 0 {
		ss = ss.Append(Limit(limit))
	}
	if offset > 0 {
		ss = ss.Append(Offset(offset))
	}
	return ss
}

// Scopes collects fragments built up conditionally.
type Scopes []Scope

// Append returns a new Scopes; the receiver is left untouched.
func (ss Scopes) Append(scopes ...Scope) Scopes {
	return append(append(Scopes(nil), ss...), scopes...)
}
