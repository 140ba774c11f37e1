package orm

// TableNamer can be implemented by model structs to override the
// default table name.
type TableNamer interface {
	TableName() string
}

// ResolveTableName returns the table name for type T.
// If T implements TableNamer (value or pointer receiver) and returns a
// non-empty name, that name is used; otherwise fallback is returned.
func ResolveTableName[T any](fallback string) string {
	var zero T
	if tn, ok := any(&zero).(TableNamer); ok {
		if name := tn.TableName(); name != "" {
			return name
		}
	}
	return fallback
}
