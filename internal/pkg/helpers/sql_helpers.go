package helpers

import "database/sql"

// IntFromNull converts a nullable integer column into an *int, nil when NULL.
func IntFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
