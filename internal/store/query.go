package store

import "strings"

// PageSize is the fixed page size for every collection read.
const PageSize = 10

// QueryOptions shapes an owner-scoped collection read: free-text search,
// explicit ordering, and a 1-based page number.
type QueryOptions struct {
	Search   string
	Ordering string
	Page     int
}

// Offset returns the SQL offset for the requested page.
func (o QueryOptions) Offset() int {
	page := o.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

// orderClause resolves the requested ordering against a whitelist of
// exposed-field-to-column mappings, falling back to def when the field
// is unknown or no ordering was requested. A leading '-' requests
// descending order.
func orderClause(fields map[string]string, ordering, def string) string {
	ordering = strings.TrimSpace(ordering)
	if ordering == "" {
		return def
	}
	desc := strings.HasPrefix(ordering, "-")
	col, ok := fields[strings.TrimPrefix(ordering, "-")]
	if !ok {
		return def
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

// searchPattern builds a case-insensitive substring LIKE pattern.
func searchPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
