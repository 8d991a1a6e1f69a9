package catalog

import (
	"strings"

	"estate_catalog/internal/domain"
)

// ListFilter carries the caller-supplied filter dimensions. These seven are
// the only filterable dimensions; anything else a caller sends never reaches
// here. Active is kept loose on purpose: the surface encodes it as bool,
// 0/1, "0"/"1" or "true"/"false" depending on the client.
type ListFilter struct {
	Search   string
	Active   any
	Slug     string
	District string
	City     string
	Type     string
	Status   string
}

// Columns the free-text search expands over (OR of substring matches).
// LIKE is case-insensitive under the schema's _ci collation.
var searchColumns = []string{"title", "address", "district", "city", "type", "status"}

var exactColumns = []string{"slug", "district", "city", "type", "status"}

// BuildPredicate turns a ListFilter into the conjunction handed to storage.
// Only the fixed column literals above appear in the WHERE text; every
// caller value travels as a ? argument. The same predicate must be reused
// for the page and the count query.
func BuildPredicate(f ListFilter) domain.Predicate {
	var conds []string
	var args []any

	if b, ok := ParseActive(f.Active); ok {
		conds = append(conds, "is_active = ?")
		args = append(args, b)
	}

	for i, v := range []string{f.Slug, f.District, f.City, f.Type, f.Status} {
		if t := strings.TrimSpace(v); t != "" {
			conds = append(conds, exactColumns[i]+" = ?")
			args = append(args, t)
		}
	}

	if q := strings.TrimSpace(f.Search); q != "" {
		like := "%" + q + "%"
		parts := make([]string, len(searchColumns))
		for i, c := range searchColumns {
			parts[i] = c + " LIKE ?"
			args = append(args, like)
		}
		conds = append(conds, "("+strings.Join(parts, " OR ")+")")
	}

	return domain.Predicate{Where: strings.Join(conds, " AND "), Args: args}
}

// ParseActive normalizes the surface encodings of the active flag. The
// second return is false for absent or unrecognized values, which means "no
// filter on this dimension" — never an error.
func ParseActive(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case int:
		if t == 0 || t == 1 {
			return t == 1, true
		}
	case float64:
		if t == 0 || t == 1 {
			return t == 1, true
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true":
			return true, true
		case "0", "false":
			return false, true
		}
	}
	return false, false
}
