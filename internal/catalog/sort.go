package catalog

import (
	"strings"

	"estate_catalog/internal/domain"
)

// Sortable columns. Creation/update timestamps only — ordering by anything
// else is rejected, not sanitized (unindexed or injectable sort columns are
// a hard boundary).
var sortColumns = map[string]string{
	"created": "created_at",
	"updated": "updated_at",
}

// DefaultSort is ascending display order.
var DefaultSort = domain.Sort{Column: "display_order", Desc: false}

// ResolveSort resolves a sort directive. The combined "column.direction"
// token wins when it parses; a structurally invalid token is treated as
// absent and the split column/dir fields are consulted; otherwise the
// default applies. Malformed input is discarded, never errored.
func ResolveSort(token, column, dir string) domain.Sort {
	if s, ok := parseSortToken(token); ok {
		return s
	}
	if col, ok := sortColumns[strings.TrimSpace(column)]; ok {
		return domain.Sort{Column: col, Desc: isDesc(dir)}
	}
	return DefaultSort
}

func parseSortToken(token string) (domain.Sort, bool) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 2 {
		return domain.Sort{}, false
	}
	col, ok := sortColumns[parts[0]]
	if !ok {
		return domain.Sort{}, false
	}
	switch parts[1] {
	case "asc":
		return domain.Sort{Column: col, Desc: false}, true
	case "desc":
		return domain.Sort{Column: col, Desc: true}, true
	}
	return domain.Sort{}, false
}

func isDesc(dir string) bool {
	return strings.EqualFold(strings.TrimSpace(dir), "desc")
}
