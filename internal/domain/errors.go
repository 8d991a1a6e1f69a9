package domain

import "errors"

var (
	// ErrNotFound: no row for the given id/slug. A normal outcome, not an
	// exception path.
	ErrNotFound = errors.New("not found")

	// ErrConflict: unique-constraint violation (duplicate slug). Surfaced
	// distinctly so the editor can show a field-level error.
	ErrConflict = errors.New("conflict")
)
