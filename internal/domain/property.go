package domain

import "time"

// Property is the stored form of a listing. Coordinates are kept as the
// DECIMAL strings the database hands back; the view mapping parses them.
type Property struct {
	ID           string
	Title        string
	Slug         string
	Type         string
	Status       string
	Address      string
	District     string
	City         string
	Lat          string
	Lng          string
	Description  *string
	IsActive     bool
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Legacy single-cover mirror. The asset list is authoritative once any
	// asset exists; these columns follow the cover.
	ImageURL     *string
	ImageAssetID *string
	ImageAlt     *string

	Assets []Asset
}

// PropertyView is the consumer-facing read model.
type PropertyView struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	Type         string       `json:"type"`
	Status       string       `json:"status"`
	Address      string       `json:"address"`
	District     string       `json:"district"`
	City         string       `json:"city"`
	Coords       *Coords      `json:"coords"`
	Description  *string      `json:"description"`
	IsActive     bool         `json:"is_active"`
	DisplayOrder int          `json:"display_order"`
	ImageURL     *string      `json:"image_url"`
	ImageAlt     *string      `json:"image_alt"`
	Assets       []Asset      `json:"assets,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ListPage pairs one page of views with the total count matching the same
// predicate.
type ListPage struct {
	Items []PropertyView `json:"items"`
	Total int            `json:"total"`
}

// Predicate is an opaque filter handed from the predicate builder to the
// repository. Where contains only fixed column literals and ? placeholders;
// caller-supplied values travel exclusively in Args. Empty Where means the
// universal predicate.
type Predicate struct {
	Where string
	Args  []any
}

// Sort is a resolved (column, direction) pair. Column is always one of the
// allow-listed identifiers; nothing caller-controlled reaches it.
type Sort struct {
	Column string
	Desc   bool
}
