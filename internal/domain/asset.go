package domain

// Asset kinds. Anything else coming from a client is coerced to image.
const (
	AssetImage = "image"
	AssetVideo = "video"
	AssetPlan  = "plan"
)

// Asset is one gallery entry. A property exclusively owns its asset list;
// DisplayOrder is the authoritative sequence (dense 0..n-1).
type Asset struct {
	ID           string  `json:"id"`
	AssetID      *string `json:"asset_id"`
	URL          *string `json:"url"`
	Alt          *string `json:"alt"`
	Kind         string  `json:"kind"`
	Mime         *string `json:"mime"`
	IsCover      bool    `json:"is_cover"`
	DisplayOrder int     `json:"display_order"`
}

// CoverMirror is the legacy standalone cover triple stored on the property
// row, kept in sync with the gallery's cover asset.
type CoverMirror struct {
	ImageURL     *string
	ImageAssetID *string
	Alt          *string
}
