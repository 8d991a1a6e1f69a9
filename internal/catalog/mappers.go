package catalog

import (
	"strconv"
	"strings"

	"estate_catalog/internal/domain"
)

// ToView maps a stored row to the consumer-facing read model: coordinate
// decimals become numeric, description stays present-or-null, the active
// flag is already a strict bool out of storage.
func ToView(p domain.Property) domain.PropertyView {
	return domain.PropertyView{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Type:         p.Type,
		Status:       p.Status,
		Address:      p.Address,
		District:     p.District,
		City:         p.City,
		Coords:       parseCoords(p.Lat, p.Lng),
		Description:  p.Description,
		IsActive:     p.IsActive,
		DisplayOrder: p.DisplayOrder,
		ImageURL:     p.ImageURL,
		ImageAlt:     p.ImageAlt,
		Assets:       p.Assets,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// parseCoords: both components must parse, otherwise no coordinate pair.
func parseCoords(lat, lng string) *domain.Coords {
	la, err1 := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	ln, err2 := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	return &domain.Coords{Lat: la, Lng: ln}
}
