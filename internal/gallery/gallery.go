// Package gallery maintains the ordered asset list of one property under
// edit: exactly one cover while non-empty, dense display order, and the
// legacy single-cover mirror derived from the list. All operations are pure
// (input list is never mutated) and synchronous; the editing session is
// assumed to have exclusive access to its list.
package gallery

import (
	"crypto/rand"
	"encoding/hex"

	"estate_catalog/internal/domain"
)

// Reindex rewrites display_order to the dense sequence 0..n-1 matching list
// order. Every mutating operation ends with it, so callers never observe
// gaps or duplicates.
func Reindex(list []domain.Asset) []domain.Asset {
	out := clone(list)
	for i := range out {
		out[i].DisplayOrder = i
	}
	return out
}

// EnsureCover promotes the first element when a non-empty list has no cover.
// Idempotent.
func EnsureCover(list []domain.Asset) []domain.Asset {
	out := clone(list)
	if len(out) == 0 {
		return out
	}
	for i := range out {
		if out[i].IsCover {
			return out
		}
	}
	out[0].IsCover = true
	return out
}

// SetCover makes the element at index the only cover. Index is
// caller-validated; passing one not obtained from the current list is a
// programming error.
func SetCover(list []domain.Asset, index int) []domain.Asset {
	out := clone(list)
	for i := range out {
		out[i].IsCover = i == index
	}
	return Reindex(out)
}

// RemoveAt drops the element at index, re-promoting a cover if the removed
// element carried it.
func RemoveAt(list []domain.Asset, index int) []domain.Asset {
	out := make([]domain.Asset, 0, len(list)-1)
	for i, a := range list {
		if i == index {
			continue
		}
		out = append(out, a)
	}
	return Reindex(EnsureCover(out))
}

// AppendUploaded maps normalized upload results into new image assets
// appended at the end. Alt text defaults to the source filename with its
// extension stripped. The first batch into an empty gallery gets a cover
// automatically via EnsureCover.
func AppendUploaded(list []domain.Asset, ups []Upload) []domain.Asset {
	out := clone(list)
	for _, u := range ups {
		a := domain.Asset{
			ID:      newAssetID(),
			Kind:    domain.AssetImage,
			IsCover: false,
		}
		if u.ID != "" {
			a.AssetID = strPtr(u.ID)
		}
		if u.URL != "" {
			a.URL = strPtr(u.URL)
		}
		if alt := AltFromName(u.Name); alt != "" {
			a.Alt = strPtr(alt)
		}
		out = append(out, a)
	}
	return Reindex(EnsureCover(out))
}

// UpsertCoverFromUpload promotes the asset backed by assetID to cover,
// refreshing its url/alt (non-empty values only; existing values are kept
// otherwise). When no asset carries that id, a new cover asset is prepended
// so the cover visually leads the gallery.
func UpsertCoverFromUpload(list []domain.Asset, assetID, url, alt string) []domain.Asset {
	out := clone(list)
	found := -1
	for i := range out {
		if out[i].AssetID != nil && *out[i].AssetID == assetID {
			found = i
			break
		}
	}
	if found >= 0 {
		if url != "" {
			out[found].URL = strPtr(url)
		}
		if alt != "" {
			out[found].Alt = strPtr(alt)
		}
		for i := range out {
			out[i].IsCover = i == found
		}
		return Reindex(EnsureCover(out))
	}

	fresh := domain.Asset{
		ID:      newAssetID(),
		Kind:    domain.AssetImage,
		IsCover: true,
	}
	if assetID != "" {
		fresh.AssetID = strPtr(assetID)
	}
	if url != "" {
		fresh.URL = strPtr(url)
	}
	if alt != "" {
		fresh.Alt = strPtr(alt)
	}
	for i := range out {
		out[i].IsCover = false
	}
	out = append([]domain.Asset{fresh}, out...)
	return Reindex(EnsureCover(out))
}

// Mirror derives the legacy single-cover triple from the current cover.
// Empty list yields the zero triple (all fields cleared).
func Mirror(list []domain.Asset) domain.CoverMirror {
	for _, a := range list {
		if a.IsCover {
			return domain.CoverMirror{ImageURL: a.URL, ImageAssetID: a.AssetID, Alt: a.Alt}
		}
	}
	return domain.CoverMirror{}
}

func clone(list []domain.Asset) []domain.Asset {
	out := make([]domain.Asset, len(list))
	copy(out, list)
	return out
}

func strPtr(s string) *string { return &s }

// newAssetID returns a client-assigned opaque id for a fresh gallery entry.
func newAssetID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
