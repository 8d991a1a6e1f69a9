package catalog

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"estate_catalog/internal/domain"
	"estate_catalog/internal/gallery"
)

// CommandService owns the write paths: property CRUD, wholesale gallery
// saves and upload attachment. Every successful write evicts the affected
// cache keys (best effort, like the read side's cache-aside).
type CommandService struct {
	repo  domain.PropertyRepository
	media domain.MediaClient
	cache domain.Cache
}

func NewCommandService(r domain.PropertyRepository, m domain.MediaClient, c domain.Cache) *CommandService {
	return &CommandService{repo: r, media: m, cache: c}
}

// CreateProperty assigns an id when the caller did not and persists. A
// duplicate slug surfaces domain.ErrConflict so the editor can attach the
// error to the slug field.
func (s *CommandService) CreateProperty(ctx context.Context, p domain.Property) (domain.Property, error) {
	if p.ID == "" {
		p.ID = newID()
	}
	p.Slug = strings.TrimSpace(p.Slug)
	if err := s.repo.UpsertProperty(ctx, p); err != nil {
		return domain.Property{}, fmt.Errorf("create property: %w", err)
	}
	s.invalidate(ctx, p.Slug)
	return p, nil
}

func (s *CommandService) UpdateProperty(ctx context.Context, p domain.Property) error {
	prev, err := s.repo.GetProperty(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Slug = strings.TrimSpace(p.Slug)
	if err := s.repo.UpsertProperty(ctx, p); err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	// Slug may have changed; evict both.
	s.invalidate(ctx, prev.Slug)
	if p.Slug != prev.Slug {
		s.invalidate(ctx, p.Slug)
	}
	return nil
}

func (s *CommandService) DeleteProperty(ctx context.Context, id string) error {
	prev, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteProperty(ctx, id); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	s.invalidate(ctx, prev.Slug)
	return nil
}

// SaveGallery replaces the property's entire asset set with the desired
// state computed by the editor. The list is passed through the consistency
// engine first, so storage never sees a coverless or gappy gallery, and the
// legacy mirror columns follow the cover.
func (s *CommandService) SaveGallery(ctx context.Context, propertyID string, assets []domain.Asset) ([]domain.Asset, error) {
	prop, err := s.repo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	list := gallery.Reindex(gallery.EnsureCover(assets))
	if err := s.repo.ReplaceAssets(ctx, propertyID, list, gallery.Mirror(list)); err != nil {
		return nil, fmt.Errorf("save gallery: %w", err)
	}
	s.invalidate(ctx, prop.Slug)
	return list, nil
}

// AttachUploads forwards files to the media collaborator, normalizes
// whatever shape it answers with, appends the results to the gallery and
// persists the full new state. Filenames from the request fill in when the
// response does not echo them, so default alt text still works.
func (s *CommandService) AttachUploads(ctx context.Context, propertyID string, files []domain.UploadFile) ([]domain.Asset, error) {
	prop, err := s.repo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	raw, err := s.media.Upload(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}
	ups := gallery.Normalize(raw)
	if len(ups) == 0 {
		log.Warn().Str("property", propertyID).Msg("upload response yielded no usable items")
	}
	for i := range ups {
		if ups[i].Name == "" && i < len(files) {
			ups[i].Name = files[i].Name
		}
	}
	list := gallery.AppendUploaded(prop.Assets, ups)
	if err := s.repo.ReplaceAssets(ctx, propertyID, list, gallery.Mirror(list)); err != nil {
		return nil, fmt.Errorf("save gallery: %w", err)
	}
	s.invalidate(ctx, prop.Slug)
	return list, nil
}

// PromoteCover applies the upsert-cover transition: an existing asset backed
// by assetID is promoted and refreshed, otherwise a new cover is prepended.
func (s *CommandService) PromoteCover(ctx context.Context, propertyID, assetID, url, alt string) ([]domain.Asset, error) {
	prop, err := s.repo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	list := gallery.UpsertCoverFromUpload(prop.Assets, assetID, url, alt)
	if err := s.repo.ReplaceAssets(ctx, propertyID, list, gallery.Mirror(list)); err != nil {
		return nil, fmt.Errorf("save gallery: %w", err)
	}
	s.invalidate(ctx, prop.Slug)
	return list, nil
}

func (s *CommandService) invalidate(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if slug != "" {
		_ = s.cache.Del(ctx, "property:slug:"+slug)
	}
	for dim := range facetColumns {
		_ = s.cache.Del(ctx, "facet:"+dim)
	}
}

func newID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
