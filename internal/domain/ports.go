package domain

import "context"

type PropertyRepository interface {
	// Write paths
	UpsertProperty(ctx context.Context, p Property) error
	DeleteProperty(ctx context.Context, id string) error
	ReplaceAssets(ctx context.Context, propertyID string, assets []Asset, mirror CoverMirror) error

	// Read paths. ListProperties and CountProperties must be given the same
	// predicate so the total always reflects the identical filter as the page.
	ListProperties(ctx context.Context, pred Predicate, sort Sort, limit, offset int) ([]Property, error)
	CountProperties(ctx context.Context, pred Predicate) (int, error)
	ListDistinct(ctx context.Context, column string) ([]string, error)
	GetProperty(ctx context.Context, id string) (Property, error)
	GetBySlug(ctx context.Context, slug string) (Property, error)
}

// MediaClient uploads files to the media collaborator and returns whatever
// JSON it answered with; the response shape is the normalizer's problem.
type MediaClient interface {
	Upload(ctx context.Context, files []UploadFile) (any, error)
}

type UploadFile struct {
	Name string
	Mime string
	Data []byte
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
