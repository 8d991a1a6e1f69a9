package catalog

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"estate_catalog/internal/domain"
)

// defaultLimit applies when the caller sends no usable limit. The HTTP layer
// additionally caps the upper bound; the engine does not second-guess it.
const defaultLimit = 100

type QueryService struct {
	repo     domain.PropertyRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.PropertyRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

type ListParams struct {
	Filter ListFilter

	// Sort directive: combined token and/or split fields; the resolver
	// decides precedence.
	SortToken  string
	SortColumn string
	SortDir    string

	Limit  int
	Offset int
}

// List runs the page query and the count query against the identical
// predicate, concurrently, and joins on both before returning. The total
// therefore always reflects the same filter as the items.
func (s *QueryService) List(ctx context.Context, p ListParams) (domain.ListPage, error) {
	pred := BuildPredicate(p.Filter)
	sort := ResolveSort(p.SortToken, p.SortColumn, p.SortDir)

	limit := p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}

	var (
		rows  []domain.Property
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.repo.ListProperties(gctx, pred, sort, limit, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.CountProperties(gctx, pred)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.ListPage{}, fmt.Errorf("list properties: %w", err)
	}

	items := make([]domain.PropertyView, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToView(r))
	}
	return domain.ListPage{Items: items, Total: total}, nil
}

// Facet dimensions exposed as distinct-value listings; values are the
// storage column identifiers, never caller input.
var facetColumns = map[string]string{
	"district": "district",
	"city":     "city",
	"type":     "type",
	"status":   "status",
}

// Distinct lists the distinct values of one facet dimension, ascending.
func (s *QueryService) Distinct(ctx context.Context, dim string) ([]string, error) {
	col, ok := facetColumns[dim]
	if !ok {
		return nil, fmt.Errorf("%w: unknown facet %q", domain.ErrNotFound, dim)
	}
	key := "facet:" + dim
	var vals []string
	if ok, _ := s.cache.Get(ctx, key, &vals); ok {
		return vals, nil
	}
	vals, err := s.repo.ListDistinct(ctx, col)
	if err != nil {
		return nil, fmt.Errorf("list facet %s: %w", dim, err)
	}
	_ = s.cache.Set(ctx, key, vals, int(s.cacheTTL.Seconds()))
	return vals, nil
}

// GetBySlug returns one property view, cache-aside.
func (s *QueryService) GetBySlug(ctx context.Context, slug string) (domain.PropertyView, error) {
	key := "property:slug:" + slug
	var pv domain.PropertyView
	if ok, _ := s.cache.Get(ctx, key, &pv); ok {
		return pv, nil
	}
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.PropertyView{}, err
	}
	pv = ToView(p)
	_ = s.cache.Set(ctx, key, pv, int(s.cacheTTL.Seconds()))
	return pv, nil
}
