package catalog_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"estate_catalog/internal/catalog"
	"estate_catalog/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	rows  []domain.Property
	total int
	err   error

	listPred  *domain.Predicate
	countPred *domain.Predicate
	sort      domain.Sort
	limit     int
	offset    int

	distinct map[string][]string
	bySlug   map[string]domain.Property
}

func (f *fakeRepo) UpsertProperty(ctx context.Context, p domain.Property) error { return nil }
func (f *fakeRepo) DeleteProperty(ctx context.Context, id string) error         { return nil }
func (f *fakeRepo) ReplaceAssets(ctx context.Context, propertyID string, assets []domain.Asset, mirror domain.CoverMirror) error {
	return nil
}
func (f *fakeRepo) ListProperties(ctx context.Context, pred domain.Predicate, sort domain.Sort, limit, offset int) ([]domain.Property, error) {
	f.listPred = &pred
	f.sort = sort
	f.limit = limit
	f.offset = offset
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}
func (f *fakeRepo) CountProperties(ctx context.Context, pred domain.Predicate) (int, error) {
	f.countPred = &pred
	if f.err != nil {
		return 0, f.err
	}
	return f.total, nil
}
func (f *fakeRepo) ListDistinct(ctx context.Context, column string) ([]string, error) {
	return f.distinct[column], nil
}
func (f *fakeRepo) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	return domain.Property{}, domain.ErrNotFound
}
func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (domain.Property, error) {
	p, ok := f.bySlug[slug]
	if !ok {
		return domain.Property{}, domain.ErrNotFound
	}
	return p, nil
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.PropertyView:
		*d = v.(domain.PropertyView)
	case *[]string:
		*d = v.([]string)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func prop(id, slug, district string) domain.Property {
	return domain.Property{
		ID:       id,
		Title:    "Listing " + id,
		Slug:     slug,
		District: district,
		Lat:      "41.0082000",
		Lng:      "28.9784000",
		IsActive: true,
	}
}

// ---- tests ----

func TestList_SamePredicateForPageAndCount(t *testing.T) {
	repo := &fakeRepo{
		rows:  []domain.Property{prop("1", "a", "Kadıköy"), prop("2", "b", "Kadıköy")},
		total: 3,
	}
	q := catalog.NewQueryService(repo, &fakeCache{}, 10*time.Minute)

	page, err := q.List(context.Background(), catalog.ListParams{
		Filter: catalog.ListFilter{District: "Kadıköy", Active: "1"},
		Limit:  2,
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(page.Items) != 2 || page.Total != 3 {
		t.Fatalf("expected 2 items / total 3, got %d / %d", len(page.Items), page.Total)
	}
	if repo.listPred == nil || repo.countPred == nil {
		t.Fatalf("expected both page and count queries to run")
	}
	if !reflect.DeepEqual(*repo.listPred, *repo.countPred) {
		t.Fatalf("page and count observed different predicates:\n%+v\n%+v", *repo.listPred, *repo.countPred)
	}
	if repo.limit != 2 {
		t.Fatalf("expected limit 2, got %d", repo.limit)
	}
}

func TestList_ClampsLimitAndOffset(t *testing.T) {
	repo := &fakeRepo{}
	q := catalog.NewQueryService(repo, &fakeCache{}, time.Minute)

	if _, err := q.List(context.Background(), catalog.ListParams{Limit: 0, Offset: -5}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if repo.limit != 100 {
		t.Fatalf("expected default limit 100, got %d", repo.limit)
	}
	if repo.offset != 0 {
		t.Fatalf("expected offset floored to 0, got %d", repo.offset)
	}
}

func TestList_UnfilteredCountMatchesRows(t *testing.T) {
	rows := []domain.Property{prop("1", "a", "x"), prop("2", "b", "y"), prop("3", "c", "z")}
	repo := &fakeRepo{rows: rows, total: len(rows)}
	q := catalog.NewQueryService(repo, &fakeCache{}, time.Minute)

	page, err := q.List(context.Background(), catalog.ListParams{Limit: 1000})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if page.Total != len(page.Items) {
		t.Fatalf("filter-free list: total %d != items %d", page.Total, len(page.Items))
	}
	if repo.listPred.Where != "" {
		t.Fatalf("expected universal predicate, got %q", repo.listPred.Where)
	}
}

func TestList_ViewMapping(t *testing.T) {
	desc := "Bright two-bedroom"
	p := prop("1", "a", "Moda")
	p.Description = &desc
	repo := &fakeRepo{rows: []domain.Property{p}, total: 1}
	q := catalog.NewQueryService(repo, &fakeCache{}, time.Minute)

	page, err := q.List(context.Background(), catalog.ListParams{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	v := page.Items[0]
	if v.Coords == nil || v.Coords.Lat != 41.0082 || v.Coords.Lng != 28.9784 {
		t.Fatalf("unexpected coords: %+v", v.Coords)
	}
	if v.Description == nil || *v.Description != desc {
		t.Fatalf("unexpected description: %v", v.Description)
	}
	if !v.IsActive {
		t.Fatalf("expected strict true active flag")
	}
}

func TestList_BadCoordinatesDropPair(t *testing.T) {
	p := prop("1", "a", "Moda")
	p.Lng = ""
	repo := &fakeRepo{rows: []domain.Property{p}, total: 1}
	q := catalog.NewQueryService(repo, &fakeCache{}, time.Minute)

	page, err := q.List(context.Background(), catalog.ListParams{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if page.Items[0].Coords != nil {
		t.Fatalf("expected nil coords when one component is unparseable")
	}
}

func TestList_StorageErrorSurfaces(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &fakeRepo{err: boom}
	q := catalog.NewQueryService(repo, &fakeCache{}, time.Minute)

	if _, err := q.List(context.Background(), catalog.ListParams{}); !errors.Is(err, boom) {
		t.Fatalf("expected storage error to surface, got %v", err)
	}
}

func TestDistinct_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{distinct: map[string][]string{"district": {"Kadıköy", "Moda"}}}
	cache := &fakeCache{}
	q := catalog.NewQueryService(repo, cache, 10*time.Minute)

	vals, err := q.Distinct(context.Background(), "district")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !reflect.DeepEqual(vals, []string{"Kadıköy", "Moda"}) {
		t.Fatalf("unexpected facet values: %v", vals)
	}

	// Mutate repo to prove the second read is served from cache.
	repo.distinct["district"] = []string{"SHOULD NOT SEE THIS"}
	vals2, _ := q.Distinct(context.Background(), "district")
	if !reflect.DeepEqual(vals2, []string{"Kadıköy", "Moda"}) {
		t.Fatalf("expected cached values, got %v", vals2)
	}
}

func TestDistinct_UnknownFacet(t *testing.T) {
	q := catalog.NewQueryService(&fakeRepo{}, &fakeCache{}, time.Minute)
	if _, err := q.Distinct(context.Background(), "price"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found for unknown facet, got %v", err)
	}
}

func TestGetBySlug(t *testing.T) {
	repo := &fakeRepo{bySlug: map[string]domain.Property{"seaside": prop("1", "seaside", "Moda")}}
	q := catalog.NewQueryService(repo, &fakeCache{}, time.Minute)

	pv, err := q.GetBySlug(context.Background(), "seaside")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if pv.Slug != "seaside" {
		t.Fatalf("unexpected view: %+v", pv)
	}

	if _, err := q.GetBySlug(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
