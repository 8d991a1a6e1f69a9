package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"estate_catalog/internal/adapters/observability"
	"estate_catalog/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Columns permitted for distinct-value projections. The service layer
// already allow-lists; this keeps the boundary honest even for new callers.
var distinctColumns = map[string]bool{
	"district": true,
	"city":     true,
	"type":     true,
	"status":   true,
}

const dupEntryErrNo = 1062

// asDomainErr maps driver errors onto the domain taxonomy. Duplicate-key
// (the unique slug index) becomes ErrConflict.
func asDomainErr(err error) error {
	var me *gomysql.MySQLError
	if errors.As(err, &me) && me.Number == dupEntryErrNo {
		return fmt.Errorf("%w: %s", domain.ErrConflict, me.Message)
	}
	return err
}

// UpsertProperty inserts or updates by id. A slug held by a different row is
// a conflict, never a silent takeover: ON DUPLICATE KEY UPDATE would match
// the unique slug index too, so the ownership check runs first, inside the
// same transaction.
func (r *Repo) UpsertProperty(ctx context.Context, p domain.Property) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var owner string
	switch err := tx.QueryRowContext(ctx, selectSlugOwnerSQL, p.Slug).Scan(&owner); {
	case err == nil:
		if owner != p.ID {
			return fmt.Errorf("%w: slug %q belongs to %s", domain.ErrConflict, p.Slug, owner)
		}
	case errors.Is(err, sql.ErrNoRows):
		// slug is free
	default:
		return err
	}

	_, err = tx.ExecContext(ctx, upsertPropertySQL,
		p.ID,
		p.Title,
		p.Slug,
		p.Type,
		p.Status,
		p.Address,
		p.District,
		p.City,
		p.Lat,
		p.Lng,
		valStr(p.Description),
		p.IsActive,
		p.DisplayOrder,
		valStr(p.ImageURL),
		valStr(p.ImageAssetID),
		valStr(p.ImageAlt),
	)
	if err != nil {
		// 1062 still maps for insert races the ownership check missed.
		return asDomainErr(err)
	}
	return tx.Commit()
}

func (r *Repo) DeleteProperty(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteAssetsSQL, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, deletePropertySQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

// ReplaceAssets swaps the property's entire asset set for the given list and
// updates the legacy mirror columns, atomically. Upsert-by-id semantics at
// the row level are irrelevant here: the editor always sends the full
// desired state.
func (r *Repo) ReplaceAssets(ctx context.Context, propertyID string, assets []domain.Asset, mirror domain.CoverMirror) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteAssetsSQL, propertyID); err != nil {
		return err
	}

	if len(assets) > 0 {
		values := make([]string, 0, len(assets))
		args := make([]any, 0, len(assets)*9)
		for _, a := range assets {
			values = append(values, "(?,?,?,?,?,?,?,?,?)")
			args = append(args,
				a.ID,
				propertyID,
				valStr(a.AssetID),
				valStr(a.URL),
				valStr(a.Alt),
				a.Kind,
				valStr(a.Mime),
				a.IsCover,
				a.DisplayOrder,
			)
		}
		sqlStr := insertAssetsPrefix + strings.Join(values, ",")
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, updateMirrorSQL,
		valStr(mirror.ImageURL), valStr(mirror.ImageAssetID), valStr(mirror.Alt), propertyID,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// ListProperties runs the page query: predicate (verbatim), allow-listed
// sort column, bounded by limit/offset. id is the tiebreaker so pagination
// is stable across equal sort keys.
func (r *Repo) ListProperties(ctx context.Context, pred domain.Predicate, sort domain.Sort, limit, offset int) ([]domain.Property, error) {
	defer func(start time.Time) { observability.ObserveQuery("list_properties", time.Since(start)) }(time.Now())

	q := selectPropertySQL
	args := append([]any(nil), pred.Args...)
	if pred.Where != "" {
		q += " WHERE " + pred.Where
	}
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}
	q += " ORDER BY " + sort.Column + " " + dir + ", id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountProperties runs the unbounded scalar count over the same predicate.
func (r *Repo) CountProperties(ctx context.Context, pred domain.Predicate) (int, error) {
	defer func(start time.Time) { observability.ObserveQuery("count_properties", time.Since(start)) }(time.Now())

	q := countPropertiesSQL
	if pred.Where != "" {
		q += " WHERE " + pred.Where
	}
	var n int
	if err := r.db.QueryRowContext(ctx, q, pred.Args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repo) ListDistinct(ctx context.Context, column string) ([]string, error) {
	if !distinctColumns[column] {
		return nil, fmt.Errorf("column %q is not projectable", column)
	}
	q := "SELECT DISTINCT " + column + " FROM properties WHERE " + column + " <> '' ORDER BY " + column
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repo) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	return r.getOne(ctx, selectPropertySQL+" WHERE id = ?", id)
}

func (r *Repo) GetBySlug(ctx context.Context, slug string) (domain.Property, error) {
	return r.getOne(ctx, selectPropertySQL+" WHERE slug = ?", slug)
}

func (r *Repo) getOne(ctx context.Context, q string, arg any) (domain.Property, error) {
	row := r.db.QueryRowContext(ctx, q, arg)
	p, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Property{}, domain.ErrNotFound
		}
		return domain.Property{}, err
	}
	assets, err := r.loadAssets(ctx, p.ID)
	if err != nil {
		return domain.Property{}, err
	}
	p.Assets = assets
	return p, nil
}

func (r *Repo) loadAssets(ctx context.Context, propertyID string) ([]domain.Asset, error) {
	rows, err := r.db.QueryContext(ctx, listAssetsSQL, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Asset
	for rows.Next() {
		var a domain.Asset
		var assetID, url, alt, mime sql.NullString
		if err := rows.Scan(&a.ID, &assetID, &url, &alt, &a.Kind, &mime, &a.IsCover, &a.DisplayOrder); err != nil {
			return nil, err
		}
		a.AssetID = optStr(assetID)
		a.URL = optStr(url)
		a.Alt = optStr(alt)
		a.Mime = optStr(mime)
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanProperty(row rowScanner) (domain.Property, error) {
	var p domain.Property
	var lat, lng, desc, imgURL, imgAssetID, imgAlt sql.NullString
	if err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Type, &p.Status,
		&p.Address, &p.District, &p.City,
		&lat, &lng, &desc, &p.IsActive, &p.DisplayOrder,
		&imgURL, &imgAssetID, &imgAlt,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return domain.Property{}, err
	}
	if lat.Valid {
		p.Lat = lat.String
	}
	if lng.Valid {
		p.Lng = lng.String
	}
	p.Description = optStr(desc)
	p.ImageURL = optStr(imgURL)
	p.ImageAssetID = optStr(imgAssetID)
	p.ImageAlt = optStr(imgAlt)
	return p, nil
}

func optStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
