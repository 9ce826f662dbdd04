// This file implements persistence for property listings. Optional numeric
// columns (bedrooms, bathrooms, area) are nullable in the schema and mapped
// through pointer fields; the handlers convert empty form values to nil
// before the row ever reaches this layer.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rivieraprestige/concierge-api/internal/model"
)

const propertyColumns = "id,title,slug,country,city,type,price_cents,bedrooms,bathrooms,area_sqm," +
	"description_en,description_fr,cover_image_url,published,created_by,created_at,updated_at,published_at"

// PropertyRepo encapsulates all database queries related to properties.
type PropertyRepo struct{ DB *sql.DB }

func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{DB: db} }

func scanProperty(row interface{ Scan(...any) error }) (model.Property, error) {
	var p model.Property
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Country, &p.City, &p.Type, &p.PriceCents,
		&p.Bedrooms, &p.Bathrooms, &p.AreaSqm, &p.DescriptionEN, &p.DescriptionFR,
		&p.CoverImageURL, &p.Published, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt, &p.PublishedAt)
	return p, err
}

// Create inserts a new property. On success the ID field is populated with
// the auto-generated value.
func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO properties
		 (title,slug,country,city,type,price_cents,bedrooms,bathrooms,area_sqm,
		  description_en,description_fr,cover_image_url,published,created_by)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.Title, p.Slug, p.Country, p.City, p.Type, p.PriceCents,
		p.Bedrooms, p.Bathrooms, p.AreaSqm, p.DescriptionEN, p.DescriptionFR,
		p.CoverImageURL, p.Published, p.CreatedBy)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches a property regardless of publication state (staff view).
func (r *PropertyRepo) GetByID(ctx context.Context, id uint64) (model.Property, error) {
	p, err := scanProperty(r.DB.QueryRowContext(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Property{}, ErrNotFound
	}
	return p, err
}

// GetPublishedByID fetches a property only if it is published (public view).
func (r *PropertyRepo) GetPublishedByID(ctx context.Context, id uint64) (model.Property, error) {
	p, err := scanProperty(r.DB.QueryRowContext(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE id=? AND published=1 LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Property{}, ErrNotFound
	}
	return p, err
}

// ListAll returns every property ordered by last update, for the back office.
func (r *PropertyRepo) ListAll(ctx context.Context) ([]model.Property, error) {
	return r.list(ctx, "SELECT "+propertyColumns+" FROM properties ORDER BY updated_at DESC")
}

// ListPublished returns published properties, newest first, for the public site.
func (r *PropertyRepo) ListPublished(ctx context.Context) ([]model.Property, error) {
	return r.list(ctx, "SELECT "+propertyColumns+" FROM properties WHERE published=1 ORDER BY published_at DESC")
}

func (r *PropertyRepo) list(ctx context.Context, query string, args ...any) ([]model.Property, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update rewrites every editable column of an existing property.
func (r *PropertyRepo) Update(ctx context.Context, p *model.Property) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE properties SET title=?,slug=?,country=?,city=?,type=?,price_cents=?,
		 bedrooms=?,bathrooms=?,area_sqm=?,description_en=?,description_fr=?,cover_image_url=?
		 WHERE id=?`,
		p.Title, p.Slug, p.Country, p.City, p.Type, p.PriceCents,
		p.Bedrooms, p.Bathrooms, p.AreaSqm, p.DescriptionEN, p.DescriptionFR, p.CoverImageURL,
		p.ID)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows can also mean "no change"; confirm existence before 404ing.
		if _, err := r.GetByID(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// SetPublished toggles publication and maintains published_at.
func (r *PropertyRepo) SetPublished(ctx context.Context, id uint64, published bool) error {
	var res sql.Result
	var err error
	if published {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE properties SET published=1, published_at=NOW() WHERE id=?", id)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE properties SET published=0, published_at=NULL WHERE id=?", id)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a property row.
func (r *PropertyRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM properties WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of properties, for the stats endpoint.
func (r *PropertyRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties").Scan(&n)
	return n, err
}
