package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rivieraprestige/concierge-api/internal/model"
)

const experienceColumns = "id,title,slug,category,price_cents,description_en,description_fr," +
	"published,created_by,created_at,updated_at"

// ExperienceRepo encapsulates database queries for concierge experiences.
type ExperienceRepo struct{ DB *sql.DB }

func NewExperienceRepo(db *sql.DB) *ExperienceRepo { return &ExperienceRepo{DB: db} }

func scanExperience(row interface{ Scan(...any) error }) (model.Experience, error) {
	var e model.Experience
	err := row.Scan(&e.ID, &e.Title, &e.Slug, &e.Category, &e.PriceCents,
		&e.DescriptionEN, &e.DescriptionFR, &e.Published, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// Create inserts a new experience and populates its ID.
func (r *ExperienceRepo) Create(ctx context.Context, e *model.Experience) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO experiences (title,slug,category,price_cents,description_en,description_fr,published,created_by)
		 VALUES (?,?,?,?,?,?,?,?)`,
		e.Title, e.Slug, e.Category, e.PriceCents, e.DescriptionEN, e.DescriptionFR, e.Published, e.CreatedBy)
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
	e.ID = uint64(id)
	return nil
}

// GetByID fetches an experience regardless of publication state.
func (r *ExperienceRepo) GetByID(ctx context.Context, id uint64) (model.Experience, error) {
	e, err := scanExperience(r.DB.QueryRowContext(ctx,
		"SELECT "+experienceColumns+" FROM experiences WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Experience{}, ErrNotFound
	}
	return e, err
}

// GetPublishedByID fetches an experience only if published.
func (r *ExperienceRepo) GetPublishedByID(ctx context.Context, id uint64) (model.Experience, error) {
	e, err := scanExperience(r.DB.QueryRowContext(ctx,
		"SELECT "+experienceColumns+" FROM experiences WHERE id=? AND published=1 LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Experience{}, ErrNotFound
	}
	return e, err
}

// ListAll returns every experience for the back office.
func (r *ExperienceRepo) ListAll(ctx context.Context) ([]model.Experience, error) {
	return r.list(ctx, "SELECT "+experienceColumns+" FROM experiences ORDER BY updated_at DESC")
}

// ListPublished returns published experiences for the public site, grouped by
// category then title so the page renders deterministically.
func (r *ExperienceRepo) ListPublished(ctx context.Context) ([]model.Experience, error) {
	return r.list(ctx, "SELECT "+experienceColumns+" FROM experiences WHERE published=1 ORDER BY category, title")
}

func (r *ExperienceRepo) list(ctx context.Context, query string, args ...any) ([]model.Experience, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update rewrites the editable columns of an experience.
func (r *ExperienceRepo) Update(ctx context.Context, e *model.Experience) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE experiences SET title=?,slug=?,category=?,price_cents=?,description_en=?,description_fr=?
		 WHERE id=?`,
		e.Title, e.Slug, e.Category, e.PriceCents, e.DescriptionEN, e.DescriptionFR, e.ID)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, e.ID); err != nil {
			return err
		}
	}
	return nil
}

// SetPublished toggles publication.
func (r *ExperienceRepo) SetPublished(ctx context.Context, id uint64, published bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE experiences SET published=? WHERE id=?", published, id)
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

// Delete removes an experience row.
func (r *ExperienceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM experiences WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of experiences.
func (r *ExperienceRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM experiences").Scan(&n)
	return n, err
}
