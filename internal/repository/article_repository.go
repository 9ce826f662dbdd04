package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rivieraprestige/concierge-api/internal/model"
)

const articleColumns = "id,slug,title_en,title_fr,body_en,body_fr,published,created_by," +
	"created_at,updated_at,published_at"

// ArticleRepo encapsulates database queries for news articles.
type ArticleRepo struct{ DB *sql.DB }

func NewArticleRepo(db *sql.DB) *ArticleRepo { return &ArticleRepo{DB: db} }

func scanArticle(row interface{ Scan(...any) error }) (model.Article, error) {
	var a model.Article
	err := row.Scan(&a.ID, &a.Slug, &a.TitleEN, &a.TitleFR, &a.BodyEN, &a.BodyFR,
		&a.Published, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt, &a.PublishedAt)
	return a, err
}

// Create inserts a new article and populates its ID.
func (r *ArticleRepo) Create(ctx context.Context, a *model.Article) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO articles (slug,title_en,title_fr,body_en,body_fr,published,created_by)
		 VALUES (?,?,?,?,?,?,?)`,
		a.Slug, a.TitleEN, a.TitleFR, a.BodyEN, a.BodyFR, a.Published, a.CreatedBy)
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
	a.ID = uint64(id)
	return nil
}

// GetByID fetches an article regardless of publication state.
func (r *ArticleRepo) GetByID(ctx context.Context, id uint64) (model.Article, error) {
	a, err := scanArticle(r.DB.QueryRowContext(ctx,
		"SELECT "+articleColumns+" FROM articles WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Article{}, ErrNotFound
	}
	return a, err
}

// GetPublishedByID fetches an article only if published.
func (r *ArticleRepo) GetPublishedByID(ctx context.Context, id uint64) (model.Article, error) {
	a, err := scanArticle(r.DB.QueryRowContext(ctx,
		"SELECT "+articleColumns+" FROM articles WHERE id=? AND published=1 LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Article{}, ErrNotFound
	}
	return a, err
}

// ListAll returns every article for the back office.
func (r *ArticleRepo) ListAll(ctx context.Context) ([]model.Article, error) {
	return r.list(ctx, "SELECT "+articleColumns+" FROM articles ORDER BY updated_at DESC")
}

// ListPublished returns published articles, newest first, for the news reader.
func (r *ArticleRepo) ListPublished(ctx context.Context) ([]model.Article, error) {
	return r.list(ctx, "SELECT "+articleColumns+" FROM articles WHERE published=1 ORDER BY published_at DESC")
}

func (r *ArticleRepo) list(ctx context.Context, query string, args ...any) ([]model.Article, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update rewrites the editable columns of an article.
func (r *ArticleRepo) Update(ctx context.Context, a *model.Article) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE articles SET slug=?,title_en=?,title_fr=?,body_en=?,body_fr=? WHERE id=?",
		a.Slug, a.TitleEN, a.TitleFR, a.BodyEN, a.BodyFR, a.ID)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, a.ID); err != nil {
			return err
		}
	}
	return nil
}

// SetPublished toggles publication and maintains published_at.
func (r *ArticleRepo) SetPublished(ctx context.Context, id uint64, published bool) error {
	var res sql.Result
	var err error
	if published {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE articles SET published=1, published_at=NOW() WHERE id=?", id)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE articles SET published=0, published_at=NULL WHERE id=?", id)
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

// Delete removes an article row.
func (r *ArticleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM articles WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of articles.
func (r *ArticleRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&n)
	return n, err
}
