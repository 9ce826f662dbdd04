package repository

import (
	"context"
	"strings"

	"github.com/rivieraprestige/concierge-api/internal/model"
)

// PropertySearchQuery defines filters and pagination for the public property
// search. Zero values mean "no filter".
type PropertySearchQuery struct {
	Text     string // substring match against title and description
	City     string
	Type     string
	MinPrice uint64 // cents
	MaxPrice uint64 // cents
	Bedrooms uint32 // minimum
	Page     int
	PageSize int
}

// SearchPublished returns a page of published properties matching the query
// plus the total count for pagination. Filters are combined with AND;
// substring matches are case-insensitive.
func (r *PropertyRepo) SearchPublished(ctx context.Context, q PropertySearchQuery) ([]model.Property, int64, error) {
	where := []string{"published=1"}
	args := []any{}

	if q.Text != "" {
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(description_en) LIKE ? OR LOWER(description_fr) LIKE ?)")
		pat := "%" + strings.ToLower(q.Text) + "%"
		args = append(args, pat, pat, pat)
	}
	if q.City != "" {
		where = append(where, "city=?")
		args = append(args, strings.ToLower(q.City))
	}
	if q.Type != "" {
		where = append(where, "type=?")
		args = append(args, strings.ToLower(q.Type))
	}
	if q.MinPrice > 0 {
		where = append(where, "price_cents >= ?")
		args = append(args, q.MinPrice)
	}
	if q.MaxPrice > 0 {
		where = append(where, "price_cents <= ?")
		args = append(args, q.MaxPrice)
	}
	if q.Bedrooms > 0 {
		where = append(where, "bedrooms >= ?")
		args = append(args, q.Bedrooms)
	}

	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM properties WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	argsData := append(append([]any{}, args...), limit, offset)
	items, err := r.list(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE "+cond+
			" ORDER BY published_at DESC LIMIT ? OFFSET ?", argsData...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
