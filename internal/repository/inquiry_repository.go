package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rivieraprestige/concierge-api/internal/model"
)

const inquiryColumns = "id,reference,property_id,name,email,phone,message,status,created_at,updated_at"

// InquiryRepo encapsulates database queries for contact and property inquiries.
type InquiryRepo struct{ DB *sql.DB }

func NewInquiryRepo(db *sql.DB) *InquiryRepo { return &InquiryRepo{DB: db} }

// Create inserts a validated inquiry and populates its ID. Validation happens
// in the handler layer; rows arriving here are assumed well-formed.
func (r *InquiryRepo) Create(ctx context.Context, q *model.Inquiry) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO inquiries (reference,property_id,name,email,phone,message,status)
		 VALUES (?,?,?,?,?,?,?)`,
		q.Reference, q.PropertyID, q.Name, q.Email, q.Phone, q.Message, model.InquiryStatusNew)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	q.ID = uint64(id)
	q.Status = model.InquiryStatusNew
	return nil
}

// GetByID fetches one inquiry for the back office.
func (r *InquiryRepo) GetByID(ctx context.Context, id uint64) (model.Inquiry, error) {
	var q model.Inquiry
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+inquiryColumns+" FROM inquiries WHERE id=? LIMIT 1", id).
		Scan(&q.ID, &q.Reference, &q.PropertyID, &q.Name, &q.Email, &q.Phone, &q.Message,
			&q.Status, &q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Inquiry{}, ErrNotFound
	}
	return q, err
}

// List returns inquiries newest first, optionally filtered by status.
func (r *InquiryRepo) List(ctx context.Context, status string) ([]model.Inquiry, error) {
	query := "SELECT " + inquiryColumns + " FROM inquiries"
	args := []any{}
	if status != "" {
		query += " WHERE status=?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Inquiry{}
	for rows.Next() {
		var q model.Inquiry
		if err := rows.Scan(&q.ID, &q.Reference, &q.PropertyID, &q.Name, &q.Email, &q.Phone,
			&q.Message, &q.Status, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// SetStatus flips an inquiry between new and handled.
func (r *InquiryRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE inquiries SET status=? WHERE id=?", status, id)
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

// Delete removes an inquiry row.
func (r *InquiryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM inquiries WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns inquiry counts keyed by status, for the dashboard.
func (r *InquiryRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM inquiries GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}
