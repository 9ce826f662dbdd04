package model

import "time"

// Article represents a news entry in the `articles` table. Title and body are
// stored per language so the public reader can serve either without a second
// round trip.
type Article struct {
	ID          uint64     // articles.id
	Slug        string     // articles.slug (unique)
	TitleEN     string     // articles.title_en
	TitleFR     string     // articles.title_fr
	BodyEN      string     // articles.body_en
	BodyFR      string     // articles.body_fr
	Published   bool       // articles.published
	CreatedBy   uint64     // articles.created_by
	CreatedAt   time.Time  // articles.created_at
	UpdatedAt   time.Time  // articles.updated_at
	PublishedAt *time.Time // articles.published_at (nullable)
}
