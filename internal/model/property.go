package model

import "time"

// Property represents a listing in the `properties` table. Descriptions are
// kept in both presentation languages; empty optional columns are stored as
// NULL, never as empty strings, so pointer fields carry "absent" explicitly.
type Property struct {
	ID            uint64     // properties.id
	Title         string     // properties.title
	Slug          string     // properties.slug (unique)
	Country       string     // properties.country (reference data code)
	City          string     // properties.city (reference data code)
	Type          string     // properties.type (reference data code, e.g. "villa")
	PriceCents    uint64     // properties.price_cents (sale or weekly rate)
	Bedrooms      *uint32    // properties.bedrooms (nullable)
	Bathrooms     *uint32    // properties.bathrooms (nullable)
	AreaSqm       *uint32    // properties.area_sqm (nullable)
	DescriptionEN string     // properties.description_en
	DescriptionFR string     // properties.description_fr
	CoverImageURL *string    // properties.cover_image_url (nullable; stored on the file host)
	Published     bool       // properties.published
	CreatedBy     uint64     // properties.created_by (users.id)
	CreatedAt     time.Time  // properties.created_at
	UpdatedAt     time.Time  // properties.updated_at
	PublishedAt   *time.Time // properties.published_at (nullable)
}

// Experience represents a concierge offering in the `experiences` table
// (yacht charter, private chef, vineyard tour and the like).
type Experience struct {
	ID            uint64    // experiences.id
	Title         string    // experiences.title
	Slug          string    // experiences.slug (unique)
	Category      string    // experiences.category
	PriceCents    *uint64   // experiences.price_cents (nullable: "on request")
	DescriptionEN string    // experiences.description_en
	DescriptionFR string    // experiences.description_fr
	Published     bool      // experiences.published
	CreatedBy     uint64    // experiences.created_by
	CreatedAt     time.Time // experiences.created_at
	UpdatedAt     time.Time // experiences.updated_at
}
