package model

import "time"

// Inquiry statuses. New rows always start as StatusNew; staff flip them to
// StatusHandled from the back office.
const (
	InquiryStatusNew     = "new"
	InquiryStatusHandled = "handled"
)

// Inquiry represents a contact or property-inquiry form submission stored in
// the `inquiries` table. Reference is a public, non-guessable identifier
// returned to the visitor; PropertyID is set only for property inquiries.
type Inquiry struct {
	ID         uint64    // inquiries.id
	Reference  string    // inquiries.reference (uuid, unique)
	PropertyID *uint64   // inquiries.property_id (nullable)
	Name       string    // inquiries.name
	Email      string    // inquiries.email
	Phone      *string   // inquiries.phone (nullable)
	Message    string    // inquiries.message
	Status     string    // inquiries.status (new|handled)
	CreatedAt  time.Time // inquiries.created_at
	UpdatedAt  time.Time // inquiries.updated_at
}
