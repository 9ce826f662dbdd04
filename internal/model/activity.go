package model

import "time"

// ActivityEntry is one audit row in the `activity_log` table. Rows are
// written by the queue consumer, never directly by request handlers, so a
// broker outage can never fail a primary mutation.
type ActivityEntry struct {
	ID         uint64    // activity_log.id
	EventID    string    // activity_log.event_id (uuid, unique; dedupes redeliveries)
	Action     string    // activity_log.action (e.g. "property.update")
	EntityType string    // activity_log.entity_type
	EntityID   string    // activity_log.entity_id
	Details    string    // activity_log.details (JSON payload)
	ActorID    uint64    // activity_log.actor_id
	ActorEmail string    // activity_log.actor_email
	ActorName  string    // activity_log.actor_name
	OccurredAt time.Time // activity_log.occurred_at
	CreatedAt  time.Time // activity_log.created_at
}
