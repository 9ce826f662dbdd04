// Package queue defines message payloads exchanged over the message broker.
package queue

// ActivityQueueName is the durable queue carrying audit events from request
// handlers to the consumer that persists them.
const ActivityQueueName = "activity.recorded"

// ActivityEvent is published after every privileged back-office mutation
// (create/update/delete/publish-toggle, role changes, inquiry handling).
// It carries enough to render the activity log without touching the primary
// tables again. Publication is best-effort: the mutation that triggered the
// event has already succeeded and is never rolled back on publish failure.
type ActivityEvent struct {
	EventID    string            `json:"event_id"` // uuid; dedupes broker redeliveries
	Action     string            `json:"action"`   // e.g. "property.publish"
	EntityType string            `json:"entity_type"`
	EntityID   string            `json:"entity_id"`
	Details    map[string]string `json:"details,omitempty"` // small payload, e.g. affected title
	ActorID    uint64            `json:"actor_id"`
	ActorEmail string            `json:"actor_email"`
	ActorName  string            `json:"actor_name"`
	OccurredAt string            `json:"occurred_at"` // RFC3339 UTC
}
