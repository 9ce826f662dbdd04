package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rivieraprestige/concierge-api/internal/model"
)

func TestDecodeActivityEvent(t *testing.T) {
	ev := ActivityEvent{
		EventID:    "6f1c2b9a-8a61-4f55-9a2e-1c6a0f3d1a11",
		Action:     "property.publish",
		EntityType: "property",
		EntityID:   "42",
		Details:    map[string]string{"title": "Villa Azur"},
		ActorID:    7,
		ActorEmail: "staff@example.com",
		ActorName:  "Staff Member",
		OccurredAt: "2026-08-29T10:00:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	entry, err := DecodeActivityEvent(body)
	require.NoError(t, err)
	require.Equal(t, ev.EventID, entry.EventID)
	require.Equal(t, "property.publish", entry.Action)
	require.Equal(t, "property", entry.EntityType)
	require.Equal(t, "42", entry.EntityID)
	require.JSONEq(t, `{"title":"Villa Azur"}`, entry.Details)
	require.Equal(t, uint64(7), entry.ActorID)
	require.Equal(t, time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC), entry.OccurredAt.UTC())
}

func TestDecodeActivityEventBadTimestampFallsBack(t *testing.T) {
	body := []byte(`{"event_id":"e1","action":"a.b","entity_type":"x","entity_id":"1","occurred_at":"yesterday"}`)
	entry, err := DecodeActivityEvent(body)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().UTC(), entry.OccurredAt, 5*time.Second)
}

func TestDecodeActivityEventRejectsIncomplete(t *testing.T) {
	cases := [][]byte{
		[]byte(`not json`),
		[]byte(`{}`),
		[]byte(`{"event_id":"e1"}`),
		[]byte(`{"event_id":"e1","action":"a.b"}`),
	}
	for _, body := range cases {
		_, err := DecodeActivityEvent(body)
		require.Error(t, err, "body %s", body)
		require.ErrorIs(t, err, ErrBadMessage, "body %s", body)
	}
}

// Transient insert failures must stay distinguishable from bad messages so
// the consumer requeues the former and drops the latter.
type failingWriter struct{ err error }

func (w failingWriter) Insert(context.Context, *model.ActivityEntry) error { return w.err }

func TestHandleMessageErrorClassification(t *testing.T) {
	dbDown := errors.New("connection refused")
	err := handleMessage([]byte(`{"event_id":"e1","action":"a.b","entity_type":"x","entity_id":"1"}`),
		failingWriter{err: dbDown})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrBadMessage)
	require.ErrorIs(t, err, dbDown)

	err = handleMessage([]byte(`{}`), failingWriter{err: dbDown})
	require.ErrorIs(t, err, ErrBadMessage)
}
