package nats

import (
	"context"
	"errors"
	"testing"
	"time"

	"streetmix-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ev := events.BaseEvent{
		Type:       events.TypePageURLUpdated,
		Data:       map[string]interface{}{"session_id": "abc", "url": "/-/42"},
		OccurredAt: at,
	}

	raw, err := Encode(ev)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"PAGE_URL_UPDATED"`)

	back, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, ev.Type, back.EventType())
	assert.True(t, at.Equal(back.Timestamp()))
	assert.Equal(t, "/-/42", back.Payload()["url"])

	_, err = Decode([]byte("not json"))
	assert.Error(t, err)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.FEEDBACK_SUBMITTED", Subject(events.TypeFeedbackSubmitted))
}

func TestHandleMessage(t *testing.T) {
	raw, err := Encode(events.New(events.TypeSessionNavigated, map[string]interface{}{"mode": "ABOUT"}))
	require.NoError(t, err)

	var got events.Event
	ok := handleMessage(context.Background(), raw, func(_ context.Context, ev events.Event) error {
		got = ev
		return nil
	})
	assert.True(t, ok)
	require.NotNil(t, got)
	assert.Equal(t, events.TypeSessionNavigated, got.EventType())

	ok = handleMessage(context.Background(), raw, func(context.Context, events.Event) error {
		return errors.New("try again")
	})
	assert.False(t, ok, "handler errors are redelivered")

	assert.True(t, handleMessage(context.Background(), []byte("{"), nil), "garbage is dropped")
}
