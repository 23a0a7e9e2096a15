package main

import (
	"bytes"
	"testing"
	"time"

	"streetmix-be/pkg/events"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrintEvent(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printEvent(&buf, events.BaseEvent{
		Type:       events.TypePageURLUpdated,
		Data:       map[string]interface{}{"url": "/-/3", "session_id": "s1"},
		OccurredAt: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
	})

	assert.Equal(t, "09:30:00.000 PAGE_URL_UPDATED session_id=s1 url=/-/3\n", buf.String())
}
