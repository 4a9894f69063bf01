package ics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realaashishly/korixen-cal/internal/lib/ics"
	"github.com/realaashishly/korixen-cal/internal/models"
)

func TestBuildCalendar(t *testing.T) {
	start := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	events := []models.Event{
		{
			ID:          "665f1c2b8a9d3e4f5a6b7c8d",
			Title:       "Спринт-планирование",
			Description: "Планирование на две недели",
			StartTime:   start,
			EndTime:     &end,
			Location:    "Переговорка 3",
			Attendees:   []string{"lead@example.com"},
		},
		{
			// без времени окончания, длительность по умолчанию
			ID:        "tmp-1",
			Title:     "Созвон",
			StartTime: start,
		},
	}

	out := ics.BuildCalendar(events)

	require.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "PRODID:"+ics.ProdID)
	assert.Contains(t, out, "UID:665f1c2b8a9d3e4f5a6b7c8d@korixen")
	assert.Contains(t, out, "SUMMARY:Спринт-планирование")
	assert.Contains(t, out, "LOCATION:Переговорка 3")
	assert.Contains(t, out, "DTSTART:20240320T100000Z")
	assert.Contains(t, out, "DTEND:20240320T103000Z")
	// второе событие получает конец через час после начала
	assert.Contains(t, out, "UID:tmp-1@korixen")
	assert.Contains(t, out, "DTEND:20240320T110000Z")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
}
