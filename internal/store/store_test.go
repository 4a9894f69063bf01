package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realaashishly/korixen-cal/internal/models"
)

func event(id, title string) models.Event {
	return models.Event{
		ID:         id,
		Title:      title,
		StartTime:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Type:       "task",
		Department: "General",
		Status:     models.StatusTodo,
	}
}

func TestEventStore_AppendFindRemove(t *testing.T) {
	s := NewEventStore(nil)

	s.Append(event("a1", "first"))
	s.Append(event("b2", "second"))
	require.Equal(t, 2, s.Len())

	got, ok := s.Find("b2")
	require.True(t, ok)
	assert.Equal(t, "second", got.Title)

	assert.True(t, s.Remove("a1"))
	assert.False(t, s.Remove("a1"), "повторное удаление — no-op")
	require.Equal(t, 1, s.Len())
}

func TestEventStore_SnapshotIsDeepCopy(t *testing.T) {
	s := NewEventStore([]models.Event{event("a1", "first")})

	snap := s.Snapshot()
	snap[0].Title = "mutated"

	got, ok := s.Find("a1")
	require.True(t, ok)
	assert.Equal(t, "first", got.Title)
}

func TestEventStore_Confirm_SwapsIDOnly(t *testing.T) {
	s := NewEventStore(nil)
	ev := event("abc123", "draft")
	s.Append(ev)

	// правка между оптимистичной вставкой и подтверждением
	edited := ev.Clone()
	edited.Status = models.StatusCompleted
	require.True(t, s.Replace("abc123", edited))

	confirmed := event("65f1a2b3c4d5e6f7a8b9c0d1", "server-side title")
	confirmed.CreatedAt = time.Date(2024, 3, 1, 9, 0, 1, 0, time.UTC)
	require.True(t, s.Confirm("abc123", confirmed))

	// старый идентификатор исчез
	_, ok := s.Find("abc123")
	assert.False(t, ok)

	got, ok := s.Find("65f1a2b3c4d5e6f7a8b9c0d1")
	require.True(t, ok)
	assert.Equal(t, "draft", got.Title, "локальные поля не перетираются ответом")
	assert.Equal(t, models.StatusCompleted, got.Status, "свежая локальная правка переживает подтверждение")
	assert.Equal(t, confirmed.CreatedAt, got.CreatedAt)
	assert.Equal(t, 1, s.Len(), "подтверждение не добавляет дубликат")
}

func TestEventStore_Confirm_MissingTempID(t *testing.T) {
	s := NewEventStore(nil)
	assert.False(t, s.Confirm("gone", event("65f1a2b3c4d5e6f7a8b9c0d1", "x")))
}

func TestEventStore_MergeSubset(t *testing.T) {
	a, b, c := event("a", "A"), event("b", "B"), event("c", "C")
	s := NewEventStore([]models.Event{a, b, c})

	zero, one := 0, 1
	cb := c.Clone()
	cb.Order = &zero
	ab := a.Clone()
	ab.Order = &one
	s.MergeSubset([]models.Event{cb, ab, event("missing", "ghost")})

	require.Equal(t, 3, s.Len(), "отсутствующие в сторе события игнорируются")
	got, _ := s.Find("c")
	require.NotNil(t, got.Order)
	assert.Equal(t, 0, *got.Order)
}

func TestEventStore_SubscribeReceivesChanges(t *testing.T) {
	s := NewEventStore(nil)
	var got []Change
	s.Subscribe(func(c Change) { got = append(got, c) })

	s.Append(event("a1", "first"))
	s.Remove("a1")
	s.Restore(nil)

	require.Len(t, got, 3)
	assert.Equal(t, ChangeCreated, got[0].Kind)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, ChangeDeleted, got[1].Kind)
	assert.Equal(t, ChangeRestored, got[2].Kind)
}

func TestSubscriptionStore_RemoveReturnsEntry(t *testing.T) {
	s := NewSubscriptionStore([]models.Subscription{{ID: "s1", Name: "Netflix"}})

	removed, ok := s.Remove("s1")
	require.True(t, ok)
	assert.Equal(t, "Netflix", removed.Name)
	assert.Empty(t, s.Snapshot())

	// откат при неудачном удалении на сервере
	s.Append(removed)
	assert.Len(t, s.Snapshot(), 1)
}

func TestSubscriptionStore_Confirm(t *testing.T) {
	s := NewSubscriptionStore(nil)
	s.Append(models.Subscription{ID: "tmp123", Name: "Spotify"})

	ok := s.Confirm("tmp123", models.Subscription{ID: "65f1a2b3c4d5e6f7a8b9c0d1"})
	require.True(t, ok)

	subs := s.Snapshot()
	require.Len(t, subs, 1)
	assert.Equal(t, "65f1a2b3c4d5e6f7a8b9c0d1", subs[0].ID)
	assert.Equal(t, "Spotify", subs[0].Name)
}
