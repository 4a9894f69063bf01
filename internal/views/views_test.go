package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realaashishly/korixen-cal/internal/models"
)

func ev(id string, start time.Time, dept string, status models.TaskStatus) models.Event {
	return models.Event{
		ID:         id,
		Title:      id,
		StartTime:  start,
		Type:       "task",
		Department: dept,
		Status:     status,
	}
}

func TestFilter_IntersectionNotUnion(t *testing.T) {
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	events := []models.Event{
		ev("a", base, "Engineering", models.StatusTodo),
		ev("b", base, "Engineering", models.StatusCompleted),
		ev("c", base, "Design", models.StatusTodo),
		ev("d", base, "Design", models.StatusCompleted),
	}

	got := Filter(events, "Engineering", "todo")
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestFilter_Wildcards(t *testing.T) {
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	events := []models.Event{
		ev("a", base, "Engineering", models.StatusTodo),
		ev("b", base, "Design", models.StatusCompleted),
	}

	assert.Len(t, Filter(events, RoleFilterAll, StatusFilterAll), 2)
	assert.Len(t, Filter(events, RoleFilterAll, "completed"), 1)
	assert.Len(t, Filter(events, "Design", StatusFilterAll), 1)
}

func TestDay_CalendarDayEquality(t *testing.T) {
	lateNight := ev("late", time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), "General", models.StatusTodo)
	earlyMorning := ev("early", time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC), "General", models.StatusTodo)
	events := []models.Event{lateNight, earlyMorning}

	jan1 := Day(events, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))
	require.Len(t, jan1, 1)
	assert.Equal(t, "late", jan1[0].ID)

	jan2 := Day(events, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC))
	require.Len(t, jan2, 1)
	assert.Equal(t, "early", jan2[0].ID)
}

func TestDay_OrderBeatsStartTime(t *testing.T) {
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	zero, one, two := 0, 1, 2

	a := ev("a", day.Add(9*time.Hour), "General", models.StatusTodo)
	a.Order = &one
	b := ev("b", day.Add(10*time.Hour), "General", models.StatusTodo)
	b.Order = &two
	c := ev("c", day.Add(11*time.Hour), "General", models.StatusTodo)
	c.Order = &zero

	got := Day([]models.Event{a, b, c}, day)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestDay_FallsBackToStartTime(t *testing.T) {
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	late := ev("late", day.Add(15*time.Hour), "General", models.StatusTodo)
	early := ev("early", day.Add(9*time.Hour), "General", models.StatusTodo)

	got := Day([]models.Event{late, early}, day)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].ID)
}

func TestStartOfWeek_MondayStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "среда",
			in:   time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC),
			want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "воскресенье относится к прошлой неделе",
			in:   time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "понедельник остаётся на месте",
			in:   time.Date(2024, 3, 4, 23, 59, 0, 0, time.UTC),
			want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartOfWeek(tt.in))
		})
	}
}

func TestWeek_SevenBucketsSorted(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	events := []models.Event{
		ev("tue-late", monday.AddDate(0, 0, 1).Add(16*time.Hour), "General", models.StatusTodo),
		ev("tue-early", monday.AddDate(0, 0, 1).Add(9*time.Hour), "General", models.StatusTodo),
		ev("sun", monday.AddDate(0, 0, 6).Add(12*time.Hour), "General", models.StatusTodo),
		ev("outside", monday.AddDate(0, 0, 7).Add(12*time.Hour), "General", models.StatusTodo),
	}

	buckets := Week(events, monday.Add(50*time.Hour))
	require.Len(t, buckets, 7)
	assert.Equal(t, monday, buckets[0].Date)

	require.Len(t, buckets[1].Events, 2)
	assert.Equal(t, "tue-early", buckets[1].Events[0].ID)
	assert.Equal(t, "tue-late", buckets[1].Events[1].ID)

	require.Len(t, buckets[6].Events, 1)
	assert.Equal(t, "sun", buckets[6].Events[0].ID)
}

func TestKanban_EmptyColumnsRendered(t *testing.T) {
	base := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	events := []models.Event{
		ev("todo", base.Add(time.Hour), "Engineering", models.StatusTodo),
		ev("done", base.Add(2*time.Hour), "Engineering", models.StatusCompleted),
		ev("wip", base, "Engineering", models.StatusInProgress),
		ev("stray", base, "Ops", models.StatusTodo),
	}
	departments := []string{"Engineering", "Design"}

	cols := Kanban(events, departments)
	require.Len(t, cols, 2)

	// колонки задаются настроенным списком отделов, а не данными
	assert.Equal(t, "Design", cols[1].Department)
	assert.Empty(t, cols[1].Events)

	// completed < in-progress < todo лексикографически
	require.Len(t, cols[0].Events, 3)
	assert.Equal(t, "done", cols[0].Events[0].ID)
	assert.Equal(t, "wip", cols[0].Events[1].ID)
	assert.Equal(t, "todo", cols[0].Events[2].ID)
}

func TestYearProgress(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		wantLeft  int
		wantWeeks int
		wantPct   int
	}{
		{
			name:      "последний день года",
			today:     time.Date(2023, 12, 31, 10, 0, 0, 0, time.UTC),
			wantLeft:  0,
			wantWeeks: 0,
			wantPct:   100,
		},
		{
			name:      "первое января",
			today:     time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC),
			wantLeft:  364,
			wantWeeks: 52,
			wantPct:   0,
		},
		{
			name:      "середина года",
			today:     time.Date(2023, 7, 2, 0, 0, 0, 0, time.UTC),
			wantLeft:  182,
			wantWeeks: 26,
			wantPct:   50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := YearProgress(tt.today)
			assert.Equal(t, tt.wantLeft, got.DaysLeft)
			assert.Equal(t, tt.wantWeeks, got.WeeksLeft)
			assert.Equal(t, tt.wantPct, got.Percent)
		})
	}
}
