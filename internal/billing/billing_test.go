package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realaashishly/korixen-cal/internal/models"
)

func sub(name string, price float64, cycle models.BillingCycle, start time.Time) models.Subscription {
	return models.Subscription{
		ID:           name,
		Name:         name,
		Price:        decimal.NewFromFloat(price),
		Currency:     "USD",
		BillingCycle: cycle,
		StartDate:    start,
		Type:         models.SubTypeSoftware,
		IsActive:     true,
	}
}

func TestMonthlyEquivalent(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	monthly := sub("netflix", 15.49, models.CycleMonthly, start)
	assert.True(t, MonthlyEquivalent(monthly).Equal(decimal.NewFromFloat(15.49)))

	yearly := sub("jetbrains", 120, models.CycleYearly, start)
	assert.True(t, MonthlyEquivalent(yearly).Equal(decimal.NewFromInt(10)))
}

func TestTotalMonthly_SkipsInactiveAndExpired(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	active := sub("a", 10, models.CycleMonthly, start)

	paused := sub("b", 20, models.CycleMonthly, start)
	paused.IsActive = false

	ended := sub("c", 30, models.CycleMonthly, start)
	endDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ended.EndDate = &endDate

	yearly := sub("d", 120, models.CycleYearly, start)

	total := TotalMonthly([]models.Subscription{active, paused, ended, yearly}, today)
	assert.True(t, total.Equal(decimal.NewFromInt(20)), "got %s", total)

	assert.True(t, TotalYearly([]models.Subscription{active, paused, ended, yearly}, today).Equal(decimal.NewFromInt(240)))
}

func TestExpired_LastDayStillActive(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := sub("a", 10, models.CycleMonthly, start)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	s.EndDate = &end

	assert.False(t, Expired(s, time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)))
	assert.True(t, Expired(s, time.Date(2024, 3, 11, 0, 30, 0, 0, time.UTC)))
}

func TestNextPaymentDate(t *testing.T) {
	tests := []struct {
		name  string
		sub   models.Subscription
		today time.Time
		want  time.Time
	}{
		{
			name:  "месячный цикл догоняет сегодня",
			sub:   sub("a", 10, models.CycleMonthly, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
			today: time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "совпадение с сегодняшним днём валидно",
			sub:   sub("b", 10, models.CycleMonthly, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
			today: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "старт в будущем возвращается как есть",
			sub:   sub("c", 10, models.CycleMonthly, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)),
			today: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "годовой цикл",
			sub:   sub("d", 120, models.CycleYearly, time.Date(2022, 5, 10, 0, 0, 0, 0, time.UTC)),
			today: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "31 января прижимается к концу февраля",
			sub:   sub("e", 10, models.CycleMonthly, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)),
			today: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "после прижатия число не возвращается к исходному",
			sub:   sub("f", 10, models.CycleMonthly, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)),
			today: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2025, 4, 28, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextPaymentDate(tt.sub, tt.today)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextPaymentDate_ExpiredBeforeNextCycle(t *testing.T) {
	s := sub("a", 10, models.CycleMonthly, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	end := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	s.EndDate = &end

	// подписка ещё действует, но следующее списание уже за датой окончания
	_, ok := NextPaymentDate(s, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestSummary_UpcomingSortedByDate(t *testing.T) {
	today := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	late := sub("late", 10, models.CycleMonthly, time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC))
	soon := sub("soon", 20, models.CycleMonthly, time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC))
	paused := sub("paused", 30, models.CycleMonthly, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	paused.IsActive = false

	summary := Summary([]models.Subscription{late, soon, paused}, today)

	assert.True(t, summary.TotalMonthly.Equal(decimal.NewFromInt(30)))
	require.Len(t, summary.Upcoming, 2)
	assert.Equal(t, "soon", summary.Upcoming[0].Name)
	assert.Equal(t, time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC), summary.Upcoming[0].NextPaymentDate)
	assert.Equal(t, "late", summary.Upcoming[1].Name)
	assert.Equal(t, time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC), summary.Upcoming[1].NextPaymentDate)
}
