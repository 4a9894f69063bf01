// Package billing нормализует стоимость подписок к общему месячному
// знаменателю и считает даты следующих списаний. Все расчёты ведутся
// в decimal, даты сравниваются с точностью до календарного дня.
package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/realaashishly/korixen-cal/internal/models"
)

var twelve = decimal.NewFromInt(12)

// MonthlyEquivalent приводит цену подписки к месячному эквиваленту:
// годовые делятся на 12, месячные возвращаются как есть.
func MonthlyEquivalent(sub models.Subscription) decimal.Decimal {
	if sub.BillingCycle == models.CycleYearly {
		return sub.Price.Div(twelve)
	}
	return sub.Price
}

// Expired сообщает, закончилась ли подписка к дате today. Дата
// окончания сравнивается по календарному дню: подписка действует
// включительно по свой последний день.
func Expired(sub models.Subscription, today time.Time) bool {
	if sub.EndDate == nil {
		return false
	}
	return dateOnly(*sub.EndDate).Before(dateOnly(today))
}

// TotalMonthly суммирует месячные эквиваленты активных незакончившихся
// подписок.
func TotalMonthly(subs []models.Subscription, today time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subs {
		if !s.IsActive || Expired(s, today) {
			continue
		}
		total = total.Add(MonthlyEquivalent(s))
	}
	return total
}

// TotalYearly годовой итог, производный от месячного.
func TotalYearly(subs []models.Subscription, today time.Time) decimal.Decimal {
	return TotalMonthly(subs, today).Mul(twelve)
}

// NextPaymentDate возвращает ближайшую дату списания не раньше today:
// от даты старта подписки циклы прибавляются по одному, пока дата не
// догонит сегодняшний день. Совпадение с today считается валидной
// ближайшей датой. Если подписка уже закончилась, возвращается false.
func NextPaymentDate(sub models.Subscription, today time.Time) (time.Time, bool) {
	if Expired(sub, today) {
		return time.Time{}, false
	}

	step := 1
	if sub.BillingCycle == models.CycleYearly {
		step = 12
	}
	todayDate := dateOnly(today)
	// Цикл прибавляется к накопленной дате, а не к стартовой: число,
	// прижатое к концу короткого месяца, дальше так и идёт по этому
	// числу (31 января -> 28 февраля -> 28 марта).
	next := dateOnly(sub.StartDate)
	for next.Before(todayDate) {
		next = addMonthsClamped(next, step)
	}
	if sub.EndDate != nil && next.After(dateOnly(*sub.EndDate)) {
		return time.Time{}, false
	}
	return next, true
}

// Upcoming собирает ближайшие списания активных подписок,
// отсортированные по дате, ближайшие первыми.
func Upcoming(subs []models.Subscription, today time.Time) []models.UpcomingPayment {
	out := make([]models.UpcomingPayment, 0, len(subs))
	for _, s := range subs {
		if !s.IsActive {
			continue
		}
		next, ok := NextPaymentDate(s, today)
		if !ok {
			continue
		}
		out = append(out, models.UpcomingPayment{
			SubscriptionID:    s.ID,
			Name:              s.Name,
			NextPaymentDate:   next,
			MonthlyEquivalent: MonthlyEquivalent(s),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextPaymentDate.Before(out[j].NextPaymentDate)
	})
	return out
}

// Summary сводка по всем подпискам пользователя на дату today.
func Summary(subs []models.Subscription, today time.Time) models.SubscriptionSummary {
	return models.SubscriptionSummary{
		TotalMonthly: TotalMonthly(subs, today),
		TotalYearly:  TotalYearly(subs, today),
		Upcoming:     Upcoming(subs, today),
	}
}

// addMonthsClamped прибавляет месяцы с прижатием числа к концу
// месяца: 31 января + месяц даёт последний день февраля, а не
// 2-3 марта, как у time.AddDate.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	m := int(month) + months
	year += (m - 1) / 12
	m = (m-1)%12 + 1
	if last := daysInMonth(year, time.Month(m)); day > last {
		day = last
	}
	return time.Date(year, time.Month(m), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
