// Package views содержит чистые функции-проекции над списком событий:
// фильтрация, дневной список, недельная сетка, канбан-доска и прогресс
// года. Пакет не хранит состояния и ничего не мутирует — все функции
// работают над снимком и возвращают новые срезы.
package views

import (
	"sort"
	"time"

	"github.com/realaashishly/korixen-cal/internal/models"
)

// RoleFilterAll и StatusFilterAll отключают соответствующий фильтр.
const (
	RoleFilterAll   = "All"
	StatusFilterAll = "all"
)

// Filter возвращает события, проходящие оба фильтра сразу: по отделу
// и по статусу. Фильтры соединяются только через AND.
func Filter(events []models.Event, roleFilter, statusFilter string) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		roleMatch := roleFilter == RoleFilterAll || e.Department == roleFilter
		statusMatch := statusFilter == StatusFilterAll || string(e.Status) == statusFilter
		if roleMatch && statusMatch {
			out = append(out, e)
		}
	}
	return out
}

// SameDay сравнивает отметки времени по календарному дню:
// равенство года, месяца и числа, а не 24-часовое окно.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Day возвращает события, чей StartTime приходится на календарный день
// date. Порядок: по полю Order, когда оно задано у обоих сравниваемых
// событий, иначе по StartTime по возрастанию.
func Day(events []models.Event, date time.Time) []models.Event {
	var out []models.Event
	for _, e := range events {
		if SameDay(e.StartTime, date) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != nil && out[j].Order != nil {
			return *out[i].Order < *out[j].Order
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// DayBucket один день недельной сетки.
type DayBucket struct {
	Date   time.Time      `json:"date"`
	Events []models.Event `json:"events"`
}

// StartOfWeek возвращает понедельник недели, в которую попадает t,
// с обнулённым временем суток.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := t.AddDate(0, 0, 1-weekday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

// Week раскладывает события по семи дням недели, начинающейся
// с понедельника недели даты ref. Внутри дня — по StartTime
// по возрастанию.
func Week(events []models.Event, ref time.Time) []DayBucket {
	start := StartOfWeek(ref)
	buckets := make([]DayBucket, 7)
	for i := range buckets {
		day := start.AddDate(0, 0, i)
		buckets[i].Date = day
		for _, e := range events {
			if SameDay(e.StartTime, day) {
				buckets[i].Events = append(buckets[i].Events, e)
			}
		}
		sort.SliceStable(buckets[i].Events, func(a, b int) bool {
			return buckets[i].Events[a].StartTime.Before(buckets[i].Events[b].StartTime)
		})
	}
	return buckets
}

// Column одна колонка канбан-доски.
type Column struct {
	Department string         `json:"department"`
	Events     []models.Event `json:"events"`
}

// Kanban раскладывает события по колонкам: по одной на каждый отдел из
// настроенного списка, включая отделы без единого события. Внутри
// колонки порядок: по статусу лексикографически (completed <
// in-progress < todo), затем по StartTime.
func Kanban(events []models.Event, departments []string) []Column {
	columns := make([]Column, 0, len(departments))
	for _, dept := range departments {
		col := Column{Department: dept, Events: []models.Event{}}
		for _, e := range events {
			if e.Department == dept {
				col.Events = append(col.Events, e)
			}
		}
		sort.SliceStable(col.Events, func(i, j int) bool {
			if col.Events[i].Status != col.Events[j].Status {
				return col.Events[i].Status < col.Events[j].Status
			}
			return col.Events[i].StartTime.Before(col.Events[j].StartTime)
		})
		columns = append(columns, col)
	}
	return columns
}

// Progress сводка прогресса текущего года для виджета дашборда.
type Progress struct {
	Percent   int `json:"percent"`
	DaysLeft  int `json:"daysLeft"`
	WeeksLeft int `json:"weeksLeft"`
}

// YearProgress считает процент прошедшей части года с фиксированным
// знаменателем 365 — високосные годы сознательно не учитываются,
// менять это поведение нельзя без смены контракта виджета.
func YearProgress(today time.Time) Progress {
	// нормализация в UTC, чтобы переход на летнее время не съедал день
	endOfYear := time.Date(today.Year(), 12, 31, 0, 0, 0, 0, time.UTC)
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	daysLeft := int(endOfYear.Sub(todayDate).Hours() / 24)
	elapsed := 365 - daysLeft
	percent := int(float64(elapsed)/365.0*100.0 + 0.5)
	return Progress{
		Percent:   percent,
		DaysLeft:  daysLeft,
		WeeksLeft: daysLeft / 7,
	}
}
