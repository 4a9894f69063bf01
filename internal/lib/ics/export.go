// Package ics собирает iCalendar-представление событий пользователя
// для экспорта во внешние календари.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/realaashishly/korixen-cal/internal/models"
)

// ProdID идентификатор генератора в заголовке календаря.
const ProdID = "-//korixen//calendar//RU"

const defaultDuration = time.Hour

// BuildCalendar сериализует события в iCalendar. События без времени
// окончания экспортируются с длительностью в один час.
func BuildCalendar(events []models.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProdID)

	for _, e := range events {
		ve := cal.AddEvent(fmt.Sprintf("%s@korixen", e.ID))
		ve.SetSummary(e.Title)
		ve.SetStartAt(e.StartTime)
		if e.EndTime != nil {
			ve.SetEndAt(*e.EndTime)
		} else {
			ve.SetEndAt(e.StartTime.Add(defaultDuration))
		}
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.MeetLink != "" {
			ve.SetURL(e.MeetLink)
		}
		if !e.CreatedAt.IsZero() {
			ve.SetCreatedTime(e.CreatedAt)
		}
		if !e.UpdatedAt.IsZero() {
			ve.SetModifiedAt(e.UpdatedAt)
		}
		for _, a := range e.Attendees {
			ve.AddAttendee(a)
		}
	}
	return cal.Serialize()
}
