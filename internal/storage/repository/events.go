package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/realaashishly/korixen-cal/internal/lib/ids"
	"github.com/realaashishly/korixen-cal/internal/models"
)

// ListEvents возвращает все события пользователя.
func (s *Storage) ListEvents(ctx context.Context, userUID string) ([]models.Event, error) {
	const op = "storage.ListEvents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, start_time, end_time, event_type, department,
			      status, recurrence, display_order, meet_link, location, attendees, resources,
			      created_at, updated_at
			  FROM events WHERE user_uid = $1
			  ORDER BY start_time`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// CreateEvent сохраняет событие под свежим постоянным ID и возвращает
// его с отметками времени базы.
func (s *Storage) CreateEvent(ctx context.Context, userUID string, ev models.Event) (models.Event, error) {
	const op = "storage.CreateEvent"
	select {
	case <-ctx.Done():
		return models.Event{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	attendees, resources, err := marshalEventJSON(ev)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	stored := ev
	stored.ID = ids.NewDurable()

	query := `INSERT INTO events (id, user_uid, title, description, start_time, end_time,
			      event_type, department, status, recurrence, display_order, meet_link,
			      location, attendees, resources)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			  RETURNING created_at, updated_at`
	err = s.DB.QueryRowContext(ctx, query,
		stored.ID, userUID, ev.Title, ev.Description, ev.StartTime, ev.EndTime,
		ev.Type, ev.Department, ev.Status, ev.Recurrence, ev.Order, ev.MeetLink,
		ev.Location, attendees, resources).Scan(&stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}
	return stored, nil
}

// UpdateEvent перезаписывает событие по ID.
func (s *Storage) UpdateEvent(ctx context.Context, userUID string, ev models.Event) error {
	const op = "storage.UpdateEvent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	attendees, resources, err := marshalEventJSON(ev)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE events
			  SET title = $1, description = $2, start_time = $3, end_time = $4,
			      event_type = $5, department = $6, status = $7, recurrence = $8,
			      display_order = $9, meet_link = $10, location = $11,
			      attendees = $12, resources = $13, updated_at = now()
			  WHERE id = $14 AND user_uid = $15`
	result, err := s.DB.ExecContext(ctx, query,
		ev.Title, ev.Description, ev.StartTime, ev.EndTime,
		ev.Type, ev.Department, ev.Status, ev.Recurrence,
		ev.Order, ev.MeetLink, ev.Location,
		attendees, resources, ev.ID, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}
	return nil
}

// DeleteEvent удаляет событие по ID.
func (s *Storage) DeleteEvent(ctx context.Context, userUID, id string) error {
	const op = "storage.DeleteEvent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM events WHERE id = $1 AND user_uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, id, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateEventPlacement сохраняет порядок, время и статус пачки событий
// одной транзакцией.
func (s *Storage) UpdateEventPlacement(ctx context.Context, userUID string, events []models.Event) error {
	const op = "storage.UpdateEventPlacement"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `UPDATE events
			  SET display_order = $1, start_time = $2, end_time = $3, status = $4, updated_at = now()
			  WHERE id = $5 AND user_uid = $6`
	for _, ev := range events {
		if _, err := tx.ExecContext(ctx, query,
			ev.Order, ev.StartTime, ev.EndTime, ev.Status, ev.ID, userUID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		ev        models.Event
		endTime   sql.NullTime
		order     sql.NullInt64
		attendees []byte
		resources []byte
	)
	if err := row.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.StartTime, &endTime,
		&ev.Type, &ev.Department, &ev.Status, &ev.Recurrence, &order, &ev.MeetLink,
		&ev.Location, &attendees, &resources, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
		return models.Event{}, err
	}
	// колонка CHAR(24) дополняется пробелами
	ev.ID = strings.TrimRight(ev.ID, " ")
	if endTime.Valid {
		t := endTime.Time
		ev.EndTime = &t
	}
	if order.Valid {
		o := int(order.Int64)
		ev.Order = &o
	}
	if err := json.Unmarshal(attendees, &ev.Attendees); err != nil {
		return models.Event{}, err
	}
	if err := json.Unmarshal(resources, &ev.Resources); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

func marshalEventJSON(ev models.Event) (attendees, resources []byte, err error) {
	if ev.Attendees == nil {
		ev.Attendees = []string{}
	}
	if ev.Resources == nil {
		ev.Resources = []models.ResourceItem{}
	}
	attendees, err = json.Marshal(ev.Attendees)
	if err != nil {
		return nil, nil, err
	}
	resources, err = json.Marshal(ev.Resources)
	if err != nil {
		return nil, nil, err
	}
	return attendees, resources, nil
}
