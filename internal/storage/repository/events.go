package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/event-hub/internal/lib/errs"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

// escapeLike экранирует спецсимволы шаблона ILIKE, чтобы поисковая строка
// пользователя трактовалась как буквальная подстрока, а не как шаблон.
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace

// registeredCountSubquery считает активные записи события на момент чтения.
// Производные свойства (свободные места, заполненность) вычисляются от этого
// значения и не хранятся в базе.
const registeredCountSubquery = `(SELECT COUNT(*) FROM registrations r
			      WHERE r.event_id = e.id AND r.status = 'registered')`

const eventColumns = `e.id, e.title, COALESCE(e.description, ''), e.start_time, e.end_time,
			      e.location, COALESCE(e.venue_details, ''), e.max_attendees,
			      e.registration_deadline, e.event_type, e.is_active, e.organizer_id,
			      e.created_at, e.updated_at, ` + registeredCountSubquery

func scanEvent(row interface{ Scan(dest ...any) error }) (*models.Event, error) {
	e := &models.Event{}
	var maxAttendees sql.NullInt64
	var deadline sql.NullTime
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime,
		&e.Location, &e.VenueDetails, &maxAttendees, &deadline, &e.Type,
		&e.IsActive, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt, &e.RegisteredCount); err != nil {
		return nil, err
	}
	if maxAttendees.Valid {
		v := int(maxAttendees.Int64)
		e.MaxAttendees = &v
	}
	if deadline.Valid {
		t := deadline.Time
		e.RegistrationDeadline = &t
	}
	return e, nil
}

// CreateEvent вставляет новое событие и возвращает его ID.
func (s *Storage) CreateEvent(ctx context.Context, event models.Event) (int, error) {
	const op = "storage.CreateEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO events (title, description, start_time, end_time, location,
			      venue_details, max_attendees, registration_deadline, event_type,
			      is_active, organizer_id)
			  VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		event.Title, event.Description, event.StartTime, event.EndTime, event.Location,
		event.VenueDetails, event.MaxAttendees, event.RegistrationDeadline, event.Type,
		event.IsActive, event.OrganizerID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadEvent возвращает событие по его ID вместе с актуальным количеством
// активных записей.
func (s *Storage) ReadEvent(ctx context.Context, id int) (*models.Event, error) {
	const op = "storage.ReadEvent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`
	event, err := scanEvent(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return event, nil
}

// ListEvents возвращает страницу активных событий с фильтрацией по подстроке
// в названии или описании (без учёта регистра) и по типу события,
// упорядоченную по времени начала по возрастанию.
func (s *Storage) ListEvents(ctx context.Context, filter models.EventFilter, limit, offset int) ([]*models.Event, error) {
	const op = "storage.ListEvents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + eventColumns + `
			  FROM events e
			  WHERE e.is_active = true
			    AND ($1 = '' OR e.title ILIKE '%' || $1 || '%' OR e.description ILIKE '%' || $1 || '%')
			    AND ($2 = '' OR e.event_type = $2)
			  ORDER BY e.start_time ASC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, escapeLike(filter.Search), string(filter.Type), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListEventsByOrganizer возвращает все события организатора,
// упорядоченные по времени начала по возрастанию.
func (s *Storage) ListEventsByOrganizer(ctx context.Context, organizerID int) ([]*models.Event, error) {
	const op = "storage.ListEventsByOrganizer"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + eventColumns + `
			  FROM events e
			  WHERE e.organizer_id = $1
			  ORDER BY e.start_time ASC`
	rows, err := s.DB.QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateEvent обновляет данные события по его ID и возвращает количество
// изменённых строк.
func (s *Storage) UpdateEvent(ctx context.Context, event models.Event, id int) (int, error) {
	const op = "storage.UpdateEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE events
			  SET title = $1, description = NULLIF($2, ''), start_time = $3, end_time = $4,
			      location = $5, venue_details = NULLIF($6, ''), max_attendees = $7,
			      registration_deadline = $8, event_type = $9, is_active = $10,
			      updated_at = now()
			  WHERE id = $11`
	result, err := s.DB.ExecContext(ctx, query,
		event.Title, event.Description, event.StartTime, event.EndTime, event.Location,
		event.VenueDetails, event.MaxAttendees, event.RegistrationDeadline, event.Type,
		event.IsActive, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteEvent удаляет событие вместе со всеми записями на него.
// Оба шага выполняются в одной транзакции.
func (s *Storage) DeleteEvent(ctx context.Context, id int) error {
	const op = "storage.DeleteEvent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM registrations WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return errs.ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
