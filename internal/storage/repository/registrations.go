package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/event-hub/internal/lib/errs"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

// CreateRegistration записывает пользователя на событие и возвращает ID записи.
//
// Проверка вместимости и вставка выполняются в одной транзакции под блокировкой
// строки события (SELECT ... FOR UPDATE), поэтому две конкурентные записи на
// последнее свободное место не могут пройти проверку по устаревшему счётчику.
// Уникальное ограничение (user_id, event_id) в схеме закрывает гонку повторной
// записи независимо от прикладной проверки.
func (s *Storage) CreateRegistration(ctx context.Context, userID, eventID int, notes string) (int, error) {
	const op = "storage.CreateRegistration"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var isActive bool
	var maxAttendees sql.NullInt64
	var deadline sql.NullTime
	err = tx.QueryRowContext(ctx,
		`SELECT is_active, max_attendees, registration_deadline
		 FROM events WHERE id = $1 FOR UPDATE`, eventID).
		Scan(&isActive, &maxAttendees, &deadline)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errs.ErrNotFound
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	if !isActive || (deadline.Valid && now.After(deadline.Time)) {
		return 0, errs.ErrRegistrationClosed
	}
	if maxAttendees.Valid {
		var count int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM registrations
			 WHERE event_id = $1 AND status = 'registered'`, eventID).Scan(&count)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		if int64(count) >= maxAttendees.Int64 {
			return 0, errs.ErrRegistrationClosed
		}
	}

	var newID int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO registrations (user_id, event_id, status, notes)
		 VALUES ($1, $2, 'registered', NULLIF($3, ''))
		 RETURNING id`, userID, eventID, notes).Scan(&newID)
	if err != nil {
		if isUniqueViolation(err, "unique_user_event_registration") {
			return 0, errs.ErrAlreadyRegistered
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetRegistration возвращает запись пары (userID, eventID).
func (s *Storage) GetRegistration(ctx context.Context, userID, eventID int) (*models.Registration, error) {
	const op = "storage.GetRegistration"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, event_id, registered_at, status, COALESCE(notes, '')
			  FROM registrations
			  WHERE user_id = $1 AND event_id = $2`
	reg := &models.Registration{}
	err := s.DB.QueryRowContext(ctx, query, userID, eventID).
		Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.RegisteredAt, &reg.Status, &reg.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reg, nil
}

// DeleteRegistration удаляет запись пары (userID, eventID) и возвращает
// количество удалённых строк.
func (s *Storage) DeleteRegistration(ctx context.Context, userID, eventID int) (int, error) {
	const op = "storage.DeleteRegistration"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM registrations WHERE user_id = $1 AND event_id = $2`
	result, err := s.DB.ExecContext(ctx, query, userID, eventID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListAttendees возвращает все записи на событие вместе с данными участников.
func (s *Storage) ListAttendees(ctx context.Context, eventID int) ([]*models.AttendeeInfo, error) {
	const op = "storage.ListAttendees"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, u.id, u.username, u.email, u.first_name, u.last_name,
			      r.registered_at, r.status, COALESCE(r.notes, '')
			  FROM registrations r
			  JOIN users u ON r.user_id = u.id
			  WHERE r.event_id = $1
			  ORDER BY r.registered_at ASC`
	rows, err := s.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AttendeeInfo
	for rows.Next() {
		var a models.AttendeeInfo
		if err = rows.Scan(&a.RegistrationID, &a.UserID, &a.Username, &a.Email,
			&a.FirstName, &a.LastName, &a.RegisteredAt, &a.Status, &a.Notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListRegistrationsByUser возвращает все записи пользователя вместе
// с данными событий для личного кабинета.
func (s *Storage) ListRegistrationsByUser(ctx context.Context, userID int) ([]*models.UserRegistrationInfo, error) {
	const op = "storage.ListRegistrationsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, e.id, e.title, e.event_type, e.start_time, e.end_time,
			      e.location, r.registered_at, r.status, COALESCE(r.notes, '')
			  FROM registrations r
			  JOIN events e ON r.event_id = e.id
			  WHERE r.user_id = $1
			  ORDER BY e.start_time ASC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UserRegistrationInfo
	for rows.Next() {
		var ri models.UserRegistrationInfo
		if err = rows.Scan(&ri.RegistrationID, &ri.EventID, &ri.EventTitle, &ri.EventType,
			&ri.StartTime, &ri.EndTime, &ri.Location, &ri.RegisteredAt, &ri.Status, &ri.Notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &ri)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
