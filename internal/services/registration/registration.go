// Package services содержит бизнес-логику записи пользователей на события.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/event-hub/internal/lib/authz"
	"github.com/magabrotheeeer/event-hub/internal/lib/errs"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

// RegistrationRepository определяет методы для работы с записями в хранилище.
type RegistrationRepository interface {
	// CreateRegistration записывает пользователя на событие и возвращает ID записи.
	// Проверка вместимости и крайнего срока выполняется атомарно в хранилище.
	CreateRegistration(ctx context.Context, userID, eventID int, notes string) (int, error)
	// DeleteRegistration удаляет запись пары и возвращает количество удалённых строк.
	DeleteRegistration(ctx context.Context, userID, eventID int) (int, error)
	// ListAttendees возвращает записи события вместе с данными участников.
	ListAttendees(ctx context.Context, eventID int) ([]*models.AttendeeInfo, error)
	// ListRegistrationsByUser возвращает записи пользователя вместе с данными событий.
	ListRegistrationsByUser(ctx context.Context, userID int) ([]*models.UserRegistrationInfo, error)
}

// EventReader возвращает событие для проверки владельца.
type EventReader interface {
	ReadEvent(ctx context.Context, id int) (*models.Event, error)
}

// Cache описывает методы для инвалидации кеша событий.
type Cache interface {
	Invalidate(key string) error
}

// RegistrationService реализует бизнес-логику записи и отмены записи на
// события. После каждой успешной мутации кеш события сбрасывается, чтобы
// счётчик свободных мест пересчитывался при следующем чтении.
type RegistrationService struct {
	repo   RegistrationRepository
	events EventReader
	cache  Cache
	log    *slog.Logger
}

// NewRegistrationService создает новый экземпляр RegistrationService.
func NewRegistrationService(repo RegistrationRepository, events EventReader, cache Cache, log *slog.Logger) *RegistrationService {
	return &RegistrationService{
		repo:   repo,
		events: events,
		cache:  cache,
		log:    log,
	}
}

func (s *RegistrationService) invalidateEvent(eventID int) {
	key := fmt.Sprintf("event:%d", eventID)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", key), slog.Any("err", err))
	}
}

// Signup записывает пользователя на событие. Возвращает
// errs.ErrRegistrationClosed, если событие неактивно, заполнено или крайний
// срок прошёл, и errs.ErrAlreadyRegistered при повторной записи — оба исхода
// ожидаемые пользовательские состояния, а не сбои.
func (s *RegistrationService) Signup(ctx context.Context, userID, eventID int, req models.DummySignup) (int, error) {
	id, err := s.repo.CreateRegistration(ctx, userID, eventID, req.Notes)
	if err != nil {
		return 0, err
	}
	s.log.Info("registered for event",
		slog.Int("registration_id", id),
		slog.Int("user_id", userID),
		slog.Int("event_id", eventID))

	s.invalidateEvent(eventID)
	return id, nil
}

// Cancel удаляет запись пользователя на событие. Если записи нет,
// возвращает errs.ErrNotRegistered.
func (s *RegistrationService) Cancel(ctx context.Context, userID, eventID int) error {
	count, err := s.repo.DeleteRegistration(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.ErrNotRegistered
	}
	s.log.Info("unregistered from event",
		slog.Int("user_id", userID),
		slog.Int("event_id", eventID))

	s.invalidateEvent(eventID)
	return nil
}

// Attendees возвращает список участников события. Доступно только владельцу
// события, остальные получают errs.ErrForbidden.
func (s *RegistrationService) Attendees(ctx context.Context, actorID, eventID int) ([]*models.AttendeeInfo, error) {
	event, err := s.events.ReadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageEvent(actorID, event) {
		return nil, errs.ErrForbidden
	}
	return s.repo.ListAttendees(ctx, eventID)
}

// ListForUser возвращает все записи пользователя для личного кабинета.
func (s *RegistrationService) ListForUser(ctx context.Context, userID int) ([]*models.UserRegistrationInfo, error) {
	return s.repo.ListRegistrationsByUser(ctx, userID)
}
