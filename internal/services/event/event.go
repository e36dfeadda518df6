// Package services содержит бизнес-логику управления событиями.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/event-hub/internal/lib/authz"
	"github.com/magabrotheeeer/event-hub/internal/lib/errs"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

// timeLayout формат дат в JSON-запросах, как в HTML-поле datetime-local.
const timeLayout = "2006-01-02T15:04"

// PageSize фиксированный размер страницы списка событий.
const PageSize = 12

// EventRepository определяет методы для работы с событиями в хранилище.
type EventRepository interface {
	// CreateEvent добавляет новое событие и возвращает его ID.
	CreateEvent(ctx context.Context, event models.Event) (int, error)
	// ReadEvent возвращает событие по ID.
	ReadEvent(ctx context.Context, id int) (*models.Event, error)
	// ListEvents возвращает страницу активных событий по фильтру.
	ListEvents(ctx context.Context, filter models.EventFilter, limit, offset int) ([]*models.Event, error)
	// ListEventsByOrganizer возвращает события организатора.
	ListEventsByOrganizer(ctx context.Context, organizerID int) ([]*models.Event, error)
	// UpdateEvent обновляет данные события по ID.
	UpdateEvent(ctx context.Context, event models.Event, id int) (int, error)
	// DeleteEvent удаляет событие вместе с записями на него.
	DeleteEvent(ctx context.Context, id int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// EventService реализует бизнес-логику работы с событиями, включая проверку
// прав владельца и кеширование чтений. Кеш события инвалидируется при любом
// изменении самого события и его записей, чтобы производные счётчики мест
// не отдавались устаревшими.
type EventService struct {
	repo  EventRepository
	cache Cache
	log   *slog.Logger
}

// NewEventService создает новый экземпляр EventService.
func NewEventService(repo EventRepository, cache Cache, log *slog.Logger) *EventService {
	return &EventService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// EventCacheKey возвращает ключ кеша для события.
func EventCacheKey(id int) string {
	return fmt.Sprintf("event:%d", id)
}

// parseEvent валидирует данные запроса и собирает из них модель события:
// окончание строго позже начала, крайний срок записи не позже начала.
func parseEvent(req models.DummyEvent) (models.Event, error) {
	startTime, err := time.Parse(timeLayout, req.StartTime)
	if err != nil {
		return models.Event{}, errs.NewValidation("start_time", "invalid datetime, expected format "+timeLayout)
	}
	endTime, err := time.Parse(timeLayout, req.EndTime)
	if err != nil {
		return models.Event{}, errs.NewValidation("end_time", "invalid datetime, expected format "+timeLayout)
	}
	if !endTime.After(startTime) {
		return models.Event{}, errs.NewValidation("end_time", "end date must be after start date")
	}

	var deadline *time.Time
	if req.RegistrationDeadline != "" {
		d, err := time.Parse(timeLayout, req.RegistrationDeadline)
		if err != nil {
			return models.Event{}, errs.NewValidation("registration_deadline", "invalid datetime, expected format "+timeLayout)
		}
		if d.After(startTime) {
			return models.Event{}, errs.NewValidation("registration_deadline", "registration deadline must be before event start")
		}
		deadline = &d
	}

	eventType := models.EventType(req.EventType)
	if !eventType.Valid() {
		return models.Event{}, errs.NewValidation("event_type", "unknown event type")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return models.Event{
		Title:                req.Title,
		Description:          req.Description,
		StartTime:            startTime,
		EndTime:              endTime,
		Location:             req.Location,
		VenueDetails:         req.VenueDetails,
		MaxAttendees:         req.MaxAttendees,
		RegistrationDeadline: deadline,
		Type:                 eventType,
		IsActive:             isActive,
	}, nil
}

// Create создает новое событие. Доступно только организаторам,
// владельцем становится действующий пользователь.
func (s *EventService) Create(ctx context.Context, actorID int, actorRole models.Role, req models.DummyEvent) (int, error) {
	if !authz.CanCreateEvent(actorRole) {
		return 0, errs.ErrForbidden
	}

	event, err := parseEvent(req)
	if err != nil {
		return 0, err
	}
	event.OrganizerID = actorID

	id, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new event", slog.Int("id", id), slog.Int("organizer_id", actorID))
	return id, nil
}

// Read возвращает событие по ID, используя кеш или репозиторий.
func (s *EventService) Read(ctx context.Context, id int) (*models.Event, error) {
	var result *models.Event
	cacheKey := EventCacheKey(id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ReadEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache event", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает страницу активных событий по фильтру,
// упорядоченную по времени начала.
func (s *EventService) List(ctx context.Context, filter models.EventFilter, page int) ([]*models.Event, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, errs.NewValidation("type", "unknown event type")
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize
	return s.repo.ListEvents(ctx, filter, PageSize, offset)
}

// ListMine возвращает все события, которыми владеет действующий пользователь.
func (s *EventService) ListMine(ctx context.Context, actorID int) ([]*models.Event, error) {
	return s.repo.ListEventsByOrganizer(ctx, actorID)
}

// Update обновляет событие. Доступно только владельцу, применяются те же
// правила валидации, что и при создании.
func (s *EventService) Update(ctx context.Context, actorID, eventID int, req models.DummyEvent) (int, error) {
	existing, err := s.repo.ReadEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if !authz.CanManageEvent(actorID, existing) {
		return 0, errs.ErrForbidden
	}

	event, err := parseEvent(req)
	if err != nil {
		return 0, err
	}

	res, err := s.repo.UpdateEvent(ctx, event, eventID)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated event", slog.Int("id", eventID))

	cacheKey := EventCacheKey(eventID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return res, nil
}

// Delete удаляет событие вместе со всеми записями на него.
// Доступно только владельцу.
func (s *EventService) Delete(ctx context.Context, actorID, eventID int) error {
	existing, err := s.repo.ReadEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if !authz.CanManageEvent(actorID, existing) {
		return errs.ErrForbidden
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		return err
	}
	s.log.Info("deleted event", slog.Int("id", eventID))

	cacheKey := EventCacheKey(eventID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}
