// Package services содержит бизнес-логику работы с профилями пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/event-hub/internal/lib/authz"
	"github.com/magabrotheeeer/event-hub/internal/lib/errs"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// GetUser возвращает пользователя по ID или errs.ErrNotFound.
	GetUser(ctx context.Context, id int) (*models.User, error)
	// GetUserByEmail возвращает пользователя по почте или errs.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUserProfile обновляет профильные поля и возвращает число изменённых строк.
	UpdateUserProfile(ctx context.Context, id int, req models.DummyProfile) (int, error)
	// DeleteUser удаляет пользователя вместе с его событиями и записями.
	DeleteUser(ctx context.Context, id int) error
	// ListAffectedEventIDs возвращает события, которые затронет удаление
	// пользователя: его собственные и те, на которые он записан.
	ListAffectedEventIDs(ctx context.Context, userID int) ([]int, error)
}

// Cache описывает методы для инвалидации кеша событий.
type Cache interface {
	Invalidate(key string) error
}

// UserService реализует бизнес-логику просмотра и редактирования профилей.
// Удаление учётной записи каскадно меняет записи и события, поэтому кеш
// затронутых событий сбрасывается так же, как при отмене записи.
type UserService struct {
	repo  UserRepository
	cache Cache
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, cache Cache, log *slog.Logger) *UserService {
	return &UserService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// GetProfile возвращает профиль targetID. Свой профиль доступен всегда,
// чужие профили могут просматривать только организаторы.
func (s *UserService) GetProfile(ctx context.Context, actorID int, actorRole models.Role, targetID int) (*models.User, error) {
	if !authz.CanViewProfile(actorID, actorRole, targetID) {
		return nil, errs.ErrForbidden
	}
	return s.repo.GetUser(ctx, targetID)
}

// UpdateProfile обновляет профиль targetID. Редактировать можно только
// собственный профиль; смена почты на занятую другим пользователем
// возвращает ValidationError поля email.
func (s *UserService) UpdateProfile(ctx context.Context, actorID, targetID int, req models.DummyProfile) error {
	if !authz.CanEditProfile(actorID, targetID) {
		return errs.ErrForbidden
	}

	other, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err == nil && other.ID != targetID {
		return errs.NewValidation("email", "already registered by another user")
	}
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	count, err := s.repo.UpdateUserProfile(ctx, targetID, req)
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.ErrNotFound
	}
	s.log.Info("updated profile", slog.Int("user_id", targetID))
	return nil
}

// DeleteAccount удаляет учётную запись действующего пользователя вместе
// с его записями, организованными событиями и записями на эти события.
// Затронутые события собираются до удаления: после каскада их уже не найти,
// а кешированные чтения отдавали бы устаревшие счётчики мест
// и удалённые события.
func (s *UserService) DeleteAccount(ctx context.Context, actorID int) error {
	eventIDs, err := s.repo.ListAffectedEventIDs(ctx, actorID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteUser(ctx, actorID); err != nil {
		return err
	}
	s.log.Info("deleted account", slog.Int("user_id", actorID))

	for _, eventID := range eventIDs {
		key := fmt.Sprintf("event:%d", eventID)
		if err := s.cache.Invalidate(key); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", key), slog.Any("err", err))
		}
	}
	return nil
}
