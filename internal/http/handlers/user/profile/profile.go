// Package profile реализует HTTP-обработчик для просмотра профиля
// пользователя. Свой профиль доступен по /users/me, чужие профили
// по /users/{id} могут просматривать только организаторы.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/event-hub/internal/http/response"
	"github.com/magabrotheeeer/event-hub/internal/lib/errs"
	"github.com/magabrotheeeer/event-hub/internal/lib/sl"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

// Handler обрабатывает HTTP-запросы на просмотр профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики просмотра профиля.
type Service interface {
	GetProfile(ctx context.Context, actorID int, actorRole models.Role, targetID int) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль пользователя
// @Description Возвращает профиль по ID. Без ID возвращает профиль текущего пользователя, чужие профили доступны только организаторам.
// @Tags Users
// @Produce  json
// @Param id path int false "ID пользователя"
// @Success 200 {object} map[string]any "Данные профиля"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := middlewarectx.ActorFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	targetID := actor.ID
	if idStr := chi.URLParam(r, "id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			log.Error("invalid id format", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid id"))
			return
		}
		targetID = id
	}

	user, err := h.service.GetProfile(r.Context(), actor.ID, actor.Role, targetID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			log.Info("user not found", slog.Int("id", targetID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, errs.ErrForbidden):
			log.Info("profile view rejected",
				slog.Int("target_id", targetID),
				slog.Int("user_id", actor.ID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("not allowed to view this profile"))
		default:
			log.Error("failed to read profile", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read profile"))
		}
		return
	}

	log.Info("success to read profile", slog.Int("id", targetID))
	render.JSON(w, r, response.OKWithData(models.NewUserView(user)))
}
