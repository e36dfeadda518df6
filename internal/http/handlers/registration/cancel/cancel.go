// Package cancel реализует HTTP-обработчик для отмены записи на событие.
//
// Отмена несуществующей записи — ожидаемый пользовательский исход,
// возвращается информационным сообщением.
package cancel

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
)

// Handler обрабатывает HTTP-запросы на отмену записи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отмены записи.
type Service interface {
	Cancel(ctx context.Context, userID, eventID int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить запись на событие
// @Description Удаляет запись текущего пользователя на событие, освобождая место.
// @Tags Registrations
// @Produce  json
// @Param id path int true "ID события"
// @Success 200 {object} response.Response "Успешная отмена или информационное сообщение"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /events/{id}/register [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.registration.cancel"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	eventID, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	actor, ok := middlewarectx.ActorFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Cancel(r.Context(), actor.ID, eventID); err != nil {
		if errors.Is(err, errs.ErrNotRegistered) {
			log.Info("not registered",
				slog.Int("user_id", actor.ID),
				slog.Int("event_id", eventID))
			render.JSON(w, r, response.Info(errs.ErrNotRegistered.Error()))
			return
		}
		log.Error("failed to cancel registration", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not cancel registration"))
		return
	}

	log.Info("success to cancel registration",
		slog.Int("user_id", actor.ID),
		slog.Int("event_id", eventID))
	render.JSON(w, r, response.OK())
}
