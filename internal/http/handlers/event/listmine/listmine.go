// Package listmine реализует HTTP-обработчик кабинета организатора:
// список всех событий, которыми владеет текущий пользователь,
// включая неактивные.
package listmine

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/event-hub/internal/http/response"
	"github.com/magabrotheeeer/event-hub/internal/lib/sl"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

// Handler обрабатывает HTTP-запросы кабинета организатора.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка событий организатора.
type Service interface {
	ListMine(ctx context.Context, actorID int) ([]*models.Event, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Мои события
// @Description Возвращает все события текущего пользователя, включая неактивные.
// @Tags Events
// @Produce  json
// @Success 200 {object} map[string]any "События организатора"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /events/my [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.listmine"

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

	events, err := h.service.ListMine(r.Context(), actor.ID)
	if err != nil {
		log.Error("failed to list organizer events", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list events"))
		return
	}

	log.Info("success to list organizer events",
		slog.Int("organizer_id", actor.ID),
		slog.Int("count", len(events)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"events": models.NewEventViews(events, time.Now()),
	}))
}
