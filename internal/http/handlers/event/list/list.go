// Package list реализует HTTP-обработчик для получения списка активных событий.
//
// Поддерживаются поиск по подстроке в названии или описании, фильтр по типу
// события и постраничная выдача фиксированного размера, упорядоченная
// по времени начала.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-hub/internal/http/response"
	"github.com/magabrotheeeer/event-hub/internal/lib/errs"
	"github.com/magabrotheeeer/event-hub/internal/lib/sl"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

// Handler обрабатывает HTTP-запросы на получение списка событий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка событий.
type Service interface {
	List(ctx context.Context, filter models.EventFilter, page int) ([]*models.Event, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список событий
// @Description Возвращает страницу активных событий с поиском и фильтром по типу, упорядоченную по времени начала.
// @Tags Events
// @Produce  json
// @Param page query int false "Номер страницы, по умолчанию 1"
// @Param search query string false "Подстрока для поиска по названию или описанию"
// @Param type query string false "Тип события"
// @Success 200 {object} map[string]any "Страница событий"
// @Failure 422 {object} response.ErrorResponse "Неизвестный тип события"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /events [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	filter := models.EventFilter{
		Search: r.URL.Query().Get("search"),
		Type:   models.EventType(r.URL.Query().Get("type")),
	}

	events, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		if ve, ok := errs.AsValidation(err); ok {
			log.Error("invalid filter", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.FieldError(ve.Field, ve.Msg))
			return
		}
		log.Error("failed to list events", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list events"))
		return
	}

	log.Info("success to list events", slog.Int("page", page), slog.Int("count", len(events)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"page":   page,
		"events": models.NewEventViews(events, time.Now()),
	}))
}
