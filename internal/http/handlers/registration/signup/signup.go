// Package signup реализует HTTP-обработчик для записи пользователя на событие.
//
// Повторная запись и закрытая запись — ожидаемые пользовательские исходы:
// они возвращаются информационными сообщениями, а не ошибками сервера.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/event-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/event-hub/internal/http/response"
	"github.com/magabrotheeeer/event-hub/internal/lib/errs"
	"github.com/magabrotheeeer/event-hub/internal/lib/sl"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

// Handler обрабатывает HTTP-запросы на запись на событие.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики записи на событие.
type Service interface {
	Signup(ctx context.Context, userID, eventID int, req models.DummySignup) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Записаться на событие
// @Description Записывает текущего пользователя на событие. Тело запроса с заметками опционально.
// @Tags Registrations
// @Accept  json
// @Produce  json
// @Param id path int true "ID события"
// @Param request body models.DummySignup false "Заметки участника"
// @Success 200 {object} map[string]any "Успешная запись или информационное сообщение"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Failure 409 {object} response.Response "Запись на событие закрыта"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /events/{id}/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.registration.signup"

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

	var req models.DummySignup
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	actor, ok := middlewarectx.ActorFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Signup(r.Context(), actor.ID, eventID, req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			log.Info("event not found", slog.Int("event_id", eventID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("event not found"))
		case errors.Is(err, errs.ErrAlreadyRegistered):
			log.Info("already registered",
				slog.Int("user_id", actor.ID),
				slog.Int("event_id", eventID))
			render.JSON(w, r, response.Info(errs.ErrAlreadyRegistered.Error()))
		case errors.Is(err, errs.ErrRegistrationClosed):
			log.Info("registration closed", slog.Int("event_id", eventID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Info(errs.ErrRegistrationClosed.Error()))
		default:
			log.Error("failed to register for event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not register for event"))
		}
		return
	}

	log.Info("success to register for event",
		slog.Int("registration_id", id),
		slog.Int("event_id", eventID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"registration_id": id,
	}))
}
