package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/event-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/event-hub/internal/lib/errs"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Signup(ctx context.Context, userID, eventID int, req models.DummySignup) (int, error) {
	args := m.Called(ctx, userID, eventID, req)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSignupHandler(t *testing.T) {
	tests := []struct {
		name           string
		urlID          string
		requestBody    interface{}
		actorID        int
		setupMock      func(m *ServiceMock)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешная запись с заметками",
			urlID:       "5",
			requestBody: models.DummySignup{Notes: "vegetarian meal"},
			actorID:     1,
			setupMock: func(m *ServiceMock) {
				m.On("Signup", mock.Anything, 1, 5, models.DummySignup{Notes: "vegetarian meal"}).
					Return(33, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"registration_id":33`,
		},
		{
			name:        "успешная запись без тела запроса",
			urlID:       "5",
			requestBody: nil,
			actorID:     1,
			setupMock: func(m *ServiceMock) {
				m.On("Signup", mock.Anything, 1, 5, models.DummySignup{}).
					Return(34, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"registration_id":34`,
		},
		{
			name:           "некорректный id в url",
			urlID:          "abc",
			requestBody:    nil,
			actorID:        1,
			setupMock:      func(_ *ServiceMock) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid id"`,
		},
		{
			name:           "отсутствует авторизация",
			urlID:          "5",
			requestBody:    nil,
			actorID:        0,
			setupMock:      func(_ *ServiceMock) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:        "событие не найдено",
			urlID:       "9",
			requestBody: nil,
			actorID:     1,
			setupMock: func(m *ServiceMock) {
				m.On("Signup", mock.Anything, 1, 9, models.DummySignup{}).
					Return(0, errs.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"event not found"`,
		},
		{
			name:        "повторная запись",
			urlID:       "5",
			requestBody: nil,
			actorID:     1,
			setupMock: func(m *ServiceMock) {
				m.On("Signup", mock.Anything, 1, 5, models.DummySignup{}).
					Return(0, errs.ErrAlreadyRegistered).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"already registered for this event"`,
		},
		{
			name:        "запись закрыта",
			urlID:       "5",
			requestBody: nil,
			actorID:     1,
			setupMock: func(m *ServiceMock) {
				m.On("Signup", mock.Anything, 1, 5, models.DummySignup{}).
					Return(0, errs.ErrRegistrationClosed).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"message":"registration is not available for this event"`,
		},
		{
			name:        "ошибка сервиса",
			urlID:       "5",
			requestBody: nil,
			actorID:     1,
			setupMock: func(m *ServiceMock) {
				m.On("Signup", mock.Anything, 1, 5, models.DummySignup{}).
					Return(0, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not register for event"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			tt.setupMock(serviceMock)

			handler := New(newNoopLogger(), serviceMock)

			var body []byte
			var err error
			if tt.requestBody != nil {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/events/"+tt.urlID+"/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.actorID != 0 {
				ctx = context.WithValue(ctx, middlewarectx.UserID, tt.actorID)
				ctx = context.WithValue(ctx, middlewarectx.User, "testuser")
				ctx = context.WithValue(ctx, middlewarectx.Role, "attendee")
			}
			req = req.WithContext(ctx)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			serviceMock.AssertExpectations(t)
		})
	}
}
