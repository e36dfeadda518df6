// Package eventhub предоставляет маршруты для основного приложения.
package eventhub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/event-hub/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/event-hub/internal/http/handlers/auth/register"
	eventcreate "github.com/magabrotheeeer/event-hub/internal/http/handlers/event/create"
	eventlist "github.com/magabrotheeeer/event-hub/internal/http/handlers/event/list"
	eventlistmine "github.com/magabrotheeeer/event-hub/internal/http/handlers/event/listmine"
	eventread "github.com/magabrotheeeer/event-hub/internal/http/handlers/event/read"
	eventremove "github.com/magabrotheeeer/event-hub/internal/http/handlers/event/remove"
	eventupdate "github.com/magabrotheeeer/event-hub/internal/http/handlers/event/update"
	"github.com/magabrotheeeer/event-hub/internal/http/handlers/health"
	"github.com/magabrotheeeer/event-hub/internal/http/handlers/registration/attendees"
	"github.com/magabrotheeeer/event-hub/internal/http/handlers/registration/cancel"
	registrationlist "github.com/magabrotheeeer/event-hub/internal/http/handlers/registration/list"
	"github.com/magabrotheeeer/event-hub/internal/http/handlers/registration/signup"
	"github.com/magabrotheeeer/event-hub/internal/http/handlers/user/profile"
	userremove "github.com/magabrotheeeer/event-hub/internal/http/handlers/user/remove"
	userupdate "github.com/magabrotheeeer/event-hub/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/event-hub/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/event-hub/internal/services/auth"
	eventservice "github.com/magabrotheeeer/event-hub/internal/services/event"
	registrationservice "github.com/magabrotheeeer/event-hub/internal/services/registration"
	userservice "github.com/magabrotheeeer/event-hub/internal/services/user"
	"github.com/magabrotheeeer/event-hub/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	authService *authservice.AuthService,
	eventService *eventservice.EventService,
	registrationService *registrationservice.RegistrationService,
	userService *userservice.UserService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/events", eventlist.New(logger, eventService).ServeHTTP)
		r.Get("/events/{id}", eventread.New(logger, eventService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/events", eventcreate.New(logger, eventService).ServeHTTP)
			r.Get("/events/my", eventlistmine.New(logger, eventService).ServeHTTP)
			r.Put("/events/{id}", eventupdate.New(logger, eventService).ServeHTTP)
			r.Delete("/events/{id}", eventremove.New(logger, eventService).ServeHTTP)
			r.Post("/events/{id}/register", signup.New(logger, registrationService).ServeHTTP)
			r.Delete("/events/{id}/register", cancel.New(logger, registrationService).ServeHTTP)
			r.Get("/events/{id}/attendees", attendees.New(logger, registrationService).ServeHTTP)
			r.Get("/registrations/my", registrationlist.New(logger, registrationService).ServeHTTP)
			r.Get("/users/me", profile.New(logger, userService).ServeHTTP)
			r.Put("/users/me", userupdate.New(logger, userService).ServeHTTP)
			r.Delete("/users/me", userremove.New(logger, userService).ServeHTTP)
			r.Get("/users/{id}", profile.New(logger, userService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
