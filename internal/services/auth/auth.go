// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/event-hub/internal/lib/errs"
	"github.com/magabrotheeeer/event-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/event-hub/internal/lib/password"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int, error)

	// GetUserByUsername возвращает пользователя по имени или errs.ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByEmail возвращает пользователя по почте или errs.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля. Роль берётся
// из запроса, по умолчанию attendee. Занятые имя пользователя или почта
// возвращаются как ValidationError соответствующего поля.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegisterUser) (int, error) {
	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleAttendee
	}
	if !role.Valid() {
		return 0, errs.NewValidation("role", "unknown role")
	}

	if _, err := s.users.GetUserByUsername(ctx, req.Username); err == nil {
		return 0, errs.NewValidation("username", "already exists")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return 0, err
	}
	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return 0, errs.NewValidation("email", "already registered")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return 0, err
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Organization: req.Organization,
		Bio:          req.Bio,
		Role:         role,
	}
	return s.users.CreateUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT. Неизвестное имя
// и неверный пароль возвращают одну и ту же ошибку, не раскрывая,
// что именно не совпало.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token string, role models.Role, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", "", errs.ErrInvalidCredentials
		}
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", errs.ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, string(user.Role), user.ID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает идентичность пользователя.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	const op = "auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := &models.User{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     models.Role(claims.Role),
	}
	return user, nil
}
