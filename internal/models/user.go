// Package models содержит доменные структуры приложения: пользователей,
// события и записи на события, а также вспомогательные типы для приёма
// данных из JSON-запросов до их валидации и преобразования.
package models

import "time"

// Role роль пользователя, закрытое перечисление.
type Role string

const (
	// RoleAttendee участник, роль по умолчанию при регистрации.
	RoleAttendee Role = "attendee"
	// RoleOrganizer организатор, может создавать и управлять своими событиями.
	RoleOrganizer Role = "organizer"
)

// Valid сообщает, входит ли значение в перечисление ролей.
func (r Role) Valid() bool {
	switch r {
	case RoleAttendee, RoleOrganizer:
		return true
	}
	return false
}

// IsOrganizer сообщает, является ли роль организаторской.
func (r Role) IsOrganizer() bool {
	return r == RoleOrganizer
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int       // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // bcrypt-хэш пароля
	FirstName    string    // Имя
	LastName     string    // Фамилия
	Phone        string    // Телефон (опционально, пустая строка — не указан)
	Organization string    // Организация (опционально)
	Bio          string    // О себе (опционально)
	Role         Role      // Роль пользователя: attendee или organizer
	IsActive     bool      // Признак активности учётной записи
	CreatedAt    time.Time // Дата создания
	UpdatedAt    time.Time // Дата последнего изменения
}

// FullName возвращает полное имя пользователя.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// DummyRegisterUser используется для приёма данных регистрации из JSON-запроса
// до их валидации и создания User.
type DummyRegisterUser struct {
	Username        string `json:"username" validate:"required,min=3,max=80"`
	Email           string `json:"email" validate:"required,email,max=120"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"required,max=50"`
	LastName        string `json:"last_name" validate:"required,max=50"`
	Phone           string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Organization    string `json:"organization,omitempty" validate:"omitempty,max=100"`
	Bio             string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Role            string `json:"role,omitempty" validate:"omitempty,oneof=attendee organizer"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// DummyProfile используется для приёма данных редактирования профиля.
// Имя пользователя и пароль через профиль не меняются.
type DummyProfile struct {
	FirstName    string `json:"first_name" validate:"required,max=50"`
	LastName     string `json:"last_name" validate:"required,max=50"`
	Email        string `json:"email" validate:"required,email,max=120"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Organization string `json:"organization,omitempty" validate:"omitempty,max=100"`
	Bio          string `json:"bio,omitempty" validate:"omitempty,max=500"`
}
