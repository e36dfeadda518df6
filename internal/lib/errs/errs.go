// Package errs определяет доменные ошибки приложения. Хранилище и сервисы
// возвращают эти ошибки, HTTP-обработчики транслируют их в коды ответов:
// ErrNotFound — 404, ErrForbidden — 403, ErrInvalidCredentials — 401,
// ValidationError — 422. ErrAlreadyRegistered, ErrNotRegistered и
// ErrRegistrationClosed — ожидаемые пользовательские исходы, а не сбои,
// обработчики отдают их как информационные сообщения.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound запрошенная сущность отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrForbidden у пользователя нет прав на операцию.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials неверное имя пользователя или пароль,
	// без уточнения, что именно не совпало.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAlreadyRegistered пользователь уже записан на событие.
	ErrAlreadyRegistered = errors.New("already registered for this event")
	// ErrNotRegistered пользователь не записан на событие.
	ErrNotRegistered = errors.New("not registered for this event")
	// ErrRegistrationClosed запись на событие закрыта: событие неактивно,
	// заполнено или крайний срок записи прошёл.
	ErrRegistrationClosed = errors.New("registration is not available for this event")
)

// ValidationError нарушение бизнес-правила на уровне конкретного поля.
type ValidationError struct {
	Field string // Имя поля в snake_case, как в JSON-запросе
	Msg   string // Человекочитаемое описание нарушения
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Msg)
}

// NewValidation создаёт ValidationError для поля field с сообщением msg.
func NewValidation(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// AsValidation возвращает ValidationError, если err является таковой.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
