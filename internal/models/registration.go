package models

import "time"

// RegistrationStatus статус записи на событие.
type RegistrationStatus string

const (
	// StatusRegistered действующая запись, единственный статус,
	// участвующий в подсчёте занятых мест.
	StatusRegistered RegistrationStatus = "registered"
	// StatusCancelled отменённая запись.
	StatusCancelled RegistrationStatus = "cancelled"
	// StatusAttended посещённое событие.
	StatusAttended RegistrationStatus = "attended"
)

// Registration связывает пользователя с событием, на которое он записан.
// Пара (UserID, EventID) уникальна, ограничение закреплено в схеме базы.
type Registration struct {
	ID           int                // Уникальный идентификатор записи
	UserID       int                // Идентификатор пользователя
	EventID      int                // Идентификатор события
	RegisteredAt time.Time          // Дата и время записи
	Status       RegistrationStatus // Статус записи
	Notes        string             // Заметки участника (опционально)
}

// AttendeeInfo запись на событие вместе с данными участника,
// используется в списке участников для организатора.
type AttendeeInfo struct {
	RegistrationID int
	UserID         int
	Username       string
	Email          string
	FirstName      string
	LastName       string
	RegisteredAt   time.Time
	Status         RegistrationStatus
	Notes          string
}

// UserRegistrationInfo запись пользователя вместе с данными события,
// используется в личном кабинете.
type UserRegistrationInfo struct {
	RegistrationID int
	EventID        int
	EventTitle     string
	EventType      EventType
	StartTime      time.Time
	EndTime        time.Time
	Location       string
	RegisteredAt   time.Time
	Status         RegistrationStatus
	Notes          string
}

// DummySignup используется для приёма данных записи на событие из JSON-запроса.
type DummySignup struct {
	Notes string `json:"notes,omitempty" validate:"omitempty,max=500"`
}
