package models

import "time"

// EventType тип события, закрытое перечисление.
type EventType string

const (
	// TypeConference конференция.
	TypeConference EventType = "conference"
	// TypeNetworking нетворкинг-встреча.
	TypeNetworking EventType = "networking"
	// TypeWorkshop воркшоп.
	TypeWorkshop EventType = "workshop"
	// TypeSeminar семинар.
	TypeSeminar EventType = "seminar"
	// TypeMeeting встреча.
	TypeMeeting EventType = "meeting"
	// TypeOther прочее.
	TypeOther EventType = "other"
)

// Valid сообщает, входит ли значение в перечисление типов событий.
func (t EventType) Valid() bool {
	switch t {
	case TypeConference, TypeNetworking, TypeWorkshop, TypeSeminar, TypeMeeting, TypeOther:
		return true
	}
	return false
}

// Event представляет событие, на которое пользователи могут записываться.
// Поле RegisteredCount заполняется при чтении из хранилища актуальным
// количеством активных записей, производные свойства считаются от него
// и никогда не хранятся в базе.
type Event struct {
	ID                   int        // Уникальный идентификатор события
	Title                string     // Название
	Description          string     // Описание (опционально)
	StartTime            time.Time  // Дата и время начала
	EndTime              time.Time  // Дата и время окончания, строго позже начала
	Location             string     // Место проведения
	VenueDetails         string     // Детали площадки (опционально)
	MaxAttendees         *int       // Вместимость, nil — без ограничения
	RegistrationDeadline *time.Time // Крайний срок записи, nil — до начала события
	Type                 EventType  // Тип события
	IsActive             bool       // Признак активности события
	OrganizerID          int        // Идентификатор организатора-владельца
	CreatedAt            time.Time  // Дата создания
	UpdatedAt            time.Time  // Дата последнего изменения
	RegisteredCount      int        // Количество активных записей на момент чтения
}

// AvailableSpots возвращает количество свободных мест,
// nil — если вместимость не ограничена.
func (e *Event) AvailableSpots() *int {
	if e.MaxAttendees == nil {
		return nil
	}
	spots := *e.MaxAttendees - e.RegisteredCount
	return &spots
}

// IsFull сообщает, заполнено ли событие.
func (e *Event) IsFull() bool {
	if e.MaxAttendees == nil {
		return false
	}
	return e.RegisteredCount >= *e.MaxAttendees
}

// RegistrationOpen сообщает, открыта ли запись на событие в момент now:
// событие активно, не заполнено и крайний срок записи не прошёл.
func (e *Event) RegistrationOpen(now time.Time) bool {
	if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) {
		return false
	}
	return e.IsActive && !e.IsFull()
}

// EventFilter параметры фильтрации списка событий,
// передаются в слой доступа к данным.
type EventFilter struct {
	Search string    // Подстрока для поиска по названию или описанию, "" — без поиска
	Type   EventType // Тип события, "" — без фильтра по типу
}

// DummyEvent используется для приёма данных события из JSON-запроса
// до их валидации и преобразования в Event. Даты приходят строками
// в формате 2006-01-02T15:04.
type DummyEvent struct {
	Title                string `json:"title" validate:"required,min=5,max=200"`
	Description          string `json:"description,omitempty" validate:"omitempty,max=1000"`
	StartTime            string `json:"start_time" validate:"required"`
	EndTime              string `json:"end_time" validate:"required"`
	Location             string `json:"location" validate:"required,min=5,max=200"`
	VenueDetails         string `json:"venue_details,omitempty" validate:"omitempty,max=500"`
	MaxAttendees         *int   `json:"max_attendees,omitempty" validate:"omitempty,gte=1,lte=10000"`
	RegistrationDeadline string `json:"registration_deadline,omitempty"`
	EventType            string `json:"event_type" validate:"required,oneof=conference networking workshop seminar meeting other"`
	IsActive             *bool  `json:"is_active,omitempty"`
}
