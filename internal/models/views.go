package models

import "time"

// EventView представление события для JSON-ответов. Производные свойства
// считаются в момент формирования ответа от актуального числа записей.
type EventView struct {
	ID                   int        `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	StartTime            time.Time  `json:"start_time"`
	EndTime              time.Time  `json:"end_time"`
	Location             string     `json:"location"`
	VenueDetails         string     `json:"venue_details,omitempty"`
	MaxAttendees         *int       `json:"max_attendees,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	EventType            EventType  `json:"event_type"`
	IsActive             bool       `json:"is_active"`
	OrganizerID          int        `json:"organizer_id"`
	CreatedAt            time.Time  `json:"created_at"`
	RegisteredCount      int        `json:"registered_count"`
	AvailableSpots       *int       `json:"available_spots,omitempty"`
	IsFull               bool       `json:"is_full"`
	RegistrationOpen     bool       `json:"registration_open"`
}

// NewEventView собирает EventView из события на момент now.
func NewEventView(e *Event, now time.Time) EventView {
	return EventView{
		ID:                   e.ID,
		Title:                e.Title,
		Description:          e.Description,
		StartTime:            e.StartTime,
		EndTime:              e.EndTime,
		Location:             e.Location,
		VenueDetails:         e.VenueDetails,
		MaxAttendees:         e.MaxAttendees,
		RegistrationDeadline: e.RegistrationDeadline,
		EventType:            e.Type,
		IsActive:             e.IsActive,
		OrganizerID:          e.OrganizerID,
		CreatedAt:            e.CreatedAt,
		RegisteredCount:      e.RegisteredCount,
		AvailableSpots:       e.AvailableSpots(),
		IsFull:               e.IsFull(),
		RegistrationOpen:     e.RegistrationOpen(now),
	}
}

// NewEventViews собирает представления для списка событий.
func NewEventViews(events []*Event, now time.Time) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, NewEventView(e, now))
	}
	return views
}

// UserView представление профиля пользователя для JSON-ответов,
// без хэша пароля.
type UserView struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUserView собирает UserView из пользователя.
func NewUserView(u *User) UserView {
	return UserView{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		FullName:     u.FullName(),
		Phone:        u.Phone,
		Organization: u.Organization,
		Bio:          u.Bio,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

// AttendeeView представление записи с данными участника для организатора.
type AttendeeView struct {
	RegistrationID int                `json:"registration_id"`
	UserID         int                `json:"user_id"`
	Username       string             `json:"username"`
	Email          string             `json:"email"`
	FullName       string             `json:"full_name"`
	RegisteredAt   time.Time          `json:"registered_at"`
	Status         RegistrationStatus `json:"status"`
	Notes          string             `json:"notes,omitempty"`
}

// NewAttendeeViews собирает представления списка участников события.
func NewAttendeeViews(attendees []*AttendeeInfo) []AttendeeView {
	views := make([]AttendeeView, 0, len(attendees))
	for _, a := range attendees {
		views = append(views, AttendeeView{
			RegistrationID: a.RegistrationID,
			UserID:         a.UserID,
			Username:       a.Username,
			Email:          a.Email,
			FullName:       a.FirstName + " " + a.LastName,
			RegisteredAt:   a.RegisteredAt,
			Status:         a.Status,
			Notes:          a.Notes,
		})
	}
	return views
}

// RegistrationView представление записи с данными события
// для личного кабинета пользователя.
type RegistrationView struct {
	RegistrationID int                `json:"registration_id"`
	EventID        int                `json:"event_id"`
	EventTitle     string             `json:"event_title"`
	EventType      EventType          `json:"event_type"`
	StartTime      time.Time          `json:"start_time"`
	EndTime        time.Time          `json:"end_time"`
	Location       string             `json:"location"`
	RegisteredAt   time.Time          `json:"registered_at"`
	Status         RegistrationStatus `json:"status"`
	Notes          string             `json:"notes,omitempty"`
}

// NewRegistrationViews собирает представления записей пользователя.
func NewRegistrationViews(regs []*UserRegistrationInfo) []RegistrationView {
	views := make([]RegistrationView, 0, len(regs))
	for _, reg := range regs {
		views = append(views, RegistrationView{
			RegistrationID: reg.RegistrationID,
			EventID:        reg.EventID,
			EventTitle:     reg.EventTitle,
			EventType:      reg.EventType,
			StartTime:      reg.StartTime,
			EndTime:        reg.EndTime,
			Location:       reg.Location,
			RegisteredAt:   reg.RegisteredAt,
			Status:         reg.Status,
			Notes:          reg.Notes,
		})
	}
	return views
}
