// Package authz содержит чистые функции политики доступа. Решения выводятся
// только из переданных идентичности и ресурса, без обращения к хранилищу
// и без глобального состояния — сервисы передают действующего пользователя
// явными параметрами.
package authz

import "github.com/magabrotheeeer/event-hub/internal/models"

// CanViewProfile сообщает, может ли пользователь actorID с ролью actorRole
// просматривать профиль targetID: свой профиль доступен всегда,
// чужие — только организаторам, и только на чтение.
func CanViewProfile(actorID int, actorRole models.Role, targetID int) bool {
	if actorID == targetID {
		return true
	}
	return actorRole.IsOrganizer()
}

// CanEditProfile сообщает, может ли пользователь actorID редактировать
// профиль targetID. Редактировать можно только собственный профиль.
func CanEditProfile(actorID, targetID int) bool {
	return actorID == targetID
}

// CanCreateEvent сообщает, может ли пользователь с данной ролью
// создавать события.
func CanCreateEvent(role models.Role) bool {
	switch role {
	case models.RoleOrganizer:
		return true
	case models.RoleAttendee:
		return false
	}
	return false
}

// CanManageEvent сообщает, может ли пользователь actorID изменять, удалять
// событие или просматривать список его участников. Право даёт только
// владение событием, роль организатора сама по себе недостаточна.
func CanManageEvent(actorID int, event *models.Event) bool {
	return event != nil && actorID == event.OrganizerID
}
