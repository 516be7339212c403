package access

import "context"

// Action - действие, на которое запрашивается разрешение
type Action string

const (
	ActionEventCreate Action = "event:create"
	ActionEventUpdate Action = "event:update"
	ActionEventDelete Action = "event:delete"
)

// PermissionChecker - внешний коллаборатор, отвечающий на вопрос
// "может ли пользователь выполнить действие". Таблицы ролей и их
// наполнение живут за пределами этого сервиса.
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID string, action Action) (bool, error)
}
