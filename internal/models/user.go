package models

import (
	"time"

	"gorm.io/gorm"
)

// UserGORM — таблица `users`. Аутентификация и роли живут во внешнем
// сервисе; здесь хранится только то, что нужно для ссылочной целостности.
type UserGORM struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	UserID    string `gorm:"uniqueIndex;size:36" json:"user_id"`
	Name      string `gorm:"size:255" json:"name"`
	Email     string `gorm:"uniqueIndex;size:255" json:"email"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserGORM) TableName() string { return "users" }

// UserPermissionGORM — таблица `user_permissions`: развёрнутые решения
// "пользователь может действие", наполняется внешним сервисом ролей.
type UserPermissionGORM struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	UserID    string `gorm:"size:36;not null;uniqueIndex:idx_user_action" json:"user_id"`
	Action    string `gorm:"size:64;not null;uniqueIndex:idx_user_action" json:"action"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserPermissionGORM) TableName() string { return "user_permissions" }
