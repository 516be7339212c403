package postgres

import (
	"context"

	"clubhub/internal/domain/access"
	"clubhub/internal/models"

	"gorm.io/gorm"
)

type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository читает развёрнутые решения из user_permissions.
// Сами роли и их раскладка по действиям наполняются внешним сервисом.
func NewPermissionRepository(db *gorm.DB) access.PermissionChecker {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) HasPermission(ctx context.Context, userID string, action access.Action) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserPermissionGORM{}).
		Where("user_id = ? AND action = ?", userID, string(action)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
