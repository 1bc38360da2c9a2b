package repository

import (
	"context"

	"clinic-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error
	FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]entity.AuditLog, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
