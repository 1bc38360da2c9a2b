package repository

import (
	"context"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	return domainRepo.StorageError("create audit log", db.WithContext(ctx).Create(log).Error)
}

func (r *auditLogRepository) FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := db.WithContext(ctx).Order("id DESC").Offset(offset).Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, domainRepo.StorageError("find audit logs", err)
	}
	return logs, nil
}

func (r *auditLogRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.AuditLog{}).Count(&total).Error
	return total, domainRepo.StorageError("count audit logs", err)
}
