package usecase

import (
	"context"

	"clinic-booking/internal/converter"
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditLogUsecase interface {
	GetAuditLogs(ctx context.Context, page dto.PageQuery) (*dto.ListResponse[dto.AuditLogResponse], error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

// GetAuditLogs returns the audit trail, newest entry first.
func (u *auditLogUsecase) GetAuditLogs(ctx context.Context, page dto.PageQuery) (*dto.ListResponse[dto.AuditLogResponse], error) {
	logs, err := u.auditLogRepo.FindAll(ctx, u.db, page.Skip, page.Limit)
	if err != nil {
		u.log.Warnf("Failed to find all audit logs: %+v", err)
		return nil, err
	}

	total, err := u.auditLogRepo.Count(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count audit logs: %+v", err)
		return nil, err
	}

	return dto.NewListResponse(converter.AuditLogsToResponses(logs), total, page.Skip, page.Limit), nil
}
