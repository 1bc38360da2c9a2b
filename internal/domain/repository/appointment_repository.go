package repository

import (
	"context"

	"clinic-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Appointment, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter, offset, limit int) ([]entity.Appointment, error)
	Count(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) (int64, error)
	Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment, changes map[string]interface{}) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
	DeleteByPatientID(ctx context.Context, db *gorm.DB, patientID int64) (int64, error)
}
