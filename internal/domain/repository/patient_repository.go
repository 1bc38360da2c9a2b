package repository

import (
	"context"

	"clinic-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error)
	FindByIDForShare(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Patient, error)
	FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]entity.Patient, error)
	Search(ctx context.Context, db *gorm.DB, term string, offset, limit int) ([]entity.Patient, error)
	Update(ctx context.Context, db *gorm.DB, patient *entity.Patient, changes map[string]interface{}) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
