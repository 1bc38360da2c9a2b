package repository

import (
	"context"
	"errors"
	"strings"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return domainRepo.StorageError("create patient", db.WithContext(ctx).Create(patient).Error)
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error) {
	return r.first(ctx, db, "find patient by id", "id = ?", id)
}

// FindByIDForShare reads the patient holding a shared row lock until the
// surrounding transaction ends, so the row cannot be deleted meanwhile.
// Dialects without row locks (sqlite) fall back to a plain read.
func (r *patientRepository) FindByIDForShare(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error) {
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "SHARE"})
	}
	return r.first(ctx, db, "lock patient", "id = ?", id)
}

func (r *patientRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Patient, error) {
	return r.first(ctx, db, "find patient by email", "email = ?", email)
}

func (r *patientRepository) first(ctx context.Context, db *gorm.DB, op string, query string, args ...interface{}) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Where(query, args...).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domainRepo.StorageError(op, err)
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, domainRepo.StorageError("find patients", err)
	}
	return patients, nil
}

// Search matches term case-insensitively as a substring of first name,
// last name or email.
func (r *patientRepository) Search(ctx context.Context, db *gorm.DB, term string, offset, limit int) ([]entity.Patient, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	var patients []entity.Patient
	err := db.WithContext(ctx).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, domainRepo.StorageError("search patients", err)
	}
	return patients, nil
}

// Update writes only the given columns. Returns affected rows: 0 means the
// patient no longer exists.
func (r *patientRepository) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient, changes map[string]interface{}) (int64, error) {
	result := db.WithContext(ctx).
		Model(&entity.Patient{}).
		Where("id = ?", patient.ID).
		Updates(changes)
	return result.RowsAffected, domainRepo.StorageError("update patient", result.Error)
}

func (r *patientRepository) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Patient{})
	return result.RowsAffected, domainRepo.StorageError("delete patient", result.Error)
}

func (r *patientRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.Patient{}).Count(&total).Error
	return total, domainRepo.StorageError("count patients", err)
}
