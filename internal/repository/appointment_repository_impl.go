package repository

import (
	"context"
	"errors"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	err := db.WithContext(ctx).Omit("Patient").Create(appointment).Error
	return domainRepo.StorageError("create appointment", err)
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).Preload("Patient").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domainRepo.StorageError("find appointment by id", err)
	}
	return &appointment, nil
}

func applyAppointmentFilter(query *gorm.DB, filter *entity.AppointmentFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.From != nil {
		query = query.Where("appointment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("appointment_date <= ?", *filter.To)
	}
	return query
}

// FindAll returns appointments matching filter with their patient attached,
// ordered by id.
func (r *appointmentRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter, offset, limit int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := applyAppointmentFilter(db.WithContext(ctx).Model(&entity.Appointment{}), filter)
	err := query.
		Preload("Patient").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, domainRepo.StorageError("find appointments", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Count(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) (int64, error) {
	var total int64
	query := applyAppointmentFilter(db.WithContext(ctx).Model(&entity.Appointment{}), filter)
	err := query.Count(&total).Error
	return total, domainRepo.StorageError("count appointments", err)
}

func (r *appointmentRepository) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment, changes map[string]interface{}) (int64, error) {
	result := db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", appointment.ID).
		Updates(changes)
	return result.RowsAffected, domainRepo.StorageError("update appointment", result.Error)
}

func (r *appointmentRepository) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, domainRepo.StorageError("delete appointment", result.Error)
}

func (r *appointmentRepository) DeleteByPatientID(ctx context.Context, db *gorm.DB, patientID int64) (int64, error) {
	result := db.WithContext(ctx).Where("patient_id = ?", patientID).Delete(&entity.Appointment{})
	return result.RowsAffected, domainRepo.StorageError("delete patient appointments", result.Error)
}
