package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"clinic-booking/internal/converter"
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/domain/repository"
	"clinic-booking/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error)
	GetPatientByEmail(ctx context.Context, email string) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context, page dto.PageQuery) (*dto.ListResponse[dto.PatientResponse], error)
	SearchPatients(ctx context.Context, term string, page dto.PageQuery) (*dto.ListResponse[dto.PatientResponse], error)
	UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, id int64) error
	CountPatients(ctx context.Context) (int64, error)
}

type patientUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
	statsCache      *service.StatsCacheService
	clock           clock
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	statsCache *service.StatsCacheService,
) PatientUsecase {
	return &patientUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		statsCache:      statsCache,
		clock:           systemClock,
	}
}

// CreatePatient registers a new patient. The email must not belong to any
// existing patient.
func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dateOfBirth, err := time.Parse(converter.DateLayout, req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.patientRepo.FindByEmail(ctx, tx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to check patient email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	now := u.clock()
	patient := &entity.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: dateOfBirth,
		Address:     req.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyRegistered
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	response := converter.PatientToResponse(patient)
	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionPatientCreate, "patient", strconv.FormatInt(patient.ID, 10), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, repository.StorageError("commit patient create", err)
	}

	u.statsCache.Invalidate(ctx)
	u.log.Infof("Patient created: id=%d", patient.ID)
	return response, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

// GetPatientByEmail looks a patient up by exact email.
func (u *patientUsecase) GetPatientByEmail(ctx context.Context, email string) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByEmail(ctx, u.db, email)
	if err != nil {
		u.log.Warnf("Failed to find patient by email: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context, page dto.PageQuery) (*dto.ListResponse[dto.PatientResponse], error) {
	patients, err := u.patientRepo.FindAll(ctx, u.db, page.Skip, page.Limit)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	return u.listResponse(ctx, patients, page)
}

// SearchPatients matches term against first name, last name and email,
// ignoring case. Total still counts every patient.
func (u *patientUsecase) SearchPatients(ctx context.Context, term string, page dto.PageQuery) (*dto.ListResponse[dto.PatientResponse], error) {
	patients, err := u.patientRepo.Search(ctx, u.db, term, page.Skip, page.Limit)
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, err
	}

	return u.listResponse(ctx, patients, page)
}

func (u *patientUsecase) listResponse(ctx context.Context, patients []entity.Patient, page dto.PageQuery) (*dto.ListResponse[dto.PatientResponse], error) {
	total, err := u.patientRepo.Count(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	return dto.NewListResponse(converter.PatientsToResponses(patients), total, page.Skip, page.Limit), nil
}

// UpdatePatient applies the supplied fields only. Changing the email to one
// held by another patient fails with ErrEmailAlreadyRegistered.
func (u *patientUsecase) UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	oldValue := converter.PatientToResponse(patient)
	changes := map[string]interface{}{}

	if req.Email != nil && *req.Email != patient.Email {
		holder, err := u.patientRepo.FindByEmail(ctx, tx, *req.Email)
		if err != nil {
			u.log.Warnf("Failed to check patient email: %+v", err)
			return nil, err
		}
		if holder != nil && holder.ID != patient.ID {
			return nil, ErrEmailAlreadyRegistered
		}
	}

	if req.FirstName != nil {
		patient.FirstName = *req.FirstName
		changes["first_name"] = patient.FirstName
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
		changes["last_name"] = patient.LastName
	}
	if req.Email != nil {
		patient.Email = *req.Email
		changes["email"] = patient.Email
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
		changes["phone"] = patient.Phone
	}
	if req.DateOfBirth != nil {
		dateOfBirth, err := time.Parse(converter.DateLayout, *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDate
		}
		patient.DateOfBirth = dateOfBirth
		changes["date_of_birth"] = patient.DateOfBirth
	}
	if req.Address != nil {
		patient.Address = req.Address
		changes["address"] = *patient.Address
	}

	patient.UpdatedAt = u.clock.nextTimestamp(patient.UpdatedAt)
	changes["updated_at"] = patient.UpdatedAt

	affected, err := u.patientRepo.Update(ctx, tx, patient, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyRegistered
		}
		u.log.Warnf("Failed to update patient %d: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrPatientNotFound
	}

	newValue := converter.PatientToResponse(patient)
	if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionPatientUpdate, "patient", strconv.FormatInt(id, 10), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, repository.StorageError("commit patient update", err)
	}

	return newValue, nil
}

// DeletePatient removes the patient together with all of its appointments.
func (u *patientUsecase) DeletePatient(ctx context.Context, id int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", id, err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	removed, err := u.appointmentRepo.DeleteByPatientID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointments of patient %d: %+v", id, err)
		return err
	}

	affected, err := u.patientRepo.Delete(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete patient %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrPatientNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, entity.AuditActionPatientDelete, "patient", strconv.FormatInt(id, 10), converter.PatientToResponse(patient)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return repository.StorageError("commit patient delete", err)
	}

	u.statsCache.Invalidate(ctx)
	u.log.Infof("Patient deleted: id=%d, appointments_removed=%d", id, removed)
	return nil
}

func (u *patientUsecase) CountPatients(ctx context.Context) (int64, error) {
	total, err := u.patientRepo.Count(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return 0, err
	}
	return total, nil
}
