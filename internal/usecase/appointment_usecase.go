package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"clinic-booking/config"
	"clinic-booking/internal/converter"
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/domain/repository"
	"clinic-booking/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id int64) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.ListResponse[dto.AppointmentResponse], error)
	ListByPatient(ctx context.Context, patientID int64, page dto.PageQuery) ([]dto.AppointmentResponse, error)
	ListByDate(ctx context.Context, date time.Time, page dto.PageQuery) ([]dto.AppointmentResponse, error)
	ListByStatus(ctx context.Context, status entity.AppointmentStatus, page dto.PageQuery) ([]dto.AppointmentResponse, error)
	ListPatientAppointments(ctx context.Context, patientID int64, page dto.PageQuery) (*dto.ListResponse[dto.AppointmentResponse], error)
	UpdateAppointment(ctx context.Context, id int64, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id int64) error
	CountAppointments(ctx context.Context) (int64, error)
	CountAppointmentsByStatus(ctx context.Context, status entity.AppointmentStatus) (int64, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	auditService    service.AuditService
	statsCache      *service.StatsCacheService
	listConfig      config.ListConfig
	clock           clock
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	statsCache *service.StatsCacheService,
	listConfig config.ListConfig,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
		statsCache:      statsCache,
		listConfig:      listConfig,
		clock:           systemClock,
	}
}

// CreateAppointment books an appointment for an existing patient.
//
// The patient row is read under a shared lock inside the same transaction as
// the insert, so the patient cannot be deleted between the check and the
// write. A foreign key violation from the store is treated the same way as a
// missing patient.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	status := entity.AppointmentStatusScheduled
	if req.Status != nil {
		status = entity.AppointmentStatus(*req.Status)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByIDForShare(ctx, tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	now := u.clock()
	appointment := &entity.Appointment{
		PatientID:       req.PatientID,
		AppointmentDate: req.AppointmentDate.Time().UTC().Truncate(time.Microsecond),
		Reason:          req.Reason,
		Status:          status,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}
	appointment.Patient = patient

	response := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionAppointmentCreate, "appointment", strconv.FormatInt(appointment.ID, 10), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, repository.StorageError("commit appointment create", err)
	}

	u.statsCache.Invalidate(ctx)
	u.log.Infof("Appointment created: id=%d, patient=%d, status=%s", appointment.ID, appointment.PatientID, appointment.Status)
	return response, nil
}

// GetAppointment returns the appointment with its patient attached.
func (u *appointmentUsecase) GetAppointment(ctx context.Context, id int64) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

// ListAppointments applies at most one filter, picked in the order
// patient_id, status, date. Total is the count of all appointments.
func (u *appointmentUsecase) ListAppointments(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.ListResponse[dto.AppointmentResponse], error) {
	var (
		items []dto.AppointmentResponse
		err   error
	)

	switch {
	case query.PatientID != nil:
		items, err = u.ListByPatient(ctx, *query.PatientID, query.PageQuery)
	case query.Status != "":
		items, err = u.ListByStatus(ctx, entity.AppointmentStatus(query.Status), query.PageQuery)
	case query.Date != "":
		date, parseErr := time.Parse(converter.DateLayout, query.Date)
		if parseErr != nil {
			return nil, ErrInvalidDate
		}
		items, err = u.ListByDate(ctx, date, query.PageQuery)
	default:
		items, err = u.find(ctx, nil, query.PageQuery)
	}
	if err != nil {
		return nil, err
	}

	total, err := u.CountAppointments(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewListResponse(items, total, query.Skip, query.Limit), nil
}

func (u *appointmentUsecase) ListByPatient(ctx context.Context, patientID int64, page dto.PageQuery) ([]dto.AppointmentResponse, error) {
	return u.find(ctx, &entity.AppointmentFilter{PatientID: &patientID}, page)
}

// ListByDate returns appointments falling anywhere on the calendar day of
// date (UTC), both ends inclusive.
func (u *appointmentUsecase) ListByDate(ctx context.Context, date time.Time, page dto.PageQuery) ([]dto.AppointmentResponse, error) {
	from, to := dayBounds(date)
	return u.find(ctx, &entity.AppointmentFilter{From: &from, To: &to}, page)
}

func (u *appointmentUsecase) ListByStatus(ctx context.Context, status entity.AppointmentStatus, page dto.PageQuery) ([]dto.AppointmentResponse, error) {
	return u.find(ctx, &entity.AppointmentFilter{Status: &status}, page)
}

func (u *appointmentUsecase) find(ctx context.Context, filter *entity.AppointmentFilter, page dto.PageQuery) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx, u.db, filter, page.Skip, page.Limit)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

// ListPatientAppointments lists one patient's appointments. Total is either
// the page size or the patient's appointment count, depending on
// config.ListConfig.PatientAppointmentsTotal.
func (u *appointmentUsecase) ListPatientAppointments(ctx context.Context, patientID int64, page dto.PageQuery) (*dto.ListResponse[dto.AppointmentResponse], error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	items, err := u.ListByPatient(ctx, patientID, page)
	if err != nil {
		return nil, err
	}

	total := int64(len(items))
	if u.listConfig.PatientAppointmentsTotal == config.PatientAppointmentsTotalPatient {
		total, err = u.appointmentRepo.Count(ctx, u.db, &entity.AppointmentFilter{PatientID: &patientID})
		if err != nil {
			u.log.Warnf("Failed to count appointments of patient %d: %+v", patientID, err)
			return nil, err
		}
	}

	return dto.NewListResponse(items, total, page.Skip, page.Limit), nil
}

// UpdateAppointment applies the supplied fields only. Any status may be set
// from any other.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id int64, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	oldValue := converter.AppointmentToResponse(appointment)
	changes := map[string]interface{}{}

	if req.PatientID != nil && *req.PatientID != appointment.PatientID {
		patient, err := u.patientRepo.FindByIDForShare(ctx, tx, *req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient %d: %+v", *req.PatientID, err)
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		appointment.PatientID = patient.ID
		appointment.Patient = patient
		changes["patient_id"] = patient.ID
	}
	if req.AppointmentDate != nil {
		appointment.AppointmentDate = req.AppointmentDate.Time().UTC().Truncate(time.Microsecond)
		changes["appointment_date"] = appointment.AppointmentDate
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
		changes["reason"] = appointment.Reason
	}
	if req.Status != nil {
		appointment.Status = entity.AppointmentStatus(*req.Status)
		changes["status"] = string(appointment.Status)
	}
	if req.Notes != nil {
		appointment.Notes = req.Notes
		changes["notes"] = *appointment.Notes
	}

	appointment.UpdatedAt = u.clock.nextTimestamp(appointment.UpdatedAt)
	changes["updated_at"] = appointment.UpdatedAt

	affected, err := u.appointmentRepo.Update(ctx, tx, appointment, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to update appointment %d: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAppointmentNotFound
	}

	newValue := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionAppointmentUpdate, "appointment", strconv.FormatInt(id, 10), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, repository.StorageError("commit appointment update", err)
	}

	u.statsCache.Invalidate(ctx)
	return newValue, nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	affected, err := u.appointmentRepo.Delete(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, entity.AuditActionAppointmentDelete, "appointment", strconv.FormatInt(id, 10), converter.AppointmentToResponse(appointment)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return repository.StorageError("commit appointment delete", err)
	}

	u.statsCache.Invalidate(ctx)
	u.log.Infof("Appointment deleted: id=%d", id)
	return nil
}

func (u *appointmentUsecase) CountAppointments(ctx context.Context) (int64, error) {
	total, err := u.appointmentRepo.Count(ctx, u.db, nil)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return 0, err
	}
	return total, nil
}

func (u *appointmentUsecase) CountAppointmentsByStatus(ctx context.Context, status entity.AppointmentStatus) (int64, error) {
	total, err := u.appointmentRepo.Count(ctx, u.db, &entity.AppointmentFilter{Status: &status})
	if err != nil {
		u.log.Warnf("Failed to count %s appointments: %+v", status, err)
		return 0, err
	}
	return total, nil
}

// dayBounds returns the first and last representable instant (microsecond
// precision) of the UTC calendar day containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.Add(24*time.Hour - time.Microsecond)
}
