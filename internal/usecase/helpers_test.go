package usecase

import (
	"io"
	"testing"
	"time"

	"clinic-booking/config"
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/repository"
	"clinic-booking/internal/service"
	"clinic-booking/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type fixture struct {
	db           *gorm.DB
	patients     PatientUsecase
	appointments AppointmentUsecase
	stats        StatsUsecase
	auditLogs    AuditLogUsecase
	redis        *miniredis.Miniredis
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newFixture(t *testing.T, totalMode string) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := quietLogger()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cache := service.NewStatsCacheService(client, log, time.Minute)

	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditRepo := repository.NewAuditLogRepository()
	audit := service.NewAuditService(log, auditRepo)

	return &fixture{
		db:           db,
		patients:     NewPatientUsecase(db, log, patientRepo, appointmentRepo, audit, cache),
		appointments: NewAppointmentUsecase(db, log, appointmentRepo, patientRepo, audit, cache, config.ListConfig{PatientAppointmentsTotal: totalMode}),
		stats:        NewStatsUsecase(db, log, patientRepo, appointmentRepo, cache),
		auditLogs:    NewAuditLogUsecase(db, log, auditRepo),
		redis:        mr,
	}
}

func page(skip, limit int) dto.PageQuery {
	return dto.PageQuery{Skip: skip, Limit: limit}
}

func strPtr(s string) *string { return &s }

func patientRequest(first, last, email string) *dto.CreatePatientRequest {
	return &dto.CreatePatientRequest{
		FirstName:   first,
		LastName:    last,
		Email:       email,
		Phone:       "5551234567",
		DateOfBirth: "1990-01-15",
	}
}

func appointmentRequest(patientID int64, at time.Time) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		AppointmentDate: dto.DateTime(at),
		Reason:          "Checkup",
	}
}
