package testutil

import (
	"testing"
	"time"

	"clinic-booking/internal/domain/entity"

	"gorm.io/gorm"
)

// SeedPatient inserts a patient directly, bypassing validation.
func SeedPatient(t *testing.T, db *gorm.DB, first, last, email string) *entity.Patient {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	p := &entity.Patient{
		FirstName:   first,
		LastName:    last,
		Email:       email,
		Phone:       "5551234567",
		DateOfBirth: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed patient %s: %v", email, err)
	}
	return p
}

// SeedAppointment inserts an appointment directly, bypassing validation.
func SeedAppointment(t *testing.T, db *gorm.DB, patientID int64, at time.Time, status entity.AppointmentStatus) *entity.Appointment {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	a := &entity.Appointment{
		PatientID:       patientID,
		AppointmentDate: at.UTC(),
		Reason:          "Checkup",
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.Omit("Patient").Create(a).Error; err != nil {
		t.Fatalf("seed appointment for patient %d: %v", patientID, err)
	}
	return a
}
