package entity

import (
	"time"
)

// AppointmentStatus is a flat label; any status may move to any other.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentStatuses lists every persisted status in display order
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
}

// IsValid reports whether s is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment represents a patient visit booked at the clinic
type Appointment struct {
	ID              int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID       int64             `gorm:"not null;index" json:"patient_id"`
	AppointmentDate time.Time         `gorm:"not null;index" json:"appointment_date"`
	Reason          string            `gorm:"type:varchar(1000);not null" json:"reason"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index;check:chk_appointments_status,status IN ('scheduled','completed','cancelled')" json:"status"`
	Notes           *string           `gorm:"type:varchar(2000)" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"not null;autoUpdateTime:false" json:"updated_at"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
