package dto

import (
	"time"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       int64    `json:"patient_id" validate:"required,min=1"`
	AppointmentDate DateTime `json:"appointment_date" validate:"required"`
	Reason          string   `json:"reason" validate:"required,min=1,max=1000"`
	Status          *string  `json:"status" validate:"omitnil,oneof=scheduled completed cancelled"`
	Notes           *string  `json:"notes" validate:"omitnil,max=2000"`
}

// UpdateAppointmentRequest carries a partial update: nil fields are left untouched.
type UpdateAppointmentRequest struct {
	PatientID       *int64    `json:"patient_id" validate:"omitnil,min=1"`
	AppointmentDate *DateTime `json:"appointment_date"`
	Reason          *string   `json:"reason" validate:"omitnil,min=1,max=1000"`
	Status          *string   `json:"status" validate:"omitnil,oneof=scheduled completed cancelled"`
	Notes           *string   `json:"notes" validate:"omitnil,max=2000"`
}

// ListAppointmentsQuery filters are mutually exclusive; the first one set
// in the order patient_id, status, date wins.
type ListAppointmentsQuery struct {
	PageQuery
	PatientID *int64 `query:"patient_id" validate:"omitnil,min=1"`
	Status    string `query:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Date      string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              int64            `json:"id"`
	PatientID       int64            `json:"patient_id"`
	AppointmentDate time.Time        `json:"appointment_date"`
	Reason          string           `json:"reason"`
	Status          string           `json:"status"`
	Notes           *string          `json:"notes"`
	Patient         *PatientResponse `json:"patient,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
