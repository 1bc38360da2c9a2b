package dto

import (
	"time"
)

// Request DTOs

type CreatePatientRequest struct {
	FirstName   string  `json:"first_name" validate:"required,min=1,max=50"`
	LastName    string  `json:"last_name" validate:"required,min=1,max=50"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	Phone       string  `json:"phone" validate:"required,min=10,max=20"`
	DateOfBirth string  `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Address     *string `json:"address" validate:"omitnil,max=500"`
}

// UpdatePatientRequest carries a partial update: nil fields are left untouched.
type UpdatePatientRequest struct {
	FirstName   *string `json:"first_name" validate:"omitnil,min=1,max=50"`
	LastName    *string `json:"last_name" validate:"omitnil,min=1,max=50"`
	Email       *string `json:"email" validate:"omitnil,email,max=255"`
	Phone       *string `json:"phone" validate:"omitnil,min=10,max=20"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitnil,datetime=2006-01-02"`
	Address     *string `json:"address" validate:"omitnil,max=500"`
}

type ListPatientsQuery struct {
	PageQuery
	Search string `query:"search" validate:"max=255"`
}

// Response DTOs

type PatientResponse struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	DateOfBirth string    `json:"date_of_birth"`
	Address     *string   `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
