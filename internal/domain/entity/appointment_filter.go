package entity

import "time"

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
// Nil fields do not filter.
type AppointmentFilter struct {
	PatientID *int64
	Status    *AppointmentStatus
	From      *time.Time // inclusive
	To        *time.Time // inclusive
}
