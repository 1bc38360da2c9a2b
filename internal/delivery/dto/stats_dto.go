package dto

type StatsResponse struct {
	TotalPatients        int64            `json:"total_patients"`
	TotalAppointments    int64            `json:"total_appointments"`
	AppointmentsByStatus map[string]int64 `json:"appointments_by_status"`
}
