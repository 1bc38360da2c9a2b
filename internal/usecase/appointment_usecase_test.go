package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-booking/config"
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAppointmentForUnknownPatient(t *testing.T) {
	f := newFixture(t, config.PatientAppointmentsTotalPage)
	ctx := context.Background()

	_, err := f.appointments.CreateAppointment(ctx, appointmentRequest(999, time.Now()))
	assert.ErrorIs(t, err, ErrPatientNotFound)

	total, err := f.appointments.CountAppointments(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateAppointmentDefaultsToScheduled(t *testing.T) {
	f := newFixture(t, config.PatientAppointmentsTotalPage)
	ctx := context.Background()

	p, err := f.patients.CreatePatient(ctx, patientRequest("Ann", "Lee", "a@x.com"))
	require.NoError(t, err)

	at := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	created, err := f.appointments.CreateAppointment(ctx, appointmentRequest(p.ID, at))
	require.NoError(t, err)
	assert.Equal(t, "scheduled", created.Status)
	require.NotNil(t, created.Patient)
	assert.Equal(t, "a@x.com", created.Patient.Email)

	fetched, err := f.appointments.GetAppointment(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, fetched.AppointmentDate.Equal(at))
	assert.Equal(t, p.ID, fetched.PatientID)
	require.NotNil(t, fetched.Patient)
	assert.Equal(t, "Ann", fetched.Patient.FirstName)
}

func TestCreateAppointmentWithExplicitStatus(t *testing.T) {
	f := newFixture(t, config.PatientAppointmentsTotalPage)
	ctx := context.Background()

	p, err := f.patients.CreatePatient(ctx, patientRequest("Ann", "Lee", "a@x.com"))
	require.NoError(t, err)

	req := appointmentRequest(p.ID, time.Now())
	req.Status = strPtr("cancelled")
	req.Notes = strPtr("called in sick")
	created, err := f.appointments.CreateAppointment(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", created.Status)
	require.NotNil(t, created.Notes)
	assert.Equal(t, "called in sick", *created.Notes)
}

func TestGetAppointmentMissing(t *testing.T) {
	f := newFixture(t, config.PatientAppointmentsTotalPage)

	_, err := f.appointments.GetAppointment(context.Background(), 7)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateAppointmentAllowsAnyStatusChange(t *testing.T) {
	f := newFixture(t, config.PatientAppointmentsTotalPage)
	ctx := context.Background()

	p, err := f.patients.CreatePatient(ctx, patientRequest("Ann", "Lee", "a@x.com"))
	require.NoError(t, err)
	created, err := f.appointments.CreateAppointment(ctx, appointmentRequest(p.ID, time.Now()))
	require.NoError(t, err)

	last := created
	for _, status := range []string{"completed", "scheduled", "cancelled", "completed"} {
		updated, err := f.appointments.UpdateAppointment(ctx, created.ID, &dto.UpdateAppointmentRequest{Status: strPtr(status)})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
		assert.Equal(t, "Checkup", updated.Reason)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(last.UpdatedAt))
		last = updated
	}
}

func TestUpdateAppointmentMovesToAnotherPatient(t *testing.T) {
	f := newFixture(t, config.PatientAppointmentsTotalPage)
	ctx := context.Background()

	ann, err := f.patients.CreatePatient(ctx, patientRequest("Ann", "Lee", "a@x.com"))
	require.NoError(t, err)
	bob, err := f.patients.CreatePatient(ctx, patientRequest("Bob", "Ray", "b@x.com"))
	require.NoError(t, err)
	created, err := f.appointments.CreateAppointment(ctx, appointmentRequest(ann.ID, time.Now()))
	require.NoError(t, err)

	missing := int64(404)
	_, err = f.appointments.UpdateAppointment(ctx, created.ID, &dto.UpdateAppointmentRequest{PatientID: &missing})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	updated, err := f.appointments.UpdateAppointment(ctx, created.ID, &dto.UpdateAppointmentRequest{PatientID: &bob.ID})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, updated.PatientID)
	require.NotNil(t, updated.Patient)
	assert.Equal(t, "b@x.com", updated.Patient.Email)
}

func TestUpdateAndDeleteAppointmentMissing(t *testing.T) {
	f := newFixture(t, config.PatientAppointmentsTotalPage)
	ctx := context.Background()

	_, err := f.appointments.UpdateAppointment(ctx, 5, &dto.UpdateAppointmentRequest{Reason: strPtr("x")})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, f.appointments.DeleteAppointment(ctx, 5), ErrAppointmentNotFound)
}

func TestDeleteAppointment(t *testing.T) {
	f := newFixture(t, config.PatientAppointmentsTotalPage)
	ctx := context.Background()

	p, err := f.patients.CreatePatient(ctx, patientRequest("Ann", "Lee", "a@x.com"))
	require.NoError(t, err)
	created, err := f.appointments.CreateAppointment(ctx, appointmentRequest(p.ID, time.Now()))
	require.NoError(t, err)

	require.NoError(t, f.appointments.DeleteAppointment(ctx, created.ID))

	_, err = f.appointments.GetAppointment(ctx, created.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = f.patients.GetPatient(ctx, p.ID)
	assert.NoError(t, err)
}

func TestListByDateCoversWholeDay(t *testing.T) {
	f := newFixture(t, config.PatientAppointmentsTotalPage)
	ctx := context.Background()

	p := testutil.SeedPatient(t, f.db, "Ann", "Lee", "a@x.com")
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	early := testutil.SeedAppointment(t, f.db, p.ID, day, entity.AppointmentStatusScheduled)
	late := testutil.SeedAppointment(t, f.db, p.ID, day.Add(23*time.Hour+59*time.Minute), entity.AppointmentStatusScheduled)
	testutil.SeedAppointment(t, f.db, p.ID, day.Add(24*time.Hour+time.Second), entity.AppointmentStatusScheduled)
	testutil.SeedAppointment(t, f.db, p.ID, day.Add(-time.Second), entity.AppointmentStatusScheduled)

	items, err := f.appointments.ListByDate(ctx, day.Add(15*time.Hour), page(0, 100))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, early.ID, items[0].ID)
	assert.Equal(t, late.ID, items[1].ID)
}

func TestListAppointmentsFilterPrecedence(t *testing.T) {
	f := newFixture(t, config.PatientAppointmentsTotalPage)
	ctx := context.Background()

	ann := testutil.SeedPatient(t, f.db, "Ann", "Lee", "a@x.com")
	bob := testutil.SeedPatient(t, f.db, "Bob", "Ray", "b@x.com")
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	testutil.SeedAppointment(t, f.db, ann.ID, day, entity.AppointmentStatusScheduled)
	testutil.SeedAppointment(t, f.db, ann.ID, day.AddDate(0, 0, 1), entity.AppointmentStatusCompleted)
	testutil.SeedAppointment(t, f.db, bob.ID, day, entity.AppointmentStatusCompleted)

	// patient_id wins over status and date
	byPatient, err := f.appointments.ListAppointments(ctx, &dto.ListAppointmentsQuery{
		PageQuery: page(0, 100),
		PatientID: &ann.ID,
		Status:    "cancelled",
		Date:      "2030-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, byPatient.Size)
	assert.EqualValues(t, 3, byPatient.Total)

	// status wins over date
	byStatus, err := f.appointments.ListAppointments(ctx, &dto.ListAppointmentsQuery{
		PageQuery: page(0, 100),
		Status:    "completed",
		Date:      "2030-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, byStatus.Size)

	byDate, err := f.appointments.ListAppointments(ctx, &dto.ListAppointmentsQuery{
		PageQuery: page(0, 100),
		Date:      "2025-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, byDate.Size)

	all, err := f.appointments.ListAppointments(ctx, &dto.ListAppointmentsQuery{PageQuery: page(1, 100)})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Size)
	assert.EqualValues(t, 3, all.Total)

	_, err = f.appointments.ListAppointments(ctx, &dto.ListAppointmentsQuery{PageQuery: page(0, 100), Date: "2025-13-40"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestListByStatusAndCounts(t *testing.T) {
	f := newFixture(t, config.PatientAppointmentsTotalPage)
	ctx := context.Background()

	p := testutil.SeedPatient(t, f.db, "Ann", "Lee", "a@x.com")
	now := time.Now()
	testutil.SeedAppointment(t, f.db, p.ID, now, entity.AppointmentStatusScheduled)
	testutil.SeedAppointment(t, f.db, p.ID, now, entity.AppointmentStatusCancelled)
	testutil.SeedAppointment(t, f.db, p.ID, now, entity.AppointmentStatusCancelled)

	cancelled, err := f.appointments.ListByStatus(ctx, entity.AppointmentStatusCancelled, page(0, 100))
	require.NoError(t, err)
	assert.Len(t, cancelled, 2)

	n, err := f.appointments.CountAppointmentsByStatus(ctx, entity.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = f.appointments.CountAppointmentsByStatus(ctx, entity.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListPatientAppointmentsTotalModes(t *testing.T) {
	cases := []struct {
		mode  string
		total int64
	}{
		{config.PatientAppointmentsTotalPage, 2},
		{config.PatientAppointmentsTotalPatient, 3},
	}

	for _, tc := range cases {
		t.Run(tc.mode, func(t *testing.T) {
			f := newFixture(t, tc.mode)
			ctx := context.Background()

			ann := testutil.SeedPatient(t, f.db, "Ann", "Lee", "a@x.com")
			bob := testutil.SeedPatient(t, f.db, "Bob", "Ray", "b@x.com")
			for i := 0; i < 3; i++ {
				testutil.SeedAppointment(t, f.db, ann.ID, time.Now(), entity.AppointmentStatusScheduled)
			}
			testutil.SeedAppointment(t, f.db, bob.ID, time.Now(), entity.AppointmentStatusScheduled)

			result, err := f.appointments.ListPatientAppointments(ctx, ann.ID, page(0, 2))
			require.NoError(t, err)
			assert.Equal(t, 2, result.Size)
			assert.Equal(t, tc.total, result.Total)
			for _, item := range result.Items {
				assert.Equal(t, ann.ID, item.PatientID)
			}

			_, err = f.appointments.ListPatientAppointments(ctx, 999, page(0, 2))
			assert.ErrorIs(t, err, ErrPatientNotFound)
		})
	}
}

func TestPatientAppointmentLifecycle(t *testing.T) {
	f := newFixture(t, config.PatientAppointmentsTotalPage)
	ctx := context.Background()

	p, err := f.patients.CreatePatient(ctx, patientRequest("Ann", "Lee", "a@x.com"))
	require.NoError(t, err)

	_, err = f.patients.CreatePatient(ctx, patientRequest("Ann", "Again", "a@x.com"))
	require.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	req := appointmentRequest(p.ID, time.Now().Add(48*time.Hour))
	req.Status = strPtr("scheduled")
	a, err := f.appointments.CreateAppointment(ctx, req)
	require.NoError(t, err)

	done, err := f.appointments.UpdateAppointment(ctx, a.ID, &dto.UpdateAppointmentRequest{Status: strPtr("completed")})
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)

	require.NoError(t, f.patients.DeletePatient(ctx, p.ID))

	_, err = f.appointments.GetAppointment(ctx, a.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
