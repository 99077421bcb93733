package policy

import (
	"testing"

	"clinic-management-backend/internal/apperrors"
	"clinic-management-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

var (
	admin   = Actor{UserID: 1, Role: models.RoleAdmin}
	doctor  = Actor{UserID: 2, Role: models.RoleDoctor, ProfileID: 7}
	patient = Actor{UserID: 3, Role: models.RolePatient, ProfileID: 4}
	other   = Actor{UserID: 5, Role: models.RolePatient, ProfileID: 9}
)

// appointment owned by patient profile 4 and doctor profile 7
var appt = &models.Appointment{ID: 11, PatientID: 4, DoctorID: 7}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(admin))
	assert.ErrorIs(t, RequireAdmin(doctor), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, RequireAdmin(patient), apperrors.ErrUnauthorized)
}

func TestCanBook(t *testing.T) {
	assert.NoError(t, CanBook(admin))
	assert.NoError(t, CanBook(patient))
	assert.ErrorIs(t, CanBook(doctor), apperrors.ErrUnauthorized)
}

func TestCanReschedule(t *testing.T) {
	assert.NoError(t, CanReschedule(patient, appt))

	// an admin may cancel but not reschedule on a patient's behalf
	assert.ErrorIs(t, CanReschedule(admin, appt), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, CanReschedule(other, appt), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, CanReschedule(doctor, appt), apperrors.ErrUnauthorized)
}

func TestCanCancel(t *testing.T) {
	assert.NoError(t, CanCancel(patient, appt))
	assert.NoError(t, CanCancel(admin, appt))
	assert.ErrorIs(t, CanCancel(other, appt), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, CanCancel(doctor, appt), apperrors.ErrUnauthorized)
}

func TestCanTreat(t *testing.T) {
	assert.NoError(t, CanTreat(doctor, appt))

	otherDoctor := Actor{UserID: 6, Role: models.RoleDoctor, ProfileID: 8}
	assert.ErrorIs(t, CanTreat(otherDoctor, appt), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, CanTreat(admin, appt), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, CanTreat(patient, appt), apperrors.ErrUnauthorized)
}

func TestCanSetAvailability(t *testing.T) {
	assert.NoError(t, CanSetAvailability(doctor, 7))
	assert.NoError(t, CanSetAvailability(admin, 7))
	assert.ErrorIs(t, CanSetAvailability(doctor, 8), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, CanSetAvailability(patient, 7), apperrors.ErrUnauthorized)
}
