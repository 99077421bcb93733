// Package policy implements the capability and ownership checks gating
// appointment lifecycle operations. The Actor is resolved server-side
// from the caller's session identity; ids supplied in requests are never
// trusted for authorization.
package policy

import (
	"clinic-management-backend/internal/apperrors"
	"clinic-management-backend/internal/models"
)

// Actor is the authenticated caller of an operation. ProfileID is the id
// of the caller's Doctor or Patient profile row (0 for admins, who have
// no profile).
type Actor struct {
	UserID    uint
	Role      models.Role
	ProfileID uint
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// RequireAdmin gates admin-only operations.
func RequireAdmin(a Actor) error {
	if !a.IsAdmin() {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// RequirePatient gates patient-only operations.
func RequirePatient(a Actor) error {
	if a.Role != models.RolePatient {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// RequireDoctor gates doctor-only operations.
func RequireDoctor(a Actor) error {
	if a.Role != models.RoleDoctor {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// CanBook allows a patient to book for their own profile, or an admin to
// book on behalf of any patient.
func CanBook(a Actor) error {
	if a.IsAdmin() || a.Role == models.RolePatient {
		return nil
	}
	return apperrors.ErrUnauthorized
}

// CanReschedule allows only the owning patient to move an appointment.
func CanReschedule(a Actor, appt *models.Appointment) error {
	if a.Role == models.RolePatient && a.ProfileID == appt.PatientID {
		return nil
	}
	return apperrors.ErrUnauthorized
}

// CanCancel allows the owning patient or an admin to cancel.
func CanCancel(a Actor, appt *models.Appointment) error {
	if a.IsAdmin() {
		return nil
	}
	if a.Role == models.RolePatient && a.ProfileID == appt.PatientID {
		return nil
	}
	return apperrors.ErrUnauthorized
}

// CanTreat allows only the owning doctor to mark status or record a
// treatment for an appointment.
func CanTreat(a Actor, appt *models.Appointment) error {
	if a.Role == models.RoleDoctor && a.ProfileID == appt.DoctorID {
		return nil
	}
	return apperrors.ErrUnauthorized
}

// CanSetAvailability allows a doctor to edit their own availability, or
// an admin to edit anyone's.
func CanSetAvailability(a Actor, doctorID uint) error {
	if a.IsAdmin() {
		return nil
	}
	if a.Role == models.RoleDoctor && a.ProfileID == doctorID {
		return nil
	}
	return apperrors.ErrUnauthorized
}
