package service

import (
	"fmt"
	"time"

	"clinic-management-backend/internal/apperrors"
	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/policy"
	"clinic-management-backend/internal/repository"
	"clinic-management-backend/internal/schedule"
)

// AppointmentService owns the appointment state machine and its cascading
// effects on treatment and payment records.
type AppointmentService struct {
	appts    repository.AppointmentStore
	doctors  repository.DoctorStore
	patients repository.PatientStore
	audit    repository.AuditStore

	// exclusiveSlots rejects a booking when the doctor already has a
	// non-cancelled appointment at the identical timestamp. Off by
	// default: overlapping walk-in style bookings are accepted.
	exclusiveSlots bool
}

func NewAppointmentService(
	appts repository.AppointmentStore,
	doctors repository.DoctorStore,
	patients repository.PatientStore,
	audit repository.AuditStore,
	exclusiveSlots bool,
) *AppointmentService {
	return &AppointmentService{
		appts:          appts,
		doctors:        doctors,
		patients:       patients,
		audit:          audit,
		exclusiveSlots: exclusiveSlots,
	}
}

// BookRequest carries the inputs for a new appointment. PatientID is
// honored only for admin callers; patients always book their own profile.
type BookRequest struct {
	PatientID uint
	DoctorID  uint
	When      time.Time
	Notes     string
}

// Book validates the requested slot against the doctor's current
// availability and inserts a Scheduled appointment. Nothing is persisted
// when the slot fails the day/time check.
func (s *AppointmentService) Book(actor policy.Actor, req BookRequest) (*models.Appointment, error) {
	if err := policy.CanBook(actor); err != nil {
		return nil, err
	}

	patientID := req.PatientID
	if actor.Role == models.RolePatient {
		patientID = actor.ProfileID
	} else {
		// Admin bookings name the patient explicitly; the id must refer
		// to a real profile.
		if patientID == 0 {
			return nil, apperrors.NewValidation("patient_id", "required")
		}
		if _, err := s.patients.GetPatientByID(patientID); err != nil {
			return nil, err
		}
	}

	doctor, err := s.doctors.GetDoctorByID(req.DoctorID)
	if err != nil {
		return nil, err
	}

	if err := schedule.CheckAvailability(doctor.Availability, req.When); err != nil {
		return nil, err
	}

	if s.exclusiveSlots {
		count, err := s.appts.CountActiveAtSlot(doctor.ID, req.When)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperrors.NewSlotUnavailable(fmt.Sprintf(
				"doctor already has an appointment at %s", req.When.Format("2006-01-02 15:04")))
		}
	}

	appt := &models.Appointment{
		PatientID:       patientID,
		DoctorID:        doctor.ID,
		AppointmentDate: req.When,
		Status:          models.StatusScheduled,
		Notes:           req.Notes,
	}
	if err := s.appts.CreateAppointment(appt); err != nil {
		return nil, err
	}

	_ = s.audit.CreateAuditLog(&actor.UserID, "appointment_booked",
		fmt.Sprintf("Appointment %d booked with doctor %d for %s", appt.ID, doctor.ID, req.When.Format(time.RFC3339)))

	return appt, nil
}

// Reschedule moves an appointment to a new timestamp. Only the owning
// patient may do this. The new slot is re-validated against the doctor's
// live availability; the current status is deliberately not checked, so
// even completed or cancelled appointments can be moved.
func (s *AppointmentService) Reschedule(actor policy.Actor, appointmentID uint, newTime time.Time) error {
	appt, err := s.appts.GetAppointment(appointmentID)
	if err != nil {
		return err
	}
	if err := policy.CanReschedule(actor, appt); err != nil {
		return err
	}

	doctor, err := s.doctors.GetDoctorByID(appt.DoctorID)
	if err != nil {
		return err
	}
	if err := schedule.CheckAvailability(doctor.Availability, newTime); err != nil {
		return err
	}

	if err := s.appts.UpdateAppointmentDate(appointmentID, newTime); err != nil {
		return err
	}

	_ = s.audit.CreateAuditLog(&actor.UserID, "appointment_rescheduled",
		fmt.Sprintf("Appointment %d moved to %s", appointmentID, newTime.Format(time.RFC3339)))

	return nil
}

// Cancel sets the appointment status to Cancelled. The owning patient or
// an admin may cancel. An already-cancelled appointment is an explicit
// no-op; a completed one is still moved to Cancelled.
func (s *AppointmentService) Cancel(actor policy.Actor, appointmentID uint) error {
	appt, err := s.appts.GetAppointment(appointmentID)
	if err != nil {
		return err
	}
	if err := policy.CanCancel(actor, appt); err != nil {
		return err
	}

	if appt.Status == models.StatusCancelled {
		return nil
	}

	if err := s.appts.UpdateAppointmentStatus(appointmentID, models.StatusCancelled); err != nil {
		return err
	}

	_ = s.audit.CreateAuditLog(&actor.UserID, "appointment_cancelled",
		fmt.Sprintf("Appointment %d cancelled", appointmentID))

	return nil
}

// MarkStatus lets the owning doctor set an appointment to Completed or
// Cancelled. Any other target value is a no-op, not an error.
func (s *AppointmentService) MarkStatus(actor policy.Actor, appointmentID uint, target models.AppointmentStatus) error {
	appt, err := s.appts.GetAppointment(appointmentID)
	if err != nil {
		return err
	}
	if err := policy.CanTreat(actor, appt); err != nil {
		return err
	}

	if target != models.StatusCompleted && target != models.StatusCancelled {
		return nil
	}

	if err := s.appts.UpdateAppointmentStatus(appointmentID, target); err != nil {
		return err
	}

	_ = s.audit.CreateAuditLog(&actor.UserID, "appointment_status_set",
		fmt.Sprintf("Appointment %d marked %s", appointmentID, target))

	return nil
}

// TreatmentInput carries the fields recorded by the doctor.
type TreatmentInput struct {
	Diagnosis    string
	Prescription string
	Notes        string
}

// SaveTreatment upserts the appointment's single treatment record. As a
// side effect a Scheduled appointment advances to Completed and an
// existing pending payment flips to paid. All three writes happen inside
// one transaction: either the whole settlement applies or none of it.
func (s *AppointmentService) SaveTreatment(actor policy.Actor, appointmentID uint, input TreatmentInput) (*models.Treatment, error) {
	appt, err := s.appts.GetAppointment(appointmentID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanTreat(actor, appt); err != nil {
		return nil, err
	}

	var saved *models.Treatment
	err = s.appts.InTx(func(tx repository.AppointmentStore) error {
		treatment, err := tx.GetTreatmentByAppointment(appointmentID)
		if err != nil {
			return err
		}
		if treatment == nil {
			treatment = &models.Treatment{
				AppointmentID: appointmentID,
				RecordDate:    time.Now(),
			}
		}
		treatment.Diagnosis = input.Diagnosis
		treatment.Prescription = input.Prescription
		treatment.Notes = input.Notes
		if err := tx.SaveTreatment(treatment); err != nil {
			return err
		}

		if appt.Status == models.StatusScheduled {
			if err := tx.UpdateAppointmentStatus(appointmentID, models.StatusCompleted); err != nil {
				return err
			}
		}

		payment, err := tx.GetPaymentByAppointment(appointmentID)
		if err != nil {
			return err
		}
		if payment != nil && payment.Status == models.PaymentPending {
			if err := tx.UpdatePaymentStatus(payment.ID, models.PaymentPaid); err != nil {
				return err
			}
		}

		saved = treatment
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.audit.CreateAuditLog(&actor.UserID, "treatment_saved",
		fmt.Sprintf("Treatment recorded for appointment %d", appointmentID))

	return saved, nil
}

// SetAvailability stores a new availability rule for a doctor after
// checking it parses. Doctors may edit their own schedule; admins anyone's.
func (s *AppointmentService) SetAvailability(actor policy.Actor, doctorID uint, availability string) error {
	if err := policy.CanSetAvailability(actor, doctorID); err != nil {
		return err
	}
	if _, err := schedule.ParseRule(availability); err != nil {
		return err
	}
	if _, err := s.doctors.GetDoctorByID(doctorID); err != nil {
		return err
	}
	if err := s.doctors.UpdateAvailability(doctorID, availability); err != nil {
		return err
	}

	_ = s.audit.CreateAuditLog(&actor.UserID, "availability_updated",
		fmt.Sprintf("Doctor %d availability set to %q", doctorID, availability))

	return nil
}

// CreatePayment opens a pending billing entry for an appointment.
// Admin-only; at most one payment per appointment.
func (s *AppointmentService) CreatePayment(actor policy.Actor, appointmentID uint, amount float64) (*models.Payment, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, apperrors.NewValidation("amount", "must be positive")
	}

	if _, err := s.appts.GetAppointment(appointmentID); err != nil {
		return nil, err
	}

	existing, err := s.appts.GetPaymentByAppointment(appointmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewValidation("appointment_id", "payment already exists for this appointment")
	}

	payment := &models.Payment{
		AppointmentID: appointmentID,
		Amount:        amount,
		Status:        models.PaymentPending,
		BillingDate:   time.Now(),
	}
	if err := s.appts.CreatePayment(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListFor returns the appointments visible to the actor: all of them for
// admins, their own for doctors and patients.
func (s *AppointmentService) ListFor(actor policy.Actor) ([]models.Appointment, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return s.appts.ListAppointments()
	case models.RoleDoctor:
		return s.appts.ListAppointmentsByDoctor(actor.ProfileID)
	case models.RolePatient:
		return s.appts.ListAppointmentsByPatient(actor.ProfileID)
	}
	return nil, apperrors.ErrUnauthorized
}

// Get returns one appointment if the actor owns it or is an admin.
func (s *AppointmentService) Get(actor policy.Actor, appointmentID uint) (*models.Appointment, error) {
	appt, err := s.appts.GetAppointment(appointmentID)
	if err != nil {
		return nil, err
	}
	switch {
	case actor.IsAdmin():
	case actor.Role == models.RoleDoctor && actor.ProfileID == appt.DoctorID:
	case actor.Role == models.RolePatient && actor.ProfileID == appt.PatientID:
	default:
		return nil, apperrors.ErrUnauthorized
	}
	return appt, nil
}
