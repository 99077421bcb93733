package repository

import (
	"errors"
	"time"

	"clinic-management-backend/internal/apperrors"
	"clinic-management-backend/internal/models"

	"gorm.io/gorm"
)

// AppointmentStore is the persistence surface for the appointment
// aggregate: the appointment row plus its dependent treatment and payment
// records. InTx runs a function against a store bound to one database
// transaction so multi-row mutations apply as a single atomic unit.
type AppointmentStore interface {
	GetAppointment(id uint) (*models.Appointment, error)
	CreateAppointment(appt *models.Appointment) error
	UpdateAppointmentStatus(id uint, status models.AppointmentStatus) error
	UpdateAppointmentDate(id uint, date time.Time) error
	CountActiveAtSlot(doctorID uint, at time.Time) (int64, error)
	ListAppointments() ([]models.Appointment, error)
	ListAppointmentsByDoctor(doctorID uint) ([]models.Appointment, error)
	ListAppointmentsByPatient(patientID uint) ([]models.Appointment, error)
	GetTreatmentByAppointment(appointmentID uint) (*models.Treatment, error)
	SaveTreatment(t *models.Treatment) error
	GetPaymentByAppointment(appointmentID uint) (*models.Payment, error)
	CreatePayment(p *models.Payment) error
	UpdatePaymentStatus(id uint, status models.PaymentStatus) error
	InTx(fn func(AppointmentStore) error) error
}

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

var _ AppointmentStore = (*AppointmentRepository)(nil)

// InTx runs fn against a repository bound to a single transaction. Any
// error rolls the whole unit back.
func (r *AppointmentRepository) InTx(fn func(AppointmentStore) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentRepository{db: tx})
	})
}

// GetAppointment retrieves an appointment with doctor and patient loaded
func (r *AppointmentRepository) GetAppointment(id uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.Preload("Doctor").Preload("Patient").First(&appt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("appointment", id)
		}
		return nil, err
	}
	return &appt, nil
}

// CreateAppointment inserts a new appointment row
func (r *AppointmentRepository) CreateAppointment(appt *models.Appointment) error {
	return r.db.Create(appt).Error
}

// UpdateAppointmentStatus sets the status column
func (r *AppointmentRepository) UpdateAppointmentStatus(id uint, status models.AppointmentStatus) error {
	return r.db.Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// UpdateAppointmentDate moves an appointment to a new timestamp
func (r *AppointmentRepository) UpdateAppointmentDate(id uint, date time.Time) error {
	return r.db.Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("appointment_date", date).Error
}

// CountActiveAtSlot counts non-cancelled appointments for a doctor at the
// exact timestamp. Used by the optional exclusive-slots booking policy.
func (r *AppointmentRepository) CountActiveAtSlot(doctorID uint, at time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status <> ?",
			doctorID, at, models.StatusCancelled).
		Count(&count).Error
	return count, err
}

// ListAppointments retrieves all appointments, newest first
func (r *AppointmentRepository) ListAppointments() ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.Preload("Doctor.User").Preload("Patient.User").
		Preload("Treatment").Preload("Payment").
		Order("appointment_date DESC").
		Find(&appts).Error
	return appts, err
}

// ListAppointmentsByDoctor retrieves a doctor's appointments, newest first
func (r *AppointmentRepository) ListAppointmentsByDoctor(doctorID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.Where("doctor_id = ?", doctorID).
		Preload("Patient.User").Preload("Treatment").
		Order("appointment_date DESC").
		Find(&appts).Error
	return appts, err
}

// ListAppointmentsByPatient retrieves a patient's appointments, newest first
func (r *AppointmentRepository) ListAppointmentsByPatient(patientID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.Where("patient_id = ?", patientID).
		Preload("Doctor.User").Preload("Treatment").Preload("Payment").
		Order("appointment_date DESC").
		Find(&appts).Error
	return appts, err
}

// GetTreatmentByAppointment retrieves the treatment tied to an
// appointment; (nil, nil) when none has been recorded yet.
func (r *AppointmentRepository) GetTreatmentByAppointment(appointmentID uint) (*models.Treatment, error) {
	var treatment models.Treatment
	err := r.db.Where("appointment_id = ?", appointmentID).First(&treatment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &treatment, nil
}

// SaveTreatment inserts or updates a treatment row
func (r *AppointmentRepository) SaveTreatment(t *models.Treatment) error {
	return r.db.Save(t).Error
}

// GetPaymentByAppointment retrieves the payment tied to an appointment;
// (nil, nil) when none exists.
func (r *AppointmentRepository) GetPaymentByAppointment(appointmentID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("appointment_id = ?", appointmentID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// CreatePayment inserts a new payment row
func (r *AppointmentRepository) CreatePayment(p *models.Payment) error {
	return r.db.Create(p).Error
}

// UpdatePaymentStatus sets the payment status column
func (r *AppointmentRepository) UpdatePaymentStatus(id uint, status models.PaymentStatus) error {
	return r.db.Model(&models.Payment{}).
		Where("id = ?", id).
		Update("status", status).Error
}
