package repository

import (
	"errors"
	"strconv"
	"strings"

	"clinic-management-backend/internal/apperrors"
	"clinic-management-backend/internal/models"

	"gorm.io/gorm"
)

// PatientStore is the persistence surface for patient profiles and the
// patient directory.
type PatientStore interface {
	GetAllPatients() ([]models.Patient, error)
	GetPatientByID(id uint) (*models.Patient, error)
	GetPatientByUserID(userID uint) (*models.Patient, error)
	SearchPatients(query string) ([]models.Patient, error)
}

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// GetAllPatients retrieves all patients with their account info
func (r *PatientRepository) GetAllPatients() ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.Preload("User").Order("id ASC").Find(&patients).Error
	return patients, err
}

// GetPatientByID retrieves a patient by profile id
func (r *PatientRepository) GetPatientByID(id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Preload("User").First(&patient, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("patient", id)
		}
		return nil, err
	}
	return &patient, nil
}

// GetPatientByUserID retrieves the patient profile owned by a user account
func (r *PatientRepository) GetPatientByUserID(userID uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Where("user_id = ?", userID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("patient profile for user", userID)
		}
		return nil, err
	}
	return &patient, nil
}

// SearchPatients filters the directory by case-insensitive substring match
// on name or phone; when the query parses as an integer, an exact id match
// is included as well. A single OR query keeps the result de-duplicated.
// An empty query returns the full listing.
func (r *PatientRepository) SearchPatients(query string) ([]models.Patient, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return r.GetAllPatients()
	}

	pattern := "%" + strings.ToLower(trimmed) + "%"
	var patients []models.Patient

	q := r.db.
		Joins("INNER JOIN users ON users.id = patients.user_id").
		Preload("User").
		Order("patients.id ASC")

	if id, err := strconv.ParseUint(trimmed, 10, 32); err == nil {
		q = q.Where("LOWER(users.name) LIKE ? OR patients.phone LIKE ? OR patients.id = ?",
			pattern, pattern, uint(id))
	} else {
		q = q.Where("LOWER(users.name) LIKE ? OR patients.phone LIKE ?", pattern, pattern)
	}

	err := q.Find(&patients).Error
	return patients, err
}
