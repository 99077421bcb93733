package repository

import (
	"errors"
	"strings"

	"clinic-management-backend/internal/apperrors"
	"clinic-management-backend/internal/models"

	"gorm.io/gorm"
)

// DoctorStore is the persistence surface for doctor profiles and the
// doctor directory.
type DoctorStore interface {
	GetAllDoctors() ([]models.Doctor, error)
	GetDoctorByID(id uint) (*models.Doctor, error)
	GetDoctorByUserID(userID uint) (*models.Doctor, error)
	SearchDoctors(query string) ([]models.Doctor, error)
	UpdateAvailability(id uint, availability string) error
}

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepo(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// GetAllDoctors retrieves all doctors with their account info
func (r *DoctorRepository) GetAllDoctors() ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Preload("User").Order("id ASC").Find(&doctors).Error
	return doctors, err
}

// GetDoctorByID retrieves a doctor by profile id
func (r *DoctorRepository) GetDoctorByID(id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.Preload("User").First(&doctor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("doctor", id)
		}
		return nil, err
	}
	return &doctor, nil
}

// GetDoctorByUserID retrieves the doctor profile owned by a user account
func (r *DoctorRepository) GetDoctorByUserID(userID uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("doctor profile for user", userID)
		}
		return nil, err
	}
	return &doctor, nil
}

// SearchDoctors filters the directory by case-insensitive substring match
// on name or specialization. An empty query returns the full listing.
func (r *DoctorRepository) SearchDoctors(query string) ([]models.Doctor, error) {
	if strings.TrimSpace(query) == "" {
		return r.GetAllDoctors()
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var doctors []models.Doctor
	err := r.db.
		Joins("INNER JOIN users ON users.id = doctors.user_id").
		Where("LOWER(users.name) LIKE ? OR LOWER(doctors.specialization) LIKE ?", pattern, pattern).
		Preload("User").
		Order("doctors.id ASC").
		Find(&doctors).Error
	return doctors, err
}

// UpdateAvailability stores a new availability rule string for a doctor.
// Callers verify the doctor exists; MySQL reports zero affected rows when
// the value is unchanged, so that is not treated as a miss here.
func (r *DoctorRepository) UpdateAvailability(id uint, availability string) error {
	return r.db.Model(&models.Doctor{}).
		Where("id = ?", id).
		Update("availability", availability).Error
}
