package repository

import (
	"errors"

	"clinic-management-backend/internal/apperrors"
	"clinic-management-backend/internal/models"

	"gorm.io/gorm"
)

// UserStore is the persistence surface for accounts and sessions.
// Registration writes the User row and its role profile atomically.
type UserStore interface {
	FindUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	CreateUserWithDoctor(user *models.User, doctor *models.Doctor) error
	CreateUserWithPatient(user *models.User, patient *models.Patient) error
	CreateUser(user *models.User) error
	DeleteUser(id uint) error
	CreateRefreshToken(token *models.RefreshToken) error
	FindRefreshTokenByHash(hash string) (*models.RefreshToken, error)
	RevokeRefreshTokenByHash(hash string) error
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindUserByEmail finds a user by email
func (r *UserRepository) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user with its role profile preloaded
func (r *UserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Preload("DoctorProfile").Preload("PatientProfile").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user", id)
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a bare user row (admin accounts carry no profile)
func (r *UserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateUserWithDoctor creates the user and its doctor profile in one
// transaction so a failure leaves neither row behind.
func (r *UserRepository) CreateUserWithDoctor(user *models.User, doctor *models.Doctor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		doctor.UserID = user.ID
		return tx.Create(doctor).Error
	})
}

// CreateUserWithPatient creates the user and its patient profile in one
// transaction.
func (r *UserRepository) CreateUserWithPatient(user *models.User, patient *models.Patient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		patient.UserID = user.ID
		return tx.Create(patient).Error
	})
}

// DeleteUser removes a user. Profile, appointments and their
// treatments/payments go with it through the FK cascade constraints.
func (r *UserRepository) DeleteUser(id uint) error {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("user", id)
	}
	return nil
}

// CreateRefreshToken creates a new refresh token
func (r *UserRepository) CreateRefreshToken(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// FindRefreshTokenByHash finds a refresh token by its hash
func (r *UserRepository) FindRefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.Where("token_hash = ? AND revoked = ?", hash, false).
		Preload("User").
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found or revoked")
		}
		return nil, err
	}
	return &token, nil
}

// RevokeRefreshTokenByHash marks a refresh token as revoked by its hash
func (r *UserRepository) RevokeRefreshTokenByHash(hash string) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}
