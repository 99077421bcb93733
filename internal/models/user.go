package models

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleDoctor  Role = "Doctor"
	RolePatient Role = "Patient"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// User represents the users table. A user owns at most one Doctor or
// Patient profile depending on its role.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;size:30" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null;size:50" json:"email"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	Role         Role      `gorm:"type:enum('Admin','Doctor','Patient');not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	DoctorProfile  *Doctor  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"doctor_profile,omitempty"`
	PatientProfile *Patient `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"patient_profile,omitempty"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TokenHash string    `gorm:"not null;size:255;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName specifies the table name for RefreshToken model
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
