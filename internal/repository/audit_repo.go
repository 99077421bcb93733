package repository

import (
	"clinic-management-backend/internal/models"

	"gorm.io/gorm"
)

// AuditStore records security-relevant actions: logins, registrations and
// appointment lifecycle transitions.
type AuditStore interface {
	CreateAuditLog(userID *uint, action string, details string) error
	ListRecentAuditLogs(limit int) ([]models.AuditLog, error)
}

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog creates a new audit log entry
func (r *AuditRepository) CreateAuditLog(userID *uint, action string, details string) error {
	log := &models.AuditLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	return r.db.Create(log).Error
}

// ListRecentAuditLogs retrieves the most recent audit entries for the
// admin dashboard
func (r *AuditRepository) ListRecentAuditLogs(limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.Preload("User").
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
