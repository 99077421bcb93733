package service

import (
	"fmt"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/policy"
	"clinic-management-backend/internal/repository"
)

// RosterService covers the admin-side roster management: listing the
// doctor/patient rosters, removing accounts and reviewing recent
// activity.
type RosterService struct {
	users    repository.UserStore
	doctors  repository.DoctorStore
	patients repository.PatientStore
	audit    repository.AuditStore
}

func NewRosterService(
	users repository.UserStore,
	doctors repository.DoctorStore,
	patients repository.PatientStore,
	audit repository.AuditStore,
) *RosterService {
	return &RosterService{
		users:    users,
		doctors:  doctors,
		patients: patients,
		audit:    audit,
	}
}

// ListDoctors returns the full doctor roster
func (s *RosterService) ListDoctors(actor policy.Actor) ([]models.Doctor, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.doctors.GetAllDoctors()
}

// ListPatients returns the full patient roster
func (s *RosterService) ListPatients(actor policy.Actor) ([]models.Patient, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.patients.GetAllPatients()
}

// DeleteUser removes an account. The role profile, its appointments and
// their treatments/payments are removed with it through the cascade
// constraints.
func (s *RosterService) DeleteUser(actor policy.Actor, userID uint) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.users.DeleteUser(userID); err != nil {
		return err
	}

	_ = s.audit.CreateAuditLog(&actor.UserID, "user_deleted",
		fmt.Sprintf("User %d removed with profile and appointments", userID))

	return nil
}

// RecentActivity returns the latest audit entries for the admin dashboard
func (s *RosterService) RecentActivity(actor policy.Actor, limit int) ([]models.AuditLog, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.audit.ListRecentAuditLogs(limit)
}
