package service

import (
	"clinic-management-backend/internal/apperrors"
	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/policy"
	"clinic-management-backend/internal/repository"
)

// DirectoryService provides the filtered doctor/patient lookups used by
// dashboards and booking flows. Matching is a plain OR of independent
// predicates; there is no ranking.
type DirectoryService struct {
	doctors  repository.DoctorStore
	patients repository.PatientStore
}

func NewDirectoryService(doctors repository.DoctorStore, patients repository.PatientStore) *DirectoryService {
	return &DirectoryService{
		doctors:  doctors,
		patients: patients,
	}
}

// SearchDoctors matches name or specialization, case-insensitively. Any
// authenticated user may browse the doctor directory.
func (s *DirectoryService) SearchDoctors(query string) ([]models.Doctor, error) {
	return s.doctors.SearchDoctors(query)
}

// SearchPatients matches name or phone, plus exact id for numeric
// queries. Restricted to staff: patients cannot enumerate each other.
func (s *DirectoryService) SearchPatients(actor policy.Actor, query string) ([]models.Patient, error) {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleDoctor {
		return nil, apperrors.ErrUnauthorized
	}
	return s.patients.SearchPatients(query)
}
