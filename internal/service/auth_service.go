package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-management-backend/internal/apperrors"
	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/policy"
	"clinic-management-backend/internal/repository"
	"clinic-management-backend/internal/schedule"
	"clinic-management-backend/pkg/utils"
)

type AuthService struct {
	userRepo repository.UserStore
	audit    repository.AuditStore
}

func NewAuthService(userRepo repository.UserStore, audit repository.AuditStore) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		audit:    audit,
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// PatientRegistration carries the public sign-up fields.
type PatientRegistration struct {
	Name       string
	Email      string
	Password   string
	Age        int
	Gender     string
	BloodGroup string
	Phone      string
	Address    string
}

// DoctorRegistration carries the fields of an admin-created doctor account.
type DoctorRegistration struct {
	Name           string
	Email          string
	Password       string
	Specialization string
	Phone          string
	Availability   string
}

func (s *AuthService) checkEmailFree(email string) error {
	existing, err := s.userRepo.FindUserByEmail(email)
	if err == nil && existing != nil {
		return apperrors.ErrDuplicateEmail
	}
	return nil
}

// RegisterPatient creates a patient account with its profile in one
// transaction and signs the new user in.
func (s *AuthService) RegisterPatient(reg PatientRegistration) (*LoginResponse, error) {
	switch {
	case strings.TrimSpace(reg.Name) == "":
		return nil, apperrors.NewValidation("name", "required")
	case strings.TrimSpace(reg.Email) == "":
		return nil, apperrors.NewValidation("email", "required")
	case reg.Password == "":
		return nil, apperrors.NewValidation("password", "required")
	case !models.ValidBloodGroup(reg.BloodGroup):
		return nil, apperrors.NewValidation("blood_group", "must be one of the 8 ABO/Rh combinations")
	case len(reg.Phone) != 10:
		return nil, apperrors.NewValidation("phone", "must be exactly 10 characters")
	}

	if err := s.checkEmailFree(reg.Email); err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: passwordHash,
		Role:         models.RolePatient,
	}
	patient := &models.Patient{
		Age:        reg.Age,
		Gender:     reg.Gender,
		BloodGroup: reg.BloodGroup,
		Phone:      reg.Phone,
		Address:    reg.Address,
	}

	if err := s.userRepo.CreateUserWithPatient(user, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient account: %w", err)
	}

	_ = s.audit.CreateAuditLog(&user.ID, "user_registration",
		fmt.Sprintf("Patient %s registered", reg.Email))

	return s.issueTokens(user)
}

// RegisterDoctor creates a doctor account with its profile in one
// transaction. Admin-only; the availability string must parse before it
// is stored.
func (s *AuthService) RegisterDoctor(actor policy.Actor, reg DoctorRegistration) (*UserResponse, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}

	switch {
	case strings.TrimSpace(reg.Name) == "":
		return nil, apperrors.NewValidation("name", "required")
	case strings.TrimSpace(reg.Email) == "":
		return nil, apperrors.NewValidation("email", "required")
	case reg.Password == "":
		return nil, apperrors.NewValidation("password", "required")
	case len(reg.Phone) != 10:
		return nil, apperrors.NewValidation("phone", "must be exactly 10 characters")
	}
	if _, err := schedule.ParseRule(reg.Availability); err != nil {
		return nil, err
	}

	if err := s.checkEmailFree(reg.Email); err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleDoctor,
	}
	doctor := &models.Doctor{
		Specialization: reg.Specialization,
		Phone:          reg.Phone,
		Availability:   reg.Availability,
	}

	if err := s.userRepo.CreateUserWithDoctor(user, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor account: %w", err)
	}

	_ = s.audit.CreateAuditLog(&actor.UserID, "doctor_created",
		fmt.Sprintf("Doctor account %s created", reg.Email))

	return &UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}, nil
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, errors.New("invalid credentials")
	}

	_ = s.audit.CreateAuditLog(&user.ID, "user_login",
		fmt.Sprintf("User %s logged in", email))

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *models.User) (*LoginResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenHash := utils.HashRefreshToken(refreshToken)
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
	}

	if err := s.userRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	tokenHash := utils.HashRefreshToken(refreshToken)

	token, err := s.userRepo.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return "", errors.New("invalid or revoked refresh token")
	}

	if time.Now().After(token.ExpiresAt) {
		return "", errors.New("refresh token expired")
	}

	accessToken, err := utils.GenerateAccessToken(token.User.ID, string(token.User.Role))
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	tokenHash := utils.HashRefreshToken(refreshToken)

	if err := s.userRepo.RevokeRefreshTokenByHash(tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}
