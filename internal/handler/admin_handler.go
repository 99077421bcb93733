package handler

import (
	"net/http"
	"strconv"

	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	authService   *service.AuthService
	rosterService *service.RosterService
}

func NewAdminHandler(authService *service.AuthService, rosterService *service.RosterService) *AdminHandler {
	return &AdminHandler{
		authService:   authService,
		rosterService: rosterService,
	}
}

type RegisterDoctorRequest struct {
	Name           string `json:"name" binding:"required,max=30"`
	Email          string `json:"email" binding:"required,email,max=50"`
	Password       string `json:"password" binding:"required,min=6"`
	Specialization string `json:"specialization" binding:"required,max=100"`
	Phone          string `json:"phone" binding:"required"`
	Availability   string `json:"availability" binding:"required"`
}

// RegisterDoctor creates a doctor account with its profile
func (h *AdminHandler) RegisterDoctor(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.RegisterDoctor(actor, service.DoctorRegistration{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Specialization: req.Specialization,
		Phone:          req.Phone,
		Availability:   req.Availability,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// ListDoctors returns the full doctor roster
func (h *AdminHandler) ListDoctors(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	doctors, err := h.rosterService.ListDoctors(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, doctors)
}

// ListPatients returns the full patient roster
func (h *AdminHandler) ListPatients(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	patients, err := h.rosterService.ListPatients(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, patients)
}

// DeleteUser removes an account and everything that hangs off it
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.rosterService.DeleteUser(actor, id); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "User deleted")
}

// RecentActivity returns the latest audit log entries
func (h *AdminHandler) RecentActivity(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.rosterService.RecentActivity(actor, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, logs)
}
