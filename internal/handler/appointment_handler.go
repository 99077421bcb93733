package handler

import (
	"net/http"
	"strconv"
	"time"

	"clinic-management-backend/internal/middleware"
	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/policy"
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

// Accepted timestamp layouts for appointment dates. RFC3339 is canonical;
// the short form matches what the booking form submits.
var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04"}

func parseAppointmentDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// requireActor pulls the resolved actor or aborts with 401.
func requireActor(c *gin.Context) (policy.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
	}
	return actor, ok
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

type BookAppointmentRequest struct {
	DoctorID        uint   `json:"doctor_id" binding:"required"`
	PatientID       uint   `json:"patient_id"` // admin bookings only
	AppointmentDate string `json:"appointment_date" binding:"required"`
	Notes           string `json:"notes"`
}

// Book creates a new appointment in the doctor's availability window
func (h *AppointmentHandler) Book(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	when, ok := parseAppointmentDate(req.AppointmentDate)
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment_date format")
		return
	}

	appt, err := h.appointmentService.Book(actor, service.BookRequest{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		When:      when,
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, appt)
}

// List returns the appointments visible to the caller
func (h *AppointmentHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	appts, err := h.appointmentService.ListFor(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, appts)
}

// Get returns a single appointment
func (h *AppointmentHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	appt, err := h.appointmentService.Get(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, appt)
}

type RescheduleRequest struct {
	AppointmentDate string `json:"appointment_date" binding:"required"`
}

// Reschedule moves an appointment to a new slot
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	when, ok := parseAppointmentDate(req.AppointmentDate)
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment_date format")
		return
	}

	if err := h.appointmentService.Reschedule(actor, id, when); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Appointment rescheduled")
}

// Cancel sets the appointment to Cancelled
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.appointmentService.Cancel(actor, id); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Appointment cancelled")
}

type MarkStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// MarkStatus lets the owning doctor complete or cancel an appointment.
// Unknown target values are accepted and ignored.
func (h *AppointmentHandler) MarkStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req MarkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.appointmentService.MarkStatus(actor, id, models.AppointmentStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Appointment status updated")
}

type SaveTreatmentRequest struct {
	Diagnosis    string `json:"diagnosis" binding:"required"`
	Prescription string `json:"prescription" binding:"required"`
	Notes        string `json:"notes"`
}

// SaveTreatment records the diagnosis/prescription and settles the
// appointment
func (h *AppointmentHandler) SaveTreatment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SaveTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	treatment, err := h.appointmentService.SaveTreatment(actor, id, service.TreatmentInput{
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, treatment)
}

type CreatePaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CreatePayment opens a pending billing entry (admin only)
func (h *AppointmentHandler) CreatePayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	payment, err := h.appointmentService.CreatePayment(actor, id, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, payment)
}

type SetAvailabilityRequest struct {
	Availability string `json:"availability" binding:"required"`
}

// SetAvailability updates a doctor's bookable window
func (h *AppointmentHandler) SetAvailability(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.appointmentService.SetAvailability(actor, id, req.Availability); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Availability updated")
}
