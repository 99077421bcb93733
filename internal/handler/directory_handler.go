package handler

import (
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DirectoryHandler struct {
	directoryService *service.DirectoryService
}

func NewDirectoryHandler(directoryService *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		directoryService: directoryService,
	}
}

// SearchDoctors filters the doctor directory by name or specialization.
// An empty query returns everyone.
func (h *DirectoryHandler) SearchDoctors(c *gin.Context) {
	query := c.Query("query")

	doctors, err := h.directoryService.SearchDoctors(query)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// SearchPatients filters the patient directory by name, phone or exact id
func (h *DirectoryHandler) SearchPatients(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	query := c.Query("query")

	patients, err := h.directoryService.SearchPatients(actor, query)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"patients": patients,
		"count":    len(patients),
	})
}
