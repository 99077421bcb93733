package handler

import (
	"errors"
	"net/http"

	"clinic-management-backend/internal/apperrors"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps domain error kinds onto HTTP statuses. Everything the
// services surface is recovered here; only unknown failures become 500s.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		slotErr       *apperrors.SlotUnavailableError
	)

	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrScheduleFormat):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &slotErr):
		utils.ErrorResponse(c, http.StatusConflict, slotErr.Error())
	case errors.As(err, &validationErr):
		utils.ErrorResponse(c, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		utils.ErrorResponse(c, http.StatusNotFound, notFoundErr.Error())
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
