package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"clinic-management-backend/internal/apperrors"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusForbidden},
		{"wrapped unauthorized", fmt.Errorf("cancel: %w", apperrors.ErrUnauthorized), http.StatusForbidden},
		{"duplicate email", apperrors.ErrDuplicateEmail, http.StatusConflict},
		{"schedule format", fmt.Errorf("%w: bad day", apperrors.ErrScheduleFormat), http.StatusBadRequest},
		{"slot unavailable", apperrors.NewSlotUnavailable("outside working hours"), http.StatusConflict},
		{"validation", apperrors.NewValidation("phone", "must be exactly 10 characters"), http.StatusBadRequest},
		{"not found", apperrors.NewNotFound("appointment", 42), http.StatusNotFound},
		{"unknown", errors.New("driver: bad connection"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("dsn user:pass@tcp(db:3306)/clinic"))

	assert.NotContains(t, w.Body.String(), "user:pass", "raw driver errors never reach the client")
	assert.Contains(t, w.Body.String(), "Internal server error")
}
