package middleware

import (
	"net/http"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/policy"
	"clinic-management-backend/internal/repository"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// ActorMiddleware resolves the caller's profile identity from the store.
// Ownership checks compare against this resolved id, never against ids
// supplied in the request.
type ActorMiddleware struct {
	doctorRepo  repository.DoctorStore
	patientRepo repository.PatientStore
}

// NewActorMiddleware creates the actor-resolution middleware
func NewActorMiddleware(doctorRepo repository.DoctorStore, patientRepo repository.PatientStore) *ActorMiddleware {
	return &ActorMiddleware{
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
	}
}

// ResolveActor builds the policy.Actor for the authenticated user and
// injects it into the request context. Must run after AuthMiddleware.
func (m *ActorMiddleware) ResolveActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
			c.Abort()
			return
		}

		roleValue, exists := c.Get("role")
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "User role not found")
			c.Abort()
			return
		}

		actor := policy.Actor{
			UserID: userID.(uint),
			Role:   roleValue.(models.Role),
		}

		switch actor.Role {
		case models.RoleDoctor:
			doctor, err := m.doctorRepo.GetDoctorByUserID(actor.UserID)
			if err != nil {
				utils.ErrorResponse(c, http.StatusForbidden, "Doctor profile not found for this account")
				c.Abort()
				return
			}
			actor.ProfileID = doctor.ID
		case models.RolePatient:
			patient, err := m.patientRepo.GetPatientByUserID(actor.UserID)
			if err != nil {
				utils.ErrorResponse(c, http.StatusForbidden, "Patient profile not found for this account")
				c.Abort()
				return
			}
			actor.ProfileID = patient.ID
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFromContext retrieves the resolved actor set by ResolveActor.
func ActorFromContext(c *gin.Context) (policy.Actor, bool) {
	value, exists := c.Get(actorKey)
	if !exists {
		return policy.Actor{}, false
	}
	actor, ok := value.(policy.Actor)
	return actor, ok
}
