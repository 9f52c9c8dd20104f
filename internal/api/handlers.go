package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/fitbuddy/backend/config"
	apperrors "github.com/pageza/fitbuddy/backend/internal/errors"
	"github.com/pageza/fitbuddy/backend/internal/middleware"
	"github.com/pageza/fitbuddy/backend/internal/service"
	"github.com/pageza/fitbuddy/backend/internal/types"
)

// Version is reported by the health endpoint
const Version = "v1.0.0"

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "FitBuddy API is running",
		"version": Version,
	})
}

// PlanHandler serves the motivation, fitness plan and food plan endpoints
type PlanHandler struct {
	motivation service.IMotivationService
	fitness    service.IFitnessService
	food       service.IFoodPlanService
	errorMode  string
	log        logrus.FieldLogger
}

// NewPlanHandler creates a new PlanHandler instance
func NewPlanHandler(
	motivation service.IMotivationService,
	fitness service.IFitnessService,
	food service.IFoodPlanService,
	errorMode string,
	log logrus.FieldLogger,
) *PlanHandler {
	if errorMode == "" {
		errorMode = config.ErrorModeCompat
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PlanHandler{
		motivation: motivation,
		fitness:    fitness,
		food:       food,
		errorMode:  errorMode,
		log:        log,
	}
}

// RegisterRoutes registers the plan routes
func (h *PlanHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/motivate", h.Motivate)
	router.GET("/fitness-plan", h.FitnessPlan)
	router.GET("/food-plan", h.FoodPlan)
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, plans *PlanHandler) {
	router.GET("/health", HealthCheck)
	plans.RegisterRoutes(router)
}

// respondError writes err according to the configured error mode.
// In compat mode exposed errors keep a 200 status and everything else
// collapses to a generic 500. In strict mode the error code picks the status.
// Messages of unexposed errors never reach the client.
func (h *PlanHandler) respondError(c *gin.Context, err error) {
	appErr, ok := apperrors.From(err)
	exposed := ok && appErr.Exposed()

	var status int
	var message string
	switch {
	case h.errorMode == config.ErrorModeStrict && exposed:
		status, message = appErr.Status(), appErr.Message()
	case h.errorMode == config.ErrorModeStrict:
		code := apperrors.CodeOf(err)
		status, message = apperrors.StatusOf(err), apperrors.AttributesOf(code).Message
	case exposed:
		status, message = http.StatusOK, appErr.Message()
	default:
		status, message = http.StatusInternalServerError, types.InternalErrorMessage
	}

	entry := h.log.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"path":       c.Request.URL.Path,
		"code":       apperrors.CodeOf(err),
		"status":     status,
	})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("request handling failed")
	} else {
		entry.WithError(err).Warn("request handling failed")
	}

	_ = c.Error(err)
	c.JSON(status, types.ErrorResponse{Error: message})
}
