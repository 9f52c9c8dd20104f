package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/fitbuddy/backend/internal/api"
	"github.com/pageza/fitbuddy/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(plans *api.PlanHandler, allowedOrigins []string, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(allowedOrigins))

	api.RegisterRoutes(router, plans)

	return router
}
