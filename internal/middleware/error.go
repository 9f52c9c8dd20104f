package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/fitbuddy/backend/internal/types"
)

// Recovery turns a panic in a handler into a JSON 500 response and logs it
func Recovery(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.WithFields(logrus.Fields{
					"request_id": RequestID(c),
					"method":     c.Request.Method,
					"path":       c.Request.URL.Path,
				}).Errorf("panic recovered: %v", err)

				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: types.InternalErrorMessage})
			}
		}()

		c.Next()
	}
}
