package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRecovery(t *testing.T) {
	var logs bytes.Buffer
	log := logrus.New()
	log.Out = &logs

	router := gin.New()
	router.Use(RequestIDMiddleware(), Recovery(log))
	router.GET("/panic", func(c *gin.Context) {
		panic("Test error")
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rr.Body.String())
	assert.Contains(t, logs.String(), "Test error")
	assert.Contains(t, logs.String(), rr.Header().Get(RequestIDHeader))
}
