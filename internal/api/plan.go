package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/fitbuddy/backend/internal/types"
)

// Motivate handles GET /motivate?goal=
func (h *PlanHandler) Motivate(c *gin.Context) {
	goal := c.DefaultQuery("goal", types.DefaultGoal)

	resp, err := h.motivation.Motivate(c.Request.Context(), goal)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FitnessPlan handles GET /fitness-plan?equipment=
func (h *PlanHandler) FitnessPlan(c *gin.Context) {
	equipment := c.DefaultQuery("equipment", types.DefaultEquipment)

	resp, err := h.fitness.FitnessPlan(c.Request.Context(), equipment)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FoodPlan handles GET /food-plan?dietary=
func (h *PlanHandler) FoodPlan(c *gin.Context) {
	dietary := c.DefaultQuery("dietary", types.DefaultDietary)

	resp, err := h.food.FoodPlan(c.Request.Context(), dietary)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
