package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymflow/internal/catalog"
)

type PlanController struct{}

func NewPlanController() *PlanController {
	return &PlanController{}
}

// ListPlans godoc
// @Summary List subscription plans
// @Tags Plans
// @Produce json
// @Success 200 {array} catalog.Plan
// @Router /plans [get]
func (p *PlanController) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.List())
}
