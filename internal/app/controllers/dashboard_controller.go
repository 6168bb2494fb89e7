package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/middleware"
	"github.com/yigit/gradebook/internal/web"
)

// DashboardController renders the read-only pages
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// StudentDashboard renders the student's grades and leave requests
func (c *DashboardController) StudentDashboard(ctx *gin.Context) {
	page, err := c.dashboardService.StudentDashboard(ctx.Request.Context(), principal(ctx))
	if err != nil {
		middleware.HandleError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, web.StudentDashboard, page)
}

// AdminDashboard renders the admin's overview
func (c *DashboardController) AdminDashboard(ctx *gin.Context) {
	page, err := c.dashboardService.AdminDashboard(ctx.Request.Context(), principal(ctx))
	if err != nil {
		middleware.HandleError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, web.AdminDashboard, page)
}

// RegisteredStudents renders every student with their grades
func (c *DashboardController) RegisteredStudents(ctx *gin.Context) {
	page, err := c.dashboardService.RegisteredStudents(ctx.Request.Context(), principal(ctx))
	if err != nil {
		middleware.HandleError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, web.RegisteredStudents, page)
}
