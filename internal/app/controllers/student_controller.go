package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/middleware"
	"github.com/yigit/gradebook/internal/web"
)

// StudentController handles admin-created student accounts
type StudentController struct {
	authService services.AuthService
}

// NewStudentController creates a new StudentController
func NewStudentController(authService services.AuthService) *StudentController {
	return &StudentController{authService: authService}
}

// AddStudentPage renders the add-student form
func (c *StudentController) AddStudentPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, web.AddStudentPage, nil)
}

// AddStudentAccount creates a student without changing the admin's session
func (c *StudentController) AddStudentAccount(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := middleware.BindForm(ctx, &req); err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	if _, err := c.authService.AddStudentAccount(ctx.Request.Context(), principal(ctx), req.Username, req.Password); err != nil {
		middleware.HandleError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/dashboard_admin")
}
