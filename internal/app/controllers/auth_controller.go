package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/middleware"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/web"
)

const invalidLoginMessage = "Invalid username or password"

// AuthController handles login, logout and self-registration
type AuthController struct {
	authService services.AuthService
	sessions    *middleware.AuthMiddleware
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, sessions *middleware.AuthMiddleware, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// Index renders the login page
func (c *AuthController) Index(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, web.IndexPage, dto.IndexPage{})
}

// Login verifies credentials and starts a session for the matching role
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := middleware.BindForm(ctx, &req); err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	principal, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			ctx.HTML(http.StatusOK, web.IndexPage, dto.IndexPage{Error: invalidLoginMessage})
			return
		}
		middleware.HandleError(ctx, err)
		return
	}

	if err := c.sessions.StartSession(ctx, principal); err != nil {
		middleware.HandleError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, dashboardFor(principal))
}

// Logout clears the session
func (c *AuthController) Logout(ctx *gin.Context) {
	c.sessions.ClearSession(ctx)
	ctx.Redirect(http.StatusFound, "/")
}

// RegisterStudentPage renders the student registration form
func (c *AuthController) RegisterStudentPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, web.RegisterStudentPage, nil)
}

// RegisterStudent creates a student account and logs it in
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := middleware.BindForm(ctx, &req); err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	principal, err := c.authService.RegisterStudent(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	if err := c.sessions.StartSession(ctx, principal); err != nil {
		middleware.HandleError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/dashboard_student")
}

// RegisterAdminPage renders the admin registration form
func (c *AuthController) RegisterAdminPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, web.RegisterAdminPage, nil)
}

// RegisterAdmin creates an admin account and logs it in
func (c *AuthController) RegisterAdmin(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := middleware.BindForm(ctx, &req); err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	principal, err := c.authService.RegisterAdmin(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	if err := c.sessions.StartSession(ctx, principal); err != nil {
		middleware.HandleError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/dashboard_admin")
}
