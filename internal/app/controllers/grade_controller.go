package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/middleware"
	"github.com/yigit/gradebook/internal/web"
)

// GradeController handles grade entry and subjects
type GradeController struct {
	gradeService services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService services.GradeService) *GradeController {
	return &GradeController{gradeService: gradeService}
}

// InputGradesPage renders the grade sheet
func (c *GradeController) InputGradesPage(ctx *gin.Context) {
	sheet, err := c.gradeService.Sheet(ctx.Request.Context(), principal(ctx))
	if err != nil {
		middleware.HandleError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, web.InputGradesPage, sheet)
}

// SubmitGrades upserts the posted `{student_id}_{subject}` scores
func (c *GradeController) SubmitGrades(ctx *gin.Context) {
	if _, err := c.gradeService.Submit(ctx.Request.Context(), principal(ctx), ctx.GetPostForm); err != nil {
		middleware.HandleError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/dashboard_admin")
}

// AddSubject seeds a new subject column for every student
func (c *GradeController) AddSubject(ctx *gin.Context) {
	var req dto.AddSubjectRequest
	if err := middleware.BindForm(ctx, &req); err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	if _, err := c.gradeService.AddSubject(ctx.Request.Context(), principal(ctx), req.SubjectName); err != nil {
		middleware.HandleError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/dashboard_admin")
}
