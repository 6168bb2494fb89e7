package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/middleware"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/web"
)

// LeaveController handles leave submission and approval
type LeaveController struct {
	leaveService services.LeaveService
}

// NewLeaveController creates a new LeaveController
func NewLeaveController(leaveService services.LeaveService) *LeaveController {
	return &LeaveController{leaveService: leaveService}
}

// SubmitLeave records a pending leave for the logged-in student
func (c *LeaveController) SubmitLeave(ctx *gin.Context) {
	var req dto.SubmitLeaveRequest
	if err := middleware.BindForm(ctx, &req); err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	if _, err := c.leaveService.Submit(ctx.Request.Context(), principal(ctx), req.LeaveDate, req.LeaveReason); err != nil {
		middleware.HandleError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/dashboard_student")
}

// LeaveApproval renders the pending and approved queues
func (c *LeaveController) LeaveApproval(ctx *gin.Context) {
	queue, err := c.leaveService.Queue(ctx.Request.Context(), principal(ctx))
	if err != nil {
		middleware.HandleError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, web.LeaveApprovalPage, queue)
}

// ApproveLeave approves the posted leave id. Ids that do not resolve to a
// leave are ignored.
func (c *LeaveController) ApproveLeave(ctx *gin.Context) {
	var req dto.ApproveLeaveRequest
	if err := middleware.BindForm(ctx, &req); err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	id, err := strconv.ParseInt(req.LeaveID, 10, 64)
	if err == nil {
		err = c.leaveService.Approve(ctx.Request.Context(), principal(ctx), id)
	} else {
		err = apperrors.ErrLeaveNotFound
	}
	if err != nil && !errors.Is(err, apperrors.ErrLeaveNotFound) {
		middleware.HandleError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/leave_approval")
}
