package dto

import "github.com/yigit/gradebook/internal/app/models"

// SubmitLeaveRequest represents the student's leave form
type SubmitLeaveRequest struct {
	LeaveDate   string `form:"leave_date" binding:"required,max=20"`
	LeaveReason string `form:"leave_reason" binding:"required,max=100"`
}

// ApproveLeaveRequest carries the raw id; an id that does not parse is
// treated like one that does not exist.
type ApproveLeaveRequest struct {
	LeaveID string `form:"leave_id" binding:"required"`
}

// LeaveQueue is the admin's approval page split by status
type LeaveQueue struct {
	Pending  []models.Leave
	Approved []models.Leave
}
