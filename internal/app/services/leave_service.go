package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/auth"
	"github.com/yigit/gradebook/internal/pkg/validation"
)

// LeaveService defines leave request operations
type LeaveService interface {
	Submit(ctx context.Context, actor auth.Principal, date, reason string) (*models.Leave, error)
	Approve(ctx context.Context, actor auth.Principal, leaveID int64) error
	Queue(ctx context.Context, actor auth.Principal) (*dto.LeaveQueue, error)
}

type leaveServiceImpl struct {
	leaveRepo *repositories.LeaveRepository
	logger    zerolog.Logger
}

// NewLeaveService creates a new leave service instance
func NewLeaveService(leaveRepo *repositories.LeaveRepository, logger zerolog.Logger) LeaveService {
	return &leaveServiceImpl{
		leaveRepo: leaveRepo,
		logger:    logger,
	}
}

// Submit records a pending leave request for the acting student
func (s *leaveServiceImpl) Submit(ctx context.Context, actor auth.Principal, date, reason string) (*models.Leave, error) {
	if err := requireRole(actor, models.RoleStudent); err != nil {
		return nil, err
	}

	date = strings.TrimSpace(date)
	reason = strings.TrimSpace(reason)
	err := validation.All(
		validation.NewStringValidation("leave_date", date).WithMaxLength(validation.LeaveDateMaxLength),
		validation.NewStringValidation("leave_reason", reason).WithMaxLength(validation.LeaveReasonMaxLength),
	)
	if err != nil {
		return nil, err
	}

	leave := &models.Leave{
		StudentID: actor.UserID,
		Date:      date,
		Reason:    reason,
		Status:    models.LeaveStatusPending,
	}
	if _, err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("leaveID", leave.ID).Int64("studentID", actor.UserID).Msg("Leave submitted")
	return leave, nil
}

// Approve moves a leave to approved. An unknown id returns ErrLeaveNotFound
// and leaves the table unchanged.
func (s *leaveServiceImpl) Approve(ctx context.Context, actor auth.Principal, leaveID int64) error {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	if leaveID <= 0 {
		return apperrors.ErrLeaveNotFound
	}

	if err := s.leaveRepo.Approve(ctx, leaveID); err != nil {
		return err
	}

	s.logger.Info().Int64("leaveID", leaveID).Str("approvedBy", actor.Username).Msg("Leave approved")
	return nil
}

// Queue splits all leave requests by status
func (s *leaveServiceImpl) Queue(ctx context.Context, actor auth.Principal) (*dto.LeaveQueue, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	pending, err := s.leaveRepo.ListByStatus(ctx, models.LeaveStatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := s.leaveRepo.ListByStatus(ctx, models.LeaveStatusApproved)
	if err != nil {
		return nil, err
	}

	return &dto.LeaveQueue{Pending: pending, Approved: approved}, nil
}
