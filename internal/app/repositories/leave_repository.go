package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/db"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

// LeaveRepository handles leave request database operations
type LeaveRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewLeaveRepository creates a new LeaveRepository
func NewLeaveRepository(q db.Querier, placeholder squirrel.PlaceholderFormat) *LeaveRepository {
	return &LeaveRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Create inserts a leave request. Status defaults to pending when unset.
func (r *LeaveRepository) Create(ctx context.Context, leave *models.Leave) (int64, error) {
	if leave.Status == "" {
		leave.Status = models.LeaveStatusPending
	}

	query, args, err := r.sb.Insert("leaves").
		Columns("student_id", "date", "reason", "status").
		Values(leave.StudentID, leave.Date, leave.Reason, string(leave.Status)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create leave query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("studentID", leave.StudentID).Msg("Error creating leave")
		return 0, fmt.Errorf("error creating leave: %w", err)
	}

	leave.ID = id
	return id, nil
}

// GetByID retrieves a leave request by id
func (r *LeaveRepository) GetByID(ctx context.Context, id int64) (*models.Leave, error) {
	query, args, err := r.selectLeaves().
		Where(squirrel.Eq{"l.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get leave query: %w", err)
	}

	leave := &models.Leave{}
	if err := scanLeave(r.db.QueryRowContext(ctx, query, args...), leave); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrLeaveNotFound
		}
		logger.Error().Err(err).Int64("leaveID", id).Msg("Error getting leave by ID")
		return nil, fmt.Errorf("error getting leave by ID: %w", err)
	}
	return leave, nil
}

// ListByStudent returns one student's leave requests
func (r *LeaveRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Leave, error) {
	return r.list(ctx, r.selectLeaves().
		Where(squirrel.Eq{"l.student_id": studentID}).
		OrderBy("l.id ASC"))
}

// ListByStatus returns every leave request with the given status
func (r *LeaveRepository) ListByStatus(ctx context.Context, status models.LeaveStatus) ([]models.Leave, error) {
	return r.list(ctx, r.selectLeaves().
		Where(squirrel.Eq{"l.status": string(status)}).
		OrderBy("l.id ASC"))
}

// Approve marks a leave request approved. Approving an approved leave
// succeeds without change; an unknown id yields ErrLeaveNotFound.
func (r *LeaveRepository) Approve(ctx context.Context, id int64) error {
	query, args, err := r.sb.Update("leaves").
		Set("status", string(models.LeaveStatusApproved)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approve leave query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("leaveID", id).Msg("Error approving leave")
		return fmt.Errorf("error approving leave: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrLeaveNotFound
	}
	return nil
}

func (r *LeaveRepository) selectLeaves() squirrel.SelectBuilder {
	return r.sb.Select("l.id", "l.student_id", "l.date", "l.reason", "l.status", "s.username").
		From("leaves l").
		Join("students s ON s.id = l.student_id")
}

func scanLeave(row interface{ Scan(...interface{}) error }, l *models.Leave) error {
	var status string
	if err := row.Scan(&l.ID, &l.StudentID, &l.Date, &l.Reason, &status, &l.StudentUsername); err != nil {
		return err
	}
	l.Status = models.LeaveStatus(status)
	return nil
}

func (r *LeaveRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]models.Leave, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list leaves query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list leaves query")
		return nil, fmt.Errorf("error querying leaves: %w", err)
	}
	defer rows.Close()

	leaves := []models.Leave{}
	for rows.Next() {
		var l models.Leave
		if err := scanLeave(rows, &l); err != nil {
			return nil, fmt.Errorf("error scanning leave row: %w", err)
		}
		leaves = append(leaves, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave rows: %w", err)
	}
	return leaves, nil
}
