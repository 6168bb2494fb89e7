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
	"github.com/yigit/gradebook/internal/pkg/dberrors"
	"github.com/yigit/gradebook/internal/pkg/helpers"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

var studentColumns = []string{"id", "username", "password", "math", "science"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(q db.Querier, placeholder squirrel.PlaceholderFormat) *StudentRepository {
	return &StudentRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

func scanStudent(row interface{ Scan(...interface{}) error }, s *models.Student) error {
	var math, science sql.NullInt64
	if err := row.Scan(&s.ID, &s.Username, &s.Password, &math, &science); err != nil {
		return err
	}
	s.Math = helpers.IntFromNull(math)
	s.Science = helpers.IntFromNull(science)
	return nil
}

// Create inserts a student and returns the new id
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	query, args, err := r.sb.Insert("students").
		Columns("username", "password").
		Values(student.Username, student.Password).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrStudentExists
		}
		logger.Error().Err(err).Str("username", student.Username).Msg("Error creating student")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	student.ID = id
	return id, nil
}

// GetByUsername retrieves a student by username
func (r *StudentRepository) GetByUsername(ctx context.Context, username string) (*models.Student, error) {
	query, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{}
	if err := scanStudent(r.db.QueryRowContext(ctx, query, args...), student); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("username", username).Msg("Error getting student by username")
		return nil, fmt.Errorf("error getting student by username: %w", err)
	}

	return student, nil
}

// GetByID retrieves a student by id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{}
	if err := scanStudent(r.db.QueryRowContext(ctx, query, args...), student); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error getting student by ID")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// ExistsByUsername reports whether a student with the username exists
func (r *StudentRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return countExists(ctx, r.db, r.sb.Select("COUNT(*)").
		From("students").
		Where(squirrel.Eq{"username": username}))
}

// List returns every student ordered by id
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	query, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var s models.Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}
