package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/db"
	"github.com/yigit/gradebook/internal/pkg/helpers"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

// GradeRepository handles grade database operations
type GradeRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(q db.Querier, placeholder squirrel.PlaceholderFormat) *GradeRepository {
	return &GradeRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Upsert stores score for the (student, subject) pair, overwriting an
// existing row in the same statement.
func (r *GradeRepository) Upsert(ctx context.Context, studentID int64, subject string, score int) error {
	query, args, err := r.sb.Insert("grades").
		Columns("student_id", "subject", "score").
		Values(studentID, subject, score).
		Suffix("ON CONFLICT (student_id, subject) DO UPDATE SET score = excluded.score").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert grade query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Str("subject", subject).Msg("Error upserting grade")
		return fmt.Errorf("error upserting grade: %w", err)
	}
	return nil
}

// SubjectExists reports whether any grade row carries the subject label
func (r *GradeRepository) SubjectExists(ctx context.Context, subject string) (bool, error) {
	return countExists(ctx, r.db, r.sb.Select("COUNT(*)").
		From("grades").
		Where(squirrel.Eq{"subject": subject}))
}

// SeedSubject inserts an ungraded row of subject for every student and
// returns how many rows were created.
func (r *GradeRepository) SeedSubject(ctx context.Context, subject string) (int64, error) {
	// the nested select is rendered by the outer builder, so it keeps "?"
	students := squirrel.Select("id").
		Column(squirrel.Expr("?", subject)).
		From("students")

	query, args, err := r.sb.Insert("grades").
		Columns("student_id", "subject").
		Select(students).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build seed subject query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("subject", subject).Msg("Error seeding subject")
		return 0, fmt.Errorf("error seeding subject: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading seeded row count: %w", err)
	}
	return n, nil
}

// ListByStudent returns a student's grades in insertion order
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Grade, error) {
	return r.list(ctx, r.sb.Select("id", "student_id", "subject", "score").
		From("grades").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("id ASC"))
}

// List returns every grade row
func (r *GradeRepository) List(ctx context.Context) ([]models.Grade, error) {
	return r.list(ctx, r.sb.Select("id", "student_id", "subject", "score").
		From("grades").
		OrderBy("student_id ASC", "id ASC"))
}

func (r *GradeRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]models.Grade, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list grades query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list grades query")
		return nil, fmt.Errorf("error querying grades: %w", err)
	}
	defer rows.Close()

	grades := []models.Grade{}
	for rows.Next() {
		var (
			g     models.Grade
			score sql.NullInt64
		)
		if err := rows.Scan(&g.ID, &g.StudentID, &g.Subject, &score); err != nil {
			return nil, fmt.Errorf("error scanning grade row: %w", err)
		}
		g.Score = helpers.IntFromNull(score)
		grades = append(grades, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grade rows: %w", err)
	}
	return grades, nil
}

// Subjects returns the distinct subject labels in order of first use
func (r *GradeRepository) Subjects(ctx context.Context) ([]string, error) {
	query, args, err := r.sb.Select("subject").
		From("grades").
		GroupBy("subject").
		OrderBy("MIN(id) ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build subjects query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing subjects query")
		return nil, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	subjects := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("error scanning subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}
