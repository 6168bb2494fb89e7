package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/auth"
	"github.com/yigit/gradebook/internal/pkg/validation"
)

// FormLookup returns a posted form value and whether it was sent.
// gin's (*Context).GetPostForm satisfies it.
type FormLookup func(key string) (string, bool)

// GradeService defines grade sheet operations
type GradeService interface {
	Sheet(ctx context.Context, actor auth.Principal) (*dto.GradeSheet, error)
	Submit(ctx context.Context, actor auth.Principal, form FormLookup) (int, error)
	AddSubject(ctx context.Context, actor auth.Principal, subject string) (int64, error)
}

type gradeServiceImpl struct {
	repos  *repositories.Repositories
	tx     Transactor
	logger zerolog.Logger
}

// NewGradeService creates a new grade service instance
func NewGradeService(repos *repositories.Repositories, tx Transactor, logger zerolog.Logger) GradeService {
	return &gradeServiceImpl{
		repos:  repos,
		tx:     tx,
		logger: logger,
	}
}

var builtinSubjects = []string{models.SubjectMath, models.SubjectScience}

// subjectColumns lists Math and Science followed by every other subject
// found in the grade table.
func subjectColumns(ctx context.Context, grades *repositories.GradeRepository) ([]dto.SubjectColumn, error) {
	subjects, err := grades.Subjects(ctx)
	if err != nil {
		return nil, err
	}

	columns := make([]dto.SubjectColumn, 0, len(builtinSubjects)+len(subjects))
	seen := make(map[string]bool, len(builtinSubjects)+len(subjects))
	for _, label := range append(append([]string{}, builtinSubjects...), subjects...) {
		key := models.SubjectKey(label)
		if seen[key] {
			continue
		}
		seen[key] = true
		columns = append(columns, dto.SubjectColumn{Label: label, Key: key})
	}
	return columns, nil
}

func fieldName(studentID int64, key string) string {
	return fmt.Sprintf("%d_%s", studentID, key)
}

// Sheet builds the students by subjects grade-entry view
func (s *gradeServiceImpl) Sheet(ctx context.Context, actor auth.Principal) (*dto.GradeSheet, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	columns, err := subjectColumns(ctx, s.repos.GradeRepository)
	if err != nil {
		return nil, err
	}
	students, err := s.repos.StudentRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	grades, err := s.repos.GradeRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]*int, len(grades))
	for _, g := range grades {
		scores[fieldName(g.StudentID, models.SubjectKey(g.Subject))] = g.Score
	}

	sheet := &dto.GradeSheet{Subjects: columns, Rows: make([]dto.GradeSheetRow, 0, len(students))}
	for _, st := range students {
		row := dto.GradeSheetRow{StudentID: st.ID, Username: st.Username}
		for _, col := range columns {
			name := fieldName(st.ID, col.Key)
			row.Cells = append(row.Cells, dto.GradeCell{FieldName: name, Score: scores[name]})
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// Submit upserts every score present in form. Absent or blank fields leave
// the grade untouched; one malformed score rejects the whole submission.
// It returns the number of scores written.
func (s *gradeServiceImpl) Submit(ctx context.Context, actor auth.Principal, form FormLookup) (int, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return 0, err
	}

	written := 0
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		repos := s.repos.WithTx(tx)

		columns, err := subjectColumns(ctx, repos.GradeRepository)
		if err != nil {
			return err
		}
		students, err := repos.StudentRepository.List(ctx)
		if err != nil {
			return err
		}

		entries, err := parseGradeEntries(students, columns, form)
		if err != nil {
			return err
		}

		for _, e := range entries {
			if err := repos.GradeRepository.Upsert(ctx, e.StudentID, e.Subject, e.Score); err != nil {
				return err
			}
		}
		written = len(entries)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int("scores", written).Str("enteredBy", actor.Username).Msg("Grades submitted")
	return written, nil
}

func parseGradeEntries(students []models.Student, columns []dto.SubjectColumn, form FormLookup) ([]dto.GradeEntry, error) {
	var entries []dto.GradeEntry
	for _, st := range students {
		for _, col := range columns {
			name := fieldName(st.ID, col.Key)
			raw, ok := form(name)
			raw = strings.TrimSpace(raw)
			if !ok || raw == "" {
				continue
			}

			score, err := strconv.Atoi(raw)
			if err != nil {
				return nil, apperrors.NewCustomError(apperrors.ErrInvalidScore,
					fmt.Sprintf("score for %s in %s must be an integer", st.Username, col.Label)).WithField(name)
			}
			entries = append(entries, dto.GradeEntry{StudentID: st.ID, Subject: col.Label, Score: score})
		}
	}
	return entries, nil
}

// AddSubject seeds an ungraded row of subject for every student. A label
// already present anywhere in the grade table, or one whose form key would
// clash with an existing column, is a conflict and creates nothing.
func (s *gradeServiceImpl) AddSubject(ctx context.Context, actor auth.Principal, subject string) (int64, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return 0, err
	}

	subject = strings.TrimSpace(subject)
	err := validation.NewStringValidation("subject_name", subject).
		WithMaxLength(validation.SubjectMaxLength).
		Validate()
	if err != nil {
		return 0, err
	}

	var created int64
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		grades := s.repos.WithTx(tx).GradeRepository

		exists, err := grades.SubjectExists(ctx, subject)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrSubjectExists
		}

		columns, err := subjectColumns(ctx, grades)
		if err != nil {
			return err
		}
		key := models.SubjectKey(subject)
		for _, col := range columns {
			if col.Key == key && col.Label != subject {
				return apperrors.ErrSubjectExists
			}
		}

		created, err = grades.SeedSubject(ctx, subject)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Str("subject", subject).Int64("rows", created).Msg("Subject added")
	return created, nil
}
