package services

import (
	"context"
	"errors"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/auth"
)

// DashboardService defines the read-only pages
type DashboardService interface {
	StudentDashboard(ctx context.Context, actor auth.Principal) (*dto.StudentDashboard, error)
	AdminDashboard(ctx context.Context, actor auth.Principal) (*dto.AdminDashboard, error)
	RegisteredStudents(ctx context.Context, actor auth.Principal) (*dto.StudentList, error)
}

type dashboardServiceImpl struct {
	repos *repositories.Repositories
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(repos *repositories.Repositories) DashboardService {
	return &dashboardServiceImpl{repos: repos}
}

// StudentDashboard returns the acting student's record, grades and leaves
func (s *dashboardServiceImpl) StudentDashboard(ctx context.Context, actor auth.Principal) (*dto.StudentDashboard, error) {
	if err := requireRole(actor, models.RoleStudent); err != nil {
		return nil, err
	}

	student, err := s.repos.StudentRepository.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("student account no longer exists")
		}
		return nil, err
	}

	grades, err := s.repos.GradeRepository.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	leaves, err := s.repos.LeaveRepository.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentDashboard{Student: *student, Grades: grades, Leaves: leaves}, nil
}

// AdminDashboard lists every student
func (s *dashboardServiceImpl) AdminDashboard(ctx context.Context, actor auth.Principal) (*dto.AdminDashboard, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	students, err := s.repos.StudentRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AdminDashboard{Username: actor.Username, Students: students}, nil
}

// RegisteredStudents lists every student with their grades
func (s *dashboardServiceImpl) RegisteredStudents(ctx context.Context, actor auth.Principal) (*dto.StudentList, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
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

	byStudent := make(map[int64][]models.Grade, len(students))
	for _, g := range grades {
		byStudent[g.StudentID] = append(byStudent[g.StudentID], g)
	}

	list := &dto.StudentList{Students: make([]dto.StudentGrades, 0, len(students))}
	for _, st := range students {
		list.Students = append(list.Students, dto.StudentGrades{Student: st, Grades: byStudent[st.ID]})
	}
	return list, nil
}
