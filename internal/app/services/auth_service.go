package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/auth"
	"github.com/yigit/gradebook/internal/pkg/validation"
)

// AuthService defines account authentication and creation
type AuthService interface {
	Login(ctx context.Context, username, password string) (auth.Principal, error)
	RegisterStudent(ctx context.Context, username, password string) (auth.Principal, error)
	RegisterAdmin(ctx context.Context, username, password string) (auth.Principal, error)
	AddStudentAccount(ctx context.Context, actor auth.Principal, username, password string) (*models.Student, error)
}

type authServiceImpl struct {
	studentRepo *repositories.StudentRepository
	adminRepo   *repositories.AdminRepository
	hasher      *auth.PasswordHasher
	logger      zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	studentRepo *repositories.StudentRepository,
	adminRepo *repositories.AdminRepository,
	hasher *auth.PasswordHasher,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		studentRepo: studentRepo,
		adminRepo:   adminRepo,
		hasher:      hasher,
		logger:      logger,
	}
}

// Login checks students first, then admins. The first password match wins
// and every failure yields the same ErrInvalidCredentials.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (auth.Principal, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return auth.Principal{}, apperrors.ErrInvalidCredentials
	}

	student, err := s.studentRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if s.hasher.Verify(password, student.Password) {
			return auth.Principal{UserID: student.ID, Username: student.Username, Role: models.RoleStudent}, nil
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		return auth.Principal{}, fmt.Errorf("login lookup failed: %w", err)
	}

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if s.hasher.Verify(password, admin.Password) {
			return auth.Principal{UserID: admin.ID, Username: admin.Username, Role: models.RoleAdmin}, nil
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		return auth.Principal{}, fmt.Errorf("login lookup failed: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("Failed login attempt")
	return auth.Principal{}, apperrors.ErrInvalidCredentials
}

// RegisterStudent creates a student account and returns its principal
func (s *authServiceImpl) RegisterStudent(ctx context.Context, username, password string) (auth.Principal, error) {
	student, err := s.createStudent(ctx, username, password)
	if err != nil {
		return auth.Principal{}, err
	}
	s.logger.Info().Int64("studentID", student.ID).Str("username", student.Username).Msg("Student registered")
	return auth.Principal{UserID: student.ID, Username: student.Username, Role: models.RoleStudent}, nil
}

// RegisterAdmin creates an admin account and returns its principal
func (s *authServiceImpl) RegisterAdmin(ctx context.Context, username, password string) (auth.Principal, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return auth.Principal{}, err
	}

	taken, err := s.usernameTaken(ctx, username)
	if err != nil {
		return auth.Principal{}, err
	}
	if taken {
		return auth.Principal{}, apperrors.ErrAdminExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{Username: username, Password: hash}
	if _, err := s.adminRepo.Create(ctx, admin); err != nil {
		return auth.Principal{}, err
	}

	s.logger.Info().Int64("adminID", admin.ID).Str("username", admin.Username).Msg("Admin registered")
	return auth.Principal{UserID: admin.ID, Username: admin.Username, Role: models.RoleAdmin}, nil
}

// AddStudentAccount lets an admin create a student without touching the
// admin's own session.
func (s *authServiceImpl) AddStudentAccount(ctx context.Context, actor auth.Principal, username, password string) (*models.Student, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	student, err := s.createStudent(ctx, username, password)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Int64("studentID", student.ID).
		Str("username", student.Username).
		Str("createdBy", actor.Username).
		Msg("Student account added")
	return student, nil
}

func (s *authServiceImpl) createStudent(ctx context.Context, username, password string) (*models.Student, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	taken, err := s.usernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrStudentExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &models.Student{Username: username, Password: hash}
	if _, err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// usernameTaken checks both account tables
func (s *authServiceImpl) usernameTaken(ctx context.Context, username string) (bool, error) {
	exists, err := s.studentRepo.ExistsByUsername(ctx, username)
	if err != nil || exists {
		return exists, err
	}
	return s.adminRepo.ExistsByUsername(ctx, username)
}

func validateCredentials(username, password string) error {
	return validation.All(
		validation.NewStringValidation("username", username).WithMaxLength(validation.UsernameMaxLength),
		validation.NewStringValidation("password", password).WithMaxBytes(validation.PasswordMaxBytes),
	)
}
