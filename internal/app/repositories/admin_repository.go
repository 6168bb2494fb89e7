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
	"github.com/yigit/gradebook/internal/pkg/logger"
)

// AdminRepository handles admin database operations
type AdminRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(q db.Querier, placeholder squirrel.PlaceholderFormat) *AdminRepository {
	return &AdminRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Create inserts an admin and returns the new id
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) (int64, error) {
	query, args, err := r.sb.Insert("admins").
		Columns("username", "password").
		Values(admin.Username, admin.Password).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create admin query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrAdminExists
		}
		logger.Error().Err(err).Str("username", admin.Username).Msg("Error creating admin")
		return 0, fmt.Errorf("error creating admin: %w", err)
	}

	admin.ID = id
	return id, nil
}

// GetByUsername retrieves an admin by username
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	query, args, err := r.sb.Select("id", "username", "password").
		From("admins").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get admin query: %w", err)
	}

	admin := &models.Admin{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&admin.ID, &admin.Username, &admin.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrAdminNotFound
		}
		logger.Error().Err(err).Str("username", username).Msg("Error getting admin by username")
		return nil, fmt.Errorf("error getting admin by username: %w", err)
	}

	return admin, nil
}

// ExistsByUsername reports whether an admin with the username exists
func (r *AdminRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return countExists(ctx, r.db, r.sb.Select("COUNT(*)").
		From("admins").
		Where(squirrel.Eq{"username": username}))
}
