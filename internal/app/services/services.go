package services

import (
	"context"
	"fmt"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/db"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/auth"
)

// Services defined in this package:
// - AuthService: login, registration and admin-created student accounts
// - LeaveService: leave submission, approval and the approval queue
// - GradeService: grade sheet, grade entry and subject creation
// - DashboardService: read-only dashboards and student listings
//
// Every operation receives the acting auth.Principal explicitly.

// Transactor runs a function inside a database transaction
type Transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// requireRole rejects principals that do not hold role
func requireRole(actor auth.Principal, role models.RoleType) error {
	if actor.UserID <= 0 || actor.Role != role {
		return apperrors.NewUnauthorizedError(fmt.Sprintf("%s session required", role))
	}
	return nil
}
