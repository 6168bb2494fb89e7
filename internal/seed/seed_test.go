package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/pkg/auth"
	"github.com/yigit/gradebook/internal/testutil"
)

func TestCreateDefaultData(t *testing.T) {
	cfg := testutil.Config(t)
	database := testutil.NewDatabase(t, cfg)
	repos := repositories.NewRepositories(database)
	authService := services.NewAuthService(repos.StudentRepository, repos.AdminRepository, auth.NewPasswordHasher(bcrypt.MinCost), zerolog.Nop())
	ctx := context.Background()

	// nothing configured
	require.NoError(t, CreateDefaultData(ctx, cfg, authService, zerolog.Nop()))
	assert.Equal(t, 0, testutil.CountRows(t, database, "admins"))

	cfg.Seed.AdminUsername = "root"
	cfg.Seed.AdminPassword = "pw"
	require.NoError(t, CreateDefaultData(ctx, cfg, authService, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, cfg, authService, zerolog.Nop()))
	assert.Equal(t, 1, testutil.CountRows(t, database, "admins"))

	p, err := authService.Login(ctx, "root", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, p.Role)
}
