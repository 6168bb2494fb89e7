package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/config"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// CreateDefaultData creates the bootstrap admin from configuration when
// one is configured. An existing account with that username is left as is.
func CreateDefaultData(ctx context.Context, cfg *config.Config, authService services.AuthService, lgr zerolog.Logger) error {
	username := cfg.Seed.AdminUsername
	if username == "" {
		lgr.Debug().Msg("No bootstrap admin configured, skipping seed")
		return nil
	}

	_, err := authService.RegisterAdmin(ctx, username, cfg.Seed.AdminPassword)
	switch {
	case err == nil:
		lgr.Info().Str("username", username).Msg("Bootstrap admin created")
		return nil
	case errors.Is(err, apperrors.ErrConflict):
		lgr.Info().Str("username", username).Msg("Bootstrap admin already exists")
		return nil
	default:
		lgr.Error().Err(err).Str("username", username).Msg("Error creating bootstrap admin")
		return err
	}
}
