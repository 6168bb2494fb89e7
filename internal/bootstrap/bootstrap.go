package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/gradebook/internal/app/controllers"
	appMigrations "github.com/yigit/gradebook/internal/app/migrations"
	appRepos "github.com/yigit/gradebook/internal/app/repositories"
	appRoutes "github.com/yigit/gradebook/internal/app/routes"
	appServices "github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/config"
	"github.com/yigit/gradebook/internal/db"
	appMiddleware "github.com/yigit/gradebook/internal/middleware"
	pkgAuth "github.com/yigit/gradebook/internal/pkg/auth"
	"github.com/yigit/gradebook/internal/pkg/logger"
	"github.com/yigit/gradebook/internal/seed"
	"github.com/yigit/gradebook/internal/web"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	LeaveService        appServices.LeaveService
	GradeService        appServices.GradeService
	DashboardService    appServices.DashboardService
	AuthController      *appControllers.AuthController
	DashboardController *appControllers.DashboardController
	LeaveController     *appControllers.LeaveController
	GradeController     *appControllers.GradeController
	StudentController   *appControllers.StudentController
	HealthController    *appControllers.HealthController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Metrics             *appMiddleware.Metrics
	Repos               *appRepos.Repositories
	SessionService      *pkgAuth.SessionService
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := SetupLogger(cfg)
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupLogger applies the logging section of cfg to the global logger
func SetupLogger(cfg *config.Config) zerolog.Logger {
	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	return log.Logger
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.Database, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	database, err := db.NewDatabase(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database, lgr)
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.Database, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.SessionService = pkgAuth.NewSessionService(pkgAuth.SessionConfig{
		SecretKey: cfg.Session.Secret,
		TTL:       cfg.SessionTTL(),
		Issuer:    cfg.Session.Issuer,
	})
	hasher := pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)

	deps.AuthService = appServices.NewAuthService(deps.Repos.StudentRepository, deps.Repos.AdminRepository, hasher, logger.WithComponent("auth"))
	deps.LeaveService = appServices.NewLeaveService(deps.Repos.LeaveRepository, logger.WithComponent("leave"))
	deps.GradeService = appServices.NewGradeService(deps.Repos, database, logger.WithComponent("grade"))
	deps.DashboardService = appServices.NewDashboardService(deps.Repos)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.SessionService, appMiddleware.SessionConfig{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.Secure,
	}, lgr)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Metrics = appMiddleware.NewMetrics(registry)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.AuthMiddleware, lgr)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)
	deps.LeaveController = appControllers.NewLeaveController(deps.LeaveService)
	deps.GradeController = appControllers.NewGradeController(deps.GradeService)
	deps.StudentController = appControllers.NewStudentController(deps.AuthService)
	deps.HealthController = appControllers.NewHealthController(database, lgr)

	if err := seed.CreateDefaultData(context.Background(), cfg, deps.AuthService, lgr); err != nil {
		return nil, fmt.Errorf("failed to create default data: %w", err)
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterFormFieldNames()

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr), deps.Metrics.Middleware())

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(templates)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.DashboardController,
		deps.LeaveController,
		deps.GradeController,
		deps.StudentController,
		deps.HealthController,
		deps.AuthMiddleware,
		deps.Metrics,
	)

	return router, nil
}
