package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/abhinand128/project-fyugp-course-allotment/docs" // Import generated swagger docs
	appControllers "github.com/abhinand128/project-fyugp-course-allotment/internal/app/controllers"
	appMigrations "github.com/abhinand128/project-fyugp-course-allotment/internal/app/migrations"
	appRepos "github.com/abhinand128/project-fyugp-course-allotment/internal/app/repositories"
	appRoutes "github.com/abhinand128/project-fyugp-course-allotment/internal/app/routes"
	appServices "github.com/abhinand128/project-fyugp-course-allotment/internal/app/services"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/config"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/db"
	appMiddleware "github.com/abhinand128/project-fyugp-course-allotment/internal/middleware"
	pkgAuth "github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/auth"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/helpers"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/logger"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	DepartmentService *appServices.DepartmentService
	StudentService    *appServices.StudentService
	CourseService     *appServices.CourseService
	BatchService      *appServices.BatchService
	SettingsService   *appServices.SettingsService
	PreferenceService *appServices.PreferenceService
	AllocationService *appServices.AllocationService
	ReportService     *appServices.ReportService
	Controllers       appRoutes.Controllers
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	academicYear := cfg.Academic.Year

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.PathwayRepository,
		deps.Repos.UserRepository,
	)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, deps.Repos.DepartmentRepository)
	deps.BatchService = appServices.NewBatchService(deps.Repos.BatchRepository, deps.Repos.CourseRepository)
	deps.SettingsService = appServices.NewSettingsService(deps.Repos.SettingsRepository, deps.Repos.DepartmentRepository)
	deps.PreferenceService = appServices.NewPreferenceService(
		deps.Repos.StudentRepository,
		deps.Repos.BatchRepository,
		deps.Repos.PreferenceRepository,
		deps.Repos.AllotmentRepository,
		academicYear,
	)
	deps.AllocationService = appServices.NewAllocationService(
		database,
		deps.Repos.StudentRepository,
		deps.Repos.BatchRepository,
		deps.Repos.PreferenceRepository,
		deps.Repos.AllotmentRepository,
		deps.Repos.SettingsRepository,
		academicYear,
		lgr,
	)
	deps.ReportService = appServices.NewReportService(
		deps.Repos.AllotmentRepository,
		deps.Repos.StudentRepository,
		academicYear,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService),
		Department: appControllers.NewDepartmentController(deps.DepartmentService),
		Student:    appControllers.NewStudentController(deps.StudentService),
		Course:     appControllers.NewCourseController(deps.CourseService),
		Batch:      appControllers.NewBatchController(deps.BatchService),
		Settings:   appControllers.NewSettingsController(deps.SettingsService),
		Preference: appControllers.NewPreferenceController(deps.PreferenceService, deps.StudentService),
		Allocation: appControllers.NewAllocationController(deps.AllocationService, deps.PreferenceService),
		Report:     appControllers.NewReportController(deps.ReportService, deps.StudentService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, !cfg.IsProduction())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
