package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tmorrow/schoolmock/docs" // generated swagger docs
	"github.com/tmorrow/schoolmock/internal/app/controllers"
	"github.com/tmorrow/schoolmock/internal/app/migrations"
	"github.com/tmorrow/schoolmock/internal/app/models"
	"github.com/tmorrow/schoolmock/internal/app/repositories"
	"github.com/tmorrow/schoolmock/internal/app/routes"
	"github.com/tmorrow/schoolmock/internal/app/services"
	"github.com/tmorrow/schoolmock/internal/config"
	"github.com/tmorrow/schoolmock/internal/db"
	"github.com/tmorrow/schoolmock/internal/middleware"
	"github.com/tmorrow/schoolmock/internal/pkg/logger"
	"github.com/tmorrow/schoolmock/internal/seed"
)

// Storage is the selected backend: exactly one of Postgres or Memory is
// set, per database.driver.
type Storage struct {
	Postgres *db.PostgresDB
	Memory   *repositories.MemoryDB
	Migrator *migrations.Migrator
}

// Resetter returns the reset hook of the active backend.
func (s *Storage) Resetter() controllers.Resetter {
	if s.Postgres != nil {
		return s.Migrator
	}
	return s.Memory
}

// Close releases the backend's resources.
func (s *Storage) Close() {
	if s.Postgres != nil {
		s.Postgres.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// A .env file is optional; variables it sets feed the env overrides.
	_ = godotenv.Load()

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Base()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured backend. For PostgreSQL it also runs
// the pending migrations; the memory backend needs no schema.
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Info().Msg("Using in-memory storage backend")
		return &Storage{Memory: repositories.NewMemoryDB()}, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrator := migrations.NewMigrator(database.Pool, cfg.Database.MigrationsDir)

	lgr.Info().Msg("Running database migrations...")
	if err := migrator.Migrate(context.Background()); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return &Storage{Postgres: database, Migrator: migrator}, nil
}

// SeedData clears the backend and loads a freshly generated dataset. Every
// boot starts from the same state; disable seeding to keep existing data
// across restarts.
func SeedData(ctx context.Context, cfg *config.Config, storage *Storage, lgr zerolog.Logger) error {
	if !cfg.Seed.Enabled {
		lgr.Info().Msg("Seeding disabled, skipping")
		return nil
	}

	dataset := seed.NewGenerator(cfg.Seed.RandomSeed).Build()

	if storage.Postgres != nil {
		if err := seed.LoadPostgres(ctx, storage.Postgres, dataset); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	} else {
		if err := seed.LoadMemory(ctx, storage.Memory, dataset); err != nil {
			return fmt.Errorf("failed to seed memory backend: %w", err)
		}
	}

	lgr.Info().
		Int("students", len(dataset.Students)).
		Int("enrolments", len(dataset.Enrolments)).
		Int("attendances", len(dataset.Attendances)).
		Int("incidents", len(dataset.Incidents)).
		Msg("Seed data loaded")
	return nil
}

// BuildDependencies wires a controller stack for every entity on top of
// the active backend.
func BuildDependencies(storage *Storage, lgr zerolog.Logger) routes.Controllers {
	return routes.Controllers{
		Geography:      resource[models.Geography](storage, models.GeographyDescriptor),
		School:         resource[models.School](storage, models.SchoolDescriptor),
		Student:        resource[models.Student](storage, models.StudentDescriptor),
		ScholasticYear: resource[models.ScholasticYear](storage, models.ScholasticYearDescriptor),
		Class:          resource[models.Class](storage, models.ClassDescriptor),
		Enrolment:      resource[models.Enrolment](storage, models.EnrolmentDescriptor),
		ClassEnrolment: resource[models.ClassEnrolment](storage, models.ClassEnrolmentDescriptor),
		Attendance:     resource[models.Attendance](storage, models.AttendanceDescriptor),
		Incident:       resource[models.Incident](storage, models.IncidentDescriptor),
		Admin:          controllers.NewAdminController(storage.Resetter(), lgr),
	}
}

// resource builds the store, service and controller of one entity kind
// against whichever backend is active.
func resource[T any, PT models.RecordOf[T]](storage *Storage, desc models.Descriptor) *controllers.ResourceController[T, PT] {
	var store services.ResourceStore[T, PT]
	if storage.Postgres != nil {
		store = repositories.NewRepository[T, PT](storage.Postgres, desc)
	} else {
		store = repositories.NewMemoryStore[T, PT](storage.Memory, desc)
	}
	return controllers.NewResourceController[T, PT](services.NewResourceService[T, PT](store, desc))
}

// SetupRouter configures the Gin engine with middleware and all routes.
func SetupRouter(cfg *config.Config, deps routes.Controllers, lgr zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(lgr))

	routes.SetupRoutes(router, deps)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
