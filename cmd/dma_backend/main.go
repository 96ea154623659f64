package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	migratepgsql "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ktraore/devis_manager_app/internal/adapters/database/pgsql"
	"github.com/ktraore/devis_manager_app/internal/adapters/database/sqlite"
	"github.com/ktraore/devis_manager_app/internal/adapters/gemini"
	"github.com/ktraore/devis_manager_app/internal/adapters/rates"
	portsproviders "github.com/ktraore/devis_manager_app/internal/core/ports/providers"
	portsrepo "github.com/ktraore/devis_manager_app/internal/core/ports/repositories"
	"github.com/ktraore/devis_manager_app/internal/core/services"
	"github.com/ktraore/devis_manager_app/internal/handlers"
	"github.com/ktraore/devis_manager_app/internal/middleware"
	"github.com/ktraore/devis_manager_app/internal/platform/config"
	"github.com/ktraore/devis_manager_app/pkg/database"
)

// @title Devis Manager API
// @version 1.0
// @description Backend for the supplier quote manager: quote storage, currency-normalized cost breakdowns and AI comparison of quotes.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup, err := setupStorage(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	var summarizer portsproviders.Summarizer
	if cfg.GeminiAPIKey != "" {
		s, err := gemini.NewSummarizer(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("Failed to initialize summarizer, analysis will use the fallback message", slog.String("error", err.Error()))
		} else {
			summarizer = s
		}
	}

	rateProvider := rates.NewHTTPProvider(cfg.RatesAPIURL, cfg.RatesTimeout)
	container := services.NewServiceContainer(repos, rateProvider, summarizer)

	// Load the rate table once at startup. A failure is not fatal: the
	// application keeps working with conversion disabled.
	if err := container.Rate.RefreshRates(context.Background()); err != nil {
		logger.Warn("Initial exchange rate fetch failed, conversion disabled", slog.String("error", err.Error()))
	} else {
		logger.Info("Exchange rates loaded")
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS for the SPA frontend)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("db_driver", cfg.DBDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupStorage opens the configured database, runs its migrations and
// returns the repository provider plus a cleanup function.
func setupStorage(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DBDriver {
	case "pgsql":
		pool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		if err := runPgsqlMigrations(cfg, logger); err != nil {
			pool.Close()
			return portsrepo.RepositoryProvider{}, nil, err
		}
		repos := portsrepo.RepositoryProvider{QuoteRepo: pgsql.NewQuoteRepository(pool)}
		return repos, func() { database.ClosePgxPool(pool) }, nil

	case "sqlite":
		if err := runSqliteMigrations(cfg, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		repos := portsrepo.RepositoryProvider{QuoteRepo: sqlite.NewQuoteRepository(db)}
		return repos, func() { database.CloseSQLiteDB(db) }, nil

	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

func runPgsqlMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations, using
	// the pgx stdlib driver to be compatible with the main pool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := migratepgsql.WithInstance(migrationDB, &migratepgsql.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+cfg.MigrationsDir+"/pgsql",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	return applyMigrations(m, logger)
}

func runSqliteMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// The sqlite migrate driver takes ownership of its connection, so a
	// dedicated one is opened for the migration run.
	migrationDB, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(migrationDB, &migratesqlite.Config{})
	if err != nil {
		_ = migrationDB.Close()
		return fmt.Errorf("could not create sqlite driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+cfg.MigrationsDir+"/sqlite",
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	return applyMigrations(m, logger)
}

func applyMigrations(m *migrate.Migrate, logger *slog.Logger) error {
	err := m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
