package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andikarahman/hr-management/internal"
	"github.com/andikarahman/hr-management/internal/audit"
	auditPostgres "github.com/andikarahman/hr-management/internal/audit/postgres"
	"github.com/andikarahman/hr-management/internal/auth"
	authPostgres "github.com/andikarahman/hr-management/internal/auth/postgres"
	"github.com/andikarahman/hr-management/internal/employee"
	employeePostgres "github.com/andikarahman/hr-management/internal/employee/postgres"
	"github.com/andikarahman/hr-management/internal/team"
	teamPostgres "github.com/andikarahman/hr-management/internal/team/postgres"
	"github.com/andikarahman/hr-management/internal/transport/rest"
	"github.com/andikarahman/hr-management/internal/transport/swagger"
	"github.com/andikarahman/hr-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if _, err := swagger.LoadSpec(context.Background(), "./api/openapi.yml"); err != nil {
		deps.Logger.Warn("openapi spec not served", "error", err)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config

	auditRepo := auditPostgres.NewAuditRepository(deps.GormDB)
	auditService := audit.NewService(auditRepo, deps.Logger)
	auditHandler := audit.NewHandler(auditService)

	tokenGen := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	authRepo := authPostgres.NewAuthRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenGen, auditService, cfg.Security.BCryptCost, deps.Logger)
	authHandler := auth.NewHandler(authService)

	employeeRepo := employeePostgres.NewEmployeeRepository(deps.GormDB)
	employeeService := employee.NewService(employeeRepo, auditService, deps.Logger)
	employeeHandler := employee.NewHandler(employeeService)

	teamRepo := teamPostgres.NewTeamRepository(deps.GormDB)
	teamService := team.NewService(teamRepo, employeeRepo, auditService, deps.Logger)
	teamHandler := team.NewHandler(teamService)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, cfg.Server.AllowedOrigins, authHandler, employeeHandler, teamHandler, auditHandler, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the shared *sql.DB pool. TranslateError must stay on: the
// repositories rely on gorm.ErrDuplicatedKey to report unique index
// conflicts.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
}
