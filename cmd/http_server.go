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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/gym-management/internal"
	"github.com/frahmantamala/gym-management/internal/absence"
	absencePostgres "github.com/frahmantamala/gym-management/internal/absence/postgres"
	"github.com/frahmantamala/gym-management/internal/analytics"
	analyticsPostgres "github.com/frahmantamala/gym-management/internal/analytics/postgres"
	"github.com/frahmantamala/gym-management/internal/audit"
	auditPostgres "github.com/frahmantamala/gym-management/internal/audit/postgres"
	"github.com/frahmantamala/gym-management/internal/auth"
	authPostgres "github.com/frahmantamala/gym-management/internal/auth/postgres"
	"github.com/frahmantamala/gym-management/internal/campaign"
	campaignPostgres "github.com/frahmantamala/gym-management/internal/campaign/postgres"
	"github.com/frahmantamala/gym-management/internal/campaignlog"
	campaignlogPostgres "github.com/frahmantamala/gym-management/internal/campaignlog/postgres"
	"github.com/frahmantamala/gym-management/internal/companytx"
	companytxPostgres "github.com/frahmantamala/gym-management/internal/companytx/postgres"
	"github.com/frahmantamala/gym-management/internal/core/codegen"
	"github.com/frahmantamala/gym-management/internal/member"
	memberPostgres "github.com/frahmantamala/gym-management/internal/member/postgres"
	"github.com/frahmantamala/gym-management/internal/transaction"
	transactionPostgres "github.com/frahmantamala/gym-management/internal/transaction/postgres"
	"github.com/frahmantamala/gym-management/internal/transport/rest"
	"github.com/frahmantamala/gym-management/pkg/logger"
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

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	lg := deps.Logger
	gormDB := deps.GormDB

	pipeline := audit.NewPipeline(gormDB, lg)
	codes := codegen.New()

	// Auth stack
	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, cfg.Security.BCryptCost)

	var sessions auth.SessionProvider
	if cfg.Auth.SkipAuth {
		lg.Warn("auth bypass enabled, all requests run as the demo owner")
		sessions = auth.NewStaticSessionProvider()
	} else {
		sessions = auth.NewTokenSessionProvider(authService)
	}

	memberService := member.NewService(memberPostgres.NewMemberRepository(gormDB), pipeline, codes, lg)
	transactionService := transaction.NewService(transactionPostgres.NewTransactionRepository(gormDB), pipeline, codes, lg)
	companyTxService := companytx.NewService(companytxPostgres.NewCompanyTransactionRepository(gormDB), pipeline, codes, lg)
	absenceService := absence.NewService(absencePostgres.NewAbsenceRepository(gormDB), pipeline, lg)
	campaignService := campaign.NewService(campaignPostgres.NewCampaignRepository(gormDB), pipeline, lg)
	campaignLogService := campaignlog.NewService(campaignlogPostgres.NewCampaignLogRepository(gormDB), pipeline, lg)
	analyticsService := analytics.NewService(analyticsPostgres.NewRepository(deps.DB), lg)

	handlers := rest.Handlers{
		Auth:        auth.NewHandler(authService),
		Member:      member.NewHandler(memberService),
		Transaction: transaction.NewHandler(transactionService),
		CompanyTx:   companytx.NewHandler(companyTxService),
		Absence:     absence.NewHandler(absenceService),
		Campaign:    campaign.NewHandler(campaignService),
		CampaignLog: campaignlog.NewHandler(campaignLogService),
		Analytics:   analytics.NewHandler(analyticsService),
		ActivityLog: audit.NewHandler(auditPostgres.NewRepository(gormDB)),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, sessions, handlers, lg)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
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

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
