package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tulipbilling/invoicing-api/internal/application/service"
	"github.com/tulipbilling/invoicing-api/internal/config"
	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/infrastructure/cache"
	"github.com/tulipbilling/invoicing-api/internal/infrastructure/credstore"
	"github.com/tulipbilling/invoicing-api/internal/infrastructure/sheets"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/handler"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/routes"
	"github.com/tulipbilling/invoicing-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	config.SetLogLevel(cfg.App.Debug)
	logger := config.GetLogger()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Connect to the spreadsheet ledger
	gateway, err := sheets.NewGateway(ctx, &cfg.Sheets)
	if err != nil {
		logger.Fatalf("Failed to connect to the ledger: %v", err)
	}
	if err := gateway.EnsureHeader(ctx, entity.LedgerHeader); err != nil {
		logger.Warnf("Ledger header check failed, continuing: %v", err)
	}
	snapshots := cache.NewSnapshotCache(gateway, cfg.Cache.SnapshotTTL)

	// Open the credential store, with optional remote sync
	var syncer credstore.Syncer
	if githubSync := credstore.NewGitHubSync(&cfg.GitHubSync); githubSync != nil {
		syncer = githubSync
	}
	userStore, err := credstore.NewStore(&cfg.CredStore, syncer)
	if err != nil {
		logger.Fatalf("Failed to open the credential store: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize services
	authService := service.NewAuthService(userStore, jwtManager, logger)
	invoiceService := service.NewInvoiceService(gateway, snapshots, logger)
	dashboardService := service.NewDashboardService(snapshots)
	exportService := service.NewExportService(snapshots, logger)
	userService := service.NewUserService(userStore, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Export:    handler.NewExportHandler(exportService),
		User:      handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Logger:     logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Infof("Starting %s server on port %s (env %s)", cfg.App.Name, port, cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
