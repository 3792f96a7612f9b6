// Package main provides the main entry point for the TV planner service
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bpnlt/tv-planner/app/handlers"
	"github.com/bpnlt/tv-planner/app/router"
	"github.com/bpnlt/tv-planner/app/services"
	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/bpnlt/tv-planner/config"
	"github.com/bpnlt/tv-planner/models"
	"github.com/bpnlt/tv-planner/repository"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application bundles the wired components of the running service
type Application struct {
	router router.Router
	config *config.Config
}

func main() {
	log.Println("Starting TV planner service...")

	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)
		if err := app.router.Start(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.router.GetApp().ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger to a rotating file when one is
// configured, mirroring output to stderr so container logs stay useful.
func setupLogging(cfg config.LoggingConfig) {
	if cfg.File == "" {
		return
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}

// initializeDatabase opens the Postgres connection and configures pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	if err := models.SeedChannelGroups(db); err != nil {
		return nil, fmt.Errorf("failed to seed channel groups: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCRMClient selects the CRM integration backend
func initializeCRMClient(cfg config.CRMConfig) services.CRMClient {
	if !cfg.Enabled || cfg.BaseURL == "" {
		log.Println("CRM integration disabled, using noop client")
		return services.NoopCRMClient{}
	}
	log.Printf("CRM integration enabled against %s", cfg.BaseURL)
	return services.NewHTTPCRMClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
}

// initializeApplication wires repositories, flows, handlers and the router
func initializeApplication(cfg *config.Config) (*Application, error) {
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	// Repositories
	groupRepo := repository.NewChannelGroupRepository(db)
	listRepo := repository.NewPricingListRepository(db)
	rateRepo := repository.NewRateCardRepository(db)
	indexRepo := repository.NewIndexRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	waveRepo := repository.NewWaveRepository(db)
	itemRepo := repository.NewWaveItemRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	tvcRepo := repository.NewTVCRepository(db)

	// Services
	crmClient := initializeCRMClient(cfg.CRM)

	// Flows
	rateFlow := businessflow.NewRateCardFlow(rateRepo, groupRepo, listRepo, db)
	indexFlow := businessflow.NewIndexFlow(indexRepo, groupRepo, db)
	itemFlow := businessflow.NewWaveItemFlow(itemRepo, waveRepo, campaignRepo, tvcRepo, groupRepo, rateFlow, indexFlow, db)
	discountFlow := businessflow.NewDiscountFlow(discountRepo, waveRepo, campaignRepo, itemRepo, db)
	campaignFlow := businessflow.NewCampaignFlow(campaignRepo, waveRepo, itemRepo, tvcRepo, listRepo, crmClient, db)
	reportFlow := businessflow.NewReportFlow(campaignRepo, waveRepo, itemRepo, tvcRepo, groupRepo, listRepo, rateFlow, discountFlow, db)
	listFlow := businessflow.NewPricingListFlow(listRepo, rateRepo, db)
	groupFlow := businessflow.NewChannelGroupFlow(groupRepo, db)

	// Handlers
	campaignHandler := handlers.NewCampaignHandler(campaignFlow)
	itemHandler := handlers.NewWaveItemHandler(itemFlow)
	discountHandler := handlers.NewDiscountHandler(discountFlow)
	rateHandler := handlers.NewRateHandler(rateFlow)
	indexHandler := handlers.NewIndexHandler(indexFlow)
	listHandler := handlers.NewPricingListHandler(listFlow, groupFlow)
	reportHandler := handlers.NewReportHandler(reportFlow)

	appRouter := router.NewFiberRouter(
		cfg,
		campaignHandler,
		itemHandler,
		discountHandler,
		rateHandler,
		indexHandler,
		listHandler,
		reportHandler,
	)

	return &Application{
		router: appRouter,
		config: cfg,
	}, nil
}
