package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"homologation-service/internal/config"
	"homologation-service/internal/database/postgres"
	"homologation-service/internal/database/redis"
	"homologation-service/internal/event"
	"homologation-service/internal/handlers"
	"homologation-service/internal/repository"
	"homologation-service/internal/services"
	"homologation-service/internal/worker"

	"github.com/gofiber/fiber/v3"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/homologation", "log", "homologation_service")
	fmt.Println("Log directory:", logDir)
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(file, nil)))
	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()
	slog.Info("connecting to PostgreSQL",
		"host", cfg.PostgresCfg.Host, "port", cfg.PostgresCfg.Port,
		"user", cfg.PostgresCfg.Username, "dbname", cfg.PostgresCfg.DBname)

	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		slog.Error("error connecting to database, retrying in background", "error", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	redisClient, err := redis.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// RabbitMQ is optional: without it catalog edits still land, only the
	// catalog.updated events are skipped.
	var publisher *event.CatalogPublisher
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		slog.Warn("RabbitMQ unavailable, catalog events disabled", "error", err)
	} else {
		defer rabbitConn.Close()
		publisher, err = event.NewCatalogPublisher(rabbitConn)
		if err != nil {
			slog.Warn("failed to set up catalog publisher, catalog events disabled", "error", err)
			publisher = nil
		}
	}

	// repositories
	catalogRepository := repository.NewCatalogRepository(db)
	elementRepository := repository.NewElementRepository(db)
	tierRepository := repository.NewTariffTierRepository(db)
	warningRepository := repository.NewWarningRepository(db)

	// services
	catalogService := services.NewCatalogService(catalogRepository)
	elementService := services.NewElementService(elementRepository, catalogRepository, catalogService, publisher)
	tierService := services.NewTariffTierService(tierRepository, catalogRepository, catalogService, publisher)
	warningService := services.NewWarningService(warningRepository, catalogRepository, catalogService, publisher)
	quoteService := services.NewQuoteService(catalogService, redisClient.GetClient(), cfg.EngineCfg.ExpansionTTL, cfg.EngineCfg.QuoteTTL)

	// handlers
	categoryHandler := handlers.NewCategoryHandler(catalogService)
	elementHandler := handlers.NewElementHandler(elementService)
	tierHandler := handlers.NewTariffTierHandler(tierService)
	warningHandler := handlers.NewWarningHandler(warningService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)

	// background maintenance
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	scheduler := worker.NewJobScheduler("catalog-maintenance", cfg.EngineCfg.SnapshotRefreshInterval)
	worker.RegisterCatalogJobs(scheduler, catalogService, quoteService)
	go scheduler.Run(ctx)

	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Homologation service is healthy")
	})

	categoryHandler.Register(app)
	elementHandler.Register(app)
	tierHandler.Register(app)
	warningHandler.Register(app)
	quoteHandler.Register(app)

	slog.Info("starting homologation-service", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
