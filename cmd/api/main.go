package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tijara/storefront-service/config"
	"github.com/tijara/storefront-service/pkg/broker"
	"github.com/tijara/storefront-service/pkg/cache"
	"github.com/tijara/storefront-service/pkg/logger"
	"github.com/tijara/storefront-service/pkg/postgres"
	"github.com/tijara/storefront-service/pkg/search"

	"github.com/tijara/storefront-service/internal/middleware"
	"github.com/tijara/storefront-service/internal/routes"

	catalogH "github.com/tijara/storefront-service/internal/catalog/handler"
	catalogRepoPkg "github.com/tijara/storefront-service/internal/catalog/repository"
	catalogUCPkg "github.com/tijara/storefront-service/internal/catalog/usecase"

	builderH "github.com/tijara/storefront-service/internal/builder/handler"
	builderRepoPkg "github.com/tijara/storefront-service/internal/builder/repository"
	builderUCPkg "github.com/tijara/storefront-service/internal/builder/usecase"

	invH "github.com/tijara/storefront-service/internal/inventory/handler"
	invListenerPkg "github.com/tijara/storefront-service/internal/inventory/listener"
	invRepoPkg "github.com/tijara/storefront-service/internal/inventory/repository"
	invUCPkg "github.com/tijara/storefront-service/internal/inventory/usecase"

	storefrontH "github.com/tijara/storefront-service/internal/storefront/handler"
	storefrontRepoPkg "github.com/tijara/storefront-service/internal/storefront/repository"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catalogRepo := catalogRepoPkg.NewPGRepository(db)
	builderRepo := builderRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	storeRepo := storefrontRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (search falls back to Postgres)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize UseCases
	catalogUC := catalogUCPkg.NewCatalogUseCase(catalogRepo, redisClient, esClient, appLogger, cfg.Cache)
	builderUC := builderUCPkg.NewBuilderUseCase(builderRepo, redisClient, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, appLogger)

	// 6.5 Initialize Listeners
	stockListener := invListenerPkg.NewStockListener(kafkaConsumer, invUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go stockListener.Start(ctx)

	// 7. Initialize Handlers
	handlers := routes.Handlers{
		Catalog:    catalogH.NewCatalogHandler(catalogUC, appLogger),
		Builder:    builderH.NewBuilderHandler(builderUC, appLogger),
		Inventory:  invH.NewInventoryHandler(invUC, appLogger),
		Storefront: storefrontH.NewStorefrontHandler(storeRepo, catalogUC, builderUC, redisClient, appLogger, cfg.Cache),
	}

	// 8. Start HTTP Server
	app := fiber.New(fiber.Config{
		AppName:      "storefront-service",
		ErrorHandler: fiberErrorHandler(appLogger),
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routes.Register(app, handlers, middleware.JWT(cfg.JWT.SecretKey))

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := app.Listen(port); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	if err := app.Shutdown(); err != nil {
		appLogger.Error("server shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func fiberErrorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled request error", zap.Error(err), zap.String("path", c.Path()))
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
