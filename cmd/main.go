package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/northlake-labs/product-service/internal/events"
	"github.com/northlake-labs/product-service/internal/handler"
	"github.com/northlake-labs/product-service/internal/repository"
	"github.com/northlake-labs/product-service/internal/service"
	"github.com/northlake-labs/product-service/pkg/config"
	"github.com/northlake-labs/product-service/pkg/middleware"
	pkgtls "github.com/northlake-labs/product-service/pkg/tls"
)

func main() {
	// Local overrides; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := repository.NewMongoClient(ctx, cfg)
	cancel()
	if err != nil {
		logger.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error("Failed to disconnect from document store", zap.Error(err))
		}
	}()

	var publisher service.EventPublisher
	if cfg.KafkaBrokers != "" {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer producer.Close()
		publisher = producer
		logger.Info("Event publishing enabled",
			zap.String("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	productRepo := repository.NewProductRepository(mongoClient, cfg.MongoDatabase)
	productService := service.NewProductService(productRepo, publisher, logger)
	productHandler := handler.NewProductHandler(productService, logger)

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler(logger))

	router.GET("/", productHandler.Health)

	api := router.Group("/api")
	{
		api.POST("/products", productHandler.CreateProduct)
		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.PUT("/products/:id", productHandler.ReplaceProduct)
		api.PATCH("/products/:id", productHandler.PatchProduct)
		api.DELETE("/products/:id", productHandler.DeleteProduct)
	}

	tlsConfig, tlsCleanup, err := pkgtls.Load(context.Background(), &cfg.TLS, logger)
	if err != nil {
		logger.Fatal("Failed to load TLS config", zap.Error(err))
	}
	defer tlsCleanup()

	srv := &http.Server{
		Addr:      ":" + cfg.Port,
		Handler:   router,
		TLSConfig: tlsConfig,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))

		var err error
		if tlsConfig != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	return logger
}
