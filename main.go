package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bhetghat/bhetghat-server/config"
	"github.com/bhetghat/bhetghat-server/middleware"
	"github.com/bhetghat/bhetghat-server/routes"
	"github.com/bhetghat/bhetghat-server/utils"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	cfg.Logger = logger.Sugar()

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	if err := cfg.ConnectMongo(context.Background()); err != nil {
		logger.Fatal("mongodb", zap.Error(err))
	}
	logger.Info("MongoDB connected")
	defer cfg.MongoClient.Disconnect(context.Background())

	store, err := utils.NewFileStore(cfg)
	if err != nil {
		logger.Fatal("file store", zap.Error(err))
	}

	deps := routes.Deps{
		Tokens:   utils.NewTokenService(cfg.JWTSecret),
		Store:    store,
		Mailer:   utils.NewSMTPMailer(cfg.SMTP, cfg.Logger),
		Geocoder: utils.NewGeocoder(cfg.GeocodeBaseURL),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Static("/images", cfg.ImagesDir)

	routes.SetupRoutes(router, cfg, deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
