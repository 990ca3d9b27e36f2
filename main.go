package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"homeboard/api"
	"homeboard/database"
	"homeboard/integrations"
	"homeboard/internal/auth"
	"homeboard/internal/roadmap"
	"homeboard/internal/store"
	"homeboard/internal/timers"
)

func main() {
	_ = godotenv.Load()

	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelStr == "" {
		levelStr = "debug"
	}
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := config.Build()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.SetDefault("database.path", "homeboard.db")
	viper.SetDefault("server.port", "8080")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			zap.L().Fatal("Error reading config file", zap.Error(err))
		}
		zap.L().Warn("No config file found, running on defaults")
	}

	db := database.Init(viper.GetString("database.path"))
	sqlDB, _ := db.DB()

	st := store.New(db)

	plan, err := roadmap.Load()
	if err != nil {
		zap.L().Fatal("Failed to load the study plan", zap.Error(err))
	}

	engine := timers.NewEngine(st)
	if err := engine.Start(); err != nil {
		zap.L().Fatal("Failed to start the timer engine", zap.Error(err))
	}

	handler := api.NewHandler(st)
	handler.Plan = plan
	handler.Engine = engine
	handler.Weather = integrations.NewWeatherClient(viper.GetString("weather.base_url"))
	handler.Geocoder = integrations.NewGeocodeClient(
		viper.GetString("geocode.base_url"),
		viper.GetString("geocode.api_key"),
	)

	if viper.IsSet("google.service_account") {
		calClient, err := integrations.NewCalendarClient()
		if err != nil {
			zap.L().Fatal("Failed to initialise Google Calendar client", zap.Error(err))
		}
		handler.Calendar = calClient
		zap.L().Info("Successfully authenticated with Google Calendar API.")
	} else {
		zap.L().Warn("No Google service account configured; scheduler falls back to calendar links")
	}

	var verifier auth.Verifier
	if viper.GetBool("auth.dev") {
		verifier = &auth.StaticVerifier{User: auth.Identity{
			ID:    "dev",
			Email: viper.GetString("auth.dev_email"),
			Name:  "Developer",
		}}
		zap.L().Warn("Dev auth enabled: every request runs as the configured user")
	} else {
		audience := viper.GetString("google.client_id")
		if audience == "" {
			zap.L().Fatal("google.client_id is not configured")
		}
		verifier = &auth.GoogleVerifier{Audience: audience}
	}

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))

	handler.Register(router.Group("/api"), api.RequireIdentity(verifier))

	port := viper.GetString("server.port")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	zap.L().Info("Starting server", zap.String("port", port))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	var once sync.Once

	cleanup := func(reason string) {
		zap.L().Info("Shutdown initiated", zap.String("reason", reason))

		engine.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		zap.L().Info("Shutting down HTTP server...")
		if err := srv.Shutdown(ctx); err != nil {
			zap.L().Error("Error shutting down server", zap.Error(err))
		} else {
			zap.L().Info("HTTP server shut down gracefully.")
		}

		if sqlDB != nil {
			if err := sqlDB.Close(); err != nil {
				zap.L().Error("Error closing database", zap.Error(err))
			} else {
				zap.L().Info("Database connection closed.")
			}
		}
		close(done)
	}

	go func() {
		sig := <-sigCh
		once.Do(func() {
			cleanup(sig.String())
		})

		// if a second signal is caught, exit immediately
		go func() {
			<-sigCh
			zap.L().Info("Second interrupt signal received. Exiting immediately.")
			os.Exit(1)
		}()
	}()

	<-done
	zap.L().Info("Exiting...")
}
