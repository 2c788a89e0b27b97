package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/api"
	"github.com/m04kA/SMC-SmartScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SmartScheduler/internal/app"
	"github.com/m04kA/SMC-SmartScheduler/internal/config"
	"github.com/m04kA/SMC-SmartScheduler/internal/jobs"
	"github.com/m04kA/SMC-SmartScheduler/pkg/logger"
	"github.com/m04kA/SMC-SmartScheduler/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("SCHEDULER_CONFIG"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SmartScheduler...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных, применяем миграции и собираем сервисы
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	application, err := app.New(startCtx, cfg, log, app.Options{
		Migrate:       cfg.Database.AutoMigrate,
		Metrics:       metricsCollector,
		StopPoolStats: stopMetricsCh,
	})
	cancelStart()
	if err != nil {
		log.Fatal("Failed to initialize application: %v", err)
	}
	defer application.Close()

	// Ограничение частоты запросов
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, metricsCollector, log)
		log.Info("Rate limiting enabled: %.1f req/s, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	r, err := api.NewRouter(api.Dependencies{
		App:         application,
		Config:      cfg,
		Logger:      log,
		Metrics:     metricsCollector,
		RateLimiter: limiter,
	})
	if err != nil {
		log.Fatal("Failed to build router: %v", err)
	}

	// Фоновые задания
	var runner *jobs.Runner
	if cfg.Jobs.Enabled {
		location, _ := cfg.Schedule.Location()
		var cleaner jobs.IdleCleaner
		if limiter != nil {
			cleaner = limiter
		}
		runner = jobs.New(application.Tasks, application.DeadlineRepo, cleaner, metricsCollector, location, log)
		if err := runner.Start(cfg.Jobs.StatsRefresh); err != nil {
			log.Fatal("Failed to start jobs: %v", err)
		}
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if runner != nil {
		runner.Stop(shutdownCtx)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
