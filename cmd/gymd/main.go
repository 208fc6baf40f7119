package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"

	"gym-activity-backend/config"
	"gym-activity-backend/internal/api"
	"gym-activity-backend/internal/attendance"
	"gym-activity-backend/internal/db"
	"gym-activity-backend/internal/metrics"
	"gym-activity-backend/internal/notification"
	"gym-activity-backend/internal/store"
	"gym-activity-backend/internal/tasks"
)

func main() {
	logger := log.New(os.Stdout, "gym-backend ", log.LstdFlags)

	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Printf("failed to read .env: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)

	opts := []attendance.Option{attendance.WithLocation(cfg.Attendance.Location)}
	if cfg.Attendance.SeedDemo {
		opts = append(opts, attendance.WithDemoRecords())
		logger.Println("seeding demo attendance records")
	}
	records := attendance.NewMemoryStore(opts...)

	notices := notification.NewChannel(cfg.Attendance.NotificationDelay)

	var webpushOptions *webpush.Options
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions)
		pool.Start(ctx)
		notices.Subscribe(pool.Dispatch)
		logger.Printf("push notifications enabled with %d workers", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys not configured, push notifications disabled")
	}

	taskList := tasks.NewList(appStore)
	if err := taskList.Load(ctx); err != nil {
		logger.Fatalf("failed to load task list: %v", err)
	}

	handler := api.NewHandler(api.Dependencies{
		Attendance: records,
		Notices:    notices,
		Tasks:      taskList,
		Store:      appStore,
		Metrics:    metrics.New(),
		WebPush:    webpushOptions,
		Location:   cfg.Attendance.Location,
		FormTTL:    cfg.Attendance.FormTTL,
	})

	router := api.NewRouter(cfg, handler)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}
	cancel()

	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Println("Server gracefully stopped")
}
