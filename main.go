package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelbook/commands"
	"hotelbook/config"
	"hotelbook/jobs"
	"hotelbook/routes"
	"hotelbook/services"
	"hotelbook/services/logger"
	"hotelbook/services/notification"
	"hotelbook/store"
)

func main() {
	cfg := config.Load()
	appLogger := logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel))
	ctx := context.Background()

	primarySub, err := config.OpenSubstrate(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	localSub, err := config.OpenLocalSubstrate(cfg)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	primary := store.New(store.Options{Substrate: primarySub, Logger: appLogger})
	local := store.New(store.Options{Substrate: localSub, Logger: appLogger})
	defer primary.Close()
	defer local.Close()

	router, m, c := config.InitApp()
	notifier := notification.NewMelodyService(m)

	users := services.NewUserService(services.UserServiceOptions{
		Store:    primary,
		HashCost: cfg.BcryptCost,
		Logger:   appLogger,
	})
	auth := services.NewAuthService(services.AuthServiceOptions{
		Users:  users,
		Tokens: services.NewTokenService(cfg.TokenSecret, cfg.TokenTTL),
		Logger: appLogger,
	})
	hotels := services.NewHotelService(services.HotelServiceOptions{
		Store:  primary,
		Users:  users,
		Logger: appLogger,
	})
	queue := services.NewSyncQueue(local, appLogger)
	monitor := services.NewConnectivityMonitor(primary.Ping, appLogger)
	bookings := services.NewBookingService(services.BookingServiceOptions{
		Store:        primary,
		Hotels:       hotels,
		Auth:         auth,
		Queue:        queue,
		Connectivity: monitor,
		Notifier:     notifier,
		Policy: services.BookingPolicy{
			PreventOverlap: cfg.PreventOverlap,
			VerifyPrice:    cfg.VerifyPrice,
		},
		Logger: appLogger,
	})

	var uploader services.ImageUploader
	if cld := config.ConnectCloudinary(cfg); cld != nil {
		uploader = services.NewCloudinaryUploader(cld, cfg.CloudinaryFolder)
	}
	images := services.NewImageService(uploader, hotels, appLogger)

	registry := commands.NewRegistry(bookings, hotels, users)
	registry.Bind(queue)

	syncJob := jobs.NewSyncJob(monitor, queue, notifier, appLogger)
	// Store chính có thể chưa lên lúc khởi động: seed lại khi kết nối được
	monitor.OnRestore(func(ctx context.Context) {
		if err := services.SeedStore(ctx, primary, users); err != nil {
			appLogger.Error("Seed store lỗi: %v", err)
		}
	})
	monitor.OnRestore(syncJob.Drain)

	if err := monitor.Probe(ctx); err != nil {
		appLogger.Warn("Store chính chưa sẵn sàng: %v", err)
	} else if err := services.SeedStore(ctx, primary, users); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	if err := jobs.InitCronJobs(c, cfg.SyncProbeSpec, syncJob, appLogger); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}
	defer c.Stop()

	routes.SetupRoutes(router, routes.Deps{
		Sessions: local,
		Auth:     auth,
		Users:    users,
		Hotels:   hotels,
		Bookings: bookings,
		Images:   images,
		Queue:    queue,
		Monitor:  monitor,
		Registry: registry,
		Melody:   m,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Println("Server starting on port " + cfg.Port + "...")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	m.Close()
	log.Println("Server stopped gracefully")
}
