package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"roomalloc-service/internal/infrastructure/config"
	"roomalloc-service/internal/infrastructure/persistence"
	"roomalloc-service/internal/interface/httpapi"
	mongoRepo "roomalloc-service/internal/interface/repository"
	"roomalloc-service/internal/usecase"
	"roomalloc-service/pkg/logger"
	"roomalloc-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Room Allocation Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Program master data lives in PostgreSQL
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	bookingRepository := mongoRepo.NewMongoBookingRepository(db)
	roomRepository := mongoRepo.NewMongoRoomManagementRepository(db)
	programRepository := mongoRepo.NewGormProgramRepository(gormDB)

	// Set up the allocation engine
	engineMetrics := metrics.NewMetrics("roomalloc")
	familyResolver := usecase.NewFamilyResolver(bookingRepository, log)
	roomAllocator := usecase.NewRoomAllocator(programRepository, roomRepository, familyResolver, log, engineMetrics)

	// Set up HTTP server
	api := httpapi.NewServer(bookingRepository, programRepository, familyResolver, roomAllocator, log, engineMetrics)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	api.Register(mux)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB within the shutdown window, not the
	// already-cancelled run context
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Room Allocation Service stopped")
}
