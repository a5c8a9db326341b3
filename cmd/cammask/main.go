package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LastWeekNextDay/CamMask-host/internal/config"
	"github.com/LastWeekNextDay/CamMask-host/internal/database"
	"github.com/LastWeekNextDay/CamMask-host/internal/handlers"
	"github.com/LastWeekNextDay/CamMask-host/internal/repository"
	"github.com/LastWeekNextDay/CamMask-host/internal/services"
	"github.com/LastWeekNextDay/CamMask-host/internal/storage"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database and apply schema
	db, err := database.Connect(context.Background(), &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("Database connection established")

	// Connect to blob storage
	blobs, err := storage.NewS3Store(context.Background(),
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
		cfg.AWS.Endpoint,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create blob store")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	maskRepo := repository.NewMaskRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	maskService := services.NewMaskService(maskRepo, userRepo)
	ratingService := services.NewRatingService(ratingRepo, maskRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, maskRepo, userRepo)
	reportService := services.NewReportService(reportRepo)
	uploadService := services.NewUploadService(blobs, cfg.Upload.MaxFiles)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	maskHandler := handlers.NewMaskHandler(maskService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	commentHandler := handlers.NewCommentHandler(commentService)
	reportHandler := handlers.NewReportHandler(reportService)
	uploadHandler := handlers.NewUploadHandler(uploadService, cfg.Upload.MaxBytes)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes. Method binding makes chi answer 405 for wrong methods.
	r.Post("/createUser", userHandler.CreateUser)
	r.Get("/getUser", userHandler.GetUser)
	r.Post("/uploadFile", uploadHandler.UploadFile)
	r.Post("/createMask", maskHandler.CreateMask)
	r.Get("/getMask", maskHandler.GetMask)
	r.Get("/getMasks", maskHandler.GetMasks)
	r.Post("/postRating", ratingHandler.PostRating)
	r.Get("/getRating", ratingHandler.GetRating)
	r.Post("/postComment", commentHandler.PostComment)
	r.Get("/getComments", commentHandler.GetComments)
	r.Post("/postReport", reportHandler.PostReport)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
