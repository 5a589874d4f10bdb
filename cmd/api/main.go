package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/groomspot/groomspot-api/internal/config"
	"github.com/groomspot/groomspot-api/internal/domain/auth"
	"github.com/groomspot/groomspot-api/internal/domain/booking"
	"github.com/groomspot/groomspot-api/internal/domain/catalog"
	"github.com/groomspot/groomspot-api/internal/domain/provider"
	"github.com/groomspot/groomspot-api/internal/domain/schedule"
	"github.com/groomspot/groomspot-api/internal/domain/user"
	"github.com/groomspot/groomspot-api/internal/middleware"
	"github.com/groomspot/groomspot-api/internal/pkg/database"
	"github.com/groomspot/groomspot-api/internal/pkg/jwt"
	"github.com/groomspot/groomspot-api/internal/pkg/logger"
	pkgresponse "github.com/groomspot/groomspot-api/internal/pkg/response"
	"github.com/groomspot/groomspot-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting GroomSpot API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	providerRepo := provider.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	scheduleRepo := schedule.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, redis)
	providerService := provider.NewService(providerRepo, userRepo, store)
	catalogService := catalog.NewService(catalogRepo, providerRepo)
	// The booking repository doubles as the source of active slot holds.
	scheduleService := schedule.NewService(scheduleRepo, providerRepo, bookingRepo)
	bookingService := booking.NewService(bookingRepo, catalogRepo, providerRepo, scheduleService, store, redis)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	providerHandler := provider.NewHandler(providerService)
	catalogHandler := catalog.NewHandler(catalogService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	bookingHandler := booking.NewHandler(bookingService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/providers", providerHandler.Routes(authMiddleware))
		r.Mount("/catalog", catalogHandler.Routes(authMiddleware))
		r.Mount("/schedule", scheduleHandler.Routes(authMiddleware))
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware))
		r.Mount("/admin/providers", providerHandler.AdminRoutes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.UseLocalStorage() {
		log.Warn().Msg("R2 credentials not configured, using local storage")
		return storage.NewLocalStorage(cfg.LocalStoragePath, "http://localhost:"+cfg.Port+"/uploads")
	}
	return storage.NewR2Storage(storage.R2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		AccessKeySecret: cfg.R2AccessKeySecret,
		BucketName:      cfg.R2BucketName,
		PublicURL:       cfg.R2PublicURL,
	})
}
