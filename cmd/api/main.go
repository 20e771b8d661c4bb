package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/diagnosis/hbnb-listings/internal/http/handlers"
	hbnbmw "github.com/diagnosis/hbnb-listings/internal/http/middleware"
	"github.com/diagnosis/hbnb-listings/internal/mailer"
	"github.com/diagnosis/hbnb-listings/internal/repository"
	"github.com/diagnosis/hbnb-listings/internal/service"
	"github.com/diagnosis/hbnb-listings/pkg/config"
	"github.com/diagnosis/hbnb-listings/pkg/database"
	"github.com/diagnosis/hbnb-listings/pkg/events"
	"github.com/diagnosis/hbnb-listings/pkg/logger"
	mw "github.com/diagnosis/hbnb-listings/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	var rdb *redis.Client
	if opts, err := redis.ParseURL(cfg.Redis.URL); err == nil {
		if cfg.Redis.Password != "" {
			opts.Password = cfg.Redis.Password
		}
		opts.DB = cfg.Redis.DB
		rdb = redis.NewClient(opts)
		defer rdb.Close()
	} else {
		logger.Warn("Invalid redis URL, login rate limiting disabled", "error", err)
	}

	var mail mailer.Service
	if cfg.Email.DevMode {
		mail = mailer.NewDevMailer()
	} else {
		m, err := mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
		if err != nil {
			logger.Warn("Mailer disabled, falling back to dev mailer", "error", err)
			mail = mailer.NewDevMailer()
		} else {
			mail = m
		}
	}

	userRepo := repository.NewUserRepository(pool)
	placeRepo := repository.NewPlaceRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	amenityRepo := repository.NewAmenityRepository(pool)

	facade := service.NewFacade(userRepo, placeRepo, reviewRepo, amenityRepo, eventBus, mail)
	h := handlers.New(facade, cfg)

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireJWT := hbnbmw.RequireJWT(cfg.Auth.JWTSecret)
	loginLimit := hbnbmw.LoginRateLimit(rdb, cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(loginLimit).Post("/auth/login", h.Login)

		// Public reads
		r.Post("/users", h.RegisterUser)
		r.Get("/users", h.ListUsers)
		r.Get("/users/{id}", h.GetUser)
		r.Get("/users/{id}/places", h.ListPlacesByOwner)
		r.Get("/places", h.ListPlaces)
		r.Get("/places/{id}", h.GetPlace)
		r.Get("/places/{id}/reviews", h.GetReviewsByPlace)
		r.Get("/reviews", h.ListReviews)
		r.Get("/reviews/{id}", h.GetReview)
		r.Get("/amenities", h.ListAmenities)
		r.Get("/amenities/{id}", h.GetAmenity)

		// Authenticated writes
		r.Group(func(r chi.Router) {
			r.Use(requireJWT)
			r.Put("/users/{id}", h.UpdateUser)
			r.Delete("/users/{id}", h.DeleteUser)
			r.Post("/places", h.CreatePlace)
			r.Put("/places/{id}", h.UpdatePlace)
			r.Delete("/places/{id}", h.DeletePlace)
			r.Post("/reviews", h.CreateReview)
			r.Put("/reviews/{id}", h.UpdateReview)
			r.Delete("/reviews/{id}", h.DeleteReview)

			// Admin-gated
			r.Group(func(r chi.Router) {
				r.Use(hbnbmw.RequireAdmin)
				r.Post("/admin/users", h.AdminCreateUser)
				r.Post("/amenities", h.CreateAmenity)
				r.Put("/amenities/{id}", h.UpdateAmenity)
				r.Delete("/amenities/{id}", h.DeleteAmenity)
			})
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down hbnb-listings...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting hbnb-listings", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
