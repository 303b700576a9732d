package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"memory-album/internal/auth"
	"memory-album/internal/config"
	"memory-album/internal/db"
	"memory-album/internal/httpapi"
	"memory-album/internal/store"
)

func main() {
	root := &cobra.Command{
		Use:          "memory-album-server",
		Short:        "Backend for the birthday memory album",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	if err := root.Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func run() error {
	// 1. Config (fatal when DB_DSN or TOKEN_SECRET is missing)
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2. Connect to Database (Platform Layer)
	database, err := db.NewDatabase(cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to PostgreSQL")

	if err := database.AutoMigrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Println("✅ Database Schema Initialized")

	// 3. Connect to Redis (token revocation)
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("✅ Connected to Redis")

	// 4. Identity
	authRepo := auth.NewRepository(database.Conn)
	authService := auth.NewService(authRepo, auth.NewRedisRevoker(redisClient), cfg.TokenSecret)
	authHandler := auth.NewHandler(authService)

	// 5. Records
	recordStore := store.New(database.Conn)
	recordHandler := httpapi.NewHandler(recordStore)

	authMiddleware := httpapi.NewAuthMiddleware(authService)

	// 6. Routes
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Public
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// Protected (require a bearer token)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Handle)
		r.Post("/logout", authHandler.Logout)

		r.Get("/api/photos", recordHandler.ListPhotos)
		r.Post("/api/photos", recordHandler.CreatePhoto)
		r.Get("/api/messages", recordHandler.ListMessages)
		r.Post("/api/messages", recordHandler.CreateMessage)
		r.Get("/api/greeting", recordHandler.GetGreeting)
	})

	log.Printf("🚀 Server starting on %s", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, r)
}
