package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"storea/internal/auth"
	"storea/internal/blob"
	"storea/internal/categories"
	"storea/internal/config"
	"storea/internal/handler"
	"storea/internal/middleware"
	"storea/internal/domain/repositories"
	"storea/internal/migrate"
	"storea/internal/repository/postgres"
	redisrepo "storea/internal/repository/redis"
	"storea/internal/service"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Run schema migrations
	ctx := context.Background()
	if err := migrate.Up(ctx, cfg.SupabaseDBURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create pgx connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	projectRepo := postgres.NewProjectRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	versionRepo := postgres.NewVersionRepository(repoConfig)
	activityRepo := postgres.NewActivityRepository(repoConfig)
	profileRepo := postgres.NewProfileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Recent-activity feed: Redis when configured, no-op otherwise
	var feed repositories.ActivityFeed
	if cfg.RedisAddr != "" {
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		feed = redisrepo.NewActivityFeedRepository(redisClient, config.RecentActivityFeedSize)
		logger.Info("activity feed connected", "addr", cfg.RedisAddr)
	} else {
		feed = redisrepo.NewNoopActivityFeed()
		logger.Warn("no redis configured, recent-activity feed disabled")
	}

	// Create blob store
	blobs, err := blob.NewStoreFromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create blob store: %v", err)
	}
	logger.Info("blob store initialized", "backend", cfg.BlobBackend)

	// Initialize category registry
	categoryRegistry, err := categories.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize category registry: %v", err)
	}

	// Create services
	projectService := service.NewProjectService(projectRepo, logger)
	docService := service.NewDocumentService(docRepo, versionRepo, activityRepo, feed, blobs, categoryRegistry, txManager, logger)
	versionService := service.NewVersionService(docRepo, versionRepo, activityRepo, feed, blobs, txManager, logger)
	historyService := service.NewHistoryService(docRepo, versionRepo, activityRepo, profileRepo, feed, logger)

	// Create handlers
	projectHandler := handler.NewProjectHandler(projectService, logger)
	docHandler := handler.NewDocumentHandler(docService, logger)
	versionHandler := handler.NewVersionHandler(versionService, logger)
	historyHandler := handler.NewHistoryHandler(historyService, logger)
	categoriesHandler := handler.NewCategoriesHandler(categoryRegistry, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("GET /api/projects/{id}/documents", docHandler.ListDocuments)
	mux.HandleFunc("GET /api/projects/{id}/activity", historyHandler.GetRecentActivity)

	// Document routes
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)
	mux.HandleFunc("GET /api/documents/{id}/file", docHandler.DownloadFile)
	mux.HandleFunc("POST /api/documents/{id}/activity", docHandler.RecordActivity)

	// Version routes
	mux.HandleFunc("POST /api/documents/{id}/versions", versionHandler.CreateVersion)
	mux.HandleFunc("POST /api/documents/{id}/archive", versionHandler.ArchiveVersion)
	mux.HandleFunc("POST /api/documents/{id}/revert", versionHandler.RevertVersion)

	// History routes
	mux.HandleFunc("GET /api/documents/{id}/history", historyHandler.GetHistory)
	mux.HandleFunc("GET /api/documents/{id}/revisions", historyHandler.GetRevisions)

	// Category register
	mux.HandleFunc("GET /api/categories", categoriesHandler.ListCategories)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.AuthMiddleware(jwtVerifier)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server starting", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
