package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"scrapbook/internal/auth"
	"scrapbook/internal/config"
	"scrapbook/internal/handler"
	"scrapbook/internal/middleware"
	serviceVfs "scrapbook/internal/service/vfs"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging, optionally mirrored to a log file
	var out io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, "server", cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to create log file: %v", err)
		}
		defer logFile.Close()
		out = io.MultiWriter(os.Stdout, logFile)
	}

	logger := config.NewLogger(cfg, out)
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"home", cfg.Home,
	)

	// Authentication is optional: without a JWKS URL every request is served
	var jwtVerifier auth.JWTVerifier
	if cfg.JWKSURL != "" {
		verifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer verifier.Close()
		jwtVerifier = verifier
	} else {
		logger.Warn("AUTH_JWKS_URL not set - authentication disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the index backend
	storage, err := serviceVfs.SetupStorage(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup index storage: %v", err)
	}
	defer storage.Close()

	services := serviceVfs.SetupServices(storage, cfg, logger)

	// Mount on startup so the index and data directory exist
	result, err := services.Mount.Mount(ctx)
	if err != nil {
		log.Fatalf("Failed to mount scrapbook: %v", err)
	}
	logger.Info("services initialized",
		"index_created", result.IndexCreated,
		"added", len(result.Added),
		"pruned", len(result.Pruned),
	)

	mux := handler.NewRouter(services, logger)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestID → Recovery → Logging → Auth → Routes
	h = middleware.AuthMiddleware(jwtVerifier, logger)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestID()(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
