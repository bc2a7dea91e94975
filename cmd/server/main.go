package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/ratelimit"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

const (
	rateLimitMax    = 5
	rateLimitWindow = time.Minute
	sweepInterval   = 5 * time.Minute
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	// May be empty: the gateway connects lazily and reports a configuration
	// error on first persistence use instead of failing startup.
	dbURL := os.Getenv("DATABASE_URL")

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	gateway := repository.NewGateway(dbURL)

	limiter := ratelimit.New(rateLimitMax, rateLimitWindow)
	limiter.StartSweep(sweepInterval)

	contactRepo := repository.NewPgContactRepository(gateway)
	contactService := service.NewContactService(contactRepo)
	contactHandler := handler.NewContactHandler(contactService, limiter)
	healthHandler := handler.NewHealthHandler(gateway)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", healthHandler.Health)
	mux.HandleFunc("POST /api/contact", contactHandler.Submit)

	chain := handler.CORS(frontendURL)(handler.SecurityHeaders(handler.RequestLogger(mux)))

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      chain,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	limiter.Stop()
	gateway.Close()
}
