// pillbot - medicine reminder chat service
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avoronin/pillbot/internal/api"
	"github.com/avoronin/pillbot/internal/bot"
	"github.com/avoronin/pillbot/internal/chat"
	"github.com/avoronin/pillbot/internal/config"
	"github.com/avoronin/pillbot/internal/dialogue"
	"github.com/avoronin/pillbot/internal/identity"
	"github.com/avoronin/pillbot/internal/middleware"
	"github.com/avoronin/pillbot/internal/regimen"
	"github.com/avoronin/pillbot/internal/reminder"
	"github.com/avoronin/pillbot/internal/status"
	"github.com/avoronin/pillbot/internal/store"
	"github.com/avoronin/pillbot/web"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment(), "reminder_hour", cfg.ReminderHour)

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	// Initialize services. Regimen state is in-memory for the process
	// lifetime; only identity and the message journal persist.
	sessions := regimen.NewStore()
	gw := chat.NewGateway()
	notifier := chat.NewNotifier(gw, repo)
	scheduler := reminder.NewScheduler(sessions, notifier, cfg.ReminderHour)
	engine := dialogue.NewEngine(sessions, scheduler)
	reporter := status.NewReporter(sessions)

	var journalRepo store.Repository
	if cfg.JournalEnabled {
		journalRepo = repo
	}
	router := bot.NewRouter(engine, reporter, sessions, journalRepo)

	// Initialize handlers.
	baseHandler := api.NewHandler(repo, sessions, reporter)
	botHandler := api.NewBotHandler(baseHandler, router)
	chatHandler := chat.NewHandler(gw, router, cfg.FrontendURL, cfg.IsDevelopment())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(identity.Middleware(repo, cfg.IsDevelopment()))

	botHandler.RegisterRoutes(r)

	// WebSocket endpoint.
	r.Get("/ws/chat", chatHandler.ServeHTTP)

	// Serve embedded frontend (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	// Create server.
	// Note: WebSocket connections require long write windows (no WriteTimeout).
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	// Start reminder worker.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
