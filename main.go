package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spiritually/spiritually/internal/domain"
	"github.com/spiritually/spiritually/internal/handler"
	"github.com/spiritually/spiritually/internal/provider/openai"
	"github.com/spiritually/spiritually/internal/repository/sqlite"
	"github.com/spiritually/spiritually/internal/service"
)

func main() {
	// Load a local .env when present; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, logOpts)))

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "spiritually.db")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(jwtSecret) < 32 {
		slog.Error("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	bcryptCost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid BCRYPT_COST", "error", err)
			os.Exit(1)
		}
		if parsed < 4 || parsed > 14 {
			slog.Error("BCRYPT_COST must be between 4 and 14", "value", parsed)
			os.Exit(1)
		}
		bcryptCost = parsed
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		slog.Warn("OPENAI_API_KEY is not set; chat requests will fail upstream")
	}
	providerOpts := []openai.Option{}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		providerOpts = append(providerOpts, openai.WithBaseURL(baseURL))
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		providerOpts = append(providerOpts, openai.WithModel(model))
	}

	chatRequiresAuth := os.Getenv("CHAT_REQUIRE_AUTH") == "true"
	chatRate := envFloat("CHAT_RATE", 0.2) // one chat turn per 5s sustained
	chatBurst := envFloat("CHAT_BURST", 5)

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	traditionRepos := map[domain.Kind]domain.TraditionRepository{}
	for _, c := range domain.Collections {
		traditionRepos[c.Kind] = db.Traditions(c.Kind)
	}

	authService := service.NewAuthService(db.Users(), jwtSecret, bcryptCost)
	knowledgeService := service.NewKnowledgeService(traditionRepos)
	chatService := service.NewChatService(knowledgeService, openai.New(apiKey, providerOpts...))

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, knowledgeService, chatService, handler.Options{
		ChatRequiresAuth: chatRequiresAuth,
		ChatLimiter:      service.NewRateLimiter(chatRate, chatBurst),
	})

	root := handler.SecurityHeaders(handler.CORS(os.Getenv("ALLOWED_ORIGIN"), mux))

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func envFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil || parsed <= 0 {
		slog.Error("invalid value, must be a positive number", "key", key, "value", v)
		os.Exit(1)
	}
	return parsed
}
