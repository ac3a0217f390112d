package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpadapter "github.com/askgate/askgate/internal/adapter/http"
	"github.com/askgate/askgate/internal/adapter/postgres"
	"github.com/askgate/askgate/internal/config"
	"github.com/askgate/askgate/internal/provider"
	"github.com/askgate/askgate/internal/service/jwt"
	"github.com/askgate/askgate/internal/service/logger"
	"github.com/askgate/askgate/internal/service/password"
	"github.com/askgate/askgate/internal/service/session"
	"github.com/askgate/askgate/internal/usecase"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	structuredLogger := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "askgate",
	})
	structuredLogger.Info("application starting", map[string]interface{}{
		"environment": cfg.Server.Environment,
	})

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxConns)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}
	structuredLogger.Info("database connection established", map[string]interface{}{
		"host": cfg.Database.Host,
		"name": cfg.Database.DBName,
	})

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to ping redis: %v", err)
	}
	defer redisClient.Close()

	// repositories
	exchangeRepo := postgres.NewExchangeRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// services
	tokenService, err := jwt.NewService(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	if err != nil {
		log.Fatalf("failed to initialize token service: %v", err)
	}
	passwordService := password.NewBcryptService(cfg.Security.BcryptCost)
	sessionStore := session.NewRedisStore(redisClient)

	router, err := buildRouter(cfg)
	if err != nil {
		log.Fatalf("failed to build provider router: %v", err)
	}
	structuredLogger.Info("provider router ready", map[string]interface{}{
		"providers": router.Names(),
		"default":   router.Default(),
	})

	// usecases
	chatUseCase := usecase.NewChatUseCase(router, exchangeRepo, cfg.AI.RequestTimeout)
	adminUseCase := usecase.NewAdminUseCase(exchangeRepo, userRepo, auditRepo)
	authUseCase := usecase.NewAuthUseCase(userRepo, auditRepo, tokenService, passwordService, sessionStore, tokenService.TTL())
	userUseCase := usecase.NewUserUseCase(userRepo, auditRepo, passwordService)

	// http server
	authMiddleware := httpadapter.NewAuthMiddleware(tokenService, sessionStore)
	server := httpadapter.NewServer(
		httpadapter.ServerConfig{
			Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		structuredLogger,
		httpadapter.NewAuthHandler(authUseCase, authMiddleware),
		httpadapter.NewChatHandler(chatUseCase, authMiddleware),
		httpadapter.NewAdminHandler(adminUseCase, authMiddleware),
		httpadapter.NewUserHandler(userUseCase, authMiddleware),
	)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error("graceful shutdown failed", err, nil)
	}
	structuredLogger.Info("application stopped", nil)
}

// buildRouter registers one adapter per configured vendor. In mock mode
// a single deterministic adapter replaces the real vendors.
func buildRouter(cfg *config.Config) (*provider.Router, error) {
	if cfg.AI.MockMode {
		return provider.NewRouter("mock", provider.NewMockAdapter("mock", 50*time.Millisecond))
	}

	openaiAdapter := provider.NewOpenAIAdapter(provider.Options{
		APIKey:      cfg.AI.OpenAI.APIKey,
		BaseURL:     cfg.AI.OpenAI.BaseURL,
		Model:       cfg.AI.OpenAI.Model,
		MaxTokens:   cfg.AI.MaxTokens,
		Temperature: float32(cfg.AI.Temperature),
		Timeout:     cfg.AI.RequestTimeout,
	})
	geminiAdapter := provider.NewGeminiAdapter(provider.Options{
		APIKey:      cfg.AI.Gemini.APIKey,
		BaseURL:     cfg.AI.Gemini.BaseURL,
		Model:       cfg.AI.Gemini.Model,
		MaxTokens:   cfg.AI.MaxTokens,
		Temperature: float32(cfg.AI.Temperature),
		Timeout:     cfg.AI.RequestTimeout,
	})
	return provider.NewRouter(cfg.AI.DefaultProvider, openaiAdapter, geminiAdapter)
}
