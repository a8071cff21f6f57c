package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/dugout/internal/analyzer"
	"github.com/stitts-dev/dugout/internal/api"
	"github.com/stitts-dev/dugout/internal/api/handlers"
	"github.com/stitts-dev/dugout/internal/providers/mlb"
	"github.com/stitts-dev/dugout/internal/services"
	"github.com/stitts-dev/dugout/internal/statcast"
	"github.com/stitts-dev/dugout/pkg/circuitbreaker"
	"github.com/stitts-dev/dugout/pkg/config"
	"github.com/stitts-dev/dugout/pkg/database"
	"github.com/stitts-dev/dugout/pkg/logger"
)

const (
	version               = "1.0.0"
	circuitBreakerTimeout = 30 * time.Second
	retryBackoff          = 500 * time.Millisecond
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	log := logger.WithService(cfg.ServiceName)
	log.WithFields(logrus.Fields{
		"version":     version,
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting dugout")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// The schedule cache is optional; without redis every request goes upstream.
	var scheduleCache services.ScheduleCache
	var cacheService *services.CacheService
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.WithError(err).Warn("Redis unavailable, schedule caching disabled")
		redisClient.Close()
	} else {
		cacheService = services.NewCacheService(redisClient, structuredLogger)
		scheduleCache = cacheService
		defer redisClient.Close()
	}
	cancelPing()

	breakers := circuitbreaker.NewCircuitBreakerService(cfg.CircuitBreakerThreshold, circuitBreakerTimeout, structuredLogger)

	mlbClient := mlb.NewClient(mlb.ClientConfig{
		BaseURL:      cfg.MLBAPIBaseURL,
		Timeout:      cfg.ExternalAPITimeout,
		RateLimit:    cfg.MLBRateLimit,
		MaxRetries:   cfg.ExternalAPIRetries,
		RetryBackoff: retryBackoff,
	}, breakers, structuredLogger)

	claudeClient := services.NewClaudeClient(services.ClaudeConfig{
		APIKey:       cfg.AnthropicAPIKey,
		BaseURL:      cfg.AnthropicBaseURL,
		Model:        cfg.AIModel,
		MaxTokens:    cfg.AIMaxTokens,
		Temperature:  cfg.AITemperature,
		RateLimit:    cfg.AIRateLimit,
		Timeout:      cfg.ExternalAPITimeout * 3,
		MaxRetries:   cfg.ExternalAPIRetries,
		RetryBackoff: retryBackoff,
	}, breakers, structuredLogger)
	if cfg.AnthropicAPIKey == "" {
		log.Warn("ANTHROPIC_API_KEY is not set, generation requests will fail")
	}

	statcastService := statcast.NewService(statcast.NewGormRepository(db.DB), structuredLogger)
	matchups := services.NewMatchupService(statcastService, mlbClient, structuredLogger)
	snapshots := services.NewGameContextBuilder(mlbClient, structuredLogger)
	resolver := services.NewDataResolver(snapshots, mlbClient, matchups, structuredLogger)

	commentary := services.NewCommentaryService(services.CommentaryDeps{
		Analyzer:        analyzer.New(),
		Resolver:        resolver,
		Snapshots:       snapshots,
		Plays:           mlbClient,
		Matchups:        matchups,
		Prompts:         services.NewPromptBuilder(),
		Generator:       claudeClient,
		DefaultLanguage: cfg.DefaultLanguage,
	}, structuredLogger)

	schedule := services.NewScheduleService(mlbClient, scheduleCache, cfg.ScheduleCacheTTL, cfg.ScheduleFallbackDate, structuredLogger)
	warmer := services.NewScheduleWarmer(schedule, cfg.ScheduleRefreshInterval, structuredLogger)
	if err := warmer.Start(); err != nil {
		log.Fatalf("Failed to start schedule warmer: %v", err)
	}

	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error { return db.HealthCheck() }),
		"redis":    nil,
	}
	if cacheService != nil {
		checks["redis"] = cacheService
	}

	router := api.NewRouter(api.Handlers{
		Chat:   handlers.NewChatHandler(commentary, structuredLogger),
		Games:  handlers.NewGameHandler(schedule, snapshots, commentary, structuredLogger),
		Stats:  handlers.NewStatsHandler(matchups, structuredLogger),
		Health: handlers.NewHealthHandler(cfg.ServiceName, version, checks, breakers, structuredLogger),
	}, structuredLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	<-warmer.Stop().Done()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
