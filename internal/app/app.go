package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bio/internal/auth"
	"github.com/MrSnakeDoc/bio/internal/config"
	"github.com/MrSnakeDoc/bio/internal/httpserver"
	"github.com/MrSnakeDoc/bio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bio/internal/logger"
	"github.com/MrSnakeDoc/bio/internal/metrics"
	"github.com/MrSnakeDoc/bio/internal/redis"
	redisstore "github.com/MrSnakeDoc/bio/internal/store/redis"
	"github.com/MrSnakeDoc/bio/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis holds every document and account: fail fast if unavailable.
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(context.Background(), redis.Options{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		loggerClient.Errorf("Invalid session settings: %v", err)
		os.Exit(1)
	}

	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Build:            version.Get(),
		TimeNow:          time.Now,
		NewID:            uuid.NewString,
		AllowedHosts:     cfg.AllowedHosts,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		CORSOrigins:      cfg.CORSOrigins,
		AuthBurst:        cfg.AuthRateBurst,
		AuthRefillPerMin: cfg.AuthRatePerMin,
		Store:            redisstore.NewStore(redisClient),
		Tokens:           tokens,
		Metrics:          metrics.New(),
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting bio %s on %s", version.Get(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.closeRedis()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.closeRedis()
	a.logger.Info("✅ bio stopped cleanly")
	_ = a.logger.Sync()
	return nil
}

func (a *App) closeRedis() {
	if a.redisClient == nil {
		return
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Warnf("failed to close redis: %v", err)
		return
	}
	a.logger.Info("✅ Redis closed cleanly")
}
