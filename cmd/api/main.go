package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sitecrew/internal/config"
	"sitecrew/internal/handler"
	"sitecrew/internal/httpmiddleware"
	"sitecrew/internal/logging"
	"sitecrew/internal/seed"
	"sitecrew/internal/treestore"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogFile)

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		logging.Logger.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := seed.EnsureDefaults(ctx, st, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		// the server still comes up; seeding retries on next start
		logging.Logger.WithError(err).Error("seeding defaults failed")
	}

	h := handler.New(st)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewRateLimiter(cfg.RateLimitPerMin).Middleware())
	r.Use(httpmiddleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handler.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Logger.Infof("starting server on :%s (store=%s)", cfg.HTTPPort, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Warnf("server forced shutdown: %v", err)
	}

	logging.Logger.Info("server exited")
	return nil
}

// openStore picks the configured backend. Remote backends get the circuit
// breaker when enabled; memory and sqlite stay bare.
func openStore(cfg config.App) (treestore.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return treestore.NewMemory(), nil
	case "sqlite":
		return treestore.NewSQLite(cfg.SQLitePath)
	case "redis":
		st, err := treestore.NewRedis(cfg.RedisAddr, "")
		if err != nil {
			return nil, err
		}
		if cfg.StoreBreaker {
			return treestore.WithBreaker(st, "redis"), nil
		}
		return st, nil
	case "postgres":
		st, err := treestore.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.StoreBreaker {
			return treestore.WithBreaker(st, "postgres"), nil
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
