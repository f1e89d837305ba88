package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ethicraft/club-portal/internal/config"
	"github.com/ethicraft/club-portal/internal/database"
	"github.com/ethicraft/club-portal/internal/middleware"
	"github.com/ethicraft/club-portal/internal/routes"
	"github.com/ethicraft/club-portal/internal/store"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := database.BackfillSessionCodes(db, cfg.SessionCodeLength); err != nil {
		log.Fatalf("session code backfill failed: %v", err)
	}

	var redisClient *store.Redis
	var limiter middleware.Limiter
	if cfg.RedisAddr != "" {
		redisClient = store.NewRedis(cfg.RedisAddr)
		limiter = middleware.NewRedisWindow(redisClient.Client, cfg.RateLimitPerMin)
		log.Println("rate limiting via redis:", cfg.RedisAddr)
	} else {
		limiter = middleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, dbErr := db.DB()
		dbHealthy := dbErr == nil && sqlDB.PingContext(c.Request.Context()) == nil
		status := http.StatusOK
		if !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		body := gin.H{"status": "ok", "db": dbHealthy}
		if redisClient != nil {
			body["redis"] = redisClient.Healthy(c.Request.Context())
		}
		c.JSON(status, body)
	})

	if err := routes.Register(r, db, cfg, middleware.RateLimit(limiter)); err != nil {
		log.Fatalf("route registration failed: %v", err)
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Println("server exited with error:", err)
		os.Exit(1)
	}
}
