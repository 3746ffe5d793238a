package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/edu-platform/config"
	"github.com/oksasatya/edu-platform/internal/container"
	"github.com/oksasatya/edu-platform/internal/infrastructure/store"
	"github.com/oksasatya/edu-platform/internal/interface/middleware"
	"github.com/oksasatya/edu-platform/internal/router"
	"github.com/oksasatya/edu-platform/pkg/helpers"
	"github.com/oksasatya/edu-platform/pkg/metrics"
	"github.com/oksasatya/edu-platform/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	st, closeStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeStore()
	logger.WithField("driver", cfg.StoreDriver).Info("store ready")

	deps := container.Deps{Config: cfg, Logger: logger, Store: st}

	// Redis backs sessions, rate limits and reset tokens.
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := pingRedis(ctx, rdb); err != nil {
		if cfg.Env == "production" {
			logger.Fatalf("redis unavailable: %v", err)
		}
		logger.WithError(err).Warn("redis unavailable: sessions, rate limits and password reset disabled")
	} else {
		deps.Redis = rdb
	}

	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		deps.Storage = &helpers.GCSUploader{Client: gcsClient, Bucket: cfg.GCSBucket}
	}

	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable: emails will not be queued")
		} else {
			defer pub.Close()
			deps.Publisher = pub
		}
	}

	if cfg.SearchEnabled {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable: search disabled")
		} else {
			deps.Index = &helpers.ContentIndex{Client: es, Index: cfg.ESContentIndex}
		}
	}

	c := container.New(deps)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP(), metrics.Middleware())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	reg := router.NewRegistry(r)
	router.InitModules(reg, c)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	logger.Info("server exited properly")
}

func pingRedis(ctx context.Context, rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return rdb.Ping(ctx).Err()
}

