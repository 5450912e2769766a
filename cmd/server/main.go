package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/nhnamdev/food_delivery/internal/cache"
	"github.com/nhnamdev/food_delivery/internal/config"
	"github.com/nhnamdev/food_delivery/internal/db"
	"github.com/nhnamdev/food_delivery/internal/es"
	"github.com/nhnamdev/food_delivery/internal/events"
	"github.com/nhnamdev/food_delivery/internal/httpserver"
	"github.com/nhnamdev/food_delivery/internal/logging"
	"github.com/nhnamdev/food_delivery/internal/repo"
	"github.com/nhnamdev/food_delivery/internal/service/cart"
	"github.com/nhnamdev/food_delivery/internal/service/catalog"
	"github.com/nhnamdev/food_delivery/internal/service/order"
	"github.com/nhnamdev/food_delivery/internal/service/review"
	"github.com/nhnamdev/food_delivery/internal/service/user"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("elasticsearch_unavailable", "error", err)
			esClient = nil
		}
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	redisCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	gormRepo := &repo.GormRepo{DB: gormDB}

	userSvc := &user.Service{Repo: gormRepo}
	cartSvc := &cart.Service{Repo: gormRepo}
	catalogSvc := &catalog.Service{Repo: gormRepo, Cache: redisCache, ES: esClient}
	orderEngine := &order.Engine{Repo: gormRepo, Events: producer}
	reviewSvc := &review.Service{Repo: gormRepo, Events: producer}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(httpserver.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		Auth:    &httpserver.AuthHTTP{Svc: userSvc, JWTSecret: cfg.JWTSecret},
		Cart:    &httpserver.CartHTTP{Svc: cartSvc, JWTSecret: cfg.JWTSecret},
		Catalog: &httpserver.CatalogHTTP{Svc: catalogSvc, JWTSecret: cfg.JWTSecret},
		Order:   &httpserver.OrderHTTP{Engine: orderEngine, JWTSecret: cfg.JWTSecret},
		Review:  &httpserver.ReviewHTTP{Svc: reviewSvc, JWTSecret: cfg.JWTSecret},
	})

	go func() {
		addr := ":" + strconv.Itoa(cfg.ServerPort)
		logger.Info("server_starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("server_shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo_shutdown", "error", err)
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka_close", "error", err)
	}
	if err := redisCache.Close(); err != nil {
		logger.Error("redis_close", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("server_stopped")
}
