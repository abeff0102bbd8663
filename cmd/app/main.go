package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"icecream-parlor/internal/cache"
	"icecream-parlor/internal/config"
	"icecream-parlor/internal/db"
	"icecream-parlor/internal/logger"
	"icecream-parlor/internal/maker"
	"icecream-parlor/internal/repository"
	"icecream-parlor/internal/service"
	"icecream-parlor/internal/tracing"
	httpHandler "icecream-parlor/internal/transport/http"
	kafkaTransport "icecream-parlor/internal/transport/kafka"
)

// @title           Ice Cream Parlor API
// @version         1.0
// @description     Сандей из остатков и производство партий мороженого
// @host            localhost:8080
// @BasePath        /
func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.AppName)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	shutdownTracing, err := tracing.Init(cfg.TracingEnabled)
	if err != nil {
		log.Panic("failed to init tracing", zap.Error(err))
	}
	defer shutdownTracing(context.Background())

	ctx := context.Background()

	// Хранилища: память для локального запуска, Postgres для продакшена
	var (
		recipes repository.RecipeRepository
		cartons repository.CartonRepository
	)
	switch cfg.Storage {
	case "postgres":
		pool, err := db.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Panic("failed to connect db", zap.Error(err))
		}
		defer pool.Close()
		if err := db.Migrate(ctx, pool); err != nil {
			log.Panic("failed to migrate db", zap.Error(err))
		}
		recipes = repository.NewPostgresRecipeRepository(pool)
		cartons = repository.NewPostgresCartonRepository(pool)
	default:
		recipes = repository.NewMemoryRecipeRepository()
		cartons = repository.NewMemoryCartonRepository()
		cfg.Seed = true
	}
	if cfg.Seed {
		if err := repository.Seed(ctx, recipes, cartons); err != nil {
			log.Panic("failed to seed storage", zap.Error(err))
		}
	}

	var recipeCache cache.Cache
	switch cfg.CacheBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		recipeCache = cache.NewRedisCache(client, cfg.RedisTTL, log)
	default:
		recipeCache = cache.NewMemoryCache(cfg.CacheMaxItems, log)
	}
	cache.Warm(ctx, recipeCache, recipes, cfg.CacheMaxItems, log)

	freezer := maker.NewFreezerMaker(cfg.MakerMaxIngredients, log)
	svc := service.NewParlorService(recipes, cartons, recipeCache, freezer, log, cfg.ScoopsPerCarton)

	// Контекст graceful shutdown по сигналам
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Второй сигнал — принудительный выход
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutdown signal received")
		stop()
		<-sigCh
		log.Warn("second signal received, forcing exit")
		_ = log.Sync()
		os.Exit(1)
	}()

	var (
		wg        sync.WaitGroup
		producer  *kafkaTransport.Producer
		consumer  *kafkaTransport.Consumer
		publisher httpHandler.BatchPublisher
	)
	if cfg.KafkaEnabled {
		producer = kafkaTransport.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		consumer = kafkaTransport.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, svc, log)
		publisher = producer

		wg.Go(func() {
			if err := consumer.Run(shutdownCtx); err != nil && err != context.Canceled {
				log.Error("consumer stopped with error", zap.Error(err))
				stop()
			} else {
				log.Info("consumer stopped")
			}
		})
	}

	r := gin.Default()
	h := httpHandler.NewHandler(svc, publisher, log)
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-shutdownCtx.Done()
	log.Info("shutting down")

	// HTTP останавливаем первым: обработчики ещё могут публиковать в Kafka
	httpShutdownCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := srv.Shutdown(httpShutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}

	wg.Wait()

	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Error("consumer close error", zap.Error(err))
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("producer close error", zap.Error(err))
		}
	}
}
