package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RaikyD/wb-shipping-service/internal/application"
	"github.com/RaikyD/wb-shipping-service/internal/auth"
	"github.com/RaikyD/wb-shipping-service/internal/config"
	"github.com/RaikyD/wb-shipping-service/internal/kafka"
	"github.com/RaikyD/wb-shipping-service/internal/logger"
	"github.com/RaikyD/wb-shipping-service/internal/migrate"
	"github.com/RaikyD/wb-shipping-service/internal/presentation"
	"github.com/RaikyD/wb-shipping-service/internal/repository"
	"github.com/RaikyD/wb-shipping-service/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init(false)
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}
	logger.Init(cfg.PRODUCTION)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(cfg.DB_STRING); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	// DB pool
	pool, err := pgxpool.New(ctx, cfg.DB_STRING)
	if err != nil {
		logger.Error("pgxpool new failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("db ping failed", "err", err)
		os.Exit(1)
	}
	logger.Info("db connected")

	// Wiring
	orders := repository.NewOrderRepository(pool)
	items := repository.NewItemRepository(pool)
	volumes := repository.NewVolumeRepository(pool)
	closures := repository.NewClosureRepository(pool)
	weights := repository.NewWeightRepository(pool)
	users := repository.NewUserRepository(pool)

	var events application.EventPublisher
	if cfg.KafkaEnabled() {
		prod := kafka.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_EVENTS_TOPIC)
		defer prod.Close()
		events = prod
	} else {
		logger.Warn("KAFKA_BROKERS not set, shipment events and order ingest disabled")
	}

	ordersSvc := application.NewOrdersService(orders, items)
	separationSvc := application.NewSeparationService(orders, items, volumes)
	shippingSvc := application.NewShippingService(orders, items, volumes, weights, events)
	closureSvc := application.NewClosureService(orders, items, volumes, closures, events)
	authSvc := auth.NewService(users, cfg.SESSION_TTL)

	// Kafka consumer (upstream orders into the store)
	if cfg.KafkaEnabled() {
		if _, err := kafka.StartConsumer(ctx, ordersSvc, kafka.ConsumerConfig{
			Brokers: cfg.KAFKA_BROKERS,
			Topic:   cfg.KAFKA_TOPIC,
			GroupID: cfg.KAFKA_GROUP_ID,
		}); err != nil {
			logger.Error("kafka consumer failed", "err", err)
			os.Exit(1)
		}
	}

	photos, err := storage.NewDiskStore(cfg.PHOTO_DIR, cfg.PHOTO_BASE_URL, cfg.PHOTO_MAX_BYTES)
	if err != nil {
		logger.Error("photo store failed", "err", err)
		os.Exit(1)
	}

	r := presentation.NewRouter(presentation.Handlers{
		Auth:     presentation.NewAuthHandler(authSvc),
		Orders:   presentation.NewOrdersHandler(ordersSvc, separationSvc),
		Shipping: presentation.NewShippingHandler(shippingSvc, closureSvc),
		Photos:   presentation.NewPhotosHandler(photos),
		PhotoDir: cfg.PHOTO_DIR,
		DB:       pool,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTP_PORT,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("starting http", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server crashed", "err", err)
		os.Exit(1)
	}
	logger.Info("http server stopped")
}
