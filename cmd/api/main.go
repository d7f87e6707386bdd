package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danang-express/delivery-system/internal/api"
	"github.com/danang-express/delivery-system/internal/core/service"
	"github.com/danang-express/delivery-system/internal/infrastructure/db/mongo"
	"github.com/danang-express/delivery-system/internal/infrastructure/db/redis"
	"github.com/danang-express/delivery-system/internal/infrastructure/email"
	"github.com/danang-express/delivery-system/internal/infrastructure/maps"
	"github.com/danang-express/delivery-system/internal/infrastructure/queue"
	"github.com/danang-express/delivery-system/internal/pkg/config"
	"github.com/danang-express/delivery-system/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- External resources ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	deliveryRepo := mongo.NewDeliveryRepository(db)
	courierRepo := mongo.NewCourierRepository(db)
	authRepo := mongo.NewAuthRepository(db)

	if err := deliveryRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure delivery indexes")
	}
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure user indexes")
	}

	// --- Providers ---
	map4d := maps.NewClient(maps.Config{
		APIKey:  cfg.Map4D.APIKey,
		BaseURL: cfg.Map4D.BaseURL,
		Timeout: cfg.Map4D.Timeout,
	}, log)
	geocoder := maps.NewCachedGeocoder(map4d, redis.NewGeocodeCache(rdb), log)
	notifier := email.NewNotifier(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, log)

	// --- Services ---
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	deliveryService := service.NewDeliveryService(deliveryRepo, log)
	zoneService := service.NewZoneService(deliveryRepo, cfg.InnerDistricts, log)
	assignmentService := service.NewAssignmentService(deliveryRepo, courierRepo, log)
	statusService := service.NewStatusService(deliveryRepo, notifier, log)
	routeService := service.NewRouteService(geocoder, map4d, log)

	dispatcher := queue.NewDispatcher(cfg.ReportWorkers, statusService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Auth:        authService,
		Deliveries:  deliveryService,
		Zones:       zoneService,
		Assignments: assignmentService,
		Status:      statusService,
		Routes:      routeService,
		Dispatcher:  dispatcher,
		Mongo:       db,
		Redis:       rdb,
		JWTSecret:   cfg.JWTSecret,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting delivery fulfillment API")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
