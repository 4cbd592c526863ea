package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/navid-fn/hotelradar/config"
	"github.com/navid-fn/hotelradar/internal/handler"
	"github.com/navid-fn/hotelradar/internal/repository"
	"github.com/navid-fn/hotelradar/internal/router"
	"github.com/navid-fn/hotelradar/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	if cfg.Server.DebugMode {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatalf("Failed to connect to price store: %v", err)
	}

	zones, err := config.LoadZones(cfg.ZonesFile)
	if err != nil {
		logger.Fatalf("Failed to load zones: %v", err)
	}
	logger.Infof("Loaded %d hotel zones from %s", len(zones), cfg.ZonesFile)

	priceRepo := repository.NewRedisPriceRepository(rdb, logger, cfg.Query.PageSize)
	userRepo := repository.NewRedisUserRepository(rdb)

	priceService := service.NewPricesService(priceRepo)
	calendarService := service.NewCalendarService(priceRepo, zones, cfg.Query, logger)
	exportService := service.NewExportService()
	authService := service.NewAuthService(userRepo, cfg.Auth, logger)

	if err := authService.EnsureAdmin(ctx); err != nil {
		logger.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	routerConfig := &router.Config{
		PriceHandler:    handler.NewPriceHandler(priceService, exportService, logger),
		CalendarHandler: handler.NewCalendarHandler(calendarService, logger),
		AuthHandler:     handler.NewAuthHandler(authService, logger),
		AdminHandler:    handler.NewAdminHandler(authService, logger),
		HealthHandler:   handler.NewHealthHandler(priceRepo),
		AuthService:     authService,
	}

	r := router.NewRouter(routerConfig)

	logger.Infof("Listening on :%s", cfg.Server.Port)
	if err := r.Run(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
