package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stationhub/internal/auth"
	"stationhub/internal/config"
	"stationhub/internal/database"
	"stationhub/internal/httpapi"
	"stationhub/internal/logger"
	"stationhub/internal/notify"
	"stationhub/internal/repository"
	"stationhub/internal/service"
	"stationhub/internal/session"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "stationhub")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	sessions := session.NewRedisStore(redisClient, cfg.Session.TTL)
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	notifier := notify.NewWebhookNotifier(cfg.Webhook.URL, log)

	companiesRepo := repository.NewPostgresCompaniesRepo(db)
	usersRepo := repository.NewPostgresUsersRepo(db)
	stationsRepo := repository.NewPostgresStationsRepo(db)
	devicesRepo := repository.NewPostgresDevicesRepo(db)
	sensorDataRepo := repository.NewPostgresSensorDataRepo(db)
	alertsRepo := repository.NewPostgresAlertsRepo(db)
	alertRulesRepo := repository.NewPostgresAlertRulesRepo(db)
	dashboardRepo := repository.NewPostgresDashboardRepo(db)

	authService := service.NewAuthService(usersRepo, companiesRepo, hasher, log)
	stationService := service.NewStationService(stationsRepo, devicesRepo, sensorDataRepo, log)
	deviceService := service.NewDeviceService(devicesRepo, stationsRepo, log)
	sensorDataService := service.NewSensorDataService(sensorDataRepo, devicesRepo, log)
	alertService := service.NewAlertService(alertsRepo, stationsRepo, devicesRepo, notifier, log)
	alertRuleService := service.NewAlertRuleService(alertRulesRepo, log)
	userService := service.NewUserService(usersRepo, log)
	dashboardService := service.NewDashboardService(dashboardRepo)

	mw := httpapi.NewSessionMiddleware(sessions, usersRepo, log)
	router := httpapi.NewRouter(log)
	router.RegisterRoutes(httpapi.Handlers{
		Auth:       httpapi.NewAuthHandler(authService, sessions, cfg.Session.TTL, log),
		Stations:   httpapi.NewStationHandler(stationService, deviceService, log),
		Devices:    httpapi.NewDeviceHandler(deviceService, log),
		SensorData: httpapi.NewSensorDataHandler(sensorDataService, log),
		Export:     httpapi.NewExportHandler(sensorDataService, log),
		Alerts:     httpapi.NewAlertHandler(alertService, log),
		AlertRules: httpapi.NewAlertRuleHandler(alertRuleService, log),
		Users:      httpapi.NewUserHandler(userService, log),
		Dashboard:  httpapi.NewDashboardHandler(dashboardService, log),
	}, mw)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("Server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
}
