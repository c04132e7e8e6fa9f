package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"freight-tms/internal/config"
	"freight-tms/internal/events"
	"freight-tms/internal/infrastructure/database/postgres"
	"freight-tms/internal/ingestion"
	"freight-tms/internal/logger"
	"freight-tms/internal/routes"
	loadUsecase "freight-tms/internal/usecase/load"
	pkgmqtt "freight-tms/pkg/mqtt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application", zap.String("environment", env))

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is missing. Please set JWT_SECRET environment variable.")
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	loadRepo := postgres.NewLoadRepository(db)
	stopRepo := postgres.NewStopRepository(db)
	offerRepo := postgres.NewOfferRepository(db)
	trackingRepo := postgres.NewTrackingRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)

	publisher := events.NewPublisher(0)
	defer publisher.Close()
	publisher.Subscribe(func(e events.Event) {
		logger.Info("domain event",
			zap.String("event", string(e.Type)),
			zap.String("load_id", e.LoadID.String()),
			zap.String("old_status", string(e.OldStatus)),
			zap.String("new_status", string(e.NewStatus)),
		)
	})

	service := loadUsecase.NewService(loadRepo, stopRepo, offerRepo, trackingRepo, companyRepo, publisher)

	sweeper := loadUsecase.NewOfferSweeper(offerRepo, cfg.Sweeper.OfferExpirySchedule)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start offer expiry sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	// MQTT tracking ingestion is optional; without a broker the REST
	// tracking endpoint is the only ping source.
	var processor *ingestion.Processor
	var mqttClient *ingestion.MQTTIngestionClient
	if cfg.MQTT.Broker != "" {
		processor = ingestion.NewProcessor(
			loadRepo,
			trackingRepo,
			cfg.MQTT.BatchSize,
			cfg.MQTT.WorkerCount,
			cfg.MQTT.BufferSize,
			time.Duration(cfg.MQTT.BatchTimeout)*time.Second,
		)
		processor.Start()
		defer processor.Stop()

		mqttClient, err = ingestion.NewMQTTIngestionClient(&ingestion.MQTTIngestionConfig{
			ClientConfig: &pkgmqtt.Config{
				Broker:               cfg.MQTT.Broker,
				ClientID:             cfg.MQTT.ClientID,
				Username:             cfg.MQTT.Username,
				Password:             cfg.MQTT.Password,
				CleanSession:         true,
				KeepAlive:            30,
				ConnectTimeout:       10,
				AutoReconnect:        true,
				MaxReconnectInterval: time.Minute,
			},
			TrackingTopic: cfg.MQTT.TrackingTopic,
			QoS:           byte(cfg.MQTT.QoS),
		}, processor)
		if err != nil {
			logger.Fatal("Failed to build MQTT ingestion client", zap.Error(err))
		}
		if err := mqttClient.Start(); err != nil {
			logger.Fatal("Failed to start MQTT ingestion", zap.Error(err))
		}
		defer mqttClient.Stop()
	}

	router := routes.SetupRoutes(cfg, db, service, processor)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Failed to shutdown server", zap.Error(err))
	}

	logger.Info("Server exited properly")
}
