package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-marketplace/internal/application/command"
	"auction-marketplace/internal/application/eventhandler"
	"auction-marketplace/internal/application/query"
	"auction-marketplace/internal/config"
	"auction-marketplace/internal/domain/event"
	"auction-marketplace/internal/infrastructure/bus"
	httphandler "auction-marketplace/internal/infrastructure/http"
	"auction-marketplace/internal/infrastructure/messaging"
	mongostore "auction-marketplace/internal/infrastructure/mongo"
	"auction-marketplace/internal/infrastructure/outbox"
	"auction-marketplace/pkg/logger"
	"auction-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
)

const notificationsChannel = "marketplace_notifications"

func main() {
	log := logger.New()

	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found or could not be loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", "error", err)
	}

	// Storage
	mongoClient, err := mongostore.NewClient(&mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer func() {
		if err := mongoClient.Close(); err != nil {
			log.Error("failed to close MongoDB connection", "error", err)
		}
	}()
	log.Info("connected to MongoDB", "database", cfg.Mongo.Database)

	uowFactory := mongostore.NewUnitOfWorkFactory(mongoClient.Client(), mongoClient.Database())

	// Producers
	messageProducer, err := messaging.NewRabbitProducer(cfg.Rabbit.URL, log)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", "error", err)
	}
	defer messageProducer.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	notificationProducer := messaging.NewRedisNotifier(redisClient, notificationsChannel, log)
	defer notificationProducer.Close()

	// Event dispatch registry
	eventBus := bus.NewInMemoryEventBus()
	eventBus.Subscribe(event.KindBidPlaced, eventhandler.NewBidPlacedHandler(messageProducer, log))
	eventBus.Subscribe(event.KindMemberRated, eventhandler.NewMemberRatedHandler(messageProducer, log))
	eventBus.Subscribe(event.KindMemberRegistered, eventhandler.NewMemberRegisteredHandler(notificationProducer, log))
	eventBus.Subscribe(event.KindAuctionCreated, eventhandler.NewAuctionCreatedHandler(notificationProducer, log))

	// Command and query handlers
	auctionController := httphandler.NewAuctionController(
		command.NewCreateAuctionHandler(uowFactory),
		command.NewPlaceBidHandler(uowFactory),
		command.NewChangeAuctionTitleHandler(uowFactory),
		command.NewChangeAuctionDescriptionHandler(uowFactory),
		command.NewChangeAuctionImageHandler(uowFactory),
		query.NewGetAuctionHandler(uowFactory),
		query.NewListAuctionsHandler(uowFactory),
	)
	memberController := httphandler.NewMemberController(
		command.NewRegisterMemberHandler(uowFactory),
		command.NewRateMemberHandler(uowFactory),
		command.NewChangeMemberEmailHandler(uowFactory),
		command.NewChangeMemberPhoneHandler(uowFactory),
		command.NewChangeMemberNameHandler(uowFactory),
		command.NewChangeMemberAddressHandler(uowFactory),
		query.NewGetMemberHandler(uowFactory),
		query.NewListMembersHandler(uowFactory),
	)

	// Outbox publisher, one instance
	publisher := outbox.NewPublisher(uowFactory, eventBus, cfg.Outbox.PollInterval, log)
	publisherCtx, stopPublisher := context.WithCancel(context.Background())
	defer stopPublisher()
	go publisher.Start(publisherCtx)

	// HTTP facade
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recoverer(log))
	auctionController.RegisterRoutes(router)
	memberController.RegisterRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	stopPublisher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
	}
}
