package main

import (
	"log"
	"time"

	"github.com/expohall/expo-booking-service/config"
	"github.com/expohall/expo-booking-service/internal/cache"
	"github.com/expohall/expo-booking-service/internal/handler"
	"github.com/expohall/expo-booking-service/internal/middleware"
	"github.com/expohall/expo-booking-service/internal/repository"
	"github.com/expohall/expo-booking-service/internal/service"
	"github.com/expohall/expo-booking-service/pkg/database"
	"github.com/expohall/expo-booking-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Redis is optional: without it availability is recomputed per request.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	availCache := cache.New(redisClient, time.Duration(cfg.CacheTTLSecs)*time.Second)

	// Repositories
	venueRepo := repository.NewVenueRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	linkRepo := repository.NewLinkRepository(db)

	// Services
	linkSvc := service.NewLinkService(linkRepo, cfg.LinkSecret)
	venueSvc := service.NewVenueService(venueRepo, reservationRepo, availCache)
	reservationSvc := service.NewReservationService(reservationRepo, venueRepo, linkRepo, publisher, availCache)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "expo-booking-service"})
	})

	handler.NewVenueHandler(venueSvc).RegisterRoutes(e)
	handler.NewLinkHandler(linkSvc).RegisterRoutes(e)
	handler.NewReservationHandler(reservationSvc, linkSvc).RegisterRoutes(e)

	log.Printf("Expo Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
