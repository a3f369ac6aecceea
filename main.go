package main

import (
	"net/http"

	"github.com/example/tripmatch/config"
	"github.com/example/tripmatch/internal/cache"
	"github.com/example/tripmatch/internal/events"
	"github.com/example/tripmatch/internal/fanout"
	"github.com/example/tripmatch/internal/handler"
	"github.com/example/tripmatch/internal/logging"
	"github.com/example/tripmatch/internal/middleware"
	"github.com/example/tripmatch/internal/repository"
	"github.com/example/tripmatch/internal/service"
	"github.com/example/tripmatch/pkg/database"
	"github.com/example/tripmatch/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(cfg.LogLevel)

	db := database.NewPostgresDB(cfg.DSN())

	// Publisher for transition events; the fanout consumer drains the
	// same exchange.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		panic(err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, logger)
	if err != nil {
		logger.Error("failed to start RabbitMQ consumer", "error", err)
		panic(err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		logger.Error("failed to start consuming", "error", err)
		panic(err)
	}

	pending := cache.NewPendingCounts(cfg.RedisAddr, cfg.RedisPassword)
	defer pending.Close()

	// Repositories
	tripRepo := repository.NewTripRepository(db)
	swipeRepo := repository.NewSwipeRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRoomRepository(db)

	emitter := events.NewAMQPEmitter(publisher, logger)

	fanout.NewConsumer(db, chatRepo, logger).Start(msgs)

	// Services
	tripSvc := service.NewTripService(tripRepo, matchRepo, userRepo, emitter)
	swipeSvc := service.NewSwipeService(swipeRepo, tripRepo, userRepo, emitter)
	matchSvc := service.NewMatchService(matchRepo, tripRepo, swipeRepo, userRepo, chatRepo, pending, emitter)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorHandler(logger)
	e.Validator = middleware.NewRequestValidator()
	e.Use(echoMw.Recover())
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(middleware.Metrics())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "tripmatch"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", middleware.JWTAuth(cfg.JWTSecret))
	trips := api.Group("/trips")
	handler.NewTripHandler(tripSvc).RegisterRoutes(trips)
	handler.NewSwipeHandler(swipeSvc).RegisterRoutes(api, trips)
	handler.NewMatchHandler(matchSvc).RegisterRoutes(api, trips)

	logger.Info("tripmatch service starting", "port", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
