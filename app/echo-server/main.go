package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rajwen/app/echo-server/router"
	"rajwen/business/cart"
	"rajwen/business/food"
	"rajwen/business/orders"
	"rajwen/business/payments"
	userService "rajwen/business/user"
	"rajwen/internal/middleware"
	"rajwen/internal/repository/notification"
	psqlRepo "rajwen/internal/repository/postgres"
	"rajwen/internal/repository/rabbitmq"
	"rajwen/internal/repository/razorpay"
	redisRepo "rajwen/internal/repository/redis"
	"rajwen/internal/rest"
	"rajwen/pkg/config"
	"rajwen/pkg/database"
	"rajwen/pkg/logger"
	"rajwen/pkg/metrics"
	"rajwen/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Rajwen", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	razorpayRepo := razorpay.NewRazorpayRepository(
		razorpay.RazorpayConfig{
			KeyID:     cfg.Razorpay.RazorpayKeyID,
			KeySecret: cfg.Razorpay.RazorpayKeySecret,
			BaseURL:   cfg.Razorpay.RazorpayBaseUrl,
		},
	)

	// The AMQP publisher is optional; without a broker URL order events are
	// simply not published.
	var eventsPublisher orders.EventsPublisher
	var amqpPublisher *rabbitmq.Publisher
	if cfg.AMQP.URL != "" {
		amqpPublisher, err = rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			logger.Fatal("Failed to connect to AMQP broker", "error", err)
		}
		eventsPublisher = amqpPublisher
		logger.Info("AMQP broker connected successfully")
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	foodRepo := psqlRepo.NewFoodRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	paymentsRepo := psqlRepo.NewPaymentsRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(redisClient)
	cartRepo := redisRepo.NewCartRepository(redisClient)

	// Init service
	userSvc := userService.NewUserService(userRepo, validate, mailjetEmail, sessionRepo, cfg.App.AppResetKey, cfg.App.AppDeploymentUrl)
	foodSvc := food.NewFoodService(foodRepo)
	ordersSvc := orders.NewOrdersService(ordersRepo, foodRepo, userRepo, eventsPublisher, mailjetEmail)
	paymentsSvc := payments.NewPaymentsService(paymentsRepo, razorpayRepo, ordersRepo)
	cartSvc := cart.NewCartService(cartRepo, foodRepo, ordersSvc)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	foodHandler := rest.NewFoodHandler(foodSvc)
	ordersHandler := rest.NewOrdersHandler(ordersSvc)
	paymentsHandler := rest.NewPaymentsHandler(paymentsSvc)
	cartHandler := rest.NewCartHandler(cartSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithSessions(userSvc, userSvc)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupFoodRoutes(api, foodHandler, authRequired, adminOnly)
	router.SetupOrdersRoutes(api, ordersHandler, authRequired, adminOnly)
	router.SetupPaymentsRoutes(api, paymentsHandler, authRequired)
	router.SetupCartRoutes(api, cartHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if amqpPublisher != nil {
		amqpPublisher.Close()
	}

	if err := database.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
