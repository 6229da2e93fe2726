package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"

	"pitchbook/config"
	"pitchbook/cron"
	"pitchbook/database"
	bookingRepoPkg "pitchbook/database/repository/booking"
	futsalRepoPkg "pitchbook/database/repository/futsal"
	notificationRepoPkg "pitchbook/database/repository/notification"
	userRepoPkg "pitchbook/database/repository/user"
	"pitchbook/events"
	"pitchbook/handlers"
	"pitchbook/routes"
	"pitchbook/services/booking"
	"pitchbook/services/futsal"
	"pitchbook/services/notification"
	"pitchbook/services/storage"
	"pitchbook/services/user"
	"pitchbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	var storageService storage.StorageService
	if config.AppConfig.CloudinaryURL != "" {
		cld, err := cloudinary.NewFromURL(config.AppConfig.CloudinaryURL)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize cloudinary: %v", err)
		}
		storageService = storage.NewCloudinaryStorage(cld)
	}

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	futsalRepo := futsalRepoPkg.NewMongoFutsalRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	if err := futsalRepo.EnsureIndexes(context.Background()); err != nil {
		logger.Sugar().Warnf("main: failed to ensure futsal indexes: %v", err)
	}

	// services.
	hub := notification.NewHub()
	notificationService, err := notification.NewDefaultNotificationService(notificationRepo, hub)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	userService := &user.DefaultUserService{
		Repo: userRepo,
		Hub:  hub,
	}

	futsalService := &futsal.DefaultFutsalService{
		Repo:    futsalRepo,
		Cache:   utils.GetCacheClient(),
		Storage: storageService,
	}

	producer := events.NewProducer(config.AppConfig.KafkaBrokers, config.AppConfig.KafkaTopic)
	reminderScheduler := cron.NewScheduler()

	sessionService := &booking.DefaultSessionService{
		FutsalRepo:  futsalRepo,
		BookingRepo: bookingRepo,
		Cache:       utils.GetCacheClient(),
		Payments:    booking.NewStripePaymentHandler(logger),
		Notifier:    notificationService,
		Events:      producer,
		Reminders:   reminderScheduler,
	}

	cron.InitReminderWorker(notificationService)
	utils.StartHealthMonitor(
		map[string]*redis.Client{
			"cache": utils.GetCacheClient(),
			"auth":  utils.GetAuthCacheClient(),
			"csrf":  utils.GetCSRFCacheClient(),
		},
		database.MongoClient,
	)

	// handlers.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:      userRepo,
		User:          handlers.NewUserHandler(userService),
		Futsal:        handlers.NewFutsalHandler(futsalService),
		Booking:       handlers.NewBookingHandler(sessionService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Admin:         handlers.NewAdminHandler(userService, futsalRepo, bookingRepo),
		Owner:         handlers.NewOwnerHandler(futsalRepo, bookingRepo),
		WS:            handlers.NewWSHandler(hub),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	hub.Dispose()
	if err := producer.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close event producer: %v", err)
	}
	if err := reminderScheduler.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close reminder scheduler: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
