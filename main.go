// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"portfolio/config"
	"portfolio/cron"
	"portfolio/database"
	analyticsRepoPkg "portfolio/database/repository/analytics"
	meetingRepoPkg "portfolio/database/repository/meeting"
	"portfolio/handlers"
	"portfolio/routes"
	"portfolio/services/analytics"
	"portfolio/services/booking"
	"portfolio/services/calendar"
	"portfolio/services/notification"
	"portfolio/services/scheduling"
	"portfolio/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	sugar := logger.Sugar()

	ctx := context.Background()

	// Storage.
	mongoClient, err := database.Connect(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		sugar.Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := database.Disconnect(mongoClient); err != nil {
			sugar.Errorf("main: failed to disconnect MongoDB: %v", err)
		}
	}()

	meetingRepo := meetingRepoPkg.NewMongoMeetingRepo(mongoClient, config.AppConfig.DatabaseName)
	analyticsRepo := analyticsRepoPkg.NewMongoAnalyticsRepo(mongoClient, config.AppConfig.DatabaseName)
	if err := meetingRepo.EnsureIndexes(ctx); err != nil {
		sugar.Fatalf("main: failed to ensure meeting indexes: %v", err)
	}
	if err := analyticsRepo.EnsureIndexes(ctx); err != nil {
		sugar.Fatalf("main: failed to ensure analytics indexes: %v", err)
	}

	// Redis: geolocation cache and reminder queue.
	cacheClient := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	defer cacheClient.Close()

	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
	defer taskClient.Close()

	// External collaborators.
	calendarSvc, err := calendar.NewGoogleCalendar(ctx, calendar.GoogleConfig{
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
		RefreshToken: config.AppConfig.GoogleRefreshToken,
		RedirectURI:  config.AppConfig.GoogleRedirectURI,
		CalendarID:   config.AppConfig.GoogleCalendarID,
	})
	if err != nil {
		sugar.Fatalf("main: failed to initialize Google Calendar: %v", err)
	}

	mailer := notification.NewSMTPMailer(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.EmailFrom,
	)
	emailSvc := notification.NewDefaultEmailService(
		mailer,
		config.AppConfig.OwnerName,
		config.AppConfig.OwnerEmail,
		logger,
	)

	// Services.
	availabilitySvc := &scheduling.DefaultAvailabilityService{
		Calendar:  calendarSvc,
		AdminZone: config.AppConfig.AdminTimezone,
		Window: scheduling.Window{
			StartHour: config.AppConfig.OfferWindowStart,
			EndHour:   config.AppConfig.OfferWindowEnd,
		},
		Logger: logger,
	}

	bookingSvc := &booking.DefaultBookingService{
		Repo:             meetingRepo,
		Calendar:         calendarSvc,
		Emails:           emailSvc,
		Tasks:            taskClient,
		Logger:           logger,
		AdminZone:        config.AppConfig.AdminTimezone,
		AllowedDurations: config.AppConfig.AllowedDurations,
		BaseURL:          config.AppConfig.AppBaseURL,
		OwnerName:        config.AppConfig.OwnerName,
		OwnerEmail:       config.AppConfig.OwnerEmail,
		ReminderLead:     time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
	}

	geoResolver := analytics.NewIPInfoResolver(cacheClient, logger)
	trackingSvc := analytics.NewDefaultTrackingService(analyticsRepo, geoResolver, logger)
	reportSvc := analytics.NewDefaultReportService(analyticsRepo, logger)

	// Background reminder worker.
	reminderWorker := cron.InitReminderWorker(meetingRepo, emailSvc)
	defer reminderWorker.Shutdown()

	// HTTP surface.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handler := handlers.NewHandler(
		availabilitySvc,
		bookingSvc,
		trackingSvc,
		reportSvc,
		emailSvc,
		config.Projects,
		logger,
	)
	routes.RegisterRoutes(router, handler)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	sugar.Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Fatalf("main: server forced to shutdown: %v", err)
	}

	sugar.Info("main: server stopped gracefully")
}
