// File: bookline/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookline/config"
	"bookline/database"
	bookingRepo "bookline/database/repository/booking"
	"bookline/handlers"
	"bookline/routes"
	"bookline/services/availability"
	"bookline/services/calendar"
	"bookline/services/conversation"
	"bookline/services/extractor"
	"bookline/services/notification"
	"bookline/services/session"
	"bookline/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	utils.InitCache()

	// Calendar backend: Google Calendar or the Mongo-backed internal one.
	var provider calendar.Provider
	switch config.AppConfig.CalendarProvider {
	case "google":
		gp, err := calendar.NewGoogleProvider(context.Background(),
			config.AppConfig.GoogleCredentialsPath, config.AppConfig.GoogleCalendarID)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize google calendar provider: %v", err)
		}
		provider = gp
	default:
		database.InitDB()
		provider = calendar.NewMongoProvider(bookingRepo.NewMongoBookingRepo())
	}
	provider = calendar.NewCachedProvider(provider, utils.GetCacheClient(), 5*time.Minute)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetSessionCacheClient(), utils.GetCacheClient()},
		database.MongoClient,
	)

	availEngine := availability.NewEngine(provider)
	availEngine.DayStart = config.AppConfig.WorkDayStart
	availEngine.DayEnd = config.AppConfig.WorkDayEnd
	availEngine.Step = time.Duration(config.AppConfig.SlotStepMinutes) * time.Minute

	// Entity extraction: Gemini when a key is configured, regex otherwise.
	var ext extractor.Extractor = extractor.NewRegexExtractor()
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gx, err := extractor.NewGeminiExtractor(context.Background(), key)
		if err != nil {
			logger.Sugar().Warnf("main: gemini extractor unavailable, using regex extractor: %v", err)
		} else {
			ext = gx
		}
	}

	notifier := notification.NewEmailNotifier(notification.EmailConfig{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		Sender:   config.AppConfig.SMTPSender,
		Password: config.AppConfig.SMTPPassword,
	})

	convEngine := conversation.NewEngine(ext, availEngine, provider, notifier)

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := session.NewRedisStore(utils.GetSessionCacheClient(), sessionTTL)
	sessionManager := session.NewManager(sessionStore, convEngine)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := &handlers.HandlerBundle{
		Sessions:     sessionManager,
		Availability: availEngine,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
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

	logger.Sugar().Info("main: server stopped gracefully")
}
