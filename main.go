package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fieldassist/config"
	"fieldassist/cron"
	"fieldassist/database"
	bookingRepo "fieldassist/database/repository/booking"
	transcriptRepo "fieldassist/database/repository/transcript"
	"fieldassist/handlers"
	"fieldassist/routes"
	"fieldassist/services/capacity"
	"fieldassist/services/envelope"
	"fieldassist/services/intelligence"
	"fieldassist/services/messenger"
	"fieldassist/services/notification"
	"fieldassist/services/orchestrator"
	"fieldassist/services/payment"
	"fieldassist/services/tasks"
	"fieldassist/services/tools"
	"fieldassist/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	store := bookingRepo.NewMongoStore(database.DB())
	transcripts := transcriptRepo.NewMongoRepository(database.DB())

	// capacity engine over the dispatch platform's availability feed.
	source := capacity.NewHTTPAvailabilitySource(config.AppConfig.DispatchPlatformURL)
	engine := capacity.NewEngine(
		source,
		capacity.USHolidayCalendar{},
		config.AppConfig.SameDayCutoffHour,
		time.Duration(config.AppConfig.CapacityRefreshMin)*time.Minute,
	)

	// completion provider.
	provider, err := intelligence.NewGeminiProvider(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize completion provider: %v", err)
	}

	// collaborators wired into tool execution.
	var notifier notification.Notifier = notification.Noop{}
	if utils.FCMClient != nil {
		notifier = notification.NewFCMNotifier(utils.FCMClient, config.AppConfig.FCMOfficeTopic)
	}
	var feePayments payment.FeePayments = payment.NoFeePayments{}
	if config.AppConfig.StripeKey != "" {
		feePayments = payment.NewStripeFeePayments(logger)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	scheduler := tasks.NewScheduler(redisOpt)
	defer scheduler.Close()

	executor := &tools.Executor{
		Capacity:         engine,
		Store:            store,
		Payments:         feePayments,
		Notifier:         notifier,
		Scheduler:        scheduler,
		CompanyPhone:     config.AppConfig.CompanyPhone,
		DispatchFeeCents: int64(config.AppConfig.DispatchFee),
	}

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMins) * time.Minute
	sessions := orchestrator.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)
	formatter := &envelope.Formatter{CompanyPhone: config.AppConfig.CompanyPhone}
	adapter := orchestrator.NewChannelAdapter(orchestrator.KeywordEmergencyClassifier, config.AppConfig.CompanyPhone)

	orc := orchestrator.New(provider, executor, formatter, sessions, adapter, orchestrator.Config{
		MaxToolRounds: config.AppConfig.MaxToolRounds,
		TurnBudget:    time.Duration(config.AppConfig.TurnBudgetSecs) * time.Second,
		ArchiveAfter:  sessionTTL - time.Minute,
		SessionTTL:    sessionTTL,
		CompanyPhone:  config.AppConfig.CompanyPhone,
	})
	orc.Scheduler = scheduler

	msgr := messenger.LogMessenger{}
	cron.InitTaskWorker(msgr, sessions, transcripts)

	assistantHandler := handlers.NewAssistantHandler(orc, msgr, logger)
	voiceHandler := handlers.NewVoiceHandler(orc, logger)
	capacityHandler := handlers.NewCapacityHandler(engine)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ChatHandler:           assistantHandler.ChatHandler,
		SMSWebhookHandler:     assistantHandler.SMSWebhookHandler,
		VoiceTurnHandler:      voiceHandler.VoiceTurnHandler,
		SessionHistoryHandler: assistantHandler.SessionHistoryHandler,
		GetCapacityHandler:    capacityHandler.GetCapacityHandler,
	}

	// Register routes with the assembled handler bundle.
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
