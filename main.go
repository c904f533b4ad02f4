// File: transformai/main.go
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

	"transformai/config"
	"transformai/cron"
	"transformai/database"
	appointmentRepo "transformai/database/repository/appointment"
	conversationRepo "transformai/database/repository/conversation"
	slotRepo "transformai/database/repository/slot"
	"transformai/handlers"
	"transformai/middleware"
	"transformai/routes"
	"transformai/services/assistant"
	"transformai/services/dialogue"
	"transformai/services/notification"
	"transformai/services/scheduling"
	"transformai/services/tasks"
	"transformai/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Storage selection. Mongo is preferred; any connection failure falls
	// back to in-memory maps so the chat widget stays up.
	storageMode := "memory"
	if !config.AppConfig.UseMemoryStorage {
		if err := database.InitDB(); err != nil {
			logger.Sugar().Warnf("main: MongoDB unavailable, using in-memory storage: %v", err)
		} else {
			storageMode = "mongodb"
		}
	}

	var (
		slots         slotRepo.SlotRepository
		appointments  appointmentRepo.AppointmentRepository
		conversations conversationRepo.ConversationRepository
	)
	if storageMode == "mongodb" {
		slots = slotRepo.NewMongoSlotRepo()
		appointments = appointmentRepo.NewMongoAppointmentRepo()
		conversations = conversationRepo.NewMongoConversationRepo()
	} else {
		slots = slotRepo.NewMemorySlotRepo()
		appointments = appointmentRepo.NewMemoryAppointmentRepo()
		conversations = conversationRepo.NewMemoryConversationRepo()
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	catalog := &scheduling.DefaultSlotCatalog{Repo: slots}
	availability := &scheduling.DefaultAvailabilityService{
		Slots:        slots,
		Appointments: appointments,
		Catalog:      catalog,
	}

	dispatcher := &notification.DefaultDispatcher{
		Email:   notification.NewSMTPEmailSender(),
		ChatOps: notification.NewTelegramNotifier(),
	}

	var reminders scheduling.ReminderScheduler
	if config.AppConfig.RemindersEnabled && config.AppConfig.RedisAddr != "" {
		scheduler := tasks.NewReminderScheduler()
		defer scheduler.Close()
		reminders = scheduler
		cron.InitReminderWorker(appointments, dispatcher.Email)
	}

	ledger := &scheduling.DefaultAppointmentService{
		Slots:        slots,
		Appointments: appointments,
		Notifier:     dispatcher,
		Reminders:    reminders,
	}

	var sessions dialogue.SessionStore
	if config.AppConfig.SessionBackend == "redis" && config.AppConfig.RedisAddr != "" {
		sessionClient := redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisSessionDB,
		})
		ttl := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
		sessions = dialogue.NewRedisSessionStore(sessionClient, ttl)
	} else {
		sessions = dialogue.NewMemorySessionStore()
	}

	intents := dialogue.NewKeywordClassifier()
	controller := &dialogue.Controller{
		Sessions:     sessions,
		Intents:      intents,
		Availability: availability,
		Ledger:       ledger,
	}

	generator, err := assistant.NewGeminiClient(context.Background(), config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}

	chatService := &assistant.DefaultAssistantService{
		Conversations:  conversations,
		Dialogue:       controller,
		Intents:        intents,
		Generator:      generator,
		PromptTemplate: config.AppConfig.AssistantPrompt,
	}

	// Seed the slot catalog on first boot.
	if err := catalog.EnsureSeeded(context.Background()); err != nil {
		logger.Sugar().Warnf("main: failed to seed slot catalog: %v", err)
	}

	handlerBundle := handlers.NewHandlerBundle(
		chatService,
		availability,
		ledger,
		catalog,
		conversations,
		storageMode,
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "3001"
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
