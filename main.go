// File: tripmate/main.go
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"tripmate/config"
	"tripmate/cron"
	"tripmate/database"
	"tripmate/database/repository"
	"tripmate/handlers"
	"tripmate/middleware"
	"tripmate/routes"
	"tripmate/services/activity"
	"tripmate/services/chat"
	"tripmate/services/events"
	"tripmate/services/itinerary"
	"tripmate/services/notification"
	"tripmate/services/user"
	"tripmate/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fb, err := utils.NewFirebase(ctx, cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize firebase: %v", err)
	}
	defer fb.Close()

	checks := map[string]utils.HealthCheck{}

	// Redis backs the catalog cache, the event broker, the results queue and the task queue.
	// Without it the service still runs on a single instance.
	redisUp := true
	if err := utils.InitRedis(); err != nil {
		logger.Warn("main: redis unavailable, running single-instance", zap.Error(err))
		redisUp = false
	} else {
		defer utils.CloseRedis()
		checks["redis"] = func(ctx context.Context) error { return utils.CacheClient.Ping(ctx).Err() }
	}

	// repositories.
	var (
		itineraries repository.ItineraryRepository
		profiles    repository.ProfileRepository
		preferences repository.PreferencesRepository
		catalog     repository.CatalogRepository
	)
	switch cfg.StoreBackend {
	case "mongo":
		client, err := database.InitDB(ctx)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		defer database.CloseDB(context.Background())
		checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		itineraries = repository.NewMongoItineraryRepo(database.Database(client))
		profiles = repository.NewFirestoreProfileRepo(fb.Firestore)
		preferences = repository.NewRTDBPreferencesRepo(fb.Database)
		catalog = repository.NewFirestoreCatalogRepo(fb.Firestore)
	case "memory":
		itineraries = repository.NewMemoryItineraryRepo()
		profiles = repository.NewMemoryProfileRepo()
		preferences = repository.NewMemoryPreferencesRepo()
		catalog = repository.NewMemoryCatalogRepo()
	default:
		itineraries = repository.NewRTDBItineraryRepo(fb.Database)
		profiles = repository.NewFirestoreProfileRepo(fb.Firestore)
		preferences = repository.NewRTDBPreferencesRepo(fb.Database)
		catalog = repository.NewFirestoreCatalogRepo(fb.Firestore)
	}
	if redisUp {
		catalog = repository.NewCachedCatalogRepo(catalog, utils.CacheClient, cfg.CatalogCacheTTL)
	}

	var broker events.Broker = events.NewHub()
	if redisUp {
		broker = events.NewRedisBroker(utils.EventsClient)
	}

	// services.
	identity, err := user.NewFirebaseIdentity(ctx, fb.Auth, cfg.FirebaseWebAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	userService := &user.DefaultUserService{
		Identity:    identity,
		Profiles:    profiles,
		Preferences: preferences,
		Itineraries: itineraries,
		SessionTTL:  cfg.SessionCookieTTL,
	}
	itineraryService := itinerary.NewDefaultItineraryService(itineraries, events.StatePublisher{Broker: broker})
	activityService := activity.NewDefaultActivityService(catalog, itineraries)

	pusher, err := notification.NewFCMPushNotifier(fb.Messaging, profiles)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	httpNotifier := notification.NewHTTPChatNotifier(cfg.ChatAPIURL, cfg.ChatAPITimeout)
	chatService := &chat.DefaultChatService{
		Repo:         itineraries,
		Broker:       broker,
		Notifier:     httpNotifier,
		Pusher:       pusher,
		ReplyTimeout: cfg.ReplyTimeout,
	}

	if redisUp {
		queueClient := asynq.NewClient(cron.RedisQueueOpt())
		defer queueClient.Close()
		queue := notification.NewQueueNotifier(queueClient, cfg.NotifyMaxRetry)
		chatService.Notifier = queue
		chatService.Timeouts = queue

		cron.InitChatWorker(ctx, httpNotifier, chatService)
		go cron.NewResultsWorker(utils.CacheClient, cfg.ResultsQueue, chatService).Run(ctx)
	}

	monitor := utils.NewHealthMonitor(checks)
	monitor.Start(ctx, 30*time.Second)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		identity,
		handlers.NewUserHandler(userService),
		handlers.NewItineraryHandler(itineraryService),
		handlers.NewChatHandler(chatService, broker),
		handlers.NewAssistantHandler(chatService, cfg.AssistantSecret),
		handlers.NewActivityHandler(activityService),
		handlers.NewPageHandler(cfg.StaticDir),
		handlers.NewHealthHandler(monitor),
	)
	routes.RegisterRoutes(router, handlerBundle, cfg.AllowedOrigins())

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s (store=%s)...", srv.Addr, cfg.StoreBackend)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	chatService.Wait()

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
