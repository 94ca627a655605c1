package main

import (
	"BabyTracker/config"
	"BabyTracker/controllers"
	"BabyTracker/events"
	"BabyTracker/mail"
	"BabyTracker/middlewares"
	"BabyTracker/models"
	"BabyTracker/queue"
	"BabyTracker/repositories/impl"
	"BabyTracker/routes"
	"BabyTracker/services"
	"BabyTracker/storage"
	"BabyTracker/utils"
	"BabyTracker/websocket"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := impl.NewUserRepository(db)
	familyRepo := impl.NewFamilyRepository(db)
	childRepo := impl.NewChildRepository(db)
	invitationRepo := impl.NewInvitationRepository(db)
	notificationRepo := impl.NewNotificationRepository(db)
	eventRepo := impl.NewEventRepository(db)
	milestoneRepo := impl.NewMilestoneRepository(db)

	// Infrastructure
	bus := events.NewBus(logger)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	jobs := newQueue(cfg, logger)
	defer jobs.Close()

	store, err := newStorage(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	mailer, err := newMailer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize mailer", "error", err)
		os.Exit(1)
	}

	// Services
	access := services.NewAccessService(familyRepo, childRepo)
	media := services.NewMediaService(store)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, access, jobs, bus, logger)
	authService := services.NewAuthService(userRepo, tokens)
	familyService := services.NewFamilyService(familyRepo, userRepo, invitationRepo, access, notificationService, notificationService, bus, logger)
	eventService := services.NewEventService(eventRepo, milestoneRepo, access, bus)

	feedService := services.NewFeedService(impl.NewTrackableRepository[models.Feed](db), access, bus)
	sleepService := services.NewSleepService(impl.NewTrackableRepository[models.Sleep](db), access, bus)
	diaperService := services.NewDiaperService(impl.NewTrackableRepository[models.Diaper](db), access, bus)
	temperatureService := services.NewTemperatureService(impl.NewTrackableRepository[models.Temperature](db), access, bus)
	weightService := services.NewWeightService(impl.NewTrackableRepository[models.Weight](db), access, bus)
	bathService := services.NewBathService(impl.NewTrackableRepository[models.Bath](db), access, bus)

	childService := services.NewChildService(childRepo, access, media, bus,
		feedService, sleepService, diaperService, temperatureService, weightService, bathService)

	var push services.PushSender
	if app := config.InitFirebase(ctx, cfg); app != nil {
		pushService, err := services.NewPushService(ctx, app, logger)
		if err != nil {
			logger.Warn("push notifications disabled", "error", err)
		} else {
			push = pushService
		}
	}
	worker := services.NewNotificationWorker(jobs, notificationService, invitationRepo, mailer, push, cfg.AppURL, logger)

	// Real-time gateway
	var backplane websocket.Backplane = websocket.NewLocalBackplane()
	if rdb := config.NewRedisClient(cfg); rdb != nil {
		defer rdb.Close()
		backplane = websocket.NewRedisBackplane(rdb, websocket.DefaultRedisChannel, logger)
		logger.Info("websocket fan-out over redis", "addr", cfg.RedisAddr)
	}
	defer backplane.Close()
	gateway := websocket.NewGateway(websocket.NewHub(logger), websocket.NewRegistry(), backplane, familyRepo, tokens, logger)
	if err := gateway.Start(ctx, bus); err != nil {
		logger.Error("failed to start websocket gateway", "error", err)
		os.Exit(1)
	}

	// Set services in controllers
	controllers.SetAuthService(authService)
	controllers.SetFamilyService(familyService)
	controllers.SetChildService(childService)
	controllers.SetEventService(eventService)
	controllers.SetNotificationService(notificationService)
	controllers.SetMediaService(media)
	controllers.SetGateway(gateway)
	controllers.SetHealthDB(db)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middlewares.CORS(cfg.CORSOrigins))
	r.MaxMultipartMemory = services.MaxUploadBytes

	uploadDir := ""
	if cfg.StorageDriver == "local" {
		uploadDir = cfg.UploadDir
	}
	routes.RegisterRoutes(r, routes.Options{
		Tokens: tokens,
		Trackables: map[string]routes.TrackableRoutes{
			"/feeds":        controllers.NewFeedController(feedService),
			"/sleeps":       controllers.NewSleepController(sleepService),
			"/diapers":      controllers.NewDiaperController(diaperService),
			"/temperatures": controllers.NewTemperatureController(temperatureService),
			"/weights":      controllers.NewWeightController(weightService),
			"/baths":        controllers.NewBathController(bathService),
		},
		UploadDir: uploadDir,
		StaticDir: cfg.StaticDir,
	})

	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("notification worker stopped", "error", err)
		}
	}()
	go gateway.RunStats(ctx, cfg.WSStatsInterval)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func newQueue(cfg config.Config, logger *slog.Logger) queue.Queue {
	if cfg.QueueDriver == "rabbitmq" {
		logger.Info("using rabbitmq job queue", "queue", cfg.QueueName)
		return queue.NewRabbitQueue(cfg.RabbitURL, cfg.QueueName, logger)
	}
	return queue.NewMemoryQueue(cfg.QueueSize, logger)
}

func newStorage(ctx context.Context, cfg config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3Storage(ctx, cfg.S3Bucket, cfg.AWSRegion, cfg.S3PublicURL)
	}
	return storage.NewLocalStorage(cfg.UploadDir, cfg.UploadBaseURL), nil
}

func newMailer(ctx context.Context, cfg config.Config, logger *slog.Logger) (mail.Sender, error) {
	switch cfg.MailDriver {
	case "smtp":
		return mail.NewSMTPSender(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort), cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom), nil
	case "ses":
		return mail.NewSESSender(ctx, cfg.AWSRegion, cfg.MailFrom, cfg.MailFromName)
	default:
		return mail.NewLogSender(logger), nil
	}
}
