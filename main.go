package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lawdesk/config"
	"lawdesk/cron"
	"lawdesk/database"
	bookingRepo "lawdesk/database/repository/booking"
	enquiryRepo "lawdesk/database/repository/enquiry"
	"lawdesk/handlers"
	"lawdesk/middleware"
	"lawdesk/routes"
	"lawdesk/services/availability"
	"lawdesk/services/booking"
	"lawdesk/services/enquiry"
	"lawdesk/services/notification"
	"lawdesk/services/payment"
	"lawdesk/services/tasks"
	"lawdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage.
	mongoClient, err := database.Connect(rootCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := database.Disconnect(mongoClient); err != nil {
			logger.Error("main: failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.DatabaseName)

	redisClient, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
	if err != nil {
		logger.Fatal("main: failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Repositories.
	bookings := bookingRepo.NewMongoBookingRepo(db)
	enquiries := enquiryRepo.NewMongoEnquiryRepo(db)
	if err := bookings.EnsureIndexes(rootCtx); err != nil {
		logger.Fatal("main: failed to ensure booking indexes", zap.Error(err))
	}
	if err := enquiries.EnsureIndexes(rootCtx); err != nil {
		logger.Fatal("main: failed to ensure enquiry indexes", zap.Error(err))
	}

	// Queue.
	queueOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
	queueClient := asynq.NewClient(queueOpt)
	defer queueClient.Close()
	enqueuer := tasks.NewAsynqEnqueuer(queueClient)

	// Services.
	rules, err := booking.RulesFromConfig(cfg)
	if err != nil {
		logger.Fatal("main: invalid booking rules", zap.Error(err))
	}
	engine := availability.NewEngine(bookings, rules.Location)
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.PublicBaseURL)
	if cfg.StripeSecretKey == "" {
		logger.Warn("main: STRIPE_SECRET_KEY is not set, checkout is disabled")
	}
	locker := utils.NewRedisSlotLocker(redisClient, cfg.SlotLockTTL)

	bookingService, err := booking.NewDefaultBookingService(bookings, engine, locker, gateway, enqueuer, rules)
	if err != nil {
		logger.Fatal("main: failed to build booking service", zap.Error(err))
	}
	enquiryService := enquiry.NewDefaultEnquiryService(enquiries, enqueuer)

	// Background work.
	if cfg.WorkerEnabled {
		notifSvc := buildNotificationService(cfg, rules, logger)
		worker := cron.NewNotificationWorker(queueOpt, notifSvc, bookings, enquiries)
		if err := worker.Start(); err != nil {
			logger.Fatal("main: failed to start notification worker", zap.Error(err))
		}
		defer worker.Shutdown()
	}

	// Holds must lapse even on instances that do not consume the queue.
	go cron.RunExpirySweeper(rootCtx, bookingService, cfg.ExpirySweepInterval)

	health := utils.NewHealthMonitor(
		func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
		func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	)
	health.Start(rootCtx, utils.HealthCheckInterval)

	// HTTP.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))

	availabilityHandler := handlers.NewAvailabilityHandler(engine)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	enquiryHandler := handlers.NewEnquiryHandler(enquiryService)
	healthHandler := handlers.NewHealthHandler(health)

	handlerBundle := &handlers.HandlerBundle{
		GetAvailableSlots: availabilityHandler.GetAvailableSlots,

		StartCheckout: bookingHandler.StartCheckout,
		VerifyPayment: bookingHandler.VerifyPayment,
		GetBooking:    bookingHandler.GetBooking,
		StripeWebhook: bookingHandler.StripeWebhook,

		SubmitEnquiry: enquiryHandler.SubmitEnquiry,

		Health: healthHandler.Health,
	}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		router.Use(middleware.NewHTTPMetrics(reg).Middleware())
		handlerBundle.Metrics = gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	logger.Info("main: server stopped gracefully")
}

// buildNotificationService wires whichever notification channels are configured.
func buildNotificationService(cfg config.Config, rules booking.Rules, logger *zap.Logger) *notification.DefaultNotificationService {
	var mailer notification.Mailer
	if m := notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}); m != nil {
		mailer = m
	} else {
		logger.Warn("main: SMTP is not configured, email notifications are disabled")
	}

	var messenger notification.Messenger
	tg, err := notification.NewTelegramMessenger(cfg.TelegramBotToken, cfg.TelegramChatID)
	switch {
	case err != nil:
		logger.Error("main: telegram notifications are disabled", zap.Error(err))
	case tg != nil:
		messenger = tg
	default:
		logger.Warn("main: Telegram is not configured, staff chat alerts are disabled")
	}

	return notification.NewDefaultNotificationService(mailer, messenger, cfg.FirmInbox, rules.Location)
}
