package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"artist-booking/config"
	"artist-booking/internal/auth"
	"artist-booking/internal/cache"
	"artist-booking/internal/database"
	"artist-booking/internal/handler"
	"artist-booking/internal/notify"
	"artist-booking/internal/pricing"
	"artist-booking/internal/queue"
	"artist-booking/internal/repository"
	"artist-booking/internal/service"
	"artist-booking/internal/worker"
	"artist-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	defer logger.Sync()
	log := logger.WithComponent("server")

	cfg := config.LoadConfig()
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	pool, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	// Redis backs the notification stream and the request guard; without it
	// both fall back to in-process implementations.
	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory queue and guard", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	notificationQueue := newNotificationQueue(ctx, rdb)
	notificationWorker := worker.NewNotificationWorker(notify.NewLogNotifier(), notificationQueue)
	if err := notificationWorker.Start(ctx); err != nil {
		log.Fatal("Failed to start notification worker", zap.Error(err))
	}

	guard := newRequestGuard(ctx, cfg.Guard, rdb)

	transactor := repository.NewTransactor(pool)
	disciplineRepository := repository.NewDisciplineRepository(pool)
	artistRepository := repository.NewArtistRepository(pool)
	availabilityRepository := repository.NewAvailabilityRepository(pool)
	requestRepository := repository.NewBookingRequestRepository(pool)
	offerRepository := repository.NewOfferRepository(pool)
	adminOfferRepository := repository.NewAdminOfferRepository(pool)

	disciplineService := service.NewDisciplineService(disciplineRepository)
	artistService := service.NewArtistService(transactor, artistRepository, disciplineRepository, availabilityRepository, cfg.Availability.DefaultWindowDays)
	availabilityService := service.NewAvailabilityService(transactor, availabilityRepository, artistRepository)
	bookingService := service.NewBookingService(
		transactor,
		requestRepository,
		offerRepository,
		artistRepository,
		pricing.NewEngine(cfg.Pricing.RatePerKM),
		cfg.Pricing.AgencyFeePercent,
		notificationQueue,
	)
	adminOfferService := service.NewAdminOfferService(adminOfferRepository, requestRepository)

	if cfg.Auth.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty, every authenticated route will answer 401")
	}
	middleware := handler.NewMiddleware(auth.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer), auth.RoleAuthorizer{})

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	handler.NewAuthHandler(artistService, auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL), middleware).RegisterRoutes(router)
	handler.NewDisciplineHandler(disciplineService).RegisterRoutes(router)
	handler.NewArtistHandler(artistService, middleware).RegisterRoutes(router)
	handler.NewAvailabilityHandler(availabilityService, middleware).RegisterRoutes(router)
	handler.NewBookingHandler(bookingService, guard, cfg.Guard.IdempotencyTTL, middleware).RegisterRoutes(router)
	handler.NewAdminOfferHandler(adminOfferService, middleware).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handler.WithCORS(router, cfg.Server.CORSAllowedOrigins),
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	bookingService.WaitNotifications()
	notificationWorker.Wait()
}

func newNotificationQueue(ctx context.Context, rdb *redis.Client) queue.NotificationQueue {
	if rdb != nil {
		q, err := queue.NewRedisStreamNotificationQueue(ctx, rdb, "", nil)
		if err == nil {
			return q
		}
		logger.WithComponent("server").Warn("Redis stream queue unavailable, using in-memory queue", zap.Error(err))
	}
	return queue.NewNotificationQueue(256)
}

func newRequestGuard(ctx context.Context, cfg config.GuardConfig, rdb *redis.Client) cache.RequestGuard {
	if cfg.Backend == "redis" && rdb != nil {
		return cache.NewRedisRequestGuard(rdb, cfg.RequestsPerMinute, time.Minute)
	}
	guard := cache.NewMemoryRequestGuard(cfg.RequestsPerMinute, cfg.Burst)
	go guard.RunSweeper(ctx, time.Minute)
	return guard
}
