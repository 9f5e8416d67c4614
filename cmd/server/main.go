package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-server/internal/config"
	"marketplace-server/internal/database"
	"marketplace-server/internal/handler"
	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/messaging"
	"marketplace-server/internal/middleware"
	"marketplace-server/internal/models"
	"marketplace-server/internal/repository"
	"marketplace-server/internal/service"
	"marketplace-server/internal/storage"
	"marketplace-server/pkg/logger"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	redis "github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	// --- Configuration ---
	cfg, err := config.LoadConfig(*envFile)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
		Service:     "marketplace-server",
		Development: cfg.Env == "development",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	zap.L().Info("Logger initialized", zap.String("logLevel", cfg.LogLevel), zap.String("env", cfg.Env))

	// --- External Connections ---
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.Connect(ctx, cfg, log)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pool.Close()

	if cfg.MigrationsDisabled {
		zap.L().Info("Migrations disabled, skipping")
	} else if err := database.ApplyMigrations(pool, log); err != nil {
		zap.L().Fatal("Failed to apply migrations", zap.Error(err))
	}

	var denylist interfaces.TokenDenylist
	var rateLimitStore rateli.Store
	if cfg.RedisEnabled() {
		redisClient, err := setupRedis(ctx, cfg)
		if err != nil {
			zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()

		denylist = repository.NewRedisTokenDenylist(redisClient, log, cfg.DBQueryTimeout)
		rateLimitStore = rateli.RedisStore(&rateli.RedisOptions{
			RedisClient: redisClient,
			Rate:        time.Minute,
			Limit:       cfg.RateLimitPerMinute,
		})
	} else {
		zap.L().Warn("Redis not configured: logout is a no-op and rate limits are per instance")
		rateLimitStore = rateli.InMemoryStore(&rateli.InMemoryOptions{
			Rate:  time.Minute,
			Limit: cfg.RateLimitPerMinute,
		})
	}

	var events interfaces.EventPublisher = messaging.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		mqConn, err := connectRabbitMQ(cfg.RabbitMQURL, log)
		if err != nil {
			zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mqConn.Close()

		publisher, err := messaging.NewRabbitMQPublisher(mqConn, cfg.EventsQueue, log)
		if err != nil {
			zap.L().Fatal("Failed to create event publisher", zap.Error(err))
		}
		defer publisher.Close()
		events = publisher
	} else {
		zap.L().Info("RabbitMQ not configured, domain events are discarded")
	}

	uploader, err := storage.NewGCSUploader(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile, cfg.UploadTimeout, log)
	if err != nil {
		zap.L().Fatal("Failed to initialize blob storage", zap.Error(err))
	}
	defer uploader.Close()

	// --- Dependency Injection ---
	repoOpts := repository.Options{QueryTimeout: cfg.DBQueryTimeout, ReadRetries: cfg.DBReadRetries}
	userRepo := repository.NewPgUserRepository(pool, log, repoOpts)
	productRepo := repository.NewPgProductRepository(pool, log, repoOpts)
	imageRepo := repository.NewPgImageRepository(pool, log, repoOpts)
	tagRepo := repository.NewPgTagRepository(pool, log, repoOpts)
	cartRepo, err := repository.NewPgCollectionRepository(pool, models.CollectionCart, log, repoOpts)
	if err != nil {
		zap.L().Fatal("Failed to create cart repository", zap.Error(err))
	}
	favouriteRepo, err := repository.NewPgCollectionRepository(pool, models.CollectionFavourites, log, repoOpts)
	if err != nil {
		zap.L().Fatal("Failed to create favourite repository", zap.Error(err))
	}

	tokens := service.NewTokenIssuer(service.TokenConfig{
		Secret: cfg.JWTSecret,
		TTL:    cfg.TokenTTL,
		Issuer: cfg.TokenIssuer,
	}, denylist, log)

	services := handler.Services{
		Auth:       service.NewAuthService(userRepo, tokens, cfg.PasswordPepper, log),
		Users:      service.NewUserService(userRepo, uploader, events, cfg.PasswordPepper, log),
		Products:   service.NewProductService(productRepo, events, log),
		Images:     service.NewImageService(imageRepo, productRepo, uploader, log),
		Tags:       service.NewTagService(tagRepo, productRepo, log),
		Cart:       service.NewCollectionService(models.CollectionCart, cartRepo, productRepo, log),
		Favourites: service.NewCollectionService(models.CollectionFavourites, favouriteRepo, productRepo, log),
	}
	apiHandler := handler.NewHandler(services, cfg.MaxUploadSize, log)

	rateLimitMiddleware := rateli.RateLimiter(rateLimitStore, &rateli.Options{
		ErrorHandler: func(c *gin.Context, info rateli.Info) {
			zap.L().Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Code:    models.ErrCodeRateLimited,
				Message: "Too many requests. Try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
			})
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	if origins := cfg.GetAllowedOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader, "Retry-After"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		hctx, hcancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer hcancel()
		if err := pool.Ping(hctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// metrics middleware goes on before the API routes are registered
	apiHandler.Mount(router, p, rateLimitMiddleware)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// setupRedis connects to Redis, retrying while the container starts.
func setupRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	const maxRetries = 10
	retryDelay := 3 * time.Second
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		client := redis.NewClient(opts)

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		_, err := client.Ping(pingCtx).Result()
		pingCancel()
		if err == nil {
			zap.L().Info("Connected to Redis", zap.String("address", opts.Addr), zap.Int("attempt", attempt))
			return client, nil
		}

		client.Close()
		lastErr = fmt.Errorf("unable to ping redis (attempt %d/%d): %w", attempt, maxRetries, err)
		zap.L().Warn("Redis ping failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("redis connection aborted: %w", ctx.Err())
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", maxRetries, lastErr)
}

// connectRabbitMQ dials the broker with retries and logs unexpected closes.
func connectRabbitMQ(url string, log *zap.Logger) (*amqp091.Connection, error) {
	const maxRetries = 10
	retryDelay := 5 * time.Second
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		var conn *amqp091.Connection
		conn, err = amqp091.Dial(url)
		if err == nil {
			log.Info("Connected to RabbitMQ", zap.Int("attempt", attempt))
			go func() {
				notifyClose := conn.NotifyClose(make(chan *amqp091.Error, 1))
				if cerr := <-notifyClose; cerr != nil {
					log.Error("RabbitMQ connection closed unexpectedly", zap.Error(cerr))
				}
			}()
			return conn, nil
		}
		log.Warn("RabbitMQ connection failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Duration("retry_delay", retryDelay),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}
