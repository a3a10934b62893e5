package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	httphandler "github.com/hostelconnect/hostel-service/internal/adapter/http/handler"
	"github.com/hostelconnect/hostel-service/internal/adapter/http/router"
	natsadapter "github.com/hostelconnect/hostel-service/internal/adapter/messaging/nats"
	"github.com/hostelconnect/hostel-service/internal/adapter/repository/cache"
	"github.com/hostelconnect/hostel-service/internal/adapter/repository/mongodb"
	"github.com/hostelconnect/hostel-service/internal/adapter/storage/s3"
	"github.com/hostelconnect/hostel-service/internal/config"
	hostelusecase "github.com/hostelconnect/hostel-service/internal/hostel/usecase"
	identityusecase "github.com/hostelconnect/hostel-service/internal/identity/usecase"
	"github.com/hostelconnect/hostel-service/internal/mailer"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"github.com/hostelconnect/hostel-service/internal/platform/metrics"
	"github.com/hostelconnect/hostel-service/internal/platform/tracer"
	reviewusecase "github.com/hostelconnect/hostel-service/internal/review/usecase"
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	log := appLogger.Named(cfg.ServiceName)
	log.Info("Starting service", zap.String("http_port", cfg.HTTPPort))

	if cfg.OTExporterOTLPEndpoint != "" {
		tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, log)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Error("Failed to shut down tracer provider", zap.Error(err))
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	cancel()
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	err = mongoClient.Ping(ctx, readpref.Primary())
	cancel()
	if err != nil {
		log.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	log.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))
	db := mongoClient.Database(cfg.MongoDatabase)

	userRepo, err := mongodb.NewUserRepository(db, log)
	if err != nil {
		log.Fatal("Failed to initialize user repository", zap.Error(err))
	}
	hostelRepo, err := mongodb.NewHostelRepository(db, log)
	if err != nil {
		log.Fatal("Failed to initialize hostel repository", zap.Error(err))
	}
	reviewRepo, err := mongodb.NewReviewRepository(db, log)
	if err != nil {
		log.Fatal("Failed to initialize review repository", zap.Error(err))
	}

	photoStorage, err := s3.NewS3Storage(
		cfg.MinIOEndpoint,
		cfg.MinIOAccessKey,
		cfg.MinIOSecretKey,
		cfg.MinIOBucket,
		cfg.MinIOUseSSL,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize photo storage", zap.Error(err))
	}

	var hostelCache hostelusecase.HostelCache
	if cfg.RedisAddress != "" {
		redisCache, err := cache.NewHostelCache(cfg.RedisAddress)
		if err != nil {
			log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			hostelCache = redisCache
			log.Info("Connected to Redis", zap.String("address", cfg.RedisAddress))
		}
	}

	var hostelEvents hostelusecase.EventPublisher
	var reviewEvents reviewusecase.EventPublisher
	if cfg.NATSURL != "" {
		publisher, err := natsadapter.NewPublisher(cfg.NATSURL, log, cfg.ServiceName)
		if err != nil {
			log.Warn("NATS unavailable, continuing without events", zap.Error(err))
		} else {
			defer publisher.Close()
			hostelEvents = publisher
			reviewEvents = publisher
		}
	}

	var reviewMailer reviewusecase.Mailer
	if cfg.SMTPEmail != "" && cfg.SMTPPassword != "" {
		reviewMailer = mailer.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	}

	tokens := identityusecase.NewTokenManager(cfg.JWTSecret)
	identityUC := identityusecase.NewIdentityUsecase(userRepo, tokens, log)
	reconciler := hostelusecase.NewPhotoReconciler(photoStorage, log)
	hostelUC := hostelusecase.NewHostelUsecase(hostelRepo, userRepo, reconciler, hostelCache, hostelEvents, log)
	reviewUC := reviewusecase.NewReviewUsecase(reviewRepo, hostelRepo, userRepo, reviewEvents, reviewMailer, log)

	mm := metrics.NewMetricsManager(cfg.ServiceName)
	go mm.ServeMetrics(cfg.PrometheusMetricsPort, log)

	handlers := router.Handlers{
		Auth:   httphandler.NewAuthHandler(identityUC, log),
		Hostel: httphandler.NewHostelHandler(hostelUC, mm, log),
		Review: httphandler.NewReviewHandler(reviewUC, mm, log),
		Upload: httphandler.NewUploadHandler(photoStorage, mm, log),
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router.New(handlers, tokens, mm, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	case sig := <-quit:
		log.Info("Shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", zap.Error(err))
		}
	}

	log.Info("Service stopped")
}
