package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/notetrackhq/notetrack/internal/adapter/handler"
	"github.com/notetrackhq/notetrack/internal/adapter/repository"
	"github.com/notetrackhq/notetrack/internal/infrastructure/cache"
	"github.com/notetrackhq/notetrack/internal/infrastructure/database"
	"github.com/notetrackhq/notetrack/internal/infrastructure/external"
	"github.com/notetrackhq/notetrack/internal/infrastructure/storage"
	contactusecase "github.com/notetrackhq/notetrack/internal/usecase/contact"
	"github.com/notetrackhq/notetrack/internal/usecase/extraction"
	goalusecase "github.com/notetrackhq/notetrack/internal/usecase/goal"
	meetingusecase "github.com/notetrackhq/notetrack/internal/usecase/meeting"
	taskusecase "github.com/notetrackhq/notetrack/internal/usecase/task"
	"github.com/notetrackhq/notetrack/pkg/config"
	"github.com/notetrackhq/notetrack/pkg/jwt"
	"github.com/notetrackhq/notetrack/pkg/llm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Printf("❌ Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("🚀 Starting NoteTrack API",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("❌ Failed to connect to database", zap.Error(err))
	}
	logger.Info("✅ Database connected")

	if cfg.Database.AutoMigrate {
		n, err := database.RunMigrations(db)
		if err != nil {
			logger.Fatal("❌ Failed to run migrations", zap.Error(err))
		}
		logger.Info("✅ Migrations applied", zap.Int("count", n))
	}

	var locker cache.MeetingLocker
	if cfg.Redis.Enabled {
		redisLocker, err := cache.NewRedisLocker(cfg)
		if err != nil {
			logger.Fatal("❌ Failed to connect to redis", zap.Error(err))
		}
		defer redisLocker.Close()
		locker = redisLocker
		logger.Info("✅ Redis connected")
	} else {
		locker = cache.NewMemoryLocker()
		logger.Info("ℹ️ Using in-process meeting locks")
	}

	var audioStore *storage.AudioStore
	if cfg.Storage.Endpoint != "" {
		audioStore, err = storage.NewAudioStore(cfg)
		if err != nil {
			logger.Warn("⚠️ Object storage unavailable, audio uploads disabled", zap.Error(err))
			audioStore = nil
		} else {
			logger.Info("✅ Object storage connected", zap.String("bucket", cfg.Storage.BucketName))
		}
	}

	var transcriber external.Transcriber
	if cfg.Assembly.APIKey != "" {
		transcriber = external.NewAssemblyAITranscriber(cfg)
		logger.Info("✅ Transcription enabled")
	}

	// Repositories
	meetingRepo := repository.NewMeetingRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	contactRepo := repository.NewContactRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	extractionRepo := repository.NewExtractionRepository(db)

	// Extraction pipeline
	gateway := llm.NewGroqClient(&cfg.LLM)
	resolver := extraction.NewContextResolver(gateway, cfg.Extraction.ResolverCharLimit, logger)
	extractor := extraction.NewTaskExtractor(gateway, logger)
	var recordings extraction.RecordingStore
	if audioStore != nil {
		recordings = audioStore
	}
	pipeline := extraction.NewService(
		extractionRepo, meetingRepo, goalRepo, contactRepo,
		resolver, extractor, transcriber, recordings, locker,
		extraction.Options{
			WorkerCount: cfg.Extraction.WorkerCount,
			QueueSize:   cfg.Extraction.QueueSize,
			RunTimeout:  cfg.Extraction.RunTimeout,
			LockTTL:     cfg.Extraction.LockTTL,
		},
		logger,
	)
	pipeline.StartWorkerPool()
	logger.Info("✅ Extraction workers started", zap.Int("count", cfg.Extraction.WorkerCount))

	// Usecases
	var meetingStore meetingusecase.AudioStore
	if audioStore != nil {
		meetingStore = audioStore
	}
	meetingService := meetingusecase.NewService(meetingRepo, extractionRepo, taskRepo, pipeline, meetingStore, logger)
	goalService := goalusecase.NewService(goalRepo)
	contactService := contactusecase.NewService(contactRepo)
	taskService := taskusecase.NewService(taskRepo, goalRepo, contactRepo)

	// HTTP
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)
	e := handler.NewRouter(cfg, jwtManager, handler.Handlers{
		Meeting: handler.NewMeetingHandler(meetingService, logger),
		Goal:    handler.NewGoalHandler(goalService, logger),
		Contact: handler.NewContactHandler(contactService, logger),
		Task:    handler.NewTaskHandler(taskService, logger),
	}, logger)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil {
			logger.Info("server stopped", zap.Error(err))
		}
	}()
	logger.Info("✅ Server started", zap.String("host", cfg.Server.Host), zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down...")
	pipeline.StopWorkerPool()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("❌ Forced shutdown", zap.Error(err))
	}
	logger.Info("👋 Server exited")
}
