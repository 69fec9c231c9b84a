package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-share/internal/delivery/http/middleware"
	"video-share/internal/delivery/http/routers"
	"video-share/internal/infrastructure/db"
	infra_repo "video-share/internal/infrastructure/repositories"
	"video-share/internal/infrastructure/storage"
	"video-share/internal/usecases"
	"video-share/pkg/config"
	consts "video-share/pkg/constants"

	_ "video-share/migrations"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	database, err := db.NewPostgresDB(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	sqlDB, err := database.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get underlying sql.DB")
	}

	if cfg.DB.AutoMigrate {
		goose.SetBaseFS(nil)
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal().Err(err).Msg("failed to set goose dialect")
		}
		if err := goose.Up(sqlDB, "."); err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}
		log.Info().Msg("migrations applied")
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Queue.RedisAddr()})

	s3Storage, err := storage.NewS3Storage(context.Background(), cfg.Storage.Bucket, cfg.Storage.Region)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create S3 storage")
	}

	videoRepo := infra_repo.NewVideoRepository(database)
	videoService := usecases.NewVideoService(videoRepo, s3Storage, cfg.Grant.TTL)
	listingService := usecases.NewListingService(videoRepo)

	app := fiber.New()
	app.Use(fiberlogger.New())
	app.Use(cors.New())
	app.Use(middleware.Claims(cfg.Server.ClaimsHeader))

	routers.SetupVideoRoutes(app, videoService, listingService)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": consts.StatusOK})
	})

	// Upload confirmations arrive out-of-band once the client finishes
	// the direct transfer to storage.
	go startUploadedQueueListener(rdb, videoService, cfg.Queue.UploadedQueue)

	scheduler := cron.New()
	if cfg.Reaper.Enabled {
		_, err := scheduler.AddFunc(cfg.Reaper.Schedule, func() {
			reaped, err := videoService.ReapStalePending(context.Background(), cfg.Reaper.MaxPendingAge)
			if err != nil {
				log.Error().Err(err).Msg("stale pending reap failed")
				return
			}
			if reaped > 0 {
				log.Info().Int64("reaped", reaped).Msg("soft-deleted stale pending videos")
			}
		})
		if err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.Reaper.Schedule).Msg("invalid reaper schedule")
		}
		scheduler.Start()
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr()).Msg("server starting")
		if err := app.Listen(cfg.Server.Addr()); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	scheduler.Stop()

	ctxShut, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctxShut); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}

type uploadConfirmation struct {
	VideoID string `json:"video_id"`
}

// startUploadedQueueListener consumes upload confirmations pushed by
// the storage event pipeline and advances records to uploaded.
func startUploadedQueueListener(rdb *redis.Client, videos usecases.VideoService, queue string) {
	ctx := context.Background()
	for {
		val, err := rdb.BRPop(ctx, 0, queue).Result()
		if err != nil {
			log.Error().Err(err).Msg("BRPop failed")
			time.Sleep(time.Second)
			continue
		}

		var msg uploadConfirmation
		if err := json.Unmarshal([]byte(val[1]), &msg); err != nil {
			log.Error().Err(err).Msg("malformed upload confirmation dropped")
			continue
		}

		if err := videos.ConfirmUpload(ctx, msg.VideoID); err != nil {
			log.Error().Err(err).Str("video_id", msg.VideoID).Msg("upload confirmation failed")
		} else {
			log.Info().Str("video_id", msg.VideoID).Msg("video marked uploaded")
		}
	}
}
