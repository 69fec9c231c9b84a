package routers

import (
	"video-share/internal/delivery/http/handlers"
	"video-share/internal/usecases"

	"github.com/gofiber/fiber/v2"
)

func SetupVideoRoutes(app *fiber.App, videos usecases.VideoService, listings usecases.ListingService) {
	videoHandler := handlers.NewVideoHandler(videos, listings)

	api := app.Group("/api/v1")
	api.Post("/videos", videoHandler.HandleAction)
	api.Post("/videos/play", videoHandler.RequestDownload)
	api.Get("/videos", videoHandler.ListVideos)
	// Registered before /videos/:id so "recommended" is not read as an id.
	api.Get("/videos/recommended", videoHandler.Recommend)
	api.Get("/videos/:id", videoHandler.GetVideo)
	api.Put("/videos/:id", videoHandler.UpdateVideo)
	api.Delete("/videos/:id", videoHandler.DeleteVideo)
}
