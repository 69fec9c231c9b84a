package handlers

import (
	"bytes"
	"encoding/json"
	"strconv"

	"video-share/internal/delivery/http/middleware"
	"video-share/internal/domain/dto"
	"video-share/internal/usecases"
	apperrors "video-share/pkg/errors"

	"github.com/gofiber/fiber/v2"
)

type VideoHandler struct {
	videos   usecases.VideoService
	listings usecases.ListingService
}

func NewVideoHandler(videos usecases.VideoService, listings usecases.ListingService) *VideoHandler {
	return &VideoHandler{videos: videos, listings: listings}
}

// VideoActionDTO is the combined payload of the action endpoints.
type VideoActionDTO struct {
	Action      string `json:"action"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Title       string `json:"videoTitle"`
	Description string `json:"videoDescription"`
	ReleaseYear int    `json:"releaseYear"`
	Platform    string `json:"platform"`
}

// HandleAction dispatches an upload or download action. Upload opens an
// upload intent and requires admin claims; download is a pass-through
// grant request.
func (h *VideoHandler) HandleAction(c *fiber.Ctx) error {
	var action VideoActionDTO
	if err := c.BodyParser(&action); err != nil {
		return apperrors.HandleError(c, apperrors.BadRequest("invalid request body"))
	}

	switch action.Action {
	case "upload":
		req := &dto.UploadRequestDTO{
			Title:       action.Title,
			Description: action.Description,
			ReleaseYear: action.ReleaseYear,
			Platform:    action.Platform,
			ContentType: action.ContentType,
		}
		intent, err := h.videos.RequestUpload(c.Context(), req, middleware.ClaimsFromCtx(c))
		if err != nil {
			return apperrors.HandleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(intent)

	case "download":
		grant, err := h.videos.RequestDownload(c.Context(), action.Key)
		if err != nil {
			return apperrors.HandleError(c, err)
		}
		return c.JSON(grant)

	default:
		return apperrors.HandleError(c, apperrors.BadRequest("invalid action"))
	}
}

// RequestDownload serves the play endpoint: a read grant for a known
// storage key.
func (h *VideoHandler) RequestDownload(c *fiber.Ctx) error {
	var action VideoActionDTO
	if err := c.BodyParser(&action); err != nil {
		return apperrors.HandleError(c, apperrors.BadRequest("invalid request body"))
	}
	grant, err := h.videos.RequestDownload(c.Context(), action.Key)
	if err != nil {
		return apperrors.HandleError(c, err)
	}
	return c.JSON(grant)
}

func (h *VideoHandler) ListVideos(c *fiber.Ctx) error {
	var limit *int
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.HandleError(c, apperrors.BadRequest("invalid limit"))
		}
		limit = &parsed
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.HandleError(c, apperrors.BadRequest("invalid page"))
		}
		page = parsed
	}

	result, err := h.listings.List(c.Context(), limit, page)
	if err != nil {
		return apperrors.HandleError(c, err)
	}
	return c.JSON(result)
}

func (h *VideoHandler) Recommend(c *fiber.Ctx) error {
	videos, err := h.listings.Recommend(c.Context())
	if err != nil {
		return apperrors.HandleError(c, err)
	}
	return c.JSON(videos)
}

func (h *VideoHandler) GetVideo(c *fiber.Ctx) error {
	video, err := h.videos.GetVideo(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.HandleError(c, err)
	}
	return c.JSON(video)
}

// UpdateVideo applies a partial metadata patch. Unknown fields are
// rejected rather than silently dropped.
func (h *VideoHandler) UpdateVideo(c *fiber.Ctx) error {
	var patch dto.VideoPatchDTO
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		return apperrors.HandleError(c, apperrors.BadRequest("invalid or unknown fields in request body"))
	}

	result, err := h.videos.UpdateVideo(c.Context(), c.Params("id"), &patch, middleware.ClaimsFromCtx(c))
	if err != nil {
		return apperrors.HandleError(c, err)
	}
	return c.JSON(result)
}

func (h *VideoHandler) DeleteVideo(c *fiber.Ctx) error {
	video, err := h.videos.DeleteVideo(c.Context(), c.Params("id"), middleware.ClaimsFromCtx(c))
	if err != nil {
		return apperrors.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"video": video})
}
