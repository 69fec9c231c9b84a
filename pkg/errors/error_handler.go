package errors

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func statusForCode(code string) int {
	switch code {
	case CodeBadRequest:
		return fiber.StatusBadRequest
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	case CodeUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleError maps a service error onto an HTTP response. Wrapped
// transport errors are logged but never sent to the client.
func HandleError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var ve *VideoError
	if stderrors.As(err, &ve) {
		if ve.Err != nil {
			log.Error().Err(ve.Err).Str("code", ve.Code).Msg(ve.Message)
		}
		return c.Status(statusForCode(ve.Code)).JSON(fiber.Map{
			"error":   ve.Code,
			"message": ve.Message,
		})
	}

	log.Error().Err(err).Msg("unexpected error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   CodeInternal,
		"message": "internal server error",
	})
}
