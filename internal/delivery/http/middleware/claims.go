package middleware

import (
	"encoding/json"

	"video-share/internal/domain/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const claimsKey = "identityClaims"

// Claims parses the verified identity payload the upstream identity
// boundary attaches as a JSON header. Requests without the header pass
// through anonymous; the authorization checks in the usecases reject
// them where identity is required.
func Claims(header string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(header)
		if raw != "" {
			var claims dto.Claims
			if err := json.Unmarshal([]byte(raw), &claims); err != nil {
				log.Warn().Err(err).Msg("dropping malformed identity claims header")
			} else {
				c.Locals(claimsKey, &claims)
			}
		}
		return c.Next()
	}
}

// ClaimsFromCtx returns the caller's claims, or nil for anonymous
// requests.
func ClaimsFromCtx(c *fiber.Ctx) *dto.Claims {
	claims, _ := c.Locals(claimsKey).(*dto.Claims)
	return claims
}
