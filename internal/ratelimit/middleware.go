package ratelimit

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/anonqa-service/pkg/util"
)

// Middleware rejects requests exceeding the limiter's window before the
// handler runs, so a rejected request touches neither persistence nor any
// other side effect. Limiter backend failures fail open: abuse control
// degrades rather than availability.
func Middleware(limiter Limiter, message string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := limiter.Allow(c.UserContext(), c.IP())
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if !allowed {
			return apperrors.NewRateLimited(message)
		}
		return c.Next()
	}
}
