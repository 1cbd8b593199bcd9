package http

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"go.uber.org/zap"

	"github.com/spec-kit/anonqa-service/internal/config"
	"github.com/spec-kit/anonqa-service/internal/observability"
	apperrors "github.com/spec-kit/anonqa-service/pkg/util"
)

// genericErrorMessage replaces 5xx detail outside development.
const genericErrorMessage = "An error occurred. Please try again."

// RegisterMiddlewares attaches global middlewares: security headers, CORS,
// request timeout, error envelope handling and request logging.
func RegisterMiddlewares(app *fiber.App, cfg *config.Config, logger *zap.Logger, metrics *observability.Metrics) {
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     "GET,POST,DELETE,PUT",
		AllowCredentials: true,
	}))
	if timeout := cfg.App.RequestTimeout(); timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics, cfg.App.IsDevelopment()))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware converts any returned error or panic into the
// failure envelope {error, timestamp}. Internal detail never reaches the
// client outside development; it is always logged.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, isDevelopment bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				var fiberErr *fiber.Error
				if errors.As(err, &fiberErr) {
					err = apperrors.NewDomainError("TRANSPORT_ERROR", fiberErr.Message, fiberErr.Code)
				}

				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)

				message := domainErr.Message
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
					if !isDevelopment {
						message = genericErrorMessage
					}
				}

				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(fiber.Map{
					"error":     message,
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				})
				err = nil
			}
		}()
		return c.Next()
	}
}
