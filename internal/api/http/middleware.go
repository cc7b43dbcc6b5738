package http

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"

	"github.com/wakanda-gov/platform/internal/config"
	"github.com/wakanda-gov/platform/internal/observability"
	"github.com/wakanda-gov/platform/internal/persistence"
	apperrors "github.com/wakanda-gov/platform/pkg/util/errorutil"
)

// MiddlewareConfig bundles dependencies for the global middleware chain.
type MiddlewareConfig struct {
	App       config.AppConfig
	RateLimit config.RateLimitConfig
	Logger    *zap.Logger
	Metrics   *observability.Metrics
	Redis     *persistence.Redis
}

// RegisterMiddlewares attaches global middlewares: timeout, CORS, rate
// limiting, error handling and request logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	if timeout := cfg.App.RequestTimeout(); timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.Origins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	if cfg.RateLimit.Enabled {
		limiterCfg := limiter.Config{
			Max:        cfg.RateLimit.MaxRequests,
			Expiration: cfg.RateLimit.Window(),
			LimitReached: func(c *fiber.Ctx) error {
				return errorResponse(c, apperrors.NewDomainError(
					"RATE_LIMITED", "Too many requests", fiber.StatusTooManyRequests, nil))
			},
		}
		if storage := cfg.Redis.LimiterStorage("ratelimit:"); storage != nil {
			limiterCfg.Storage = storage
		}
		app.Use(limiter.New(limiterCfg))
	}

	app.Use(errorHandlingMiddleware(cfg.Logger, cfg.Metrics))
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := toDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				_ = errorResponse(c, domainErr)
				err = nil
			}
		}()
		return c.Next()
	}
}

// toDomainError also translates fiber's own errors (route not found,
// method not allowed) so they share the uniform body.
func toDomainError(err error) *apperrors.DomainError {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &apperrors.DomainError{
			Code:       "HTTP_ERROR",
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
		}
	}
	return apperrors.ToDomainError(err)
}

// errorResponse writes the platform's uniform error body.
func errorResponse(c *fiber.Ctx, err error) error {
	domainErr := toDomainError(err)
	body := fiber.Map{
		"success":   false,
		"error":     domainErr.Message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"path":      c.Path(),
		"method":    c.Method(),
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	return c.Status(domainErr.HTTPStatus).JSON(body)
}
