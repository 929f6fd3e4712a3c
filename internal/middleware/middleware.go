// internal/middleware/middleware.go
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// SetupGlobalMiddleware registers the standard middleware chain. Order
// matters: recover first, compression last.
func SetupGlobalMiddleware(app *fiber.App) {
	// Catch panics from handlers so the server keeps running.
	app.Use(recover.New())

	// X-Request-ID for log correlation.
	app.Use(requestid.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:5173, http://127.0.0.1:5173, http://localhost:3001",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:               200,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
	}))

	// Request logger built on zerolog. Errors are passed through so the
	// global ErrorHandler still produces the response.
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)
		statusCode := c.Response().StatusCode()

		requestID := ""
		if idStr, ok := c.Locals("requestid").(string); ok {
			requestID = idStr
		}

		var logEvent *zerolog.Event
		switch {
		case err != nil:
			logEvent = zlog.Warn().Err(err)
		case statusCode >= 500:
			logEvent = zlog.Error()
		case statusCode >= 400:
			logEvent = zlog.Warn()
		default:
			logEvent = zlog.Info()
		}

		loggerWithFields := logEvent.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", statusCode).
			Dur("latency", latency).
			Str("ip", c.IP()).
			Str("user_agent", c.Get(fiber.HeaderUserAgent))
		if requestID != "" {
			loggerWithFields = loggerWithFields.Str("request_id", requestID)
		}
		loggerWithFields.Msg("Request handled")

		return err
	})

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	zlog.Info().Msg("Global middleware registered")
}
