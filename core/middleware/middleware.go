package middleware

import (
	"time"

	"event-registry/core/constants"
	"event-registry/core/logger"

	"github.com/labstack/echo/v4"
)

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// Actor extracts the caller's username from the X-Username header. There is
// no authentication layer; the name only attributes audit entries.
func (m *Middleware) Actor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			name := c.Request().Header.Get("X-Username")
			if name == "" {
				name = constants.AnonymousActor
			}
			c.Set(constants.ContextActorName, name)
			return next(c)
		}
	}
}

// RequestLogger logs method, path, status and latency for every request.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}

// ActorName reads the name the Actor middleware stored on the context.
func ActorName(c echo.Context) string {
	if v, ok := c.Get(constants.ContextActorName).(string); ok && v != "" {
		return v
	}
	return constants.AnonymousActor
}
