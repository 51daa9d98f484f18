package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/huevos-kikes-scm/pkg/logger"
)

// HTTPMetrics contador de requests por ruta y status.
type HTTPMetrics interface {
	ObserveHTTP(method, route string, status int)
}

// RequestLogger registra cada request con zerolog y alimenta las métricas HTTP. metrics puede ser nil.
func RequestLogger(log *logger.Logger, metrics HTTPMetrics) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if metrics != nil {
			metrics.ObserveHTTP(c.Method(), route, status)
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		if hErr, ok := c.Locals(LocalError).(error); ok {
			ev = ev.Err(hErr)
		} else if err != nil {
			ev = ev.Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}
