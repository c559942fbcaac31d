package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/infrastructure/metrics"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, estado y latencia.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

// Metrics cuenta peticiones y latencia por ruta registrada (no por path, para acotar cardinalidad).
func Metrics(rec *metrics.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		route := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		rec.HTTPRequests.WithLabelValues(c.Method(), route, status).Inc()
		rec.HTTPDuration.WithLabelValues(c.Method(), route, status).Observe(time.Since(start).Seconds())
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
