package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-hardware/pkg/logger"
	"github.com/jhoicas/inventario-hardware/pkg/metrics"
)

// Observe registra cada petición en Prometheus y en el log.
// Usa la ruta registrada (/api/items/:id), no la URL, para acotar la cardinalidad.
func Observe(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status, _ = statusFor(err)
		}
		path := c.Route().Path
		elapsed := time.Since(start)
		m.RecordHTTPRequest(c.Method(), path, status, elapsed)

		ev := log.Debug()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("route", path).
			Int("status", status).
			Dur("elapsed", elapsed).
			Str("user_id", GetUserID(c)).
			Msg("http request")
		return err
	}
}
