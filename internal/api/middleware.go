package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"aplus-academy/pkg/logger"
)

// requestLogger writes one line per request. Server errors log at error,
// client errors at warn.
func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			fields := []zap.Field{
				zap.String(logger.FieldMethod, c.Request().Method),
				zap.String(logger.FieldPath, c.Request().URL.Path),
				zap.Int(logger.FieldStatus, status),
				zap.Duration(logger.FieldLatency, time.Since(start)),
			}
			switch {
			case status >= 500:
				log.Error("request", fields...)
			case status >= 400:
				log.Warn("request", fields...)
			default:
				log.Info("request", fields...)
			}
			return nil
		}
	}
}
