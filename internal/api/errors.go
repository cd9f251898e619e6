package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"aplus-academy/internal/admin"
	"aplus-academy/internal/models"
	"aplus-academy/pkg/logger"
)

// FieldError is used to indicate an error with a specific request field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

var errValidation = errors.New("validation failed")

func newValidationError(err error, fields ...FieldError) error {
	return &ValidationError{Err: err, Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "datetime":
		return "must match the layout " + fe.Param()
	default:
		return "failed on the " + fe.Tag() + " rule"
	}
}

// errorHandler maps service errors onto HTTP responses. Unknown errors are
// logged and reported as 500 without their detail.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code    int
			message any
		)

		var httpErr *echo.HTTPError
		var valErr *ValidationError
		switch {
		case errors.As(err, &httpErr):
			code = httpErr.Code
			message = httpErr.Message
		case errors.As(err, &valErr):
			code = http.StatusBadRequest
			if len(valErr.Fields) > 0 {
				fields := make(map[string]string, len(valErr.Fields))
				for _, f := range valErr.Fields {
					fields[f.Field] = f.Error
				}
				message = echo.Map{"error": valErr.Error(), "fields": fields}
			} else {
				message = valErr.Error()
			}
		case errors.Is(err, models.ErrNotFound):
			code = http.StatusNotFound
			message = "not found"
		case errors.Is(err, admin.ErrInvalidInput), errors.Is(err, models.ErrInvalidQuery):
			code = http.StatusBadRequest
			message = err.Error()
		case errors.Is(err, admin.ErrInvalidCredentials):
			code = http.StatusUnauthorized
			message = admin.ErrInvalidCredentials.Error()
		case errors.Is(err, admin.ErrStoreUnavailable):
			code = http.StatusServiceUnavailable
			message = admin.ErrStoreUnavailable.Error()
		default:
			code = http.StatusInternalServerError
			message = http.StatusText(http.StatusInternalServerError)
			log.Error("request failed",
				zap.String(logger.FieldMethod, c.Request().Method),
				zap.String(logger.FieldPath, c.Path()),
				zap.Error(err),
			)
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, message)
		}
		if err != nil {
			log.Error("failed to write error response", zap.Error(err))
		}
	}
}
