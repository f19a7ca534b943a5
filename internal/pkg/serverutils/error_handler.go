package serverutils

import (
	"errors"

	"ai-learning-assistant-be/internal/pkg/apperror"
	"ai-learning-assistant-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFoundOrUnauthorized:
		return fiber.StatusNotFound
	case apperror.KindInputInvalid:
		return fiber.StatusBadRequest
	case apperror.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindUpstreamUnavailable, apperror.KindUpstreamEmpty, apperror.KindMalformedStructuredOutput:
		return fiber.StatusBadGateway
	case apperror.KindStorageFailure:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// NewErrorHandler converts errors returned by handlers into the JSON envelope.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			log.Error("HTTP", "Unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
		}

		status := StatusFor(appErr.Kind)
		if status >= fiber.StatusInternalServerError {
			details := map[string]interface{}{
				"path":  ctx.Path(),
				"kind":  string(appErr.Kind),
				"error": appErr.Error(),
			}
			if appErr.Detail != "" {
				details["detail"] = appErr.Detail
			}
			log.Error("HTTP", "Request failed", details)
		}

		return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
	}
}
