package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/SaiNikheel/tenderBot/internal/models"
	"github.com/SaiNikheel/tenderBot/internal/services"
)

// writeError maps the service error taxonomy to HTTP statuses. Wrapped
// library errors are logged here and never serialized into the response.
func writeError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	var extractionErr *services.ExtractionError
	var gatewayErr *services.GatewayError
	var malformedErr *services.MalformedResponseError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: validationErr.Message,
		})

	case errors.As(err, &extractionErr):
		log.Warn().Err(errors.Unwrap(extractionErr)).Str("document", extractionErr.Document).Msg("document extraction failed")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{
			Error:   "could not read document",
			Details: extractionErr.Error(),
		})

	case errors.As(err, &gatewayErr):
		status := fiber.StatusBadGateway
		if gatewayErr.Kind == services.GatewayTimeout {
			status = fiber.StatusGatewayTimeout
		}
		return c.Status(status).JSON(models.ErrorResponse{
			Error:   "analysis service unavailable",
			Details: gatewayErr.Message,
		})

	case errors.As(err, &malformedErr):
		// Indicates prompt or model drift; keep the full chain for operators
		log.Error().Err(malformedErr).Msg("model returned malformed analysis")
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "analysis failed",
			Details: malformedErr.Error(),
		})

	default:
		log.Error().Err(err).Msg("unexpected error")
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "internal server error",
		})
	}
}
