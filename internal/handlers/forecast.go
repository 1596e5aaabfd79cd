package handlers

import (
	"strconv"

	"github.com/crawltrends/crawltrends/internal/models"
	"github.com/crawltrends/crawltrends/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Forecast handles forecast requests for one declining MIME type
// GET /v1/trends/declining/+/forecast (the MIME type itself contains a
// slash, so the route uses a wildcard segment)
func (h *Handler) Forecast(c *fiber.Ctx) error {
	mimeType := c.Params("+")
	if mimeType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "MIME type is required",
			},
		})
	}

	method := c.Query("method", "bass")

	horizon, err := strconv.Atoi(c.Query("horizon", "6"))
	if err != nil || horizon <= 0 {
		horizon = 6
	}

	result, err := h.forecastService.Execute(c.Context(), &services.ForecastRequest{
		MimeType: mimeType,
		Method:   method,
		Horizon:  horizon,
	})
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(models.MimeForecastResponse{
		MimeType:    result.MimeType,
		Method:      result.Method,
		History:     result.History,
		Predictions: result.Predictions,
		ModelInfo:   result.ModelInfo,
	})
}
