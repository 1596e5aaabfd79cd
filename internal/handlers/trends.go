package handlers

import (
	"time"

	"github.com/crawltrends/crawltrends/internal/models"
	"github.com/crawltrends/crawltrends/internal/services"
	"github.com/gofiber/fiber/v2"
)

// DecliningTrends handles requests for the declining MIME type analysis
// GET /v1/trends/declining
func (h *Handler) DecliningTrends(c *fiber.Ctx) error {
	result, err := h.analysisService.Execute(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}

	summary := result.Summary
	if len(summary) > 10 {
		summary = summary[:10]
	}

	return c.JSON(models.DecliningTrendsResponse{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Source:      h.statsURL,
		Summary:     summary,
		Declining:   result.Declining,
		Count:       len(result.Declining),
	})
}

// serviceError converts a service layer error to an HTTP response
func (h *Handler) serviceError(c *fiber.Ctx, err error) error {
	if svcErr, ok := err.(*services.ServiceError); ok {
		status := fiber.StatusInternalServerError
		switch svcErr.Code {
		case "MIME_NOT_DECLINING":
			status = fiber.StatusNotFound
		case "INVALID_METHOD", "INSUFFICIENT_DATA":
			status = fiber.StatusBadRequest
		case "FETCH_FAILED", "INPUT_ERROR":
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    svcErr.Code,
				Message: svcErr.Message,
				Details: svcErr.Details,
			},
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: err.Error(),
		},
	})
}
