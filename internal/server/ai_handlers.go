package server

import (
	"errors"
	"strings"

	"echo/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AIChat handles POST /api/v1/ai/chat. It forwards the user's message to the
// configured generative AI model with the Echo assistant persona.
func (s *Server) AIChat(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Message) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Message is required"))
	}

	reply, err := s.aiClient.Chat(c.Context(), req.Message)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		}
		// Upstream failures surface as a bad gateway, not an internal error.
		return models.RespondWithError(c, fiber.StatusBadGateway, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"response": reply,
	})
}
