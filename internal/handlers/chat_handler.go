package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/SaiNikheel/tenderBot/internal/models"
	"github.com/SaiNikheel/tenderBot/internal/services"
)

type ChatHandler struct {
	analyzer services.AnalyzerService
}

func NewChatHandler(analyzer services.AnalyzerService) *ChatHandler {
	return &ChatHandler{
		analyzer: analyzer,
	}
}

// HandleChat answers a follow-up question against the analysis context the
// client sends with every request. No server-side session state exists.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, &services.ValidationError{Message: "invalid request payload"})
	}

	if strings.TrimSpace(req.Message) == "" {
		return writeError(c, &services.ValidationError{Message: "message is required"})
	}

	response, err := h.analyzer.Chat(context.Background(), req.Message, req.Context)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.ChatResponse{Response: response})
}
