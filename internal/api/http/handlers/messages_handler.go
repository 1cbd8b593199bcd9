package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/anonqa-service/internal/api/dto"
	"github.com/spec-kit/anonqa-service/internal/domain"
	"github.com/spec-kit/anonqa-service/internal/service"
	apperrors "github.com/spec-kit/anonqa-service/pkg/util"
)

// MessagesHandler exposes anonymous answer endpoints.
type MessagesHandler struct {
	service *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.MessageService) *MessagesHandler {
	return &MessagesHandler{service: messageService}
}

// Create handles POST /api/messages/create.
func (h *MessagesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body")
	}

	msg, err := h.service.CreateMessage(c.UserContext(), req.MessageID, req.UserID, req.Question, req.Answer)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fiber.Map{"messageId": msg.MessageID},
	})
}

// List handles GET /api/messages/:userId.
func (h *MessagesHandler) List(c *fiber.Ctx) error {
	messages, err := h.service.ListMessages(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, messageResponse(&messages[i]))
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"messages": items,
		"count":    len(items),
	})
}

// Delete handles DELETE /api/messages/:messageId. The authoritative
// messageId and the owner proof both travel in the body.
func (h *MessagesHandler) Delete(c *fiber.Ctx) error {
	var req dto.DeleteMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body")
	}

	if err := h.service.DeleteMessage(c.UserContext(), req.MessageID, req.UserID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

func messageResponse(msg *domain.Message) dto.MessageResponse {
	return dto.MessageResponse{
		MessageID: msg.MessageID,
		Question:  msg.Question,
		Answer:    msg.Answer,
		CreatedAt: msg.CreatedAt,
	}
}
