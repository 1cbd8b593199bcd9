package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/anonqa-service/internal/api/dto"
	"github.com/spec-kit/anonqa-service/internal/domain"
	"github.com/spec-kit/anonqa-service/internal/service"
	apperrors "github.com/spec-kit/anonqa-service/pkg/util"
)

// UsersHandler exposes profile endpoints.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// Create handles POST /api/users/create.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body")
	}

	user, err := h.service.CreateUser(c.UserContext(), req.UserID, req.Name)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    userResponse(user),
	})
}

// Get handles GET /api/users/:userId.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.service.GetUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    userResponse(user),
	})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{UserID: user.UserID, Name: user.Name}
}
