package controller

import (
	"ai-intake-be/internal/dto"
	"ai-intake-be/internal/pkg/serverutils"
	"ai-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) RegisterRoutes(router fiber.Router) {
	router.Post("/auth/v1/login", c.Login)
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	resp, err := c.authService.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Login successful", resp)
}
