package controller

import (
	"ai-intake-be/internal/constant"
	"ai-intake-be/internal/dto"
	"ai-intake-be/internal/pkg/serverutils"
	"ai-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IntakeController struct {
	intakeService service.IIntakeService
}

func NewIntakeController(intakeService service.IIntakeService) *IntakeController {
	return &IntakeController{intakeService: intakeService}
}

func (c *IntakeController) RegisterRoutes(router fiber.Router) {
	intake := router.Group("/intake/v1")
	intake.Get("/consent", c.GetConsentTerm)
	intake.Post("/session", c.StartSession)
	intake.Get("/session/:id", c.GetSession)
	intake.Post("/session/:id/message", c.SendMessage)
}

// GetConsentTerm returns the informed-consent text shown before a session
// can be started.
func (c *IntakeController) GetConsentTerm(ctx *fiber.Ctx) error {
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Consent term", &dto.ConsentTermResponse{
		Term: constant.ConsentTerm,
	})
}

func (c *IntakeController) StartSession(ctx *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := c.intakeService.StartSession(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	status := fiber.StatusCreated
	if resp.Id == "" {
		// Consent declined: nothing was created.
		status = fiber.StatusOK
	}
	return serverutils.SuccessResponse(ctx, status, "Session", resp)
}

func (c *IntakeController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	resp, err := c.intakeService.SendMessage(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Turn processed", resp)
}

func (c *IntakeController) GetSession(ctx *fiber.Ctx) error {
	resp, err := c.intakeService.GetSession(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Session", resp)
}
