package serverutils

import "github.com/gofiber/fiber/v2"

type APIResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(ctx *fiber.Ctx, status int, message string, data interface{}) error {
	return ctx.Status(status).JSON(APIResponse{Message: message, Data: data})
}
