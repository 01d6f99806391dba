package serverutils

import (
	"errors"

	"ai-intake-be/internal/constant"
	"ai-intake-be/pkg/triage"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts service errors into JSON envelopes.
// Validation problems block a single turn with 400; unknown or finished
// sessions are 404/409; anything else is a 500 with a generic message.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": ve.Error()})
		case errors.Is(err, triage.ErrEmptyAnswer):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": constant.EmptyAnswerPrompt})
		case errors.Is(err, triage.ErrSessionNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, triage.ErrSessionFinished):
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrUnauthorized):
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
}

// Sentinel errors shared by services and the error handler.
var (
	ErrUnauthorized = errors.New("invalid credentials")
	ErrNotFound     = errors.New("resource not found")
)
