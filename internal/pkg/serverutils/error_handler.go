package serverutils

import (
	"errors"
	"fmt"

	"learner-account-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware recovers panics and turns errors returned by
// handlers into the standard error envelope.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Server", "Recovered from panic", map[string]interface{}{
					"path":  ctx.Path(),
					"error": fmt.Sprint(r),
				})
				err = ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal server error"))
			}
		}()

		err = ctx.Next()
		if err == nil {
			return nil
		}

		var verr *ValidationError
		if errors.As(err, &verr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(Response[map[string]string]{
				Success: false,
				Code:    400,
				Message: "Validation failed",
				Data:    verr.Fields,
			})
		}

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return ctx.Status(ferr.Code).JSON(ErrorResponse(ferr.Code, ferr.Message))
		}

		log.Error("Server", "Unhandled error", map[string]interface{}{"path": ctx.Path(), "error": err.Error()})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, err.Error()))
	}
}
