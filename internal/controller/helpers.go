package controller

import (
	"context"
	"errors"

	"learner-account-be/internal/pkg/lmsclient"
	"learner-account-be/internal/pkg/serverutils"
	"learner-account-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

func currentUser(ctx *fiber.Ctx) service.UserRef {
	userId, _ := ctx.Locals(serverutils.LocalUserId).(string)
	username, _ := ctx.Locals(serverutils.LocalUsername).(string)
	return service.UserRef{Id: userId, Username: username}
}

// upstreamContext carries the caller's token to the LMS transport.
func upstreamContext(ctx *fiber.Ctx) context.Context {
	token, _ := ctx.Locals(serverutils.LocalToken).(string)
	return lmsclient.ContextWithToken(ctx.UserContext(), token)
}

// upstreamError passes LMS status codes and bodies through; anything else
// is a gateway failure.
func upstreamError(ctx *fiber.Ctx, err error) error {
	var httpErr *lmsclient.HTTPError
	if errors.As(err, &httpErr) {
		ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return ctx.Status(httpErr.StatusCode).Send(httpErr.Body)
	}
	return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, err.Error()))
}
