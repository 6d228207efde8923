package controller

import (
	"learner-account-be/internal/dto"
	"learner-account-be/internal/pkg/serverutils"
	"learner-account-be/internal/service"
	internalWS "learner-account-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IDeleteAccountController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetView(ctx *fiber.Ctx) error
	RequestConfirmation(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
	StreamState(ctx *fiber.Ctx) error
}

type deleteAccountController struct {
	service service.IDeleteAccountService
	hub     *internalWS.Hub
}

func NewDeleteAccountController(service service.IDeleteAccountService, hub *internalWS.Hub) IDeleteAccountController {
	return &deleteAccountController{service: service, hub: hub}
}

func (c *deleteAccountController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/account-settings/delete-account")
	h.Use(auth)
	h.Get("/", c.GetView)
	h.Post("/confirmation", c.RequestConfirmation)
	h.Put("/password", c.ChangePassword)
	h.Post("/submit", c.Submit)
	h.Post("/cancel", c.Cancel)
	h.Get("/close", c.Close)
	h.Get("/ws", c.StreamState)
}

func (c *deleteAccountController) GetView(ctx *fiber.Ctx) error {
	view, err := c.service.View(upstreamContext(ctx), currentUser(ctx), ctx.Get(fiber.HeaderAcceptLanguage))
	if err != nil {
		return upstreamError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Delete account", view))
}

// RequestConfirmation is the delete button. An ineligible account gets the
// unchanged view back.
func (c *deleteAccountController) RequestConfirmation(ctx *fiber.Ctx) error {
	view, _, err := c.service.RequestConfirmation(upstreamContext(ctx), currentUser(ctx), ctx.Get(fiber.HeaderAcceptLanguage))
	if err != nil {
		return upstreamError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Delete account", view))
}

func (c *deleteAccountController) ChangePassword(ctx *fiber.Ctx) error {
	var req dto.PasswordChangeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	view, err := c.service.ChangePassword(upstreamContext(ctx), currentUser(ctx), req.Password, ctx.Get(fiber.HeaderAcceptLanguage))
	if err != nil {
		return upstreamError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Delete account", view))
}

func (c *deleteAccountController) Submit(ctx *fiber.Ctx) error {
	view, err := c.service.Submit(upstreamContext(ctx), currentUser(ctx), ctx.Get(fiber.HeaderAcceptLanguage))
	if err != nil {
		return upstreamError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Delete account", view))
}

func (c *deleteAccountController) Cancel(ctx *fiber.Ctx) error {
	view, err := c.service.Cancel(upstreamContext(ctx), currentUser(ctx), ctx.Get(fiber.HeaderAcceptLanguage))
	if err != nil {
		return upstreamError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Delete account", view))
}

// Close is a full page redirect, not an API response.
func (c *deleteAccountController) Close(ctx *fiber.Ctx) error {
	return ctx.Redirect(c.service.Close(ctx.UserContext(), currentUser(ctx)), fiber.StatusSeeOther)
}

func (c *deleteAccountController) StreamState(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	userId := currentUser(ctx).Id
	var initial []byte
	if state, ok := c.service.Snapshot(userId); ok {
		initial = internalWS.EncodeState(dto.FlowStateMessage{
			Status:    string(state.Status),
			ErrorType: string(state.ErrorType),
		})
	}

	return websocket.New(func(conn *websocket.Conn) {
		internalWS.ServeWs(c.hub, conn, userId, initial)
	})(ctx)
}
