package controller

import (
	"encoding/json"

	"learner-account-be/internal/dto"
	"learner-account-be/internal/pkg/serverutils"
	"learner-account-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INotificationPreferenceController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetCourseList(ctx *fiber.Ctx) error
	GetCourseNotificationPreferences(ctx *fiber.Ctx) error
	PatchAppPreferenceToggle(ctx *fiber.Ctx) error
	PatchPreferenceToggle(ctx *fiber.Ctx) error
}

type notificationPreferenceController struct {
	service service.INotificationPreferenceService
}

func NewNotificationPreferenceController(service service.INotificationPreferenceService) INotificationPreferenceController {
	return &notificationPreferenceController{service: service}
}

func (c *notificationPreferenceController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/notification-preferences")
	h.Use(auth)
	h.Get("/enrollments", c.GetCourseList)
	h.Get("/configurations/:courseId", c.GetCourseNotificationPreferences)
	h.Patch("/configurations/:courseId/apps/:appId", c.PatchAppPreferenceToggle)
	h.Patch("/configurations/:courseId/apps/:appId/types/:type/channels/:channel", c.PatchPreferenceToggle)
}

// raw writes the upstream payload through untouched.
func raw(ctx *fiber.Ctx, data json.RawMessage) error {
	if data == nil {
		return ctx.SendStatus(fiber.StatusNoContent)
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Send(data)
}

func (c *notificationPreferenceController) GetCourseList(ctx *fiber.Ctx) error {
	data, err := c.service.GetCourseList(upstreamContext(ctx))
	if err != nil {
		return upstreamError(ctx, err)
	}
	return raw(ctx, data)
}

func (c *notificationPreferenceController) GetCourseNotificationPreferences(ctx *fiber.Ctx) error {
	data, err := c.service.GetCourseNotificationPreferences(upstreamContext(ctx), ctx.Params("courseId"))
	if err != nil {
		return upstreamError(ctx, err)
	}
	return raw(ctx, data)
}

func (c *notificationPreferenceController) PatchAppPreferenceToggle(ctx *fiber.Ctx) error {
	var req dto.PreferenceToggleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	data, err := c.service.PatchAppPreferenceToggle(upstreamContext(ctx), ctx.Params("courseId"), ctx.Params("appId"), *req.Value)
	if err != nil {
		return upstreamError(ctx, err)
	}
	return raw(ctx, data)
}

func (c *notificationPreferenceController) PatchPreferenceToggle(ctx *fiber.Ctx) error {
	var req dto.PreferenceToggleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	data, err := c.service.PatchPreferenceToggle(
		upstreamContext(ctx),
		ctx.Params("courseId"),
		ctx.Params("appId"),
		ctx.Params("type"),
		ctx.Params("channel"),
		*req.Value,
	)
	if err != nil {
		return upstreamError(ctx, err)
	}
	return raw(ctx, data)
}
