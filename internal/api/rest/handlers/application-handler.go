package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nguyenchibao12/job-backend/internal/api/rest/middleware"
	"github.com/nguyenchibao12/job-backend/internal/dto"
	"github.com/nguyenchibao12/job-backend/internal/helper"
	"github.com/nguyenchibao12/job-backend/internal/helper/utils"
	"github.com/nguyenchibao12/job-backend/internal/services"
)

type ApplicationHandler struct {
	svc  services.ApplicationService
	auth helper.Auth
}

func NewApplicationHandler(svc services.ApplicationService, auth helper.Auth) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, auth: auth}
}

func (h *ApplicationHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	apps := api.Group("/applications", middleware.AuthMiddleware(h.auth))
	apps.Post("/", middleware.StudentOnly(), h.Apply)
	apps.Get("/mine", middleware.StudentOnly(), h.ListMine)
	apps.Get("/job/:jobID", middleware.RecruiterOnly(), h.ListForJob)
	apps.Patch("/:id/status", middleware.RecruiterOnly(), h.UpdateStatus)
}

func (h *ApplicationHandler) Apply(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	var requestBody dto.CreateApplicationRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	app, err := h.svc.Apply(claims.UserID, requestBody)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, app)
}

func (h *ApplicationHandler) ListMine(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	apps, err := h.svc.ListMine(claims.UserID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, apps)
}

func (h *ApplicationHandler) ListForJob(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	jobID, err := ctx.ParamsInt("jobID")
	if err != nil || jobID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}

	apps, err := h.svc.ListForJob(claims.UserID, uint(jobID))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, apps)
}

func (h *ApplicationHandler) UpdateStatus(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	appID, err := ctx.ParamsInt("id")
	if err != nil || appID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid application id")
	}

	var requestBody dto.UpdateApplicationStatusRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	app, err := h.svc.UpdateStatus(claims.UserID, uint(appID), requestBody)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}
