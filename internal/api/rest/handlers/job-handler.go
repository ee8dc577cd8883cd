package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nguyenchibao12/job-backend/internal/api/rest/middleware"
	"github.com/nguyenchibao12/job-backend/internal/dto"
	"github.com/nguyenchibao12/job-backend/internal/helper"
	"github.com/nguyenchibao12/job-backend/internal/helper/utils"
	"github.com/nguyenchibao12/job-backend/internal/services"
)

type JobHandler struct {
	svc  services.JobService
	auth helper.Auth
}

func NewJobHandler(svc services.JobService, auth helper.Auth) *JobHandler {
	return &JobHandler{svc: svc, auth: auth}
}

func (h *JobHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	jobs := api.Group("/jobs")
	jobs.Get("/", h.ListApproved)
	jobs.Get("/mine", middleware.AuthMiddleware(h.auth), middleware.RecruiterOnly(), h.ListMine)
	jobs.Get("/:id", middleware.OptionalAuth(h.auth), h.GetJob)
	jobs.Post("/", middleware.AuthMiddleware(h.auth), middleware.RecruiterOnly(), h.CreateJob)
	jobs.Put("/:id", middleware.AuthMiddleware(h.auth), middleware.RecruiterOnly(), h.UpdateJob)
	jobs.Post("/:id/payment-proof", middleware.AuthMiddleware(h.auth), middleware.RecruiterOnly(), h.UploadPaymentProof)
	jobs.Delete("/:id", middleware.AuthMiddleware(h.auth), h.DeleteJob)

	admin := api.Group("/admin", middleware.AuthMiddleware(h.auth), middleware.AdminOnly())
	admin.Get("/jobs/pending", h.ListPending)
	admin.Patch("/jobs/:id/review", h.ReviewJob)
	admin.Get("/transactions", h.Transactions)
}

func (h *JobHandler) ListApproved(ctx *fiber.Ctx) error {
	filter := dto.JobListFilter{
		Type:     ctx.Query("type"),
		Location: ctx.Query("location"),
		Search:   ctx.Query("search"),
	}

	jobs, err := h.svc.ListApproved(filter)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, jobs)
}

func (h *JobHandler) GetJob(ctx *fiber.Ctx) error {
	jobID, err := ctx.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}

	// anonymous viewers see approved jobs only
	claims, _ := h.auth.GetCurrentUser(ctx)

	job, err := h.svc.GetJob(uint(jobID), claims.UserID, claims.Role)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, job)
}

func (h *JobHandler) CreateJob(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	var requestBody dto.CreateJobRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	job, err := h.svc.CreateJob(claims.UserID, requestBody)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, job)
}

func (h *JobHandler) UpdateJob(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	jobID, err := ctx.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}

	var requestBody dto.UpdateJobRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	job, err := h.svc.UpdateJob(claims.UserID, uint(jobID), requestBody)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, job)
}

func (h *JobHandler) UploadPaymentProof(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	jobID, err := ctx.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}

	var requestBody dto.PaymentProofRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	job, err := h.svc.UploadPaymentProof(ctx.Context(), claims.UserID, uint(jobID), requestBody)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, job)
}

func (h *JobHandler) DeleteJob(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	jobID, err := ctx.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}

	if err := h.svc.DeleteJob(claims.UserID, claims.Role, uint(jobID)); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "job deleted")
}

func (h *JobHandler) ListMine(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	jobs, err := h.svc.ListByRecruiter(claims.UserID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, jobs)
}

func (h *JobHandler) ListPending(ctx *fiber.Ctx) error {
	jobs, err := h.svc.ListPendingApproval()
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, jobs)
}

func (h *JobHandler) ReviewJob(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	jobID, err := ctx.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid job id")
	}

	var requestBody dto.ReviewRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	job, err := h.svc.ReviewJob(claims.UserID, uint(jobID), requestBody)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, job)
}

func (h *JobHandler) Transactions(ctx *fiber.Ctx) error {
	report, err := h.svc.Transactions()
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, report)
}
