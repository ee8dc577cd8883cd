package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nguyenchibao12/job-backend/internal/api/rest/middleware"
	"github.com/nguyenchibao12/job-backend/internal/domain"
	"github.com/nguyenchibao12/job-backend/internal/dto"
	"github.com/nguyenchibao12/job-backend/internal/helper"
	"github.com/nguyenchibao12/job-backend/internal/helper/utils"
	"github.com/nguyenchibao12/job-backend/internal/services"
)

type BlogHandler struct {
	svc  services.BlogService
	auth helper.Auth
}

func NewBlogHandler(svc services.BlogService, auth helper.Auth) *BlogHandler {
	return &BlogHandler{svc: svc, auth: auth}
}

func (h *BlogHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	blogs := api.Group("/blogs")
	blogs.Get("/", h.ListApproved)
	blogs.Get("/mine", middleware.AuthMiddleware(h.auth),
		middleware.RolesAllowed(domain.RoleAdmin, domain.RoleRecruiter), h.ListMine)
	blogs.Get("/:id", middleware.OptionalAuth(h.auth), h.GetBlog)
	blogs.Post("/", middleware.AuthMiddleware(h.auth),
		middleware.RolesAllowed(domain.RoleAdmin, domain.RoleRecruiter), h.CreateBlog)
	blogs.Delete("/:id", middleware.AuthMiddleware(h.auth), h.DeleteBlog)

	admin := api.Group("/admin", middleware.AuthMiddleware(h.auth), middleware.AdminOnly())
	admin.Get("/blogs/pending", h.ListPending)
	admin.Patch("/blogs/:id/review", h.ReviewBlog)
}

func (h *BlogHandler) ListApproved(ctx *fiber.Ctx) error {
	filter := dto.BlogListFilter{
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
	}

	blogs, err := h.svc.ListApproved(filter)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, blogs)
}

func (h *BlogHandler) GetBlog(ctx *fiber.Ctx) error {
	blogID, err := ctx.ParamsInt("id")
	if err != nil || blogID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid blog id")
	}

	claims, _ := h.auth.GetCurrentUser(ctx)

	blog, err := h.svc.GetBlog(uint(blogID), claims.UserID, claims.Role)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, blog)
}

func (h *BlogHandler) CreateBlog(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	var requestBody dto.CreateBlogRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	blog, err := h.svc.CreateBlog(ctx.Context(), claims.UserID, claims.Role, requestBody)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, blog)
}

func (h *BlogHandler) ListMine(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	blogs, err := h.svc.ListMine(claims.UserID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, blogs)
}

func (h *BlogHandler) ListPending(ctx *fiber.Ctx) error {
	blogs, err := h.svc.ListPending()
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, blogs)
}

func (h *BlogHandler) ReviewBlog(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	blogID, err := ctx.ParamsInt("id")
	if err != nil || blogID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid blog id")
	}

	var requestBody dto.ReviewRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	blog, err := h.svc.ReviewBlog(claims.UserID, uint(blogID), requestBody)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, blog)
}

func (h *BlogHandler) DeleteBlog(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	blogID, err := ctx.ParamsInt("id")
	if err != nil || blogID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid blog id")
	}

	if err := h.svc.DeleteBlog(claims.UserID, claims.Role, uint(blogID)); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "blog deleted")
}
