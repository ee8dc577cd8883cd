package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nguyenchibao12/job-backend/internal/domain"
	"github.com/nguyenchibao12/job-backend/internal/dto"
	"github.com/nguyenchibao12/job-backend/internal/helper"
	"github.com/nguyenchibao12/job-backend/internal/helper/utils"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// cookie first, then Authorization header
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
		}

		ctx.Locals("userID", user.UserID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

// OptionalAuth stashes claims when a valid token is present but lets the
// request through either way. Public detail routes use it so owners and
// admins see their own unapproved records.
func OptionalAuth(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}
		if tokenStr != "" {
			if user, err := auth.VerifyToken(tokenStr); err == nil {
				ctx.Locals("userID", user.UserID)
				ctx.Locals("user", user)
			}
		}
		return ctx.Next()
	}
}

func StudentOnly() fiber.Handler { return roleOnly(domain.RoleStudent) }

func RecruiterOnly() fiber.Handler { return roleOnly(domain.RoleRecruiter) }

func AdminOnly() fiber.Handler { return roleOnly(domain.RoleAdmin) }

func roleOnly(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, ok := ctx.Locals("user").(dto.AuthResponse)
		if !ok || user.UserID == 0 {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
		}
		for _, role := range roles {
			if user.Role == role {
				return ctx.Next()
			}
		}
		return utils.ResponseError(ctx, fiber.StatusForbidden, strings.Join(roles, " or ")+" only")
	}
}

// RolesAllowed gates a route on any of the listed roles.
func RolesAllowed(roles ...string) fiber.Handler { return roleOnly(roles...) }
