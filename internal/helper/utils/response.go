package utils

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/nguyenchibao12/job-backend/internal/common"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

// ResponseFromError maps a coded service error onto an HTTP response.
// Uncoded errors are logged with detail and answered with a generic message.
func ResponseFromError(ctx *fiber.Ctx, err error) error {
	switch common.ErrCode(err) {
	case common.CodeValidation:
		return ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	case common.CodeUnauthenticated:
		return ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	case common.CodeForbidden:
		return ResponseError(ctx, fiber.StatusForbidden, err.Error())
	case common.CodeNotFound:
		return ResponseError(ctx, fiber.StatusNotFound, err.Error())
	case common.CodeConflict:
		return ResponseError(ctx, fiber.StatusConflict, err.Error())
	case common.CodeDependency:
		return ResponseError(ctx, fiber.StatusBadGateway, err.Error())
	default:
		log.Printf("internal error on %s %s: %v", ctx.Method(), ctx.Path(), err)
		return ResponseError(ctx, fiber.StatusInternalServerError, "internal server error")
	}
}
