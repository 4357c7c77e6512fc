// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"champ-voting-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors to HTTP statuses so controllers
// can simply return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ErrorResponse(ctx, fiberErr.Code, fiberErr.Message)
		}

		switch {
		case errors.Is(err, service.ErrNotAuthenticated):
			return ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			return ErrorResponse(ctx, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrSessionNotFound),
			errors.Is(err, service.ErrChampionNotFound):
			return ErrorResponse(ctx, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyVoted),
			errors.Is(err, service.ErrDuplicateChampion),
			errors.Is(err, service.ErrEmailTaken):
			return ErrorResponse(ctx, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrEmptyChampionName):
			return ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStoreUnavailable):
			return ErrorResponse(ctx, fiber.StatusServiceUnavailable, err.Error())
		}

		return ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
}
