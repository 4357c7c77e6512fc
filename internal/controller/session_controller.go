// FILE: internal/controller/session_controller.go
package controller

import (
	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/pkg/serverutils"
	"champ-voting-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Current(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Get("/current", c.Current)

	h.Get("/", serverutils.JwtMiddleware, serverutils.AdminMiddleware, c.List)
	h.Post("/reset", serverutils.JwtMiddleware, serverutils.AdminMiddleware, c.Reset)
	h.Put("/:id", serverutils.JwtMiddleware, serverutils.AdminMiddleware, c.Update)
	h.Delete("/:id", serverutils.JwtMiddleware, serverutils.AdminMiddleware, c.Delete)
}

func (c *sessionController) Current(ctx *fiber.Ctx) error {
	current := c.service.Current()
	if current == nil {
		return service.ErrSessionNotFound
	}
	return serverutils.SuccessResponse(ctx, "OK", toSessionResponse(current))
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	sessions, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "OK", sessions)
}

// Reset starts a fresh session. The old one stays in the store but is no
// longer reachable as current.
func (c *sessionController) Reset(ctx *fiber.Ctx) error {
	var req dto.ResetSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	session, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Session reset", toSessionResponse(session))
}

func (c *sessionController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Id = ctx.Params("id")

	if err := c.service.Update(ctx.Context(), &req); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Session updated", nil)
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Session deleted", nil)
}
