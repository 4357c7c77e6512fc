// FILE: internal/controller/auth_controller.go
package controller

import (
	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/pkg/serverutils"
	"champ-voting-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Get("/me", serverutils.JwtMiddleware, c.Me)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "User registered successfully", res)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Login successful", res)
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userID, err := uuid.Parse(serverutils.UserID(ctx))
	if err != nil {
		return service.ErrNotAuthenticated
	}

	res, err := c.service.Me(ctx.Context(), userID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "OK", res)
}
