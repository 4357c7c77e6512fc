// FILE: internal/controller/oauth_controller.go
package controller

import (
	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/pkg/serverutils"
	"champ-voting-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	GoogleLogin(ctx *fiber.Ctx) error
}

type oauthController struct {
	service service.IOAuthService
}

func NewOAuthController(service service.IOAuthService) IOAuthController {
	return &oauthController{service: service}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/google", c.GoogleLogin)
}

func (c *oauthController) GoogleLogin(ctx *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.GoogleLogin(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Login successful", res)
}
