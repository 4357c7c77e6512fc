// FILE: internal/controller/champion_controller.go
package controller

import (
	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/pkg/serverutils"
	"champ-voting-be/internal/service"
	"champ-voting-be/pkg/filterutil"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChampionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
	Catalog(ctx *fiber.Ctx) error
	SearchCatalog(ctx *fiber.Ctx) error
}

type championController struct {
	viewService    service.IChampionViewService
	sessionService service.ISessionService
	catalogService service.ICatalogService
}

func NewChampionController(
	viewService service.IChampionViewService,
	sessionService service.ISessionService,
	catalogService service.ICatalogService,
) IChampionController {
	return &championController{
		viewService:    viewService,
		sessionService: sessionService,
		catalogService: catalogService,
	}
}

func (c *championController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/champions")
	h.Get("/catalog", c.Catalog)
	h.Get("/catalog/search", c.SearchCatalog)
	h.Get("/", c.List)
	h.Post("/", serverutils.JwtMiddleware, c.Add)
	h.Delete("/:id", serverutils.JwtMiddleware, serverutils.AdminMiddleware, c.Remove)
}

func (c *championController) currentSessionID() (string, error) {
	current := c.sessionService.Current()
	if current == nil {
		return "", service.ErrSessionNotFound
	}
	return current.Id, nil
}

// List serves the latest ordered snapshot. An optional q parameter narrows
// it by subsequence match on names.
func (c *championController) List(ctx *fiber.Ctx) error {
	sessionID, err := c.currentSessionID()
	if err != nil {
		return err
	}

	snapshot := c.viewService.Snapshot(sessionID)
	if query := ctx.Query("q"); query != "" {
		snapshot = filterutil.Filter(query, snapshot, func(champion *entity.Champion) string {
			return champion.Name
		})
	}

	return serverutils.SuccessResponse(ctx, "OK", fiber.Map{
		"session_id": sessionID,
		"champions":  toChampionResponses(snapshot),
	})
}

func (c *championController) Add(ctx *fiber.Ctx) error {
	sessionID, err := c.currentSessionID()
	if err != nil {
		return err
	}

	var req dto.AddChampionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.viewService.AddChampion(ctx.Context(), sessionID, serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Champion added", res)
}

func (c *championController) Remove(ctx *fiber.Ctx) error {
	sessionID, err := c.currentSessionID()
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid champion id")
	}

	if err := c.viewService.RemoveChampion(ctx.Context(), sessionID, id); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Champion removed", nil)
}

func (c *championController) Catalog(ctx *fiber.Ctx) error {
	return serverutils.SuccessResponse(ctx, "OK", c.catalogService.FetchAll(ctx.Context()))
}

func (c *championController) SearchCatalog(ctx *fiber.Ctx) error {
	return serverutils.SuccessResponse(ctx, "OK", c.catalogService.Search(ctx.Context(), ctx.Query("q")))
}
