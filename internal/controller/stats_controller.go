// FILE: internal/controller/stats_controller.go
package controller

import (
	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/pkg/serverutils"
	"champ-voting-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStatsController interface {
	RegisterRoutes(r fiber.Router)
	Stats(ctx *fiber.Ctx) error
}

type statsController struct {
	viewService    service.IChampionViewService
	sessionService service.ISessionService
}

func NewStatsController(viewService service.IChampionViewService, sessionService service.ISessionService) IStatsController {
	return &statsController{
		viewService:    viewService,
		sessionService: sessionService,
	}
}

func (c *statsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/stats")
	h.Get("/", serverutils.OptionalJwtMiddleware, c.Stats)
}

// Stats recomputes all aggregates from the latest snapshot on every call.
func (c *statsController) Stats(ctx *fiber.Ctx) error {
	current := c.sessionService.Current()
	if current == nil {
		return service.ErrSessionNotFound
	}

	snapshot := c.viewService.Snapshot(current.Id)

	res := &dto.StatsResponse{
		SessionId:     current.Id,
		TotalVotes:    service.TotalVotes(snapshot),
		ChampionCount: len(snapshot),
		MyVotes:       service.UserVoteCount(snapshot, serverutils.UserID(ctx)),
	}
	if leader := service.LeadingChampion(snapshot); leader != nil {
		res.Leader = toChampionResponse(leader)
	}

	return serverutils.SuccessResponse(ctx, "OK", res)
}
