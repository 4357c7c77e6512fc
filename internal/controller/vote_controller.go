// FILE: internal/controller/vote_controller.go
package controller

import (
	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/pkg/serverutils"
	"champ-voting-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IVoteController interface {
	RegisterRoutes(r fiber.Router)
	Vote(ctx *fiber.Ctx) error
	Unvote(ctx *fiber.Ctx) error
	Mine(ctx *fiber.Ctx) error
}

type voteController struct {
	voteService    service.IVoteService
	sessionService service.ISessionService
}

func NewVoteController(voteService service.IVoteService, sessionService service.ISessionService) IVoteController {
	return &voteController{
		voteService:    voteService,
		sessionService: sessionService,
	}
}

func (c *voteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/votes", serverutils.JwtMiddleware)
	h.Get("/mine", c.Mine)
	h.Post("/:championId", c.Vote)
	h.Delete("/:championId", c.Unvote)
}

func (c *voteController) currentSessionID() (string, error) {
	current := c.sessionService.Current()
	if current == nil {
		return "", service.ErrSessionNotFound
	}
	return current.Id, nil
}

func (c *voteController) Vote(ctx *fiber.Ctx) error {
	sessionID, err := c.currentSessionID()
	if err != nil {
		return err
	}

	championID, err := uuid.Parse(ctx.Params("championId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid champion id")
	}

	if err := c.voteService.Vote(ctx.Context(), sessionID, championID, serverutils.UserID(ctx)); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Vote recorded", &dto.VoteResponse{
		ChampionId: championID,
		SessionId:  sessionID,
	})
}

func (c *voteController) Unvote(ctx *fiber.Ctx) error {
	sessionID, err := c.currentSessionID()
	if err != nil {
		return err
	}

	championID, err := uuid.Parse(ctx.Params("championId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid champion id")
	}

	if err := c.voteService.Unvote(ctx.Context(), sessionID, championID, serverutils.UserID(ctx)); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Vote removed", &dto.VoteResponse{
		ChampionId: championID,
		SessionId:  sessionID,
	})
}

func (c *voteController) Mine(ctx *fiber.Ctx) error {
	sessionID, err := c.currentSessionID()
	if err != nil {
		return err
	}

	ids, err := c.voteService.VotesBy(ctx.Context(), sessionID, serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "OK", &dto.MyVotesResponse{
		SessionId:   sessionID,
		ChampionIds: ids,
	})
}
