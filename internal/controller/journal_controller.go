package controller

import (
	"cassie-be/internal/dto"
	"cassie-be/internal/pkg/serverutils"
	"cassie-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IJournalController interface {
	RegisterRoutes(r fiber.Router)
	CurrentPrompt(ctx *fiber.Ctx) error
	NewPrompt(ctx *fiber.Ctx) error
	CreateEntry(ctx *fiber.Ctx) error
	ListEntries(ctx *fiber.Ctx) error
}

type journalController struct {
	service service.IJournalService
}

func NewJournalController(service service.IJournalService) IJournalController {
	return &journalController{service: service}
}

func (c *journalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/journal", serverutils.JwtMiddleware)
	h.Get("/prompt", c.CurrentPrompt)
	h.Get("/prompt/new", c.NewPrompt)
	h.Post("/entries", c.CreateEntry)
	h.Get("/entries", c.ListEntries)
}

func (c *journalController) CurrentPrompt(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.CurrentPrompt(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching prompt", res))
}

func (c *journalController) NewPrompt(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.NewPrompt(ctx.UserContext(), userId, ctx.Query("category"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching prompt", res))
}

func (c *journalController) CreateEntry(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateJournalEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateEntry(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Entry saved", res))
}

func (c *journalController) ListEntries(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.ListEntries(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching entries", res))
}
