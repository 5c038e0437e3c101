package controller

import (
	"errors"

	"cassie-be/internal/constant"
	"cassie-be/internal/dto"
	"cassie-be/internal/pkg/serverutils"
	"cassie-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICoachController interface {
	RegisterRoutes(r fiber.Router)
	Intro(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
}

type coachController struct {
	service service.ICoachService
}

func NewCoachController(service service.ICoachService) ICoachController {
	return &coachController{service: service}
}

func (c *coachController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/coach", serverutils.JwtMiddleware)
	h.Get("/", c.Intro)
	h.Post("/messages", c.SendMessage)
}

func (c *coachController) Intro(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.Intro(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching coach", res))
}

func (c *coachController) SendMessage(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.CoachMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.service.SendMessage(ctx.UserContext(), userId, &req)
	if err != nil {
		if errors.Is(err, dto.ErrInvalidRequest) || errors.Is(err, dto.ErrOnboardingIncomplete) {
			return err
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, constant.CoachErrorReply))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
