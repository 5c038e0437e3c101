package controller

import (
	"cassie-be/internal/dto"
	"cassie-be/internal/pkg/serverutils"
	"cassie-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOnboardingController interface {
	RegisterRoutes(r fiber.Router)
	GetProfile(ctx *fiber.Ctx) error
	SelectPlan(ctx *fiber.Ctx) error
	SetRecipient(ctx *fiber.Ctx) error
}

type onboardingController struct {
	service service.IOnboardingService
}

func NewOnboardingController(service service.IOnboardingService) IOnboardingController {
	return &onboardingController{service: service}
}

func (c *onboardingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/onboarding", serverutils.JwtMiddleware)
	h.Get("/", c.GetProfile)
	h.Post("/plan", c.SelectPlan)
	h.Post("/recipient", c.SetRecipient)
}

func (c *onboardingController) GetProfile(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.GetProfile(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching onboarding", res))
}

func (c *onboardingController) SelectPlan(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.SelectPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.SelectPlan(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan selected", res))
}

func (c *onboardingController) SetRecipient(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.SetRecipientRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.service.SetRecipient(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Recipient saved", res))
}
