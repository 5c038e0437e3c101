package controller

import (
	"cassie-be/internal/pkg/serverutils"
	"cassie-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	GetAllPlans(ctx *fiber.Ctx) error
}

type planController struct {
	onboardingService service.IOnboardingService
}

func NewPlanController(onboardingService service.IOnboardingService) IPlanController {
	return &planController{onboardingService: onboardingService}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	r.Get("/plans", c.GetAllPlans)
}

// GetAllPlans returns the fixed plan catalog for the pricing page
// @Summary Get all plans
// @Tags Plans
// @Produce json
// @Router /api/plans [get]
func (c *planController) GetAllPlans(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", c.onboardingService.ListPlans()))
}
