package controller

import (
	"cassie-be/internal/pkg/serverutils"
	"cassie-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router)
	GetDashboard(ctx *fiber.Ctx) error
}

type dashboardController struct {
	service service.IDashboardService
}

func NewDashboardController(service service.IDashboardService) IDashboardController {
	return &dashboardController{service: service}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router) {
	r.Get("/dashboard", serverutils.JwtMiddleware, c.GetDashboard)
}

func (c *dashboardController) GetDashboard(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.GetDashboard(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching dashboard", res))
}
