package controller

import (
	"errors"
	"strings"

	"cassie-be/internal/constant"
	"cassie-be/internal/dto"
	"cassie-be/internal/pkg/serverutils"
	"cassie-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Reply(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IReplyService
}

func NewChatController(service service.IReplyService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("/", c.Reply)
	h.Get("/:siteId/messages", c.History)
}

// Reply answers with a bare {"reply"} or {"error"} body, which embedded
// site widgets read directly. The body is always JSON whatever the
// Content-Type header says.
func (c *chatController) Reply(ctx *fiber.Ctx) error {
	var req dto.ReplyRequest
	if err := ctx.App().Config().JSONDecoder(ctx.Body(), &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ReplyErrorResponse{Error: constant.ErrMessageRequired})
	}
	req.IdempotencyKey = strings.TrimSpace(ctx.Get(IdempotencyKeyHeader))

	res, err := c.service.Reply(ctx.UserContext(), &req)
	if err != nil {
		if errors.Is(err, dto.ErrInvalidRequest) {
			return ctx.Status(fiber.StatusBadRequest).JSON(dto.ReplyErrorResponse{Error: constant.ErrMessageRequired})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.ReplyErrorResponse{Error: constant.ErrGenerateResponse})
	}
	return ctx.JSON(res)
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	res, err := c.service.History(ctx.UserContext(), ctx.Params("siteId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching messages", res))
}
