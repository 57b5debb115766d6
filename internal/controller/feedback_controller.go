package controller

import (
	"praxis-chat-be/internal/dto"
	"praxis-chat-be/internal/pkg/serverutils"
	"praxis-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
}

type feedbackController struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackController(feedbackService service.IFeedbackService) IFeedbackController {
	return &feedbackController{
		feedbackService: feedbackService,
	}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feedback/v1")
	h.Post("", c.Submit)
}

func (c *feedbackController) Submit(ctx *fiber.Ctx) error {
	var request dto.SendFeedbackRequest
	if err := ctx.BodyParser(&request); err != nil {
		return serverutils.NewValidationError("Invalid body")
	}

	res, err := c.feedbackService.Submit(ctx.Context(), &request)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
