package controller

import (
	"errors"

	"streetmix-be/internal/dto"
	"streetmix-be/internal/pkg/serverutils"
	"streetmix-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const msgEmptyFeedback = "Please specify a message."

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
	r.Post("/feedback", c.Submit)
}

// Submit accepts a feedback message for delivery. The mail goes out after
// the response.
func (c *feedbackController) Submit(ctx *fiber.Ctx) error {
	if len(ctx.Body()) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, msgEmptyFeedback)
	}

	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not parse body as JSON.")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.feedbackService.Submit(ctx.UserContext(), &req, service.FeedbackMeta{
		Referer:   ctx.Get(fiber.HeaderReferer),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
	})
	if errors.Is(err, service.ErrEmptyMessage) {
		return fiber.NewError(fiber.StatusBadRequest, msgEmptyFeedback)
	}
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.AcceptedResponse("Feedback accepted.", res))
}
