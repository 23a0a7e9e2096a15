package controller

import (
	"errors"
	"time"

	"streetmix-be/internal/dto"
	"streetmix-be/internal/pkg/serverutils"
	"streetmix-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Navigate(ctx *fiber.Ctx) error
	UpdatePageURL(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
	jwtSecret      string
	tokenTTL       time.Duration
}

func NewSessionController(sessionService service.ISessionService, jwtSecret string, tokenTTL time.Duration) ISessionController {
	return &sessionController{
		sessionService: sessionService,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	r.Post("/sessions", c.Create)

	h := r.Group("/sessions/:id")
	h.Use(serverutils.SessionTokenMiddleware(c.jwtSecret))
	h.Get("", c.Show)
	h.Post("navigate", c.Navigate)
	h.Put("url", c.UpdatePageURL)
	h.Delete("", c.Delete)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	session, err := c.sessionService.Create(ctx.UserContext())
	if err != nil {
		return err
	}

	token, err := serverutils.IssueSessionToken(c.jwtSecret, session.Id, c.tokenTTL)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", dto.CreateSessionResponse{
		Session: session,
		Token:   token,
	}))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	session, err := c.sessionService.Get(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return sessionError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show session", session))
}

func (c *sessionController) Navigate(ctx *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	session, err := c.sessionService.Navigate(ctx.UserContext(), ctx.Params("id"), req.Path)
	if err != nil {
		return sessionError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success navigate", session))
}

func (c *sessionController) UpdatePageURL(ctx *fiber.Ctx) error {
	var req dto.UpdatePageURLRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	url, err := c.sessionService.UpdatePageURL(ctx.UserContext(), ctx.Params("id"), req.ForceGallery, req.Debug)
	if err != nil {
		return sessionError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update page url", dto.PageURLResponse{URL: url}))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	if err := c.sessionService.Delete(ctx.UserContext(), ctx.Params("id")); err != nil {
		return sessionError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func sessionError(err error) error {
	if errors.Is(err, service.ErrSessionNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	return err
}
