package controller

import (
	"streetmix-be/internal/dto"
	"streetmix-be/internal/pkg/serverutils"
	"streetmix-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRouteController interface {
	RegisterRoutes(r fiber.Router)
	Resolve(ctx *fiber.Ctx) error
	BuildPageURL(ctx *fiber.Ctx) error
}

type routeController struct {
	routeService service.IRouteService
}

func NewRouteController(routeService service.IRouteService) IRouteController {
	return &routeController{
		routeService: routeService,
	}
}

func (c *routeController) RegisterRoutes(r fiber.Router) {
	r.Get("/routes/resolve", c.Resolve)
	r.Post("/page-url", c.BuildPageURL)
}

// Resolve reports which mode a location path selects. A missing path is
// the root.
func (c *routeController) Resolve(ctx *fiber.Ctx) error {
	res := c.routeService.Resolve(ctx.Query("path"))
	return ctx.JSON(serverutils.SuccessResponse("Success resolve route", res))
}

func (c *routeController) BuildPageURL(ctx *fiber.Ctx) error {
	var req dto.BuildPageURLRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res := c.routeService.BuildPageURL(&req)
	return ctx.JSON(serverutils.SuccessResponse("Success build page url", res))
}
