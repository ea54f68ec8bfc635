package handlers

import (
	"log/slog"
	"net/http"

	"homologation-service/internal/services"
	"homologation-service/utils"

	"github.com/gofiber/fiber/v3"
)

type CategoryHandler struct {
	catalogService *services.CatalogService
}

func NewCategoryHandler(catalogService *services.CatalogService) *CategoryHandler {
	return &CategoryHandler{
		catalogService: catalogService,
	}
}

func (ch *CategoryHandler) Register(app *fiber.App) {
	protectedGr := app.Group("homologation/protected/api/v1")

	categoryGroup := protectedGr.Group("/categories")
	categoryGroup.Post("/", ch.CreateCategory)
	categoryGroup.Get("/", ch.GetAllCategories)
	categoryGroup.Get("/:code", ch.GetCategoryByCode)
}

func (ch *CategoryHandler) CreateCategory(c fiber.Ctx) error {
	var req struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	category, err := ch.catalogService.CreateCategory(c.Context(), req.Code, req.Name)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("CREATION_FAILED", err.Error()))
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(category))
}

func (ch *CategoryHandler) GetAllCategories(c fiber.Ctx) error {
	categories, err := ch.catalogService.GetAllCategories(c.Context())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse("FETCH_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(categories))
}

func (ch *CategoryHandler) GetCategoryByCode(c fiber.Ctx) error {
	category, err := ch.catalogService.GetCategoryByCode(c.Context(), c.Params("code"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(category))
}
