package handlers

import (
	"log/slog"
	"net/http"

	"homologation-service/internal/models"
	"homologation-service/internal/services"
	"homologation-service/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ElementHandler struct {
	elementService *services.ElementService
}

func NewElementHandler(elementService *services.ElementService) *ElementHandler {
	return &ElementHandler{
		elementService: elementService,
	}
}

func (eh *ElementHandler) Register(app *fiber.App) {
	protectedGr := app.Group("homologation/protected/api/v1")

	elementGroup := protectedGr.Group("/elements")
	elementGroup.Post("/", eh.CreateElement)
	elementGroup.Get("/:id", eh.GetElementByID)
	elementGroup.Put("/:id", eh.UpdateElement)
	elementGroup.Delete("/:id", eh.DeleteElement)
	elementGroup.Get("/category/:categoryId", eh.GetElementsByCategoryID)
}

func (eh *ElementHandler) CreateElement(c fiber.Ctx) error {
	var req models.CreateElementRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	element, err := eh.elementService.CreateElement(c.Context(), req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("CREATION_FAILED", err.Error()))
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(element))
}

func (eh *ElementHandler) GetElementByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	element, err := eh.elementService.GetElementByID(c.Context(), id)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(element))
}

func (eh *ElementHandler) GetElementsByCategoryID(c fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("categoryId"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	elements, err := eh.elementService.GetElementsByCategoryID(c.Context(), categoryID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse("FETCH_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(elements))
}

func (eh *ElementHandler) UpdateElement(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var req models.UpdateElementRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	element, err := eh.elementService.UpdateElement(c.Context(), id, req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("UPDATE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(element))
}

func (eh *ElementHandler) DeleteElement(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	if err := eh.elementService.DeleteElement(c.Context(), id); err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("DELETE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "Element deleted successfully",
	}))
}
