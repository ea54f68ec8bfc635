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

type WarningHandler struct {
	warningService *services.WarningService
}

func NewWarningHandler(warningService *services.WarningService) *WarningHandler {
	return &WarningHandler{
		warningService: warningService,
	}
}

func (wh *WarningHandler) Register(app *fiber.App) {
	protectedGr := app.Group("homologation/protected/api/v1")

	warningGroup := protectedGr.Group("/warnings")
	warningGroup.Post("/", wh.CreateWarning)
	warningGroup.Get("/:id", wh.GetWarningByID)
	warningGroup.Put("/:id", wh.UpdateWarning)
	warningGroup.Delete("/:id", wh.DeleteWarning)
	warningGroup.Post("/:id/links", wh.LinkWarning)
	warningGroup.Delete("/:id/links", wh.UnlinkWarning)
	warningGroup.Get("/category/:categoryId", wh.GetWarningsByCategoryID)
}

func (wh *WarningHandler) CreateWarning(c fiber.Ctx) error {
	var req models.CreateWarningRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	warning, err := wh.warningService.CreateWarning(c.Context(), req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("CREATION_FAILED", err.Error()))
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(warning))
}

func (wh *WarningHandler) GetWarningByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	warning, err := wh.warningService.GetWarningByID(c.Context(), id)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(warning))
}

func (wh *WarningHandler) GetWarningsByCategoryID(c fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("categoryId"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	warnings, err := wh.warningService.GetWarningsByCategoryID(c.Context(), categoryID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse("FETCH_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(warnings))
}

func (wh *WarningHandler) UpdateWarning(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var req models.UpdateWarningRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	warning, err := wh.warningService.UpdateWarning(c.Context(), id, req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("UPDATE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(warning))
}

func (wh *WarningHandler) DeleteWarning(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	if err := wh.warningService.DeleteWarning(c.Context(), id); err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("DELETE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "Warning deleted successfully",
	}))
}

func (wh *WarningHandler) LinkWarning(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var req models.LinkWarningRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	if err := wh.warningService.LinkWarning(c.Context(), id, req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("LINK_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "Warning linked successfully",
	}))
}

func (wh *WarningHandler) UnlinkWarning(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var req models.LinkWarningRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	if err := wh.warningService.UnlinkWarning(c.Context(), id, req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("UNLINK_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "Warning unlinked successfully",
	}))
}
