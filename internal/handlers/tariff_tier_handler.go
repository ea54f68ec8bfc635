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

type TariffTierHandler struct {
	tierService *services.TariffTierService
}

func NewTariffTierHandler(tierService *services.TariffTierService) *TariffTierHandler {
	return &TariffTierHandler{
		tierService: tierService,
	}
}

func (th *TariffTierHandler) Register(app *fiber.App) {
	protectedGr := app.Group("homologation/protected/api/v1")

	tierGroup := protectedGr.Group("/tariff-tiers")
	tierGroup.Post("/", th.CreateTier)
	tierGroup.Get("/:id", th.GetTierByID)
	tierGroup.Get("/:id/graph", th.GetTierGraph)
	tierGroup.Put("/:id", th.UpdateTier)
	tierGroup.Delete("/:id", th.DeleteTier)
	tierGroup.Get("/category/:categoryId", th.GetTiersByCategoryID)
}

func (th *TariffTierHandler) CreateTier(c fiber.Ctx) error {
	var req models.CreateTariffTierRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	tier, err := th.tierService.CreateTier(c.Context(), req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("CREATION_FAILED", err.Error()))
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(tier))
}

func (th *TariffTierHandler) GetTierByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	tier, err := th.tierService.GetTierByID(c.Context(), id)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(tier))
}

func (th *TariffTierHandler) GetTierGraph(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	tier, inclusions, references, err := th.tierService.GetTierGraph(c.Context(), id)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"tier":       tier,
		"inclusions": inclusions,
		"references": references,
	}))
}

func (th *TariffTierHandler) GetTiersByCategoryID(c fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("categoryId"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	tiers, err := th.tierService.GetTiersByCategoryID(c.Context(), categoryID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse("FETCH_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(tiers))
}

func (th *TariffTierHandler) UpdateTier(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var req models.UpdateTariffTierRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	tier, err := th.tierService.UpdateTier(c.Context(), id, req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("UPDATE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(tier))
}

func (th *TariffTierHandler) DeleteTier(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	if err := th.tierService.DeleteTier(c.Context(), id); err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("DELETE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "Tariff tier deleted successfully",
	}))
}
