package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"homologation-service/internal/models"
	"homologation-service/internal/resolution"
	"homologation-service/internal/services"
	"homologation-service/utils"

	"github.com/gofiber/fiber/v3"
)

type QuoteHandler struct {
	quoteService *services.QuoteService
}

func NewQuoteHandler(quoteService *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

func (qh *QuoteHandler) Register(app *fiber.App) {
	publicGr := app.Group("homologation/public/api/v1")

	quoteGroup := publicGr.Group("/quotes")
	quoteGroup.Post("/resolve", qh.Resolve)
	quoteGroup.Post("/select-variant", qh.SelectVariant)
	quoteGroup.Post("/", qh.Quote)
}

// Resolve maps free text onto the category catalog without quoting.
func (qh *QuoteHandler) Resolve(c fiber.Ctx) error {
	var req models.ResolveRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("VALIDATION_ERROR", err.Error()))
	}

	res, err := qh.quoteService.Resolve(c.Context(), req.Category, req.Text)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(res))
}

// SelectVariant settles a pending variant question.
func (qh *QuoteHandler) SelectVariant(c fiber.Ctx) error {
	var req models.SelectVariantRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("VALIDATION_ERROR", err.Error()))
	}

	code, err := qh.quoteService.SelectVariant(c.Context(), req.Category, req.BaseCode, req.Answer)
	if err != nil {
		var ambiguous *resolution.AmbiguousVariantError
		if errors.As(err, &ambiguous) {
			return c.Status(http.StatusUnprocessableEntity).JSON(utils.CreateErrorResponse("AMBIGUOUS_VARIANT", ambiguous.Error()))
		}
		var unknownBase *resolution.UnknownBaseError
		if errors.As(err, &unknownBase) {
			return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("UNKNOWN_BASE", unknownBase.Error()))
		}
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(models.SelectVariantResponse{
		BaseCode:    req.BaseCode,
		ElementCode: code,
	}))
}

// Quote runs a full quotation turn: free text plus explicit elements in, the
// cheapest satisfying tier with its warnings out.
func (qh *QuoteHandler) Quote(c fiber.Ctx) error {
	var req models.QuoteRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("VALIDATION_ERROR", err.Error()))
	}

	response, err := qh.quoteService.Quote(c.Context(), req)
	if err != nil {
		var noTier *resolution.NoTierError
		if errors.As(err, &noTier) {
			return c.Status(http.StatusUnprocessableEntity).JSON(utils.CreateErrorResponse("NO_TIER_SATISFIES", noTier.Error()))
		}
		var cycle *resolution.CycleError
		var unknownTier *resolution.UnknownTierError
		if errors.As(err, &cycle) || errors.As(err, &unknownTier) {
			return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse("CATALOG_INTEGRITY", "Catalog data is inconsistent, quotation aborted"))
		}
		if errors.Is(err, services.ErrNothingResolved) {
			return c.Status(http.StatusUnprocessableEntity).JSON(utils.CreateErrorResponse("NOTHING_RESOLVED", err.Error()))
		}
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(response))
}
