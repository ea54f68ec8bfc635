package services

import (
	"context"
	"fmt"

	"homologation-service/internal/event"
	"homologation-service/internal/models"
	"homologation-service/internal/repository"

	"github.com/google/uuid"
)

type WarningService struct {
	warningRepo    *repository.WarningRepository
	catalogRepo    *repository.CatalogRepository
	catalogService *CatalogService
	publisher      *event.CatalogPublisher
}

func NewWarningService(warningRepo *repository.WarningRepository, catalogRepo *repository.CatalogRepository, catalogService *CatalogService, publisher *event.CatalogPublisher) *WarningService {
	return &WarningService{
		warningRepo:    warningRepo,
		catalogRepo:    catalogRepo,
		catalogService: catalogService,
		publisher:      publisher,
	}
}

func (s *WarningService) CreateWarning(ctx context.Context, req models.CreateWarningRequest) (*models.CatalogWarning, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	warning := &models.CatalogWarning{
		CategoryID: req.CategoryID,
		Code:       req.Code,
		Message:    req.Message,
		Severity:   req.Severity,
		ElementID:  req.ElementID,
	}
	if err := s.warningRepo.CreateWarning(ctx, warning); err != nil {
		return nil, fmt.Errorf("failed to create warning: %w", err)
	}

	publishCatalogEdit(ctx, s.catalogRepo, s.catalogService, s.publisher, req.CategoryID, "warning")
	return warning, nil
}

func (s *WarningService) GetWarningByID(ctx context.Context, id uuid.UUID) (*models.CatalogWarning, error) {
	warning, err := s.warningRepo.GetWarningByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get warning: %w", err)
	}
	return warning, nil
}

func (s *WarningService) GetWarningsByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]models.CatalogWarning, error) {
	warnings, err := s.warningRepo.GetWarningsByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get warnings: %w", err)
	}
	return warnings, nil
}

func (s *WarningService) UpdateWarning(ctx context.Context, id uuid.UUID, req models.UpdateWarningRequest) (*models.CatalogWarning, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	warning, err := s.warningRepo.GetWarningByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get warning: %w", err)
	}

	if req.Message != nil {
		warning.Message = *req.Message
	}
	if req.Severity != nil {
		warning.Severity = *req.Severity
	}

	if err := s.warningRepo.UpdateWarning(ctx, warning); err != nil {
		return nil, fmt.Errorf("failed to update warning: %w", err)
	}

	publishCatalogEdit(ctx, s.catalogRepo, s.catalogService, s.publisher, warning.CategoryID, "warning")
	return warning, nil
}

func (s *WarningService) DeleteWarning(ctx context.Context, id uuid.UUID) error {
	warning, err := s.warningRepo.GetWarningByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get warning: %w", err)
	}

	if err := s.warningRepo.DeleteWarning(ctx, id); err != nil {
		return fmt.Errorf("failed to delete warning: %w", err)
	}

	publishCatalogEdit(ctx, s.catalogRepo, s.catalogService, s.publisher, warning.CategoryID, "warning")
	return nil
}

// LinkWarning attaches a warning to an element or a tier through the
// association table. Linking the same target twice is a no-op.
func (s *WarningService) LinkWarning(ctx context.Context, id uuid.UUID, req models.LinkWarningRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	warning, err := s.warningRepo.GetWarningByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get warning: %w", err)
	}

	if err := s.warningRepo.LinkWarning(ctx, id, req.ElementID, req.TierID); err != nil {
		return fmt.Errorf("failed to link warning: %w", err)
	}

	publishCatalogEdit(ctx, s.catalogRepo, s.catalogService, s.publisher, warning.CategoryID, "warning")
	return nil
}

func (s *WarningService) UnlinkWarning(ctx context.Context, id uuid.UUID, req models.LinkWarningRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	warning, err := s.warningRepo.GetWarningByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get warning: %w", err)
	}

	if err := s.warningRepo.UnlinkWarning(ctx, id, req.ElementID, req.TierID); err != nil {
		return fmt.Errorf("failed to unlink warning: %w", err)
	}

	publishCatalogEdit(ctx, s.catalogRepo, s.catalogService, s.publisher, warning.CategoryID, "warning")
	return nil
}
