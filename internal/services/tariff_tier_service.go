package services

import (
	"context"
	"fmt"

	"homologation-service/internal/event"
	"homologation-service/internal/models"
	"homologation-service/internal/repository"

	"github.com/google/uuid"
)

type TariffTierService struct {
	tierRepo       *repository.TariffTierRepository
	catalogRepo    *repository.CatalogRepository
	catalogService *CatalogService
	publisher      *event.CatalogPublisher
}

func NewTariffTierService(tierRepo *repository.TariffTierRepository, catalogRepo *repository.CatalogRepository, catalogService *CatalogService, publisher *event.CatalogPublisher) *TariffTierService {
	return &TariffTierService{
		tierRepo:       tierRepo,
		catalogRepo:    catalogRepo,
		catalogService: catalogService,
		publisher:      publisher,
	}
}

func (s *TariffTierService) CreateTier(ctx context.Context, req models.CreateTariffTierRequest) (*models.TariffTier, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	exists, err := s.tierRepo.CheckCodeExists(ctx, req.CategoryID, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check tier code existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("tier code %s already exists in this category", req.Code)
	}

	tier := &models.TariffTier{
		CategoryID: req.CategoryID,
		Code:       req.Code,
		Name:       req.Name,
		Price:      req.Price,
		SortOrder:  req.SortOrder,
		Active:     req.Active,
	}
	if err := s.tierRepo.CreateTier(ctx, tier, req.Inclusions, req.References); err != nil {
		return nil, fmt.Errorf("failed to create tariff tier: %w", err)
	}

	publishCatalogEdit(ctx, s.catalogRepo, s.catalogService, s.publisher, req.CategoryID, "tariff_tier")
	return tier, nil
}

func (s *TariffTierService) GetTierByID(ctx context.Context, id uuid.UUID) (*models.TariffTier, error) {
	tier, err := s.tierRepo.GetTierByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tariff tier: %w", err)
	}
	return tier, nil
}

func (s *TariffTierService) GetTiersByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]models.TariffTier, error) {
	tiers, err := s.tierRepo.GetTiersByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tariff tiers: %w", err)
	}
	return tiers, nil
}

// GetTierGraph returns a tier together with its direct inclusions and
// references, the shape admins edit against.
func (s *TariffTierService) GetTierGraph(ctx context.Context, id uuid.UUID) (*models.TariffTier, []models.TierInclusion, []models.TierReference, error) {
	tier, err := s.tierRepo.GetTierByID(ctx, id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get tariff tier: %w", err)
	}
	inclusions, err := s.tierRepo.GetTierInclusions(ctx, id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get tier inclusions: %w", err)
	}
	references, err := s.tierRepo.GetTierReferences(ctx, id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get tier references: %w", err)
	}
	return tier, inclusions, references, nil
}

func (s *TariffTierService) UpdateTier(ctx context.Context, id uuid.UUID, req models.UpdateTariffTierRequest) (*models.TariffTier, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	tier, err := s.tierRepo.GetTierByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tariff tier: %w", err)
	}

	for _, ref := range req.References {
		if ref.ReferencedTierCode == tier.Code {
			return nil, fmt.Errorf("tier %s cannot reference itself", tier.Code)
		}
	}

	if req.Name != nil {
		tier.Name = *req.Name
	}
	if req.Price != nil {
		tier.Price = *req.Price
	}
	if req.SortOrder != nil {
		tier.SortOrder = *req.SortOrder
	}
	if req.Active != nil {
		tier.Active = *req.Active
	}

	if err := s.tierRepo.UpdateTier(ctx, tier, req.Inclusions, req.References); err != nil {
		return nil, fmt.Errorf("failed to update tariff tier: %w", err)
	}

	publishCatalogEdit(ctx, s.catalogRepo, s.catalogService, s.publisher, tier.CategoryID, "tariff_tier")
	return tier, nil
}

func (s *TariffTierService) DeleteTier(ctx context.Context, id uuid.UUID) error {
	tier, err := s.tierRepo.GetTierByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get tariff tier: %w", err)
	}

	if err := s.tierRepo.DeleteTier(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tariff tier: %w", err)
	}

	publishCatalogEdit(ctx, s.catalogRepo, s.catalogService, s.publisher, tier.CategoryID, "tariff_tier")
	return nil
}
