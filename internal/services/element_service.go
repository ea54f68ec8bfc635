package services

import (
	"context"
	"fmt"

	"homologation-service/internal/event"
	"homologation-service/internal/models"
	"homologation-service/internal/repository"

	"github.com/google/uuid"
)

type ElementService struct {
	elementRepo    *repository.ElementRepository
	catalogRepo    *repository.CatalogRepository
	catalogService *CatalogService
	publisher      *event.CatalogPublisher
}

func NewElementService(elementRepo *repository.ElementRepository, catalogRepo *repository.CatalogRepository, catalogService *CatalogService, publisher *event.CatalogPublisher) *ElementService {
	return &ElementService{
		elementRepo:    elementRepo,
		catalogRepo:    catalogRepo,
		catalogService: catalogService,
		publisher:      publisher,
	}
}

func (s *ElementService) CreateElement(ctx context.Context, req models.CreateElementRequest) (*models.Element, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	exists, err := s.elementRepo.CheckCodeExists(ctx, req.CategoryID, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check element code existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("element code %s already exists in this category", req.Code)
	}

	element := &models.Element{
		CategoryID:   req.CategoryID,
		Code:         req.Code,
		Name:         req.Name,
		Keywords:     req.Keywords,
		BaseCode:     req.BaseCode,
		VariantLabel: req.VariantLabel,
		SortOrder:    req.SortOrder,
	}
	if err := s.elementRepo.CreateElement(ctx, element); err != nil {
		return nil, fmt.Errorf("failed to create element: %w", err)
	}

	publishCatalogEdit(ctx, s.catalogRepo, s.catalogService, s.publisher, req.CategoryID, "element")
	return element, nil
}

func (s *ElementService) GetElementByID(ctx context.Context, id uuid.UUID) (*models.Element, error) {
	element, err := s.elementRepo.GetElementByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get element: %w", err)
	}
	return element, nil
}

func (s *ElementService) GetElementsByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]models.Element, error) {
	elements, err := s.elementRepo.GetElementsByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get elements: %w", err)
	}
	return elements, nil
}

func (s *ElementService) UpdateElement(ctx context.Context, id uuid.UUID, req models.UpdateElementRequest) (*models.Element, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	element, err := s.elementRepo.GetElementByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get element: %w", err)
	}

	if req.Name != nil {
		element.Name = *req.Name
	}
	if req.Keywords != nil {
		element.Keywords = req.Keywords
	}
	if req.BaseCode != nil {
		if *req.BaseCode == "" {
			element.BaseCode = nil
		} else {
			element.BaseCode = req.BaseCode
		}
	}
	if req.VariantLabel != nil {
		element.VariantLabel = req.VariantLabel
	}
	if req.SortOrder != nil {
		element.SortOrder = *req.SortOrder
	}

	if err := s.elementRepo.UpdateElement(ctx, element); err != nil {
		return nil, fmt.Errorf("failed to update element: %w", err)
	}

	publishCatalogEdit(ctx, s.catalogRepo, s.catalogService, s.publisher, element.CategoryID, "element")
	return element, nil
}

func (s *ElementService) DeleteElement(ctx context.Context, id uuid.UUID) error {
	element, err := s.elementRepo.GetElementByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get element: %w", err)
	}

	if err := s.elementRepo.DeleteElement(ctx, id); err != nil {
		return fmt.Errorf("failed to delete element: %w", err)
	}

	publishCatalogEdit(ctx, s.catalogRepo, s.catalogService, s.publisher, element.CategoryID, "element")
	return nil
}
