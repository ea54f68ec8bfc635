package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"homologation-service/internal/event"
	"homologation-service/internal/models"
	"homologation-service/internal/repository"
	"homologation-service/internal/resolution"

	"github.com/google/uuid"
)

// CatalogService owns the in-memory snapshot per category. A snapshot is
// reused until the DB version stamp moves past it, so quoting never pays the
// full catalog load on a warm category, and every resolution call runs
// against one consistent, versioned view.
type CatalogService struct {
	catalogRepo *repository.CatalogRepository

	mu        sync.RWMutex
	snapshots map[string]*resolution.Snapshot
}

func NewCatalogService(catalogRepo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		snapshots:   map[string]*resolution.Snapshot{},
	}
}

// Snapshot returns the current snapshot for the category, reloading it when
// the stored catalog version has moved past the cached one.
func (s *CatalogService) Snapshot(ctx context.Context, categoryCode string) (*resolution.Snapshot, error) {
	categoryCode = strings.TrimSpace(categoryCode)

	category, err := s.catalogRepo.GetCategoryByCode(ctx, categoryCode)
	if err != nil {
		return nil, err
	}
	version, err := s.catalogRepo.CurrentVersion(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	cached := s.snapshots[categoryCode]
	s.mu.RUnlock()
	if cached != nil && cached.Version >= version {
		return cached, nil
	}

	snapshot, err := s.catalogRepo.LoadSnapshot(ctx, categoryCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	s.mu.Lock()
	// Another goroutine may have loaded a newer snapshot meanwhile; keep the
	// freshest one.
	if existing := s.snapshots[categoryCode]; existing == nil || snapshot.Version >= existing.Version {
		s.snapshots[categoryCode] = snapshot
	}
	snapshot = s.snapshots[categoryCode]
	s.mu.Unlock()

	return snapshot, nil
}

// Invalidate drops the cached snapshot so the next call reloads.
func (s *CatalogService) Invalidate(categoryCode string) {
	s.mu.Lock()
	delete(s.snapshots, categoryCode)
	s.mu.Unlock()
}

// RefreshStale reloads every cached snapshot whose version stamp is behind
// the database. Called periodically by the worker.
func (s *CatalogService) RefreshStale(ctx context.Context) {
	s.mu.RLock()
	codes := make([]string, 0, len(s.snapshots))
	for code := range s.snapshots {
		codes = append(codes, code)
	}
	s.mu.RUnlock()

	for _, code := range codes {
		if _, err := s.Snapshot(ctx, code); err != nil {
			slog.Warn("snapshot refresh failed", "category", code, "error", err)
		}
	}
}

// ============================================================================
// CATEGORY ADMIN
// ============================================================================

func (s *CatalogService) CreateCategory(ctx context.Context, code, name string) (*models.Category, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.New("category code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("category name is required")
	}

	category := &models.Category{Code: code, Name: strings.TrimSpace(name)}
	if err := s.catalogRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.catalogRepo.GetAllCategories(ctx)
}

func (s *CatalogService) GetCategoryByCode(ctx context.Context, code string) (*models.Category, error) {
	return s.catalogRepo.GetCategoryByCode(ctx, code)
}

// publishCatalogEdit runs the post-write ritual shared by every admin
// service: bump the category version, drop the warm snapshot and emit the
// catalog.updated event. Failures here are logged and swallowed since the
// write itself already committed.
func publishCatalogEdit(ctx context.Context, catalogRepo *repository.CatalogRepository, catalogService *CatalogService, publisher *event.CatalogPublisher, categoryID uuid.UUID, entity string) {
	category, err := catalogRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		slog.Error("catalog edit committed but category lookup failed, caches may be stale",
			"category_id", categoryID, "error", err)
		return
	}

	version, err := catalogRepo.BumpVersion(ctx, categoryID)
	if err != nil {
		slog.Error("catalog edit committed but version bump failed, caches may be stale",
			"category", category.Code, "error", err)
		return
	}

	catalogService.Invalidate(category.Code)
	publisher.PublishCatalogUpdated(ctx, category.Code, version, entity)
}
