package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homologation-service/internal/models"
	"homologation-service/internal/resolution"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CatalogRepository loads whole-category snapshots for the resolution engine
// and owns the monotonic catalog version stamp.
type CatalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	category.ID = uuid.New()
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	query := `
		INSERT INTO categories (id, code, name, created_at, updated_at)
		VALUES (:id, :code, :name, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *CatalogRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	query := `
		SELECT id, code, name, created_at, updated_at
		FROM categories
		ORDER BY code`

	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (r *CatalogRepository) GetCategoryByCode(ctx context.Context, code string) (*models.Category, error) {
	var category models.Category
	query := `
		SELECT id, code, name, created_at, updated_at
		FROM categories
		WHERE code = $1`

	err := r.db.GetContext(ctx, &category, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %s not found", code)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

func (r *CatalogRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	query := `
		SELECT id, code, name, created_at, updated_at
		FROM categories
		WHERE id = $1`

	err := r.db.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %s not found", id)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

// CurrentVersion returns the category's version stamp; a category that was
// never edited is at version 0.
func (r *CatalogRepository) CurrentVersion(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var version int64
	query := `SELECT COALESCE(
		(SELECT version FROM catalog_versions WHERE category_id = $1), 0)`

	if err := r.db.GetContext(ctx, &version, query, categoryID); err != nil {
		return 0, fmt.Errorf("failed to get catalog version: %w", err)
	}
	return version, nil
}

// BumpVersion advances the category's stamp by one and returns the new value.
// Every admin write to the catalog goes through this, which is what makes
// version-keyed cache invalidation O(1).
func (r *CatalogRepository) BumpVersion(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var version int64
	query := `
		INSERT INTO catalog_versions (category_id, version, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (category_id)
		DO UPDATE SET version = catalog_versions.version + 1, updated_at = NOW()
		RETURNING version`

	if err := r.db.GetContext(ctx, &version, query, categoryID); err != nil {
		return 0, fmt.Errorf("failed to bump catalog version: %w", err)
	}
	return version, nil
}

// LoadSnapshot reads one category's elements, tiers, inclusions, references
// and warnings in a single pass and assembles the immutable snapshot the
// engine traverses. The two warning representations (inline element_id and
// the warning_links table) are reconciled here, so the engine only ever sees
// one merged view.
func (r *CatalogRepository) LoadSnapshot(ctx context.Context, categoryCode string) (*resolution.Snapshot, error) {
	category, err := r.GetCategoryByCode(ctx, categoryCode)
	if err != nil {
		return nil, err
	}
	version, err := r.CurrentVersion(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	elements, err := r.loadElements(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	tiers, err := r.loadTiers(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	warnings, err := r.loadWarnings(ctx, category.ID, elements, tiers)
	if err != nil {
		return nil, err
	}

	snapElements := make([]resolution.Element, len(elements))
	for i, el := range elements {
		snapElements[i] = resolution.Element{
			Code:      el.Code,
			Name:      el.Name,
			Keywords:  el.Keywords,
			SortOrder: el.SortOrder,
		}
		if el.BaseCode != nil {
			snapElements[i].BaseCode = *el.BaseCode
		}
		if el.VariantLabel != nil {
			snapElements[i].VariantLabel = *el.VariantLabel
		}
	}

	snapTiers := make([]resolution.Tier, 0, len(tiers))
	for _, tier := range tiers {
		inclusions, references, err := r.loadTierGraph(ctx, tier.ID)
		if err != nil {
			return nil, err
		}
		snapTier := resolution.Tier{
			Code:      tier.Code,
			Name:      tier.Name,
			Price:     tier.Price,
			SortOrder: tier.SortOrder,
			Active:    tier.Active,
		}
		for _, inc := range inclusions {
			snapTier.Inclusions = append(snapTier.Inclusions, resolution.Inclusion{
				ElementCode: inc.ElementCode,
				MaxQuantity: capOrUnlimited(inc.MaxQuantity),
			})
		}
		for _, ref := range references {
			snapTier.References = append(snapTier.References, resolution.TierReference{
				TierCode:    ref.ReferencedTierCode,
				MaxElements: capOrUnlimited(ref.MaxElements),
			})
		}
		snapTiers = append(snapTiers, snapTier)
	}

	return resolution.NewSnapshot(category.Code, version, snapElements, snapTiers, warnings), nil
}

func capOrUnlimited(value *int) int {
	if value == nil {
		return resolution.Unlimited
	}
	return *value
}

func (r *CatalogRepository) loadElements(ctx context.Context, categoryID uuid.UUID) ([]models.Element, error) {
	var elements []models.Element
	query := `
		SELECT id, category_id, code, name, keywords, base_code, variant_label, sort_order, created_at, updated_at
		FROM elements
		WHERE category_id = $1
		ORDER BY sort_order, code`

	if err := r.db.SelectContext(ctx, &elements, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to load elements: %w", err)
	}
	return elements, nil
}

func (r *CatalogRepository) loadTiers(ctx context.Context, categoryID uuid.UUID) ([]models.TariffTier, error) {
	var tiers []models.TariffTier
	query := `
		SELECT id, category_id, code, name, price, sort_order, active, created_at, updated_at
		FROM tariff_tiers
		WHERE category_id = $1
		ORDER BY price, sort_order, code`

	if err := r.db.SelectContext(ctx, &tiers, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to load tariff tiers: %w", err)
	}
	return tiers, nil
}

func (r *CatalogRepository) loadTierGraph(ctx context.Context, tierID uuid.UUID) ([]models.TierInclusion, []models.TierReference, error) {
	var inclusions []models.TierInclusion
	inclusionQuery := `
		SELECT id, tier_id, element_code, max_quantity, position
		FROM tier_inclusions
		WHERE tier_id = $1
		ORDER BY position, element_code`

	if err := r.db.SelectContext(ctx, &inclusions, inclusionQuery, tierID); err != nil {
		return nil, nil, fmt.Errorf("failed to load tier inclusions: %w", err)
	}

	var references []models.TierReference
	referenceQuery := `
		SELECT id, tier_id, referenced_tier_code, max_elements, position
		FROM tier_references
		WHERE tier_id = $1
		ORDER BY position, referenced_tier_code`

	if err := r.db.SelectContext(ctx, &references, referenceQuery, tierID); err != nil {
		return nil, nil, fmt.Errorf("failed to load tier references: %w", err)
	}

	return inclusions, references, nil
}

// loadWarnings merges the inline element_id attachment and the warning_links
// association table into one deduplicated view per scope.
func (r *CatalogRepository) loadWarnings(ctx context.Context, categoryID uuid.UUID, elements []models.Element, tiers []models.TariffTier) (resolution.SnapshotWarnings, error) {
	out := resolution.SnapshotWarnings{
		ByElement: map[string][]resolution.Warning{},
		ByTier:    map[string][]resolution.Warning{},
	}

	var warnings []models.CatalogWarning
	warningQuery := `
		SELECT id, category_id, code, message, severity, element_id, created_at, updated_at
		FROM warnings
		WHERE category_id = $1
		ORDER BY code`

	if err := r.db.SelectContext(ctx, &warnings, warningQuery, categoryID); err != nil {
		return out, fmt.Errorf("failed to load warnings: %w", err)
	}
	if len(warnings) == 0 {
		return out, nil
	}

	var links []models.WarningLink
	linkQuery := `
		SELECT wl.id, wl.warning_id, wl.element_id, wl.tier_id
		FROM warning_links wl
		JOIN warnings w ON w.id = wl.warning_id
		WHERE w.category_id = $1
		ORDER BY wl.warning_id`

	if err := r.db.SelectContext(ctx, &links, linkQuery, categoryID); err != nil {
		return out, fmt.Errorf("failed to load warning links: %w", err)
	}

	elementCodeByID := make(map[uuid.UUID]string, len(elements))
	for _, el := range elements {
		elementCodeByID[el.ID] = el.Code
	}
	tierCodeByID := make(map[uuid.UUID]string, len(tiers))
	for _, tier := range tiers {
		tierCodeByID[tier.ID] = tier.Code
	}
	warningByID := make(map[uuid.UUID]models.CatalogWarning, len(warnings))
	for _, w := range warnings {
		warningByID[w.ID] = w
	}

	attached := map[uuid.UUID]bool{}
	addElementWarning := func(elementID uuid.UUID, w models.CatalogWarning) {
		code, ok := elementCodeByID[elementID]
		if !ok {
			return
		}
		out.ByElement[code] = append(out.ByElement[code], toSnapshotWarning(w))
		attached[w.ID] = true
	}

	// Inline representation.
	for _, w := range warnings {
		if w.ElementID != nil {
			addElementWarning(*w.ElementID, w)
		}
	}
	// Associative representation; duplicates collapse in the snapshot's
	// per-group dedupe by warning code.
	for _, link := range links {
		w, ok := warningByID[link.WarningID]
		if !ok {
			continue
		}
		switch {
		case link.ElementID != nil:
			addElementWarning(*link.ElementID, w)
		case link.TierID != nil:
			if code, ok := tierCodeByID[*link.TierID]; ok {
				out.ByTier[code] = append(out.ByTier[code], toSnapshotWarning(w))
				attached[w.ID] = true
			}
		}
	}
	// Warnings attached nowhere apply to the category as a whole.
	for _, w := range warnings {
		if !attached[w.ID] {
			out.ByCategory = append(out.ByCategory, toSnapshotWarning(w))
		}
	}

	return out, nil
}

func toSnapshotWarning(w models.CatalogWarning) resolution.Warning {
	return resolution.Warning{
		Code:     w.Code,
		Message:  w.Message,
		Severity: resolution.Severity(w.Severity),
	}
}
