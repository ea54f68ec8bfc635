package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homologation-service/internal/models"
	"homologation-service/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TariffTierRepository struct {
	db *sqlx.DB
}

func NewTariffTierRepository(db *sqlx.DB) *TariffTierRepository {
	return &TariffTierRepository{db: db}
}

func (r *TariffTierRepository) CreateTier(ctx context.Context, tier *models.TariffTier, inclusions []models.InclusionInput, references []models.ReferenceInput) error {
	tier.ID = uuid.New()
	tier.CreatedAt = time.Now()
	tier.UpdatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tariff_tiers (id, category_id, code, name, price, sort_order, active, created_at, updated_at)
		VALUES (:id, :category_id, :code, :name, :price, :sort_order, :active, :created_at, :updated_at)`

	if _, err := tx.NamedExecContext(ctx, query, tier); err != nil {
		return fmt.Errorf("failed to create tariff tier: %w", err)
	}

	if err := insertTierGraph(ctx, tx, tier.ID, inclusions, references); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tier creation: %w", err)
	}
	return nil
}

func (r *TariffTierRepository) GetTierByID(ctx context.Context, id uuid.UUID) (*models.TariffTier, error) {
	var tier models.TariffTier
	query := `
		SELECT id, category_id, code, name, price, sort_order, active, created_at, updated_at
		FROM tariff_tiers
		WHERE id = $1`

	err := r.db.GetContext(ctx, &tier, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tariff tier not found")
		}
		return nil, fmt.Errorf("failed to get tariff tier: %w", err)
	}

	return &tier, nil
}

func (r *TariffTierRepository) GetTiersByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]models.TariffTier, error) {
	var tiers []models.TariffTier
	query := `
		SELECT id, category_id, code, name, price, sort_order, active, created_at, updated_at
		FROM tariff_tiers
		WHERE category_id = $1
		ORDER BY price, sort_order, code`

	err := r.db.SelectContext(ctx, &tiers, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tariff tiers by category: %w", err)
	}

	return tiers, nil
}

func (r *TariffTierRepository) GetTierInclusions(ctx context.Context, tierID uuid.UUID) ([]models.TierInclusion, error) {
	var inclusions []models.TierInclusion
	query := `
		SELECT id, tier_id, element_code, max_quantity, position
		FROM tier_inclusions
		WHERE tier_id = $1
		ORDER BY position, element_code`

	err := r.db.SelectContext(ctx, &inclusions, query, tierID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tier inclusions: %w", err)
	}

	return inclusions, nil
}

func (r *TariffTierRepository) GetTierReferences(ctx context.Context, tierID uuid.UUID) ([]models.TierReference, error) {
	var references []models.TierReference
	query := `
		SELECT id, tier_id, referenced_tier_code, max_elements, position
		FROM tier_references
		WHERE tier_id = $1
		ORDER BY position, referenced_tier_code`

	err := r.db.SelectContext(ctx, &references, query, tierID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tier references: %w", err)
	}

	return references, nil
}

// UpdateTier rewrites the tier row and, when inclusions or references are
// given, replaces the tier's whole graph in the same transaction so readers
// never observe a half-updated tier.
func (r *TariffTierRepository) UpdateTier(ctx context.Context, tier *models.TariffTier, inclusions []models.InclusionInput, references []models.ReferenceInput) error {
	tier.UpdatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE tariff_tiers
		SET name = :name,
			price = :price,
			sort_order = :sort_order,
			active = :active,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := tx.NamedExecContext(ctx, query, tier)
	if err != nil {
		return fmt.Errorf("failed to update tariff tier: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("tariff tier not found")
	}

	if inclusions != nil || references != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tier_inclusions WHERE tier_id = $1`, tier.ID); err != nil {
			return fmt.Errorf("failed to clear tier inclusions: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tier_references WHERE tier_id = $1`, tier.ID); err != nil {
			return fmt.Errorf("failed to clear tier references: %w", err)
		}
		if err := insertTierGraph(ctx, tx, tier.ID, inclusions, references); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tier update: %w", err)
	}
	return nil
}

func (r *TariffTierRepository) DeleteTier(ctx context.Context, id uuid.UUID) error {
	return utils.ExecWithCheck(ctx, r.db, `DELETE FROM tariff_tiers WHERE id = $1`, utils.ExecDelete, id)
}

func (r *TariffTierRepository) CheckCodeExists(ctx context.Context, categoryID uuid.UUID, code string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM tariff_tiers WHERE category_id = $1 AND code = $2`

	err := r.db.GetContext(ctx, &count, query, categoryID, code)
	if err != nil {
		return false, fmt.Errorf("failed to check tier code existence: %w", err)
	}

	return count > 0, nil
}

func insertTierGraph(ctx context.Context, tx *sqlx.Tx, tierID uuid.UUID, inclusions []models.InclusionInput, references []models.ReferenceInput) error {
	inclusionQuery := `
		INSERT INTO tier_inclusions (id, tier_id, element_code, max_quantity, position)
		VALUES ($1, $2, $3, $4, $5)`
	for i, inc := range inclusions {
		if _, err := tx.ExecContext(ctx, inclusionQuery, uuid.New(), tierID, inc.ElementCode, inc.MaxQuantity, i); err != nil {
			return fmt.Errorf("failed to insert tier inclusion %s: %w", inc.ElementCode, err)
		}
	}

	referenceQuery := `
		INSERT INTO tier_references (id, tier_id, referenced_tier_code, max_elements, position)
		VALUES ($1, $2, $3, $4, $5)`
	for i, ref := range references {
		if _, err := tx.ExecContext(ctx, referenceQuery, uuid.New(), tierID, ref.ReferencedTierCode, ref.MaxElements, i); err != nil {
			return fmt.Errorf("failed to insert tier reference %s: %w", ref.ReferencedTierCode, err)
		}
	}

	return nil
}
