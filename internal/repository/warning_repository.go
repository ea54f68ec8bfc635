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

type WarningRepository struct {
	db *sqlx.DB
}

func NewWarningRepository(db *sqlx.DB) *WarningRepository {
	return &WarningRepository{db: db}
}

func (r *WarningRepository) CreateWarning(ctx context.Context, warning *models.CatalogWarning) error {
	warning.ID = uuid.New()
	warning.CreatedAt = time.Now()
	warning.UpdatedAt = time.Now()

	query := `
		INSERT INTO warnings (id, category_id, code, message, severity, element_id, created_at, updated_at)
		VALUES (:id, :category_id, :code, :message, :severity, :element_id, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, warning)
	if err != nil {
		return fmt.Errorf("failed to create warning: %w", err)
	}

	return nil
}

func (r *WarningRepository) GetWarningByID(ctx context.Context, id uuid.UUID) (*models.CatalogWarning, error) {
	var warning models.CatalogWarning
	query := `
		SELECT id, category_id, code, message, severity, element_id, created_at, updated_at
		FROM warnings
		WHERE id = $1`

	err := r.db.GetContext(ctx, &warning, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("warning not found")
		}
		return nil, fmt.Errorf("failed to get warning: %w", err)
	}

	return &warning, nil
}

func (r *WarningRepository) GetWarningsByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]models.CatalogWarning, error) {
	var warnings []models.CatalogWarning
	query := `
		SELECT id, category_id, code, message, severity, element_id, created_at, updated_at
		FROM warnings
		WHERE category_id = $1
		ORDER BY code`

	err := r.db.SelectContext(ctx, &warnings, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get warnings by category: %w", err)
	}

	return warnings, nil
}

func (r *WarningRepository) UpdateWarning(ctx context.Context, warning *models.CatalogWarning) error {
	warning.UpdatedAt = time.Now()

	query := `
		UPDATE warnings
		SET message = :message,
			severity = :severity,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, warning)
	if err != nil {
		return fmt.Errorf("failed to update warning: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("warning not found")
	}

	return nil
}

func (r *WarningRepository) DeleteWarning(ctx context.Context, id uuid.UUID) error {
	return utils.ExecWithCheck(ctx, r.db, `DELETE FROM warnings WHERE id = $1`, utils.ExecDelete, id)
}

// LinkWarning attaches a warning to an element or tier via the association
// table. The inline element_id and these links are merged at snapshot load.
func (r *WarningRepository) LinkWarning(ctx context.Context, warningID uuid.UUID, elementID, tierID *uuid.UUID) error {
	query := `
		INSERT INTO warning_links (id, warning_id, element_id, tier_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, uuid.New(), warningID, elementID, tierID); err != nil {
		return fmt.Errorf("failed to link warning: %w", err)
	}
	return nil
}

func (r *WarningRepository) UnlinkWarning(ctx context.Context, warningID uuid.UUID, elementID, tierID *uuid.UUID) error {
	query := `
		DELETE FROM warning_links
		WHERE warning_id = $1
		  AND element_id IS NOT DISTINCT FROM $2
		  AND tier_id IS NOT DISTINCT FROM $3`

	return utils.ExecWithCheck(ctx, r.db, query, utils.ExecDelete, warningID, elementID, tierID)
}
