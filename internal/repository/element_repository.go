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

type ElementRepository struct {
	db *sqlx.DB
}

func NewElementRepository(db *sqlx.DB) *ElementRepository {
	return &ElementRepository{db: db}
}

func (r *ElementRepository) CreateElement(ctx context.Context, element *models.Element) error {
	element.ID = uuid.New()
	element.CreatedAt = time.Now()
	element.UpdatedAt = time.Now()

	query := `
		INSERT INTO elements (id, category_id, code, name, keywords, base_code, variant_label, sort_order, created_at, updated_at)
		VALUES (:id, :category_id, :code, :name, :keywords, :base_code, :variant_label, :sort_order, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, element)
	if err != nil {
		return fmt.Errorf("failed to create element: %w", err)
	}

	return nil
}

func (r *ElementRepository) GetElementByID(ctx context.Context, id uuid.UUID) (*models.Element, error) {
	var element models.Element
	query := `
		SELECT id, category_id, code, name, keywords, base_code, variant_label, sort_order, created_at, updated_at
		FROM elements
		WHERE id = $1`

	err := r.db.GetContext(ctx, &element, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("element not found")
		}
		return nil, fmt.Errorf("failed to get element: %w", err)
	}

	return &element, nil
}

func (r *ElementRepository) GetElementsByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]models.Element, error) {
	var elements []models.Element
	query := `
		SELECT id, category_id, code, name, keywords, base_code, variant_label, sort_order, created_at, updated_at
		FROM elements
		WHERE category_id = $1
		ORDER BY sort_order, code`

	err := r.db.SelectContext(ctx, &elements, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get elements by category: %w", err)
	}

	return elements, nil
}

func (r *ElementRepository) UpdateElement(ctx context.Context, element *models.Element) error {
	element.UpdatedAt = time.Now()

	query := `
		UPDATE elements
		SET name = :name,
			keywords = :keywords,
			base_code = :base_code,
			variant_label = :variant_label,
			sort_order = :sort_order,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, element)
	if err != nil {
		return fmt.Errorf("failed to update element: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("element not found")
	}

	return nil
}

func (r *ElementRepository) DeleteElement(ctx context.Context, id uuid.UUID) error {
	return utils.ExecWithCheck(ctx, r.db, `DELETE FROM elements WHERE id = $1`, utils.ExecDelete, id)
}

func (r *ElementRepository) CheckCodeExists(ctx context.Context, categoryID uuid.UUID, code string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM elements WHERE category_id = $1 AND code = $2`

	err := r.db.GetContext(ctx, &count, query, categoryID, code)
	if err != nil {
		return false, fmt.Errorf("failed to check element code existence: %w", err)
	}

	return count > 0, nil
}
