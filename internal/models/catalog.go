package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ============================================================================
// CATALOG READ MODEL
// ============================================================================

type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Element is a homologable modification. A variant element sets BaseCode to
// the element it disambiguates and carries a short VariantLabel for the
// clarifying question.
type Element struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	CategoryID   uuid.UUID      `json:"category_id" db:"category_id"`
	Code         string         `json:"code" db:"code"`
	Name         string         `json:"name" db:"name"`
	Keywords     pq.StringArray `json:"keywords" db:"keywords"`
	BaseCode     *string        `json:"base_code,omitempty" db:"base_code"`
	VariantLabel *string        `json:"variant_label,omitempty" db:"variant_label"`
	SortOrder    int            `json:"sort_order" db:"sort_order"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

type TariffTier struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id"`
	Code       string    `json:"code" db:"code"`
	Name       string    `json:"name" db:"name"`
	Price      float64   `json:"price" db:"price"`
	SortOrder  int       `json:"sort_order" db:"sort_order"`
	Active     bool      `json:"active" db:"active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// TierInclusion grants an element directly. MaxQuantity nil means unlimited.
type TierInclusion struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TierID      uuid.UUID `json:"tier_id" db:"tier_id"`
	ElementCode string    `json:"element_code" db:"element_code"`
	MaxQuantity *int      `json:"max_quantity,omitempty" db:"max_quantity"`
	Position    int       `json:"position" db:"position"`
}

// TierReference pulls in another tier. MaxElements nil means all of the
// referenced tier's elements count.
type TierReference struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	TierID             uuid.UUID `json:"tier_id" db:"tier_id"`
	ReferencedTierCode string    `json:"referenced_tier_code" db:"referenced_tier_code"`
	MaxElements        *int      `json:"max_elements,omitempty" db:"max_elements"`
	Position           int       `json:"position" db:"position"`
}

// CatalogWarning is a warning attached to an element (inline ElementID), or to
// elements/tiers through the warning_links association table, or to the whole
// category when no link exists. The two physical representations are merged at
// snapshot load.
type CatalogWarning struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	CategoryID uuid.UUID  `json:"category_id" db:"category_id"`
	Code       string     `json:"code" db:"code"`
	Message    string     `json:"message" db:"message"`
	Severity   string     `json:"severity" db:"severity"`
	ElementID  *uuid.UUID `json:"element_id,omitempty" db:"element_id"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// WarningLink is the associative warning attachment. Exactly one of ElementID
// and TierID is set; both nil marks a category-level warning.
type WarningLink struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	WarningID uuid.UUID  `json:"warning_id" db:"warning_id"`
	ElementID *uuid.UUID `json:"element_id,omitempty" db:"element_id"`
	TierID    *uuid.UUID `json:"tier_id,omitempty" db:"tier_id"`
}

// CatalogVersion is the per-category monotonic stamp bumped on every admin
// edit. Cache keys carry it so invalidation is O(1).
type CatalogVersion struct {
	CategoryID uuid.UUID `json:"category_id" db:"category_id"`
	Version    int64     `json:"version" db:"version"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
