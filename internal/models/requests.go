package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Helper functions for validation
func isValidSeverity(severity string) bool {
	switch severity {
	case "info", "warning", "error":
		return true
	default:
		return false
	}
}

func trimAndValidateString(str string, fieldName string, minLen, maxLen int) error {
	trimmed := strings.TrimSpace(str)
	if len(trimmed) < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if len(trimmed) > maxLen {
		return fmt.Errorf("%s must be %d characters or less", fieldName, maxLen)
	}
	return nil
}

func isValidCode(code string) bool {
	if code == "" {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}

// ============================================================================
// ELEMENT ADMIN REQUESTS
// ============================================================================

type CreateElementRequest struct {
	CategoryID   uuid.UUID `json:"category_id" validate:"required"`
	Code         string    `json:"code" validate:"required,min=1,max=50"`
	Name         string    `json:"name" validate:"required,min=1,max=200"`
	Keywords     []string  `json:"keywords" validate:"required,min=1"`
	BaseCode     *string   `json:"base_code,omitempty"`
	VariantLabel *string   `json:"variant_label,omitempty" validate:"omitempty,max=100"`
	SortOrder    int       `json:"sort_order"`
}

func (r CreateElementRequest) Validate() error {
	if r.CategoryID == uuid.Nil {
		return errors.New("category_id is required")
	}
	if !isValidCode(r.Code) {
		return errors.New("code must be uppercase letters, digits and underscores")
	}
	if err := trimAndValidateString(r.Name, "name", 1, 200); err != nil {
		return err
	}
	if len(r.Keywords) == 0 {
		return errors.New("at least one keyword is required")
	}
	for _, kw := range r.Keywords {
		if strings.TrimSpace(kw) == "" {
			return errors.New("keywords must not be blank")
		}
	}
	if r.BaseCode != nil && !isValidCode(*r.BaseCode) {
		return errors.New("base_code must be uppercase letters, digits and underscores")
	}
	if r.BaseCode != nil && *r.BaseCode == r.Code {
		return errors.New("an element cannot be a variant of itself")
	}
	if r.VariantLabel != nil {
		if err := trimAndValidateString(*r.VariantLabel, "variant_label", 1, 100); err != nil {
			return err
		}
	}
	return nil
}

type UpdateElementRequest struct {
	Name         *string  `json:"name,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	BaseCode     *string  `json:"base_code,omitempty"`
	VariantLabel *string  `json:"variant_label,omitempty"`
	SortOrder    *int     `json:"sort_order,omitempty"`
}

func (r UpdateElementRequest) Validate() error {
	if r.Name != nil {
		if err := trimAndValidateString(*r.Name, "name", 1, 200); err != nil {
			return err
		}
	}
	if r.Keywords != nil {
		if len(r.Keywords) == 0 {
			return errors.New("at least one keyword is required")
		}
		for _, kw := range r.Keywords {
			if strings.TrimSpace(kw) == "" {
				return errors.New("keywords must not be blank")
			}
		}
	}
	if r.BaseCode != nil && *r.BaseCode != "" && !isValidCode(*r.BaseCode) {
		return errors.New("base_code must be uppercase letters, digits and underscores")
	}
	return nil
}

// ============================================================================
// TARIFF TIER ADMIN REQUESTS
// ============================================================================

type InclusionInput struct {
	ElementCode string `json:"element_code" validate:"required"`
	MaxQuantity *int   `json:"max_quantity,omitempty"`
}

type ReferenceInput struct {
	ReferencedTierCode string `json:"referenced_tier_code" validate:"required"`
	MaxElements        *int   `json:"max_elements,omitempty"`
}

type CreateTariffTierRequest struct {
	CategoryID uuid.UUID        `json:"category_id" validate:"required"`
	Code       string           `json:"code" validate:"required,min=1,max=50"`
	Name       string           `json:"name" validate:"required,min=1,max=200"`
	Price      float64          `json:"price" validate:"min=0"`
	SortOrder  int              `json:"sort_order"`
	Active     bool             `json:"active"`
	Inclusions []InclusionInput `json:"inclusions"`
	References []ReferenceInput `json:"references"`
}

func (r CreateTariffTierRequest) Validate() error {
	if r.CategoryID == uuid.Nil {
		return errors.New("category_id is required")
	}
	if !isValidCode(r.Code) {
		return errors.New("code must be uppercase letters, digits and underscores")
	}
	if err := trimAndValidateString(r.Name, "name", 1, 200); err != nil {
		return err
	}
	if r.Price < 0 {
		return errors.New("price must not be negative")
	}
	for _, inc := range r.Inclusions {
		if !isValidCode(inc.ElementCode) {
			return fmt.Errorf("inclusion element_code %q is not a valid code", inc.ElementCode)
		}
		if inc.MaxQuantity != nil && *inc.MaxQuantity < 1 {
			return fmt.Errorf("inclusion %s max_quantity must be positive or omitted for unlimited", inc.ElementCode)
		}
	}
	for _, ref := range r.References {
		if !isValidCode(ref.ReferencedTierCode) {
			return fmt.Errorf("referenced_tier_code %q is not a valid code", ref.ReferencedTierCode)
		}
		if ref.ReferencedTierCode == r.Code {
			return errors.New("a tier cannot reference itself")
		}
		if ref.MaxElements != nil && *ref.MaxElements < 1 {
			return fmt.Errorf("reference %s max_elements must be positive or omitted for unlimited", ref.ReferencedTierCode)
		}
	}
	return nil
}

type UpdateTariffTierRequest struct {
	Name       *string          `json:"name,omitempty"`
	Price      *float64         `json:"price,omitempty"`
	SortOrder  *int             `json:"sort_order,omitempty"`
	Active     *bool            `json:"active,omitempty"`
	Inclusions []InclusionInput `json:"inclusions,omitempty"`
	References []ReferenceInput `json:"references,omitempty"`
}

func (r UpdateTariffTierRequest) Validate() error {
	if r.Name != nil {
		if err := trimAndValidateString(*r.Name, "name", 1, 200); err != nil {
			return err
		}
	}
	if r.Price != nil && *r.Price < 0 {
		return errors.New("price must not be negative")
	}
	for _, inc := range r.Inclusions {
		if !isValidCode(inc.ElementCode) {
			return fmt.Errorf("inclusion element_code %q is not a valid code", inc.ElementCode)
		}
		if inc.MaxQuantity != nil && *inc.MaxQuantity < 1 {
			return fmt.Errorf("inclusion %s max_quantity must be positive or omitted for unlimited", inc.ElementCode)
		}
	}
	for _, ref := range r.References {
		if !isValidCode(ref.ReferencedTierCode) {
			return fmt.Errorf("referenced_tier_code %q is not a valid code", ref.ReferencedTierCode)
		}
		if ref.MaxElements != nil && *ref.MaxElements < 1 {
			return fmt.Errorf("reference %s max_elements must be positive or omitted for unlimited", ref.ReferencedTierCode)
		}
	}
	return nil
}

// ============================================================================
// WARNING ADMIN REQUESTS
// ============================================================================

type CreateWarningRequest struct {
	CategoryID uuid.UUID  `json:"category_id" validate:"required"`
	Code       string     `json:"code" validate:"required,min=1,max=50"`
	Message    string     `json:"message" validate:"required,min=1,max=1000"`
	Severity   string     `json:"severity" validate:"required,oneof=info warning error"`
	ElementID  *uuid.UUID `json:"element_id,omitempty"`
}

func (r CreateWarningRequest) Validate() error {
	if r.CategoryID == uuid.Nil {
		return errors.New("category_id is required")
	}
	if !isValidCode(r.Code) {
		return errors.New("code must be uppercase letters, digits and underscores")
	}
	if err := trimAndValidateString(r.Message, "message", 1, 1000); err != nil {
		return err
	}
	if !isValidSeverity(r.Severity) {
		return errors.New("severity must be one of: info, warning, error")
	}
	return nil
}

type UpdateWarningRequest struct {
	Message  *string `json:"message,omitempty"`
	Severity *string `json:"severity,omitempty"`
}

func (r UpdateWarningRequest) Validate() error {
	if r.Message != nil {
		if err := trimAndValidateString(*r.Message, "message", 1, 1000); err != nil {
			return err
		}
	}
	if r.Severity != nil && !isValidSeverity(*r.Severity) {
		return errors.New("severity must be one of: info, warning, error")
	}
	return nil
}

type LinkWarningRequest struct {
	ElementID *uuid.UUID `json:"element_id,omitempty"`
	TierID    *uuid.UUID `json:"tier_id,omitempty"`
}

func (r LinkWarningRequest) Validate() error {
	if r.ElementID != nil && r.TierID != nil {
		return errors.New("a warning link targets an element or a tier, not both")
	}
	return nil
}

// ============================================================================
// QUOTE REQUESTS
// ============================================================================

type ResolveRequest struct {
	Category string `json:"category" validate:"required"`
	Text     string `json:"text" validate:"required"`
}

func (r ResolveRequest) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("category is required")
	}
	if strings.TrimSpace(r.Text) == "" {
		return errors.New("text is required")
	}
	return nil
}

type SelectVariantRequest struct {
	Category string `json:"category" validate:"required"`
	BaseCode string `json:"base_code" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

func (r SelectVariantRequest) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("category is required")
	}
	if strings.TrimSpace(r.BaseCode) == "" {
		return errors.New("base_code is required")
	}
	if strings.TrimSpace(r.Answer) == "" {
		return errors.New("answer is required")
	}
	return nil
}

// QuoteRequest quotes either free text or an already-resolved element set.
type QuoteRequest struct {
	Category string         `json:"category" validate:"required"`
	Text     string         `json:"text,omitempty"`
	Elements map[string]int `json:"elements,omitempty"`
}

func (r QuoteRequest) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("category is required")
	}
	if strings.TrimSpace(r.Text) == "" && len(r.Elements) == 0 {
		return errors.New("either text or elements is required")
	}
	for code, qty := range r.Elements {
		if !isValidCode(code) {
			return fmt.Errorf("element code %q is not a valid code", code)
		}
		if qty < 1 {
			return fmt.Errorf("quantity for %s must be positive", code)
		}
	}
	return nil
}
