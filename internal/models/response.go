package models

import "homologation-service/internal/resolution"

// Quote statuses returned to the conversational layer.
const (
	QuoteStatusQuoted          = "quoted"
	QuoteStatusVariantsPending = "variants_pending"
)

type QuoteDetails struct {
	TierCode       string                       `json:"tier_code"`
	TierName       string                       `json:"tier_name"`
	Price          float64                      `json:"price"`
	CatalogVersion int64                        `json:"catalog_version"`
	Elements       []resolution.ResolvedElement `json:"elements"`
	Warnings       resolution.GroupedWarnings   `json:"warnings"`
}

// QuoteResponse is the full quotation turn result. Price and warnings travel
// together so the caller can never present one without the other.
type QuoteResponse struct {
	Status          string                       `json:"status"`
	Quote           *QuoteDetails                `json:"quote,omitempty"`
	VariantsPending []resolution.VariantQuestion `json:"variants_pending,omitempty"`
	Unmatched       []string                     `json:"unmatched,omitempty"`
}

type SelectVariantResponse struct {
	BaseCode    string `json:"base_code"`
	ElementCode string `json:"element_code"`
}
