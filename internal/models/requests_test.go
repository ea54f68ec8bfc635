package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func intPtr(v int) *int { return &v }

func validElementRequest() CreateElementRequest {
	return CreateElementRequest{
		CategoryID: uuid.New(),
		Code:       "TOLDO_LAT",
		Name:       "Toldo lateral",
		Keywords:   []string{"toldo", "toldo lateral"},
	}
}

func validTierRequest() CreateTariffTierRequest {
	return CreateTariffTierRequest{
		CategoryID: uuid.New(),
		Code:       "T3",
		Name:       "Tarifa 3",
		Price:      180,
		Active:     true,
		Inclusions: []InclusionInput{{ElementCode: "TOLDO_LAT", MaxQuantity: intPtr(1)}},
		References: []ReferenceInput{{ReferencedTierCode: "T6"}},
	}
}

// ============================================================================
// TEST SUITE 1: ELEMENT REQUESTS
// ============================================================================

func TestCreateElementRequest_Valid(t *testing.T) {
	assert.NoError(t, validElementRequest().Validate())
}

func TestCreateElementRequest_RejectsLowercaseCode(t *testing.T) {
	req := validElementRequest()
	req.Code = "toldo_lat"
	assert.Error(t, req.Validate())
}

func TestCreateElementRequest_RejectsEmptyKeywords(t *testing.T) {
	req := validElementRequest()
	req.Keywords = nil
	assert.Error(t, req.Validate())

	req.Keywords = []string{"  "}
	assert.Error(t, req.Validate())
}

func TestCreateElementRequest_RejectsSelfVariant(t *testing.T) {
	req := validElementRequest()
	base := req.Code
	req.BaseCode = &base
	assert.Error(t, req.Validate())
}

func TestCreateElementRequest_RequiresCategory(t *testing.T) {
	req := validElementRequest()
	req.CategoryID = uuid.Nil
	assert.Error(t, req.Validate())
}

// ============================================================================
// TEST SUITE 2: TARIFF TIER REQUESTS
// ============================================================================

func TestCreateTariffTierRequest_Valid(t *testing.T) {
	assert.NoError(t, validTierRequest().Validate())
}

func TestCreateTariffTierRequest_RejectsNegativePrice(t *testing.T) {
	req := validTierRequest()
	req.Price = -1
	assert.Error(t, req.Validate())
}

func TestCreateTariffTierRequest_RejectsSelfReference(t *testing.T) {
	req := validTierRequest()
	req.References = []ReferenceInput{{ReferencedTierCode: req.Code}}
	assert.Error(t, req.Validate())
}

func TestCreateTariffTierRequest_RejectsNonPositiveCaps(t *testing.T) {
	req := validTierRequest()
	req.Inclusions = []InclusionInput{{ElementCode: "TOLDO_LAT", MaxQuantity: intPtr(0)}}
	assert.Error(t, req.Validate())

	req = validTierRequest()
	req.References = []ReferenceInput{{ReferencedTierCode: "T6", MaxElements: intPtr(-2)}}
	assert.Error(t, req.Validate())
}

// Unlimited is expressed by omitting the cap, so nil must pass.
func TestCreateTariffTierRequest_NilCapsAreUnlimited(t *testing.T) {
	req := validTierRequest()
	req.Inclusions = []InclusionInput{{ElementCode: "PORTABICIS"}}
	req.References = []ReferenceInput{{ReferencedTierCode: "T6"}}
	assert.NoError(t, req.Validate())
}

// ============================================================================
// TEST SUITE 3: WARNING REQUESTS
// ============================================================================

func TestCreateWarningRequest_Valid(t *testing.T) {
	req := CreateWarningRequest{
		CategoryID: uuid.New(),
		Code:       "W_ITV",
		Message:    "Requiere paso previo por ITV",
		Severity:   "warning",
	}
	assert.NoError(t, req.Validate())
}

func TestCreateWarningRequest_RejectsUnknownSeverity(t *testing.T) {
	req := CreateWarningRequest{
		CategoryID: uuid.New(),
		Code:       "W_ITV",
		Message:    "Requiere paso previo por ITV",
		Severity:   "critical",
	}
	assert.Error(t, req.Validate())
}

func TestLinkWarningRequest_RejectsBothTargets(t *testing.T) {
	elementID := uuid.New()
	tierID := uuid.New()
	req := LinkWarningRequest{ElementID: &elementID, TierID: &tierID}
	assert.Error(t, req.Validate())
}

// ============================================================================
// TEST SUITE 4: QUOTE REQUESTS
// ============================================================================

func TestQuoteRequest_RequiresTextOrElements(t *testing.T) {
	req := QuoteRequest{Category: "camper"}
	assert.Error(t, req.Validate())

	req.Text = "toldo lateral"
	assert.NoError(t, req.Validate())

	req.Text = ""
	req.Elements = map[string]int{"TOLDO_LAT": 1}
	assert.NoError(t, req.Validate())
}

func TestQuoteRequest_RejectsNonPositiveQuantities(t *testing.T) {
	req := QuoteRequest{Category: "camper", Elements: map[string]int{"TOLDO_LAT": 0}}
	assert.Error(t, req.Validate())
}

func TestSelectVariantRequest_RequiresAllFields(t *testing.T) {
	req := SelectVariantRequest{Category: "camper", BaseCode: "SUSP"}
	assert.Error(t, req.Validate())

	req.Answer = "delantera"
	assert.NoError(t, req.Validate())
}
