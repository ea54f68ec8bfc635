package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TARIFF SELECTION — seeded scenario
// ============================================================================

func TestSelect_CheapestTierWins(t *testing.T) {
	snap := testSnapshot()

	sel, err := Select(snap, map[string]int{"ANTENA_PAR": 1})

	assert.NoError(t, err)
	assert.Equal(t, "T6", sel.TierCode)
	assert.Equal(t, 59.0, sel.Price)
}

func TestSelect_BundleResolvesToMidTier(t *testing.T) {
	snap := testSnapshot()

	// T2 also covers these two via its "max 2 from T3" reference, but T3
	// alone is cheaper.
	sel, err := Select(snap, map[string]int{"ESC_MEC": 1, "TOLDO_LAT": 1})

	assert.NoError(t, err)
	assert.Equal(t, "T3", sel.TierCode)
	assert.Equal(t, 180.0, sel.Price)
}

func TestSelect_ThreeElementsStillFitMidTier(t *testing.T) {
	snap := testSnapshot()

	sel, err := Select(snap, map[string]int{"ESC_MEC": 1, "TOLDO_LAT": 1, "PLACA_200W": 1})

	assert.NoError(t, err)
	assert.Equal(t, "T3", sel.TierCode)
	assert.Equal(t, 180.0, sel.Price)
}

func TestSelect_UnlimitedSatisfiesAnyQuantity(t *testing.T) {
	snap := testSnapshot()

	sel, err := Select(snap, map[string]int{"PORTABICIS": 7})

	assert.NoError(t, err)
	assert.Equal(t, "T6", sel.TierCode)
}

func TestSelect_QuantityAboveCapEscalates(t *testing.T) {
	snap := testSnapshot()

	// T4 caps CLARABOYA at 2 and nothing grants 3, so the request is unmet.
	_, err := Select(snap, map[string]int{"CLARABOYA": 3})

	var noTier *NoTierError
	assert.ErrorAs(t, err, &noTier)
	assert.Equal(t, []string{"CLARABOYA"}, noTier.Unmet)
}

func TestSelect_UnknownElement(t *testing.T) {
	snap := testSnapshot()

	_, err := Select(snap, map[string]int{"INEXISTENTE": 1})

	var noTier *NoTierError
	assert.ErrorAs(t, err, &noTier)
	assert.Equal(t, []string{"INEXISTENTE"}, noTier.Unmet)
}

func TestSelect_EmptyRequestRejected(t *testing.T) {
	snap := testSnapshot()

	_, err := Select(snap, map[string]int{})

	assert.Error(t, err)
}

func TestSelect_NonPositiveQuantityRejected(t *testing.T) {
	snap := testSnapshot()

	_, err := Select(snap, map[string]int{"ANTENA_PAR": 0})

	assert.Error(t, err)
}

func TestSelect_InactiveTierSkipped(t *testing.T) {
	tiers := testTiers()
	for i := range tiers {
		if tiers[i].Code == "T6" {
			tiers[i].Active = false
		}
	}
	snap := NewSnapshot("camper", 1, testElements(), tiers, SnapshotWarnings{})

	sel, err := Select(snap, map[string]int{"ANTENA_PAR": 1})

	assert.NoError(t, err)
	assert.Equal(t, "T3", sel.TierCode, "next cheapest tier covering the element")
}

func TestSelect_CycleAbortsSelection(t *testing.T) {
	tiers := testTiers()
	for i := range tiers {
		if tiers[i].Code == "T6" {
			tiers[i].References = []TierReference{{TierCode: "T1", MaxElements: Unlimited}}
		}
	}
	snap := NewSnapshot("camper", 1, testElements(), tiers, SnapshotWarnings{})

	_, err := Select(snap, map[string]int{"ANTENA_PAR": 1})

	var cycle *CycleError
	assert.ErrorAs(t, err, &cycle, "corrupt graphs must abort, never be skipped")
}

// ============================================================================
// DETERMINISM AND PRICE OPTIMALITY
// ============================================================================

func TestSelect_Deterministic(t *testing.T) {
	snap := testSnapshot()
	request := map[string]int{"ESC_MEC": 1, "ANTENA_PAR": 1}

	first, err := Select(snap, request)
	assert.NoError(t, err)

	for i := 0; i < 100; i++ {
		again, err := Select(snap, request)
		assert.NoError(t, err)
		assert.Equal(t, first.TierCode, again.TierCode)
		assert.Equal(t, first.Price, again.Price)
	}
}

func TestSelect_PriceTieBrokenBySortOrder(t *testing.T) {
	elements := []Element{{Code: "EL", Keywords: []string{"el"}}}
	tiers := []Tier{
		{Code: "ZZ", Price: 100, SortOrder: 1, Active: true, Inclusions: []Inclusion{{ElementCode: "EL", MaxQuantity: 1}}},
		{Code: "AA", Price: 100, SortOrder: 2, Active: true, Inclusions: []Inclusion{{ElementCode: "EL", MaxQuantity: 1}}},
	}
	snap := NewSnapshot("test", 1, elements, tiers, SnapshotWarnings{})

	sel, err := Select(snap, map[string]int{"EL": 1})

	assert.NoError(t, err)
	assert.Equal(t, "ZZ", sel.TierCode, "lower sort_order wins the tie, not code order")
}

func TestSelect_NeverReturnsDominatedPrice(t *testing.T) {
	// For every single-element request the fixture can satisfy, the selected
	// tier must not cost more than any other satisfying tier.
	snap := testSnapshot()

	for _, code := range snap.ElementCodes() {
		request := map[string]int{code: 1}
		sel, err := Select(snap, request)
		if err != nil {
			continue
		}
		for _, tier := range snap.TiersByPrice() {
			if !tier.Active {
				continue
			}
			cov, expErr := Expand(snap, tier.Code)
			assert.NoError(t, expErr)
			if cov.Satisfies(code, 1) {
				assert.LessOrEqual(t, sel.Price, tier.Price,
					"selected tier for %s must be at most the price of any satisfying tier", code)
			}
		}
	}
}

func TestSelectCached_SameResultAsUncached(t *testing.T) {
	snap := testSnapshot()
	cache := NewExpansionCache(testCacheTTL)
	request := map[string]int{"ESC_MEC": 1, "TOLDO_LAT": 1}

	plain, err := Select(snap, request)
	assert.NoError(t, err)

	cached, err := SelectCached(snap, request, cache)
	assert.NoError(t, err)
	assert.Equal(t, plain.TierCode, cached.TierCode)

	// Second pass served from the shared cache.
	again, err := SelectCached(snap, request, cache)
	assert.NoError(t, err)
	assert.Equal(t, plain.TierCode, again.TierCode)
	assert.Greater(t, cache.Len(), 0)
}
