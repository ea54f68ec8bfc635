package resolution

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// COVERAGE EXPANSION
// ============================================================================

func TestExpand_DirectInclusions(t *testing.T) {
	snap := testSnapshot()

	cov, err := Expand(snap, "T6")

	assert.NoError(t, err)
	assert.Equal(t, Coverage{"ANTENA_PAR": 1, "PORTABICIS": Unlimited}, cov)
}

func TestExpand_FollowsReferences(t *testing.T) {
	snap := testSnapshot()

	cov, err := Expand(snap, "T3")

	assert.NoError(t, err)
	assert.Equal(t, 1, cov["ESC_MEC"])
	assert.Equal(t, 1, cov["TOLDO_LAT"])
	assert.Equal(t, 1, cov["PLACA_200W"])
	assert.Equal(t, 1, cov["ANTENA_PAR"], "inherited from T6")
	assert.Equal(t, Unlimited, cov["PORTABICIS"], "inherited from T6")
}

func TestExpand_ReferenceCapTakesDeclaredOrder(t *testing.T) {
	snap := testSnapshot()

	// T2 grants at most 2 elements from T3: the first two of T3's declared
	// inclusions (ESC_MEC, TOLDO_LAT); PLACA_200W does not count.
	cov, err := Expand(snap, "T2")

	assert.NoError(t, err)
	assert.Equal(t, 1, cov["ESC_MEC"])
	assert.Equal(t, 1, cov["TOLDO_LAT"])
	assert.NotContains(t, cov, "PLACA_200W")
	assert.Equal(t, Unlimited, cov["PORTABICIS"], "uncapped T6 reference still merges fully")
}

func TestExpand_TopTierCoversEverything(t *testing.T) {
	snap := testSnapshot()

	cov, err := Expand(snap, "T1")

	assert.NoError(t, err)
	for _, code := range []string{"ESC_MEC", "TOLDO_LAT", "PLACA_200W", "ANTENA_PAR", "PORTABICIS", "CLARABOYA", "VENTANA"} {
		assert.Contains(t, cov, code)
	}
}

func TestExpand_WiderCapWins(t *testing.T) {
	elements := []Element{
		{Code: "EL", Keywords: []string{"el"}},
	}
	tiers := []Tier{
		{Code: "CAPPED", Price: 10, Active: true, Inclusions: []Inclusion{{ElementCode: "EL", MaxQuantity: 2}}},
		{Code: "OPEN", Price: 20, Active: true, Inclusions: []Inclusion{{ElementCode: "EL", MaxQuantity: Unlimited}}},
		{Code: "BOTH", Price: 30, Active: true, References: []TierReference{
			{TierCode: "CAPPED", MaxElements: Unlimited},
			{TierCode: "OPEN", MaxElements: Unlimited},
		}},
		{Code: "FINITE", Price: 40, Active: true,
			Inclusions: []Inclusion{{ElementCode: "EL", MaxQuantity: 1}},
			References: []TierReference{{TierCode: "CAPPED", MaxElements: Unlimited}},
		},
	}
	snap := NewSnapshot("test", 1, elements, tiers, SnapshotWarnings{})

	both, err := Expand(snap, "BOTH")
	assert.NoError(t, err)
	assert.Equal(t, Unlimited, both["EL"], "unlimited must dominate any finite cap")

	finite, err := Expand(snap, "FINITE")
	assert.NoError(t, err)
	assert.Equal(t, 2, finite["EL"], "the larger finite cap must win")
}

// ============================================================================
// CYCLE SAFETY
// ============================================================================

func TestExpand_DirectCycle(t *testing.T) {
	tiers := []Tier{
		{Code: "A", Price: 10, Active: true, References: []TierReference{{TierCode: "B", MaxElements: Unlimited}}},
		{Code: "B", Price: 20, Active: true, References: []TierReference{{TierCode: "A", MaxElements: Unlimited}}},
	}
	snap := NewSnapshot("test", 1, nil, tiers, SnapshotWarnings{})

	_, err := Expand(snap, "A")

	var cycle *CycleError
	assert.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"A", "B", "A"}, cycle.Path)
}

func TestExpand_SelfReference(t *testing.T) {
	tiers := []Tier{
		{Code: "SELF", Price: 10, Active: true, References: []TierReference{{TierCode: "SELF", MaxElements: Unlimited}}},
	}
	snap := NewSnapshot("test", 1, nil, tiers, SnapshotWarnings{})

	_, err := Expand(snap, "SELF")

	var cycle *CycleError
	assert.ErrorAs(t, err, &cycle)
}

func TestExpand_LargeCycleTerminates(t *testing.T) {
	// A 50-tier ring must fail fast instead of hanging or overflowing.
	const n = 50
	tiers := make([]Tier, n)
	for i := 0; i < n; i++ {
		next := fmt.Sprintf("R%02d", (i+1)%n)
		tiers[i] = Tier{
			Code: fmt.Sprintf("R%02d", i), Price: float64(i), Active: true,
			References: []TierReference{{TierCode: next, MaxElements: Unlimited}},
		}
	}
	snap := NewSnapshot("test", 1, nil, tiers, SnapshotWarnings{})

	_, err := Expand(snap, "R00")

	var cycle *CycleError
	assert.ErrorAs(t, err, &cycle)
	assert.Len(t, cycle.Path, n+1)
}

func TestExpand_UnknownReference(t *testing.T) {
	tiers := []Tier{
		{Code: "T", Price: 10, Active: true, References: []TierReference{{TierCode: "GHOST", MaxElements: Unlimited}}},
	}
	snap := NewSnapshot("test", 1, nil, tiers, SnapshotWarnings{})

	_, err := Expand(snap, "T")

	var unknown *UnknownTierError
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, "GHOST", unknown.TierCode)
}

// ============================================================================
// MEMOIZATION
// ============================================================================

func TestExpander_MemoizesWithinBatch(t *testing.T) {
	snap := testSnapshot()
	x := NewExpander(snap, nil)

	first, err := x.Expand("T3")
	assert.NoError(t, err)
	second, err := x.Expand("T3")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}
