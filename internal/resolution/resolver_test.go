package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// FREE-TEXT RESOLUTION
// ============================================================================

func TestResolve_ExactKeyword(t *testing.T) {
	snap := testSnapshot()

	res := Resolve(snap, "quiero homologar una antena parabolica")

	assert.Len(t, res.Resolved, 1)
	assert.Equal(t, "ANTENA_PAR", res.Resolved[0].Code)
	assert.Equal(t, 1, res.Resolved[0].Quantity)
	assert.Empty(t, res.VariantsPending)
	assert.Empty(t, res.Unmatched)
}

func TestResolve_AccentAndCaseInsensitive(t *testing.T) {
	snap := testSnapshot()

	res := Resolve(snap, "ESCALERA MECÁNICA")

	assert.Len(t, res.Resolved, 1)
	assert.Equal(t, "ESC_MEC", res.Resolved[0].Code)
}

func TestResolve_TypoTolerance(t *testing.T) {
	snap := testSnapshot()

	// "parabolika" is one edit from "parabolica"
	res := Resolve(snap, "una antena parabolika")

	assert.Len(t, res.Resolved, 1)
	assert.Equal(t, "ANTENA_PAR", res.Resolved[0].Code)
}

func TestResolve_MultipleElements(t *testing.T) {
	snap := testSnapshot()

	res := Resolve(snap, "escalera mecanica y toldo lateral")

	assert.Len(t, res.Resolved, 2)
	codes := []string{res.Resolved[0].Code, res.Resolved[1].Code}
	assert.Contains(t, codes, "ESC_MEC")
	assert.Contains(t, codes, "TOLDO_LAT")
}

func TestResolve_QuantityFromDigits(t *testing.T) {
	snap := testSnapshot()

	res := Resolve(snap, "2 placas solares")

	assert.Len(t, res.Resolved, 1)
	assert.Equal(t, "PLACA_200W", res.Resolved[0].Code)
	assert.Equal(t, 2, res.Resolved[0].Quantity)
}

func TestResolve_QuantityFromSpanishWord(t *testing.T) {
	snap := testSnapshot()

	res := Resolve(snap, "dos claraboyas")

	assert.Len(t, res.Resolved, 1)
	assert.Equal(t, "CLARABOYA", res.Resolved[0].Code)
	assert.Equal(t, 2, res.Resolved[0].Quantity)
}

func TestResolve_QuantityDefaultsToOne(t *testing.T) {
	snap := testSnapshot()

	res := Resolve(snap, "portabicis")

	assert.Len(t, res.Resolved, 1)
	assert.Equal(t, 1, res.Resolved[0].Quantity)
}

func TestResolve_UnmatchedFragmentReported(t *testing.T) {
	snap := testSnapshot()

	res := Resolve(snap, "quiero un toldo lateral y un aspersor nuclear")

	assert.Len(t, res.Resolved, 1)
	assert.Equal(t, "TOLDO_LAT", res.Resolved[0].Code)
	assert.Equal(t, []string{"aspersor nuclear"}, res.Unmatched)
}

func TestResolve_NoInventedElements(t *testing.T) {
	snap := testSnapshot()

	res := Resolve(snap, "motor de cohete espacial")

	assert.Empty(t, res.Resolved)
	assert.NotEmpty(t, res.Unmatched)
}

func TestResolve_EmptyText(t *testing.T) {
	snap := testSnapshot()

	res := Resolve(snap, "   ")

	assert.Empty(t, res.Resolved)
	assert.Empty(t, res.VariantsPending)
	assert.Empty(t, res.Unmatched)
}

// ============================================================================
// VARIANT HANDLING
// ============================================================================

func TestResolve_BaseWithVariantsAsksQuestion(t *testing.T) {
	snap := testSnapshot()

	res := Resolve(snap, "quiero cambiar la suspension")

	assert.Empty(t, res.Resolved, "a base element with variants must never be guessed")
	assert.Len(t, res.VariantsPending, 1)

	q := res.VariantsPending[0]
	assert.Equal(t, "SUSP", q.BaseCode)
	assert.Len(t, q.Options, 2)
	assert.Equal(t, "SUSP_DEL", q.Options[0].Code)
	assert.Equal(t, "SUSP_TRAS", q.Options[1].Code)
}

func TestResolve_DirectVariantKeywordSkipsQuestion(t *testing.T) {
	snap := testSnapshot()

	res := Resolve(snap, "suspension trasera")

	assert.Len(t, res.Resolved, 1)
	assert.Equal(t, "SUSP_TRAS", res.Resolved[0].Code)
	assert.Empty(t, res.VariantsPending)
}

func TestSelectVariant_MatchesLabel(t *testing.T) {
	snap := testSnapshot()

	code, err := SelectVariant(snap, "SUSP", "la delantera")

	assert.NoError(t, err)
	assert.Equal(t, "SUSP_DEL", code)
}

func TestSelectVariant_Idempotent(t *testing.T) {
	snap := testSnapshot()

	first, err1 := SelectVariant(snap, "SUSP", "trasera")
	second, err2 := SelectVariant(snap, "SUSP", "trasera")

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first, second)
	assert.Equal(t, "SUSP_TRAS", first)
}

func TestSelectVariant_AmbiguousAnswer(t *testing.T) {
	snap := testSnapshot()

	_, err := SelectVariant(snap, "SUSP", "si")

	var ambiguous *AmbiguousVariantError
	assert.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "SUSP", ambiguous.BaseCode)
	assert.Len(t, ambiguous.Options, 2)
}

func TestSelectVariant_UnknownBase(t *testing.T) {
	snap := testSnapshot()

	_, err := SelectVariant(snap, "TOLDO_LAT", "lateral")

	var unknown *UnknownBaseError
	assert.ErrorAs(t, err, &unknown)
}

// ============================================================================
// REQUEST CONVERSION
// ============================================================================

func TestResolution_Request(t *testing.T) {
	res := Resolution{Resolved: []ResolvedElement{
		{Code: "PLACA_200W", Quantity: 2},
		{Code: "TOLDO_LAT", Quantity: 1},
	}}

	req := res.Request()

	assert.Equal(t, map[string]int{"PLACA_200W": 2, "TOLDO_LAT": 1}, req)
}
