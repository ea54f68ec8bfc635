package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateWarnings_GroupsByScope(t *testing.T) {
	snap := testSnapshotWithWarnings(SnapshotWarnings{
		ByElement: map[string][]Warning{
			"ESC_MEC": {{Code: "W_ESC", Message: "Requiere certificado del fabricante", Severity: SeverityWarning}},
		},
		ByTier: map[string][]Warning{
			"T3": {{Code: "W_T3", Message: "Incluye tasas de laboratorio", Severity: SeverityInfo}},
		},
		ByCategory: []Warning{{Code: "W_CAT", Message: "Camper requiere ficha reducida", Severity: SeverityInfo}},
	})

	grouped := AggregateWarnings(snap, "T3", []string{"ESC_MEC", "TOLDO_LAT"})

	assert.Len(t, grouped.Groups, 3)
	assert.Equal(t, ScopeElement, grouped.Groups[0].Scope)
	assert.Equal(t, "ESC_MEC", grouped.Groups[0].Code)
	assert.Equal(t, ScopeTier, grouped.Groups[1].Scope)
	assert.Equal(t, ScopeCategory, grouped.Groups[2].Scope)
	assert.Equal(t, 3, grouped.Total())
}

func TestAggregateWarnings_MessagesVerbatim(t *testing.T) {
	message := "El toldo debe ir anclado a pared, no al techo"
	snap := testSnapshotWithWarnings(SnapshotWarnings{
		ByElement: map[string][]Warning{
			"TOLDO_LAT": {{Code: "W_TOLDO", Message: message, Severity: SeverityError}},
		},
	})

	grouped := AggregateWarnings(snap, "T3", []string{"TOLDO_LAT"})

	assert.Len(t, grouped.Groups, 1)
	assert.Equal(t, message, grouped.Groups[0].Warnings[0].Message)
	assert.Equal(t, SeverityError, grouped.Groups[0].Warnings[0].Severity)
}

func TestAggregateWarnings_DedupesByCodeWithinGroup(t *testing.T) {
	// The same warning reaches ESC_MEC twice: once inline, once through the
	// association table. The loader merges both into the element's list; the
	// aggregator must still emit it once.
	snap := testSnapshotWithWarnings(SnapshotWarnings{
		ByElement: map[string][]Warning{
			"ESC_MEC": {
				{Code: "W_DUP", Message: "Altura máxima 30cm sobre el techo", Severity: SeverityWarning},
				{Code: "W_DUP", Message: "Altura máxima 30cm sobre el techo", Severity: SeverityWarning},
			},
		},
	})

	grouped := AggregateWarnings(snap, "T3", []string{"ESC_MEC"})

	assert.Len(t, grouped.Groups, 1)
	assert.Len(t, grouped.Groups[0].Warnings, 1)
}

func TestAggregateWarnings_DuplicateMatchedElementCountsOnce(t *testing.T) {
	snap := testSnapshotWithWarnings(SnapshotWarnings{
		ByElement: map[string][]Warning{
			"ESC_MEC": {{Code: "W_ESC", Message: "m", Severity: SeverityInfo}},
		},
	})

	grouped := AggregateWarnings(snap, "T3", []string{"ESC_MEC", "ESC_MEC"})

	assert.Len(t, grouped.Groups, 1)
}

func TestAggregateWarnings_NoWarnings(t *testing.T) {
	snap := testSnapshot()

	grouped := AggregateWarnings(snap, "T6", []string{"ANTENA_PAR"})

	assert.Empty(t, grouped.Groups)
	assert.Equal(t, 0, grouped.Total())
}
