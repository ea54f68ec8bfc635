package resolution

// WarningScope says what a warning group is attached to.
type WarningScope string

const (
	ScopeElement  WarningScope = "element"
	ScopeTier     WarningScope = "tier"
	ScopeCategory WarningScope = "category"
)

// WarningGroup carries the warnings triggered by one element, the selected
// tier, or the category as a whole. Messages are verbatim from the catalog.
type WarningGroup struct {
	Scope    WarningScope `json:"scope"`
	Code     string       `json:"code,omitempty"`
	Warnings []Warning    `json:"warnings"`
}

// GroupedWarnings is the aggregator output, ordered: matched elements in the
// order given, then tier, then category.
type GroupedWarnings struct {
	Groups []WarningGroup `json:"groups"`
}

// Total counts all warning entries across groups.
func (g GroupedWarnings) Total() int {
	n := 0
	for _, group := range g.Groups {
		n += len(group.Warnings)
	}
	return n
}

// AggregateWarnings collects the warnings attached to each matched element,
// the selected tier, and the category, deduplicated by warning code within
// each group. An element reachable through several inclusion paths still
// contributes its warnings once: the lookup is per element code, not per path.
func AggregateWarnings(snap *Snapshot, tierCode string, matchedElements []string) GroupedWarnings {
	var out GroupedWarnings
	seenElements := map[string]bool{}

	for _, code := range matchedElements {
		if seenElements[code] {
			continue
		}
		seenElements[code] = true
		if ws := snap.warningsForElement(code); len(ws) > 0 {
			out.Groups = append(out.Groups, WarningGroup{
				Scope:    ScopeElement,
				Code:     code,
				Warnings: dedupeWarnings(ws),
			})
		}
	}

	if ws := snap.warningsForTier(tierCode); len(ws) > 0 {
		out.Groups = append(out.Groups, WarningGroup{
			Scope:    ScopeTier,
			Code:     tierCode,
			Warnings: dedupeWarnings(ws),
		})
	}
	if len(snap.categoryWarnings) > 0 {
		out.Groups = append(out.Groups, WarningGroup{
			Scope:    ScopeCategory,
			Warnings: dedupeWarnings(snap.categoryWarnings),
		})
	}
	return out
}
