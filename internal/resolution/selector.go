package resolution

import (
	"fmt"
	"sort"
)

// Selection is the outcome of picking the cheapest satisfying tier for an
// element request against one snapshot.
type Selection struct {
	Category string
	Version  int64
	TierCode string
	TierName string
	Price    float64
	Coverage Coverage
}

// Select enumerates the category's active tiers by ascending price (ties by
// sort order, then code) and returns the first whose expanded coverage
// satisfies every requested (element, quantity) pair. The result is fully
// deterministic for a fixed snapshot and request.
//
// It returns *NoTierError when no tier covers the request, and *CycleError or
// *UnknownTierError when the reference graph is corrupt; integrity errors
// abort the whole selection rather than skipping the offending tier.
func Select(snap *Snapshot, request map[string]int) (*Selection, error) {
	return SelectCached(snap, request, nil)
}

// SelectCached is Select with a shared expansion cache attached.
func SelectCached(snap *Snapshot, request map[string]int, cache *ExpansionCache) (*Selection, error) {
	if len(request) == 0 {
		return nil, fmt.Errorf("empty element request for category %s", snap.Category)
	}
	for code, qty := range request {
		if qty < 1 {
			return nil, fmt.Errorf("requested quantity %d for element %s must be positive", qty, code)
		}
	}

	expander := NewExpander(snap, cache)
	// Widest cap seen per requested element across all tiers, to name the
	// genuinely unsatisfiable elements when nothing matches.
	best := make(map[string]int, len(request))

	for _, tier := range snap.TiersByPrice() {
		if !tier.Active {
			continue
		}
		coverage, err := expander.Expand(tier.Code)
		if err != nil {
			return nil, err
		}

		satisfied := true
		for code, qty := range request {
			if granted, ok := coverage[code]; ok {
				if prev, seen := best[code]; !seen {
					best[code] = granted
				} else {
					best[code] = widerCap(prev, granted)
				}
			}
			if !coverage.Satisfies(code, qty) {
				satisfied = false
			}
		}
		if satisfied {
			return &Selection{
				Category: snap.Category,
				Version:  snap.Version,
				TierCode: tier.Code,
				TierName: tier.Name,
				Price:    tier.Price,
				Coverage: coverage,
			}, nil
		}
	}

	unmet := make([]string, 0, len(request))
	for code, qty := range request {
		granted, ok := best[code]
		if !ok || (granted != Unlimited && granted < qty) {
			unmet = append(unmet, code)
		}
	}
	if len(unmet) == 0 {
		// Every element is covered by some tier, just never all at once.
		for code := range request {
			unmet = append(unmet, code)
		}
	}
	sort.Strings(unmet)
	return nil, &NoTierError{Category: snap.Category, Unmet: unmet}
}
