package resolution

import (
	"sort"
)

// Unlimited marks a quantity cap with no upper bound.
const Unlimited = -1

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Element is a single homologable modification. A variant element carries the
// BaseCode of the element it disambiguates (e.g. front vs rear suspension).
type Element struct {
	Code         string
	Name         string
	Keywords     []string
	BaseCode     string
	VariantLabel string
	SortOrder    int
}

// Inclusion grants an element up to MaxQuantity units (Unlimited for no cap).
type Inclusion struct {
	ElementCode string
	MaxQuantity int
}

// TierReference pulls in another tier's expanded coverage. MaxElements caps how
// many of the referenced tier's elements count for the referencing tier,
// taken in the referenced tier's own declared order.
type TierReference struct {
	TierCode    string
	MaxElements int
}

type Tier struct {
	Code       string
	Name       string
	Price      float64
	SortOrder  int
	Active     bool
	Inclusions []Inclusion
	References []TierReference
}

type Warning struct {
	Code     string
	Message  string
	Severity Severity
}

// Snapshot is an immutable view of one category's catalog, tagged with the
// monotonic version stamp it was loaded at. All engine operations run against
// a single snapshot so an in-flight resolution never observes a half-updated
// graph.
type Snapshot struct {
	Category string
	Version  int64

	elements     map[string]*Element
	elementCodes []string
	variants     map[string][]*Element

	tiers        map[string]*Tier
	tiersByPrice []*Tier

	elementWarnings  map[string][]Warning
	tierWarnings     map[string][]Warning
	categoryWarnings []Warning
}

// SnapshotWarnings carries the merged warning view the loader hands to a
// snapshot. The loader is responsible for reconciling the inline and
// associative warning representations before this point.
type SnapshotWarnings struct {
	ByElement  map[string][]Warning
	ByTier     map[string][]Warning
	ByCategory []Warning
}

// NewSnapshot builds the immutable read model the engine traverses. Element
// and tier slices are copied; callers must not mutate the snapshot afterwards.
func NewSnapshot(category string, version int64, elements []Element, tiers []Tier, warnings SnapshotWarnings) *Snapshot {
	s := &Snapshot{
		Category:        category,
		Version:         version,
		elements:        make(map[string]*Element, len(elements)),
		elementCodes:    make([]string, 0, len(elements)),
		variants:        make(map[string][]*Element),
		tiers:           make(map[string]*Tier, len(tiers)),
		tiersByPrice:    make([]*Tier, 0, len(tiers)),
		elementWarnings: map[string][]Warning{},
		tierWarnings:    map[string][]Warning{},
	}

	for i := range elements {
		el := elements[i]
		if _, ok := s.elements[el.Code]; ok {
			continue
		}
		s.elements[el.Code] = &el
		s.elementCodes = append(s.elementCodes, el.Code)
		if el.BaseCode != "" {
			s.variants[el.BaseCode] = append(s.variants[el.BaseCode], &el)
		}
	}
	sort.Slice(s.elementCodes, func(i, j int) bool {
		a, b := s.elements[s.elementCodes[i]], s.elements[s.elementCodes[j]]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Code < b.Code
	})
	for base := range s.variants {
		vs := s.variants[base]
		sort.Slice(vs, func(i, j int) bool {
			if vs[i].SortOrder != vs[j].SortOrder {
				return vs[i].SortOrder < vs[j].SortOrder
			}
			return vs[i].Code < vs[j].Code
		})
	}

	for i := range tiers {
		t := tiers[i]
		if _, ok := s.tiers[t.Code]; ok {
			continue
		}
		s.tiers[t.Code] = &t
		s.tiersByPrice = append(s.tiersByPrice, &t)
	}
	sort.Slice(s.tiersByPrice, func(i, j int) bool {
		a, b := s.tiersByPrice[i], s.tiersByPrice[j]
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Code < b.Code
	})

	if warnings.ByElement != nil {
		for code, ws := range warnings.ByElement {
			s.elementWarnings[code] = dedupeWarnings(ws)
		}
	}
	if warnings.ByTier != nil {
		for code, ws := range warnings.ByTier {
			s.tierWarnings[code] = dedupeWarnings(ws)
		}
	}
	s.categoryWarnings = dedupeWarnings(warnings.ByCategory)

	return s
}

// Element returns the element with the given code, or nil.
func (s *Snapshot) Element(code string) *Element {
	return s.elements[code]
}

// ElementCodes returns all element codes in declared order.
func (s *Snapshot) ElementCodes() []string {
	return s.elementCodes
}

// Variants returns the variant elements registered under a base code, in
// declared order. Empty when the code has no variants.
func (s *Snapshot) Variants(baseCode string) []*Element {
	return s.variants[baseCode]
}

// Tier returns the tier with the given code, or nil.
func (s *Snapshot) Tier(code string) *Tier {
	return s.tiers[code]
}

// TiersByPrice returns all tiers ordered by ascending price, ties broken by
// sort order then code. The slice is shared; callers must not mutate it.
func (s *Snapshot) TiersByPrice() []*Tier {
	return s.tiersByPrice
}

func (s *Snapshot) warningsForElement(code string) []Warning {
	return s.elementWarnings[code]
}

func (s *Snapshot) warningsForTier(code string) []Warning {
	return s.tierWarnings[code]
}

func dedupeWarnings(ws []Warning) []Warning {
	if len(ws) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ws))
	out := make([]Warning, 0, len(ws))
	for _, w := range ws {
		if seen[w.Code] {
			continue
		}
		seen[w.Code] = true
		out = append(out, w)
	}
	return out
}
